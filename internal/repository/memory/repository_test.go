package memory

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"todo-service/internal/model"
	"todo-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock возвращает одно и то же время, пока его не сдвинут
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *fixedClock {
	return &fixedClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	a, err := repo.Create(ctx, model.CreateInput{Title: "Buy milk", Description: "2 liters"})
	require.NoError(t, err)
	b, err := repo.Create(ctx, model.CreateInput{Title: "Buy milk", Description: "2 liters"})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID, "each create must produce a fresh id")
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
	assert.False(t, a.Completed)

	got, ok, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, a, got)
}

func TestRepository_Create_SkipsTakenID(t *testing.T) {
	ctx := context.Background()
	ids := []string{"dup", "dup", "fresh"}
	n := 0
	repo := NewRepository(WithIDGenerator(func() string {
		id := ids[n]
		n++
		return id
	}))

	first, err := repo.Create(ctx, model.CreateInput{Title: "a"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, model.CreateInput{Title: "b"})
	require.NoError(t, err)

	assert.Equal(t, "dup", first.ID)
	assert.Equal(t, "fresh", second.ID)
}

func TestRepository_GetByID_Missing(t *testing.T) {
	repo := NewRepository()

	_, ok, err := repo.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_List_NewestFirst(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	repo := NewRepository(WithClock(clock.Now))

	first, _ := repo.Create(ctx, model.CreateInput{Title: "first"})
	clock.Advance(time.Second)
	second, _ := repo.Create(ctx, model.CreateInput{Title: "second"})
	// Одинаковый CreatedAt: позже вставленная идет раньше
	third, _ := repo.Create(ctx, model.CreateInput{Title: "third"})

	todos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, third.ID, todos[0].ID)
	assert.Equal(t, second.ID, todos[1].ID)
	assert.Equal(t, first.ID, todos[2].ID)
}

func TestRepository_List_Empty(t *testing.T) {
	todos, err := NewRepository().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	repo := NewRepository(WithClock(clock.Now))

	created, err := repo.Create(ctx, model.CreateInput{Title: "Buy milk", Description: "2 liters"})
	require.NoError(t, err)

	clock.Advance(time.Minute)
	updated, err := repo.Update(ctx, created.ID, model.UpdateInput{Completed: model.Some(true)})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Buy milk", updated.Title)
	assert.Equal(t, "2 liters", updated.Description)
	assert.True(t, updated.Completed)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	got, _, _ := repo.GetByID(ctx, created.ID)
	assert.Equal(t, updated, got)
}

func TestRepository_Update_EmptyPatchAdvancesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	repo := NewRepository(WithClock(clock.Now))

	created, _ := repo.Create(ctx, model.CreateInput{Title: "a", Description: "b"})

	// Часы стоят на месте, UpdatedAt все равно растет
	updated, err := repo.Update(ctx, created.ID, model.UpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, created.Title, updated.Title)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestRepository_Update_TitleOnly(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	repo := NewRepository(WithClock(clock.Now))

	created, _ := repo.Create(ctx, model.CreateInput{Title: "old", Description: "keep", Completed: true})
	clock.Advance(time.Second)

	updated, err := repo.Update(ctx, created.ID, model.UpdateInput{Title: model.Some("X")})
	require.NoError(t, err)

	want := created
	want.Title = "X"
	want.UpdatedAt = updated.UpdatedAt
	assert.Equal(t, want, updated)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestRepository_Update_NotFound(t *testing.T) {
	_, err := NewRepository().Update(context.Background(), "missing", model.UpdateInput{Title: model.Some("x")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	var nf *model.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "missing", nf.ID)
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	created, _ := repo.Create(ctx, model.CreateInput{Title: "a", Description: "b"})
	removed, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, removed)

	_, ok, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Delete(ctx, created.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestRepository_Import(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	repo := NewRepository(WithClock(clock.Now), WithIDGenerator(func() string { return "generated" }))
	importer := repo.(repository.Importer)

	dayAgo := clock.Now().Add(-24 * time.Hour)
	twoHoursAgo := clock.Now().Add(-2 * time.Hour)

	todo, err := importer.Import(ctx, model.Todo{Title: "old", Completed: true, CreatedAt: dayAgo, UpdatedAt: twoHoursAgo})
	require.NoError(t, err)
	assert.Equal(t, "generated", todo.ID)
	assert.Equal(t, dayAgo, todo.CreatedAt)
	assert.Equal(t, twoHoursAgo, todo.UpdatedAt)

	got, ok, err := repo.GetByID(ctx, "generated")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, todo, got)

	_, err = importer.Import(ctx, model.Todo{ID: "generated", Title: "dup"})
	assert.Error(t, err)
}

func TestRepository_Import_FixesTimestamps(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	importer := NewRepository(WithClock(clock.Now)).(repository.Importer)

	todo, err := importer.Import(ctx, model.Todo{Title: "no dates"})
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), todo.CreatedAt)
	assert.Equal(t, todo.CreatedAt, todo.UpdatedAt)

	todo, err = importer.Import(ctx, model.Todo{Title: "updated before created", CreatedAt: clock.Now(), UpdatedAt: clock.Now().Add(-time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, todo.CreatedAt, todo.UpdatedAt)
}

func TestRepository_Import_TiesKeepInsertOrder(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	repo := NewRepository(WithClock(clock.Now))
	importer := repo.(repository.Importer)

	same := clock.Now().Add(-time.Hour)
	first, _ := importer.Import(ctx, model.Todo{Title: "first", CreatedAt: same})
	second, _ := importer.Import(ctx, model.Todo{Title: "second", CreatedAt: same})
	newer, _ := repo.Create(ctx, model.CreateInput{Title: "newer"})

	todos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, []string{newer.ID, second.ID, first.ID}, []string{todos[0].ID, todos[1].ID, todos[2].ID})
}

func TestRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := NewRepository()

	_, err := repo.Create(ctx, model.CreateInput{Title: "a"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRepository_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	created, err := repo.Create(ctx, model.CreateInput{Title: "counter"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, _ = repo.Create(ctx, model.CreateInput{Title: "t" + strconv.Itoa(i)})
		}(i)
		go func(i int) {
			defer wg.Done()
			_, _ = repo.Update(ctx, created.ID, model.UpdateInput{Completed: model.Some(i%2 == 0)})
		}(i)
	}
	wg.Wait()

	todos, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, 51)
}
