package todos

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"todo-service/internal/model"
	"todo-service/internal/repository"
	"todo-service/internal/repository/faulty"
	"todo-service/internal/repository/memory"
	"todo-service/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository - простой mock репозитория для тестирования
type mockRepository struct {
	todos       map[string]model.Todo
	createCalls int
	updateCalls int
	createError error
	getError    error
	listError   error
	updateError error
	deleteError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		todos: make(map[string]model.Todo),
	}
}

func (m *mockRepository) Create(ctx context.Context, in model.CreateInput) (model.Todo, error) {
	m.createCalls++
	if m.createError != nil {
		return model.Todo{}, m.createError
	}

	now := time.Now()
	todo := model.Todo{
		ID:          fmt.Sprintf("test-id-%d", m.createCalls),
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.todos[todo.ID] = todo
	return todo, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (model.Todo, bool, error) {
	if m.getError != nil {
		return model.Todo{}, false, m.getError
	}
	todo, ok := m.todos[id]
	return todo, ok, nil
}

func (m *mockRepository) List(ctx context.Context) ([]model.Todo, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	todos := make([]model.Todo, 0, len(m.todos))
	for _, todo := range m.todos {
		todos = append(todos, todo)
	}
	return todos, nil
}

func (m *mockRepository) Update(ctx context.Context, id string, patch model.UpdateInput) (model.Todo, error) {
	m.updateCalls++
	if m.updateError != nil {
		return model.Todo{}, m.updateError
	}
	todo, ok := m.todos[id]
	if !ok {
		return model.Todo{}, &model.NotFoundError{ID: id}
	}
	todo = patch.Apply(todo)
	todo.UpdatedAt = time.Now()
	m.todos[id] = todo
	return todo, nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) (model.Todo, error) {
	if m.deleteError != nil {
		return model.Todo{}, m.deleteError
	}
	todo, ok := m.todos[id]
	if !ok {
		return model.Todo{}, &model.NotFoundError{ID: id}
	}
	delete(m.todos, id)
	return todo, nil
}

// Проверяем, что mockRepository реализует интерфейс
var _ repository.TodoRepository = (*mockRepository)(nil)

func TestTodoService_Create_TrimsTitle(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := NewTodoService(repo, validator.MustNew())

	todo, err := service.Create(ctx, model.CreateInput{Title: "  Buy milk  ", Description: " 2 liters "})
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", todo.Title)
	assert.Equal(t, " 2 liters ", todo.Description, "description is stored as is")
	assert.False(t, todo.Completed)
}

func TestTodoService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := NewTodoService(repo, validator.MustNew())

	for _, title := range []string{"", "   "} {
		_, err := service.Create(ctx, model.CreateInput{Title: title, Description: "x"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrValidation))
	}
	assert.Equal(t, 0, repo.createCalls, "repository must not be called on invalid input")
}

func TestTodoService_Create_RepositoryError(t *testing.T) {
	repo := newMockRepository()
	repo.createError = errors.New("storage down")
	service := NewTodoService(repo, validator.MustNew())

	_, err := service.Create(context.Background(), model.CreateInput{Title: "a"})
	assert.EqualError(t, err, "storage down")
}

func TestTodoService_Get(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := NewTodoService(repo, validator.MustNew())

	created, err := service.Create(ctx, model.CreateInput{Title: "a"})
	require.NoError(t, err)

	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = service.Get(ctx, "missing")
	assert.True(t, errors.Is(err, model.ErrNotFound))

	_, err = service.Get(ctx, " ")
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestTodoService_Update(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := NewTodoService(repo, validator.MustNew())

	created, _ := service.Create(ctx, model.CreateInput{Title: "Buy milk", Description: "2 liters"})

	updated, err := service.Update(ctx, created.ID, model.UpdateInput{Title: model.Some("  Buy oat milk ")})
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.Title)
	assert.Equal(t, "2 liters", updated.Description)

	_, err = service.Update(ctx, created.ID, model.UpdateInput{Title: model.Some("   ")})
	assert.True(t, errors.Is(err, model.ErrValidation))
	assert.Equal(t, 1, repo.updateCalls)

	_, err = service.Update(ctx, "missing", model.UpdateInput{Completed: model.Some(true)})
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestTodoService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := NewTodoService(repo, validator.MustNew())

	created, _ := service.Create(ctx, model.CreateInput{Title: "a"})
	require.NoError(t, service.Delete(ctx, created.ID))

	_, err := service.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	err = service.Delete(ctx, created.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestTodoService_QueryAndStats(t *testing.T) {
	ctx := context.Background()
	service := NewTodoService(memory.NewRepository(), validator.MustNew())

	for _, in := range []model.CreateInput{
		{Title: "Buy milk", Description: "2 liters"},
		{Title: "Review code", Description: "PR #42", Completed: true},
		{Title: "Write docs", Description: ""},
	} {
		_, err := service.Create(ctx, in)
		require.NoError(t, err)
	}

	view, err := service.Query(ctx, model.StatusPending, "")
	require.NoError(t, err)
	assert.Len(t, view.Todos, 2)
	assert.Equal(t, model.Stats{Total: 3, Completed: 1, Pending: 2}, view.Stats)

	view, err = service.Query(ctx, model.StatusAll, "REVIEW")
	require.NoError(t, err)
	require.Len(t, view.Todos, 1)
	assert.Equal(t, "Review code", view.Todos[0].Title)

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
}

// Полный сценарий: создание, отметка выполнения, поиск, удаление
func TestTodoService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	service := NewTodoService(memory.NewRepository(), validator.MustNew())

	created, err := service.Create(ctx, model.CreateInput{Title: "Buy milk", Description: ""})
	require.NoError(t, err)
	assert.False(t, created.Completed)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	todo, err := service.Update(ctx, created.ID, model.UpdateInput{Completed: model.Some(true)})
	require.NoError(t, err)
	assert.True(t, todo.Completed)
	assert.Equal(t, created.ID, todo.ID)
	assert.Equal(t, created.CreatedAt, todo.CreatedAt)
	assert.True(t, todo.UpdatedAt.After(created.UpdatedAt))

	view, err := service.Query(ctx, model.StatusCompleted, "milk")
	require.NoError(t, err)
	require.Len(t, view.Todos, 1)
	assert.Equal(t, todo.ID, view.Todos[0].ID)

	require.NoError(t, service.Delete(ctx, todo.ID))
	todos, err := service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestTodoService_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	events := NewEventService()
	service := NewTodoService(memory.NewRepository(), validator.MustNew(), WithEvents(events))

	ch := events.Subscribe()
	defer events.Unsubscribe(ch)

	created, err := service.Create(ctx, model.CreateInput{Title: "a", Description: "b"})
	require.NoError(t, err)
	_, err = service.Update(ctx, created.ID, model.UpdateInput{Completed: model.Some(true)})
	require.NoError(t, err)
	require.NoError(t, service.Delete(ctx, created.ID))

	// Неудачные мутации событий не порождают
	_, _ = service.Create(ctx, model.CreateInput{Title: " "})
	_ = service.Delete(ctx, created.ID)

	want := []model.EventType{model.EventCreated, model.EventUpdated, model.EventDeleted}
	for _, typ := range want {
		select {
		case event := <-ch:
			assert.Equal(t, typ, event.Type)
			assert.Equal(t, created.ID, event.Todo.ID)
			assert.Equal(t, "a", event.Todo.Title, "event carries the full record")
			assert.False(t, event.OccurredAt.IsZero())
		case <-time.After(time.Second):
			t.Fatalf("expected %s event", typ)
		}
	}

	select {
	case event := <-ch:
		t.Fatalf("unexpected event: %+v", event)
	default:
	}
}

func TestEventService_SlowSubscriberDoesNotBlock(t *testing.T) {
	events := NewEventService()
	ch := events.Subscribe()

	for i := 0; i < subscriberBuffer*2; i++ {
		events.Publish(model.TodoEvent{Type: model.EventCreated})
	}
	assert.Len(t, ch, subscriberBuffer)

	assert.Equal(t, 1, events.Subscribers())
	events.Unsubscribe(ch)
	events.Unsubscribe(ch)
	assert.Equal(t, 0, events.Subscribers())

	_, open := <-drain(ch)
	assert.False(t, open)
}

// drain вычитывает буфер и возвращает закрытый канал
func drain(ch chan model.TodoEvent) chan model.TodoEvent {
	for range ch {
	}
	return ch
}

// Удаление с событиями обращается к хранилищу один раз, даже через fault injection
func TestTodoService_Delete_SingleRepositoryCall(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewRepository()
	created, err := inner.Create(ctx, model.CreateInput{Title: "a", Description: "b"})
	require.NoError(t, err)

	var ops []time.Duration
	repo := faulty.NewRepository(inner, faulty.DefaultConfig(),
		faulty.WithRand(func() float64 { return 1 }),
		faulty.WithSleep(func(ctx context.Context, d time.Duration) error {
			ops = append(ops, d)
			return nil
		}),
	)
	events := NewEventService()
	service := NewTodoService(repo, validator.MustNew(), WithEvents(events))

	ch := events.Subscribe()
	defer events.Unsubscribe(ch)

	require.NoError(t, service.Delete(ctx, created.ID))
	assert.Equal(t, []time.Duration{faulty.DefaultConfig().Delays[faulty.OpDelete]}, ops)

	event := <-ch
	assert.Equal(t, model.EventDeleted, event.Type)
	assert.Equal(t, created, event.Todo)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	service := NewTodoService(repo, validator.MustNew())
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	created, err := Seed(ctx, repo.(repository.Importer), validator.MustNew(), SampleTodos(), now)
	require.NoError(t, err)
	require.Len(t, created, 4)

	first := created[0]
	assert.True(t, first.Completed)
	assert.Equal(t, now.Add(-24*time.Hour), first.CreatedAt)
	assert.Equal(t, now.Add(-2*time.Hour), first.UpdatedAt)
	assert.True(t, first.UpdatedAt.After(first.CreatedAt))

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{Total: 4, Completed: 1, Pending: 3}, stats)

	// Новые первыми, равные CreatedAt в порядке набора
	todos, err := service.List(ctx)
	require.NoError(t, err)
	titles := make([]string, 0, len(todos))
	for _, todo := range todos {
		titles = append(titles, todo.Title)
	}
	assert.Equal(t, []string{
		"Update API documentation",
		"Prepare presentation slides",
		"Complete project documentation",
		"Review code changes",
	}, titles)
}

func TestSeed_InvalidItemStoresNothing(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()

	items := []SampleTodo{
		{Input: model.CreateInput{Title: "ok"}},
		{Input: model.CreateInput{Title: "  "}},
	}
	_, err := Seed(ctx, repo.(repository.Importer), validator.MustNew(), items, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed item 1")
	assert.True(t, errors.Is(err, model.ErrValidation))

	todos, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}
