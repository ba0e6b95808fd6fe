package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"todo-service/internal/model"
	"todo-service/internal/repository"

	"github.com/google/uuid"
)

var (
	_ repository.TodoRepository = (*repo)(nil)
	_ repository.Importer       = (*repo)(nil)
)

// entry - задача плюс порядковый номер вставки для стабильной сортировки
type entry struct {
	todo model.Todo
	seq  uint64
}

type repo struct {
	mu    sync.RWMutex
	todos map[string]entry
	seq   uint64

	now   func() time.Time
	newID func() string
}

// Option настраивает репозиторий
type Option func(*repo)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(r *repo) {
		r.now = now
	}
}

// WithIDGenerator подменяет генератор ID (для тестов)
func WithIDGenerator(newID func() string) Option {
	return func(r *repo) {
		r.newID = newID
	}
}

// NewRepository создает новый экземпляр in-memory репозитория на основе map
func NewRepository(opts ...Option) repository.TodoRepository {
	r := &repo{
		todos: make(map[string]entry),
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create создает новую задачу и возвращает ее с ID и временными метками
func (r *repo) Create(ctx context.Context, in model.CreateInput) (model.Todo, error) {
	if err := ctx.Err(); err != nil {
		return model.Todo{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	todo := model.Todo{
		ID:          r.freshID(),
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.seq++
	r.todos[todo.ID] = entry{todo: todo, seq: r.seq}

	return todo, nil
}

// Import сохраняет задачу с заданными временными метками
func (r *repo) Import(ctx context.Context, todo model.Todo) (model.Todo, error) {
	if err := ctx.Err(); err != nil {
		return model.Todo{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if todo.ID == "" {
		todo.ID = r.freshID()
	} else if _, exists := r.todos[todo.ID]; exists {
		return model.Todo{}, fmt.Errorf("todo %q already exists", todo.ID)
	}

	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = r.now()
	}
	if todo.UpdatedAt.Before(todo.CreatedAt) {
		todo.UpdatedAt = todo.CreatedAt
	}

	r.seq++
	r.todos[todo.ID] = entry{todo: todo, seq: r.seq}

	return todo, nil
}

// freshID выдает незанятый ID. Вызывается под r.mu.
// UUID v4 практически не повторяется, но занятый ID все равно не выдаем.
func (r *repo) freshID() string {
	id := r.newID()
	for {
		if _, exists := r.todos[id]; !exists {
			return id
		}
		id = r.newID()
	}
}

// GetByID возвращает задачу по её ID
func (r *repo) GetByID(ctx context.Context, id string) (model.Todo, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Todo{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.todos[id]
	if !exists {
		return model.Todo{}, false, nil
	}
	return e.todo, true, nil
}

// List возвращает все задачи: новые первыми, при равном CreatedAt позже вставленная раньше
func (r *repo) List(ctx context.Context) ([]model.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	entries := make([]entry, 0, len(r.todos))
	for _, e := range r.todos {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.todo.CreatedAt.Equal(b.todo.CreatedAt) {
			return a.todo.CreatedAt.After(b.todo.CreatedAt)
		}
		return a.seq > b.seq
	})

	todos := make([]model.Todo, len(entries))
	for i, e := range entries {
		todos[i] = e.todo
	}
	return todos, nil
}

// Update накладывает патч на задачу под общей блокировкой (read-modify-write)
func (r *repo) Update(ctx context.Context, id string, patch model.UpdateInput) (model.Todo, error) {
	if err := ctx.Err(); err != nil {
		return model.Todo{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.todos[id]
	if !exists {
		return model.Todo{}, &model.NotFoundError{ID: id}
	}

	updated := patch.Apply(e.todo)

	// UpdatedAt обязан расти даже на грубых часах
	now := r.now()
	if !now.After(e.todo.UpdatedAt) {
		now = e.todo.UpdatedAt.Add(time.Nanosecond)
	}
	updated.UpdatedAt = now

	e.todo = updated
	r.todos[id] = e

	return updated, nil
}

// Delete удаляет задачу по ID и возвращает ее последнее состояние
func (r *repo) Delete(ctx context.Context, id string) (model.Todo, error) {
	if err := ctx.Err(); err != nil {
		return model.Todo{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.todos[id]
	if !exists {
		return model.Todo{}, &model.NotFoundError{ID: id}
	}

	delete(r.todos, id)

	return e.todo, nil
}
