package todos

import (
	"context"
	"strings"
	"time"

	"todo-service/internal/model"
	"todo-service/internal/query"
	"todo-service/internal/repository"
	svc "todo-service/internal/service"
	"todo-service/internal/validator"
)

var _ svc.TodoService = (*service)(nil)

type service struct {
	todoRepository repository.TodoRepository
	validator      *validator.Validator
	events         *EventService
	now            func() time.Time
}

// Option настраивает сервис
type Option func(*service)

// WithEvents включает публикацию событий об изменениях
func WithEvents(events *EventService) Option {
	return func(s *service) {
		s.events = events
	}
}

// NewTodoService создает новый экземпляр сервиса для работы с задачами
func NewTodoService(todoRepository repository.TodoRepository, v *validator.Validator, opts ...Option) svc.TodoService {
	s := &service{
		todoRepository: todoRepository,
		validator:      v,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create создает новую задачу
func (s *service) Create(ctx context.Context, in model.CreateInput) (model.Todo, error) {
	// Заголовок храним без окружающих пробелов
	in.Title = strings.TrimSpace(in.Title)

	if err := s.validator.CheckCreate(in); err != nil {
		return model.Todo{}, err
	}
	if in.Title == "" {
		return model.Todo{}, model.NewValidationError(model.FieldError{Field: "title", Message: "must not be empty"})
	}

	// UUID и временные метки проставляет репозиторий
	created, err := s.todoRepository.Create(ctx, in)
	if err != nil {
		return model.Todo{}, err
	}

	s.publish(model.EventCreated, created)
	return created, nil
}

// Get возвращает задачу по её ID
func (s *service) Get(ctx context.Context, id string) (model.Todo, error) {
	if err := checkID(id); err != nil {
		return model.Todo{}, err
	}

	todo, ok, err := s.todoRepository.GetByID(ctx, id)
	if err != nil {
		return model.Todo{}, err
	}
	if !ok {
		return model.Todo{}, &model.NotFoundError{ID: id}
	}

	return todo, nil
}

// List возвращает список всех задач
func (s *service) List(ctx context.Context) ([]model.Todo, error) {
	todos, err := s.todoRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	return todos, nil
}

// Query применяет фильтр и поиск к полному списку
func (s *service) Query(ctx context.Context, status model.StatusFilter, q string) (model.View, error) {
	todos, err := s.todoRepository.List(ctx)
	if err != nil {
		return model.View{}, err
	}

	return query.Apply(todos, status, q), nil
}

// Stats считает агрегаты по всем задачам
func (s *service) Stats(ctx context.Context) (model.Stats, error) {
	todos, err := s.todoRepository.List(ctx)
	if err != nil {
		return model.Stats{}, err
	}

	return query.ComputeStats(todos), nil
}

// Update обновляет задачу с указанным ID
func (s *service) Update(ctx context.Context, id string, patch model.UpdateInput) (model.Todo, error) {
	if err := checkID(id); err != nil {
		return model.Todo{}, err
	}

	if patch.Title.Present {
		patch.Title.Value = strings.TrimSpace(patch.Title.Value)
	}

	if err := s.validator.CheckUpdate(patch); err != nil {
		return model.Todo{}, err
	}
	if patch.Title.Present && patch.Title.Value == "" {
		return model.Todo{}, model.NewValidationError(model.FieldError{Field: "title", Message: "must not be empty"})
	}

	// Слияние выполняется в репозитории под блокировкой
	updated, err := s.todoRepository.Update(ctx, id, patch)
	if err != nil {
		return model.Todo{}, err
	}

	s.publish(model.EventUpdated, updated)
	return updated, nil
}

// Delete удаляет задачу по ID
func (s *service) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	removed, err := s.todoRepository.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.publish(model.EventDeleted, removed)
	return nil
}

func (s *service) publish(typ model.EventType, todo model.Todo) {
	if s.events == nil {
		return
	}
	s.events.Publish(model.TodoEvent{
		Type:       typ,
		Todo:       todo,
		OccurredAt: s.now(),
	})
}

func checkID(id string) error {
	if strings.TrimSpace(id) == "" {
		return model.NewValidationError(model.FieldError{Field: "id", Message: "must not be empty"})
	}
	return nil
}
