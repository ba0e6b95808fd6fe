package service

import (
	"context"

	"todo-service/internal/model"
)

// TodoService интерфейс для бизнес-логики работы с задачами
type TodoService interface {
	// Create валидирует ввод и создает новую задачу
	Create(ctx context.Context, in model.CreateInput) (model.Todo, error)

	// Get возвращает задачу по ID или *model.NotFoundError
	Get(ctx context.Context, id string) (model.Todo, error)

	// List возвращает все задачи, новые первыми
	List(ctx context.Context) ([]model.Todo, error)

	// Query возвращает задачи по фильтру статуса и строке поиска вместе со статистикой
	Query(ctx context.Context, status model.StatusFilter, q string) (model.View, error)

	// Stats возвращает агрегаты по всем задачам
	Stats(ctx context.Context) (model.Stats, error)

	// Update частично обновляет задачу (присутствующие поля перезаписываются)
	Update(ctx context.Context, id string, patch model.UpdateInput) (model.Todo, error)

	// Delete удаляет задачу по ID
	Delete(ctx context.Context, id string) error
}
