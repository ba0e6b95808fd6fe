package repository

import (
	"context"

	"todo-service/internal/model"
)

// TodoRepository интерфейс для работы с задачами в хранилище
type TodoRepository interface {
	// Create создает новую задачу, генерирует ID и проставляет временные метки
	Create(ctx context.Context, in model.CreateInput) (model.Todo, error)

	// GetByID возвращает задачу по ID. Отсутствие задачи - не ошибка: ok == false
	GetByID(ctx context.Context, id string) (todo model.Todo, ok bool, err error)

	// List возвращает все задачи, новые первыми (по CreatedAt)
	List(ctx context.Context) ([]model.Todo, error)

	// Update атомарно накладывает патч на задачу и обновляет UpdatedAt
	Update(ctx context.Context, id string, patch model.UpdateInput) (model.Todo, error)

	// Delete удаляет задачу по ID и возвращает удаленную запись
	Delete(ctx context.Context, id string) (model.Todo, error)
}

// Importer сохраняет готовые записи с их временными метками (демонстрационные данные)
type Importer interface {
	// Import сохраняет задачу как есть. Пустой ID генерируется, занятый ID - ошибка.
	Import(ctx context.Context, todo model.Todo) (model.Todo, error)
}
