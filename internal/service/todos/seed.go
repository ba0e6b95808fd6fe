package todos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"todo-service/internal/model"
	"todo-service/internal/repository"
	"todo-service/internal/validator"
)

// SampleTodo - демонстрационная задача с возрастом относительно момента сидирования
type SampleTodo struct {
	Input model.CreateInput
	// CreatedAgo и UpdatedAgo отсчитываются назад от now
	CreatedAgo time.Duration
	UpdatedAgo time.Duration
}

// SampleTodos - демонстрационный набор в порядке отображения (новые первыми,
// при равном CreatedAt порядок списка сохраняется)
func SampleTodos() []SampleTodo {
	const day = 24 * time.Hour
	return []SampleTodo{
		{
			Input: model.CreateInput{
				Title:       "Complete project documentation",
				Description: "Finish writing all the technical documentation for the project",
				Completed:   true,
			},
			CreatedAgo: day,
			UpdatedAgo: 2 * time.Hour,
		},
		{
			Input: model.CreateInput{
				Title:       "Review code changes",
				Description: "Go through the pull request and provide feedback on the new feature implementation",
			},
			CreatedAgo: day,
			UpdatedAgo: day,
		},
		{
			Input: model.CreateInput{
				Title:       "Update API documentation",
				Description: "Update the API documentation to reflect the latest changes in version 2.0",
			},
			CreatedAgo: 3 * time.Hour,
			UpdatedAgo: 3 * time.Hour,
		},
		{
			Input: model.CreateInput{
				Title:       "Prepare presentation slides",
				Description: "Create slides for the quarterly team meeting presentation",
			},
			CreatedAgo: 3 * time.Hour,
			UpdatedAgo: 3 * time.Hour,
		},
	}
}

// Seed проверяет задачи тем же валидатором, что и API, и сохраняет их с заданными датами.
// Репозиторий ставит позже вставленную запись раньше при равном CreatedAt,
// поэтому элементы сохраняются с конца. Результат идет в порядке items.
func Seed(ctx context.Context, repo repository.Importer, v *validator.Validator, items []SampleTodo, now time.Time) ([]model.Todo, error) {
	for i, item := range items {
		item.Input.Title = strings.TrimSpace(item.Input.Title)
		if err := v.CheckCreate(item.Input); err != nil {
			return nil, fmt.Errorf("seed item %d: %w", i, err)
		}
	}

	created := make([]model.Todo, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		todo, err := repo.Import(ctx, model.Todo{
			Title:       strings.TrimSpace(item.Input.Title),
			Description: item.Input.Description,
			Completed:   item.Input.Completed,
			CreatedAt:   now.Add(-item.CreatedAgo),
			UpdatedAt:   now.Add(-item.UpdatedAgo),
		})
		if err != nil {
			return nil, fmt.Errorf("seed item %d: %w", i, err)
		}
		created[i] = todo
	}
	return created, nil
}
