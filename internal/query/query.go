// Package query строит видимое подмножество задач: фильтр по статусу,
// текстовый поиск и статистика. Все функции чистые и не меняют вход.
package query

import "todo-service/internal/model"

// Filter оставляет задачи, прошедшие фильтр статуса, затем текстовый поиск.
// Порядок входа сохраняется.
func Filter(todos []model.Todo, status model.StatusFilter, q string) []model.Todo {
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if !status.Keep(t) {
			continue
		}
		if !t.Matches(q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ComputeStats считает агрегаты по переданному (нефильтрованному) набору
func ComputeStats(todos []model.Todo) model.Stats {
	stats := model.Stats{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			stats.Completed++
		} else {
			stats.Pending++
		}
	}
	return stats
}

// Apply возвращает отфильтрованный список и статистику по полному набору
func Apply(todos []model.Todo, status model.StatusFilter, q string) model.View {
	return model.View{
		Todos: Filter(todos, status, q),
		Stats: ComputeStats(todos),
	}
}
