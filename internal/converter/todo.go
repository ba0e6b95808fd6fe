package converter

import (
	"todo-service/internal/model"
	todov1 "todo-service/pkg/api/todo/v1"
)

// ModelToAPI конвертирует domain модель Todo в сообщение API
func ModelToAPI(todo model.Todo) *todov1.Todo {
	return &todov1.Todo{
		Id:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

// APIToModel конвертирует сообщение API в domain модель
func APIToModel(todo *todov1.Todo) model.Todo {
	if todo == nil {
		return model.Todo{}
	}

	return model.Todo{
		ID:          todo.Id,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

// ModelsToAPI конвертирует слайс моделей. Пустой список остается пустым, не nil.
func ModelsToAPI(todos []model.Todo) []*todov1.Todo {
	out := make([]*todov1.Todo, len(todos))
	for i, todo := range todos {
		out[i] = ModelToAPI(todo)
	}
	return out
}

// StatsToAPI конвертирует статистику
func StatsToAPI(stats model.Stats) *todov1.Stats {
	return &todov1.Stats{
		Total:     int32(stats.Total),
		Completed: int32(stats.Completed),
		Pending:   int32(stats.Pending),
	}
}

// CreateRequestToInput достает CreateInput из запроса.
// Отсутствующие title/description превращаются в пустые строки и отсекаются валидацией.
func CreateRequestToInput(req *todov1.CreateTodoRequest) model.CreateInput {
	var in model.CreateInput
	if req == nil {
		return in
	}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Completed != nil {
		in.Completed = *req.Completed
	}
	return in
}

// UpdateRequestToPatch достает патч из запроса: nil поле означает "не менять"
func UpdateRequestToPatch(req *todov1.UpdateTodoRequest) model.UpdateInput {
	if req == nil {
		return model.UpdateInput{}
	}
	return model.UpdateInput{
		Title:       model.FromPtr(req.Title),
		Description: model.FromPtr(req.Description),
		Completed:   model.FromPtr(req.Completed),
	}
}

// InputToCreateRequest - обратное преобразование для клиентов (gateway, CLI)
func InputToCreateRequest(in model.CreateInput) *todov1.CreateTodoRequest {
	completed := in.Completed
	return &todov1.CreateTodoRequest{
		Title:       &in.Title,
		Description: &in.Description,
		Completed:   &completed,
	}
}

// PatchToUpdateRequest - обратное преобразование патча для клиентов
func PatchToUpdateRequest(id string, patch model.UpdateInput) *todov1.UpdateTodoRequest {
	return &todov1.UpdateTodoRequest{
		Id:          id,
		Title:       patch.Title.Ptr(),
		Description: patch.Description.Ptr(),
		Completed:   patch.Completed.Ptr(),
	}
}

// EventToAPI конвертирует событие изменения
func EventToAPI(event model.TodoEvent) *todov1.TodoEvent {
	return &todov1.TodoEvent{
		Type:       string(event.Type),
		Todo:       ModelToAPI(event.Todo),
		OccurredAt: event.OccurredAt,
	}
}
