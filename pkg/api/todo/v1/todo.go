// Package todov1 описывает API todo.v1.TodoService: сообщения, gRPC сервис и клиент.
// Сообщения - обычные Go структуры, передаются через JSON кодек (см. codec.go).
package todov1

import (
	"encoding/json"
	"time"
)

// Todo - задача в API
type Todo struct {
	Id          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (x *Todo) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

// Stats - агрегаты по всем задачам
type Stats struct {
	Total     int32 `json:"total"`
	Completed int32 `json:"completed"`
	Pending   int32 `json:"pending"`
}

type ListTodosRequest struct {
	// Status: all | pending | completed, пустое значение означает all
	Status string `json:"status,omitempty"`
	// Query - подстрока для поиска по title и description без учета регистра
	Query string `json:"query,omitempty"`
}

func (x *ListTodosRequest) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}

func (x *ListTodosRequest) GetQuery() string {
	if x != nil {
		return x.Query
	}
	return ""
}

type ListTodosResponse struct {
	Todos []*Todo `json:"todos"`
	Stats *Stats  `json:"stats"`
}

type GetTodoRequest struct {
	Id string `json:"id"`
}

func (x *GetTodoRequest) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

type GetTodoResponse struct {
	Todo *Todo `json:"todo"`
}

// CreateTodoRequest: nil поле означает, что оно не передано
type CreateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`

	raw []byte
}

// UnmarshalJSON запоминает исходное тело и разбирает поля без ошибок типов:
// поле неверного типа остается nil, отказ вернет валидация по RawJSON.
func (x *CreateTodoRequest) UnmarshalJSON(data []byte) error {
	fields := decodeObject(data)
	*x = CreateTodoRequest{
		Title:       decodeField[string](fields, "title"),
		Description: decodeField[string](fields, "description"),
		Completed:   decodeField[bool](fields, "completed"),
		raw:         append([]byte(nil), data...),
	}
	return nil
}

// RawJSON возвращает тело, из которого запрос был декодирован (nil для собранного в коде)
func (x *CreateTodoRequest) RawJSON() []byte {
	if x != nil {
		return x.raw
	}
	return nil
}

type CreateTodoResponse struct {
	Todo *Todo `json:"todo"`
}

// UpdateTodoRequest: nil поле остается без изменений
type UpdateTodoRequest struct {
	Id          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`

	raw []byte
}

// UnmarshalJSON работает как у CreateTodoRequest
func (x *UpdateTodoRequest) UnmarshalJSON(data []byte) error {
	fields := decodeObject(data)
	*x = UpdateTodoRequest{
		Title:       decodeField[string](fields, "title"),
		Description: decodeField[string](fields, "description"),
		Completed:   decodeField[bool](fields, "completed"),
		raw:         append([]byte(nil), data...),
	}
	if id := decodeField[string](fields, "id"); id != nil {
		x.Id = *id
	}
	return nil
}

func (x *UpdateTodoRequest) RawJSON() []byte {
	if x != nil {
		return x.raw
	}
	return nil
}

func (x *UpdateTodoRequest) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

type UpdateTodoResponse struct {
	Todo *Todo `json:"todo"`
}

type DeleteTodoRequest struct {
	Id string `json:"id"`
}

func (x *DeleteTodoRequest) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

// TodoEvent - событие стрима WatchTodos
type TodoEvent struct {
	Type       string    `json:"type"`
	Todo       *Todo     `json:"todo"`
	OccurredAt time.Time `json:"occurredAt"`
}

// decodeObject раскладывает JSON объект по ключам. Не объект дает пустой результат.
func decodeObject(data []byte) map[string]json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	return fields
}

// decodeField декодирует одно поле. Отсутствие, null и неверный тип дают nil.
func decodeField[T any](fields map[string]json.RawMessage, name string) *T {
	data, ok := fields[name]
	if !ok {
		return nil
	}
	var v *T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return v
}
