package model

import (
	"strings"
	"time"
)

// Todo представляет задачу (доменная модель)
type Todo struct {
	ID          string    `json:"id"`          // UUID задачи, не меняется после создания
	Title       string    `json:"title"`       // Заголовок, не пустой после валидации
	Description string    `json:"description"` // Описание, может быть пустым
	Completed   bool      `json:"completed"`   // Признак выполнения
	CreatedAt   time.Time `json:"createdAt"`   // Дата создания
	UpdatedAt   time.Time `json:"updatedAt"`   // Дата последнего изменения
}

// Matches проверяет вхождение query в title или description без учета регистра.
// Пустой query совпадает с любой задачей.
func (t *Todo) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// CreateInput - данные для создания задачи
type CreateInput struct {
	Title       string
	Description string
	Completed   bool
}

// UpdateInput - частичное обновление задачи.
// Отсутствующее поле не трогает текущее значение, присутствующее перезаписывает его
// (в том числе пустой строкой или false).
type UpdateInput struct {
	Title       Optional[string]
	Description Optional[string]
	Completed   Optional[bool]
}

// IsEmpty возвращает true, если в патче нет ни одного поля
func (u UpdateInput) IsEmpty() bool {
	return !u.Title.Present && !u.Description.Present && !u.Completed.Present
}

// Apply накладывает присутствующие поля на задачу. ID и даты не меняются.
func (u UpdateInput) Apply(t Todo) Todo {
	if u.Title.Present {
		t.Title = u.Title.Value
	}
	if u.Description.Present {
		t.Description = u.Description.Value
	}
	if u.Completed.Present {
		t.Completed = u.Completed.Value
	}
	return t
}

// Stats - агрегаты по всему набору задач (без учета фильтров)
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// View - отфильтрованный список задач вместе со статистикой по полному набору
type View struct {
	Todos []Todo `json:"todos"`
	Stats Stats  `json:"stats"`
}
