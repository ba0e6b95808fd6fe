package model

import "strings"

// StatusFilter сужает список задач по признаку выполнения
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

// ParseStatusFilter разбирает значение фильтра. Пустая строка означает all.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusPending:
		return StatusPending, nil
	case StatusCompleted:
		return StatusCompleted, nil
	default:
		return "", NewValidationError(FieldError{
			Field:   "status",
			Message: "must be one of all, pending, completed",
		})
	}
}

// Keep сообщает, проходит ли задача через фильтр
func (f StatusFilter) Keep(t Todo) bool {
	switch f {
	case StatusPending:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	default:
		return true
	}
}
