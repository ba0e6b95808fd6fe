package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation - сентинел для errors.Is по любой ValidationError
	ErrValidation = errors.New("validation failed")
	// ErrNotFound - сентинел для errors.Is по любой NotFoundError
	ErrNotFound = errors.New("todo not found")
)

// FieldError описывает проблему с одним полем запроса.
// Пустой Field относится к телу запроса целиком.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) String() string {
	if f.Field == "" {
		return f.Message
	}
	return f.Field + ": " + f.Message
}

// ValidationError возвращается при некорректных входных данных.
// Повторять запрос без исправления бессмысленно.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError создает ошибку валидации по списку полей
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FieldNames возвращает имена полей с ошибками в исходном порядке без повторов
func (e *ValidationError) FieldNames() []string {
	seen := make(map[string]bool, len(e.Fields))
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if seen[f.Field] {
			continue
		}
		seen[f.Field] = true
		names = append(names, f.Field)
	}
	return names
}

// NotFoundError возвращается, когда задача с указанным ID не существует
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("todo %q not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
