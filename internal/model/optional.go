package model

// Optional хранит значение вместе с признаком его наличия
type Optional[T any] struct {
	Value   T
	Present bool
}

// Some возвращает присутствующее значение
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

// FromPtr: nil означает отсутствие поля
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return Optional[T]{}
	}
	return Some(*p)
}

// Ptr возвращает указатель на значение или nil, если поле отсутствует
func (o Optional[T]) Ptr() *T {
	if !o.Present {
		return nil
	}
	v := o.Value
	return &v
}
