package model

import "time"

// EventType - тип изменения задачи
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// TodoEvent публикуется после каждой успешной мутации
type TodoEvent struct {
	Type       EventType `json:"type"`
	Todo       Todo      `json:"todo"`
	OccurredAt time.Time `json:"occurredAt"`
}
