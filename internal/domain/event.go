package domain

import "time"

// Event types published on every successful mutation.
const (
	EventTodoCreated     = "todo.created"
	EventTodoUpdated     = "todo.updated"
	EventTodoDeleted     = "todo.deleted"
	EventTodoToggled     = "todo.toggled"
	EventCategoryCreated = "category.created"
	EventCategoryUpdated = "category.updated"
	EventCategoryDeleted = "category.deleted"
)

type Event struct {
	Type string    `json:"type"`
	ID   int64     `json:"id"`
	Data any       `json:"data,omitempty"`
	At   time.Time `json:"at"`
}
