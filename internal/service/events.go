package service

import (
	"time"

	"todo_backend/internal/domain"
)

// EventPublisher receives change events after successful mutations.
type EventPublisher interface {
	Publish(domain.Event)
}

func publish(p EventPublisher, typ string, id int64, data any) {
	if p == nil {
		return
	}
	p.Publish(domain.Event{Type: typ, ID: id, Data: data, At: time.Now().UTC()})
}
