// Package pubsub provides a generic publish/subscribe event system. The
// application service publishes registry changes on it and the terminal UI
// turns them into toasts; the logger publishes formatted log lines.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// CreatedEvent is published when an entity is added.
	CreatedEvent EventType = "created"
	// LinkedEvent is published when a relationship is added.
	LinkedEvent EventType = "linked"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
