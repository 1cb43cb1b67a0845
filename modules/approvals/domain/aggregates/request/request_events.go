package request

import (
	"time"

	"github.com/google/uuid"
)

type CreatedEvent struct {
	Request   Request
	Timestamp time.Time
}

type TransitionedEvent struct {
	RequestID uuid.UUID
	ActorID   uuid.UUID
	Decision  Decision
	From      Status
	To        Status
	Timestamp time.Time
}

func NewCreatedEvent(r Request) *CreatedEvent {
	return &CreatedEvent{Request: r, Timestamp: time.Now()}
}

func NewTransitionedEvent(requestID, actorID uuid.UUID, d Decision, from, to Status) *TransitionedEvent {
	return &TransitionedEvent{
		RequestID: requestID,
		ActorID:   actorID,
		Decision:  d,
		From:      from,
		To:        to,
		Timestamp: time.Now(),
	}
}
