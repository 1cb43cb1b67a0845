package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyMessage         = errors.New("empty message")
	ErrMessageTooLong       = errors.New("message too long")
	ErrNoMessages           = errors.New("no messages")
)

const (
	MaxMessageLength = 4096
	MaxMessages      = 200
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Conversation, error)
	Save(ctx context.Context, conv Conversation) (Conversation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]Conversation, error)
}

type conversation struct {
	id        uuid.UUID
	actorID   uuid.UUID
	createdAt time.Time
	updatedAt time.Time
	messages  []Message
}

type Conversation interface {
	ID() uuid.UUID
	ActorID() uuid.UUID
	CreatedAt() time.Time
	UpdatedAt() time.Time
	Messages() []Message
	AppendMessage(msg Message) Conversation
}

func New(actorID uuid.UUID, opts ...Option) Conversation {
	conv := &conversation{
		id:        uuid.New(),
		actorID:   actorID,
		createdAt: time.Now(),
		updatedAt: time.Now(),
		messages:  nil,
	}

	for _, opt := range opts {
		opt(conv)
	}

	return conv
}

type Option func(*conversation)

func WithID(id uuid.UUID) Option {
	return func(c *conversation) {
		if id != uuid.Nil {
			c.id = id
		}
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(c *conversation) {
		if !createdAt.IsZero() {
			c.createdAt = createdAt
		}
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(c *conversation) {
		if !updatedAt.IsZero() {
			c.updatedAt = updatedAt
		}
	}
}

func WithMessages(messages []Message) Option {
	return func(c *conversation) {
		c.messages = messages
	}
}

func (c *conversation) ID() uuid.UUID {
	return c.id
}

func (c *conversation) ActorID() uuid.UUID {
	return c.actorID
}

func (c *conversation) CreatedAt() time.Time {
	return c.createdAt
}

func (c *conversation) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *conversation) Messages() []Message {
	return c.messages
}

func (c *conversation) AppendMessage(msg Message) Conversation {
	if msg == nil {
		return c
	}
	c.messages = append(c.messages, msg)
	if len(c.messages) > MaxMessages {
		c.messages = c.messages[len(c.messages)-MaxMessages:]
	}
	c.updatedAt = msg.Timestamp()
	return c
}
