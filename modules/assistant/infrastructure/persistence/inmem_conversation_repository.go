package persistence

import (
	"context"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/google/uuid"

	"github.com/flowgate/flowgate/modules/assistant/domain/entities/conversation"
)

type SafeMap[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

func NewSafeMap[K comparable, V any]() *SafeMap[K, V] {
	return &SafeMap[K, V]{
		m: make(map[K]V),
	}
}

func (s *SafeMap[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

func (s *SafeMap[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, found := s.m[key]
	return val, found
}

func (s *SafeMap[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}

func (s *SafeMap[K, V]) Values() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Values(s.m)
}

type InmemConversationRepository struct {
	storage *SafeMap[uuid.UUID, conversation.Conversation]
}

func NewInmemConversationRepository() *InmemConversationRepository {
	return &InmemConversationRepository{
		storage: NewSafeMap[uuid.UUID, conversation.Conversation](),
	}
}

func (r *InmemConversationRepository) GetByID(_ context.Context, id uuid.UUID) (conversation.Conversation, error) {
	conv, found := r.storage.Get(id)
	if !found {
		return nil, conversation.ErrConversationNotFound
	}
	return conv, nil
}

func (r *InmemConversationRepository) Save(_ context.Context, conv conversation.Conversation) (conversation.Conversation, error) {
	r.storage.Set(conv.ID(), conv)
	return conv, nil
}

func (r *InmemConversationRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.storage.Delete(id)
	return nil
}

func (r *InmemConversationRepository) List(_ context.Context) ([]conversation.Conversation, error) {
	return r.storage.Values(), nil
}
