package services

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/flowgate/flowgate/modules/assistant/domain/entities/cache"
	"github.com/flowgate/flowgate/modules/assistant/domain/entities/conversation"
	infraCache "github.com/flowgate/flowgate/modules/assistant/infrastructure/cache"
	"github.com/flowgate/flowgate/modules/assistant/infrastructure/llm"
	"github.com/flowgate/flowgate/modules/assistant/infrastructure/persistence"
	"github.com/flowgate/flowgate/pkg/composables"
	"github.com/flowgate/flowgate/pkg/configuration"
)

const Greeting = "Hi! I'm your AI assistant. How can I help you with your requests today?"

const defaultSystemPrompt = "You are a helpful workplace assistant for an internal approval portal. " +
	"Employees submit work-from-home, leave, shift change and resource requests that pass through " +
	"a point of contact review and then a manager review. Help users understand their requests " +
	"and the approval process. Keep answers short and practical."

// Completer produces a streamed completion for a transcript.
type Completer interface {
	Stream(ctx context.Context, messages []llm.Message, onChunk func(delta string)) (string, error)
}

type SendMessageDTO struct {
	ConversationID uuid.UUID
	ActorID        uuid.UUID
	Message        string
}

type DefaultCacheConfig struct {
	Enabled bool
	Backend string
	Prefix  string
	TTL     time.Duration
}

type AssistantServiceConfig struct {
	ConversationRepo   conversation.Repository
	Completer          Completer
	SystemPrompt       string
	Cache              cache.Cache
	DefaultCacheConfig DefaultCacheConfig
}

type AssistantService struct {
	conversationRepo conversation.Repository
	completer        Completer
	systemPrompt     string
	cache            cache.Cache
}

func NewAssistantService(config AssistantServiceConfig) *AssistantService {
	conf := configuration.Use()
	if config.ConversationRepo == nil {
		config.ConversationRepo = persistence.NewInmemConversationRepository()
	}
	if config.Completer == nil {
		config.Completer = llm.NewStreamClient(conf.Assistant)
	}
	if config.SystemPrompt == "" {
		config.SystemPrompt = defaultSystemPrompt
	}

	service := &AssistantService{
		conversationRepo: config.ConversationRepo,
		completer:        config.Completer,
		systemPrompt:     config.SystemPrompt,
	}

	if config.Cache != nil {
		service.cache = config.Cache
	} else if config.DefaultCacheConfig.Enabled {
		if config.DefaultCacheConfig.Backend == "redis" {
			service.cache = infraCache.NewRedisCache(
				redis.NewClient(&redis.Options{Addr: conf.AssistantCache.RedisURL}),
				config.DefaultCacheConfig.Prefix,
				config.DefaultCacheConfig.TTL,
			)
		} else {
			service.cache = infraCache.NewInmemCache(config.DefaultCacheConfig.TTL)
		}
	}

	return service
}

func (s *AssistantService) GetConversation(ctx context.Context, id uuid.UUID) (conversation.Conversation, error) {
	return s.conversationRepo.GetByID(ctx, id)
}

// StartConversation opens a conversation seeded with the assistant
// greeting. The greeting never becomes part of the model transcript.
func (s *AssistantService) StartConversation(ctx context.Context, actorID uuid.UUID) (conversation.Conversation, error) {
	conv := conversation.New(actorID)
	conv = conv.AppendMessage(conversation.MustNewMessage(conversation.RoleAssistant, Greeting, time.Now()))
	return s.conversationRepo.Save(ctx, conv)
}

// SendMessage appends the user message, streams the assistant reply
// through onChunk and persists the completed exchange. A cached reply
// is delivered through onChunk in a single piece.
func (s *AssistantService) SendMessage(ctx context.Context, dto SendMessageDTO, onChunk func(delta string)) (conversation.Conversation, error) {
	userMsg, err := conversation.NewMessage(conversation.RoleUser, dto.Message, time.Now())
	if err != nil {
		return nil, err
	}

	conv, err := s.conversationRepo.GetByID(ctx, dto.ConversationID)
	if err != nil {
		return nil, err
	}

	conv = conv.AppendMessage(userMsg)
	transcript := s.transcript(conv)

	reply, err := s.cachedReply(ctx, transcript)
	if err != nil {
		return nil, err
	}
	if reply != "" {
		if onChunk != nil {
			onChunk(reply)
		}
	} else {
		reply, err = s.completer.Stream(ctx, transcript, onChunk)
		if err != nil {
			return nil, err
		}
		if cacheErr := s.saveReply(ctx, transcript, reply); cacheErr != nil {
			composables.UseLogger(ctx).WithError(cacheErr).Warn("failed to cache assistant reply")
		}
	}

	conv = conv.AppendMessage(conversation.MustNewMessage(conversation.RoleAssistant, reply, time.Now()))
	return s.conversationRepo.Save(ctx, conv)
}

// transcript converts the stored history into model messages, skipping
// the canned greeting the way the web client does.
func (s *AssistantService) transcript(conv conversation.Conversation) []llm.Message {
	messages := make([]llm.Message, 0, len(conv.Messages())+1)
	messages = append(messages, llm.Message{Role: "system", Content: s.systemPrompt})
	for _, msg := range conv.Messages() {
		if msg.Role() == conversation.RoleAssistant && msg.Content() == Greeting {
			continue
		}
		messages = append(messages, llm.Message{
			Role:    string(msg.Role()),
			Content: msg.Content(),
		})
	}
	return messages
}

func (s *AssistantService) transcriptKey(messages []llm.Message) (string, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(messages); err != nil {
		return "", err
	}
	hash := md5.Sum(buf.Bytes())
	return hex.EncodeToString(hash[:]), nil
}

func (s *AssistantService) cachedReply(ctx context.Context, messages []llm.Message) (string, error) {
	if s.cache == nil {
		return "", nil
	}
	key, err := s.transcriptKey(messages)
	if err != nil {
		return "", err
	}
	result, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return result, nil
}

func (s *AssistantService) saveReply(ctx context.Context, messages []llm.Message, reply string) error {
	if s.cache == nil {
		return nil
	}
	key, err := s.transcriptKey(messages)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, reply)
}
