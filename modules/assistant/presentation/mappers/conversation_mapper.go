package mappers

import (
	"time"

	"github.com/google/uuid"

	"github.com/flowgate/flowgate/modules/assistant/domain/entities/conversation"
	"github.com/flowgate/flowgate/modules/assistant/presentation/viewmodels"
)

func ConversationToView(conv conversation.Conversation) viewmodels.ConversationView {
	messages := make([]viewmodels.MessageView, 0, len(conv.Messages()))
	for _, msg := range conv.Messages() {
		messages = append(messages, viewmodels.MessageView{
			Role:      string(msg.Role()),
			Content:   msg.Content(),
			Timestamp: msg.Timestamp().Format(time.RFC3339),
		})
	}

	actorID := ""
	if conv.ActorID() != uuid.Nil {
		actorID = conv.ActorID().String()
	}

	return viewmodels.ConversationView{
		ID:        conv.ID().String(),
		ActorID:   actorID,
		CreatedAt: conv.CreatedAt().Format(time.RFC3339),
		UpdatedAt: conv.UpdatedAt().Format(time.RFC3339),
		Messages:  messages,
	}
}
