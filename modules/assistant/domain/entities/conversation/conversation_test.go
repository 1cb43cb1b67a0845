package conversation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgate/flowgate/modules/assistant/domain/entities/conversation"
)

func TestNewMessage_Validation(t *testing.T) {
	t.Parallel()

	_, err := conversation.NewMessage(conversation.RoleUser, "", time.Now())
	require.ErrorIs(t, err, conversation.ErrEmptyMessage)

	_, err = conversation.NewMessage(conversation.RoleUser, strings.Repeat("x", conversation.MaxMessageLength+1), time.Now())
	require.ErrorIs(t, err, conversation.ErrMessageTooLong)

	_, err = conversation.NewMessage(conversation.Role("system"), "hello", time.Now())
	require.ErrorIs(t, err, conversation.ErrInvalidRole)

	msg, err := conversation.NewMessage(conversation.RoleAssistant, "hello", time.Time{})
	require.NoError(t, err)
	assert.False(t, msg.Timestamp().IsZero())
}

func TestConversation_AppendMessage(t *testing.T) {
	t.Parallel()

	conv := conversation.New(uuid.New())
	first := conversation.MustNewMessage(conversation.RoleUser, "hi", time.Now())
	conv = conv.AppendMessage(first)

	require.Len(t, conv.Messages(), 1)
	assert.Equal(t, first.Timestamp(), conv.UpdatedAt())

	conv = conv.AppendMessage(nil)
	assert.Len(t, conv.Messages(), 1)
}

func TestConversation_MessageCapIsBounded(t *testing.T) {
	t.Parallel()

	conv := conversation.New(uuid.New())
	for i := 0; i < conversation.MaxMessages+10; i++ {
		conv = conv.AppendMessage(conversation.MustNewMessage(conversation.RoleUser, "msg", time.Now()))
	}
	assert.Len(t, conv.Messages(), conversation.MaxMessages)
}
