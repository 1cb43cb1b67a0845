package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/flowgate/flowgate/modules/assistant/domain/entities/conversation"
	"github.com/flowgate/flowgate/modules/assistant/infrastructure/llm"
	"github.com/flowgate/flowgate/modules/assistant/presentation/mappers"
	"github.com/flowgate/flowgate/modules/assistant/services"
	"github.com/flowgate/flowgate/pkg/application"
	"github.com/flowgate/flowgate/pkg/configuration"
	"github.com/flowgate/flowgate/pkg/httpapi"
)

type AssistantAPIController struct {
	app       application.Application
	assistant *services.AssistantService
	basePath  string
}

func NewAssistantAPIController(app application.Application) application.Controller {
	return &AssistantAPIController{
		app:       app,
		assistant: app.Service(services.AssistantService{}).(*services.AssistantService),
		basePath:  "/assistant/api",
	}
}

func (c *AssistantAPIController) Key() string {
	return c.basePath
}

func (c *AssistantAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/conversations", c.Start).Methods(http.MethodPost)
	router.HandleFunc("/conversations/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/conversations/{id}/messages", c.SendMessage).Methods(http.MethodPost)
}

func (c *AssistantAPIController) Start(w http.ResponseWriter, r *http.Request) {
	actorID := uuid.Nil
	if raw := strings.TrimSpace(r.Header.Get(configuration.Use().ActorIDHeader)); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httpapi.WriteError(w, http.StatusUnauthorized, "ASSISTANT_BAD_ACTOR", "actor header is not a valid id", nil)
			return
		}
		actorID = parsed
	}

	conv, err := c.assistant.StartConversation(r.Context(), actorID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "ASSISTANT_INTERNAL", "internal error", nil)
		return
	}

	httpapi.WriteJSON(w, http.StatusCreated, mappers.ConversationToView(conv))
}

func (c *AssistantAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "ASSISTANT_BAD_ID", "conversation id is not a valid uuid", nil)
		return
	}

	conv, err := c.assistant.GetConversation(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, mappers.ConversationToView(conv))
}

type sendMessageBody struct {
	Message string `json:"message"`
}

// SendMessage streams the assistant reply back as server-sent events.
// Errors raised before the first delta still produce a JSON error; once
// streaming has begun the stream is simply terminated.
func (c *AssistantAPIController) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "ASSISTANT_BAD_ID", "conversation id is not a valid uuid", nil)
		return
	}

	var body sendMessageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "ASSISTANT_INVALID_JSON", "invalid json", nil)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		httpapi.WriteError(w, http.StatusInternalServerError, "ASSISTANT_NO_STREAMING", "streaming unsupported", nil)
		return
	}

	streaming := false
	_, err = c.assistant.SendMessage(r.Context(), services.SendMessageDTO{
		ConversationID: id,
		Message:        body.Message,
	}, func(delta string) {
		if !streaming {
			streaming = true
			w.Header().Set("Content-Type", "text/event-stream")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("Connection", "keep-alive")
			w.WriteHeader(http.StatusOK)
		}
		writeDeltaFrame(w, delta)
		flusher.Flush()
	})
	if err != nil {
		if streaming {
			// Headers are gone; end the stream without a terminator so
			// the client treats the reply as incomplete.
			return
		}
		c.writeServiceError(w, err)
		return
	}

	if streaming {
		fmt.Fprint(w, "data: [DONE]\n\n")
		flusher.Flush()
	}
}

func writeDeltaFrame(w http.ResponseWriter, delta string) {
	frame := map[string]any{
		"choices": []map[string]any{
			{"delta": map[string]string{"content": delta}},
		},
	}
	raw, err := json.Marshal(frame)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", raw)
}

func (c *AssistantAPIController) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, conversation.ErrConversationNotFound):
		httpapi.WriteError(w, http.StatusNotFound, "ASSISTANT_CONVERSATION_NOT_FOUND", "conversation not found", nil)
	case errors.Is(err, conversation.ErrEmptyMessage):
		httpapi.WriteError(w, http.StatusUnprocessableEntity, "ASSISTANT_EMPTY_MESSAGE", "message is empty", nil)
	case errors.Is(err, conversation.ErrMessageTooLong):
		httpapi.WriteError(w, http.StatusUnprocessableEntity, "ASSISTANT_MESSAGE_TOO_LONG", "message is too long", nil)
	case errors.Is(err, llm.ErrRateLimited):
		httpapi.WriteError(w, http.StatusTooManyRequests, "ASSISTANT_RATE_LIMITED", "rate limited, try again later", nil)
	case errors.Is(err, llm.ErrQuotaExceeded):
		httpapi.WriteError(w, http.StatusPaymentRequired, "ASSISTANT_QUOTA_EXCEEDED", "usage limit reached", nil)
	default:
		httpapi.WriteError(w, http.StatusInternalServerError, "ASSISTANT_INTERNAL", "internal error", nil)
	}
}
