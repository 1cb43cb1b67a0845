package viewmodels

type MessageView struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type ConversationView struct {
	ID        string        `json:"id"`
	ActorID   string        `json:"actor_id,omitempty"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
	Messages  []MessageView `json:"messages"`
}
