package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// ChatRequest payload.
type ChatRequest struct {
	Text string `json:"text"`
}

// ChatMessageResponse is one transcript entry.
type ChatMessageResponse struct {
	Text   string        `json:"text"`
	Sender domain.Sender `json:"sender"`
	At     time.Time     `json:"at"`
}

// NewTranscriptResponse maps a transcript.
func NewTranscriptResponse(msgs []domain.ChatMessage) []ChatMessageResponse {
	items := make([]ChatMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, ChatMessageResponse{Text: m.Text, Sender: m.Sender, At: m.At})
	}
	return items
}
