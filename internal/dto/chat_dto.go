package dto

import "time"

type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionId string `json:"sessionId,omitempty"`
}

type ChatResponse struct {
	Reply   string `json:"reply"`
	Emotion string `json:"emotion"`

	// Present only on the turn that completes detail collection
	LegalSummary string `json:"legalSummary,omitempty"`

	// Set to "generation_unavailable" when the reply is the degraded fallback
	Error string `json:"error,omitempty"`
}

// TurnRecordedMessage is the payload published for every completed exchange,
// consumed by the audit-trail worker.
type TurnRecordedMessage struct {
	SessionId  string    `json:"session_id"`
	Stage      string    `json:"stage"`
	Category   string    `json:"category"`
	Emotion    string    `json:"emotion"`
	UserText   string    `json:"user_text"`
	ReplyText  string    `json:"reply_text"`
	RecordedAt time.Time `json:"recorded_at"`
}
