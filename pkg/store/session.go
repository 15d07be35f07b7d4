package store

import (
	"time"

	"github.com/google/uuid"
)

// Turn is a single entry in the conversation transcript
type Turn struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"` // "user" | "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Session represents the active conversation state in memory
type Session struct {
	ID    string `json:"id"`
	Stage string `json:"stage"` // "INTAKE" | "COLLECTING_DETAILS" | "ADVISED"

	// Issue category, assigned exactly once on the INTAKE transition
	Category string `json:"category"`

	// Cursor into the fixed clarifying-question sequence
	DetailIndex int `json:"detail_index"`

	// One free-text answer per question asked so far
	CollectedDetails []string `json:"collected_details"`

	// Full transcript sent back to the generation gateway on every call.
	// Append-only.
	Turns []Turn `json:"turns"`

	AdviceGiven bool `json:"advice_given"`

	// Transient flag gating the case-history sub-dialog. Cleared on the
	// very next message regardless of content.
	AwaitingCaseChoice bool `json:"awaiting_case_choice"`
}

const (
	StageIntake            = "INTAKE"
	StageCollectingDetails = "COLLECTING_DETAILS"
	StageAdvised           = "ADVISED"

	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// NewSession creates a session with intake defaults.
func NewSession(id string) *Session {
	return &Session{
		ID:    id,
		Stage: StageIntake,
	}
}

// AppendExchange records a (user, assistant) pair on the transcript.
// The assistant content must be exactly what is returned to the caller,
// never raw ungroomed model output.
func (s *Session) AppendExchange(userText, assistantText string, now time.Time) {
	s.Turns = append(s.Turns,
		Turn{Id: uuid.New(), Role: RoleUser, Content: userText, CreatedAt: now},
		Turn{Id: uuid.New(), Role: RoleAssistant, Content: assistantText, CreatedAt: now.Add(1 * time.Second)},
	)
}
