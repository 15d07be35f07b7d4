package store

// SessionRepository abstracts session persistence so the in-memory store can
// be swapped for an external one (e.g. Redis) without touching the dialog flow.
type SessionRepository interface {
	Get(sessionID string) (*Session, bool)
	Save(session *Session)
	Delete(sessionID string)
}
