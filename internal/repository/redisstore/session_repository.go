package redisstore

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-legalaid-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const sessionTTL = 1 * time.Hour

// SessionRepository keeps sessions in Redis so conversations survive process
// restarts and can be shared by multiple instances. Serialization errors are
// logged and treated as a cache miss; the dialog flow then restarts the
// session rather than failing the request.
type SessionRepository struct {
	client *redis.Client
}

var _ store.SessionRepository = &SessionRepository{}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func key(sessionID string) string {
	return "chat:session:" + sessionID
}

func (r *SessionRepository) Save(session *store.Session) {
	payload, err := json.Marshal(session)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal session %s: %v", session.ID, err)
		return
	}
	if err := r.client.Set(context.Background(), key(session.ID), payload, sessionTTL).Err(); err != nil {
		log.Printf("[ERROR] Failed to save session %s: %v", session.ID, err)
	}
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	payload, err := r.client.Get(context.Background(), key(sessionID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[ERROR] Failed to load session %s: %v", sessionID, err)
		}
		return nil, false
	}

	var session store.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		log.Printf("[ERROR] Failed to unmarshal session %s: %v", sessionID, err)
		return nil, false
	}
	return &session, true
}

func (r *SessionRepository) Delete(sessionID string) {
	if err := r.client.Del(context.Background(), key(sessionID)).Err(); err != nil {
		log.Printf("[ERROR] Failed to delete session %s: %v", sessionID, err)
	}
}
