package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kmcneely/bloodlink/pkg/core/model"
)

// ErrSessionNotFound is returned when a session id is not registered
var ErrSessionNotFound = errors.New("chat session not found")

// SessionRegistry holds all chat sessions, unique by unordered participant
// pair. Lookup-then-create runs under one mutex so two concurrent opens for
// the same pair cannot create two sessions.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*model.ChatSession // by session id
	byPair   map[string]string             // pair key -> session id
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*model.ChatSession),
		byPair:   make(map[string]string),
	}
}

// pairKey builds the unordered-pair lookup key for two user ids
func pairKey(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return ids[0] + "|" + ids[1]
}

// FindOrCreate returns the session between the two users, creating and
// registering an empty one if none exists. Argument order does not matter.
func (r *SessionRegistry) FindOrCreate(a, b model.User) *model.ChatSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(a.ID, b.ID)
	if id, ok := r.byPair[key]; ok {
		return r.snapshotLocked(r.sessions[id])
	}

	session := &model.ChatSession{
		ID:           uuid.New().String(),
		Participants: [2]model.User{a, b},
	}
	r.sessions[session.ID] = session
	r.byPair[key] = session.ID
	return r.snapshotLocked(session)
}

// Register adds a pre-built session, used for seeding
func (r *SessionRegistry) Register(session *model.ChatSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	r.byPair[pairKey(session.Participants[0].ID, session.Participants[1].ID)] = session.ID
}

// Get returns a snapshot of the session with the given id
func (r *SessionRegistry) Get(sessionID string) (*model.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return r.snapshotLocked(session), nil
}

// Exists reports whether the session is still registered. Delayed
// completions use this as their liveness guard before mutating.
func (r *SessionRegistry) Exists(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[sessionID]
	return ok
}

// AppendMessage appends a message to the session under the registry mutex,
// replacing the message slice rather than mutating it in place so snapshots
// handed to callers stay stable.
func (r *SessionRegistry) AppendMessage(sessionID string, message model.ChatMessage) (*model.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	messages := make([]model.ChatMessage, len(session.Messages), len(session.Messages)+1)
	copy(messages, session.Messages)
	session.Messages = append(messages, message)
	return r.snapshotLocked(session), nil
}

// snapshotLocked copies a session so callers never share the registry's
// internal message slice. Caller must hold r.mu.
func (r *SessionRegistry) snapshotLocked(session *model.ChatSession) *model.ChatSession {
	out := &model.ChatSession{
		ID:           session.ID,
		Participants: session.Participants,
		Messages:     make([]model.ChatMessage, len(session.Messages)),
	}
	copy(out.Messages, session.Messages)
	return out
}
