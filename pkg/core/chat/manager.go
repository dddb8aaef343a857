package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/kmcneely/bloodlink/pkg/core/model"
)

// AutoReplyText is the canned counterpart reply appended after every
// user message
const AutoReplyText = "Thanks for reaching out! I'll get back to you shortly."

// maxSmartReplies caps how many suggestions a generation round can surface
const maxSmartReplies = 3

var (
	// ErrEmptyMessage rejects blank or whitespace-only message text before
	// any append
	ErrEmptyMessage = errors.New("message text must not be empty")

	// ErrNotParticipant rejects senders that are not part of the session
	ErrNotParticipant = errors.New("sender is not a participant of this session")
)

// SessionStore is the registry the manager operates on
type SessionStore interface {
	FindOrCreate(a, b model.User) *model.ChatSession
	Get(sessionID string) (*model.ChatSession, error)
	Exists(sessionID string) bool
	AppendMessage(sessionID string, message model.ChatMessage) (*model.ChatSession, error)
}

// TextGateway generates smart reply suggestions from serialized history
type TextGateway interface {
	GenerateSmartReplies(ctx context.Context, history []string, requesterName, donorName string) ([]string, error)
}

// Manager coordinates chat sessions: find-or-create by participant pair,
// ordered message appends, the delayed counterpart auto-reply, and smart
// reply suggestions. Suggestion and in-flight state is tracked per session.
type Manager struct {
	sessions   SessionStore
	gateway    TextGateway
	logger     *zap.Logger
	replyDelay time.Duration

	// schedule defers a function by a duration; injectable so tests can run
	// scheduled work synchronously
	schedule func(d time.Duration, fn func())

	mu          sync.Mutex
	suggestions map[string][]string
	generating  map[string]bool
}

// NewManager creates a chat manager with the given auto-reply delay
func NewManager(sessions SessionStore, gateway TextGateway, logger *zap.Logger, replyDelay time.Duration) *Manager {
	return &Manager{
		sessions:   sessions,
		gateway:    gateway,
		logger:     logger,
		replyDelay: replyDelay,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
		suggestions: make(map[string][]string),
		generating:  make(map[string]bool),
	}
}

// SetScheduler overrides the deferred-work scheduler; tests use this to run
// the auto-reply synchronously
func (m *Manager) SetScheduler(schedule func(d time.Duration, fn func())) {
	m.schedule = schedule
}

// OpenSession returns the conversation between the two users, creating it
// if none exists. The pair is unordered: OpenSession(a, b) and
// OpenSession(b, a) resolve to the same session.
func (m *Manager) OpenSession(currentUser, otherUser model.User) *model.ChatSession {
	session := m.sessions.FindOrCreate(currentUser, otherUser)
	m.logger.Debug("Opened chat session",
		zap.String("session_id", session.ID),
		zap.String("user_a", currentUser.ID),
		zap.String("user_b", otherUser.ID))
	return session
}

// SendMessage appends a message from the given sender and schedules the
// counterpart auto-reply. Blank text and non-participant senders are
// rejected before any append. Sending clears the session's previously
// surfaced suggestions. The scheduled auto-reply is independent of later
// sends and applies only while the session is still registered.
func (m *Manager) SendMessage(sessionID, senderID, text string) (*model.ChatSession, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}

	session, err := m.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasParticipant(senderID) {
		return nil, ErrNotParticipant
	}

	updated, err := m.sessions.AppendMessage(sessionID, model.ChatMessage{
		ID:        uuid.New().String(),
		SenderID:  senderID,
		Text:      trimmed,
		Timestamp: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	delete(m.suggestions, sessionID)
	m.mu.Unlock()

	counterpart := session.Counterpart(senderID)
	m.schedule(m.replyDelay, func() {
		m.deliverAutoReply(sessionID, counterpart.ID)
	})

	m.logger.Debug("Message sent",
		zap.String("session_id", sessionID),
		zap.String("sender_id", senderID),
		zap.Int("message_count", len(updated.Messages)))

	return updated, nil
}

// deliverAutoReply appends the canned counterpart reply if the session is
// still live. A session closed in the meantime absorbs the timer without
// mutating anything.
func (m *Manager) deliverAutoReply(sessionID, counterpartID string) {
	if !m.sessions.Exists(sessionID) {
		m.logger.Debug("Dropping auto-reply for closed session", zap.String("session_id", sessionID))
		return
	}

	_, err := m.sessions.AppendMessage(sessionID, model.ChatMessage{
		ID:        uuid.New().String(),
		SenderID:  counterpartID,
		Text:      AutoReplyText,
		Timestamp: time.Now(),
	})
	if err != nil {
		m.logger.Debug("Dropping auto-reply", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// GenerateSmartReplies asks the text gateway for up to three suggested
// replies based on the session history. The per-session generating flag is
// observable through Generating while the call is in flight. On gateway
// failure the previous suggestions are cleared and an empty list is
// returned with a recoverable error.
func (m *Manager) GenerateSmartReplies(ctx context.Context, sessionID, requesterName, donorName string) ([]string, error) {
	session, err := m.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.generating[sessionID] = true
	delete(m.suggestions, sessionID)
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.generating[sessionID] = false
		m.mu.Unlock()
	}()

	history := lo.Map(session.Messages, func(msg model.ChatMessage, _ int) string {
		speaker := donorName
		if session.Counterpart(msg.SenderID).Role == model.RoleDonor {
			speaker = requesterName
		}
		return fmt.Sprintf("%s: %s", speaker, msg.Text)
	})

	replies, err := m.gateway.GenerateSmartReplies(ctx, history, requesterName, donorName)
	if err != nil {
		m.logger.Warn("Smart reply generation failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return []string{}, fmt.Errorf("could not generate smart replies: %w", err)
	}
	if len(replies) > maxSmartReplies {
		replies = replies[:maxSmartReplies]
	}

	// Apply only if the session is still live; a closed chat dialog
	// abandons interest in the result.
	if m.sessions.Exists(sessionID) {
		m.mu.Lock()
		m.suggestions[sessionID] = replies
		m.mu.Unlock()
	}

	return replies, nil
}

// Suggestions returns the last generated suggestions for a session, empty
// after any subsequent send
func (m *Manager) Suggestions(sessionID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.suggestions[sessionID]))
	copy(out, m.suggestions[sessionID])
	return out
}

// Generating reports whether a smart reply generation is in flight for the
// session
func (m *Manager) Generating(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generating[sessionID]
}
