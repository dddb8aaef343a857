package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kmcneely/bloodlink/pkg/core/model"
	"github.com/kmcneely/bloodlink/pkg/store"
)

// stubGateway implements TextGateway with scripted replies
type stubGateway struct {
	replies []string
	err     error
	history [][]string
}

func (g *stubGateway) GenerateSmartReplies(ctx context.Context, history []string, requesterName, donorName string) ([]string, error) {
	g.history = append(g.history, history)
	if g.err != nil {
		return []string{}, g.err
	}
	return g.replies, nil
}

func requesterUser() model.User {
	return model.User{ID: "requester-456", Name: "Metropolis General Hospital", Role: model.RoleRequester}
}

func donorUser() model.User {
	return model.User{ID: "donor-123", Name: "Jane Doe", Role: model.RoleDonor}
}

// newTestManager builds a manager over a real registry with a synchronous
// scheduler: deferred work runs immediately when scheduled
func newTestManager(gateway TextGateway) (*Manager, *store.SessionRegistry) {
	registry := store.NewSessionRegistry()
	m := NewManager(registry, gateway, zap.NewNop(), 2*time.Second)
	m.SetScheduler(func(d time.Duration, fn func()) { fn() })
	return m, registry
}

// deferredManager builds a manager that collects scheduled work instead of
// running it, so tests control when the auto-reply fires
func deferredManager(gateway TextGateway) (*Manager, *store.SessionRegistry, *[]func()) {
	registry := store.NewSessionRegistry()
	m := NewManager(registry, gateway, zap.NewNop(), 2*time.Second)
	pending := &[]func(){}
	m.SetScheduler(func(d time.Duration, fn func()) { *pending = append(*pending, fn) })
	return m, registry, pending
}

func TestOpenSession_SameIdentityBothOrders(t *testing.T) {
	m, _ := newTestManager(&stubGateway{})

	first := m.OpenSession(requesterUser(), donorUser())
	second := m.OpenSession(requesterUser(), donorUser())
	reversed := m.OpenSession(donorUser(), requesterUser())

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ID, reversed.ID)
	assert.Empty(t, first.Messages)
}

func TestOpenSession_DistinctPairsGetDistinctSessions(t *testing.T) {
	m, _ := newTestManager(&stubGateway{})

	other := model.User{ID: "donor-2", Name: "John Smith", Role: model.RoleDonor}
	first := m.OpenSession(requesterUser(), donorUser())
	second := m.OpenSession(requesterUser(), other)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestSendMessage_AppendsAndAutoReplies(t *testing.T) {
	m, registry := newTestManager(&stubGateway{})
	session := m.OpenSession(requesterUser(), donorUser())

	updated, err := m.SendMessage(session.ID, "requester-456", "Are you available today?")
	require.NoError(t, err)
	require.Len(t, updated.Messages, 1)
	assert.Equal(t, "Are you available today?", updated.Messages[0].Text)
	assert.Equal(t, "requester-456", updated.Messages[0].SenderID)

	// Synchronous scheduler: the counterpart auto-reply has already landed
	current, err := registry.Get(session.ID)
	require.NoError(t, err)
	require.Len(t, current.Messages, 2)
	assert.Equal(t, AutoReplyText, current.Messages[1].Text)
	assert.Equal(t, "donor-123", current.Messages[1].SenderID)
}

func TestSendMessage_TrimsText(t *testing.T) {
	m, _ := newTestManager(&stubGateway{})
	session := m.OpenSession(requesterUser(), donorUser())

	updated, err := m.SendMessage(session.ID, "requester-456", "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.Messages[0].Text)
}

func TestSendMessage_BlankTextRejected(t *testing.T) {
	gateway := &stubGateway{}
	m, registry, pending := deferredManager(gateway)
	session := m.OpenSession(requesterUser(), donorUser())

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := m.SendMessage(session.ID, "requester-456", text)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}

	// No append and no auto-reply scheduled
	current, err := registry.Get(session.ID)
	require.NoError(t, err)
	assert.Empty(t, current.Messages)
	assert.Empty(t, *pending)
}

func TestSendMessage_NonParticipantRejected(t *testing.T) {
	m, _ := newTestManager(&stubGateway{})
	session := m.OpenSession(requesterUser(), donorUser())

	_, err := m.SendMessage(session.ID, "stranger-1", "hi")
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestSendMessage_UnknownSession(t *testing.T) {
	m, _ := newTestManager(&stubGateway{})
	_, err := m.SendMessage("no-such-session", "requester-456", "hi")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestAutoReply_IndependentOfLaterSends(t *testing.T) {
	m, registry, pending := deferredManager(&stubGateway{})
	session := m.OpenSession(requesterUser(), donorUser())

	_, err := m.SendMessage(session.ID, "requester-456", "first")
	require.NoError(t, err)
	_, err = m.SendMessage(session.ID, "requester-456", "second")
	require.NoError(t, err)

	// Both auto-replies are still pending; the second send did not cancel
	// the first
	require.Len(t, *pending, 2)
	for _, fn := range *pending {
		fn()
	}

	current, err := registry.Get(session.ID)
	require.NoError(t, err)
	require.Len(t, current.Messages, 4)
	assert.Equal(t, "first", current.Messages[0].Text)
	assert.Equal(t, "second", current.Messages[1].Text)
	assert.Equal(t, AutoReplyText, current.Messages[2].Text)
	assert.Equal(t, AutoReplyText, current.Messages[3].Text)
}

// forgetfulStore wraps a registry and reports every session as gone,
// standing in for a session whose dialog was closed before the timer fired
type forgetfulStore struct {
	*store.SessionRegistry
}

func (f *forgetfulStore) Exists(sessionID string) bool { return false }

func TestAutoReply_LivenessGuard(t *testing.T) {
	registry := store.NewSessionRegistry()
	m := NewManager(&forgetfulStore{registry}, &stubGateway{}, zap.NewNop(), time.Second)
	m.SetScheduler(func(d time.Duration, fn func()) { fn() })

	session := m.OpenSession(requesterUser(), donorUser())
	_, err := m.SendMessage(session.ID, "requester-456", "anyone there?")
	require.NoError(t, err)

	// The user's message landed but the auto-reply was dropped by the
	// liveness check
	current, err := registry.Get(session.ID)
	require.NoError(t, err)
	require.Len(t, current.Messages, 1)
	assert.Equal(t, "anyone there?", current.Messages[0].Text)
}

func TestGenerateSmartReplies(t *testing.T) {
	gateway := &stubGateway{replies: []string{"Sounds good!", "What time?", "Thank you!"}}
	m, _ := newTestManager(gateway)
	session := m.OpenSession(requesterUser(), donorUser())

	_, err := m.SendMessage(session.ID, "requester-456", "Can you donate tomorrow?")
	require.NoError(t, err)

	replies, err := m.GenerateSmartReplies(context.Background(), session.ID, "Metropolis General Hospital", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sounds good!", "What time?", "Thank you!"}, replies)
	assert.Equal(t, replies, m.Suggestions(session.ID))
	assert.False(t, m.Generating(session.ID))

	// History serialized as "{speaker}: {text}" with role-based attribution
	require.Len(t, gateway.history, 1)
	assert.Equal(t, "Metropolis General Hospital: Can you donate tomorrow?", gateway.history[0][0])
	assert.Equal(t, "Jane Doe: "+AutoReplyText, gateway.history[0][1])
}

func TestGenerateSmartReplies_CappedAtThree(t *testing.T) {
	gateway := &stubGateway{replies: []string{"a", "b", "c", "d", "e"}}
	m, _ := newTestManager(gateway)
	session := m.OpenSession(requesterUser(), donorUser())

	replies, err := m.GenerateSmartReplies(context.Background(), session.ID, "H", "J")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, replies)
}

func TestGenerateSmartReplies_GatewayFailure(t *testing.T) {
	gateway := &stubGateway{err: errors.New("model unavailable")}
	m, _ := newTestManager(gateway)
	session := m.OpenSession(requesterUser(), donorUser())

	replies, err := m.GenerateSmartReplies(context.Background(), session.ID, "H", "J")
	assert.Error(t, err)
	assert.Empty(t, replies)
	assert.Empty(t, m.Suggestions(session.ID))
	assert.False(t, m.Generating(session.ID))
}

func TestSendMessage_ClearsSuggestions(t *testing.T) {
	gateway := &stubGateway{replies: []string{"a", "b", "c"}}
	m, _ := newTestManager(gateway)
	session := m.OpenSession(requesterUser(), donorUser())

	_, err := m.GenerateSmartReplies(context.Background(), session.ID, "H", "J")
	require.NoError(t, err)
	require.NotEmpty(t, m.Suggestions(session.ID))

	_, err = m.SendMessage(session.ID, "requester-456", "picked one")
	require.NoError(t, err)
	assert.Empty(t, m.Suggestions(session.ID))
}
