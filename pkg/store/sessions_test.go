package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmcneely/bloodlink/pkg/core/model"
)

func registryUsers() (model.User, model.User) {
	requester := model.User{ID: "requester-456", Name: "Metropolis General Hospital", Role: model.RoleRequester}
	donor := model.User{ID: "donor-123", Name: "Jane Doe", Role: model.RoleDonor}
	return requester, donor
}

func TestFindOrCreate_UnorderedPair(t *testing.T) {
	registry := NewSessionRegistry()
	requester, donor := registryUsers()

	first := registry.FindOrCreate(requester, donor)
	second := registry.FindOrCreate(donor, requester)

	assert.Equal(t, first.ID, second.ID)
	assert.Empty(t, first.Messages)
}

func TestFindOrCreate_DistinctPairs(t *testing.T) {
	registry := NewSessionRegistry()
	requester, donor := registryUsers()
	other := model.User{ID: "donor-2", Name: "John Smith", Role: model.RoleDonor}

	first := registry.FindOrCreate(requester, donor)
	second := registry.FindOrCreate(requester, other)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestAppendMessage_Order(t *testing.T) {
	registry := NewSessionRegistry()
	requester, donor := registryUsers()
	session := registry.FindOrCreate(requester, donor)

	for i, text := range []string{"one", "two", "three"} {
		_, err := registry.AppendMessage(session.ID, model.ChatMessage{
			ID:        text,
			SenderID:  requester.ID,
			Text:      text,
			Timestamp: time.Now().Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	current, err := registry.Get(session.ID)
	require.NoError(t, err)
	require.Len(t, current.Messages, 3)
	assert.Equal(t, "one", current.Messages[0].Text)
	assert.Equal(t, "two", current.Messages[1].Text)
	assert.Equal(t, "three", current.Messages[2].Text)
}

func TestAppendMessage_UnknownSession(t *testing.T) {
	registry := NewSessionRegistry()
	_, err := registry.AppendMessage("no-such", model.ChatMessage{Text: "hi"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGet_SnapshotIsolation(t *testing.T) {
	registry := NewSessionRegistry()
	requester, donor := registryUsers()
	session := registry.FindOrCreate(requester, donor)

	before, err := registry.Get(session.ID)
	require.NoError(t, err)

	_, err = registry.AppendMessage(session.ID, model.ChatMessage{ID: "m1", SenderID: donor.ID, Text: "later"})
	require.NoError(t, err)

	// The earlier snapshot does not see the new message
	assert.Empty(t, before.Messages)
}

func TestExists(t *testing.T) {
	registry := NewSessionRegistry()
	requester, donor := registryUsers()
	session := registry.FindOrCreate(requester, donor)

	assert.True(t, registry.Exists(session.ID))
	assert.False(t, registry.Exists("no-such"))
}
