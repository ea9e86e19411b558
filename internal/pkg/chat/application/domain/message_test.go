package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMessage_SenderIsSeenAtCreation(t *testing.T) {
	msg, err := NewMessage("conv-1", "alice", "hello")
	require.NoError(t, err)
	require.True(t, msg.SeenByUser("alice"))
	require.False(t, msg.SeenByUser("bob"))
	require.False(t, msg.CreatedAt.IsZero())
}

func TestNewMessage_RejectsEmptyContent(t *testing.T) {
	_, err := NewMessage("conv-1", "alice", "   ")
	require.ErrorIs(t, err, ErrEmptyContent)
}

func TestMessage_Preview(t *testing.T) {
	short, err := NewMessage("conv-1", "alice", "Hello")
	require.NoError(t, err)
	require.Equal(t, "Hello", short.Preview())

	exact, err := NewMessage("conv-1", "alice", strings.Repeat("a", 50))
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("a", 50), exact.Preview())

	long, err := NewMessage("conv-1", "alice", strings.Repeat("a", 51))
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("a", 47)+"...", long.Preview())
	require.Len(t, long.Preview(), 50)
}

func TestNormalizePair(t *testing.T) {
	low, high, err := NormalizePair("bob", "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", low)
	require.Equal(t, "bob", high)

	low2, high2, err := NormalizePair("alice", "bob")
	require.NoError(t, err)
	require.Equal(t, low, low2)
	require.Equal(t, high, high2)

	_, _, err = NormalizePair("alice", "alice")
	require.ErrorIs(t, err, ErrSelfConversation)

	_, _, err = NormalizePair("", "bob")
	require.ErrorIs(t, err, ErrMissingParticipant)
}

func TestConversation_Other(t *testing.T) {
	c := Conversation{ParticipantLow: "alice", ParticipantHigh: "bob"}
	require.Equal(t, "bob", c.Other("alice"))
	require.Equal(t, "alice", c.Other("bob"))
	require.True(t, c.HasParticipant("alice"))
	require.False(t, c.HasParticipant("carol"))
}
