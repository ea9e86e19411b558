package conference

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStatusTransitionsOnlyForward(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPlanned, StatusPlanned, true},
		{StatusPlanned, StatusLive, true},
		{StatusPlanned, StatusEnded, true},
		{StatusLive, StatusLive, true},
		{StatusLive, StatusEnded, true},
		{StatusLive, StatusPlanned, false},
		{StatusEnded, StatusEnded, true},
		{StatusEnded, StatusLive, false},
		{StatusEnded, StatusPlanned, false},
	}
	for _, tc := range cases {
		require.Equalf(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
	require.False(t, StatusLive.CanTransition("paused"))
}

func TestRoomTransitionRejectsBackwards(t *testing.T) {
	room, err := NewRoom("room-1", "leader-1", "Evening service", "", time.Time{})
	require.NoError(t, err)
	require.Equal(t, StatusPlanned, room.Status)
	require.True(t, room.IsActive())

	require.NoError(t, room.Transition(StatusLive))
	require.ErrorIs(t, room.Transition(StatusPlanned), ErrInvalidTransition)
	require.Equal(t, StatusLive, room.Status)

	require.NoError(t, room.Transition(StatusEnded))
	require.False(t, room.IsActive())
	require.ErrorIs(t, room.Transition(StatusLive), ErrInvalidTransition)
	require.ErrorIs(t, room.Transition("bogus"), ErrInvalidTransition)
}

func TestNewRoomValidation(t *testing.T) {
	_, err := NewRoom("room-1", "", "Evening service", "", time.Time{})
	require.ErrorIs(t, err, ErrMissingField)

	_, err = NewRoom("room-1", "leader-1", "", "", time.Time{})
	require.ErrorIs(t, err, ErrMissingField)

	room, err := NewRoom("room-1", "leader-1", "Evening service", "", time.Time{})
	require.NoError(t, err)
	require.False(t, room.ScheduledAt.IsZero())
}
