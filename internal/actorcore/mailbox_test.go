package actorcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMailboxCapacityFloor(t *testing.T) {
	mb := newMailbox[int](0)
	require.Equal(t, 1, mb.Capacity())
}

func TestMailboxCloseIsIdempotent(t *testing.T) {
	mb := newMailbox[int](2)
	mb.Close()
	mb.Close()
	require.True(t, mb.IsClosed())
}

func TestMailboxTrySendAfterClose(t *testing.T) {
	mb := newMailbox[int](2)
	mb.Close()

	err := mb.trySend(1)
	require.ErrorIs(t, err, ErrMailboxClosed)
}
