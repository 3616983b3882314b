package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwapStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	allStatuses := []SwapStatus{
		SwapStatusPending, SwapStatusAccepted, SwapStatusRejected,
		SwapStatusCompleted, SwapStatusCancelled, SwapStatusDeleted,
	}

	allowed := map[SwapStatus]map[SwapStatus]bool{
		SwapStatusPending:   {SwapStatusAccepted: true, SwapStatusRejected: true, SwapStatusCancelled: true},
		SwapStatusAccepted:  {SwapStatusCompleted: true, SwapStatusCancelled: true},
		SwapStatusRejected:  {SwapStatusDeleted: true},
		SwapStatusCancelled: {SwapStatusDeleted: true},
		SwapStatusCompleted: {SwapStatusDeleted: true},
		SwapStatusDeleted:   {},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			assert.Equal(t, allowed[from][to], from.CanTransitionTo(to),
				"%s -> %s", from, to)
		}
	}
}

func TestSwapStatus_DeletedIsTerminal(t *testing.T) {
	t.Parallel()

	for _, to := range []SwapStatus{
		SwapStatusPending, SwapStatusAccepted, SwapStatusRejected,
		SwapStatusCompleted, SwapStatusCancelled, SwapStatusDeleted,
	} {
		assert.False(t, SwapStatusDeleted.CanTransitionTo(to))
	}
}

func TestSwapRequest_Participants(t *testing.T) {
	t.Parallel()

	swap := &SwapRequest{FromUserID: 7, ToUserID: 9}

	assert.True(t, swap.IsParticipant(7))
	assert.True(t, swap.IsParticipant(9))
	assert.False(t, swap.IsParticipant(8))

	assert.Equal(t, uint(9), swap.OtherParticipant(7))
	assert.Equal(t, uint(7), swap.OtherParticipant(9))
	assert.Equal(t, uint(0), swap.OtherParticipant(8))
}
