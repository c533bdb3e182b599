package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  Status
		isValid bool
	}{
		{StatusPending, true},
		{StatusApproved, true},
		{StatusCompleted, true},
		{StatusCancelled, true},
		{Status("shipped"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     Status
		to       Status
		canTrans bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusApproved, StatusCompleted, true},
		{StatusApproved, StatusCancelled, true},
		{StatusApproved, StatusPending, false},
		{StatusCompleted, StatusApproved, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_CanTransitionDirect(t *testing.T) {
	tests := []struct {
		from     Status
		to       Status
		canTrans bool
	}{
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusApproved, false},
		{StatusApproved, StatusCompleted, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionDirect(tt.to))
		})
	}
}

func TestTransitionTo(t *testing.T) {
	t.Run("legal edge moves to target", func(t *testing.T) {
		next, err := transitionTo(StatusPending, StatusApproved, false)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, next)
	})

	t.Run("re-requesting pending is a no-op", func(t *testing.T) {
		next, err := transitionTo(StatusPending, StatusPending, false)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, next)
	})

	t.Run("re-requesting approved is a no-op", func(t *testing.T) {
		next, err := transitionTo(StatusApproved, StatusApproved, false)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, next)
	})

	t.Run("re-requesting completed fails", func(t *testing.T) {
		_, err := transitionTo(StatusCompleted, StatusCompleted, false)
		var invalidErr *InvalidTransitionError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, StatusCompleted, invalidErr.From)
		assert.Equal(t, StatusCompleted, invalidErr.To)
	})

	t.Run("re-requesting cancelled fails", func(t *testing.T) {
		_, err := transitionTo(StatusCancelled, StatusCancelled, false)
		var invalidErr *InvalidTransitionError
		require.ErrorAs(t, err, &invalidErr)
	})

	t.Run("unknown target status fails", func(t *testing.T) {
		_, err := transitionTo(StatusPending, Status("archived"), false)
		var invalidErr *InvalidTransitionError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, Status("archived"), invalidErr.To)
	})

	t.Run("direct mode skips approval", func(t *testing.T) {
		next, err := transitionTo(StatusPending, StatusCompleted, true)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, next)

		_, err = transitionTo(StatusPending, StatusApproved, true)
		var invalidErr *InvalidTransitionError
		require.ErrorAs(t, err, &invalidErr)
	})
}
