package contract

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furrymatch/service-matching/internal/platform/domain"
)

func TestStatus_Transitions(t *testing.T) {
	assert.True(t, StatusDrafted.CanTransitionTo(StatusSent))
	assert.True(t, StatusSent.CanTransitionTo(StatusSent))
	assert.False(t, StatusSent.CanTransitionTo(StatusDrafted))
	assert.Equal(t, 1, StatusDrafted.Step())
	assert.Equal(t, 2, StatusSent.Step())

	_, err := ParseStatus("SIGNED")
	assert.Error(t, err)
}

func TestNewContract_RequiresTerms(t *testing.T) {
	_, err := NewContract(uuid.New(), uuid.New(), "  ", "")
	assert.Error(t, err)

	c, err := NewContract(uuid.New(), uuid.New(), "one pup each", "")
	require.NoError(t, err)
	assert.Equal(t, StatusDrafted, c.Status())
	assert.Nil(t, c.SentBy())
}

func TestContract_SendAndResend(t *testing.T) {
	c, err := NewContract(uuid.New(), uuid.New(), "terms", "notes")
	require.NoError(t, err)

	first, second := uuid.New(), uuid.New()
	require.NoError(t, c.Send(first, time.Now()))
	assert.Equal(t, StatusSent, c.Status())
	assert.Equal(t, first, *c.SentBy())
	assert.Equal(t, int64(2), c.Version())

	require.NoError(t, c.Send(second, time.Now()))
	assert.Equal(t, second, *c.SentBy())
	assert.Equal(t, int64(3), c.Version())
}

func TestContract_ReviseOnlyWhileDrafted(t *testing.T) {
	c, err := NewContract(uuid.New(), uuid.New(), "terms", "")
	require.NoError(t, err)

	require.NoError(t, c.Revise("new terms", "n"))
	assert.Equal(t, "new terms", c.Terms())

	require.NoError(t, c.Send(uuid.New(), time.Now()))
	var conflict *domain.ConflictError
	assert.True(t, errors.As(c.Revise("late", ""), &conflict))
}
