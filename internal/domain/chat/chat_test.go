package chat

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("read")
	require.NoError(t, err)
	assert.Equal(t, StatusRead, st)

	_, err = ParseStatus("archived")
	assert.Error(t, err)
}

func TestNewMessage_Validation(t *testing.T) {
	matchID, a, b := uuid.New(), uuid.New(), uuid.New()

	_, err := NewMessage(matchID, a, a, "hi")
	assert.Error(t, err)

	_, err = NewMessage(matchID, a, b, "   ")
	assert.Error(t, err)

	_, err = NewMessage(matchID, a, b, strings.Repeat("x", MaxMessageLength+1))
	assert.Error(t, err)

	m, err := NewMessage(matchID, a, b, " hola ")
	require.NoError(t, err)
	assert.Equal(t, "hola", m.Text())
	assert.Equal(t, StatusUnread, m.Status())
	assert.Nil(t, m.ReadAt())
}

func TestNewGreeting_StableIDAndRead(t *testing.T) {
	matchID := uuid.New()
	g1 := NewGreeting(matchID)
	g2 := NewGreeting(matchID)

	assert.Equal(t, g1.ID(), g2.ID())
	assert.NotEqual(t, g1.ID(), NewGreeting(uuid.New()).ID())
	assert.True(t, g1.System())
	assert.Equal(t, StatusRead, g1.Status())
	assert.Nil(t, g1.SenderID())
}
