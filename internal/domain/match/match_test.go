package match

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furrymatch/service-matching/internal/domain/likee"
)

func TestNewMatch_FirstLikedIsTheCompletingLike(t *testing.T) {
	pet1, pet2 := uuid.New(), uuid.New()
	oneToTwo, _ := likee.NewLikee(pet1, pet2)
	twoToOne, _ := likee.NewLikee(pet2, pet1)

	m, err := NewMatch(twoToOne, oneToTwo, time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, twoToOne.ID(), m.FirstLikedID())
	assert.Equal(t, oneToTwo.ID(), m.SecondLikedID())
	assert.Equal(t, pet2, m.FirstPetID())
	assert.Equal(t, pet1, m.SecondPetID())
	assert.True(t, m.NotifyMatch())
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), m.MatchDate())
}

func TestNewMatch_RejectsNonInverseLikes(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	ab, _ := likee.NewLikee(a, b)
	cb, _ := likee.NewLikee(c, b)

	_, err := NewMatch(ab, cb, time.Now())
	assert.Error(t, err)
}

func TestMatch_OtherPetAndContract(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ab, _ := likee.NewLikee(a, b)
	ba, _ := likee.NewLikee(b, a)
	m, err := NewMatch(ab, ba, time.Now())
	require.NoError(t, err)

	other, ok := m.OtherPet(a)
	assert.True(t, ok)
	assert.Equal(t, b, other)
	_, ok = m.OtherPet(uuid.New())
	assert.False(t, ok)

	c1 := uuid.New()
	require.NoError(t, m.LinkContract(c1))
	require.NoError(t, m.LinkContract(c1))
	assert.Error(t, m.LinkContract(uuid.New()))
	m.UnlinkContract()
	assert.Nil(t, m.ContractID())

	m.Acknowledge()
	assert.False(t, m.NotifyMatch())
}

func TestParticipants_Counterpart(t *testing.T) {
	p := Participants{
		First:  Participant{PetID: uuid.New(), OwnerID: uuid.New()},
		Second: Participant{PetID: uuid.New(), OwnerID: uuid.New()},
	}

	cp, ok := p.CounterpartOf(p.First.OwnerID)
	require.True(t, ok)
	assert.Equal(t, p.Second, cp)

	_, ok = p.CounterpartOf(uuid.New())
	assert.False(t, ok)
	assert.Error(t, p.RequireParticipant(uuid.New()))
	assert.NoError(t, p.RequireParticipant(p.Second.OwnerID))
}
