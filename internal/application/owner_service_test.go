package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
)

func TestUpsertProfile_CreatesThenUpdates(t *testing.T) {
	env := newTestEnv()
	svc := env.ownerService()
	ctx := context.Background()
	ownerID := uuid.New()

	_, err := svc.GetProfile(ctx, ownerID)
	assert.True(t, isNotFound(err))

	created, err := svc.UpsertProfile(ctx, ownerID, UpsertProfileRequest{FirstName: "Ana", Province: "San Jose"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", created.FirstName)

	updated, err := svc.UpsertProfile(ctx, ownerID, UpsertProfileRequest{FirstName: "Ana", Province: "Heredia"})
	require.NoError(t, err)
	assert.Equal(t, "Heredia", updated.Province)
	assert.Len(t, env.owners.owners, 1)
}

func TestSelectPet_AndCurrentPet(t *testing.T) {
	env := newTestEnv()
	svc := env.ownerService()
	ctx := context.Background()
	ownerID := uuid.New()
	mine := env.pets.add(ownerID, "Luna", petDomain.SexFemale)
	theirs := env.pets.add(uuid.New(), "Max", petDomain.SexMale)

	_, err := svc.SelectPet(ctx, ownerID, theirs.ID())
	assert.True(t, isForbidden(err))

	_, err = svc.CurrentPet(ctx, ownerID)
	assert.True(t, isNotFound(err))

	profile, err := svc.SelectPet(ctx, ownerID, mine.ID())
	require.NoError(t, err)
	require.NotNil(t, profile.SelectedPetID)

	current, err := svc.CurrentPet(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID(), current.PetID)
}

func TestSetActiveMatch_UsesCounterpartPet(t *testing.T) {
	env := newTestEnv()
	svc := env.ownerService()
	ctx := context.Background()
	ownerA, ownerB, m := env.matchedPair()

	profile, err := svc.SetActiveMatch(ctx, ownerB, m.ID())
	require.NoError(t, err)
	require.NotNil(t, profile.ActiveMatchID)
	assert.Equal(t, m.ID(), *profile.ActiveMatchID)
	assert.Equal(t, m.FirstPetID(), *profile.ActiveMatchPetID)

	profile, err = svc.SetActiveMatch(ctx, ownerA, m.ID())
	require.NoError(t, err)
	assert.Equal(t, m.SecondPetID(), *profile.ActiveMatchPetID)

	_, err = svc.SetActiveMatch(ctx, uuid.New(), m.ID())
	assert.True(t, isForbidden(err))
}
