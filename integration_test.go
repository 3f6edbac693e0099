//go:build integration

package main_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furrymatch/service-matching/internal/application"
	"github.com/furrymatch/service-matching/internal/proto/events"
)

// TestMutualLike_CreatesMatchAndOpensThread drives two owners liking each
// other's pets: the second like creates the match, a MatchCreatedEvent is
// published and the consumer stores the greeting.
func TestMutualLike_CreatesMatchAndOpensThread(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupMatchingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	ownerA, petA := seedOwnerWithPet(t, stack, "San Jose", "M")
	ownerB, petB := seedOwnerWithPet(t, stack, "San Jose", "F")

	first, err := stack.Likes.RecordLike(ctx, ownerA, application.RecordLikeRequest{
		FirstPetID: petA.ID, SecondPetID: petB.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, first.Match)

	second, err := stack.Likes.RecordLike(ctx, ownerB, application.RecordLikeRequest{
		FirstPetID: petB.ID, SecondPetID: petA.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, second.Match)
	assert.Equal(t, petA.ID, second.Match.FirstPetID)
	assert.Equal(t, petB.ID, second.Match.SecondPetID)

	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicMatchEvents, events.MatchCreated, 15*time.Second)
	var created events.MatchCreatedEvent
	require.NoError(t, ce.ParseData(&created))
	assert.Equal(t, second.Match.ID, created.MatchID)

	require.Eventually(t, func() bool {
		msgs, err := stack.Chats.ListByMatch(ctx, ownerA, second.Match.ID)
		return err == nil && len(msgs) == 1 && msgs[0].System
	}, 15*time.Second, 200*time.Millisecond, "greeting was not stored")
}

// TestConcurrentMutualLikes_CreateOneMatch fires both likes at once; the
// pair lock must leave exactly one match row.
func TestConcurrentMutualLikes_CreateOneMatch(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupMatchingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()
	ownerA, petA := seedOwnerWithPet(t, stack, "Heredia", "M")
	ownerB, petB := seedOwnerWithPet(t, stack, "Heredia", "F")

	var wg sync.WaitGroup
	results := make([]*application.LikeResultDTO, 2)
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0], errs[0] = stack.Likes.RecordLike(ctx, ownerA, application.RecordLikeRequest{FirstPetID: petA.ID, SecondPetID: petB.ID})
	}()
	go func() {
		defer wg.Done()
		results[1], errs[1] = stack.Likes.RecordLike(ctx, ownerB, application.RecordLikeRequest{FirstPetID: petB.ID, SecondPetID: petA.ID})
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	var matches int64
	require.NoError(t, infra.DB.Table("matches").Count(&matches).Error)
	assert.Equal(t, int64(1), matches)
	assert.True(t, results[0].Match != nil || results[1].Match != nil)
}

// TestSearch_ExcludesOwnAndAlreadyLikedPets checks the exclusions applied
// to every search.
func TestSearch_ExcludesOwnAndAlreadyLikedPets(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupMatchingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()
	ownerA, petA := seedOwnerWithPet(t, stack, "Cartago", "M")
	_, petB := seedOwnerWithPet(t, stack, "Cartago", "F")
	_, petC := seedOwnerWithPet(t, stack, "Cartago", "F")
	_, petD := seedOwnerWithPet(t, stack, "Limon", "F")

	_, err := stack.Owners.SelectPet(ctx, ownerA, petA.ID)
	require.NoError(t, err)

	_, err = stack.Likes.RecordLike(ctx, ownerA, application.RecordLikeRequest{FirstPetID: petA.ID, SecondPetID: petB.ID})
	require.NoError(t, err)

	pets, total, err := stack.Pets.Search(ctx, ownerA, application.SearchPetsRequest{
		CriteriaInput: application.CriteriaInput{Province: "Cartago"},
	}, 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, petC.ID, pets[0].ID)

	pets, total, err = stack.Pets.Search(ctx, ownerA, application.SearchPetsRequest{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	ids := []interface{}{pets[0].ID, pets[1].ID}
	assert.Contains(t, ids, petC.ID)
	assert.Contains(t, ids, petD.ID)
	assert.NotContains(t, ids, petA.ID)
	assert.NotContains(t, ids, petB.ID)
}
