package application

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
	photoDomain "github.com/furrymatch/service-matching/internal/domain/photo"
)

func TestPhotoUploadFlow(t *testing.T) {
	env := newTestEnv()
	svc := env.photoService()
	ctx := context.Background()
	ownerID := uuid.New()
	pet := env.pets.add(ownerID, "Luna", petDomain.SexFemale)

	ticket, err := svc.RequestUpload(ctx, ownerID, pet.ID(), RequestUploadRequest{FileName: "luna.png", ContentType: "image/png"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ticket.ObjectKey, photoDomain.KeyPrefix(pet.ID())))
	assert.True(t, strings.HasSuffix(ticket.ObjectKey, ".png"))
	assert.Contains(t, ticket.UploadURL, "X-Amz-Signature=put")

	added, err := svc.AddPhoto(ctx, ownerID, pet.ID(), AddPhotoRequest{ObjectKey: ticket.ObjectKey, Caption: "beach day"})
	require.NoError(t, err)
	assert.Contains(t, added.URL, "X-Amz-Signature=get")

	list, err := svc.ListPhotos(ctx, pet.ID())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "beach day", list[0].Caption)

	require.NoError(t, svc.DeletePhoto(ctx, ownerID, pet.ID(), added.ID))
	assert.Empty(t, env.photos.photos)
}

func TestPhotoService_Rejections(t *testing.T) {
	env := newTestEnv()
	svc := env.photoService()
	ctx := context.Background()
	ownerID := uuid.New()
	pet := env.pets.add(ownerID, "Luna", petDomain.SexFemale)
	other := env.pets.add(uuid.New(), "Max", petDomain.SexMale)

	_, err := svc.RequestUpload(ctx, ownerID, pet.ID(), RequestUploadRequest{ContentType: "application/pdf"})
	assert.True(t, isValidation(err))

	_, err = svc.RequestUpload(ctx, uuid.New(), pet.ID(), RequestUploadRequest{ContentType: "image/png"})
	assert.True(t, isForbidden(err))

	_, err = svc.AddPhoto(ctx, ownerID, pet.ID(), AddPhotoRequest{ObjectKey: photoDomain.KeyPrefix(other.ID()) + "x.png"})
	assert.True(t, isValidation(err), "key outside the pet prefix")

	_, err = svc.AddPhoto(ctx, ownerID, pet.ID(), AddPhotoRequest{ObjectKey: photoDomain.KeyPrefix(pet.ID()) + "../x.png"})
	assert.True(t, isValidation(err), "path traversal")
}
