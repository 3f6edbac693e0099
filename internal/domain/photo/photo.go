package photo

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/furrymatch/service-matching/internal/platform/domain"
)

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ExtensionFor returns the file extension stored for a content type.
func ExtensionFor(contentType string) (string, error) {
	ext, ok := allowedContentTypes[strings.ToLower(contentType)]
	if !ok {
		return "", domain.NewValidationError(fmt.Sprintf("unsupported content type: %s", contentType))
	}
	return ext, nil
}

// KeyPrefix is the object key prefix under which a pet's photos live.
func KeyPrefix(petID uuid.UUID) string {
	return "pets/" + petID.String() + "/"
}

// NewObjectKey builds a fresh object key for an upload.
func NewObjectKey(petID uuid.UUID, contentType string) (string, error) {
	ext, err := ExtensionFor(contentType)
	if err != nil {
		return "", err
	}
	return KeyPrefix(petID) + uuid.NewString() + ext, nil
}

// PetPhoto is a picture stored in object storage for a pet profile.
type PetPhoto struct {
	id        uuid.UUID
	petID     uuid.UUID
	objectKey string
	caption   string
	createdAt time.Time
}

// NewPetPhoto records an uploaded object. The key must live under the pet's prefix.
func NewPetPhoto(petID uuid.UUID, objectKey, caption string) (*PetPhoto, error) {
	clean := path.Clean(objectKey)
	if objectKey == "" || clean != objectKey || !strings.HasPrefix(objectKey, KeyPrefix(petID)) {
		return nil, domain.NewValidationError("object key does not belong to this pet")
	}
	return &PetPhoto{
		id:        uuid.New(),
		petID:     petID,
		objectKey: objectKey,
		caption:   caption,
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a PetPhoto from persistence.
func Reconstruct(id, petID uuid.UUID, objectKey, caption string, createdAt time.Time) *PetPhoto {
	return &PetPhoto{
		id:        id,
		petID:     petID,
		objectKey: objectKey,
		caption:   caption,
		createdAt: createdAt,
	}
}

// Getters.
func (p *PetPhoto) ID() uuid.UUID        { return p.id }
func (p *PetPhoto) PetID() uuid.UUID     { return p.petID }
func (p *PetPhoto) ObjectKey() string    { return p.objectKey }
func (p *PetPhoto) Caption() string      { return p.caption }
func (p *PetPhoto) CreatedAt() time.Time { return p.createdAt }
