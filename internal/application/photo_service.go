package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
	photoDomain "github.com/furrymatch/service-matching/internal/domain/photo"
	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// RequestUploadRequest asks for a presigned upload URL for a pet photo.
type RequestUploadRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type" binding:"required"`
}

// AddPhotoRequest registers an uploaded object as a pet photo.
type AddPhotoRequest struct {
	ObjectKey string `json:"object_key" binding:"required"`
	Caption   string `json:"caption"`
}

// UploadTicketDTO tells the client where to PUT the file.
type UploadTicketDTO struct {
	ObjectKey   string `json:"object_key"`
	UploadURL   string `json:"upload_url"`
	ContentType string `json:"content_type"`
}

// PhotoDTO is the API response representation of a pet photo.
type PhotoDTO struct {
	ID        uuid.UUID `json:"id"`
	PetID     uuid.UUID `json:"pet_id"`
	ObjectKey string    `json:"object_key"`
	URL       string    `json:"url,omitempty"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

// PhotoService handles pet photo use cases backed by object storage.
type PhotoService struct {
	repo      photoDomain.PhotoRepository
	pets      petDomain.PetRepository
	presigner ObjectPresigner
	logger    *zap.Logger
}

// NewPhotoService creates a new PhotoService.
func NewPhotoService(
	repo photoDomain.PhotoRepository,
	pets petDomain.PetRepository,
	presigner ObjectPresigner,
	logger *zap.Logger,
) *PhotoService {
	return &PhotoService{repo: repo, pets: pets, presigner: presigner, logger: logger}
}

// RequestUpload issues a presigned PUT URL under the pet's key prefix.
func (s *PhotoService) RequestUpload(ctx context.Context, ownerID, petID uuid.UUID, req RequestUploadRequest) (*UploadTicketDTO, error) {
	if err := requireOwnedPet(ctx, s.pets, ownerID, petID); err != nil {
		return nil, err
	}
	key, err := photoDomain.NewObjectKey(petID, req.ContentType)
	if err != nil {
		return nil, err
	}
	url, err := s.presigner.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		s.logger.Error("failed to presign upload", zap.String("pet_id", petID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	s.logger.Info("photo upload requested",
		zap.String("pet_id", petID.String()),
		zap.String("object_key", key),
		zap.String("file_name", req.FileName),
	)
	return &UploadTicketDTO{ObjectKey: key, UploadURL: url, ContentType: req.ContentType}, nil
}

// AddPhoto records an uploaded object for the pet.
func (s *PhotoService) AddPhoto(ctx context.Context, ownerID, petID uuid.UUID, req AddPhotoRequest) (*PhotoDTO, error) {
	if err := requireOwnedPet(ctx, s.pets, ownerID, petID); err != nil {
		return nil, err
	}
	photo, err := photoDomain.NewPetPhoto(petID, req.ObjectKey, req.Caption)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, photo); err != nil {
		s.logger.Error("failed to save photo", zap.String("pet_id", petID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	s.logger.Info("photo added",
		zap.String("pet_id", petID.String()),
		zap.String("photo_id", photo.ID().String()),
	)
	return s.toPhotoDTO(ctx, photo), nil
}

// ListPhotos returns a pet's photos with presigned download URLs.
func (s *PhotoService) ListPhotos(ctx context.Context, petID uuid.UUID) ([]*PhotoDTO, error) {
	if _, err := s.pets.FindByID(ctx, petID); err != nil {
		return nil, err
	}
	photos, err := s.repo.FindByPetID(ctx, petID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	dtos := make([]*PhotoDTO, len(photos))
	for i, p := range photos {
		dtos[i] = s.toPhotoDTO(ctx, p)
	}
	return dtos, nil
}

// DeletePhoto removes a photo record of one of the caller's pets.
func (s *PhotoService) DeletePhoto(ctx context.Context, ownerID, petID, photoID uuid.UUID) error {
	if err := requireOwnedPet(ctx, s.pets, ownerID, petID); err != nil {
		return err
	}
	photo, err := s.repo.FindByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.PetID() != petID {
		return domain.NewNotFoundError("PetPhoto", photoID.String())
	}
	if err := s.repo.Delete(ctx, photoID); err != nil {
		s.logger.Error("failed to delete photo", zap.String("photo_id", photoID.String()), zap.Error(err))
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	s.logger.Info("photo deleted", zap.String("photo_id", photoID.String()))
	return nil
}

func (s *PhotoService) toPhotoDTO(ctx context.Context, p *photoDomain.PetPhoto) *PhotoDTO {
	dto := &PhotoDTO{
		ID:        p.ID(),
		PetID:     p.PetID(),
		ObjectKey: p.ObjectKey(),
		Caption:   p.Caption(),
		CreatedAt: p.CreatedAt(),
	}
	url, err := s.presigner.PresignDownload(ctx, p.ObjectKey())
	if err != nil {
		s.logger.Warn("failed to presign download",
			zap.String("object_key", p.ObjectKey()),
			zap.Error(err),
		)
		return dto
	}
	dto.URL = url
	return dto
}
