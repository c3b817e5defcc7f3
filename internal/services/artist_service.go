package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"github.com/tunestream/backend/pkg/apperror"
	"github.com/tunestream/backend/pkg/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ArtistService struct {
	store *store.Store
}

func NewArtistService(st *store.Store) *ArtistService {
	return &ArtistService{store: st}
}

// CreateArtistInput carries the fields accepted when registering an artist
type CreateArtistInput struct {
	ArtistName  string
	ArtistBio   string
	ArtistImage string
	Genres      []string
	SocialLinks models.SocialLinks
}

// UpdateArtistInput carries the partial-update fields; nil means leave unchanged
type UpdateArtistInput struct {
	ArtistName  *string
	ArtistBio   *string
	ArtistImage *string
	Genres      *[]string
	SocialLinks *models.SocialLinks
}

func (s *ArtistService) Create(ctx context.Context, input CreateArtistInput) (*models.Artist, error) {
	name := validation.SanitizeString(input.ArtistName)
	if name == "" {
		return nil, apperror.BadRequest("artist name is required")
	}

	if _, err := s.store.Artists.FindByName(ctx, name); err == nil {
		return nil, apperror.Conflict("artist with this name already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check artist name: %w", err)
	}

	now := time.Now()
	artist := &models.Artist{
		ArtistName:  name,
		ArtistBio:   input.ArtistBio,
		ArtistImage: input.ArtistImage,
		Genres:      input.Genres,
		SocialLinks: input.SocialLinks,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Artists.Create(ctx, artist); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperror.Conflict("artist with this name already exists")
		}
		return nil, fmt.Errorf("failed to create artist: %w", err)
	}
	return artist, nil
}

func (s *ArtistService) Get(ctx context.Context, id primitive.ObjectID) (*models.Artist, error) {
	artist, err := s.store.Artists.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("artist not found")
		}
		return nil, fmt.Errorf("failed to load artist: %w", err)
	}
	return artist, nil
}

func (s *ArtistService) List(ctx context.Context, filter store.ArtistFilter, page store.Page) ([]models.Artist, int64, error) {
	artists, total, err := s.store.Artists.Find(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list artists: %w", err)
	}
	return artists, total, nil
}

func (s *ArtistService) Update(ctx context.Context, id primitive.ObjectID, input UpdateArtistInput) (*models.Artist, error) {
	artist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ArtistName != nil {
		name := validation.SanitizeString(*input.ArtistName)
		if name == "" {
			return nil, apperror.BadRequest("artist name cannot be empty")
		}
		if name != artist.ArtistName {
			if _, err := s.store.Artists.FindByName(ctx, name); err == nil {
				return nil, apperror.Conflict("artist with this name already exists")
			} else if !errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("failed to check artist name: %w", err)
			}
		}
		artist.ArtistName = name
	}
	if input.ArtistBio != nil {
		artist.ArtistBio = *input.ArtistBio
	}
	if input.ArtistImage != nil {
		artist.ArtistImage = *input.ArtistImage
	}
	if input.Genres != nil {
		artist.Genres = *input.Genres
	}
	if input.SocialLinks != nil {
		artist.SocialLinks = *input.SocialLinks
	}

	if err := s.store.Artists.Update(ctx, artist); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("artist not found")
		}
		return nil, fmt.Errorf("failed to update artist: %w", err)
	}
	return artist, nil
}

func (s *ArtistService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.store.Artists.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("artist not found")
		}
		return fmt.Errorf("failed to delete artist: %w", err)
	}
	return nil
}
