package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"github.com/tunestream/backend/pkg/apperror"
)

type VisitorService struct {
	store *store.Store
}

func NewVisitorService(st *store.Store) *VisitorService {
	return &VisitorService{store: st}
}

type VisitorInput struct {
	IP         string
	IPVersion  string
	City       string
	Region     string
	Country    string
	Longitude  *float64
	NetworkOrg string
}

// Record upserts the visitor document keyed by IP: first visit creates it,
// repeat visits bump visitCount and refresh geo fields and lastVisitedAt.
func (s *VisitorService) Record(ctx context.Context, input VisitorInput) (*models.Visitor, error) {
	if input.IP == "" {
		return nil, apperror.BadRequest("ip is required")
	}

	now := time.Now()
	visitor, err := s.store.Visitors.FindByIP(ctx, input.IP)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("failed to load visitor: %w", err)
		}
		visitor = &models.Visitor{
			IP:            input.IP,
			IPVersion:     input.IPVersion,
			City:          input.City,
			Region:        input.Region,
			Country:       input.Country,
			Longitude:     input.Longitude,
			NetworkOrg:    input.NetworkOrg,
			VisitCount:    1,
			LastVisitedAt: now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.store.Visitors.Create(ctx, visitor); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				// Lost a race with a concurrent first visit, fall through to the update path
				return s.Record(ctx, input)
			}
			return nil, fmt.Errorf("failed to create visitor: %w", err)
		}
		return visitor, nil
	}

	visitor.VisitCount++
	visitor.LastVisitedAt = now
	if input.IPVersion != "" {
		visitor.IPVersion = input.IPVersion
	}
	if input.City != "" {
		visitor.City = input.City
	}
	if input.Region != "" {
		visitor.Region = input.Region
	}
	if input.Country != "" {
		visitor.Country = input.Country
	}
	if input.Longitude != nil {
		visitor.Longitude = input.Longitude
	}
	if input.NetworkOrg != "" {
		visitor.NetworkOrg = input.NetworkOrg
	}
	if err := s.store.Visitors.Update(ctx, visitor); err != nil {
		return nil, fmt.Errorf("failed to update visitor: %w", err)
	}
	return visitor, nil
}
