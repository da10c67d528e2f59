package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/wanderly/travelmarket/internal/logging"
	"github.com/wanderly/travelmarket/internal/models"
	"github.com/wanderly/travelmarket/internal/repo"
	"github.com/wanderly/travelmarket/internal/search"
)

var ErrForbidden = errors.New("forbidden")

// ListingService manages the travel service catalog. Only the owning
// service_provider or an admin may mutate a listing.
type ListingService struct {
	Repo *repo.GormRepo
	ES   *elasticsearch.Client
}

func (s *ListingService) GetListing(ctx context.Context, id uint) (*models.Listing, error) {
	return s.Repo.GetListing(ctx, id)
}

func (s *ListingService) GetListings(ctx context.Context, offset, limit int) (int64, []models.Listing, error) {
	return s.Repo.GetListings(ctx, offset, limit)
}

func (s *ListingService) CreateListing(ctx context.Context, actorID uint, actorRole string, listing *models.Listing) error {
	if actorRole != models.RoleServiceProvider && actorRole != models.RoleAdmin {
		return ErrForbidden
	}
	if listing.Title == "" {
		return fmt.Errorf("title required: %w", ErrValidation)
	}
	if listing.Price < 0 {
		return fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}
	listing.ProviderID = actorID
	listing.Active = true

	if err := s.Repo.CreateListing(ctx, listing); err != nil {
		return err
	}
	s.index(ctx, listing)
	return nil
}

func (s *ListingService) PatchListing(ctx context.Context, actorID uint, actorRole string, id uint, patch repo.ListingPatch) (*models.Listing, error) {
	existing, err := s.Repo.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && existing.ProviderID != actorID {
		return nil, ErrForbidden
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	listing, err := s.Repo.PatchListing(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.index(ctx, listing)
	return listing, nil
}

func (s *ListingService) DeleteListing(ctx context.Context, actorID uint, actorRole string, id uint) error {
	existing, err := s.Repo.GetListing(ctx, id)
	if err != nil {
		return err
	}
	if actorRole != models.RoleAdmin && existing.ProviderID != actorID {
		return ErrForbidden
	}

	if err := s.Repo.DeleteListing(ctx, id); err != nil {
		return err
	}
	if s.ES != nil {
		if err := search.DeleteListing(ctx, s.ES, search.ListingsIndex, id); err != nil {
			logging.FromContext(ctx).Error("listing_deindex_failed", "listing_id", id, "error", err)
		}
	}
	return nil
}

// index mirrors the listing into the search index; the database stays the
// source of truth, so an indexing failure is logged and swallowed.
func (s *ListingService) index(ctx context.Context, listing *models.Listing) {
	if s.ES == nil {
		return
	}
	if err := search.IndexListing(ctx, s.ES, search.ListingsIndex, listing); err != nil {
		logging.FromContext(ctx).Error("listing_index_failed", "listing_id", listing.ID, "error", err)
	}
}
