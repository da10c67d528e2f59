package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wanderly/travelmarket/internal/models"
)

func (r *GormRepo) GetListing(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := r.DB.WithContext(ctx).First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *GormRepo) GetListings(ctx context.Context, offset, limit int) (int64, []models.Listing, error) {
	var total int64
	q := r.DB.WithContext(ctx).Model(&models.Listing{}).Where("active = ?", true)
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Listing
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) CreateListing(ctx context.Context, listing *models.Listing) error {
	return r.DB.WithContext(ctx).Create(listing).Error
}

type ListingPatch struct {
	Title       *string
	Description *string
	Location    *string
	Price       *float64
	Active      *bool
}

func (r *GormRepo) PatchListing(ctx context.Context, id uint, patch ListingPatch) (*models.Listing, error) {
	var listing models.Listing
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&listing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if patch.Title != nil {
			listing.Title = *patch.Title
		}
		if patch.Description != nil {
			listing.Description = *patch.Description
		}
		if patch.Location != nil {
			listing.Location = *patch.Location
		}
		if patch.Price != nil {
			listing.Price = *patch.Price
		}
		if patch.Active != nil {
			listing.Active = *patch.Active
		}
		return tx.Save(&listing).Error
	})
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *GormRepo) DeleteListing(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Listing{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
