package repository

import (
	"context"

	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
)

type DonationRepository interface {
	CreateRule(ctx context.Context, rule *entity.DonationPointRule) error
	GetActiveRules(ctx context.Context) ([]entity.DonationPointRule, error)
	DeactivateRule(ctx context.Context, id string) error

	Create(ctx context.Context, donation *entity.Donation) error
	CountByUserID(ctx context.Context, userID string) (int64, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Donation, error)
}

type donationRepository struct{}

func NewDonationRepository() *donationRepository {
	return &donationRepository{}
}

func (r *donationRepository) CreateRule(ctx context.Context, rule *entity.DonationPointRule) error {
	return xcontext.DB(ctx).Create(rule).Error
}

// GetActiveRules returns active rules ordered by min_amount ascending, the
// tie-break order used when matching an amount.
func (r *donationRepository) GetActiveRules(ctx context.Context) ([]entity.DonationPointRule, error) {
	var result []entity.DonationPointRule
	err := xcontext.DB(ctx).
		Where("is_active=?", true).
		Order("min_amount ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *donationRepository) DeactivateRule(ctx context.Context, id string) error {
	return xcontext.DB(ctx).
		Model(&entity.DonationPointRule{}).
		Where("id=?", id).
		Update("is_active", false).Error
}

func (r *donationRepository) Create(ctx context.Context, donation *entity.Donation) error {
	return xcontext.DB(ctx).Create(donation).Error
}

func (r *donationRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Donation{}).
		Where("user_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *donationRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Donation, error) {
	var result []entity.Donation
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
