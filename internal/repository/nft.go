package repository

import (
	"context"

	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type NFTAwardRepository interface {
	UpsertTier(ctx context.Context, tier *entity.NFTAwardTier) error

	// GetTiersAscending returns the full catalog ordered by point
	// threshold, which is the award processing order.
	GetTiersAscending(ctx context.Context) ([]entity.NFTAwardTier, error)

	// GetNextTier returns the lowest-threshold tier still above points, or
	// gorm.ErrRecordNotFound when every tier is reached.
	GetNextTier(ctx context.Context, points int) (*entity.NFTAwardTier, error)

	CreateAwardIfNotExist(ctx context.Context, award *entity.UserNFTAward) (bool, error)
	GetUserAwards(ctx context.Context, userID string) ([]entity.UserNFTAward, error)
	CountUserAwards(ctx context.Context, userID string) (int64, error)
}

type nftAwardRepository struct{}

func NewNFTAwardRepository() *nftAwardRepository {
	return &nftAwardRepository{}
}

func (r *nftAwardRepository) UpsertTier(ctx context.Context, tier *entity.NFTAwardTier) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "point_threshold"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"tier":        tier.Tier,
				"name":        tier.Name,
				"description": tier.Description,
				"image_url":   tier.ImageURL,
			}),
		}).Create(tier).Error
}

func (r *nftAwardRepository) GetTiersAscending(ctx context.Context) ([]entity.NFTAwardTier, error) {
	var result []entity.NFTAwardTier
	err := xcontext.DB(ctx).Order("point_threshold ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *nftAwardRepository) GetNextTier(ctx context.Context, points int) (*entity.NFTAwardTier, error) {
	var result entity.NFTAwardTier
	err := xcontext.DB(ctx).
		Where("point_threshold > ?", points).
		Order("point_threshold ASC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *nftAwardRepository) CreateAwardIfNotExist(
	ctx context.Context, award *entity.UserNFTAward,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(award)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *nftAwardRepository) GetUserAwards(
	ctx context.Context, userID string,
) ([]entity.UserNFTAward, error) {
	var result []entity.UserNFTAward
	err := xcontext.DB(ctx).
		Preload("NFTAwardTier").
		Where("user_id=?", userID).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *nftAwardRepository) CountUserAwards(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.UserNFTAward{}).
		Where("user_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
