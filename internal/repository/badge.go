package repository

import (
	"context"

	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type BadgeRepository interface {
	Upsert(ctx context.Context, badge *entity.Badge) error
	GetByType(ctx context.Context, badgeType entity.BadgeType) (*entity.Badge, error)
	GetAll(ctx context.Context) ([]entity.Badge, error)

	// CreateUserBadgeIfNotExist inserts the earned-badge row and reports
	// whether a new row was written. A conflict on the (user, type) key is
	// ignored, which makes concurrent awarding safe without an application
	// level check.
	CreateUserBadgeIfNotExist(ctx context.Context, userBadge *entity.UserBadge) (bool, error)
	GetUserBadges(ctx context.Context, userID string) ([]entity.UserBadge, error)
	CountUserBadges(ctx context.Context, userID string) (int64, error)
	MarkNotified(ctx context.Context, userID string, badgeType entity.BadgeType) error
}

type badgeRepository struct{}

func NewBadgeRepository() *badgeRepository {
	return &badgeRepository{}
}

func (r *badgeRepository) Upsert(ctx context.Context, badge *entity.Badge) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "type"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"name":        badge.Name,
				"description": badge.Description,
				"rarity":      badge.Rarity,
			}),
		}).Create(badge).Error
}

func (r *badgeRepository) GetByType(
	ctx context.Context, badgeType entity.BadgeType,
) (*entity.Badge, error) {
	var result entity.Badge
	if err := xcontext.DB(ctx).Where("type=?", badgeType).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *badgeRepository) GetAll(ctx context.Context) ([]entity.Badge, error) {
	var result []entity.Badge
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *badgeRepository) CreateUserBadgeIfNotExist(
	ctx context.Context, userBadge *entity.UserBadge,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(userBadge)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *badgeRepository) GetUserBadges(
	ctx context.Context, userID string,
) ([]entity.UserBadge, error) {
	var result []entity.UserBadge
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("earned_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *badgeRepository) CountUserBadges(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.UserBadge{}).
		Where("user_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *badgeRepository) MarkNotified(
	ctx context.Context, userID string, badgeType entity.BadgeType,
) error {
	return xcontext.DB(ctx).
		Model(&entity.UserBadge{}).
		Where("user_id=? AND badge_type=?", userID, badgeType).
		Update("was_notified", true).Error
}
