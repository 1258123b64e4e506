package repository

import (
	"context"

	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
)

type PointsLogRepository interface {
	Create(ctx context.Context, entry *entity.PointsLogEntry) error
	GetByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.PointsLogEntry, error)
	SumByUserID(ctx context.Context, userID string) (int, error)
}

type pointsLogRepository struct{}

func NewPointsLogRepository() *pointsLogRepository {
	return &pointsLogRepository{}
}

func (r *pointsLogRepository) Create(ctx context.Context, entry *entity.PointsLogEntry) error {
	return xcontext.DB(ctx).Create(entry).Error
}

func (r *pointsLogRepository) GetByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.PointsLogEntry, error) {
	var result []entity.PointsLogEntry
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pointsLogRepository) SumByUserID(ctx context.Context, userID string) (int, error) {
	var sum *int
	err := xcontext.DB(ctx).
		Model(&entity.PointsLogEntry{}).
		Select("SUM(points)").
		Where("user_id=?", userID).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}

	if sum == nil {
		return 0, nil
	}

	return *sum, nil
}
