package repository

import (
	"context"

	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *entity.VolunteerApplication) error
	GetByID(ctx context.Context, id string) (*entity.VolunteerApplication, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.VolunteerApplication, error)
	UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus) error
}

type applicationRepository struct{}

func NewApplicationRepository() *applicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(ctx context.Context, application *entity.VolunteerApplication) error {
	return xcontext.DB(ctx).Create(application).Error
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*entity.VolunteerApplication, error) {
	var result entity.VolunteerApplication
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *applicationRepository) GetByUserID(
	ctx context.Context, userID string,
) ([]entity.VolunteerApplication, error) {
	var result []entity.VolunteerApplication
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *applicationRepository) UpdateStatus(
	ctx context.Context, id string, status entity.ApplicationStatus,
) error {
	return xcontext.DB(ctx).
		Model(&entity.VolunteerApplication{}).
		Where("id=?", id).
		Update("status", status).Error
}
