package repository

import (
	"context"
	"errors"

	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReferralRepository interface {
	Create(ctx context.Context, referral *entity.VolunteerReferral) error
	GetByID(ctx context.Context, id string) (*entity.VolunteerReferral, error)
	GetByRecruiterID(ctx context.Context, recruiterID string) ([]entity.VolunteerReferral, error)

	// UpdateStatus moves a referral from one status to another. The old
	// status is part of the WHERE clause so a concurrent update loses the
	// race cleanly instead of double-awarding.
	UpdateStatus(ctx context.Context, id string, from, to entity.ReferralStatus) error

	UpsertStats(ctx context.Context, userID string, referrals, successful, points int) error
	GetStats(ctx context.Context, userID string) (*entity.RecruiterStats, error)

	CreateEvent(ctx context.Context, event *entity.ReferralEvent) error
	GetEvents(ctx context.Context, recruiterID string, limit int) ([]entity.ReferralEvent, error)
}

type referralRepository struct{}

func NewReferralRepository() *referralRepository {
	return &referralRepository{}
}

func (r *referralRepository) Create(ctx context.Context, referral *entity.VolunteerReferral) error {
	return xcontext.DB(ctx).Create(referral).Error
}

func (r *referralRepository) GetByID(ctx context.Context, id string) (*entity.VolunteerReferral, error) {
	var result entity.VolunteerReferral
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *referralRepository) GetByRecruiterID(
	ctx context.Context, recruiterID string,
) ([]entity.VolunteerReferral, error) {
	var result []entity.VolunteerReferral
	err := xcontext.DB(ctx).
		Where("recruiter_id=?", recruiterID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *referralRepository) UpdateStatus(
	ctx context.Context, id string, from, to entity.ReferralStatus,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.VolunteerReferral{}).
		Where("id=? AND status=?", id, from).
		Update("status", to)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	return nil
}

func (r *referralRepository) UpsertStats(
	ctx context.Context, userID string, referrals, successful, points int,
) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"referrals_count":      gorm.Expr("referrals_count+?", referrals),
				"successful_referrals": gorm.Expr("successful_referrals+?", successful),
				"total_points":         gorm.Expr("total_points+?", points),
			}),
		}).
		Create(&entity.RecruiterStats{
			UserID:              userID,
			ReferralsCount:      referrals,
			SuccessfulReferrals: successful,
			TotalPoints:         points,
		}).Error
}

func (r *referralRepository) GetStats(ctx context.Context, userID string) (*entity.RecruiterStats, error) {
	var result entity.RecruiterStats
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *referralRepository) CreateEvent(ctx context.Context, event *entity.ReferralEvent) error {
	return xcontext.DB(ctx).Create(event).Error
}

func (r *referralRepository) GetEvents(
	ctx context.Context, recruiterID string, limit int,
) ([]entity.ReferralEvent, error) {
	var result []entity.ReferralEvent
	err := xcontext.DB(ctx).
		Where("recruiter_id=?", recruiterID).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
