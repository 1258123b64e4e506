package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// LeaderboardFilter narrows the engaged-user query. Zero values mean "no
// filter"; a zero Cutoff disables the timeframe check.
type LeaderboardFilter struct {
	Search         string
	Cutoff         time.Time
	OnlyApplicants bool
}

// UserEngagement is a user row plus the earned badge and NFT counts pulled
// from the real award tables.
type UserEngagement struct {
	entity.User
	BadgeCount int
	NFTCount   int
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByReferralCode(ctx context.Context, code string) (*entity.User, error)
	UpdateBio(ctx context.Context, id, bio string) error
	SetRole(ctx context.Context, id, role string) error
	SetHasApplied(ctx context.Context, id string) error
	IncreaseParticipation(ctx context.Context, id string, points int) error
	IncreaseDonationPoints(ctx context.Context, id string, points int) error
	GetEngaged(ctx context.Context, filter LeaderboardFilter) ([]UserEngagement, error)
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Where("email=?", email).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Where("referral_code=?", code).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) UpdateBio(ctx context.Context, id, bio string) error {
	return r.updateOne(ctx, id, map[string]any{"bio": bio})
}

func (r *userRepository) SetRole(ctx context.Context, id, role string) error {
	return r.updateOne(ctx, id, map[string]any{"role": role})
}

func (r *userRepository) SetHasApplied(ctx context.Context, id string) error {
	return r.updateOne(ctx, id, map[string]any{"has_applied": true})
}

func (r *userRepository) IncreaseParticipation(ctx context.Context, id string, points int) error {
	return r.updateOne(ctx, id, map[string]any{
		"participation_count": gorm.Expr("participation_count+?", points),
	})
}

func (r *userRepository) IncreaseDonationPoints(ctx context.Context, id string, points int) error {
	return r.updateOne(ctx, id, map[string]any{
		"donation_points": gorm.Expr("donation_points+?", points),
	})
}

func (r *userRepository) updateOne(ctx context.Context, id string, updates map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Updates(updates)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userRepository) GetEngaged(
	ctx context.Context, filter LeaderboardFilter,
) ([]UserEngagement, error) {
	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Select(`users.*,
			(SELECT COUNT(*) FROM user_badges WHERE user_badges.user_id = users.id) AS badge_count,
			(SELECT COUNT(*) FROM user_nft_awards WHERE user_nft_awards.user_id = users.id) AS nft_count`).
		Where("participation_count >= 1")

	if filter.Search != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	if !filter.Cutoff.IsZero() {
		tx = tx.Where("updated_at >= ?", filter.Cutoff)
	}

	if filter.OnlyApplicants {
		tx = tx.Where("has_applied = ?", true)
	}

	var result []UserEngagement
	if err := tx.Order("participation_count DESC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
