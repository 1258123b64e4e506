package repository

import (
	"context"
	"time"

	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/pkg/dateutil"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type BriefingRepository interface {
	Create(ctx context.Context, briefing *entity.DailyBriefing) error
	GetByID(ctx context.Context, id string) (*entity.DailyBriefing, error)
	GetByDate(ctx context.Context, date time.Time) (*entity.DailyBriefing, error)

	// GetLatest returns the most recent briefing by date, the fallback when
	// no row matches today exactly.
	GetLatest(ctx context.Context) (*entity.DailyBriefing, error)

	GetAllByDateAscending(ctx context.Context) ([]entity.DailyBriefing, error)
	ReDate(ctx context.Context, id string, date time.Time, cycleDay int) error

	CreateAttendanceIfNotExist(ctx context.Context, attendance *entity.BriefingAttendance) (bool, error)
	CreateShareIfNotExist(ctx context.Context, share *entity.BriefingShare) (bool, error)
}

type briefingRepository struct{}

func NewBriefingRepository() *briefingRepository {
	return &briefingRepository{}
}

func (r *briefingRepository) Create(ctx context.Context, briefing *entity.DailyBriefing) error {
	return xcontext.DB(ctx).Create(briefing).Error
}

func (r *briefingRepository) GetByID(ctx context.Context, id string) (*entity.DailyBriefing, error) {
	var result entity.DailyBriefing
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *briefingRepository) GetByDate(
	ctx context.Context, date time.Time,
) (*entity.DailyBriefing, error) {
	begin := dateutil.BeginningOfDay(date)
	end := dateutil.NextDay(date)

	var result entity.DailyBriefing
	err := xcontext.DB(ctx).
		Where("date >= ? AND date < ?", begin, end).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *briefingRepository) GetLatest(ctx context.Context) (*entity.DailyBriefing, error) {
	var result entity.DailyBriefing
	err := xcontext.DB(ctx).Order("date DESC").Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *briefingRepository) GetAllByDateAscending(ctx context.Context) ([]entity.DailyBriefing, error) {
	var result []entity.DailyBriefing
	if err := xcontext.DB(ctx).Order("date ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *briefingRepository) ReDate(
	ctx context.Context, id string, date time.Time, cycleDay int,
) error {
	return xcontext.DB(ctx).
		Model(&entity.DailyBriefing{}).
		Where("id=?", id).
		Updates(map[string]any{"date": date, "cycle_day": cycleDay}).Error
}

func (r *briefingRepository) CreateAttendanceIfNotExist(
	ctx context.Context, attendance *entity.BriefingAttendance,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(attendance)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *briefingRepository) CreateShareIfNotExist(
	ctx context.Context, share *entity.BriefingShare,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(share)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}
