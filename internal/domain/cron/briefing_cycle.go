package cron

import (
	"context"
	"errors"
	"time"

	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/dateutil"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// BriefingCycleCronJob restarts the 365-day briefing cycle. When today's
// briefing is the last slot of the cycle, every briefing is re-dated to a
// fresh run starting tomorrow, preserving the original order.
type BriefingCycleCronJob struct {
	briefingRepo repository.BriefingRepository
}

func NewBriefingCycleCronJob(briefingRepo repository.BriefingRepository) *BriefingCycleCronJob {
	return &BriefingCycleCronJob{briefingRepo: briefingRepo}
}

func (job *BriefingCycleCronJob) Do(ctx context.Context) {
	today, err := job.briefingRepo.GetByDate(ctx, time.Now())
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get today briefing: %v", err)
		}
		return
	}

	if today.CycleDay != dateutil.CycleLength {
		return
	}

	briefings, err := job.briefingRepo.GetAllByDateAscending(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get briefings: %v", err)
		return
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	start := dateutil.NextDay(time.Now())
	for i := range briefings {
		date := start.AddDate(0, 0, i)
		if err := job.briefingRepo.ReDate(ctx, briefings[i].ID, date, i+1); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot re-date briefing %s: %v", briefings[i].ID, err)
			return
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	xcontext.Logger(ctx).Infof("Briefing cycle restarted with %d slots", len(briefings))
}

func (job *BriefingCycleCronJob) RunNow() bool {
	return true
}

func (job *BriefingCycleCronJob) Next() time.Time {
	return dateutil.NextDay(time.Now())
}
