package cron

import (
	"context"
	"time"

	"github.com/sfdsa-platform/backend/internal/domain/statistic"
	"github.com/sfdsa-platform/backend/pkg/dateutil"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
)

// LeaderboardRefreshCronJob rebuilds the redis participation sorted set
// from the database once a day, repairing any drift from missed bumps.
type LeaderboardRefreshCronJob struct {
	leaderboard statistic.Leaderboard
}

func NewLeaderboardRefreshCronJob(leaderboard statistic.Leaderboard) *LeaderboardRefreshCronJob {
	return &LeaderboardRefreshCronJob{leaderboard: leaderboard}
}

func (job *LeaderboardRefreshCronJob) Do(ctx context.Context) {
	if err := job.leaderboard.Refresh(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot refresh leaderboard: %v", err)
	}
}

func (job *LeaderboardRefreshCronJob) RunNow() bool {
	return false
}

func (job *LeaderboardRefreshCronJob) Next() time.Time {
	return dateutil.NextDay(time.Now())
}
