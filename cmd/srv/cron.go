package main

import (
	"github.com/sfdsa-platform/backend/internal/domain/cron"
	"github.com/sfdsa-platform/backend/internal/domain/statistic"

	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedisClient()
	s.loadRepos()

	leaderboard := statistic.New(s.userRepo, s.redisClient)

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewBriefingCycleCronJob(s.briefingRepo))
	cronJobManager.Register(cron.NewLeaderboardRefreshCronJob(leaderboard))
	cronJobManager.Start(s.ctx)

	return nil
}
