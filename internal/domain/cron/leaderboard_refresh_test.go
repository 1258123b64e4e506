package cron

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/sfdsa-platform/backend/internal/domain/statistic"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_LeaderboardRefreshCronJob(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	userRepo := repository.NewUserRepository()
	require.NoError(t, userRepo.IncreaseParticipation(ctx, "user1", 10))

	deleted := false
	reloaded := []string{}
	leaderboard := statistic.New(userRepo, &testutil.MockRedisClient{
		DelFunc: func(ctx context.Context, key ...string) error {
			deleted = true
			return nil
		},
		ZAddFunc: func(ctx context.Context, key string, z redis.Z) error {
			reloaded = append(reloaded, z.Member.(string))
			return nil
		},
	})

	NewLeaderboardRefreshCronJob(leaderboard).Do(ctx)
	require.True(t, deleted)
	require.Equal(t, []string{"user1"}, reloaded)
}
