package statistic

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/errorx"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"github.com/sfdsa-platform/backend/pkg/xredis"
)

const participationKey = "leaderboard:participation"

// Leaderboard maintains the redis sorted set that backs rank lookups. The
// set is loaded lazily from the database, bumped on every point award while
// warm, and rebuilt daily by a cron job.
type Leaderboard interface {
	GetRank(ctx context.Context, userID string) (uint64, error)
	Change(ctx context.Context, value int64, userID string) error
	Refresh(ctx context.Context) error
}

type leaderboard struct {
	userRepo    repository.UserRepository
	redisClient xredis.Client
}

func New(userRepo repository.UserRepository, redisClient xredis.Client) *leaderboard {
	return &leaderboard{userRepo: userRepo, redisClient: redisClient}
}

func (l *leaderboard) GetRank(ctx context.Context, userID string) (uint64, error) {
	ok, err := l.redisClient.Exist(ctx, participationKey)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return 0, errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadFromDB(ctx); err != nil {
			return 0, err
		}
	}

	rank, err := l.redisClient.ZRevRank(ctx, participationKey, userID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get rev rank redis: %v", err)
		return 0, nil
	}

	return rank + 1, nil
}

func (l *leaderboard) Change(ctx context.Context, value int64, userID string) error {
	ok, err := l.redisClient.Exist(ctx, participationKey)
	if err != nil {
		return err
	}

	// If the key didn't exist in redis, no need to update.
	if !ok {
		return nil
	}

	return l.redisClient.ZIncrBy(ctx, participationKey, value, userID)
}

func (l *leaderboard) Refresh(ctx context.Context) error {
	if err := l.redisClient.Del(ctx, participationKey); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete leaderboard key: %v", err)
		return errorx.Unknown
	}

	return l.loadFromDB(ctx)
}

func (l *leaderboard) loadFromDB(ctx context.Context) error {
	users, err := l.userRepo.GetEngaged(ctx, repository.LeaderboardFilter{})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load engaged users: %v", err)
		return errorx.Unknown
	}

	for _, u := range users {
		err := l.redisClient.ZAdd(ctx, participationKey, redis.Z{
			Member: u.ID,
			Score:  float64(u.ParticipationCount),
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot zadd leaderboard: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
