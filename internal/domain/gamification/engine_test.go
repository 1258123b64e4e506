package gamification

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sfdsa-platform/backend/internal/domain/statistic"
	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/mailer"
	"github.com/sfdsa-platform/backend/pkg/pubsub"
	"github.com/sfdsa-platform/backend/pkg/testutil"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestEngine(publisher pubsub.Publisher) Engine {
	return NewEngine(
		repository.NewUserRepository(),
		repository.NewPointsLogRepository(),
		repository.NewBadgeRepository(),
		repository.NewNFTAwardRepository(),
		nil,
		publisher,
	)
}

func Test_engine_AwardPoints(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	engine := newTestEngine(nil)

	entry, err := engine.AwardPoints(ctx, "user1", 10, entity.ActionChatParticipation, "first")
	require.NoError(t, err)
	require.Equal(t, 10, entry.Points)
	require.Equal(t, entity.ActionChatParticipation, entry.Action)

	_, err = engine.AwardPoints(ctx, "user1", 15, entity.ActionAchievement, "second")
	require.NoError(t, err)

	// Zero-point awards still leave an audit entry.
	_, err = engine.AwardPoints(ctx, "user1", 0, entity.ActionAdminAdjustment, "noop")
	require.NoError(t, err)

	user, err := repository.NewUserRepository().GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, 25, user.ParticipationCount)

	sum, err := repository.NewPointsLogRepository().SumByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, user.ParticipationCount, sum)
}

func Test_engine_AwardPoints_negative(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	engine := newTestEngine(nil)

	_, err := engine.AwardPoints(ctx, "user1", -5, entity.ActionAdminAdjustment, "oops")
	require.Error(t, err)
	require.Equal(t, "Point amount must not be negative", err.Error())

	sum, err := repository.NewPointsLogRepository().SumByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, 0, sum)
}

func Test_engine_AwardPoints_leaderboardBumpAfterCommit(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	var bumps []int64
	leaderboard := statistic.New(repository.NewUserRepository(), &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			return true, nil
		},
		ZIncrByFunc: func(ctx context.Context, key string, incr int64, member string) error {
			require.Equal(t, "user1", member)
			bumps = append(bumps, incr)
			return nil
		},
	})

	engine := NewEngine(
		repository.NewUserRepository(),
		repository.NewPointsLogRepository(),
		repository.NewBadgeRepository(),
		repository.NewNFTAwardRepository(),
		leaderboard,
		nil,
	)

	txCtx := xcontext.WithDBTransaction(ctx)
	_, err := engine.AwardPoints(txCtx, "user1", 10, entity.ActionAchievement, "")
	require.NoError(t, err)

	// The bump waits for the commit.
	require.Empty(t, bumps)
	xcontext.WithCommitDBTransaction(txCtx)
	require.Equal(t, []int64{10}, bumps)

	// A rolled-back award never reaches redis.
	txCtx = xcontext.WithDBTransaction(ctx)
	_, err = engine.AwardPoints(txCtx, "user1", 7, entity.ActionAchievement, "")
	require.NoError(t, err)
	xcontext.WithRollbackDBTransaction(txCtx)
	require.Equal(t, []int64{10}, bumps)

	// Outside a transaction the bump is immediate.
	_, err = engine.AwardPoints(ctx, "user1", 3, entity.ActionAchievement, "")
	require.NoError(t, err)
	require.Equal(t, []int64{10, 3}, bumps)
}

func Test_engine_CheckAndAwardBadge(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertBadges(ctx)

	var sent []mailer.Mail
	publisher := &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			require.Equal(t, "send-mail", topic)

			var mail mailer.Mail
			require.NoError(t, json.Unmarshal(pack.Msg, &mail))
			sent = append(sent, mail)
			return nil
		},
	}

	engine := newTestEngine(publisher)

	awarded, err := engine.CheckAndAwardBadge(ctx, "user1", entity.BadgeChatParticipation)
	require.NoError(t, err)
	require.True(t, awarded)

	// The second call finds the existing row and awards nothing.
	awarded, err = engine.CheckAndAwardBadge(ctx, "user1", entity.BadgeChatParticipation)
	require.NoError(t, err)
	require.False(t, awarded)

	count, err := repository.NewBadgeRepository().CountUserBadges(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	require.Len(t, sent, 1)
	require.Equal(t, "user1@example.com", sent[0].To)
}

func Test_engine_CheckAndAwardBadge_unknownType(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	engine := newTestEngine(nil)

	_, err := engine.CheckAndAwardBadge(ctx, "user1", entity.BadgeType("no_such_badge"))
	require.Error(t, err)
}

func Test_engine_CheckAndAwardNFTs(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertNFTTiers(ctx)

	engine := newTestEngine(nil)

	// 600 points crosses the 100 and 500 thresholds in one evaluation.
	awards, err := engine.CheckAndAwardNFTs(ctx, "user1", 600)
	require.NoError(t, err)
	require.Len(t, awards, 2)
	require.Equal(t, "Bronze Star", awards[0].NFTAwardTier.Name)
	require.Equal(t, "Silver Star", awards[1].NFTAwardTier.Name)

	// Re-evaluating the same total awards nothing new.
	awards, err = engine.CheckAndAwardNFTs(ctx, "user1", 600)
	require.NoError(t, err)
	require.Empty(t, awards)

	awards, err = engine.CheckAndAwardNFTs(ctx, "user1", 1000)
	require.NoError(t, err)
	require.Len(t, awards, 1)
	require.Equal(t, "Gold Star", awards[0].NFTAwardTier.Name)

	count, err := repository.NewNFTAwardRepository().CountUserAwards(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, int64(3), count)
}
