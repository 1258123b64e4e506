package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sfdsa-platform/backend/internal/domain/statistic"
	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/internal/model"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/testutil"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_statisticDomain_GetLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	userRepo := repository.NewUserRepository()
	require.NoError(t, userRepo.IncreaseParticipation(ctx, "user1", 5000))
	require.NoError(t, userRepo.IncreaseParticipation(ctx, "user2", 2600))

	domain := NewStatisticDomain(userRepo, nil)

	resp, err := domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{
		Category:      "participation",
		CurrentUserID: "user1",
	})
	require.NoError(t, err)
	require.Equal(t, "live", resp.Source)

	// Two live entries merged with the one placeholder that beats the
	// lowest live score.
	require.Equal(t, 3, resp.Total)
	require.Len(t, resp.Entries, 3)

	require.Equal(t, "user1", resp.Entries[0].UserID)
	require.Equal(t, 1, resp.Entries[0].Rank)
	require.True(t, resp.Entries[0].IsCurrentUser)

	require.Equal(t, "placeholder-1", resp.Entries[1].UserID)
	require.True(t, resp.Entries[1].IsPlaceholder)

	require.Equal(t, "user2", resp.Entries[2].UserID)
	require.Equal(t, 3, resp.Entries[2].Rank)
}

func Test_statisticDomain_GetLeaderboard_pagination(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	domain := NewStatisticDomain(repository.NewUserRepository(), nil)

	// No engaged users yet: the full placeholder dataset is shown.
	resp, err := domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{
		Limit:  3,
		Offset: 2,
	})
	require.NoError(t, err)
	require.Equal(t, "mock-fallback", resp.Source)
	require.Equal(t, 8, resp.Total)
	require.Len(t, resp.Entries, 3)

	// Ranks are absolute, not page relative.
	require.Equal(t, 3, resp.Entries[0].Rank)
	require.Equal(t, "Sarah Johnson", resp.Entries[0].Name)
	require.Equal(t, 5, resp.Entries[2].Rank)

	resp, err = domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Offset: 100})
	require.NoError(t, err)
	require.Empty(t, resp.Entries)
	require.Equal(t, 8, resp.Total)
}

func Test_statisticDomain_GetLeaderboard_search(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	userRepo := repository.NewUserRepository()
	require.NoError(t, userRepo.IncreaseParticipation(ctx, "user1", 100))

	domain := NewStatisticDomain(userRepo, nil)

	resp, err := domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Search: "user one"})
	require.NoError(t, err)
	require.Equal(t, "live", resp.Source)
	require.Len(t, resp.Entries, 1)
	require.Equal(t, "user1", resp.Entries[0].UserID)

	// A search matching nothing live falls back to matching placeholders.
	resp, err = domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Search: "garcia"})
	require.NoError(t, err)
	require.Equal(t, "mock-fallback", resp.Source)
	require.Len(t, resp.Entries, 1)
	require.Equal(t, "Deputy Garcia", resp.Entries[0].Name)
}

func Test_statisticDomain_GetLeaderboard_applicants(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	userRepo := repository.NewUserRepository()
	require.NoError(t, userRepo.IncreaseParticipation(ctx, "user1", 3000))
	require.NoError(t, userRepo.IncreaseParticipation(ctx, "user2", 9000))
	require.NoError(t, userRepo.SetHasApplied(ctx, "user1"))

	domain := NewStatisticDomain(userRepo, nil)

	resp, err := domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Category: "applicants"})
	require.NoError(t, err)
	require.Equal(t, "live", resp.Source)

	for _, e := range resp.Entries {
		require.True(t, e.HasApplied)
		require.NotEqual(t, "user2", e.UserID)
	}
	require.Equal(t, "user1", resp.Entries[0].UserID)
}

type brokenUserRepository struct {
	repository.UserRepository
}

func (brokenUserRepository) GetEngaged(
	context.Context, repository.LeaderboardFilter,
) ([]repository.UserEngagement, error) {
	return nil, errors.New("driver: bad connection")
}

func Test_statisticDomain_GetLeaderboard_errorFallback(t *testing.T) {
	ctx := testutil.MockContext()

	domain := NewStatisticDomain(brokenUserRepository{}, nil)

	// A data layer failure degrades to the full placeholder dataset
	// instead of an error.
	resp, err := domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{
		Limit:  3,
		Offset: 2,
	})
	require.NoError(t, err)
	require.Equal(t, "error-fallback", resp.Source)
	require.Equal(t, 8, resp.Total)
	require.Len(t, resp.Entries, 3)

	// Ranks stay absolute and every entry is a placeholder.
	require.Equal(t, 3, resp.Entries[0].Rank)
	require.Equal(t, "Sarah Johnson", resp.Entries[0].Name)
	for _, e := range resp.Entries {
		require.True(t, e.IsPlaceholder)
	}

	// Search still filters the degraded dataset.
	resp, err = domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Search: "garcia"})
	require.NoError(t, err)
	require.Equal(t, "error-fallback", resp.Source)
	require.Len(t, resp.Entries, 1)
	require.Equal(t, "Deputy Garcia", resp.Entries[0].Name)
}

func Test_statisticDomain_GetLeaderboard_timeframe(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	userRepo := repository.NewUserRepository()
	require.NoError(t, userRepo.IncreaseParticipation(ctx, "user1", 4000))
	require.NoError(t, userRepo.IncreaseParticipation(ctx, "user2", 3500))

	// user2 has been idle for a week.
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", "user2").
		UpdateColumn("updated_at", time.Now().AddDate(0, 0, -7)).Error
	require.NoError(t, err)

	domain := NewStatisticDomain(userRepo, nil)

	resp, err := domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Timeframe: "daily"})
	require.NoError(t, err)
	require.Equal(t, "live", resp.Source)
	require.Equal(t, "user1", resp.Entries[0].UserID)
	for _, e := range resp.Entries {
		require.NotEqual(t, "user2", e.UserID)
	}

	// Without a timeframe the idle user is back on the board.
	resp, err = domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{})
	require.NoError(t, err)
	require.Equal(t, "user2", resp.Entries[1].UserID)
}

func Test_statisticDomain_GetLeaderboard_invalidCategory(t *testing.T) {
	ctx := testutil.MockContext()

	domain := NewStatisticDomain(repository.NewUserRepository(), nil)

	_, err := domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Category: "karma"})
	require.Error(t, err)
	require.Equal(t, "Invalid category karma", err.Error())
}

func Test_statisticDomain_GetRank(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	domain := NewStatisticDomain(
		repository.NewUserRepository(),
		statistic.New(repository.NewUserRepository(), &testutil.MockRedisClient{
			ExistFunc: func(ctx context.Context, key string) (bool, error) {
				return true, nil
			},
			ZRevRankFunc: func(ctx context.Context, key string, member string) (uint64, error) {
				require.Equal(t, "user1", member)
				return 4, nil
			},
		}),
	)

	resp, err := domain.GetRank(ctx, &model.GetRankRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Equal(t, uint64(5), resp.Rank)
}
