package domain

import (
	"testing"

	"github.com/sfdsa-platform/backend/internal/common"
	"github.com/sfdsa-platform/backend/internal/domain/gamification"
	"github.com/sfdsa-platform/backend/internal/model"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestEngine() gamification.Engine {
	return gamification.NewEngine(
		repository.NewUserRepository(),
		repository.NewPointsLogRepository(),
		repository.NewBadgeRepository(),
		repository.NewNFTAwardRepository(),
		nil,
		nil,
	)
}

func newTestRoleVerifier() *common.GlobalRoleVerifier {
	return common.NewGlobalRoleVerifier(repository.NewUserRepository())
}

func Test_gamificationDomain_AwardPoints(t *testing.T) {
	ctx := testutil.MockContextWithUserID("admin")
	testutil.InsertUsers(ctx)
	testutil.InsertNFTTiers(ctx)

	domain := NewGamificationDomain(newTestEngine(), repository.NewUserRepository(), newTestRoleVerifier())

	resp, err := domain.AwardPoints(ctx, &model.AwardPointsRequest{
		UserID:      "user1",
		Points:      150,
		Action:      "admin_adjustment",
		Description: "Community event",
	})
	require.NoError(t, err)
	require.Equal(t, 150, resp.TotalPoints)
	require.Equal(t, "admin_adjustment", resp.Entry.Action)
	require.Equal(t, 150, resp.Entry.Points)

	user, err := repository.NewUserRepository().GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, 150, user.ParticipationCount)

	// 150 total points crosses the first tier threshold.
	count, err := repository.NewNFTAwardRepository().CountUserAwards(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func Test_gamificationDomain_AwardPoints_invalidAction(t *testing.T) {
	ctx := testutil.MockContextWithUserID("admin")
	testutil.InsertUsers(ctx)

	domain := NewGamificationDomain(newTestEngine(), repository.NewUserRepository(), newTestRoleVerifier())

	_, err := domain.AwardPoints(ctx, &model.AwardPointsRequest{
		UserID: "user1",
		Points: 10,
		Action: "teleport",
	})
	require.Error(t, err)
	require.Equal(t, "Invalid action teleport", err.Error())
}

func Test_gamificationDomain_AwardPoints_notAdmin(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user2")
	testutil.InsertUsers(ctx)

	domain := NewGamificationDomain(newTestEngine(), repository.NewUserRepository(), newTestRoleVerifier())

	_, err := domain.AwardPoints(ctx, &model.AwardPointsRequest{
		UserID: "user1",
		Points: 10,
		Action: "admin_adjustment",
	})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())
}

func Test_gamificationDomain_AwardBadge(t *testing.T) {
	ctx := testutil.MockContextWithUserID("admin")
	testutil.InsertUsers(ctx)
	testutil.InsertBadges(ctx)

	domain := NewGamificationDomain(newTestEngine(), repository.NewUserRepository(), newTestRoleVerifier())

	resp, err := domain.AwardBadge(ctx, &model.AwardBadgeRequest{
		UserID:    "user1",
		BadgeType: "chat_participation",
	})
	require.NoError(t, err)
	require.True(t, resp.Awarded)

	resp, err = domain.AwardBadge(ctx, &model.AwardBadgeRequest{
		UserID:    "user1",
		BadgeType: "chat_participation",
	})
	require.NoError(t, err)
	require.False(t, resp.Awarded)
}
