package domain

import (
	"testing"

	"github.com/sfdsa-platform/backend/internal/model"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/testutil"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAdminDomain() AdminDomain {
	return NewAdminDomain(
		repository.NewUserRepository(),
		repository.NewBadgeRepository(),
		repository.NewNFTAwardRepository(),
		newTestRoleVerifier(),
	)
}

func Test_adminDomain_Bootstrap(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := xcontext.Configs(ctx)
	cfg.Admin.RecoveryCodeHash = string(hash)
	ctx = xcontext.WithConfigs(ctx, cfg)

	domain := newTestAdminDomain()

	resp, err := domain.Bootstrap(ctx, &model.BootstrapAdminRequest{
		UserID:       "user1",
		RecoveryCode: "open-sesame",
	})
	require.NoError(t, err)
	require.Equal(t, "ADMIN", resp.User.Role)

	user, err := repository.NewUserRepository().GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, "ADMIN", user.Role)
}

func Test_adminDomain_Bootstrap_wrongCode(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := xcontext.Configs(ctx)
	cfg.Admin.RecoveryCodeHash = string(hash)
	ctx = xcontext.WithConfigs(ctx, cfg)

	domain := newTestAdminDomain()

	_, err = domain.Bootstrap(ctx, &model.BootstrapAdminRequest{
		UserID:       "user1",
		RecoveryCode: "guess",
	})
	require.Error(t, err)
	require.Equal(t, "Invalid recovery code", err.Error())

	user, err := repository.NewUserRepository().GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, "USER", user.Role)
}

func Test_adminDomain_Bootstrap_notConfigured(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	domain := newTestAdminDomain()

	_, err := domain.Bootstrap(ctx, &model.BootstrapAdminRequest{
		UserID:       "user1",
		RecoveryCode: "anything",
	})
	require.Error(t, err)
	require.Equal(t, "Admin bootstrap is not configured", err.Error())
}

func Test_adminDomain_CreateNFTTier(t *testing.T) {
	ctx := testutil.MockContextWithUserID("admin")
	testutil.InsertUsers(ctx)

	domain := newTestAdminDomain()

	resp, err := domain.CreateNFTTier(ctx, &model.CreateNFTTierRequest{
		Tier:           1,
		Name:           "Bronze Star",
		PointThreshold: 500,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.TierID)

	tiers, err := repository.NewNFTAwardRepository().GetTiersAscending(ctx)
	require.NoError(t, err)
	require.Len(t, tiers, 1)
	require.Equal(t, 500, tiers[0].PointThreshold)

	_, err = domain.CreateNFTTier(ctx, &model.CreateNFTTierRequest{
		Tier: 2,
		Name: "Broken",
	})
	require.Error(t, err)
	require.Equal(t, "Point threshold must be positive", err.Error())
}

func Test_adminDomain_CreateBadge(t *testing.T) {
	ctx := testutil.MockContextWithUserID("admin")
	testutil.InsertUsers(ctx)

	domain := newTestAdminDomain()

	_, err := domain.CreateBadge(ctx, &model.CreateBadgeRequest{
		Type:   "night_owl",
		Name:   "Night Owl",
		Rarity: "rare",
	})
	require.NoError(t, err)

	badge, err := repository.NewBadgeRepository().GetByType(ctx, "night_owl")
	require.NoError(t, err)
	require.Equal(t, "Night Owl", badge.Name)

	_, err = domain.CreateBadge(ctx, &model.CreateBadgeRequest{Type: "incomplete"})
	require.Error(t, err)
	require.Equal(t, "Type and name must not be empty", err.Error())
}

func Test_adminDomain_CreateBadge_notAdmin(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	domain := newTestAdminDomain()

	_, err := domain.CreateBadge(ctx, &model.CreateBadgeRequest{
		Type: "night_owl",
		Name: "Night Owl",
	})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())
}
