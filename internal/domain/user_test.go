package domain

import (
	"strings"
	"testing"

	"github.com/sfdsa-platform/backend/internal/model"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/testutil"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestUserDomain() UserDomain {
	return NewUserDomain(
		repository.NewUserRepository(),
		repository.NewPointsLogRepository(),
		repository.NewBadgeRepository(),
		repository.NewNFTAwardRepository(),
		newTestEngine(),
	)
}

func Test_userDomain_Register(t *testing.T) {
	ctx := testutil.MockContext()

	domain := newTestUserDomain()

	resp, err := domain.Register(ctx, &model.RegisterRequest{
		Email: "new@example.com",
		Name:  "New Member",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.User.ID)
	require.NotEmpty(t, resp.User.ReferralCode)

	// Registering with a name counts as profile completion.
	require.Equal(t, 25, resp.User.ParticipationCount)

	token, err := xcontext.TokenEngine(ctx).Verify(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, token.ID)
	require.Equal(t, "new@example.com", token.Email)
}

func Test_userDomain_Register_duplicateEmail(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	domain := newTestUserDomain()

	_, err := domain.Register(ctx, &model.RegisterRequest{Email: "user1@example.com"})
	require.Error(t, err)
	require.Equal(t, "Email user1@example.com is already registered", err.Error())

	_, err = domain.Register(ctx, &model.RegisterRequest{})
	require.Error(t, err)
	require.Equal(t, "Email must not be empty", err.Error())
}

func Test_userDomain_Register_withoutName(t *testing.T) {
	ctx := testutil.MockContext()

	domain := newTestUserDomain()

	resp, err := domain.Register(ctx, &model.RegisterRequest{Email: "anon@example.com"})
	require.NoError(t, err)
	require.Equal(t, 0, resp.User.ParticipationCount)
}

func Test_userDomain_Login(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	domain := newTestUserDomain()

	resp, err := domain.Login(ctx, &model.LoginRequest{Email: "user1@example.com"})
	require.NoError(t, err)

	token, err := xcontext.TokenEngine(ctx).Verify(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "user1", token.ID)

	_, err = domain.Login(ctx, &model.LoginRequest{Email: "stranger@example.com"})
	require.Error(t, err)
	require.Equal(t, "Not found user", err.Error())
}

func Test_userDomain_GetProfile(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)
	testutil.InsertNFTTiers(ctx)

	userRepo := repository.NewUserRepository()
	require.NoError(t, userRepo.IncreaseParticipation(ctx, "user1", 25))

	domain := newTestUserDomain()

	// Own profile shows sensitive fields.
	resp, err := domain.GetProfile(ctx, &model.GetProfileRequest{})
	require.NoError(t, err)
	require.Equal(t, "user1", resp.Profile.User.ID)
	require.Equal(t, "user1@example.com", resp.Profile.User.Email)
	require.Equal(t, "code-user1", resp.Profile.User.ReferralCode)

	// With 25 points the next milestone is the 100-point tier.
	require.NotNil(t, resp.Profile.NextAward)
	require.Equal(t, "Bronze Star", resp.Profile.NextAward.Name)
	require.Equal(t, 100, resp.Profile.NextAward.PointThreshold)

	// Someone else's profile hides them.
	resp, err = domain.GetProfile(ctx, &model.GetProfileRequest{UserID: "user2"})
	require.NoError(t, err)
	require.Empty(t, resp.Profile.User.Email)
	require.Empty(t, resp.Profile.User.ReferralCode)
}

func Test_userDomain_GetProfile_unauthenticated(t *testing.T) {
	ctx := testutil.MockContext()

	domain := newTestUserDomain()

	_, err := domain.GetProfile(ctx, &model.GetProfileRequest{})
	require.Error(t, err)
	require.Equal(t, "User is not authenticated", err.Error())
}

func Test_userDomain_UpdateBio(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	domain := newTestUserDomain()

	_, err := domain.UpdateBio(ctx, &model.UpdateBioRequest{Bio: "Ready to serve."})
	require.NoError(t, err)

	user, err := repository.NewUserRepository().GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, "Ready to serve.", user.Bio)

	_, err = domain.UpdateBio(ctx, &model.UpdateBioRequest{
		Bio: strings.Repeat("x", 501),
	})
	require.Error(t, err)
	require.Equal(t, "Bio must not exceed 500 characters", err.Error())

	// The limit counts characters, not bytes.
	_, err = domain.UpdateBio(ctx, &model.UpdateBioRequest{
		Bio: strings.Repeat("é", 500),
	})
	require.NoError(t, err)

	_, err = domain.UpdateBio(ctx, &model.UpdateBioRequest{
		Bio: strings.Repeat("é", 501),
	})
	require.Error(t, err)
	require.Equal(t, "Bio must not exceed 500 characters", err.Error())
}

func Test_userDomain_GetPointsHistory(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	engine := newTestEngine()
	for i := 0; i < 3; i++ {
		_, err := engine.AwardPoints(ctx, "user1", 10, "chat_participation", "chatting")
		require.NoError(t, err)
	}

	domain := newTestUserDomain()

	resp, err := domain.GetPointsHistory(ctx, &model.GetPointsHistoryRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 3)

	resp, err = domain.GetPointsHistory(ctx, &model.GetPointsHistoryRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
}
