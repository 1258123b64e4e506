package domain

import (
	"testing"
	"time"

	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/internal/model"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/dateutil"
	"github.com/sfdsa-platform/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestBriefingDomain() BriefingDomain {
	return NewBriefingDomain(repository.NewBriefingRepository(), newTestEngine())
}

func Test_briefingDomain_GetToday(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertBriefings(ctx)

	domain := newTestBriefingDomain()

	resp, err := domain.GetToday(ctx, &model.GetTodaysBriefingRequest{})
	require.NoError(t, err)
	require.False(t, resp.Fallback)
	require.Equal(t, "briefing-today", resp.Briefing.ID)
	require.Equal(t, 2, resp.Briefing.CycleDay)
}

func Test_briefingDomain_GetToday_fallback(t *testing.T) {
	ctx := testutil.MockContext()

	// Only a stale briefing exists.
	briefingRepo := repository.NewBriefingRepository()
	require.NoError(t, briefingRepo.Create(ctx, &entity.DailyBriefing{
		Base:     entity.Base{ID: "briefing-old"},
		Date:     dateutil.BeginningOfDay(time.Now()).AddDate(0, 0, -3),
		Theme:    entity.ThemeDuty,
		Quote:    "An old briefing",
		CycleDay: 7,
	}))

	domain := newTestBriefingDomain()

	resp, err := domain.GetToday(ctx, &model.GetTodaysBriefingRequest{})
	require.NoError(t, err)
	require.True(t, resp.Fallback)
	require.Equal(t, "briefing-old", resp.Briefing.ID)
}

func Test_briefingDomain_GetToday_empty(t *testing.T) {
	ctx := testutil.MockContext()

	domain := newTestBriefingDomain()

	_, err := domain.GetToday(ctx, &model.GetTodaysBriefingRequest{})
	require.Error(t, err)
	require.Equal(t, "No briefing available", err.Error())
}

func Test_briefingDomain_RecordAttendance(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)
	testutil.InsertBriefings(ctx)

	domain := newTestBriefingDomain()

	resp, err := domain.RecordAttendance(ctx, &model.RecordAttendanceRequest{
		BriefingID: "briefing-today",
	})
	require.NoError(t, err)
	require.False(t, resp.AlreadyAttended)
	require.Equal(t, 5, resp.PointsAwarded)

	// Attending again succeeds but pays nothing.
	resp, err = domain.RecordAttendance(ctx, &model.RecordAttendanceRequest{
		BriefingID: "briefing-today",
	})
	require.NoError(t, err)
	require.True(t, resp.AlreadyAttended)
	require.Equal(t, 0, resp.PointsAwarded)

	user, err := repository.NewUserRepository().GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, 5, user.ParticipationCount)

	// A different briefing pays again.
	resp, err = domain.RecordAttendance(ctx, &model.RecordAttendanceRequest{
		BriefingID: "briefing-yesterday",
	})
	require.NoError(t, err)
	require.Equal(t, 5, resp.PointsAwarded)
}

func Test_briefingDomain_RecordAttendance_notFound(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	domain := newTestBriefingDomain()

	_, err := domain.RecordAttendance(ctx, &model.RecordAttendanceRequest{
		BriefingID: "missing",
	})
	require.Error(t, err)
	require.Equal(t, "Not found briefing", err.Error())
}

func Test_briefingDomain_RecordShare(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)
	testutil.InsertBriefings(ctx)

	domain := newTestBriefingDomain()

	testcases := []struct {
		platform string
		points   int
	}{
		{"twitter", 10},
		{"linkedin", 15},
		{"email", 5},
		{"myspace", 10},
	}

	for _, tc := range testcases {
		resp, err := domain.RecordShare(ctx, &model.RecordShareRequest{
			BriefingID: "briefing-today",
			Platform:   tc.platform,
		})
		require.NoError(t, err)
		require.False(t, resp.AlreadyShared)
		require.Equal(t, tc.points, resp.PointsAwarded, tc.platform)
	}

	// Sharing twice on the same platform pays once.
	resp, err := domain.RecordShare(ctx, &model.RecordShareRequest{
		BriefingID: "briefing-today",
		Platform:   "twitter",
	})
	require.NoError(t, err)
	require.True(t, resp.AlreadyShared)

	user, err := repository.NewUserRepository().GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, 40, user.ParticipationCount)

	// The platform-specific actions land in the points log.
	userEntries, err := repository.NewPointsLogRepository().GetByUserID(ctx, "user1", 0, 10)
	require.NoError(t, err)

	actions := map[entity.PointsAction]bool{}
	for _, e := range userEntries {
		actions[e.Action] = true
	}
	require.True(t, actions[entity.ActionSocialShareTwitter])
	require.True(t, actions[entity.ActionSocialShareLinkedin])
	require.True(t, actions[entity.ActionDailyBriefingShare])
}

func Test_briefingDomain_RecordShare_missingPlatform(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)
	testutil.InsertBriefings(ctx)

	domain := newTestBriefingDomain()

	_, err := domain.RecordShare(ctx, &model.RecordShareRequest{BriefingID: "briefing-today"})
	require.Error(t, err)
	require.Equal(t, "Platform must not be empty", err.Error())
}
