package cron

import (
	"context"
	"testing"
	"time"

	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/dateutil"
	"github.com/sfdsa-platform/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func insertCycleTail(t *testing.T, ctx context.Context, lastCycleDay int) {
	t.Helper()

	briefingRepo := repository.NewBriefingRepository()
	today := dateutil.BeginningOfDay(time.Now())

	briefings := []entity.DailyBriefing{
		{
			Base:     entity.Base{ID: "briefing-a"},
			Date:     today.AddDate(0, 0, -2),
			Theme:    entity.ThemeDuty,
			CycleDay: lastCycleDay - 2,
		},
		{
			Base:     entity.Base{ID: "briefing-b"},
			Date:     today.AddDate(0, 0, -1),
			Theme:    entity.ThemeCourage,
			CycleDay: lastCycleDay - 1,
		},
		{
			Base:     entity.Base{ID: "briefing-c"},
			Date:     today,
			Theme:    entity.ThemeService,
			CycleDay: lastCycleDay,
		},
	}

	for i := range briefings {
		require.NoError(t, briefingRepo.Create(ctx, &briefings[i]))
	}
}

func Test_BriefingCycleCronJob_restartsCycle(t *testing.T) {
	ctx := testutil.MockContext()
	insertCycleTail(t, ctx, dateutil.CycleLength)

	NewBriefingCycleCronJob(repository.NewBriefingRepository()).Do(ctx)

	briefings, err := repository.NewBriefingRepository().GetAllByDateAscending(ctx)
	require.NoError(t, err)
	require.Len(t, briefings, 3)

	// The cycle restarts tomorrow in the original order.
	start := dateutil.NextDay(time.Now())
	require.Equal(t, "briefing-a", briefings[0].ID)
	require.Equal(t, 1, briefings[0].CycleDay)
	require.True(t, briefings[0].Date.Equal(start))

	require.Equal(t, "briefing-b", briefings[1].ID)
	require.Equal(t, 2, briefings[1].CycleDay)
	require.True(t, briefings[1].Date.Equal(start.AddDate(0, 0, 1)))

	require.Equal(t, "briefing-c", briefings[2].ID)
	require.Equal(t, 3, briefings[2].CycleDay)
}

func Test_BriefingCycleCronJob_midCycleNoop(t *testing.T) {
	ctx := testutil.MockContext()
	insertCycleTail(t, ctx, 100)

	NewBriefingCycleCronJob(repository.NewBriefingRepository()).Do(ctx)

	today, err := repository.NewBriefingRepository().GetByDate(ctx, time.Now())
	require.NoError(t, err)
	require.Equal(t, "briefing-c", today.ID)
	require.Equal(t, 100, today.CycleDay)
}

func Test_BriefingCycleCronJob_emptyTable(t *testing.T) {
	ctx := testutil.MockContext()

	// Nothing scheduled today: the job is a no-op.
	NewBriefingCycleCronJob(repository.NewBriefingRepository()).Do(ctx)

	_, err := repository.NewBriefingRepository().GetByDate(ctx, time.Now())
	require.Error(t, err)
}
