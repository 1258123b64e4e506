package migration

import (
	"context"

	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.PointsLogEntry{},
		&entity.Badge{},
		&entity.UserBadge{},
		&entity.NFTAwardTier{},
		&entity.UserNFTAward{},
		&entity.DonationPointRule{},
		&entity.Donation{},
		&entity.VolunteerReferral{},
		&entity.RecruiterStats{},
		&entity.ReferralEvent{},
		&entity.DailyBriefing{},
		&entity.BriefingAttendance{},
		&entity.BriefingShare{},
		&entity.VolunteerApplication{},
	)
}
