package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/pkg/dateutil"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type badgeSeed struct {
	badgeType   entity.BadgeType
	name        string
	description string
	rarity      entity.BadgeRarity
}

var badgeCatalog = []badgeSeed{
	{entity.BadgeWrittenTest, "Written Test", "Completed the written test preparation", entity.RarityCommon},
	{entity.BadgeOralBoard, "Oral Board", "Completed the oral board preparation", entity.RarityCommon},
	{entity.BadgePhysicalTest, "Physical Test", "Completed the physical test preparation", entity.RarityCommon},
	{entity.BadgePolygraph, "Polygraph", "Completed the polygraph preparation", entity.RarityUncommon},
	{entity.BadgePsychological, "Psychological", "Completed the psychological preparation", entity.RarityUncommon},
	{entity.BadgeFullProcess, "Full Process", "Completed every preparation module", entity.RarityEpic},
	{entity.BadgeChatParticipation, "Chat Participation", "Active in community chat", entity.RarityCommon},
	{entity.BadgeApplicationStarted, "Application Started", "Started a volunteer application", entity.RarityCommon},
	{entity.BadgeApplicationCompleted, "Application Completed", "Submitted a volunteer application", entity.RarityUncommon},
	{entity.BadgeFirstResponder, "First Responder", "One of the first members on the platform", entity.RarityRare},
	{entity.BadgeFrequentUser, "Frequent User", "Visits the platform regularly", entity.RarityCommon},
	{entity.BadgeResourceDownloader, "Resource Downloader", "Downloaded preparation resources", entity.RarityCommon},
	{entity.BadgeHardCharger, "Hard Charger", "Exceptional engagement pace", entity.RarityRare},
	{entity.BadgeDeepDiver, "Deep Diver", "Explored the platform in depth", entity.RarityUncommon},
	{entity.BadgeQuickLearner, "Quick Learner", "Fast progress through preparation modules", entity.RarityUncommon},
	{entity.BadgePersistentExplorer, "Persistent Explorer", "Keeps coming back for more", entity.RarityUncommon},
	{entity.BadgeDedicatedApplicant, "Dedicated Applicant", "Followed through the whole application", entity.RarityRare},
	{entity.BadgeFirstDonation, "First Donation", "Made a first donation", entity.RarityCommon},
	{entity.BadgeRecurringDonor, "Recurring Donor", "Set up a recurring donation", entity.RarityUncommon},
	{entity.BadgeGenerousDonor, "Generous Donor", "Donated $100 or more at once", entity.RarityRare},
	{entity.BadgeDonor5, "Committed Supporter", "Reached 5 donations", entity.RarityUncommon},
	{entity.BadgeDonor10, "Sustaining Supporter", "Reached 10 donations", entity.RarityRare},
	{entity.BadgeDonor25, "Pillar of Support", "Reached 25 donations", entity.RarityEpic},
	{entity.BadgeRecruiterRookie, "Recruiter Rookie", "Sent a first referral", entity.RarityCommon},
	{entity.BadgeConnector, "Connector", "Sent 5 referrals", entity.RarityUncommon},
	{entity.BadgeRecruiterCloser, "Closer", "A referral was hired", entity.RarityLegendary},
}

type tierSeed struct {
	tier      int
	name      string
	threshold int
}

var nftTierCatalog = []tierSeed{
	{1, "Bronze Star", 500},
	{2, "Silver Star", 1500},
	{3, "Gold Star", 3000},
	{4, "Sheriff's Shield", 6000},
	{5, "Sheriff's Eagle", 10000},
}

var briefingThemes = []entity.BriefingTheme{
	entity.ThemeDuty,
	entity.ThemeCourage,
	entity.ThemeRespect,
	entity.ThemeService,
	entity.ThemeLeadership,
	entity.ThemeResilience,
}

// Seed loads the static catalogs: badges, NFT award tiers, the default
// donation rules, and a full briefing cycle starting today. Everything is
// written insert-or-ignore, so re-running is safe.
func Seed(ctx context.Context) error {
	if err := seedBadges(ctx); err != nil {
		return err
	}

	if err := seedNFTTiers(ctx); err != nil {
		return err
	}

	if err := seedDonationRules(ctx); err != nil {
		return err
	}

	return seedBriefings(ctx)
}

func seedBadges(ctx context.Context) error {
	for _, b := range badgeCatalog {
		err := xcontext.DB(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entity.Badge{
				Base:        entity.Base{ID: uuid.NewString()},
				Type:        b.badgeType,
				Name:        b.name,
				Description: b.description,
				Rarity:      b.rarity,
			}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

func seedNFTTiers(ctx context.Context) error {
	for _, t := range nftTierCatalog {
		err := xcontext.DB(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entity.NFTAwardTier{
				Base:           entity.Base{ID: uuid.NewString()},
				Tier:           t.tier,
				Name:           t.name,
				Description:    fmt.Sprintf("Awarded at %d points", t.threshold),
				PointThreshold: t.threshold,
			}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

func seedDonationRules(ctx context.Context) error {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.DonationPointRule{}).Count(&count).Error
	if err != nil {
		return err
	}

	// Rules are admin-managed after the first deploy.
	if count > 0 {
		return nil
	}

	rules := []entity.DonationPointRule{
		{
			Base:                entity.Base{ID: uuid.NewString()},
			Name:                "Standard",
			MinAmount:           0,
			MaxAmount:           sql.NullFloat64{Valid: true, Float64: 100},
			PointsPerDollar:     1,
			RecurringMultiplier: 1.5,
			IsActive:            true,
		},
		{
			Base:                entity.Base{ID: uuid.NewString()},
			Name:                "Generous",
			MinAmount:           100,
			PointsPerDollar:     2,
			RecurringMultiplier: 1.5,
			IsActive:            true,
		},
	}

	for i := range rules {
		if err := xcontext.DB(ctx).Create(&rules[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedBriefings(ctx context.Context) error {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.DailyBriefing{}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	start := dateutil.BeginningOfDay(time.Now())
	for day := 1; day <= dateutil.CycleLength; day++ {
		theme := briefingThemes[(day-1)%len(briefingThemes)]
		briefing := entity.DailyBriefing{
			Base:         entity.Base{ID: uuid.NewString()},
			Date:         start.AddDate(0, 0, day-1),
			Theme:        theme,
			Quote:        fmt.Sprintf("Day %d of the Sgt. Ken briefing cycle.", day),
			QuoteAuthor:  "Sgt. Ken",
			SgtKenTake:   fmt.Sprintf("Today's focus is %s.", theme),
			CallToAction: "Check in, share the briefing, and bring a friend along.",
			CycleDay:     day,
		}

		if err := xcontext.DB(ctx).Create(&briefing).Error; err != nil {
			return err
		}
	}

	return nil
}
