package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/dateutil"
)

// InsertUsers creates three well-known users: a regular user, a second
// regular user, and an admin.
func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()

	users := []entity.User{
		{
			Base:         entity.Base{ID: "user1"},
			Email:        "user1@example.com",
			Name:         "User One",
			Role:         entity.UserRole,
			ReferralCode: "code-user1",
		},
		{
			Base:         entity.Base{ID: "user2"},
			Email:        "user2@example.com",
			Name:         "User Two",
			Role:         entity.UserRole,
			ReferralCode: "code-user2",
		},
		{
			Base:         entity.Base{ID: "admin"},
			Email:        "admin@example.com",
			Name:         "Admin",
			Role:         entity.AdminRole,
			ReferralCode: "code-admin",
		},
	}

	for i := range users {
		if err := userRepo.Create(ctx, &users[i]); err != nil {
			panic(err)
		}
	}
}

func InsertBadges(ctx context.Context) {
	badgeRepo := repository.NewBadgeRepository()

	badges := []entity.Badge{
		{Base: entity.Base{ID: "badge-first-donation"}, Type: entity.BadgeFirstDonation, Name: "First Donation", Rarity: entity.RarityCommon},
		{Base: entity.Base{ID: "badge-recurring-donor"}, Type: entity.BadgeRecurringDonor, Name: "Recurring Donor", Rarity: entity.RarityUncommon},
		{Base: entity.Base{ID: "badge-generous-donor"}, Type: entity.BadgeGenerousDonor, Name: "Generous Donor", Rarity: entity.RarityRare},
		{Base: entity.Base{ID: "badge-donor-5"}, Type: entity.BadgeDonor5, Name: "Committed Supporter", Rarity: entity.RarityUncommon},
		{Base: entity.Base{ID: "badge-recruiter-rookie"}, Type: entity.BadgeRecruiterRookie, Name: "Recruiter Rookie", Rarity: entity.RarityCommon},
		{Base: entity.Base{ID: "badge-connector"}, Type: entity.BadgeConnector, Name: "Connector", Rarity: entity.RarityUncommon},
		{Base: entity.Base{ID: "badge-closer"}, Type: entity.BadgeRecruiterCloser, Name: "Closer", Rarity: entity.RarityLegendary},
		{Base: entity.Base{ID: "badge-application"}, Type: entity.BadgeApplicationCompleted, Name: "Application Completed", Rarity: entity.RarityUncommon},
		{Base: entity.Base{ID: "badge-chat"}, Type: entity.BadgeChatParticipation, Name: "Chat Participation", Rarity: entity.RarityCommon},
	}

	for i := range badges {
		if err := badgeRepo.Upsert(ctx, &badges[i]); err != nil {
			panic(err)
		}
	}
}

func InsertNFTTiers(ctx context.Context) {
	nftRepo := repository.NewNFTAwardRepository()

	tiers := []entity.NFTAwardTier{
		{Base: entity.Base{ID: "tier1"}, Tier: 1, Name: "Bronze Star", PointThreshold: 100},
		{Base: entity.Base{ID: "tier2"}, Tier: 2, Name: "Silver Star", PointThreshold: 500},
		{Base: entity.Base{ID: "tier3"}, Tier: 3, Name: "Gold Star", PointThreshold: 1000},
	}

	for i := range tiers {
		if err := nftRepo.UpsertTier(ctx, &tiers[i]); err != nil {
			panic(err)
		}
	}
}

func InsertDonationRules(ctx context.Context) {
	donationRepo := repository.NewDonationRepository()

	rules := []entity.DonationPointRule{
		{
			Base:                entity.Base{ID: "rule-standard"},
			Name:                "Standard",
			MinAmount:           0,
			MaxAmount:           sql.NullFloat64{Valid: true, Float64: 100},
			PointsPerDollar:     1,
			RecurringMultiplier: 1.5,
			IsActive:            true,
		},
		{
			Base:                entity.Base{ID: "rule-generous"},
			Name:                "Generous",
			MinAmount:           100,
			PointsPerDollar:     2,
			RecurringMultiplier: 1.5,
			IsActive:            true,
		},
	}

	for i := range rules {
		if err := donationRepo.CreateRule(ctx, &rules[i]); err != nil {
			panic(err)
		}
	}
}

// InsertBriefings creates a briefing dated today and one dated yesterday.
func InsertBriefings(ctx context.Context) {
	briefingRepo := repository.NewBriefingRepository()

	today := dateutil.BeginningOfDay(time.Now())
	briefings := []entity.DailyBriefing{
		{
			Base:     entity.Base{ID: "briefing-yesterday"},
			Date:     today.AddDate(0, 0, -1),
			Theme:    entity.ThemeDuty,
			Quote:    "Yesterday's briefing",
			CycleDay: 1,
		},
		{
			Base:     entity.Base{ID: "briefing-today"},
			Date:     today,
			Theme:    entity.ThemeCourage,
			Quote:    "Today's briefing",
			CycleDay: 2,
		},
	}

	for i := range briefings {
		if err := briefingRepo.Create(ctx, &briefings[i]); err != nil {
			panic(err)
		}
	}
}
