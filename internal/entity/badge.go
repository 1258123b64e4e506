package entity

import "time"

type BadgeType string

const (
	BadgeWrittenTest          BadgeType = "written_test"
	BadgeOralBoard            BadgeType = "oral_board"
	BadgePhysicalTest         BadgeType = "physical_test"
	BadgePolygraph            BadgeType = "polygraph"
	BadgePsychological        BadgeType = "psychological"
	BadgeFullProcess          BadgeType = "full_process"
	BadgeChatParticipation    BadgeType = "chat_participation"
	BadgeApplicationStarted   BadgeType = "application_started"
	BadgeApplicationCompleted BadgeType = "application_completed"
	BadgeFirstResponder       BadgeType = "first_responder"
	BadgeFrequentUser         BadgeType = "frequent_user"
	BadgeResourceDownloader   BadgeType = "resource_downloader"
	BadgeHardCharger          BadgeType = "hard_charger"
	BadgeConnector            BadgeType = "connector"
	BadgeDeepDiver            BadgeType = "deep_diver"
	BadgeQuickLearner         BadgeType = "quick_learner"
	BadgePersistentExplorer   BadgeType = "persistent_explorer"
	BadgeDedicatedApplicant   BadgeType = "dedicated_applicant"

	// Donation badges
	BadgeFirstDonation  BadgeType = "first_donation"
	BadgeRecurringDonor BadgeType = "recurring_donor"
	BadgeGenerousDonor  BadgeType = "generous_donor"
	BadgeDonor5         BadgeType = "donor_milestone_5"
	BadgeDonor10        BadgeType = "donor_milestone_10"
	BadgeDonor25        BadgeType = "donor_milestone_25"

	// Recruiter badges
	BadgeRecruiterRookie BadgeType = "recruiter_rookie"
	BadgeRecruiterCloser BadgeType = "recruiter_closer"
)

type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityUncommon  BadgeRarity = "uncommon"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

// Badge is the catalog row describing an earnable badge.
type Badge struct {
	Base
	Type        BadgeType `gorm:"unique"`
	Name        string
	Description string
	Rarity      BadgeRarity
}

// UserBadge links a user to an earned badge. The composite primary key
// guarantees at most one row per (user, badge type); awarding relies on
// insert-or-ignore, never on a separate existence check.
type UserBadge struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	BadgeType BadgeType `gorm:"primaryKey"`

	EarnedAt    time.Time
	WasNotified bool
}
