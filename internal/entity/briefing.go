package entity

import "time"

type BriefingTheme string

const (
	ThemeDuty       BriefingTheme = "duty"
	ThemeCourage    BriefingTheme = "courage"
	ThemeRespect    BriefingTheme = "respect"
	ThemeService    BriefingTheme = "service"
	ThemeLeadership BriefingTheme = "leadership"
	ThemeResilience BriefingTheme = "resilience"
)

// DailyBriefing is one slot of the 365-day content cycle. Date is unique;
// CycleDay is the 1..365 slot the row occupies.
type DailyBriefing struct {
	Base
	Date         time.Time `gorm:"unique"`
	Theme        BriefingTheme
	Quote        string
	QuoteAuthor  string
	SgtKenTake   string
	CallToAction string
	CycleDay     int
}

type BriefingAttendance struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	BriefingID string        `gorm:"primaryKey"`
	Briefing   DailyBriefing `gorm:"foreignKey:BriefingID"`

	CreatedAt time.Time
}

type BriefingShare struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	BriefingID string        `gorm:"primaryKey"`
	Briefing   DailyBriefing `gorm:"foreignKey:BriefingID"`

	Platform string `gorm:"primaryKey"`

	CreatedAt time.Time
}

// SharePoints returns the per-platform share award.
func SharePoints(platform string) int {
	switch platform {
	case "twitter", "facebook", "instagram":
		return 10
	case "linkedin":
		return 15
	case "email":
		return 5
	default:
		return 10
	}
}
