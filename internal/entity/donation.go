package entity

import "database/sql"

// DonationPointRule maps a donation amount range to a point formula.
// Active rules must not overlap; this is validated at creation time.
type DonationPointRule struct {
	Base
	Name                string
	MinAmount           float64
	MaxAmount           sql.NullFloat64 // null means unbounded
	PointsPerDollar     float64
	RecurringMultiplier float64
	IsActive            bool
	CampaignID          sql.NullString
}

// Matches reports whether amount falls into the rule's [min, max) range.
func (r *DonationPointRule) Matches(amount float64) bool {
	if amount < r.MinAmount {
		return false
	}
	if r.MaxAmount.Valid && amount >= r.MaxAmount.Float64 {
		return false
	}
	return true
}

type Donation struct {
	Base
	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Amount        float64
	IsRecurring   bool
	PointsAwarded int
}
