package entity

import "time"

type ReferralStatus string

const (
	ReferralPending    ReferralStatus = "pending"
	ReferralContacted  ReferralStatus = "contacted"
	ReferralApplied    ReferralStatus = "applied"
	ReferralInterview  ReferralStatus = "interview"
	ReferralBackground ReferralStatus = "background"
	ReferralOffered    ReferralStatus = "offered"
	ReferralHired      ReferralStatus = "hired"
	ReferralDeclined   ReferralStatus = "declined"
)

// referralStage orders the normal pipeline. Transitions only move forward;
// declined is reachable from any non-terminal status.
var referralStage = map[ReferralStatus]int{
	ReferralPending:    0,
	ReferralContacted:  1,
	ReferralApplied:    2,
	ReferralInterview:  3,
	ReferralBackground: 4,
	ReferralOffered:    5,
	ReferralHired:      6,
}

func (s ReferralStatus) Valid() bool {
	_, ok := referralStage[s]
	return ok || s == ReferralDeclined
}

func (s ReferralStatus) CanTransitionTo(next ReferralStatus) bool {
	if s == ReferralHired || s == ReferralDeclined {
		return false
	}
	if next == ReferralDeclined {
		return true
	}

	from, ok := referralStage[s]
	if !ok {
		return false
	}
	to, ok := referralStage[next]
	if !ok {
		return false
	}

	return to > from
}

// Progress returns the fixed progress percentage shown for a status.
func (s ReferralStatus) Progress() int {
	switch s {
	case ReferralPending:
		return 5
	case ReferralContacted:
		return 15
	case ReferralApplied:
		return 25
	case ReferralInterview:
		return 60
	case ReferralBackground:
		return 75
	case ReferralOffered:
		return 90
	case ReferralHired:
		return 100
	default:
		return 0
	}
}

// Points returns the recruiter points awarded the first time a referral
// reaches a status.
func (s ReferralStatus) Points() int {
	switch s {
	case ReferralContacted:
		return 25
	case ReferralApplied:
		return 50
	case ReferralInterview:
		return 100
	case ReferralBackground:
		return 150
	case ReferralOffered:
		return 300
	case ReferralHired:
		return 500
	default:
		return 0
	}
}

type VolunteerReferral struct {
	Base
	RecruiterID string `gorm:"index"`
	Recruiter   User   `gorm:"foreignKey:RecruiterID"`

	Email  string
	Name   string
	Status ReferralStatus
}

type RecruiterStats struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	ReferralsCount      int
	SuccessfulReferrals int
	TotalPoints         int

	UpdatedAt time.Time
}

// ConversionRate is the percentage of referrals that reached hired.
func (s *RecruiterStats) ConversionRate() int {
	if s.ReferralsCount == 0 {
		return 0
	}

	rate := float64(s.SuccessfulReferrals) / float64(s.ReferralsCount) * 100
	return int(rate + 0.5)
}

type ReferralEvent struct {
	Base
	RecruiterID string `gorm:"index"`
	ReferralID  string
	Type        string
	Metadata    Map
}
