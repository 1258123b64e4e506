package model

type User struct {
	ID                 string `json:"id"`
	Email              string `json:"email,omitempty"`
	Name               string `json:"name"`
	Role               string `json:"role,omitempty"`
	Bio                string `json:"bio"`
	ParticipationCount int    `json:"participation_count"`
	DonationPoints     int    `json:"donation_points"`
	HasApplied         bool   `json:"has_applied"`
	ReferralCode       string `json:"referral_code,omitempty"`
}

type GetProfileRequest struct {
	UserID string `json:"user_id"`
}

type Profile struct {
	User      User        `json:"user"`
	Badges    []UserBadge `json:"badges"`
	NFTAwards []NFTAward  `json:"nft_awards"`

	// NextAward is the lowest unearned tier still above the user's current
	// points, or null when every tier is earned.
	NextAward *NFTAwardTier `json:"next_award"`
}

type GetProfileResponse struct {
	Profile Profile `json:"profile"`
}

type UpdateBioRequest struct {
	Bio string `json:"bio"`
}

type UpdateBioResponse struct{}

type GetPointsHistoryRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetPointsHistoryResponse struct {
	Entries []PointsLogEntry `json:"entries"`
}
