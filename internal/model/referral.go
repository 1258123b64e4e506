package model

type Referral struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Progress  int    `json:"progress"`
	CreatedAt string `json:"created_at"`
}

type RecruiterStats struct {
	ReferralsCount      int `json:"referrals_count"`
	SuccessfulReferrals int `json:"successful_referrals"`
	TotalPoints         int `json:"total_points"`
	ConversionRate      int `json:"conversion_rate"`
}

type ReferralEvent struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt string         `json:"created_at"`
}

type SendReferralRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type SendReferralResponse struct {
	ReferralID string `json:"referral_id,omitempty"`

	// ShareMessage is returned instead of a referral record when no
	// recipient email was given.
	ShareMessage string `json:"share_message,omitempty"`
}

type UpdateReferralStatusRequest struct {
	ReferralID string `json:"referral_id"`
	Status     string `json:"status"`
}

type UpdateReferralStatusResponse struct {
	Status        string `json:"status"`
	Progress      int    `json:"progress"`
	PointsAwarded int    `json:"points_awarded"`
}

type GetRecruiterDashboardRequest struct {
	UserID string `json:"user_id"`
}

type RecruiterDashboard struct {
	ReferralCode  string           `json:"referral_code"`
	Referrals     []Referral       `json:"referrals"`
	PointsHistory []PointsLogEntry `json:"points_history"`
	Badges        []UserBadge      `json:"badges"`
	NFTs          []NFTAward       `json:"nfts"`
	Events        []ReferralEvent  `json:"events"`
	Stats         RecruiterStats   `json:"stats"`
}

type GetRecruiterDashboardResponse struct {
	Data   RecruiterDashboard `json:"data"`
	Source string             `json:"source"`
}
