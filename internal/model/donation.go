package model

type RecordDonationRequest struct {
	UserID      string  `json:"user_id"`
	Amount      float64 `json:"amount"`
	IsRecurring bool    `json:"is_recurring"`
}

type RecordDonationResponse struct {
	DonationID    string     `json:"donation_id"`
	Points        int        `json:"points"`
	NewBadges     []string   `json:"new_badges"`
	NewNFTAwards  []NFTAward `json:"new_nft_awards"`
}

type DonationPointRule struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	MinAmount           float64  `json:"min_amount"`
	MaxAmount           *float64 `json:"max_amount"`
	PointsPerDollar     float64  `json:"points_per_dollar"`
	RecurringMultiplier float64  `json:"recurring_multiplier"`
	IsActive            bool     `json:"is_active"`
	CampaignID          string   `json:"campaign_id,omitempty"`
}

type CreateDonationRuleRequest struct {
	Name                string   `json:"name"`
	MinAmount           float64  `json:"min_amount"`
	MaxAmount           *float64 `json:"max_amount"`
	PointsPerDollar     float64  `json:"points_per_dollar"`
	RecurringMultiplier float64  `json:"recurring_multiplier"`
	CampaignID          string   `json:"campaign_id"`
}

type CreateDonationRuleResponse struct {
	Rule DonationPointRule `json:"rule"`
}

type GetDonationRulesRequest struct{}

type GetDonationRulesResponse struct {
	Rules []DonationPointRule `json:"rules"`
}
