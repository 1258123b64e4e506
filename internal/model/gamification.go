package model

type PointsLogEntry struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Action      string `json:"action"`
	Points      int    `json:"points"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type UserBadge struct {
	BadgeType   string `json:"badge_type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      string `json:"rarity"`
	EarnedAt    string `json:"earned_at"`
}

type NFTAwardTier struct {
	ID             string `json:"id"`
	Tier           int    `json:"tier"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	PointThreshold int    `json:"point_threshold"`
	ImageURL       string `json:"image_url"`
}

type NFTAward struct {
	Tier            NFTAwardTier `json:"tier"`
	AwardedAt       string       `json:"awarded_at"`
	TokenID         string       `json:"token_id,omitempty"`
	ContractAddress string       `json:"contract_address,omitempty"`
}

type AwardPointsRequest struct {
	UserID      string `json:"user_id"`
	Points      int    `json:"points"`
	Action      string `json:"action"`
	Description string `json:"description"`
}

type AwardPointsResponse struct {
	Entry       PointsLogEntry `json:"entry"`
	TotalPoints int            `json:"total_points"`
}

type AwardBadgeRequest struct {
	UserID    string `json:"user_id"`
	BadgeType string `json:"badge_type"`
}

type AwardBadgeResponse struct {
	Awarded bool `json:"awarded"`
}
