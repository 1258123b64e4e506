package model

type BootstrapAdminRequest struct {
	RecoveryCode string `json:"recovery_code"`
	UserID       string `json:"user_id"`
}

type BootstrapAdminResponse struct {
	User User `json:"user"`
}

type CreateNFTTierRequest struct {
	Tier           int    `json:"tier"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	PointThreshold int    `json:"point_threshold"`
	ImageURL       string `json:"image_url"`
}

type CreateNFTTierResponse struct {
	TierID string `json:"tier_id"`
}

type CreateBadgeRequest struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      string `json:"rarity"`
}

type CreateBadgeResponse struct{}

type DeactivateDonationRuleRequest struct {
	RuleID string `json:"rule_id"`
}

type DeactivateDonationRuleResponse struct{}
