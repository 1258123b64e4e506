package model

type GetLeaderboardRequest struct {
	Limit         int    `json:"limit"`
	Offset        int    `json:"offset"`
	Search        string `json:"search"`
	Category      string `json:"category"`
	Timeframe     string `json:"timeframe"`
	CurrentUserID string `json:"current_user_id"`
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	Score         int    `json:"score"`
	BadgeCount    int    `json:"badge_count"`
	NFTCount      int    `json:"nft_count"`
	HasApplied    bool   `json:"has_applied"`
	IsPlaceholder bool   `json:"is_placeholder"`
	IsCurrentUser bool   `json:"is_current_user"`
}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
	Total   int                `json:"total"`

	// Source is "live", "mock-fallback" when only illustrative entries are
	// shown, or "error-fallback" when the data layer failed entirely.
	Source string `json:"source"`
}

type GetRankRequest struct {
	UserID string `json:"user_id"`
}

type GetRankResponse struct {
	Rank uint64 `json:"rank"`
}
