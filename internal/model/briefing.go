package model

type Briefing struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Theme        string `json:"theme"`
	Quote        string `json:"quote"`
	QuoteAuthor  string `json:"quote_author"`
	SgtKenTake   string `json:"sgt_ken_take"`
	CallToAction string `json:"call_to_action"`
	CycleDay     int    `json:"cycle_day"`
}

type GetTodaysBriefingRequest struct{}

type GetTodaysBriefingResponse struct {
	Briefing Briefing `json:"briefing"`

	// Fallback is true when no briefing matched today and the most recent
	// one is returned instead.
	Fallback bool `json:"fallback"`
}

type RecordAttendanceRequest struct {
	BriefingID string `json:"briefing_id"`
}

type RecordAttendanceResponse struct {
	AlreadyAttended bool `json:"already_attended"`
	PointsAwarded   int  `json:"points_awarded"`
}

type RecordShareRequest struct {
	BriefingID string `json:"briefing_id"`
	Platform   string `json:"platform"`
}

type RecordShareResponse struct {
	AlreadyShared bool `json:"already_shared"`
	PointsAwarded int  `json:"points_awarded"`
}
