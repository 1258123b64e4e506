package entity

type PointsAction string

const (
	ActionProfileCompletion       PointsAction = "profile_completion"
	ActionEmailVerification       PointsAction = "email_verification"
	ActionApplicationSubmission   PointsAction = "application_submission"
	ActionAchievement             PointsAction = "achievement"
	ActionDailyBriefingAttendance PointsAction = "daily_briefing_attendance"
	ActionDailyBriefingShare      PointsAction = "daily_briefing_share"
	ActionSgtKenGameWin           PointsAction = "sgt_ken_game_win"
	ActionChatParticipation       PointsAction = "chat_participation"
	ActionSocialShareTwitter      PointsAction = "social_share_twitter"
	ActionSocialShareFacebook     PointsAction = "social_share_facebook"
	ActionSocialShareInstagram    PointsAction = "social_share_instagram"
	ActionSocialShareLinkedin     PointsAction = "social_share_linkedin"
	ActionSocialShareEmail        PointsAction = "social_share_email"
	ActionDonation                PointsAction = "donation"
	ActionReferralSent            PointsAction = "referral_sent"
	ActionReferralProgress        PointsAction = "referral_progress"
	ActionAdminAdjustment         PointsAction = "admin_adjustment"
)

// PointsLogEntry is append-only. The sum of a user's entries always equals
// User.ParticipationCount.
type PointsLogEntry struct {
	Base
	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Action      PointsAction
	Points      int
	Description string
}
