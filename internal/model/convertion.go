package model

import (
	"time"

	"github.com/sfdsa-platform/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano
const DefaultDateLayout string = "2006-01-02"

func ConvertUser(user *entity.User, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	u := User{
		ID:                 user.ID,
		Name:               user.Name,
		Bio:                user.Bio,
		ParticipationCount: user.ParticipationCount,
		DonationPoints:     user.DonationPoints,
		HasApplied:         user.HasApplied,
	}

	if includeSensitive {
		u.Email = user.Email
		u.Role = user.Role
		u.ReferralCode = user.ReferralCode
	}

	return u
}

func ConvertPointsLogEntry(entry *entity.PointsLogEntry) PointsLogEntry {
	if entry == nil {
		return PointsLogEntry{}
	}

	return PointsLogEntry{
		ID:          entry.ID,
		UserID:      entry.UserID,
		Action:      string(entry.Action),
		Points:      entry.Points,
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertPointsLogEntries(entries []entity.PointsLogEntry) []PointsLogEntry {
	modelEntries := []PointsLogEntry{}
	for _, e := range entries {
		e := e
		modelEntries = append(modelEntries, ConvertPointsLogEntry(&e))
	}
	return modelEntries
}

func ConvertUserBadge(userBadge *entity.UserBadge, badge *entity.Badge) UserBadge {
	if userBadge == nil {
		return UserBadge{}
	}

	b := UserBadge{
		BadgeType: string(userBadge.BadgeType),
		EarnedAt:  userBadge.EarnedAt.Format(DefaultTimeLayout),
	}

	if badge != nil {
		b.Name = badge.Name
		b.Description = badge.Description
		b.Rarity = string(badge.Rarity)
	}

	return b
}

func ConvertNFTAwardTier(tier *entity.NFTAwardTier) NFTAwardTier {
	if tier == nil {
		return NFTAwardTier{}
	}

	return NFTAwardTier{
		ID:             tier.ID,
		Tier:           tier.Tier,
		Name:           tier.Name,
		Description:    tier.Description,
		PointThreshold: tier.PointThreshold,
		ImageURL:       tier.ImageURL,
	}
}

func ConvertNFTAward(award *entity.UserNFTAward) NFTAward {
	if award == nil {
		return NFTAward{}
	}

	a := NFTAward{
		Tier:      ConvertNFTAwardTier(&award.NFTAwardTier),
		AwardedAt: award.AwardedAt.Format(DefaultTimeLayout),
	}

	if award.TokenID.Valid {
		a.TokenID = award.TokenID.String
	}
	if award.ContractAddress.Valid {
		a.ContractAddress = award.ContractAddress.String
	}

	return a
}

func ConvertNFTAwards(awards []entity.UserNFTAward) []NFTAward {
	modelAwards := []NFTAward{}
	for _, a := range awards {
		a := a
		modelAwards = append(modelAwards, ConvertNFTAward(&a))
	}
	return modelAwards
}

func ConvertReferral(referral *entity.VolunteerReferral) Referral {
	if referral == nil {
		return Referral{}
	}

	return Referral{
		ID:        referral.ID,
		Email:     referral.Email,
		Name:      referral.Name,
		Status:    string(referral.Status),
		Progress:  referral.Status.Progress(),
		CreatedAt: referral.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertReferrals(referrals []entity.VolunteerReferral) []Referral {
	modelReferrals := []Referral{}
	for _, r := range referrals {
		r := r
		modelReferrals = append(modelReferrals, ConvertReferral(&r))
	}
	return modelReferrals
}

func ConvertRecruiterStats(stats *entity.RecruiterStats) RecruiterStats {
	if stats == nil {
		return RecruiterStats{}
	}

	return RecruiterStats{
		ReferralsCount:      stats.ReferralsCount,
		SuccessfulReferrals: stats.SuccessfulReferrals,
		TotalPoints:         stats.TotalPoints,
		ConversionRate:      stats.ConversionRate(),
	}
}

func ConvertReferralEvent(event *entity.ReferralEvent) ReferralEvent {
	if event == nil {
		return ReferralEvent{}
	}

	return ReferralEvent{
		ID:        event.ID,
		Type:      event.Type,
		Metadata:  event.Metadata,
		CreatedAt: event.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertReferralEvents(events []entity.ReferralEvent) []ReferralEvent {
	modelEvents := []ReferralEvent{}
	for _, e := range events {
		e := e
		modelEvents = append(modelEvents, ConvertReferralEvent(&e))
	}
	return modelEvents
}

func ConvertBriefing(briefing *entity.DailyBriefing) Briefing {
	if briefing == nil {
		return Briefing{}
	}

	return Briefing{
		ID:           briefing.ID,
		Date:         briefing.Date.Format(DefaultDateLayout),
		Theme:        string(briefing.Theme),
		Quote:        briefing.Quote,
		QuoteAuthor:  briefing.QuoteAuthor,
		SgtKenTake:   briefing.SgtKenTake,
		CallToAction: briefing.CallToAction,
		CycleDay:     briefing.CycleDay,
	}
}

func ConvertDonationRule(rule *entity.DonationPointRule) DonationPointRule {
	if rule == nil {
		return DonationPointRule{}
	}

	r := DonationPointRule{
		ID:                  rule.ID,
		Name:                rule.Name,
		MinAmount:           rule.MinAmount,
		PointsPerDollar:     rule.PointsPerDollar,
		RecurringMultiplier: rule.RecurringMultiplier,
		IsActive:            rule.IsActive,
	}

	if rule.MaxAmount.Valid {
		max := rule.MaxAmount.Float64
		r.MaxAmount = &max
	}
	if rule.CampaignID.Valid {
		r.CampaignID = rule.CampaignID.String
	}

	return r
}

func ConvertApplication(application *entity.VolunteerApplication) Application {
	if application == nil {
		return Application{}
	}

	return Application{
		ID:        application.ID,
		FirstName: application.FirstName,
		LastName:  application.LastName,
		Email:     application.Email,
		Phone:     application.Phone,
		Position:  application.Position,
		ResumeURL: application.ResumeURL,
		Status:    string(application.Status),
		CreatedAt: application.CreatedAt.Format(DefaultTimeLayout),
	}
}
