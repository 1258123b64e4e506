package domain

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/sfdsa-platform/backend/internal/common"
	"github.com/sfdsa-platform/backend/internal/domain/gamification"
	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/internal/model"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/errorx"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
)

type DonationDomain interface {
	RecordDonation(context.Context, *model.RecordDonationRequest) (*model.RecordDonationResponse, error)
	CreateRule(context.Context, *model.CreateDonationRuleRequest) (*model.CreateDonationRuleResponse, error)
	GetRules(context.Context, *model.GetDonationRulesRequest) (*model.GetDonationRulesResponse, error)
	DeactivateRule(context.Context, *model.DeactivateDonationRuleRequest) (*model.DeactivateDonationRuleResponse, error)
}

type donationDomain struct {
	donationRepo repository.DonationRepository
	userRepo     repository.UserRepository
	engine       gamification.Engine
	roleVerifier *common.GlobalRoleVerifier
}

func NewDonationDomain(
	donationRepo repository.DonationRepository,
	userRepo repository.UserRepository,
	engine gamification.Engine,
	roleVerifier *common.GlobalRoleVerifier,
) *donationDomain {
	return &donationDomain{
		donationRepo: donationRepo,
		userRepo:     userRepo,
		engine:       engine,
		roleVerifier: roleVerifier,
	}
}

// donationBadgeMilestones maps a total donation count to its milestone
// badge.
var donationBadgeMilestones = map[int64]entity.BadgeType{
	5:  entity.BadgeDonor5,
	10: entity.BadgeDonor10,
	25: entity.BadgeDonor25,
}

func (d *donationDomain) RecordDonation(
	ctx context.Context, req *model.RecordDonationRequest,
) (*model.RecordDonationResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Donation amount must be positive")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get user: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found user")
	}

	rules, err := d.donationRepo.GetActiveRules(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get donation rules: %v", err)
		return nil, errorx.Unknown
	}

	// Rules come back ordered by min_amount ascending, so the lowest
	// matching range wins when ranges were ever allowed to overlap.
	var rule *entity.DonationPointRule
	for i := range rules {
		if rules[i].Matches(req.Amount) {
			rule = &rules[i]
			break
		}
	}

	if rule == nil {
		return nil, errorx.New(errorx.NoMatchingRule, "No donation rule matches amount %.2f", req.Amount)
	}

	multiplier := 1.0
	if req.IsRecurring {
		multiplier = rule.RecurringMultiplier
	}
	points := int(math.Floor(req.Amount * rule.PointsPerDollar * multiplier))

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	donation := &entity.Donation{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        user.ID,
		Amount:        req.Amount,
		IsRecurring:   req.IsRecurring,
		PointsAwarded: points,
	}

	if err := d.donationRepo.Create(ctx, donation); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create donation: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.IncreaseDonationPoints(ctx, user.ID, points); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase donation points: %v", err)
		return nil, errorx.Unknown
	}

	desc := fmt.Sprintf("Donation of $%.2f under rule %s", req.Amount, rule.Name)
	if _, err := d.engine.AwardPoints(ctx, user.ID, points, entity.ActionDonation, desc); err != nil {
		return nil, err
	}

	newBadges, err := d.checkDonationBadges(ctx, user.ID, req.Amount, req.IsRecurring)
	if err != nil {
		return nil, err
	}

	// NFT tiers are re-evaluated against participation and donation
	// points combined, so a large donation can cross several at once.
	total := user.ParticipationCount + points + user.DonationPoints + points
	newAwards, err := d.engine.CheckAndAwardNFTs(ctx, user.ID, total)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.RecordDonationResponse{
		DonationID:   donation.ID,
		Points:       points,
		NewBadges:    newBadges,
		NewNFTAwards: model.ConvertNFTAwards(newAwards),
	}, nil
}

func (d *donationDomain) checkDonationBadges(
	ctx context.Context, userID string, amount float64, isRecurring bool,
) ([]string, error) {
	candidates := []entity.BadgeType{entity.BadgeFirstDonation}
	if isRecurring {
		candidates = append(candidates, entity.BadgeRecurringDonor)
	}
	if amount >= 100 {
		candidates = append(candidates, entity.BadgeGenerousDonor)
	}

	count, err := d.donationRepo.CountByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count donations: %v", err)
		return nil, errorx.Unknown
	}

	if badge, ok := donationBadgeMilestones[count]; ok {
		candidates = append(candidates, badge)
	}

	newBadges := []string{}
	for _, badgeType := range candidates {
		awarded, err := d.engine.CheckAndAwardBadge(ctx, userID, badgeType)
		if err != nil {
			return nil, err
		}

		if awarded {
			newBadges = append(newBadges, string(badgeType))
		}
	}

	return newBadges, nil
}

func (d *donationDomain) CreateRule(
	ctx context.Context, req *model.CreateDonationRuleRequest,
) (*model.CreateDonationRuleResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.MinAmount < 0 {
		return nil, errorx.New(errorx.BadRequest, "Minimum amount must not be negative")
	}
	if req.MaxAmount != nil && *req.MaxAmount <= req.MinAmount {
		return nil, errorx.New(errorx.BadRequest, "Maximum amount must be greater than minimum amount")
	}
	if req.PointsPerDollar <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Points per dollar must be positive")
	}
	if req.RecurringMultiplier < 1 {
		return nil, errorx.New(errorx.BadRequest, "Recurring multiplier must be at least 1")
	}

	rule := &entity.DonationPointRule{
		Base:                entity.Base{ID: uuid.NewString()},
		Name:                req.Name,
		MinAmount:           req.MinAmount,
		PointsPerDollar:     req.PointsPerDollar,
		RecurringMultiplier: req.RecurringMultiplier,
		IsActive:            true,
	}
	if req.MaxAmount != nil {
		rule.MaxAmount = sql.NullFloat64{Valid: true, Float64: *req.MaxAmount}
	}
	if req.CampaignID != "" {
		rule.CampaignID = sql.NullString{Valid: true, String: req.CampaignID}
	}

	active, err := d.donationRepo.GetActiveRules(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get donation rules: %v", err)
		return nil, errorx.Unknown
	}

	// Active ranges must not overlap, otherwise which rule applies to an
	// amount would depend on iteration order.
	for i := range active {
		if rangesOverlap(rule, &active[i]) {
			return nil, errorx.New(errorx.OverlappingRule,
				"Range overlaps active rule %s", active[i].Name)
		}
	}

	if err := d.donationRepo.CreateRule(ctx, rule); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create donation rule: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateDonationRuleResponse{Rule: model.ConvertDonationRule(rule)}, nil
}

// rangesOverlap reports whether two [min, max) ranges intersect. A null
// max means the range is unbounded above.
func rangesOverlap(a, b *entity.DonationPointRule) bool {
	if a.MaxAmount.Valid && a.MaxAmount.Float64 <= b.MinAmount {
		return false
	}
	if b.MaxAmount.Valid && b.MaxAmount.Float64 <= a.MinAmount {
		return false
	}
	return true
}

func (d *donationDomain) GetRules(
	ctx context.Context, req *model.GetDonationRulesRequest,
) (*model.GetDonationRulesResponse, error) {
	rules, err := d.donationRepo.GetActiveRules(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get donation rules: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetDonationRulesResponse{Rules: []model.DonationPointRule{}}
	for i := range rules {
		resp.Rules = append(resp.Rules, model.ConvertDonationRule(&rules[i]))
	}

	return resp, nil
}

func (d *donationDomain) DeactivateRule(
	ctx context.Context, req *model.DeactivateDonationRuleRequest,
) (*model.DeactivateDonationRuleResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if err := d.donationRepo.DeactivateRule(ctx, req.RuleID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot deactivate donation rule: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeactivateDonationRuleResponse{}, nil
}
