package domain

import (
	"context"

	"github.com/sfdsa-platform/backend/internal/common"
	"github.com/sfdsa-platform/backend/internal/domain/gamification"
	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/internal/model"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/errorx"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
)

var pointsActions = map[entity.PointsAction]bool{
	entity.ActionProfileCompletion:       true,
	entity.ActionEmailVerification:       true,
	entity.ActionApplicationSubmission:   true,
	entity.ActionAchievement:             true,
	entity.ActionDailyBriefingAttendance: true,
	entity.ActionDailyBriefingShare:      true,
	entity.ActionSgtKenGameWin:           true,
	entity.ActionChatParticipation:       true,
	entity.ActionSocialShareTwitter:      true,
	entity.ActionSocialShareFacebook:     true,
	entity.ActionSocialShareInstagram:    true,
	entity.ActionSocialShareLinkedin:     true,
	entity.ActionSocialShareEmail:        true,
	entity.ActionDonation:                true,
	entity.ActionReferralSent:            true,
	entity.ActionReferralProgress:        true,
	entity.ActionAdminAdjustment:         true,
}

type GamificationDomain interface {
	AwardPoints(context.Context, *model.AwardPointsRequest) (*model.AwardPointsResponse, error)
	AwardBadge(context.Context, *model.AwardBadgeRequest) (*model.AwardBadgeResponse, error)
}

type gamificationDomain struct {
	engine       gamification.Engine
	userRepo     repository.UserRepository
	roleVerifier *common.GlobalRoleVerifier
}

func NewGamificationDomain(
	engine gamification.Engine,
	userRepo repository.UserRepository,
	roleVerifier *common.GlobalRoleVerifier,
) *gamificationDomain {
	return &gamificationDomain{
		engine:       engine,
		userRepo:     userRepo,
		roleVerifier: roleVerifier,
	}
}

func (d *gamificationDomain) AwardPoints(
	ctx context.Context, req *model.AwardPointsRequest,
) (*model.AwardPointsResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	action := entity.PointsAction(req.Action)
	if !pointsActions[action] {
		return nil, errorx.New(errorx.BadRequest, "Invalid action %s", req.Action)
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get user: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found user")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	entry, err := d.engine.AwardPoints(ctx, user.ID, req.Points, action, req.Description)
	if err != nil {
		return nil, err
	}

	total := user.ParticipationCount + req.Points
	if _, err := d.engine.CheckAndAwardNFTs(ctx, user.ID, total+user.DonationPoints); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.AwardPointsResponse{
		Entry:       model.ConvertPointsLogEntry(entry),
		TotalPoints: total,
	}, nil
}

func (d *gamificationDomain) AwardBadge(
	ctx context.Context, req *model.AwardBadgeRequest,
) (*model.AwardBadgeResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get user: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found user")
	}

	awarded, err := d.engine.CheckAndAwardBadge(ctx, req.UserID, entity.BadgeType(req.BadgeType))
	if err != nil {
		return nil, err
	}

	return &model.AwardBadgeResponse{Awarded: awarded}, nil
}
