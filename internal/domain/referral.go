package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sfdsa-platform/backend/internal/common"
	"github.com/sfdsa-platform/backend/internal/domain/gamification"
	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/internal/model"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/errorx"
	"github.com/sfdsa-platform/backend/pkg/mailer"
	"github.com/sfdsa-platform/backend/pkg/pubsub"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const referralEventsLimit = 20

type ReferralDomain interface {
	SendReferral(context.Context, *model.SendReferralRequest) (*model.SendReferralResponse, error)
	UpdateStatus(context.Context, *model.UpdateReferralStatusRequest) (*model.UpdateReferralStatusResponse, error)
	GetDashboard(context.Context, *model.GetRecruiterDashboardRequest) (*model.GetRecruiterDashboardResponse, error)
}

type referralDomain struct {
	referralRepo  repository.ReferralRepository
	userRepo      repository.UserRepository
	pointsLogRepo repository.PointsLogRepository
	badgeRepo     repository.BadgeRepository
	nftRepo       repository.NFTAwardRepository
	engine        gamification.Engine
	roleVerifier  *common.GlobalRoleVerifier
	publisher     pubsub.Publisher
}

func NewReferralDomain(
	referralRepo repository.ReferralRepository,
	userRepo repository.UserRepository,
	pointsLogRepo repository.PointsLogRepository,
	badgeRepo repository.BadgeRepository,
	nftRepo repository.NFTAwardRepository,
	engine gamification.Engine,
	roleVerifier *common.GlobalRoleVerifier,
	publisher pubsub.Publisher,
) *referralDomain {
	return &referralDomain{
		referralRepo:  referralRepo,
		userRepo:      userRepo,
		pointsLogRepo: pointsLogRepo,
		badgeRepo:     badgeRepo,
		nftRepo:       nftRepo,
		engine:        engine,
		roleVerifier:  roleVerifier,
		publisher:     publisher,
	}
}

func (d *referralDomain) SendReferral(
	ctx context.Context, req *model.SendReferralRequest,
) (*model.SendReferralResponse, error) {
	recruiterID := xcontext.RequestUserID(ctx)
	recruiter, err := d.userRepo.GetByID(ctx, recruiterID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get recruiter: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found user")
	}

	// Without a recipient address there is nothing to track; hand back a
	// share message carrying the recruiter's referral code instead.
	if req.Email == "" {
		msg := fmt.Sprintf(
			"Join me in supporting the San Francisco Deputy Sheriffs' Association! Use my referral code %s when you sign up.",
			recruiter.ReferralCode)
		return &model.SendReferralResponse{ShareMessage: msg}, nil
	}

	referral := &entity.VolunteerReferral{
		Base:        entity.Base{ID: uuid.NewString()},
		RecruiterID: recruiter.ID,
		Email:       req.Email,
		Name:        req.Name,
		Status:      entity.ReferralContacted,
	}

	points := entity.ReferralContacted.Points()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.referralRepo.Create(ctx, referral); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create referral: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.referralRepo.UpsertStats(ctx, recruiter.ID, 1, 0, points); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert recruiter stats: %v", err)
		return nil, errorx.Unknown
	}

	desc := fmt.Sprintf("Referral sent to %s", req.Email)
	if _, err := d.engine.AwardPoints(ctx, recruiter.ID, points, entity.ActionReferralSent, desc); err != nil {
		return nil, err
	}

	event := &entity.ReferralEvent{
		Base:        entity.Base{ID: uuid.NewString()},
		RecruiterID: recruiter.ID,
		ReferralID:  referral.ID,
		Type:        "referral_sent",
		Metadata:    entity.Map{"email": req.Email, "name": req.Name},
	}
	if err := d.referralRepo.CreateEvent(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create referral event: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.checkRecruiterBadges(ctx, recruiter.ID, false); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	// Email delivery is best effort. The referral already committed.
	d.publishInvite(ctx, recruiter, req.Email, req.Name, req.Message)

	return &model.SendReferralResponse{ReferralID: referral.ID}, nil
}

func (d *referralDomain) publishInvite(
	ctx context.Context, recruiter *entity.User, email, name, message string,
) {
	if d.publisher == nil {
		return
	}

	body := fmt.Sprintf("Hi %s,\n\n%s invited you to learn about serving with the San Francisco Deputy Sheriffs' Association.", name, recruiter.Name)
	if message != "" {
		body += "\n\n" + message
	}

	b, err := json.Marshal(mailer.Mail{
		To:      email,
		Subject: fmt.Sprintf("%s invited you to join the SFDSA", recruiter.Name),
		Body:    body,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot marshal invite mail: %v", err)
		return
	}

	topic := xcontext.Configs(ctx).Email.Topic
	err = d.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(recruiter.ID), Msg: b})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish invite mail: %v", err)
	}
}

func (d *referralDomain) UpdateStatus(
	ctx context.Context, req *model.UpdateReferralStatusRequest,
) (*model.UpdateReferralStatusResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	newStatus := entity.ReferralStatus(req.Status)
	if !newStatus.Valid() {
		return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
	}

	referral, err := d.referralRepo.GetByID(ctx, req.ReferralID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get referral: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found referral")
	}

	if !referral.Status.CanTransitionTo(newStatus) {
		return nil, errorx.New(errorx.InvalidTransition,
			"Cannot move referral from %s to %s", referral.Status, newStatus)
	}

	points := newStatus.Points()
	successful := 0
	if newStatus == entity.ReferralHired {
		successful = 1
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The old status is part of the update condition, so the points below
	// are only awarded by whichever caller actually won the transition.
	err = d.referralRepo.UpdateStatus(ctx, referral.ID, referral.Status, newStatus)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InvalidTransition, "Referral status changed concurrently")
		}

		xcontext.Logger(ctx).Errorf("Cannot update referral status: %v", err)
		return nil, errorx.Unknown
	}

	if points > 0 {
		if err := d.referralRepo.UpsertStats(ctx, referral.RecruiterID, 0, successful, points); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot upsert recruiter stats: %v", err)
			return nil, errorx.Unknown
		}

		desc := fmt.Sprintf("Referral %s reached %s", referral.Email, newStatus)
		_, err := d.engine.AwardPoints(ctx, referral.RecruiterID, points, entity.ActionReferralProgress, desc)
		if err != nil {
			return nil, err
		}
	}

	event := &entity.ReferralEvent{
		Base:        entity.Base{ID: uuid.NewString()},
		RecruiterID: referral.RecruiterID,
		ReferralID:  referral.ID,
		Type:        "status_changed",
		Metadata:    entity.Map{"from": string(referral.Status), "to": string(newStatus)},
	}
	if err := d.referralRepo.CreateEvent(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create referral event: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.checkRecruiterBadges(ctx, referral.RecruiterID, newStatus == entity.ReferralHired); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.UpdateReferralStatusResponse{
		Status:        string(newStatus),
		Progress:      newStatus.Progress(),
		PointsAwarded: points,
	}, nil
}

func (d *referralDomain) checkRecruiterBadges(ctx context.Context, recruiterID string, hired bool) error {
	stats, err := d.referralRepo.GetStats(ctx, recruiterID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get recruiter stats: %v", err)
		return errorx.Unknown
	}

	candidates := []entity.BadgeType{}
	if stats.ReferralsCount >= 1 {
		candidates = append(candidates, entity.BadgeRecruiterRookie)
	}
	if stats.ReferralsCount >= 5 {
		candidates = append(candidates, entity.BadgeConnector)
	}
	if hired {
		candidates = append(candidates, entity.BadgeRecruiterCloser)
	}

	for _, badgeType := range candidates {
		if _, err := d.engine.CheckAndAwardBadge(ctx, recruiterID, badgeType); err != nil {
			return err
		}
	}

	return nil
}

func (d *referralDomain) GetDashboard(
	ctx context.Context, req *model.GetRecruiterDashboardRequest,
) (*model.GetRecruiterDashboardResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get user: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found user")
	}

	referrals, err := d.referralRepo.GetByRecruiterID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get referrals: %v", err)
		return nil, errorx.Unknown
	}

	limit, offset := common.Pagination(ctx, 0, 0)
	history, err := d.pointsLogRepo.GetByUserID(ctx, user.ID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get points history: %v", err)
		return nil, errorx.Unknown
	}

	badges, err := d.badgeRepo.GetUserBadges(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user badges: %v", err)
		return nil, errorx.Unknown
	}

	catalog, err := d.badgeRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get badge catalog: %v", err)
		return nil, errorx.Unknown
	}

	catalogByType := map[entity.BadgeType]*entity.Badge{}
	for i := range catalog {
		catalogByType[catalog[i].Type] = &catalog[i]
	}

	modelBadges := []model.UserBadge{}
	for i := range badges {
		modelBadges = append(modelBadges,
			model.ConvertUserBadge(&badges[i], catalogByType[badges[i].BadgeType]))
	}

	nfts, err := d.nftRepo.GetUserAwards(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get nft awards: %v", err)
		return nil, errorx.Unknown
	}

	events, err := d.referralRepo.GetEvents(ctx, user.ID, referralEventsLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get referral events: %v", err)
		return nil, errorx.Unknown
	}

	stats := &entity.RecruiterStats{UserID: user.ID}
	if got, err := d.referralRepo.GetStats(ctx, user.ID); err == nil {
		stats = got
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get recruiter stats: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetRecruiterDashboardResponse{
		Data: model.RecruiterDashboard{
			ReferralCode:  user.ReferralCode,
			Referrals:     model.ConvertReferrals(referrals),
			PointsHistory: model.ConvertPointsLogEntries(history),
			Badges:        modelBadges,
			NFTs:          model.ConvertNFTAwards(nfts),
			Events:        model.ConvertReferralEvents(events),
			Stats:         model.ConvertRecruiterStats(stats),
		},
		Source: "live",
	}, nil
}
