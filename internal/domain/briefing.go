package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sfdsa-platform/backend/internal/domain/gamification"
	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/internal/model"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/errorx"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const attendancePoints = 5

type BriefingDomain interface {
	GetToday(context.Context, *model.GetTodaysBriefingRequest) (*model.GetTodaysBriefingResponse, error)
	RecordAttendance(context.Context, *model.RecordAttendanceRequest) (*model.RecordAttendanceResponse, error)
	RecordShare(context.Context, *model.RecordShareRequest) (*model.RecordShareResponse, error)
}

type briefingDomain struct {
	briefingRepo repository.BriefingRepository
	engine       gamification.Engine
}

func NewBriefingDomain(
	briefingRepo repository.BriefingRepository,
	engine gamification.Engine,
) *briefingDomain {
	return &briefingDomain{briefingRepo: briefingRepo, engine: engine}
}

func (d *briefingDomain) GetToday(
	ctx context.Context, req *model.GetTodaysBriefingRequest,
) (*model.GetTodaysBriefingResponse, error) {
	briefing, err := d.briefingRepo.GetByDate(ctx, time.Now())
	if err == nil {
		return &model.GetTodaysBriefingResponse{Briefing: model.ConvertBriefing(briefing)}, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get today briefing: %v", err)
		return nil, errorx.Unknown
	}

	// No briefing matched today. Serve the most recent one rather than an
	// empty page.
	latest, err := d.briefingRepo.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "No briefing available")
		}

		xcontext.Logger(ctx).Errorf("Cannot get latest briefing: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetTodaysBriefingResponse{
		Briefing: model.ConvertBriefing(latest),
		Fallback: true,
	}, nil
}

func (d *briefingDomain) RecordAttendance(
	ctx context.Context, req *model.RecordAttendanceRequest,
) (*model.RecordAttendanceResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	briefing, err := d.briefingRepo.GetByID(ctx, req.BriefingID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get briefing: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found briefing")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	inserted, err := d.briefingRepo.CreateAttendanceIfNotExist(ctx, &entity.BriefingAttendance{
		UserID:     userID,
		BriefingID: briefing.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create attendance: %v", err)
		return nil, errorx.Unknown
	}

	// Attending the same briefing twice is fine, it just doesn't pay
	// twice.
	if !inserted {
		return &model.RecordAttendanceResponse{AlreadyAttended: true}, nil
	}

	desc := fmt.Sprintf("Attended daily briefing day %d", briefing.CycleDay)
	_, err = d.engine.AwardPoints(ctx, userID, attendancePoints, entity.ActionDailyBriefingAttendance, desc)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.RecordAttendanceResponse{PointsAwarded: attendancePoints}, nil
}

func (d *briefingDomain) RecordShare(
	ctx context.Context, req *model.RecordShareRequest,
) (*model.RecordShareResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if req.Platform == "" {
		return nil, errorx.New(errorx.BadRequest, "Platform must not be empty")
	}

	briefing, err := d.briefingRepo.GetByID(ctx, req.BriefingID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get briefing: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found briefing")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	inserted, err := d.briefingRepo.CreateShareIfNotExist(ctx, &entity.BriefingShare{
		UserID:     userID,
		BriefingID: briefing.ID,
		Platform:   req.Platform,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create share: %v", err)
		return nil, errorx.Unknown
	}

	if !inserted {
		return &model.RecordShareResponse{AlreadyShared: true}, nil
	}

	points := entity.SharePoints(req.Platform)
	desc := fmt.Sprintf("Shared daily briefing day %d on %s", briefing.CycleDay, req.Platform)
	_, err = d.engine.AwardPoints(ctx, userID, points, shareAction(req.Platform), desc)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.RecordShareResponse{PointsAwarded: points}, nil
}

func shareAction(platform string) entity.PointsAction {
	switch platform {
	case "twitter":
		return entity.ActionSocialShareTwitter
	case "facebook":
		return entity.ActionSocialShareFacebook
	case "instagram":
		return entity.ActionSocialShareInstagram
	case "linkedin":
		return entity.ActionSocialShareLinkedin
	case "email":
		return entity.ActionSocialShareEmail
	default:
		return entity.ActionDailyBriefingShare
	}
}
