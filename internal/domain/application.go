package domain

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sfdsa-platform/backend/internal/domain/gamification"
	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/internal/model"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/errorx"
	"github.com/sfdsa-platform/backend/pkg/storage"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
)

const applicationSubmissionPoints = 50

type ApplicationDomain interface {
	Submit(context.Context, *model.SubmitApplicationRequest) (*model.SubmitApplicationResponse, error)
}

type applicationDomain struct {
	applicationRepo repository.ApplicationRepository
	userRepo        repository.UserRepository
	engine          gamification.Engine
	fileStorage     storage.Storage
}

func NewApplicationDomain(
	applicationRepo repository.ApplicationRepository,
	userRepo repository.UserRepository,
	engine gamification.Engine,
	fileStorage storage.Storage,
) *applicationDomain {
	return &applicationDomain{
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		engine:          engine,
		fileStorage:     fileStorage,
	}
}

func (d *applicationDomain) Submit(
	ctx context.Context, req *model.SubmitApplicationRequest,
) (*model.SubmitApplicationResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get user: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found user")
	}

	httpReq := xcontext.HTTPRequest(ctx)
	if err := httpReq.ParseMultipartForm(xcontext.Configs(ctx).File.MaxSize); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	firstName := httpReq.FormValue("first_name")
	lastName := httpReq.FormValue("last_name")
	email := httpReq.FormValue("email")
	phone := httpReq.FormValue("phone")
	position := httpReq.FormValue("position")
	agreed := httpReq.FormValue("agreed_to_terms")

	if firstName == "" || lastName == "" {
		return nil, errorx.New(errorx.BadRequest, "Name must not be empty")
	}
	if email == "" {
		return nil, errorx.New(errorx.BadRequest, "Email must not be empty")
	}
	if phone == "" {
		return nil, errorx.New(errorx.BadRequest, "Phone must not be empty")
	}
	if agreed != "true" {
		return nil, errorx.New(errorx.BadRequest, "Terms must be agreed to")
	}

	resumeURL, err := d.uploadResume(ctx, userID)
	if err != nil {
		return nil, err
	}

	application := &entity.VolunteerApplication{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        user.ID,
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		Phone:         phone,
		Position:      position,
		ResumeURL:     resumeURL,
		AgreedToTerms: true,
		Status:        entity.ApplicationReceived,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.applicationRepo.Create(ctx, application); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create application: %v", err)
		return nil, errorx.Unknown
	}

	if !user.HasApplied {
		if err := d.userRepo.SetHasApplied(ctx, user.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot set has applied: %v", err)
			return nil, errorx.Unknown
		}

		_, err := d.engine.AwardPoints(ctx, user.ID, applicationSubmissionPoints,
			entity.ActionApplicationSubmission, "Submitted volunteer application")
		if err != nil {
			return nil, err
		}
	}

	if _, err := d.engine.CheckAndAwardBadge(ctx, user.ID, entity.BadgeApplicationCompleted); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.SubmitApplicationResponse{
		ApplicationID: application.ID,
		Data:          model.ConvertApplication(application),
	}, nil
}

// uploadResume stores the optional resume attachment and returns its URL,
// or an empty string when no file was attached.
func (d *applicationDomain) uploadResume(ctx context.Context, userID string) (string, error) {
	httpReq := xcontext.HTTPRequest(ctx)
	file, header, err := httpReq.FormFile("resume")
	if err != nil {
		return "", nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read resume file: %v", err)
		return "", errorx.Unknown
	}

	resp, err := d.fileStorage.Upload(ctx, &storage.UploadObject{
		Bucket:   xcontext.Configs(ctx).Storage.Bucket,
		Prefix:   "resumes",
		FileName: fmt.Sprintf("%s-%s", userID, header.Filename),
		Mime:     header.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload resume: %v", err)
		return "", errorx.Unknown
	}

	return resp.Url, nil
}
