package domain

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sfdsa-platform/backend/internal/common"
	"github.com/sfdsa-platform/backend/internal/domain/gamification"
	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/internal/model"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/errorx"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	maxBioLength            = 500
	profileCompletionPoints = 25
)

type UserDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	GetProfile(context.Context, *model.GetProfileRequest) (*model.GetProfileResponse, error)
	UpdateBio(context.Context, *model.UpdateBioRequest) (*model.UpdateBioResponse, error)
	GetPointsHistory(context.Context, *model.GetPointsHistoryRequest) (*model.GetPointsHistoryResponse, error)
}

type userDomain struct {
	userRepo      repository.UserRepository
	pointsLogRepo repository.PointsLogRepository
	badgeRepo     repository.BadgeRepository
	nftRepo       repository.NFTAwardRepository
	engine        gamification.Engine
}

func NewUserDomain(
	userRepo repository.UserRepository,
	pointsLogRepo repository.PointsLogRepository,
	badgeRepo repository.BadgeRepository,
	nftRepo repository.NFTAwardRepository,
	engine gamification.Engine,
) *userDomain {
	return &userDomain{
		userRepo:      userRepo,
		pointsLogRepo: pointsLogRepo,
		badgeRepo:     badgeRepo,
		nftRepo:       nftRepo,
		engine:        engine,
	}
}

func (d *userDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	if req.Email == "" {
		return nil, errorx.New(errorx.BadRequest, "Email must not be empty")
	}

	if _, err := d.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Email %s is already registered", req.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	referralCode, err := common.GenerateReferralCode()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate referral code: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		Email:        req.Email,
		Name:         req.Name,
		Role:         entity.UserRole,
		ReferralCode: referralCode,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	if req.Name != "" {
		_, err := d.engine.AwardPoints(ctx, user.ID, profileCompletionPoints,
			entity.ActionProfileCompletion, "Completed profile at registration")
		if err != nil {
			return nil, err
		}
		user.ParticipationCount = profileCompletionPoints
	}

	xcontext.WithCommitDBTransaction(ctx)

	token, err := xcontext.TokenEngine(ctx).Generate(
		user.ID, model.AccessToken{ID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{
		User:        model.ConvertUser(user, true),
		AccessToken: token,
	}, nil
}

func (d *userDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get user by email: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found user")
	}

	token, err := xcontext.TokenEngine(ctx).Generate(
		user.ID, model.AccessToken{ID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{AccessToken: token}, nil
}

func (d *userDomain) GetProfile(
	ctx context.Context, req *model.GetProfileRequest,
) (*model.GetProfileResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "User is not authenticated")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get user: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found user")
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

	awards, err := d.nftRepo.GetUserAwards(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get nft awards: %v", err)
		return nil, errorx.Unknown
	}

	profile := model.Profile{
		User:      model.ConvertUser(user, userID == xcontext.RequestUserID(ctx)),
		Badges:    modelBadges,
		NFTAwards: model.ConvertNFTAwards(awards),
	}

	next, err := d.nftRepo.GetNextTier(ctx, user.ParticipationCount+user.DonationPoints)
	if err == nil {
		tier := model.ConvertNFTAwardTier(next)
		profile.NextAward = &tier
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get next nft tier: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetProfileResponse{Profile: profile}, nil
}

func (d *userDomain) UpdateBio(
	ctx context.Context, req *model.UpdateBioRequest,
) (*model.UpdateBioResponse, error) {
	if utf8.RuneCountInString(req.Bio) > maxBioLength {
		return nil, errorx.New(errorx.BadRequest,
			"Bio must not exceed %d characters", maxBioLength)
	}

	userID := xcontext.RequestUserID(ctx)
	if err := d.userRepo.UpdateBio(ctx, userID, req.Bio); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot update bio: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateBioResponse{}, nil
}

func (d *userDomain) GetPointsHistory(
	ctx context.Context, req *model.GetPointsHistoryRequest,
) (*model.GetPointsHistoryResponse, error) {
	limit, offset := common.Pagination(ctx, req.Limit, req.Offset)

	userID := xcontext.RequestUserID(ctx)
	entries, err := d.pointsLogRepo.GetByUserID(ctx, userID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get points history: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetPointsHistoryResponse{
		Entries: model.ConvertPointsLogEntries(entries),
	}, nil
}
