package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/sfdsa-platform/backend/internal/common"
	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/internal/model"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/errorx"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
)

type AdminDomain interface {
	Bootstrap(context.Context, *model.BootstrapAdminRequest) (*model.BootstrapAdminResponse, error)
	CreateNFTTier(context.Context, *model.CreateNFTTierRequest) (*model.CreateNFTTierResponse, error)
	CreateBadge(context.Context, *model.CreateBadgeRequest) (*model.CreateBadgeResponse, error)
}

type adminDomain struct {
	userRepo     repository.UserRepository
	badgeRepo    repository.BadgeRepository
	nftRepo      repository.NFTAwardRepository
	roleVerifier *common.GlobalRoleVerifier
}

func NewAdminDomain(
	userRepo repository.UserRepository,
	badgeRepo repository.BadgeRepository,
	nftRepo repository.NFTAwardRepository,
	roleVerifier *common.GlobalRoleVerifier,
) *adminDomain {
	return &adminDomain{
		userRepo:     userRepo,
		badgeRepo:    badgeRepo,
		nftRepo:      nftRepo,
		roleVerifier: roleVerifier,
	}
}

// Bootstrap promotes a user to admin after checking an out-of-band
// recovery code against the configured bcrypt hash. This is the only role
// change that doesn't require an existing admin.
func (d *adminDomain) Bootstrap(
	ctx context.Context, req *model.BootstrapAdminRequest,
) (*model.BootstrapAdminResponse, error) {
	hash := xcontext.Configs(ctx).Admin.RecoveryCodeHash
	if hash == "" {
		return nil, errorx.New(errorx.Unavailable, "Admin bootstrap is not configured")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.RecoveryCode)); err != nil {
		xcontext.Logger(ctx).Warnf("Rejected admin bootstrap attempt for user %s", req.UserID)
		return nil, errorx.New(errorx.PermissionDenied, "Invalid recovery code")
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get user: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found user")
	}

	if err := d.userRepo.SetRole(ctx, user.ID, entity.AdminRole); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set user role: %v", err)
		return nil, errorx.Unknown
	}

	user.Role = entity.AdminRole
	return &model.BootstrapAdminResponse{User: model.ConvertUser(user, true)}, nil
}

func (d *adminDomain) CreateNFTTier(
	ctx context.Context, req *model.CreateNFTTierRequest,
) (*model.CreateNFTTierResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.PointThreshold <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Point threshold must be positive")
	}

	tier := &entity.NFTAwardTier{
		Base:           entity.Base{ID: uuid.NewString()},
		Tier:           req.Tier,
		Name:           req.Name,
		Description:    req.Description,
		PointThreshold: req.PointThreshold,
		ImageURL:       req.ImageURL,
	}

	if err := d.nftRepo.UpsertTier(ctx, tier); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert nft tier: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateNFTTierResponse{TierID: tier.ID}, nil
}

func (d *adminDomain) CreateBadge(
	ctx context.Context, req *model.CreateBadgeRequest,
) (*model.CreateBadgeResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Type == "" || req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Type and name must not be empty")
	}

	badge := &entity.Badge{
		Base:        entity.Base{ID: uuid.NewString()},
		Type:        entity.BadgeType(req.Type),
		Name:        req.Name,
		Description: req.Description,
		Rarity:      entity.BadgeRarity(req.Rarity),
	}

	if err := d.badgeRepo.Upsert(ctx, badge); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert badge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateBadgeResponse{}, nil
}
