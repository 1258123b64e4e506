package gamification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sfdsa-platform/backend/internal/domain/statistic"
	"github.com/sfdsa-platform/backend/internal/entity"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/errorx"
	"github.com/sfdsa-platform/backend/pkg/mailer"
	"github.com/sfdsa-platform/backend/pkg/pubsub"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
)

// Engine is the single entry point for awarding points, badges, and NFT
// milestone awards. Domains call it inside their own database transaction;
// the engine never opens one itself.
type Engine interface {
	AwardPoints(
		ctx context.Context,
		userID string,
		points int,
		action entity.PointsAction,
		description string,
	) (*entity.PointsLogEntry, error)

	CheckAndAwardBadge(ctx context.Context, userID string, badgeType entity.BadgeType) (bool, error)
	CheckAndAwardNFTs(ctx context.Context, userID string, totalPoints int) ([]entity.UserNFTAward, error)
}

type engine struct {
	userRepo      repository.UserRepository
	pointsLogRepo repository.PointsLogRepository
	badgeRepo     repository.BadgeRepository
	nftRepo       repository.NFTAwardRepository
	leaderboard   statistic.Leaderboard
	publisher     pubsub.Publisher
}

func NewEngine(
	userRepo repository.UserRepository,
	pointsLogRepo repository.PointsLogRepository,
	badgeRepo repository.BadgeRepository,
	nftRepo repository.NFTAwardRepository,
	leaderboard statistic.Leaderboard,
	publisher pubsub.Publisher,
) *engine {
	return &engine{
		userRepo:      userRepo,
		pointsLogRepo: pointsLogRepo,
		badgeRepo:     badgeRepo,
		nftRepo:       nftRepo,
		leaderboard:   leaderboard,
		publisher:     publisher,
	}
}

func (e *engine) AwardPoints(
	ctx context.Context,
	userID string,
	points int,
	action entity.PointsAction,
	description string,
) (*entity.PointsLogEntry, error) {
	if points < 0 {
		return nil, errorx.New(errorx.BadRequest, "Point amount must not be negative")
	}

	entry := &entity.PointsLogEntry{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      userID,
		Action:      action,
		Points:      points,
		Description: description,
	}

	if err := e.pointsLogRepo.Create(ctx, entry); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create points log entry: %v", err)
		return nil, errorx.Unknown
	}

	if err := e.userRepo.IncreaseParticipation(ctx, userID, points); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase participation count: %v", err)
		return nil, errorx.Unknown
	}

	if e.leaderboard != nil && points > 0 {
		// The redis bump waits for the surrounding transaction to commit;
		// a rollback discards it.
		xcontext.RunAfterCommit(ctx, func(ctx context.Context) {
			if err := e.leaderboard.Change(ctx, int64(points), userID); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot bump leaderboard of user %s: %v", userID, err)
			}
		})
	}

	return entry, nil
}

func (e *engine) CheckAndAwardBadge(
	ctx context.Context, userID string, badgeType entity.BadgeType,
) (bool, error) {
	badge, err := e.badgeRepo.GetByType(ctx, badgeType)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get badge %s: %v", badgeType, err)
		return false, errorx.New(errorx.NotFound, "Not found badge %s", badgeType)
	}

	awarded, err := e.badgeRepo.CreateUserBadgeIfNotExist(ctx, &entity.UserBadge{
		UserID:    userID,
		BadgeType: badgeType,
		EarnedAt:  time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user badge: %v", err)
		return false, errorx.Unknown
	}

	if awarded {
		e.notify(ctx, userID,
			"You earned a new badge!",
			"Congratulations, you just earned the "+badge.Name+" badge.")
	}

	return awarded, nil
}

func (e *engine) CheckAndAwardNFTs(
	ctx context.Context, userID string, totalPoints int,
) ([]entity.UserNFTAward, error) {
	tiers, err := e.nftRepo.GetTiersAscending(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get nft award tiers: %v", err)
		return nil, errorx.Unknown
	}

	var newAwards []entity.UserNFTAward
	for _, tier := range tiers {
		if tier.PointThreshold > totalPoints {
			break
		}

		award := entity.UserNFTAward{
			UserID:         userID,
			NFTAwardTierID: tier.ID,
			AwardedAt:      time.Now(),
		}

		inserted, err := e.nftRepo.CreateAwardIfNotExist(ctx, &award)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create nft award: %v", err)
			return nil, errorx.Unknown
		}

		if inserted {
			award.NFTAwardTier = tier
			newAwards = append(newAwards, award)
			e.notify(ctx, userID,
				"You reached a new milestone!",
				"You just unlocked the "+tier.Name+" award.")
		}
	}

	return newAwards, nil
}

// notify publishes an email task for the user. Failures are logged and
// never bubble up; awards must not depend on the mail pipeline.
func (e *engine) notify(ctx context.Context, userID, subject, body string) {
	if e.publisher == nil {
		return
	}

	user, err := e.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get user %s for notification: %v", userID, err)
		return
	}

	b, err := json.Marshal(mailer.Mail{To: user.Email, Subject: subject, Body: body})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot marshal notification mail: %v", err)
		return
	}

	topic := xcontext.Configs(ctx).Email.Topic
	err = e.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(userID), Msg: b})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish notification mail: %v", err)
	}
}
