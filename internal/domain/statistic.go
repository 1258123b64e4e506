package domain

import (
	"context"
	"time"

	"github.com/sfdsa-platform/backend/internal/common"
	"github.com/sfdsa-platform/backend/internal/domain/statistic"
	"github.com/sfdsa-platform/backend/internal/model"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/dateutil"
	"github.com/sfdsa-platform/backend/pkg/errorx"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type StatisticDomain interface {
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetRank(context.Context, *model.GetRankRequest) (*model.GetRankResponse, error)
}

type statisticDomain struct {
	userRepo    repository.UserRepository
	leaderboard statistic.Leaderboard
}

func NewStatisticDomain(
	userRepo repository.UserRepository,
	leaderboard statistic.Leaderboard,
) *statisticDomain {
	return &statisticDomain{userRepo: userRepo, leaderboard: leaderboard}
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	limit, offset := common.Pagination(ctx, req.Limit, req.Offset)

	category := req.Category
	if category == "" {
		category = "participation"
	}

	switch category {
	case "participation", "badges", "nfts", "applicants":
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid category %s", req.Category)
	}

	placeholders := statistic.Placeholders(category, req.Search)

	users, err := d.userRepo.GetEngaged(ctx, repository.LeaderboardFilter{
		Search:         req.Search,
		Cutoff:         dateutil.TimeframeCutoff(req.Timeframe, time.Now()),
		OnlyApplicants: category == "applicants",
	})
	if err != nil {
		// The leaderboard always renders something. A data layer failure
		// degrades to the illustrative dataset instead of an error.
		xcontext.Logger(ctx).Errorf("Cannot query engaged users: %v", err)
		return d.respond(placeholders, "error-fallback", limit, offset, req.CurrentUserID), nil
	}

	live := []statistic.Entry{}
	for _, u := range users {
		e := statistic.Entry{
			UserID:     u.ID,
			Name:       u.Name,
			BadgeCount: u.BadgeCount,
			NFTCount:   u.NFTCount,
			HasApplied: u.HasApplied,
		}

		switch category {
		case "badges":
			e.Score = u.BadgeCount
		case "nfts":
			e.Score = u.NFTCount
		default:
			e.Score = u.ParticipationCount
		}

		live = append(live, e)
	}

	// The repository orders by participation; for the count-based
	// categories the metric order must be restored.
	slices.SortStableFunc(live, func(a, b statistic.Entry) bool { return a.Score > b.Score })

	merged := statistic.MergePlaceholders(live, placeholders)

	source := "live"
	if len(live) == 0 {
		source = "mock-fallback"
	}

	return d.respond(merged, source, limit, offset, req.CurrentUserID), nil
}

// respond ranks the full merged list, then applies pagination. Ranking
// before slicing keeps absolute rank numbers stable across pages.
func (d *statisticDomain) respond(
	entries []statistic.Entry,
	source string,
	limit, offset int,
	currentUserID string,
) *model.GetLeaderboardResponse {
	ranked := []model.LeaderboardEntry{}
	for i, e := range entries {
		ranked = append(ranked, model.LeaderboardEntry{
			Rank:          i + 1,
			UserID:        e.UserID,
			Name:          e.Name,
			Score:         e.Score,
			BadgeCount:    e.BadgeCount,
			NFTCount:      e.NFTCount,
			HasApplied:    e.HasApplied,
			IsPlaceholder: e.IsPlaceholder,
			IsCurrentUser: currentUserID != "" && e.UserID == currentUserID,
		})
	}

	total := len(ranked)
	if offset >= total {
		ranked = []model.LeaderboardEntry{}
	} else if offset+limit > total {
		ranked = ranked[offset:]
	} else {
		ranked = ranked[offset : offset+limit]
	}

	return &model.GetLeaderboardResponse{Entries: ranked, Total: total, Source: source}
}

func (d *statisticDomain) GetRank(
	ctx context.Context, req *model.GetRankRequest,
) (*model.GetRankResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	rank, err := d.leaderboard.GetRank(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.GetRankResponse{Rank: rank}, nil
}
