package statistic

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Entry is one leaderboard row before pagination. Live rows come from the
// users table; placeholder rows come from the fixed dataset below.
type Entry struct {
	UserID        string
	Name          string
	Score         int
	BadgeCount    int
	NFTCount      int
	HasApplied    bool
	IsPlaceholder bool
}

// placeholderUser is an illustrative profile shown while real engagement
// data is still sparse. Points are the all-time participation score; badge
// and NFT counts are derived because placeholders have no award rows.
type placeholderUser struct {
	id         string
	name       string
	points     int
	hasApplied bool
}

var placeholderUsers = []placeholderUser{
	{id: "placeholder-1", name: "Deputy Garcia", points: 2850, hasApplied: true},
	{id: "placeholder-2", name: "Marcus Chen", points: 2340, hasApplied: true},
	{id: "placeholder-3", name: "Sarah Johnson", points: 1980, hasApplied: true},
	{id: "placeholder-4", name: "David Rodriguez", points: 1650, hasApplied: false},
	{id: "placeholder-5", name: "Amanda Williams", points: 1320, hasApplied: true},
	{id: "placeholder-6", name: "James Thompson", points: 990, hasApplied: false},
	{id: "placeholder-7", name: "Maria Martinez", points: 720, hasApplied: true},
	{id: "placeholder-8", name: "Kevin Lee", points: 450, hasApplied: false},
}

// Placeholders returns the placeholder entries scored for the given
// category and filtered by the same search the live query used. The list
// is ordered by score descending.
func Placeholders(category, search string) []Entry {
	entries := []Entry{}
	for _, p := range placeholderUsers {
		if search != "" && !strings.Contains(strings.ToLower(p.name), strings.ToLower(search)) {
			continue
		}

		badgeCount := p.points / 100
		nftCount := p.points / 500

		e := Entry{
			UserID:        p.id,
			Name:          p.name,
			BadgeCount:    badgeCount,
			NFTCount:      nftCount,
			HasApplied:    p.hasApplied,
			IsPlaceholder: true,
		}

		switch category {
		case "badges":
			e.Score = badgeCount
		case "nfts":
			e.Score = nftCount
		case "applicants":
			if !p.hasApplied {
				continue
			}
			e.Score = p.points
		default:
			e.Score = p.points
		}

		entries = append(entries, e)
	}

	slices.SortStableFunc(entries, func(a, b Entry) bool { return a.Score > b.Score })
	return entries
}

// MergePlaceholders interleaves placeholder entries into the live list.
// A placeholder is only inserted while the live list is sparse (fewer than
// three entries) or when its score beats the lowest merged score; it lands
// at the first position whose score is lower. Both inputs must already be
// sorted by score descending.
func MergePlaceholders(live, placeholders []Entry) []Entry {
	merged := slices.Clone(live)
	for _, p := range placeholders {
		if len(merged) >= 3 && p.Score <= merged[len(merged)-1].Score {
			continue
		}

		pos := len(merged)
		for i := range merged {
			if merged[i].Score < p.Score {
				pos = i
				break
			}
		}

		merged = slices.Insert(merged, pos, p)
	}

	return merged
}
