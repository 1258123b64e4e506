package domain

import (
	"testing"

	"github.com/sfdsa-platform/backend/internal/model"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestDonationDomain() DonationDomain {
	return NewDonationDomain(
		repository.NewDonationRepository(),
		repository.NewUserRepository(),
		newTestEngine(),
		newTestRoleVerifier(),
	)
}

func Test_donationDomain_RecordDonation(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)
	testutil.InsertBadges(ctx)
	testutil.InsertNFTTiers(ctx)
	testutil.InsertDonationRules(ctx)

	domain := newTestDonationDomain()

	// $150 matches the generous rule (min 100, no max, 2 points per
	// dollar).
	resp, err := domain.RecordDonation(ctx, &model.RecordDonationRequest{Amount: 150})
	require.NoError(t, err)
	require.Equal(t, 300, resp.Points)
	require.Equal(t, []string{"first_donation", "generous_donor"}, resp.NewBadges)

	// 600 combined points crosses the 100 and 500 tier thresholds.
	require.Len(t, resp.NewNFTAwards, 2)
	require.Equal(t, "Bronze Star", resp.NewNFTAwards[0].Tier.Name)
	require.Equal(t, "Silver Star", resp.NewNFTAwards[1].Tier.Name)

	user, err := repository.NewUserRepository().GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, 300, user.DonationPoints)
	require.Equal(t, 300, user.ParticipationCount)

	sum, err := repository.NewPointsLogRepository().SumByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, user.ParticipationCount, sum)
}

func Test_donationDomain_RecordDonation_recurring(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)
	testutil.InsertBadges(ctx)
	testutil.InsertDonationRules(ctx)

	domain := newTestDonationDomain()

	// $50 recurring under the standard rule: 50 * 1 * 1.5 = 75.
	resp, err := domain.RecordDonation(ctx, &model.RecordDonationRequest{
		Amount:      50,
		IsRecurring: true,
	})
	require.NoError(t, err)
	require.Equal(t, 75, resp.Points)
	require.Contains(t, resp.NewBadges, "first_donation")
	require.Contains(t, resp.NewBadges, "recurring_donor")
}

func Test_donationDomain_RecordDonation_invalidAmount(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)
	testutil.InsertDonationRules(ctx)

	domain := newTestDonationDomain()

	_, err := domain.RecordDonation(ctx, &model.RecordDonationRequest{Amount: 0})
	require.Error(t, err)
	require.Equal(t, "Donation amount must be positive", err.Error())

	_, err = domain.RecordDonation(ctx, &model.RecordDonationRequest{Amount: -20})
	require.Error(t, err)
}

func Test_donationDomain_RecordDonation_noMatchingRule(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	domain := newTestDonationDomain()

	// No rules seeded at all.
	_, err := domain.RecordDonation(ctx, &model.RecordDonationRequest{Amount: 25})
	require.Error(t, err)
	require.Equal(t, "No donation rule matches amount 25.00", err.Error())
}

func Test_donationDomain_milestoneBadge(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)
	testutil.InsertBadges(ctx)
	testutil.InsertDonationRules(ctx)

	domain := newTestDonationDomain()

	var last *model.RecordDonationResponse
	for i := 0; i < 5; i++ {
		var err error
		last, err = domain.RecordDonation(ctx, &model.RecordDonationRequest{Amount: 10})
		require.NoError(t, err)
	}

	// The fifth donation carries the milestone badge.
	require.Contains(t, last.NewBadges, "donor_milestone_5")
}

func Test_donationDomain_CreateRule(t *testing.T) {
	ctx := testutil.MockContextWithUserID("admin")
	testutil.InsertUsers(ctx)

	domain := newTestDonationDomain()

	max := 100.0
	resp, err := domain.CreateRule(ctx, &model.CreateDonationRuleRequest{
		Name:                "Standard",
		MinAmount:           0,
		MaxAmount:           &max,
		PointsPerDollar:     1,
		RecurringMultiplier: 1.5,
	})
	require.NoError(t, err)
	require.Equal(t, "Standard", resp.Rule.Name)
	require.True(t, resp.Rule.IsActive)

	// [50, 200) overlaps [0, 100).
	overlapMax := 200.0
	_, err = domain.CreateRule(ctx, &model.CreateDonationRuleRequest{
		Name:                "Overlapping",
		MinAmount:           50,
		MaxAmount:           &overlapMax,
		PointsPerDollar:     2,
		RecurringMultiplier: 1,
	})
	require.Error(t, err)
	require.Equal(t, "Range overlaps active rule Standard", err.Error())

	// [100, ∞) is fine.
	_, err = domain.CreateRule(ctx, &model.CreateDonationRuleRequest{
		Name:                "Generous",
		MinAmount:           100,
		PointsPerDollar:     2,
		RecurringMultiplier: 1.5,
	})
	require.NoError(t, err)

	rules, err := domain.GetRules(ctx, &model.GetDonationRulesRequest{})
	require.NoError(t, err)
	require.Len(t, rules.Rules, 2)
}

func Test_donationDomain_CreateRule_validation(t *testing.T) {
	ctx := testutil.MockContextWithUserID("admin")
	testutil.InsertUsers(ctx)

	domain := newTestDonationDomain()

	_, err := domain.CreateRule(ctx, &model.CreateDonationRuleRequest{
		Name:                "Negative",
		MinAmount:           -1,
		PointsPerDollar:     1,
		RecurringMultiplier: 1,
	})
	require.Error(t, err)

	badMax := 10.0
	_, err = domain.CreateRule(ctx, &model.CreateDonationRuleRequest{
		Name:                "Inverted",
		MinAmount:           50,
		MaxAmount:           &badMax,
		PointsPerDollar:     1,
		RecurringMultiplier: 1,
	})
	require.Error(t, err)

	_, err = domain.CreateRule(ctx, &model.CreateDonationRuleRequest{
		Name:                "Zero rate",
		MinAmount:           0,
		PointsPerDollar:     0,
		RecurringMultiplier: 1,
	})
	require.Error(t, err)
}

func Test_donationDomain_DeactivateRule(t *testing.T) {
	ctx := testutil.MockContextWithUserID("admin")
	testutil.InsertUsers(ctx)
	testutil.InsertDonationRules(ctx)

	domain := newTestDonationDomain()

	_, err := domain.DeactivateRule(ctx, &model.DeactivateDonationRuleRequest{RuleID: "rule-standard"})
	require.NoError(t, err)

	rules, err := domain.GetRules(ctx, &model.GetDonationRulesRequest{})
	require.NoError(t, err)
	require.Len(t, rules.Rules, 1)
	require.Equal(t, "Generous", rules.Rules[0].Name)

	// A $50 donation no longer matches any active rule.
	_, err = domain.RecordDonation(ctx, &model.RecordDonationRequest{
		UserID: "user1",
		Amount: 50,
	})
	require.Error(t, err)
}

func Test_donationDomain_CreateRule_notAdmin(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	domain := newTestDonationDomain()

	_, err := domain.CreateRule(ctx, &model.CreateDonationRuleRequest{
		Name:                "Sneaky",
		PointsPerDollar:     1,
		RecurringMultiplier: 1,
	})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())
}
