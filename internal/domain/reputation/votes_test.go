package reputation_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"trustrace/internal/domain/reputation"
	"trustrace/pkg/tests"
)

func randomVotes(random tests.Randomizer, n int) []reputation.Vote {
	votes := make([]reputation.Vote, n)
	for i := range votes {
		votes[i] = reputation.Vote{VoterScore: random.Score(), Amount: random.Amount(10)}
	}

	return votes
}

func TestWeightedVotes(t *testing.T) {
	rq := require.New(t)

	rq.Zero(reputation.WeightedVotes(nil))
	rq.Zero(reputation.WeightedVotes([]reputation.Vote{}))

	rq.InDelta(3.5, reputation.WeightedVotes([]reputation.Vote{
		{VoterScore: 2000, Amount: 1},
		{VoterScore: 0, Amount: 1},
	}), 1e-9)

	rq.InDelta(0.5*2+1*3+2*0.25, reputation.WeightedVotes([]reputation.Vote{
		{VoterScore: 100, Amount: 2},
		{VoterScore: 900, Amount: 3},
		{VoterScore: 1500, Amount: 0.25},
	}), 1e-9)
}

func TestTrustConfidence(t *testing.T) {
	testCases := []struct {
		name       string
		votes      []reputation.Vote
		confidence int
	}{
		{name: "No votes", votes: nil, confidence: 0},
		{name: "Only creator", votes: []reputation.Vote{{VoterScore: 1500, Amount: 10}}, confidence: 100},
		{name: "Only observer", votes: []reputation.Vote{{VoterScore: 100, Amount: 10}}, confidence: 0},
		{name: "Zero amounts", votes: []reputation.Vote{{VoterScore: 2000, Amount: 0}}, confidence: 0},
		{
			name: "Mixed",
			// established 1*2 = 2, total 2 + 2*0.5 = 3 -> 66.67
			votes: []reputation.Vote{
				{VoterScore: 1400, Amount: 1},
				{VoterScore: 10, Amount: 2},
			},
			confidence: 67,
		},
		{
			name: "Exactly half",
			// established 1*3 = 3, total 3 + 3*1 = 6
			votes: []reputation.Vote{
				{VoterScore: 2100, Amount: 1},
				{VoterScore: 800, Amount: 3},
			},
			confidence: 50,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			rq.Equal(tc.confidence, reputation.TrustConfidence(tc.votes))
		})
	}
}

func TestEstablishedThresholdTracksCreatorTier(t *testing.T) {
	rq := require.New(t)

	creator, ok := reputation.LookupTier(reputation.Creator)
	rq.True(ok)
	rq.InDelta(creator.MinScore, reputation.EstablishedThreshold(), 0)
}

func TestTrustConfidenceLabel(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		confidence int
		level      reputation.ConfidenceLevel
		label      string
	}{
		{confidence: 100, level: reputation.HighTrust, label: "High Trust"},
		{confidence: 70, level: reputation.HighTrust, label: "High Trust"},
		{confidence: 69, level: reputation.MediumTrust, label: "Medium Trust"},
		{confidence: 40, level: reputation.MediumTrust, label: "Medium Trust"},
		{confidence: 39, level: reputation.LowTrust, label: "Low Trust"},
		{confidence: 0, level: reputation.LowTrust, label: "Low Trust"},
	}

	for _, tc := range testCases {
		label := reputation.TrustConfidenceLabel(tc.confidence)

		rq.Equal(tc.level, label.Level)
		rq.Equal(tc.label, label.Label)
		rq.NotEmpty(label.Color)
	}
}

func TestVoteBreakdownByTier(t *testing.T) {
	rq := require.New(t)

	breakdown := reputation.VoteBreakdownByTier([]reputation.Vote{
		{VoterScore: 2500, Amount: 1},
		{VoterScore: 2000, Amount: 1},
		{VoterScore: 1400, Amount: 1.5},
		{VoterScore: 0, Amount: 2},
	})

	rq.Len(breakdown, 4)

	rq.Equal(reputation.Curator, breakdown[0].Tier.Name)
	rq.Equal(2, breakdown[0].VoteCount)
	rq.InDelta(6, breakdown[0].WeightedVotes, 1e-9)
	rq.Equal(60, breakdown[0].Percentage)

	rq.Equal(reputation.Creator, breakdown[1].Tier.Name)
	rq.Equal(1, breakdown[1].VoteCount)
	rq.InDelta(3, breakdown[1].WeightedVotes, 1e-9)
	rq.Equal(30, breakdown[1].Percentage)

	rq.Equal(reputation.Voter, breakdown[2].Tier.Name)
	rq.Zero(breakdown[2].VoteCount)
	rq.Zero(breakdown[2].Percentage)

	rq.Equal(reputation.Observer, breakdown[3].Tier.Name)
	rq.Equal(1, breakdown[3].VoteCount)
	rq.InDelta(1, breakdown[3].WeightedVotes, 1e-9)
	rq.Equal(10, breakdown[3].Percentage)
}

func TestVoteBreakdownWithoutVotes(t *testing.T) {
	rq := require.New(t)

	breakdown := reputation.VoteBreakdownByTier(nil)

	rq.Len(breakdown, 4)

	for _, b := range breakdown {
		rq.Zero(b.VoteCount)
		rq.Zero(b.WeightedVotes)
		rq.Zero(b.Percentage)
	}
}

func TestVoteBreakdownPartitionsTotal(t *testing.T) {
	rq := require.New(t)
	random := tests.NewRandomizer()

	for range 200 {
		votes := randomVotes(random, 1+random.Intn(50))
		breakdown := reputation.VoteBreakdownByTier(votes)

		var (
			weighted   float64
			count      int
			percentage int
		)

		for _, b := range breakdown {
			weighted += b.WeightedVotes
			count += b.VoteCount
			percentage += b.Percentage
		}

		rq.InDelta(reputation.WeightedVotes(votes), weighted, 1e-6)
		rq.Equal(len(votes), count)

		if reputation.WeightedVotes(votes) > 0 {
			rq.InDelta(100, percentage, 3)
		}
	}
}

func TestAggregationIsDeterministic(t *testing.T) {
	rq := require.New(t)
	random := tests.NewRandomizer()

	for range 100 {
		votes := randomVotes(random, random.Intn(20))
		score := random.Score()

		rq.Equal(reputation.TierFromScore(score), reputation.TierFromScore(score))
		rq.Equal(reputation.ProgressToNextTier(score), reputation.ProgressToNextTier(score))
		rq.Equal(reputation.WeightedVotes(votes), reputation.WeightedVotes(votes))
		rq.Equal(reputation.TrustConfidence(votes), reputation.TrustConfidence(votes))
		rq.Equal(reputation.VoteBreakdownByTier(votes), reputation.VoteBreakdownByTier(votes))
	}
}

func TestValidateVotes(t *testing.T) {
	rq := require.New(t)

	rq.NoError(reputation.ValidateVotes(nil))
	rq.NoError(reputation.ValidateVotes([]reputation.Vote{{VoterScore: -10, Amount: 0}}))

	for _, amount := range []float64{-0.001, math.NaN(), math.Inf(1)} {
		err := reputation.ValidateVotes([]reputation.Vote{
			{VoterScore: 1000, Amount: 1},
			{VoterScore: 1000, Amount: amount},
		})
		rq.ErrorIs(err, reputation.ErrInvalidVoteAmount)
		rq.ErrorContains(err, "vote 1")
	}
}

func TestValidateVotesRejectsOverflow(t *testing.T) {
	rq := require.New(t)

	err := reputation.ValidateVotes([]reputation.Vote{{VoterScore: 2000, Amount: 1e308}})
	rq.ErrorIs(err, reputation.ErrInvalidVoteAmount)
	rq.ErrorContains(err, "vote 0")

	err = reputation.ValidateVotes([]reputation.Vote{
		{VoterScore: 1000, Amount: math.MaxFloat64 / 2},
		{VoterScore: 1000, Amount: math.MaxFloat64 / 2},
		{VoterScore: 1000, Amount: math.MaxFloat64 / 2},
	})
	rq.ErrorIs(err, reputation.ErrInvalidVoteAmount)
	rq.ErrorContains(err, "vote 2")

	votes := []reputation.Vote{{VoterScore: 2000, Amount: 1e300}, {VoterScore: 100, Amount: 1e300}}
	rq.NoError(reputation.ValidateVotes(votes))

	confidence := reputation.TrustConfidence(votes)
	rq.GreaterOrEqual(confidence, 0)
	rq.LessOrEqual(confidence, 100)
}

func TestNegativeAmountsArePermissive(t *testing.T) {
	rq := require.New(t)

	votes := []reputation.Vote{
		{VoterScore: 2000, Amount: 1},
		{VoterScore: 0, Amount: -2},
	}

	rq.InDelta(2, reputation.WeightedVotes(votes), 1e-9)
	rq.Equal(150, reputation.TrustConfidence(votes))
}
