package reputation

import (
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"
)

// ErrInvalidVoteAmount is returned by ValidateVotes for negative or
// non-finite amounts, and for amounts whose weighted sum overflows.
var ErrInvalidVoteAmount = errors.New("invalid vote amount")

// Vote is a raw vote amount together with the voter's score.
type Vote struct {
	VoterScore float64
	Amount     float64
}

// Weighted returns the amount multiplied by the voter's vote power.
func (v Vote) Weighted() float64 {
	return v.Amount * VotePower(v.VoterScore)
}

// ValidateVotes checks amounts before they reach the aggregation functions,
// which accept any input and would let a negative amount subtract from totals.
func ValidateVotes(votes []Vote) error {
	var total float64

	for i, v := range votes {
		if v.Amount < 0 || math.IsNaN(v.Amount) || math.IsInf(v.Amount, 0) {
			return fmt.Errorf("vote %d: amount %v: %w", i, v.Amount, ErrInvalidVoteAmount)
		}

		total += v.Weighted()
		if math.IsInf(total, 0) {
			return fmt.Errorf("vote %d: weighted total overflows: %w", i, ErrInvalidVoteAmount)
		}
	}

	return nil
}

// WeightedVotes sums amount × vote power over all votes.
func WeightedVotes(votes []Vote) float64 {
	return lo.SumBy(votes, Vote.Weighted)
}

// EstablishedThreshold is the minimum score whose votes count towards trust
// confidence.
func EstablishedThreshold() float64 {
	return tiers[creatorIdx].MinScore
}

// TrustConfidence is the rounded share (0..100) of weighted votes that comes
// from voters at creator tier or above. No votes, or a non-positive total,
// yields 0.
func TrustConfidence(votes []Vote) int {
	if len(votes) == 0 {
		return 0
	}

	total := WeightedVotes(votes)
	if total <= 0 {
		return 0
	}

	threshold := EstablishedThreshold()
	established := lo.SumBy(votes, func(v Vote) float64 {
		if v.VoterScore >= threshold {
			return v.Weighted()
		}
		return 0
	})

	return percentOf(established, total)
}

// ConfidenceLevel is one of the three trust confidence buckets.
type ConfidenceLevel string

const (
	HighTrust   ConfidenceLevel = "high"
	MediumTrust ConfidenceLevel = "medium"
	LowTrust    ConfidenceLevel = "low"
)

// ConfidenceLabel is the display form of a trust confidence value.
type ConfidenceLabel struct {
	Level ConfidenceLevel
	Label string
	Color string
}

// TrustConfidenceLabel buckets a confidence percentage.
func TrustConfidenceLabel(confidence int) ConfidenceLabel {
	switch {
	case confidence >= 70:
		return ConfidenceLabel{Level: HighTrust, Label: "High Trust", Color: "#34D399"}
	case confidence >= 40:
		return ConfidenceLabel{Level: MediumTrust, Label: "Medium Trust", Color: "#FBBF24"}
	default:
		return ConfidenceLabel{Level: LowTrust, Label: "Low Trust", Color: "#F87171"}
	}
}

// TierBreakdown is the share of a vote list contributed by one tier.
type TierBreakdown struct {
	Tier          Tier
	VoteCount     int
	WeightedVotes float64
	Percentage    int
}

// VoteBreakdownByTier partitions votes by the voter's tier, highest tier
// first. The WeightedVotes of the four entries sum to WeightedVotes(votes).
func VoteBreakdownByTier(votes []Vote) []TierBreakdown {
	total := WeightedVotes(votes)

	byTier := lo.GroupBy(votes, func(v Vote) TierName {
		return TierFromScore(v.VoterScore).Name
	})

	result := make([]TierBreakdown, 0, len(tiers))

	for i := len(tiers) - 1; i >= 0; i-- {
		tierVotes := byTier[tiers[i].Name]
		weighted := lo.SumBy(tierVotes, Vote.Weighted)

		percentage := 0
		if total > 0 {
			percentage = percentOf(weighted, total)
		}

		result = append(result, TierBreakdown{
			Tier:          tiers[i],
			VoteCount:     len(tierVotes),
			WeightedVotes: weighted,
			Percentage:    percentage,
		})
	}

	return result
}

// percentOf rounds half up, so -0.5 becomes 0 rather than -1.
func percentOf(part, total float64) int {
	return int(math.Floor(part/total*100 + 0.5))
}
