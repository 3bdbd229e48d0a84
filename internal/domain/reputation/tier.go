// Package reputation classifies Ethos credibility scores into tiers and
// aggregates credibility-weighted votes.
//
// Everything here is pure: the tier table is immutable and no function keeps
// state between calls, so callers may use the package from any goroutine.
package reputation

import (
	"math"
	"slices"
)

// TierName identifies one of the four reputation tiers.
type TierName string

const (
	Observer TierName = "observer"
	Voter    TierName = "voter"
	Creator  TierName = "creator"
	Curator  TierName = "curator"
)

func (n TierName) String() string {
	return string(n)
}

// Tier is a band of the score axis with its vote-power multiplier.
// MaxScore is +Inf for the top tier.
type Tier struct {
	Name        TierName
	DisplayName string
	Icon        string
	MinScore    float64
	MaxScore    float64
	VotePower   float64
	Color       string
	BgColor     string
	GlowColor   string

	permissions []string
}

// Permissions returns the descriptive permission labels of the tier.
func (t Tier) Permissions() []string {
	return slices.Clone(t.permissions)
}

// Bounded reports whether the tier has a finite upper score bound.
func (t Tier) Bounded() bool {
	return !math.IsInf(t.MaxScore, 1)
}

// Contains reports whether score classifies into this tier. Fractional scores
// between MaxScore and the next MinScore belong to the lower tier.
func (t Tier) Contains(score float64) bool {
	return TierFromScore(score).Name == t.Name
}

// tiers is ordered from the lowest to the highest tier. Boundaries must stay
// contiguous: every MaxScore is the next MinScore minus one.
//
//nolint:gochecknoglobals
var tiers = [...]Tier{
	{
		Name:        Observer,
		DisplayName: "Observer",
		Icon:        "👁️",
		MinScore:    0,
		MaxScore:    799,
		VotePower:   0.5,
		Color:       "#9CA3AF",
		BgColor:     "rgba(156, 163, 175, 0.1)",
		GlowColor:   "rgba(156, 163, 175, 0.3)",
		permissions: []string{"Browse contests", "Vote with 0.5x power"},
	},
	{
		Name:        Voter,
		DisplayName: "Voter",
		Icon:        "🗳️",
		MinScore:    800,
		MaxScore:    1399,
		VotePower:   1.0,
		Color:       "#60A5FA",
		BgColor:     "rgba(96, 165, 250, 0.1)",
		GlowColor:   "rgba(96, 165, 250, 0.3)",
		permissions: []string{"Vote with 1x power", "Submit to contests", "View analytics"},
	},
	{
		Name:        Creator,
		DisplayName: "Creator",
		Icon:        "✍️",
		MinScore:    1400,
		MaxScore:    1999,
		VotePower:   2.0,
		Color:       "#34D399",
		BgColor:     "rgba(52, 211, 153, 0.1)",
		GlowColor:   "rgba(52, 211, 153, 0.3)",
		permissions: []string{"Create contests", "Vote with 2x power", "Featured in Trusted Creators"},
	},
	{
		Name:        Curator,
		DisplayName: "Curator",
		Icon:        "⭐",
		MinScore:    2000,
		MaxScore:    math.Inf(1),
		VotePower:   3.0,
		Color:       "#FBBF24",
		BgColor:     "rgba(251, 191, 36, 0.1)",
		GlowColor:   "rgba(251, 191, 36, 0.4)",
		permissions: []string{"Vote with 3x power", "Feature other contests", "Gold badge", "Top Curators leaderboard"},
	},
}

const (
	observerIdx = iota
	voterIdx
	creatorIdx
	curatorIdx
)

// Tiers returns the tier table ordered from observer to curator.
func Tiers() []Tier {
	return slices.Clone(tiers[:])
}

// LookupTier returns the tier with the given name.
func LookupTier(name TierName) (Tier, bool) {
	for _, t := range tiers {
		if t.Name == name {
			return t, true
		}
	}

	return Tier{}, false
}

// TierFromScore classifies a score. Thresholds are checked from the highest
// tier down, so anything below the voter threshold (negative scores and NaN
// included) lands in observer.
func TierFromScore(score float64) Tier {
	return tiers[tierIndex(score)]
}

// VotePower returns the multiplier applied to a vote cast with this score.
func VotePower(score float64) float64 {
	return TierFromScore(score).VotePower
}

// CanCreateContest reports whether the score reaches the creator tier.
func CanCreateContest(score float64) bool {
	return score >= CreatorMinScore()
}

// CreatorMinScore is the score required to create contests.
func CreatorMinScore() float64 {
	return tiers[creatorIdx].MinScore
}

// CanSubmit reports whether the score reaches the voter tier.
func CanSubmit(score float64) bool {
	return score >= tiers[voterIdx].MinScore
}

// IsCurator reports whether the score reaches the curator tier.
func IsCurator(score float64) bool {
	return score >= tiers[curatorIdx].MinScore
}

// Progress describes how far a score is into its tier.
// NextTier is nil at the top tier.
type Progress struct {
	Percent      float64
	NextTier     *Tier
	PointsNeeded float64
}

// ProgressToNextTier reports the progress towards the next tier.
func ProgressToNextTier(score float64) Progress {
	current := tierIndex(score)
	if current == curatorIdx {
		return Progress{Percent: 100, NextTier: nil, PointsNeeded: 0}
	}

	cur := tiers[current]
	next := tiers[current+1]

	pointsInTier := score - cur.MinScore
	tierRange := next.MinScore - cur.MinScore

	// Scores below zero would otherwise report negative progress.
	percent := math.Max(0, math.Min(100, pointsInTier/tierRange*100))

	return Progress{
		Percent:      percent,
		NextTier:     &next,
		PointsNeeded: next.MinScore - score,
	}
}

func tierIndex(score float64) int {
	for i := len(tiers) - 1; i > 0; i-- {
		if score >= tiers[i].MinScore {
			return i
		}
	}

	return observerIdx
}
