package view

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"trustrace/internal/domain"
	"trustrace/internal/domain/entity"
	"trustrace/internal/domain/reputation"
	"trustrace/pkg/errcodes"
)

const (
	StartMessage = "👋 <b>TrustRace</b>\n\n" +
		"Votes here are weighted by Ethos credibility.\n\n" +
		"/tiers - reputation tiers\n" +
		"/tier <code>address</code> - standing of an address or ENS name\n" +
		"/tier <code>score</code> - standing a score would have\n" +
		"/results <code>submission</code> - credibility-weighted results"

	TierUsage    = "❌ Usage: /tier <code>address</code> or /tier <code>score</code>"
	ResultsUsage = "❌ Usage: /results <code>submission</code>"
	CloseUsage   = "❌ Usage: /close <code>contest</code>"
	RecalcUsage  = "❌ Usage: /recalc <code>submission</code>"

	InvalidAddress = "❌ Not a hex address or ENS name"
	InvalidScore   = "❌ Score must be a non-negative number"
	InternalError  = "❌ Something went wrong, try again later"
)

func Tiers(tiers []reputation.Tier) string {
	var sb strings.Builder

	sb.WriteString("🏆 <b>Reputation tiers</b>\n\n")

	for _, t := range tiers {
		fmt.Fprintf(&sb, "%s <b>%s</b> %s - %.1fx vote power\n", t.Icon, t.DisplayName, scoreRange(t), t.VotePower)
	}

	return sb.String()
}

func Profile(p entity.Profile) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s <b>%s</b>\n\n", p.Tier.Icon, p.Tier.DisplayName)
	fmt.Fprintf(&sb, "👤 <code>%s</code>\n", html.EscapeString(p.Address))
	fmt.Fprintf(&sb, "⭐ <b>Score:</b> %d (%s)\n", p.Score, p.CredibilityLevel)
	writeStanding(&sb, p.Tier, p.Progress)

	return sb.String()
}

// Score renders the standing of a bare score.
func Score(score float64) string {
	tier := reputation.TierFromScore(score)

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s <b>%s</b>\n\n", tier.Icon, tier.DisplayName)
	fmt.Fprintf(&sb, "⭐ <b>Score:</b> %s (%s)\n",
		strconv.FormatFloat(score, 'f', -1, 64), reputation.CredibilityLevel(score))
	writeStanding(&sb, tier, reputation.ProgressToNextTier(score))

	return sb.String()
}

func writeStanding(sb *strings.Builder, tier reputation.Tier, progress reputation.Progress) {
	fmt.Fprintf(sb, "🗳️ <b>Vote power:</b> %.1fx\n", tier.VotePower)

	if progress.NextTier != nil {
		fmt.Fprintf(sb, "📈 <b>Progress:</b> %.0f%%, %.0f points to %s\n",
			progress.Percent, progress.PointsNeeded, progress.NextTier.DisplayName)
	} else {
		sb.WriteString("📈 <b>Progress:</b> top tier\n")
	}

	sb.WriteString("\n")

	for _, permission := range tier.Permissions() {
		fmt.Fprintf(sb, "• %s\n", permission)
	}
}

func Results(r entity.SubmissionResults) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📊 <b>Results</b> <code>%s</code>\n\n", html.EscapeString(r.SubmissionID))
	fmt.Fprintf(&sb, "🗳️ <b>Votes:</b> %d (%.3f raw)\n", r.VoteCount, r.RawVotes)
	fmt.Fprintf(&sb, "⚖️ <b>Weighted:</b> %.3f\n", r.WeightedVotes)
	fmt.Fprintf(&sb, "🛡️ <b>%s</b> %d%%\n\n", r.Label.Label, r.TrustConfidence)

	for _, b := range r.Breakdown {
		fmt.Fprintf(&sb, "%s %s: %d votes, %d%%\n", b.Tier.Icon, b.Tier.DisplayName, b.VoteCount, b.Percentage)
	}

	return sb.String()
}

func ContestClosed(id string) string {
	return fmt.Sprintf("✅ Contest <code>%s</code> closed", html.EscapeString(id))
}

// Error renders domain errors by their message and hides everything else.
func Error(err error) string {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) || appErr.Code == errcodes.InternalServerError {
		return InternalError
	}

	return "❌ " + html.EscapeString(appErr.Message)
}

func scoreRange(t reputation.Tier) string {
	if !t.Bounded() {
		return fmt.Sprintf("%.0f+", t.MinScore)
	}

	return fmt.Sprintf("%.0f-%.0f", t.MinScore, t.MaxScore)
}
