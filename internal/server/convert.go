package server

import (
	"time"

	"github.com/samber/lo"

	"trustrace/internal/domain/entity"
	"trustrace/internal/domain/reputation"
	"trustrace/pkg/rest"
)

func newRESTTier(t reputation.Tier) rest.Tier {
	var maxScore *float64
	if t.Bounded() {
		maxScore = lo.ToPtr(t.MaxScore)
	}

	return rest.Tier{
		Name:        t.Name.String(),
		DisplayName: t.DisplayName,
		Icon:        t.Icon,
		MinScore:    t.MinScore,
		MaxScore:    maxScore,
		VotePower:   t.VotePower,
		Color:       t.Color,
		BgColor:     t.BgColor,
		GlowColor:   t.GlowColor,
		Permissions: t.Permissions(),
	}
}

func newRESTProfile(p entity.Profile) rest.Profile {
	var nextTier *string
	if p.Progress.NextTier != nil {
		nextTier = lo.ToPtr(p.Progress.NextTier.Name.String())
	}

	return rest.Profile{
		Address: p.Address,
		Score:   p.Score,
		Tier:    newRESTTier(p.Tier),
		Progress: rest.Progress{
			Percent:      p.Progress.Percent,
			NextTier:     nextTier,
			PointsNeeded: p.Progress.PointsNeeded,
		},
		CredibilityLevel: p.CredibilityLevel,
		CanCreateContest: p.CanCreateContest,
		CanSubmit:        p.CanSubmit,
		IsCurator:        p.IsCurator,
	}
}

func newDomainVotes(votes []rest.PreviewVote) []reputation.Vote {
	return lo.Map(votes, func(v rest.PreviewVote, _ int) reputation.Vote {
		return reputation.Vote{VoterScore: v.VoterScore, Amount: v.Amount}
	})
}

func newRESTResults(r entity.SubmissionResults) rest.SubmissionResults {
	return rest.SubmissionResults{
		SubmissionID:    r.SubmissionID,
		VoteCount:       r.VoteCount,
		RawVotes:        r.RawVotes,
		WeightedVotes:   r.WeightedVotes,
		TrustConfidence: r.TrustConfidence,
		Label: rest.ConfidenceLabel{
			Level: string(r.Label.Level),
			Label: r.Label.Label,
			Color: r.Label.Color,
		},
		Breakdown: lo.Map(r.Breakdown, func(b reputation.TierBreakdown, _ int) rest.TierBreakdown {
			return rest.TierBreakdown{
				Tier:          b.Tier.Name.String(),
				VoteCount:     b.VoteCount,
				WeightedVotes: b.WeightedVotes,
				Percentage:    b.Percentage,
			}
		}),
	}
}

func newRESTContest(c entity.Contest, now time.Time) rest.Contest {
	return rest.Contest{
		ID:                  c.ID,
		Title:               c.Title,
		Prompt:              c.Prompt,
		Description:         c.Description,
		Creator:             c.Creator,
		SubmissionDeadline:  c.SubmissionDeadline,
		VotingDeadline:      c.VotingDeadline,
		RewardsPool:         c.RewardsPool,
		MinCredibilityScore: c.MinCredibilityScore,
		IsActive:            c.IsActive,
		Phase:               string(c.PhaseAt(now)),
		SubmissionCount:     c.SubmissionCount,
		TotalVotes:          c.TotalVotes,
		TotalWeightedVotes:  c.TotalWeightedVotes,
		CreatedAt:           c.CreatedAt,
	}
}

func newRESTSubmission(s entity.Submission) rest.Submission {
	return rest.Submission{
		ID:                       s.ID,
		ContestID:                s.ContestID,
		Submitter:                s.Submitter,
		ContentURI:               s.ContentURI,
		Title:                    s.Title,
		Description:              s.Description,
		VoteCount:                s.VoteCount,
		CredibilityWeightedVotes: s.CredibilityWeightedVotes,
		TrustConfidence:          s.TrustConfidence,
		CreatedAt:                s.CreatedAt,
	}
}

func newRESTVote(v entity.Vote) rest.Vote {
	return rest.Vote{
		ID:                v.ID,
		ContestID:         v.ContestID,
		SubmissionID:      v.SubmissionID,
		Voter:             v.Voter,
		Amount:            v.Amount,
		CredibilityWeight: v.CredibilityWeight,
		VotingPower:       v.VotingPower,
		CreatedAt:         v.CreatedAt,
	}
}
