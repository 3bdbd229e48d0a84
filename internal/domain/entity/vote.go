package entity

import (
	"time"

	"trustrace/internal/domain/reputation"
)

type Vote struct {
	ID           string  `json:"id"`
	ContestID    string  `json:"contest_id"`
	SubmissionID string  `json:"submission_id"`
	Voter        string  `json:"voter"`
	Amount       float64 `json:"amount"`
	// CredibilityWeight is the voter's Ethos score at the time of voting.
	CredibilityWeight int       `json:"credibility_weight"`
	VotingPower       float64   `json:"voting_power"`
	CreatedAt         time.Time `json:"created_at"`
}

func (v Vote) Reputation() reputation.Vote {
	return reputation.Vote{
		VoterScore: float64(v.CredibilityWeight),
		Amount:     v.Amount,
	}
}

// SubmissionResults is the credibility-weighted outcome of a submission.
type SubmissionResults struct {
	SubmissionID    string
	VoteCount       int
	RawVotes        float64
	WeightedVotes   float64
	TrustConfidence int
	Label           reputation.ConfidenceLabel
	Breakdown       []reputation.TierBreakdown
}
