package entity

import "time"

type Contest struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Prompt              string    `json:"prompt"`
	Description         string    `json:"description"`
	Creator             string    `json:"creator"`
	SubmissionDeadline  time.Time `json:"submission_deadline"`
	VotingDeadline      time.Time `json:"voting_deadline"`
	RewardsPool         float64   `json:"rewards_pool"`
	MinCredibilityScore int       `json:"min_credibility_score"`
	IsActive            bool      `json:"is_active"`
	SubmissionCount     int       `json:"submission_count"`
	TotalVotes          float64   `json:"total_votes"`
	TotalWeightedVotes  float64   `json:"total_weighted_votes"`
	CreatedAt           time.Time `json:"created_at"`
}

// Phase is where a contest is in its lifecycle at a given moment.
type Phase string

const (
	PhaseSubmission Phase = "submission"
	PhaseVoting     Phase = "voting"
	PhaseEnded      Phase = "ended"
)

func (c Contest) PhaseAt(now time.Time) Phase {
	switch {
	case !c.IsActive || !now.Before(c.VotingDeadline):
		return PhaseEnded
	case now.Before(c.SubmissionDeadline):
		return PhaseSubmission
	default:
		return PhaseVoting
	}
}
