package entity

import "time"

type Submission struct {
	ID                       string    `json:"id"`
	ContestID                string    `json:"contest_id"`
	Submitter                string    `json:"submitter"`
	ContentURI               string    `json:"content_uri"`
	Title                    string    `json:"title"`
	Description              string    `json:"description"`
	VoteCount                int       `json:"vote_count"`
	CredibilityWeightedVotes float64   `json:"credibility_weighted_votes"`
	TrustConfidence          int       `json:"trust_confidence"`
	CreatedAt                time.Time `json:"created_at"`
}

// Tally is the recomputed aggregate of a submission's votes.
type Tally struct {
	VoteCount       int
	WeightedVotes   float64
	TrustConfidence int
}
