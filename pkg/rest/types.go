// Package rest holds the request and response models of the HTTP API.
package rest

import "time"

type Tier struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Icon        string   `json:"icon"`
	MinScore    float64  `json:"minScore"`
	MaxScore    *float64 `json:"maxScore"` // null for the top tier
	VotePower   float64  `json:"votePower"`
	Color       string   `json:"color"`
	BgColor     string   `json:"bgColor"`
	GlowColor   string   `json:"glowColor"`
	Permissions []string `json:"permissions"`
}

type Progress struct {
	Percent      float64 `json:"percent"`
	NextTier     *string `json:"nextTier"`
	PointsNeeded float64 `json:"pointsNeeded"`
}

type Profile struct {
	Address          string   `json:"address"`
	Score            int      `json:"score"`
	Tier             Tier     `json:"tier"`
	Progress         Progress `json:"progress"`
	CredibilityLevel string   `json:"credibilityLevel"`
	CanCreateContest bool     `json:"canCreateContest"`
	CanSubmit        bool     `json:"canSubmit"`
	IsCurator        bool     `json:"isCurator"`
}

type Activity struct {
	Address         string `json:"address"`
	VouchesReceived int    `json:"vouchesReceived"`
	VouchesGiven    int    `json:"vouchesGiven"`
	Attestations    int    `json:"attestations"`
}

type PreviewVote struct {
	VoterScore float64 `json:"voterScore"`
	Amount     float64 `json:"amount"`
}

type PreviewVotesRequest struct {
	Votes []PreviewVote `json:"votes" validate:"max=10000"`
}

type ConfidenceLabel struct {
	Level string `json:"level"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type TierBreakdown struct {
	Tier          string  `json:"tier"`
	VoteCount     int     `json:"voteCount"`
	WeightedVotes float64 `json:"weightedVotes"`
	Percentage    int     `json:"percentage"`
}

type SubmissionResults struct {
	SubmissionID    string          `json:"submissionId,omitempty"`
	VoteCount       int             `json:"voteCount"`
	RawVotes        float64         `json:"rawVotes"`
	WeightedVotes   float64         `json:"weightedVotes"`
	TrustConfidence int             `json:"trustConfidence"`
	Label           ConfidenceLabel `json:"label"`
	Breakdown       []TierBreakdown `json:"breakdown"`
}

type CreateContestRequest struct {
	Creator             string  `json:"creator" validate:"required"`
	Title               string  `json:"title" validate:"required"`
	Prompt              string  `json:"prompt" validate:"required"`
	Description         string  `json:"description"`
	SubmissionDuration  int64   `json:"submissionDuration" validate:"gt=0"` // seconds
	VotingDuration      int64   `json:"votingDuration" validate:"gt=0"`     // seconds
	RewardsPool         float64 `json:"rewardsPool" validate:"gt=0"`
	MinCredibilityScore int     `json:"minCredibilityScore" validate:"gte=0"`
}

type Contest struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Prompt              string    `json:"prompt"`
	Description         string    `json:"description"`
	Creator             string    `json:"creator"`
	SubmissionDeadline  time.Time `json:"submissionDeadline"`
	VotingDeadline      time.Time `json:"votingDeadline"`
	RewardsPool         float64   `json:"rewardsPool"`
	MinCredibilityScore int       `json:"minCredibilityScore"`
	IsActive            bool      `json:"isActive"`
	Phase               string    `json:"phase"`
	SubmissionCount     int       `json:"submissionCount"`
	TotalVotes          float64   `json:"totalVotes"`
	TotalWeightedVotes  float64   `json:"totalWeightedVotes"`
	CreatedAt           time.Time `json:"createdAt"`
}

type CreateSubmissionRequest struct {
	Submitter   string `json:"submitter" validate:"required"`
	ContentURI  string `json:"contentUri" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type Submission struct {
	ID                       string    `json:"id"`
	ContestID                string    `json:"contestId"`
	Submitter                string    `json:"submitter"`
	ContentURI               string    `json:"contentUri"`
	Title                    string    `json:"title"`
	Description              string    `json:"description"`
	VoteCount                int       `json:"voteCount"`
	CredibilityWeightedVotes float64   `json:"credibilityWeightedVotes"`
	TrustConfidence          int       `json:"trustConfidence"`
	CreatedAt                time.Time `json:"createdAt"`
}

type CastVoteRequest struct {
	Voter  string  `json:"voter" validate:"required"`
	Amount float64 `json:"amount"`
}

type Vote struct {
	ID                string    `json:"id"`
	ContestID         string    `json:"contestId"`
	SubmissionID      string    `json:"submissionId"`
	Voter             string    `json:"voter"`
	Amount            float64   `json:"amount"`
	CredibilityWeight int       `json:"credibilityWeight"`
	VotingPower       float64   `json:"votingPower"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	SupportID string    `json:"supportId"`
}

type ErrorCode string
