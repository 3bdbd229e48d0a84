package persistence

import (
	"time"

	"trustrace/internal/domain/entity"
)

// contestSchema maps a row of the contests table.
type contestSchema struct {
	ID                  string    `db:"id"`
	Title               string    `db:"title"`
	Prompt              string    `db:"prompt"`
	Description         string    `db:"description"`
	Creator             string    `db:"creator"`
	SubmissionDeadline  time.Time `db:"submission_deadline"`
	VotingDeadline      time.Time `db:"voting_deadline"`
	RewardsPool         float64   `db:"rewards_pool"`
	MinCredibilityScore int       `db:"min_credibility_score"`
	IsActive            bool      `db:"is_active"`
	SubmissionCount     int       `db:"submission_count"`
	TotalVotes          float64   `db:"total_votes"`
	TotalWeightedVotes  float64   `db:"total_weighted_votes"`
	CreatedAt           time.Time `db:"created_at"`
}

func fromContest(c *entity.Contest) contestSchema {
	return contestSchema{
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
		SubmissionCount:     c.SubmissionCount,
		TotalVotes:          c.TotalVotes,
		TotalWeightedVotes:  c.TotalWeightedVotes,
		CreatedAt:           c.CreatedAt,
	}
}

func (s contestSchema) toDomain() entity.Contest {
	return entity.Contest{
		ID:                  s.ID,
		Title:               s.Title,
		Prompt:              s.Prompt,
		Description:         s.Description,
		Creator:             s.Creator,
		SubmissionDeadline:  s.SubmissionDeadline,
		VotingDeadline:      s.VotingDeadline,
		RewardsPool:         s.RewardsPool,
		MinCredibilityScore: s.MinCredibilityScore,
		IsActive:            s.IsActive,
		SubmissionCount:     s.SubmissionCount,
		TotalVotes:          s.TotalVotes,
		TotalWeightedVotes:  s.TotalWeightedVotes,
		CreatedAt:           s.CreatedAt,
	}
}

type submissionSchema struct {
	ID                       string    `db:"id"`
	ContestID                string    `db:"contest_id"`
	Submitter                string    `db:"submitter"`
	ContentURI               string    `db:"content_uri"`
	Title                    string    `db:"title"`
	Description              string    `db:"description"`
	VoteCount                int       `db:"vote_count"`
	CredibilityWeightedVotes float64   `db:"credibility_weighted_votes"`
	TrustConfidence          int       `db:"trust_confidence"`
	CreatedAt                time.Time `db:"created_at"`
}

func fromSubmission(s *entity.Submission) submissionSchema {
	return submissionSchema{
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

func (s submissionSchema) toDomain() entity.Submission {
	return entity.Submission{
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

type voteSchema struct {
	ID                string    `db:"id"`
	ContestID         string    `db:"contest_id"`
	SubmissionID      string    `db:"submission_id"`
	Voter             string    `db:"voter"`
	Amount            float64   `db:"amount"`
	CredibilityWeight int       `db:"credibility_weight"`
	VotingPower       float64   `db:"voting_power"`
	CreatedAt         time.Time `db:"created_at"`
}

func fromVote(v *entity.Vote) voteSchema {
	return voteSchema{
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

func (s voteSchema) toDomain() entity.Vote {
	return entity.Vote{
		ID:                s.ID,
		ContestID:         s.ContestID,
		SubmissionID:      s.SubmissionID,
		Voter:             s.Voter,
		Amount:            s.Amount,
		CredibilityWeight: s.CredibilityWeight,
		VotingPower:       s.VotingPower,
		CreatedAt:         s.CreatedAt,
	}
}
