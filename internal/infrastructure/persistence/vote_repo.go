package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"

	"trustrace/internal/domain"
	"trustrace/internal/domain/entity"
	"trustrace/pkg/errcodes"
	"trustrace/pkg/lox"
)

type VoteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Create stores the vote and adds its raw and weighted amount to the running
// totals of its submission and contest in one transaction.
func (r *VoteRepository) Create(ctx context.Context, vote *entity.Vote) error {
	weighted := vote.Amount * vote.VotingPower

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO votes (
				id, contest_id, submission_id, voter, amount,
				credibility_weight, voting_power, created_at
			) VALUES (
				:id, :contest_id, :submission_id, :voter, :amount,
				:credibility_weight, :voting_power, :created_at
			)`

		if _, err := tx.NamedExecContext(ctx, query, fromVote(vote)); err != nil {
			if isUniqueViolation(err) {
				return domain.WrapError(err, errcodes.AlreadyVoted, "already voted for this submission")
			}
			return domain.WrapError(err, errcodes.InternalServerError, "failed to create vote")
		}

		err := execAffectingOne(ctx, tx, submissionNotFound(), `
			UPDATE submissions
			SET vote_count = vote_count + 1,
			    credibility_weighted_votes = credibility_weighted_votes + $1
			WHERE id = $2`,
			weighted, vote.SubmissionID,
		)
		if err != nil {
			return err
		}

		return execAffectingOne(ctx, tx, contestNotFound(), `
			UPDATE contests
			SET total_votes = total_votes + $1,
			    total_weighted_votes = total_weighted_votes + $2
			WHERE id = $3`,
			vote.Amount, weighted, vote.ContestID,
		)
	})
}

func (r *VoteRepository) ListBySubmission(ctx context.Context, submissionID string) ([]entity.Vote, error) {
	query := `SELECT * FROM votes WHERE submission_id = $1 ORDER BY created_at ASC`

	return r.list(ctx, query, submissionID)
}

// ListByVoterInContest returns the voter's votes in a contest newest first.
func (r *VoteRepository) ListByVoterInContest(ctx context.Context, contestID, voter string) ([]entity.Vote, error) {
	query := `SELECT * FROM votes WHERE contest_id = $1 AND voter = $2 ORDER BY created_at DESC`

	return r.list(ctx, query, contestID, voter)
}

func (r *VoteRepository) Exists(ctx context.Context, submissionID, voter string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM votes WHERE submission_id = $1 AND voter = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, submissionID, voter); err != nil {
		return false, domain.WrapError(err, errcodes.InternalServerError, "failed to check vote existence")
	}

	return exists, nil
}

func (r *VoteRepository) list(ctx context.Context, query string, args ...any) ([]entity.Vote, error) {
	var schemas []voteSchema
	if err := r.db.SelectContext(ctx, &schemas, query, args...); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list votes")
	}

	return lox.Map(schemas, voteSchema.toDomain), nil
}
