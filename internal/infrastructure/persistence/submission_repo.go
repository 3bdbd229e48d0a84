package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"trustrace/internal/domain"
	"trustrace/internal/domain/entity"
	"trustrace/pkg/errcodes"
	"trustrace/pkg/lox"
)

type SubmissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func submissionNotFound() *domain.AppError {
	return domain.NewError(errcodes.SubmissionNotFound, "submission not found")
}

// Create inserts the submission and bumps the contest's submission counter.
func (r *SubmissionRepository) Create(ctx context.Context, submission *entity.Submission) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO submissions (
				id, contest_id, submitter, content_uri, title, description,
				vote_count, credibility_weighted_votes, trust_confidence, created_at
			) VALUES (
				:id, :contest_id, :submitter, :content_uri, :title, :description,
				:vote_count, :credibility_weighted_votes, :trust_confidence, :created_at
			)`

		if _, err := tx.NamedExecContext(ctx, query, fromSubmission(submission)); err != nil {
			if isUniqueViolation(err) {
				return domain.WrapError(err, errcodes.AlreadySubmitted, "already submitted to this contest")
			}
			return domain.WrapError(err, errcodes.InternalServerError, "failed to create submission")
		}

		return execAffectingOne(ctx, tx, contestNotFound(),
			`UPDATE contests SET submission_count = submission_count + 1 WHERE id = $1`,
			submission.ContestID,
		)
	})
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*entity.Submission, error) {
	query := `SELECT * FROM submissions WHERE id = $1`

	var schema submissionSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, submissionNotFound()
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get submission")
	}

	submission := schema.toDomain()

	return &submission, nil
}

// ListByContest returns a contest's submissions newest first.
func (r *SubmissionRepository) ListByContest(ctx context.Context, contestID string) ([]entity.Submission, error) {
	query := `SELECT * FROM submissions WHERE contest_id = $1 ORDER BY created_at DESC`

	var schemas []submissionSchema
	if err := r.db.SelectContext(ctx, &schemas, query, contestID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list submissions")
	}

	return lox.Map(schemas, submissionSchema.toDomain), nil
}

func (r *SubmissionRepository) ExistsForSubmitter(ctx context.Context, contestID, submitter string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM submissions WHERE contest_id = $1 AND submitter = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, contestID, submitter); err != nil {
		return false, domain.WrapError(err, errcodes.InternalServerError, "failed to check submission existence")
	}

	return exists, nil
}

// UpdateTally overwrites the stored aggregate with a recomputed one. The
// submission row is locked first; a vote count that moved since the recount
// read its votes fails with TallyOutdated.
func (r *SubmissionRepository) UpdateTally(ctx context.Context, id string, tally entity.Tally) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var current int

		err := tx.GetContext(ctx, &current, `SELECT vote_count FROM submissions WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return submissionNotFound()
			}
			return domain.WrapError(err, errcodes.InternalServerError, "failed to lock submission")
		}

		if current != tally.VoteCount {
			return domain.NewError(
				errcodes.TallyOutdated,
				fmt.Sprintf("submission has %d votes, recount saw %d", current, tally.VoteCount),
			)
		}

		query := `
			UPDATE submissions
			SET credibility_weighted_votes = $1,
			    trust_confidence = $2
			WHERE id = $3`

		return execAffectingOne(ctx, tx, submissionNotFound(), query,
			tally.WeightedVotes, tally.TrustConfidence, id)
	})
}
