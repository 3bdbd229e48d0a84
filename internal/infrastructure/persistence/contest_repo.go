package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"trustrace/internal/domain"
	"trustrace/internal/domain/entity"
	"trustrace/pkg/errcodes"
	"trustrace/pkg/lox"
)

type ContestRepository struct {
	db *sqlx.DB
}

func NewContestRepository(db *sqlx.DB) *ContestRepository {
	return &ContestRepository{db: db}
}

func contestNotFound() *domain.AppError {
	return domain.NewError(errcodes.ContestNotFound, "contest not found")
}

func (r *ContestRepository) Create(ctx context.Context, contest *entity.Contest) error {
	query := `
		INSERT INTO contests (
			id, title, prompt, description, creator,
			submission_deadline, voting_deadline, rewards_pool,
			min_credibility_score, is_active, submission_count,
			total_votes, total_weighted_votes, created_at
		) VALUES (
			:id, :title, :prompt, :description, :creator,
			:submission_deadline, :voting_deadline, :rewards_pool,
			:min_credibility_score, :is_active, :submission_count,
			:total_votes, :total_weighted_votes, :created_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, fromContest(contest)); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to create contest")
	}

	return nil
}

func (r *ContestRepository) GetByID(ctx context.Context, id string) (*entity.Contest, error) {
	query := `SELECT * FROM contests WHERE id = $1`

	var schema contestSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contestNotFound()
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get contest")
	}

	contest := schema.toDomain()

	return &contest, nil
}

// List returns contests newest first.
func (r *ContestRepository) List(ctx context.Context, limit, offset int) ([]entity.Contest, error) {
	query := `SELECT * FROM contests ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	var schemas []contestSchema
	if err := r.db.SelectContext(ctx, &schemas, query, limit, offset); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list contests")
	}

	return lox.Map(schemas, contestSchema.toDomain), nil
}

func (r *ContestRepository) UpdateStatus(ctx context.Context, id string, isActive bool) error {
	query := `UPDATE contests SET is_active = $1 WHERE id = $2`

	return execAffectingOne(ctx, r.db, contestNotFound(), query, isActive, id)
}
