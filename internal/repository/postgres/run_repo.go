package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"narrabridge/internal/domain"
	"narrabridge/internal/port"
)

type runRepo struct {
	db *sqlx.DB
}

// NewRunRepo creates a new PostgreSQL-backed RunRepository.
func NewRunRepo(db *sqlx.DB) port.RunRepository {
	return &runRepo{db: db}
}

func (r *runRepo) Create(ctx context.Context, run *domain.DispatchRun) error {
	query := `INSERT INTO dispatch_runs
		(id, request_id, subject, variant, policy, base_url, token_fingerprint, item_count,
		 result_count, error_count, status, error_message, archive_key, started_at, finished_at)
		VALUES (:id, :request_id, :subject, :variant, :policy, :base_url, :token_fingerprint, :item_count,
		 :result_count, :error_count, :status, :error_message, :archive_key, :started_at, :finished_at)`

	if _, err := r.db.NamedExecContext(ctx, query, run); err != nil {
		return fmt.Errorf("runRepo.Create: %w", err)
	}
	return nil
}

func (r *runRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.DispatchRun, error) {
	var run domain.DispatchRun
	err := r.db.GetContext(ctx, &run, "SELECT * FROM dispatch_runs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("runRepo.GetByID: %w", err)
	}
	return &run, nil
}

func (r *runRepo) List(ctx context.Context, offset, limit int) ([]domain.DispatchRun, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM dispatch_runs"); err != nil {
		return nil, 0, fmt.Errorf("runRepo.List count: %w", err)
	}

	var runs []domain.DispatchRun
	err := r.db.SelectContext(ctx, &runs,
		`SELECT * FROM dispatch_runs ORDER BY started_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("runRepo.List: %w", err)
	}
	return runs, total, nil
}
