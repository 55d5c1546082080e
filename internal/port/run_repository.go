package port

import (
	"context"

	"github.com/google/uuid"

	"narrabridge/internal/domain"
)

// RunRepository persists batch execution audit records.
type RunRepository interface {
	Create(ctx context.Context, run *domain.DispatchRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DispatchRun, error)
	List(ctx context.Context, offset, limit int) ([]domain.DispatchRun, int, error)
}
