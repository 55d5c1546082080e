package port

import (
	"context"

	"narrabridge/internal/domain"
)

// FailureNotifier tells operators about batches that ended with errors.
type FailureNotifier interface {
	NotifyRunFailed(ctx context.Context, run *domain.DispatchRun) error
}
