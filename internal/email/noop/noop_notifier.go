package noop

import (
	"context"
	"log"

	"narrabridge/internal/config"
	"narrabridge/internal/domain"
	"narrabridge/internal/email"
	"narrabridge/internal/port"
)

type noopNotifier struct{}

func init() {
	email.RegisterProvider("noop", func(context.Context, *config.EmailConfig) (port.FailureNotifier, error) {
		return NewNoopNotifier(), nil
	})
}

// NewNoopNotifier creates a FailureNotifier that only logs.
func NewNoopNotifier() port.FailureNotifier {
	return noopNotifier{}
}

func (noopNotifier) NotifyRunFailed(_ context.Context, run *domain.DispatchRun) error {
	log.Printf("[NOOP EMAIL] %s", email.RunFailedSubject(run))
	return nil
}
