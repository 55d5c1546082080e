package email

import (
	"context"
	"fmt"

	"narrabridge/internal/config"
	"narrabridge/internal/port"
)

// ProviderFactory creates a FailureNotifier from the email config.
type ProviderFactory func(ctx context.Context, cfg *config.EmailConfig) (port.FailureNotifier, error)

// registry of notifier factories, populated by init() in each provider package.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a notifier factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewNotifier creates the FailureNotifier named by cfg.Provider.
func NewNotifier(ctx context.Context, cfg *config.EmailConfig) (port.FailureNotifier, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}
	return factory(ctx, cfg)
}
