package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"narrabridge/internal/config"
	"narrabridge/internal/domain"
	"narrabridge/internal/email"
	"narrabridge/internal/port"
)

type sesNotifier struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	recipients  []string
}

func init() {
	email.RegisterProvider("ses", NewSESNotifier)
}

// NewSESNotifier creates a new SES-backed FailureNotifier.
func NewSESNotifier(ctx context.Context, cfg *config.EmailConfig) (port.FailureNotifier, error) {
	if len(cfg.NotifyTo) == 0 {
		return nil, fmt.Errorf("email.notify_to is required for the ses provider")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesNotifier{
		client:      sesv2.NewFromConfig(awsCfg),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		recipients:  cfg.NotifyTo,
	}, nil
}

func (s *sesNotifier) NotifyRunFailed(ctx context.Context, run *domain.DispatchRun) error {
	subject := email.RunFailedSubject(run)
	htmlBody := email.RunFailedHTML(run)
	textBody := email.RunFailedText(run)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: s.recipients,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
