package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/brookfield/admissions/internal/auth"
	"github.com/brookfield/admissions/internal/domain/application"
	"github.com/brookfield/admissions/internal/repository"
)

// AccountReader resolves the owning family's email address.
type AccountReader interface {
	GetByID(ctx context.Context, id string) (*auth.Account, error)
}

// SESDispatcher sends status emails through AWS SES.
type SESDispatcher struct {
	client   *ses.Client
	accounts AccountReader
	sender   string
	logger   *slog.Logger
}

// NewSESDispatcher creates an SES-backed dispatcher using the default AWS
// credential chain.
func NewSESDispatcher(ctx context.Context, region, sender string, accounts AccountReader, logger *slog.Logger) (*SESDispatcher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return &SESDispatcher{
		client:   ses.NewFromConfig(cfg),
		accounts: accounts,
		sender:   sender,
		logger:   logger,
	}, nil
}

// Send delivers the status message for an application to its family. The
// caller treats any error as best-effort; the status transition stands.
func (d *SESDispatcher) Send(ctx context.Context, app *application.Application, newStatus application.Status) error {
	acct, err := d.accounts.GetByID(ctx, app.FamilyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("no account for family %s", app.FamilyID)
		}
		return fmt.Errorf("resolving family account: %w", err)
	}

	subject, body := Render(app, newStatus)

	_, err = d.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(d.sender),
		Destination: &types.Destination{
			ToAddresses: []string{acct.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	if d.logger != nil {
		d.logger.Info("status email sent",
			"application_id", app.ID,
			"status", newStatus,
			"recipient", acct.Email,
		)
	}
	return nil
}
