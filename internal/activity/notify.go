package activity

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/temporal"

	"github.com/edvin/jobboard/internal/mailer"
	"github.com/edvin/jobboard/internal/metrics"
	"github.com/edvin/jobboard/internal/model"
)

// Notify contains activities that deliver notification email to tenant admins.
type Notify struct {
	mail mailer.Notifier
}

// NewNotify creates a new Notify activity struct.
func NewNotify(mail mailer.Notifier) *Notify {
	return &Notify{mail: mail}
}

// SendExpiryWarning renders and delivers one expiry warning email.
func (a *Notify) SendExpiryWarning(ctx context.Context, c model.WarningCandidate) error {
	subject, body, err := mailer.RenderWarning(c)
	if err != nil {
		return temporal.NewNonRetryableApplicationError("render warning email", "TEMPLATE_ERROR", err)
	}

	if err := a.mail.Send(ctx, c.RecipientAddresses, subject, body); err != nil {
		metrics.WarningDeliveryFailures.WithLabelValues(c.Kind).Inc()
		return fmt.Errorf("send %s warning to tenant %s: %w", c.Kind, c.TenantID, err)
	}

	metrics.WarningsSent.WithLabelValues(c.Kind).Inc()
	return nil
}
