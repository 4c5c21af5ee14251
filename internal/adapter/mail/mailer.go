// Package mail sends transactional email through Resend and renders the
// assessment results message.
package mail

import (
	"fmt"

	"log/slog"

	resend "github.com/resend/resend-go/v2"

	"github.com/merchbase/site-api/internal/domain"
)

// Mailer implements domain.Mailer on the Resend API.
type Mailer struct {
	client *resend.Client
	from   string
}

// New constructs a Mailer. from is the RFC 5322 sender, e.g.
// "MerchBase <onboarding@resend.dev>".
func New(apiKey, from string) *Mailer {
	return &Mailer{client: resend.NewClient(apiKey), from: from}
}

// SendAssessmentResult renders the results email for a completed assessment
// and delivers it to the record's owner.
func (m *Mailer) SendAssessmentResult(ctx domain.Context, a domain.Assessment, resultsURL string) error {
	html, err := RenderAssessmentEmail(a, resultsURL)
	if err != nil {
		return err
	}
	return m.Send(ctx, domain.Email{
		To:      a.Email,
		Subject: AssessmentSubject(a.CompanyName),
		HTML:    html,
	})
}

// Send delivers one message. The msg.From override is honored when set so
// callers can vary the sender per campaign.
func (m *Mailer) Send(ctx domain.Context, msg domain.Email) error {
	from := msg.From
	if from == "" {
		from = m.from
	}
	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("op=mail.Send: %w", err)
	}
	slog.Info("email sent", slog.String("resend_id", sent.Id), slog.String("to", msg.To))
	return nil
}
