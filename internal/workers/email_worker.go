package workers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/riverqueue/river"

	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
	"github.com/orgfin/org_finance_app/internal/platform/mail"
)

// EmailSendArgs carries one notification to the background mailer.
type EmailSendArgs struct {
	RecipientUserID string            `json:"recipient_user_id"`
	Template        string            `json:"template"`
	TemplateCtx     map[string]string `json:"template_ctx,omitempty"`
}

func (EmailSendArgs) Kind() string { return "email_send" }

func (EmailSendArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{MaxAttempts: 5}
}

// Known notification templates.
const (
	TemplateEntryApproved     = "entry_approved"
	TemplateEntryRejected     = "entry_rejected"
	TemplateEntryFlagged      = "entry_flagged"
	TemplatePaymentRecorded   = "payment_recorded"
	TemplateRemittanceOverdue = "remittance_overdue"
)

// EmailSendWorker resolves the recipient and delivers the rendered message.
type EmailSendWorker struct {
	river.WorkerDefaults[EmailSendArgs]
	userRepo portsrepo.UserReader
	mailer   mail.Mailer
	logger   *slog.Logger
}

func NewEmailSendWorker(userRepo portsrepo.UserReader, mailer mail.Mailer, logger *slog.Logger) *EmailSendWorker {
	return &EmailSendWorker{userRepo: userRepo, mailer: mailer, logger: logger}
}

func (w *EmailSendWorker) Work(ctx context.Context, job *river.Job[EmailSendArgs]) error {
	args := job.Args

	user, err := w.userRepo.FindUserByID(ctx, args.RecipientUserID)
	if err != nil {
		return fmt.Errorf("email worker: resolve recipient %s: %w", args.RecipientUserID, err)
	}

	subject, body := renderTemplate(args.Template, user.Name, args.TemplateCtx)
	if err := w.mailer.Send(ctx, user.Email, subject, body); err != nil {
		w.logger.Error("failed to send notification email",
			slog.String("recipient_user_id", args.RecipientUserID),
			slog.String("template", args.Template),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// renderTemplate produces the subject and plain-text body for a template.
func renderTemplate(template, recipientName string, templateCtx map[string]string) (string, string) {
	var subject string
	switch template {
	case TemplateEntryApproved:
		subject = "Your entry was approved"
	case TemplateEntryRejected:
		subject = "Your entry was rejected"
	case TemplateEntryFlagged:
		subject = "Your entry needs attention"
	case TemplatePaymentRecorded:
		subject = "A remittance payment was recorded"
	case TemplateRemittanceOverdue:
		subject = "A remittance is overdue"
	default:
		subject = "Notification"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\r\n\r\n%s.\r\n", recipientName, subject)
	if len(templateCtx) > 0 {
		b.WriteString("\r\nDetails:\r\n")
		for k, v := range templateCtx {
			fmt.Fprintf(&b, "  %s: %s\r\n", k, v)
		}
	}
	return subject, b.String()
}
