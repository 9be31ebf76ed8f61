package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	portssvc "github.com/orgfin/org_finance_app/internal/core/ports/services"
	"github.com/orgfin/org_finance_app/internal/workers"
)

// InsertEmailTxFunc enqueues an email job within the given transaction.
// Provided by main as a closure over river.Client.InsertTx.
type InsertEmailTxFunc func(ctx context.Context, tx pgx.Tx, args workers.EmailSendArgs) error

type notificationService struct {
	BaseService
	insertTx InsertEmailTxFunc
}

// NewNotificationService creates the notification sink backed by the job queue.
func NewNotificationService(insertTx InsertEmailTxFunc) portssvc.NotifierSvc {
	return &notificationService{insertTx: insertTx}
}

var _ portssvc.NotifierSvc = (*notificationService)(nil)

// NotifyTx enqueues the notification on the caller's transaction so it is
// only delivered when the triggering mutation commits.
func (s *notificationService) NotifyTx(ctx context.Context, tx pgx.Tx, recipientUserID, template string, templateCtx map[string]string) error {
	return s.insertTx(ctx, tx, workers.EmailSendArgs{
		RecipientUserID: recipientUserID,
		Template:        template,
		TemplateCtx:     templateCtx,
	})
}
