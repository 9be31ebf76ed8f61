package services

import (
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
	portssvc "github.com/orgfin/org_finance_app/internal/core/ports/services"
	"github.com/orgfin/org_finance_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. The insert funcs bridge to the job queue client owned by main;
// the Tx variants enqueue on the caller's transaction.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	insertAuditTx InsertAuditTxFunc,
	insertAudit InsertAuditFunc,
	insertEmailTx InsertEmailTxFunc,
) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	// Side-effect services first since everything else records through them
	container.Audit = NewAuditService(insertAuditTx, insertAudit)
	container.Notifier = NewNotificationService(insertEmailTx)

	// Workspace service next: it is the authorizer the other services depend on
	container.Workspace = NewWorkspaceService(
		repos.WorkspaceRepo,
		repos.OrganizationRepo,
		container.Audit,
	)
	authorizer := container.Workspace.(portssvc.AuthorizerSvc)

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Rate = NewRateService(repos.ExchangeRateRepo, repos.CurrencyRepo, container.Workspace, container.Audit)
	container.Organization = NewOrganizationService(repos.OrganizationRepo, repos.CurrencyRepo, authorizer)
	container.User = NewUserService(repos.UserRepo, container.Audit)
	container.Token = NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	container.Attachment = NewAttachmentService(repos.AttachmentRepo, repos.EntryRepo, authorizer)

	container.Remittance = NewRemittanceService(
		repos.RemittanceRepo,
		repos.EntryRepo,
		repos.WorkspaceRepo,
		repos.OrganizationRepo,
		repos.CurrencyRepo,
		authorizer,
		container.Audit,
		container.Notifier,
	)

	container.Entry = NewEntryService(
		repos.EntryRepo,
		repos.OrganizationRepo,
		repos.WorkspaceRepo,
		repos.CurrencyRepo,
		container.Rate,
		authorizer,
		container.Remittance,
		container.Audit,
		container.Notifier,
		container.Attachment,
		cfg.ResubmitRevalue,
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.EntrySvcFacade      = (*entryService)(nil)
	_ portssvc.RemittanceSvcFacade = (*remittanceService)(nil)
	_ portssvc.WorkspaceSvcFacade  = (*workspaceService)(nil)
)
