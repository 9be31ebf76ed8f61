package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	currencyRepo := newPgxCurrencyRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	entryRepo := newPgxEntryRepository(dbPool)
	remittanceRepo := newPgxRemittanceRepository(dbPool)
	workspaceRepo := newPgxWorkspaceRepository(dbPool)
	organizationRepo := newPgxOrganizationRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)
	attachmentRepo := newPgxAttachmentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CurrencyRepo:     currencyRepo,
		ExchangeRateRepo: exchangeRateRepo,
		EntryRepo:        entryRepo,
		RemittanceRepo:   remittanceRepo,
		WorkspaceRepo:    workspaceRepo,
		OrganizationRepo: organizationRepo,
		UserRepo:         userRepo,
		AuditRepo:        auditRepo,
		AttachmentRepo:   attachmentRepo,
	}
}
