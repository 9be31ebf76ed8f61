package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	EntryRepo        EntryRepositoryWithTx
	RemittanceRepo   RemittanceRepositoryWithTx
	WorkspaceRepo    WorkspaceRepositoryFacade
	OrganizationRepo OrganizationRepositoryFacade
	UserRepo         UserRepositoryFacade
	AuditRepo        AuditRepositoryFacade
	AttachmentRepo   AttachmentRepositoryFacade
}
