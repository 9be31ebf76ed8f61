package services

// ServiceContainer holds all service facades for handler wiring.
type ServiceContainer struct {
	Currency     CurrencySvcFacade
	Rate         RateSvcFacade
	Entry        EntrySvcFacade
	Remittance   RemittanceSvcFacade
	Workspace    WorkspaceSvcFacade
	Organization OrganizationSvcFacade
	User         UserSvcFacade
	Token        TokenSvc
	Audit        AuditRecorderSvc
	Notifier     NotifierSvc
	Attachment   AttachmentSvcFacade
}
