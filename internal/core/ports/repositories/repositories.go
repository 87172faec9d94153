package repositories

// RepositoryProvider bundles the concrete repositories for service construction.
type RepositoryProvider struct {
	StageRepo      StageRepositoryFacade
	PaymentRepo    PaymentRepositoryFacade
	PayoutRepo     PayoutRepositoryFacade
	SettlementRepo SettlementRepositoryFacade
}
