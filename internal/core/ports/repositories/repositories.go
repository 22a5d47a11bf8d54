package repositories

// RepositoryProvider bundles the repository implementations handed to the
// service container at startup.
type RepositoryProvider struct {
	CompanyRepo  CompanyRepositoryFacade
	UserRepo     UserRepositoryFacade
	LoginLogRepo LoginLogWriter
}
