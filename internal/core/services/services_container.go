package services

import (
	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
	"github.com/eureka-stamping/invreg-backend/internal/core/ports"
	portsrepo "github.com/eureka-stamping/invreg-backend/internal/core/ports/repositories"
	portssvc "github.com/eureka-stamping/invreg-backend/internal/core/ports/services"
	"github.com/eureka-stamping/invreg-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, ledger ports.LedgerClient) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Fee budgets are fixed per mutation kind; the coordinator never
	// estimates cost dynamically.
	fees := map[domain.MutationKind]domain.FeeParams{
		domain.MutationSubmit:   {GasLimit: cfg.SubmitGasLimit, GasPriceWei: cfg.GasPriceWei()},
		domain.MutationComplete: {GasLimit: cfg.CompleteGasLimit, GasPriceWei: cfg.GasPriceWei()},
		domain.MutationRevoke:   {GasLimit: cfg.RevokeGasLimit, GasPriceWei: cfg.GasPriceWei()},
	}
	coordinator := NewSubmissionCoordinator(ledger, fees, cfg.ConfirmationTimeout)

	container.Registry = NewRegistryService(ledger, coordinator)
	container.Company = NewCompanyService(repos.CompanyRepo)
	container.User = NewUserService(repos.UserRepo, repos.CompanyRepo, repos.LoginLogRepo)

	return container
}
