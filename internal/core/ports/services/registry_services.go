package services

import (
	"context"

	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
	"github.com/eureka-stamping/invreg-backend/internal/dto"
)

// RegistryReaderSvc defines the read-only query façade over the registry.
// Reads go straight to the ledger's confirmed state and are never blocked by
// in-flight mutations.
type RegistryReaderSvc interface {
	// HashExists reports whether a record exists for the content hash.
	HashExists(ctx context.Context, sha256Hex string) (bool, error)

	// GetInvoice looks up the record for a business code.
	// Returns apperrors.ErrNotFound when no record carries the code.
	GetInvoice(ctx context.Context, code string) (*domain.Record, error)
}

// RegistryMutatorSvc defines the state-changing registry operations. Each
// call validates its precondition against current ledger state, then proposes
// exactly one transaction through the submission coordinator. The ledger
// remains the final arbiter; a passing precondition does not guarantee
// inclusion.
type RegistryMutatorSvc interface {
	// SubmitInvoice anchors a new record for the content hash and code.
	SubmitInvoice(ctx context.Context, req dto.SubmitInvoiceRequest) (*domain.TxHandle, error)

	// CompleteInvoice moves the record for code from Submitted to Completed.
	CompleteInvoice(ctx context.Context, code string) (*domain.TxHandle, error)

	// RevokeInvoice moves the record for code from Submitted to Revoked.
	RevokeInvoice(ctx context.Context, code string) (*domain.TxHandle, error)
}

// RegistrySvcFacade combines the query façade and the mutation surface.
type RegistrySvcFacade interface {
	RegistryReaderSvc
	RegistryMutatorSvc
}
