package domain

import (
	"math/big"
	"time"
)

// MutationKind identifies the registry mutation being proposed to the ledger.
// Each kind maps to one contract method and carries its own fixed fee budget.
type MutationKind string

const (
	MutationSubmit   MutationKind = "submit"
	MutationComplete MutationKind = "complete"
	MutationRevoke   MutationKind = "revoke"
)

// ContractMethod returns the registry contract method for this mutation kind.
func (k MutationKind) ContractMethod() string {
	switch k {
	case MutationSubmit:
		return "submitInvoice"
	case MutationComplete:
		return "completeInvoice"
	case MutationRevoke:
		return "revokeInvoice"
	}
	return ""
}

// ConfirmationStatus is the observed fate of a broadcast transaction.
type ConfirmationStatus string

const (
	ConfirmationConfirmed     ConfirmationStatus = "CONFIRMED"
	ConfirmationRejected      ConfirmationStatus = "REJECTED"
	ConfirmationIndeterminate ConfirmationStatus = "INDETERMINATE"
)

// FeeParams is the fixed cost budget attached to an outgoing transaction.
// Budgets are configured per mutation kind; the coordinator never estimates
// cost dynamically.
type FeeParams struct {
	GasLimit    uint64
	GasPriceWei *big.Int
}

// TxHandle tracks one broadcast transaction until it is confirmed or its fate
// is known to be unknowable. It is coordinator-owned and ephemeral; nothing in
// it is persisted domain state.
type TxHandle struct {
	TxID        string             `json:"txID"`
	Sequence    uint64             `json:"sequence"`
	Issuer      string             `json:"issuer"`
	Status      ConfirmationStatus `json:"status"`
	BroadcastAt time.Time          `json:"broadcastAt"`
}
