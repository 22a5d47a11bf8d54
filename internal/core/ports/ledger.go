package ports

import (
	"context"
	"time"

	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
)

// LedgerClient is the boundary to the external ledger node. Implementations
// wrap a concrete transaction-signing/broadcast client; everything above this
// port only sees contract methods, sequence numbers and confirmation states.
//
// Read calls are pure and may be retried by the implementation on transient
// transport failures. Mutations are broadcast exactly once per call; retry
// policy belongs to the caller, never the client.
type LedgerClient interface {
	// SignerAddress returns the ledger address of the process-wide signing
	// credential. All outgoing mutations are signed by this account.
	SignerAddress() string

	// ReadCall performs a read-only contract call and returns the unpacked
	// result values. A transport failure surfaces as apperrors.ErrLedgerUnavailable.
	ReadCall(ctx context.Context, method string, args ...any) ([]any, error)

	// PendingSequence returns the next unused sequence number for the issuer,
	// counting transactions still in the node's pending pool.
	PendingSequence(ctx context.Context, issuer string) (uint64, error)

	// SubmitTx builds, signs and broadcasts one mutation transaction using the
	// given sequence number and fee budget. It returns the transaction ID on
	// successful broadcast. Broadcast rejection surfaces as
	// apperrors.ErrSubmissionRejected with the node's diagnostic preserved;
	// a rejected broadcast does not consume the sequence number.
	SubmitTx(ctx context.Context, method string, args []any, sequence uint64, fee domain.FeeParams) (string, error)

	// WaitForConfirmation blocks until the transaction is durably included,
	// known to have failed, or the timeout elapses. On timeout it returns
	// ConfirmationIndeterminate and a nil error; the underlying transaction is
	// not cancelled, only the wait is abandoned.
	WaitForConfirmation(ctx context.Context, txID string, timeout time.Duration) (domain.ConfirmationStatus, error)
}
