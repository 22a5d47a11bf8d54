package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/eureka-stamping/invreg-backend/internal/apperrors"
	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
	"github.com/eureka-stamping/invreg-backend/internal/core/ports"
)

// SubmissionCoordinator turns a validated mutation intent into exactly one
// outgoing ledger transaction and tracks it to confirmation.
//
// Sequence numbers are issuer-scoped and strictly increasing; reusing or
// skipping one gets the transaction rejected or stuck. The coordinator
// therefore holds an exclusive critical section per issuer around
// "read pending sequence -> build/sign -> broadcast". Confirmation waiting
// happens outside the critical section so one slow confirmation does not
// stall the next submission.
//
// The coordinator never re-broadcasts on its own: after an Indeterminate
// outcome the original transaction may still confirm, and a blind retry of a
// logically-equivalent intent risks double-submission. Callers must re-check
// registry state first.
type SubmissionCoordinator struct {
	BaseService
	ledger         ports.LedgerClient
	fees           map[domain.MutationKind]domain.FeeParams
	confirmTimeout time.Duration

	mu      sync.Mutex
	issuers map[string]*sync.Mutex
}

// NewSubmissionCoordinator creates a coordinator with fixed per-kind fee
// budgets and a default confirmation timeout.
func NewSubmissionCoordinator(ledger ports.LedgerClient, fees map[domain.MutationKind]domain.FeeParams, confirmTimeout time.Duration) *SubmissionCoordinator {
	return &SubmissionCoordinator{
		ledger:         ledger,
		fees:           fees,
		confirmTimeout: confirmTimeout,
		issuers:        make(map[string]*sync.Mutex),
	}
}

// issuerLock returns the mutex serializing submissions for one issuer,
// creating it on first use.
func (c *SubmissionCoordinator) issuerLock(issuer string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.issuers[issuer]
	if !ok {
		l = &sync.Mutex{}
		c.issuers[issuer] = l
	}
	return l
}

// Propose broadcasts one transaction for the mutation and waits for its
// confirmation. The returned handle is non-nil whenever a transaction was
// broadcast, including on ErrSubmissionRejected and ErrIndeterminate, so the
// caller can surface the transaction ID.
//
// A broadcast rejection does not consume the sequence number: nothing entered
// the node's pending pool, and the next Propose re-reads it.
func (c *SubmissionCoordinator) Propose(ctx context.Context, kind domain.MutationKind, args []any) (*domain.TxHandle, error) {
	fee, ok := c.fees[kind]
	if !ok {
		return nil, fmt.Errorf("no fee budget configured for mutation %q", kind)
	}
	issuer := c.ledger.SignerAddress()

	lock := c.issuerLock(issuer)
	lock.Lock()
	sequence, err := c.ledger.PendingSequence(ctx, issuer)
	if err != nil {
		lock.Unlock()
		c.LogError(ctx, err, "Failed to read pending sequence",
			slog.String("issuer", issuer),
			slog.String("mutation", string(kind)))
		return nil, err
	}

	txID, err := c.ledger.SubmitTx(ctx, kind.ContractMethod(), args, sequence, fee)
	lock.Unlock()
	if err != nil {
		c.LogError(ctx, err, "Broadcast failed",
			slog.String("issuer", issuer),
			slog.String("mutation", string(kind)),
			slog.Uint64("sequence", sequence))
		return nil, err
	}

	handle := &domain.TxHandle{
		TxID:        txID,
		Sequence:    sequence,
		Issuer:      issuer,
		Status:      domain.ConfirmationIndeterminate,
		BroadcastAt: time.Now().UTC(),
	}
	c.LogInfo(ctx, "Transaction broadcast",
		slog.String("tx_id", txID),
		slog.String("mutation", string(kind)),
		slog.Uint64("sequence", sequence))

	status, err := c.ledger.WaitForConfirmation(ctx, txID, c.confirmTimeout)
	if err != nil {
		// Transport failed mid-wait: the transaction is out and its fate is
		// unknown. The broadcast cannot be withdrawn.
		c.LogError(ctx, err, "Confirmation wait failed",
			slog.String("tx_id", txID))
		return handle, fmt.Errorf("confirmation of %s unknown: %w", txID, apperrors.ErrIndeterminate)
	}

	handle.Status = status
	switch status {
	case domain.ConfirmationConfirmed:
		c.LogInfo(ctx, "Transaction confirmed", slog.String("tx_id", txID))
		return handle, nil
	case domain.ConfirmationRejected:
		c.LogInfo(ctx, "Transaction reverted on ledger", slog.String("tx_id", txID))
		return handle, fmt.Errorf("transaction %s reverted: %w", txID, apperrors.ErrSubmissionRejected)
	default:
		c.LogInfo(ctx, "Transaction unconfirmed before timeout",
			slog.String("tx_id", txID),
			slog.Duration("timeout", c.confirmTimeout))
		return handle, fmt.Errorf("transaction %s unconfirmed after %s: %w", txID, c.confirmTimeout, apperrors.ErrIndeterminate)
	}
}
