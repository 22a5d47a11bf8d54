package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/eureka-stamping/invreg-backend/internal/apperrors"
	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
	"github.com/eureka-stamping/invreg-backend/internal/core/ports"
	portssvc "github.com/eureka-stamping/invreg-backend/internal/core/ports/services"
	"github.com/eureka-stamping/invreg-backend/internal/dto"
	"github.com/eureka-stamping/invreg-backend/internal/utils"
)

// registryService implements the RegistrySvcFacade interface. It holds the
// lifecycle rules for registry records and evaluates every precondition
// against a fresh read of ledger state immediately before proposing a
// transaction. The ledger's own serialized execution remains the final
// arbiter: a passing local check only avoids wasting fees on transactions
// certain to fail, it does not provide atomicity.
type registryService struct {
	BaseService
	ledger      ports.LedgerClient
	coordinator *SubmissionCoordinator
}

// NewRegistryService creates a new registry service.
func NewRegistryService(ledger ports.LedgerClient, coordinator *SubmissionCoordinator) portssvc.RegistrySvcFacade {
	return &registryService{
		ledger:      ledger,
		coordinator: coordinator,
	}
}

// Ensure registryService implements the RegistrySvcFacade interface
var _ portssvc.RegistrySvcFacade = (*registryService)(nil)

func (s *registryService) HashExists(ctx context.Context, sha256Hex string) (bool, error) {
	hash, err := utils.NormalizeSHA256(sha256Hex)
	if err != nil {
		return false, err
	}
	return s.hashExists(ctx, hash)
}

// hashExists queries the ledger for a normalized hash.
func (s *registryService) hashExists(ctx context.Context, hash string) (bool, error) {
	vals, err := s.ledger.ReadCall(ctx, "shaExists", hash)
	if err != nil {
		s.LogError(ctx, err, "shaExists read failed", slog.String("content_hash", hash))
		return false, err
	}
	exists, ok := firstValue[bool](vals)
	if !ok {
		return false, fmt.Errorf("%w: malformed shaExists result", apperrors.ErrLedgerUnavailable)
	}
	return exists, nil
}

func (s *registryService) GetInvoice(ctx context.Context, code string) (*domain.Record, error) {
	if err := utils.ValidateInvoiceCode(code); err != nil {
		return nil, err
	}
	return s.getInvoice(ctx, code)
}

// getInvoice reads and decodes the record for a code. A miss is ErrNotFound,
// not an error from the ledger: the contract returns a zero-value struct for
// unknown codes.
func (s *registryService) getInvoice(ctx context.Context, code string) (*domain.Record, error) {
	vals, err := s.ledger.ReadCall(ctx, "getInvoice", code)
	if err != nil {
		s.LogError(ctx, err, "getInvoice read failed", slog.String("code", code))
		return nil, err
	}
	rec, err := decodeRecord(vals)
	if err != nil {
		return nil, err
	}
	if rec.ContentHash == "" {
		return nil, apperrors.ErrNotFound
	}
	return rec, nil
}

func (s *registryService) SubmitInvoice(ctx context.Context, req dto.SubmitInvoiceRequest) (*domain.TxHandle, error) {
	hash, err := utils.NormalizeSHA256(req.Sha256Hash)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateInvoiceCode(req.Code); err != nil {
		return nil, err
	}

	// Precondition: the content hash must be globally new. Hashes are never
	// overwritten or deleted, so an existing record is a hard duplicate.
	exists, err := s.hashExists(ctx, hash)
	if err != nil {
		return nil, err
	}
	if exists {
		s.LogDebug(ctx, "Duplicate content hash rejected", slog.String("content_hash", hash))
		return nil, fmt.Errorf("content hash %s already registered: %w", hash, apperrors.ErrDuplicate)
	}

	// Codes stay taken forever, revoked or not: the registry is a
	// non-repudiation log and a code must keep resolving to the record it
	// once named.
	if _, err := s.getInvoice(ctx, req.Code); err == nil {
		s.LogDebug(ctx, "Invoice code already in use", slog.String("code", req.Code))
		return nil, fmt.Errorf("invoice code %s already in use: %w", req.Code, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	handle, err := s.coordinator.Propose(ctx, domain.MutationSubmit, []any{hash, req.Code})
	if err != nil {
		return handle, err
	}
	s.LogInfo(ctx, "Invoice record anchored",
		slog.String("content_hash", hash),
		slog.String("code", req.Code),
		slog.String("tx_id", handle.TxID))
	return handle, nil
}

func (s *registryService) CompleteInvoice(ctx context.Context, code string) (*domain.TxHandle, error) {
	return s.transition(ctx, code, domain.MutationComplete, domain.StatusCompleted)
}

func (s *registryService) RevokeInvoice(ctx context.Context, code string) (*domain.TxHandle, error) {
	return s.transition(ctx, code, domain.MutationRevoke, domain.StatusRevoked)
}

// transition checks the lifecycle precondition for a terminal move and
// proposes it. Order matters: a non-issuer caller always gets Unauthorized,
// regardless of the record's status.
func (s *registryService) transition(ctx context.Context, code string, kind domain.MutationKind, target domain.RecordStatus) (*domain.TxHandle, error) {
	if err := utils.ValidateInvoiceCode(code); err != nil {
		return nil, err
	}

	rec, err := s.getInvoice(ctx, code)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(rec.Issuer, s.ledger.SignerAddress()) {
		s.LogDebug(ctx, "Mutation by non-issuer rejected",
			slog.String("code", code),
			slog.String("record_issuer", rec.Issuer),
			slog.String("caller", s.ledger.SignerAddress()))
		return nil, fmt.Errorf("record %s was issued by %s: %w", code, rec.Issuer, apperrors.ErrUnauthorized)
	}
	if !rec.CanTransitionTo(target) {
		s.LogDebug(ctx, "Illegal lifecycle transition rejected",
			slog.String("code", code),
			slog.String("current_status", string(rec.Status)),
			slog.String("target_status", string(target)))
		return nil, fmt.Errorf("record %s is %s: %w", code, rec.Status, apperrors.ErrInvalidState)
	}

	handle, err := s.coordinator.Propose(ctx, kind, []any{code})
	if err != nil {
		return handle, err
	}
	s.LogInfo(ctx, "Invoice record transitioned",
		slog.String("code", code),
		slog.String("target_status", string(target)),
		slog.String("tx_id", handle.TxID))
	return handle, nil
}

// decodeRecord maps the getInvoice tuple
// (hash, code, issuer, timestamp, revoked, completed) into a domain.Record.
func decodeRecord(vals []any) (*domain.Record, error) {
	if len(vals) != 6 {
		return nil, fmt.Errorf("%w: getInvoice returned %d values, want 6", apperrors.ErrLedgerUnavailable, len(vals))
	}
	hash, ok1 := vals[0].(string)
	code, ok2 := vals[1].(string)
	issuer, ok3 := vals[2].(string)
	ts, ok4 := vals[3].(*big.Int)
	revoked, ok5 := vals[4].(bool)
	completed, ok6 := vals[5].(bool)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 {
		return nil, fmt.Errorf("%w: malformed getInvoice result", apperrors.ErrLedgerUnavailable)
	}
	return &domain.Record{
		ContentHash: strings.ToLower(strings.TrimPrefix(hash, "0x")),
		Code:        code,
		Issuer:      issuer,
		SubmittedAt: time.Unix(ts.Int64(), 0).UTC(),
		Status:      domain.StatusFromFlags(revoked, completed),
	}, nil
}

// firstValue extracts a typed first element from a read-call result.
func firstValue[T any](vals []any) (T, bool) {
	var zero T
	if len(vals) == 0 {
		return zero, false
	}
	v, ok := vals[0].(T)
	if !ok {
		return zero, false
	}
	return v, true
}
