package services_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/eureka-stamping/invreg-backend/internal/apperrors"
	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
	portssvc "github.com/eureka-stamping/invreg-backend/internal/core/ports/services"
	"github.com/eureka-stamping/invreg-backend/internal/core/services"
	"github.com/eureka-stamping/invreg-backend/internal/dto"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// fakeLedger is a stateful in-memory stand-in for the registry contract. It
// enforces the contract's own rules at confirmation time: hash and code
// uniqueness, issuer-only transitions, terminal states. Broadcasts enter a
// pending pool and take effect when the confirmation is observed, so two
// concurrent submissions of the same hash race exactly as they would on a
// real chain with one winner.
type fakeLedger struct {
	mu      sync.Mutex
	nonce   uint64
	hashes  map[string]bool
	records map[string]*fakeRecord
	pending map[string]fakeMutation
}

type fakeRecord struct {
	hash      string
	code      string
	issuer    string
	timestamp int64
	revoked   bool
	completed bool
}

type fakeMutation struct {
	method string
	args   []any
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		hashes:  make(map[string]bool),
		records: make(map[string]*fakeRecord),
		pending: make(map[string]fakeMutation),
	}
}

func (f *fakeLedger) SignerAddress() string { return testSignerAddress }

func (f *fakeLedger) ReadCall(_ context.Context, method string, args ...any) ([]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch method {
	case "shaExists":
		return []any{f.hashes[args[0].(string)]}, nil
	case "getInvoice":
		rec, ok := f.records[args[0].(string)]
		if !ok {
			return []any{"", "", "0x0000000000000000000000000000000000000000", big.NewInt(0), false, false}, nil
		}
		return []any{rec.hash, rec.code, rec.issuer, big.NewInt(rec.timestamp), rec.revoked, rec.completed}, nil
	}
	return nil, fmt.Errorf("unknown method %q", method)
}

func (f *fakeLedger) PendingSequence(_ context.Context, _ string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nonce, nil
}

func (f *fakeLedger) SubmitTx(_ context.Context, method string, args []any, sequence uint64, _ domain.FeeParams) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sequence != f.nonce {
		return "", fmt.Errorf("%w: nonce too low", apperrors.ErrSubmissionRejected)
	}
	f.nonce++
	txID := fmt.Sprintf("0xtx%04d", sequence)
	f.pending[txID] = fakeMutation{method: method, args: args}
	return txID, nil
}

func (f *fakeLedger) WaitForConfirmation(_ context.Context, txID string, _ time.Duration) (domain.ConfirmationStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.pending[txID]
	if !ok {
		return domain.ConfirmationIndeterminate, nil
	}
	delete(f.pending, txID)

	switch m.method {
	case "submitInvoice":
		hash := m.args[0].(string)
		code := m.args[1].(string)
		if f.hashes[hash] {
			return domain.ConfirmationRejected, nil
		}
		if _, taken := f.records[code]; taken {
			return domain.ConfirmationRejected, nil
		}
		f.hashes[hash] = true
		f.records[code] = &fakeRecord{
			hash:      hash,
			code:      code,
			issuer:    testSignerAddress,
			timestamp: time.Now().Unix(),
		}
		return domain.ConfirmationConfirmed, nil
	case "completeInvoice", "revokeInvoice":
		rec, ok := f.records[m.args[0].(string)]
		if !ok || rec.revoked || rec.completed || !strings.EqualFold(rec.issuer, testSignerAddress) {
			return domain.ConfirmationRejected, nil
		}
		if m.method == "completeInvoice" {
			rec.completed = true
		} else {
			rec.revoked = true
		}
		return domain.ConfirmationConfirmed, nil
	}
	return domain.ConfirmationRejected, nil
}

// --- Scenario Suite ---
type RegistryScenarioTestSuite struct {
	suite.Suite
	ledger  *fakeLedger
	service portssvc.RegistrySvcFacade
}

func (suite *RegistryScenarioTestSuite) SetupTest() {
	suite.ledger = newFakeLedger()
	coordinator := services.NewSubmissionCoordinator(suite.ledger, testFees(), 5*time.Second)
	suite.service = services.NewRegistryService(suite.ledger, coordinator)
}

func (suite *RegistryScenarioTestSuite) TestFullLifecycleWalk() {
	ctx := context.Background()
	hash := strings.Repeat("aa", 32)

	_, err := suite.service.SubmitInvoice(ctx, dto.SubmitInvoiceRequest{Sha256Hash: hash, Code: "INV-1"})
	suite.Require().NoError(err)

	exists, err := suite.service.HashExists(ctx, hash)
	suite.Require().NoError(err)
	suite.True(exists)

	_, err = suite.service.CompleteInvoice(ctx, "INV-1")
	suite.Require().NoError(err)

	rec, err := suite.service.GetInvoice(ctx, "INV-1")
	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, rec.Status)

	// A completed record can no longer be revoked.
	_, err = suite.service.RevokeInvoice(ctx, "INV-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)

	rec, err = suite.service.GetInvoice(ctx, "INV-1")
	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, rec.Status, "failed revoke must not move the status")
}

func (suite *RegistryScenarioTestSuite) TestSequentialDuplicateHash() {
	ctx := context.Background()
	hash := strings.Repeat("bb", 32)

	_, err := suite.service.SubmitInvoice(ctx, dto.SubmitInvoiceRequest{Sha256Hash: hash, Code: "INV-2"})
	suite.Require().NoError(err)

	// Once the first is confirmed, the second is caught by the precheck.
	_, err = suite.service.SubmitInvoice(ctx, dto.SubmitInvoiceRequest{Sha256Hash: hash, Code: "INV-3"})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = suite.service.GetInvoice(ctx, "INV-3")
	suite.ErrorIs(err, apperrors.ErrNotFound, "losing submission must not create a record")
}

func (suite *RegistryScenarioTestSuite) TestConcurrentDuplicateHash_ExactlyOneWins() {
	// Two truly concurrent submissions of one hash under different codes:
	// never both succeed; the loser fails either at the precheck or on the
	// ledger's own uniqueness check.
	ctx := context.Background()
	hash := strings.Repeat("cc", 32)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	codes := []string{"INV-4", "INV-5"}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = suite.service.SubmitInvoice(ctx, dto.SubmitInvoiceRequest{Sha256Hash: hash, Code: codes[i]})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		suite.True(
			errors.Is(err, apperrors.ErrDuplicate) || errors.Is(err, apperrors.ErrSubmissionRejected),
			"loser must fail duplicate or rejected, got: %v", err)
	}
	require.Equal(suite.T(), 1, successes, "exactly one of two contending submissions must win")

	recorded := 0
	for _, code := range codes {
		if _, err := suite.service.GetInvoice(ctx, code); err == nil {
			recorded++
		}
	}
	suite.Equal(1, recorded, "only the winner's record may exist")
}

func (suite *RegistryScenarioTestSuite) TestGetInvoice_UnknownCodeIsNotFound() {
	ctx := context.Background()

	rec, err := suite.service.GetInvoice(ctx, "INV-999")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(rec, "a miss must not yield an empty default record")
}

func TestRegistryScenarioTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryScenarioTestSuite))
}
