// Package evm implements the LedgerClient port against an EVM-compatible
// chain using go-ethereum's RPC client. It is the only package that knows
// about addresses, nonces, gas and receipts; everything above it deals in
// contract methods, sequence numbers and confirmation states.
package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/eureka-stamping/invreg-backend/internal/apperrors"
	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
	"github.com/eureka-stamping/invreg-backend/internal/core/ports"
)

const (
	readRetries      = 3
	readRetryBackoff = 200 * time.Millisecond

	broadcastRetries     = 3
	broadcastRetryPacing = 250 * time.Millisecond
)

// rpcBackend is the slice of ethclient.Client the adapter needs. Narrowing it
// keeps the adapter testable without a running node.
type rpcBackend interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Client talks to the invoice registry contract on an EVM chain.
// The signing key is a process-wide resource constructed once at startup.
type Client struct {
	backend      rpcBackend
	contract     common.Address
	registry     abi.ABI
	key          *ecdsa.PrivateKey
	signer       types.Signer
	from         common.Address
	pollInterval time.Duration
}

// Ensure Client implements the LedgerClient port
var _ ports.LedgerClient = (*Client)(nil)

// Dial connects to the RPC endpoint and prepares the signing credential.
func Dial(rpcURL string, chainID int64, privateKeyHex string, contractAddress string, pollInterval time.Duration) (*Client, error) {
	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial ledger node at %s: %w", rpcURL, err)
	}
	return NewClient(eth, chainID, privateKeyHex, contractAddress, pollInterval)
}

// NewClient builds a Client over an existing backend.
func NewClient(backend rpcBackend, chainID int64, privateKeyHex string, contractAddress string, pollInterval time.Duration) (*Client, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %w", err)
	}
	if !common.IsHexAddress(contractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", contractAddress)
	}
	parsed, err := abi.JSON(strings.NewReader(registryABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse registry ABI: %w", err)
	}
	return &Client{
		backend:      backend,
		contract:     common.HexToAddress(contractAddress),
		registry:     parsed,
		key:          key,
		signer:       types.LatestSignerForChainID(big.NewInt(chainID)),
		from:         crypto.PubkeyToAddress(key.PublicKey),
		pollInterval: pollInterval,
	}, nil
}

// SignerAddress returns the hex address of the process-wide signing account.
func (c *Client) SignerAddress() string {
	return c.from.Hex()
}

// ReadCall performs a read-only contract call against latest confirmed state.
// Transient transport failures are retried a bounded number of times; this is
// safe because reads have no side effects.
func (c *Client) ReadCall(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := c.registry.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}
	msg := ethereum.CallMsg{From: c.from, To: &c.contract, Data: data}

	var raw []byte
	for attempt := 1; ; attempt++ {
		raw, err = c.backend.CallContract(ctx, msg, nil)
		if err == nil {
			break
		}
		if attempt >= readRetries || ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %s call failed: %v", apperrors.ErrLedgerUnavailable, method, err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s call failed: %v", apperrors.ErrLedgerUnavailable, method, ctx.Err())
		case <-time.After(time.Duration(attempt) * readRetryBackoff):
		}
	}

	vals, err := c.registry.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unpack %s result: %v", apperrors.ErrLedgerUnavailable, method, err)
	}
	return normalizeValues(vals), nil
}

// PendingSequence returns the next unused nonce for the issuer, including
// transactions still waiting in the node's pending pool.
func (c *Client) PendingSequence(ctx context.Context, issuer string) (uint64, error) {
	nonce, err := c.backend.PendingNonceAt(ctx, common.HexToAddress(issuer))
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read pending nonce: %v", apperrors.ErrLedgerUnavailable, err)
	}
	return nonce, nil
}

// SubmitTx signs and broadcasts one mutation transaction. A node-side
// rejection surfaces as ErrSubmissionRejected with the node's diagnostic; the
// nonce was not accepted into the pool and is not consumed. Transport
// failures are retried by re-sending the identical signed bytes, which the
// node deduplicates by hash, so a retry can never double-submit.
func (c *Client) SubmitTx(ctx context.Context, method string, args []any, sequence uint64, fee domain.FeeParams) (string, error) {
	data, err := c.registry.Pack(method, args...)
	if err != nil {
		return "", fmt.Errorf("failed to pack %s transaction: %w", method, err)
	}

	tx := types.NewTransaction(sequence, c.contract, big.NewInt(0), fee.GasLimit, fee.GasPriceWei, data)
	signed, err := types.SignTx(tx, c.signer, c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s transaction: %w", method, err)
	}

	var lastErr error
	for attempt := 1; attempt <= broadcastRetries; attempt++ {
		err := c.backend.SendTransaction(ctx, signed)
		if err == nil || isAlreadyKnown(err) {
			// already-known means this exact transaction reached the pool,
			// typically on an attempt whose ack was lost.
			return signed.Hash().Hex(), nil
		}
		if isBroadcastRejection(err) {
			return "", fmt.Errorf("%w: %v", apperrors.ErrSubmissionRejected, err)
		}
		lastErr = err
		if attempt >= broadcastRetries || ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: broadcast failed: %v", apperrors.ErrLedgerUnavailable, ctx.Err())
		case <-time.After(broadcastRetryPacing):
		}
	}
	return "", fmt.Errorf("%w: broadcast failed: %v", apperrors.ErrLedgerUnavailable, lastErr)
}

// WaitForConfirmation polls for the transaction receipt until it appears or
// the timeout elapses. Timing out returns Indeterminate with a nil error: the
// transaction cannot be withdrawn, only the wait is abandoned.
func (c *Client) WaitForConfirmation(ctx context.Context, txID string, timeout time.Duration) (domain.ConfirmationStatus, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	hash := common.HexToHash(txID)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(waitCtx, hash)
		if err == nil {
			if receipt.Status == types.ReceiptStatusSuccessful {
				return domain.ConfirmationConfirmed, nil
			}
			return domain.ConfirmationRejected, nil
		}
		// ethereum.NotFound means not yet mined; anything else is a transport
		// blip we ride out until the deadline.
		select {
		case <-waitCtx.Done():
			return domain.ConfirmationIndeterminate, nil
		case <-ticker.C:
		}
	}
}

// normalizeValues converts go-ethereum types leaking out of abi.Unpack into
// the neutral forms the port promises: addresses become hex strings.
func normalizeValues(vals []any) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		if addr, ok := v.(common.Address); ok {
			out[i] = addr.Hex()
			continue
		}
		out[i] = v
	}
	return out
}

// broadcastRejections are node error fragments that mean the transaction
// itself was declined, as opposed to the transport failing.
var broadcastRejections = []string{
	"nonce too low",
	"nonce too high",
	"replacement transaction underpriced",
	"transaction underpriced",
	"insufficient funds",
	"intrinsic gas too low",
	"exceeds block gas limit",
	"execution reverted",
}

// isAlreadyKnown reports whether the node declined the broadcast because it
// already holds this exact transaction.
func isAlreadyKnown(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already known") || strings.Contains(msg, "known transaction")
}

func isBroadcastRejection(err error) bool {
	if err == nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, frag := range broadcastRejections {
		if strings.Contains(msg, frag) {
			return true
		}
	}
	return false
}
