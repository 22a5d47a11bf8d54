package domain

import "time"

// RecordStatus is the lifecycle state of a registry Record.
type RecordStatus string

const (
	StatusSubmitted RecordStatus = "SUBMITTED"
	StatusCompleted RecordStatus = "COMPLETED"
	StatusRevoked   RecordStatus = "REVOKED"
)

// IsTerminal reports whether the status admits no further transitions.
// Completed and Revoked records never change again.
func (s RecordStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRevoked
}

// StatusFromFlags derives a RecordStatus from the flags the contract stores.
// Revoked wins if both flags are somehow set; the contract itself forbids that
// combination, so this is only reachable against a misbehaving contract.
func StatusFromFlags(revoked, completed bool) RecordStatus {
	switch {
	case revoked:
		return StatusRevoked
	case completed:
		return StatusCompleted
	default:
		return StatusSubmitted
	}
}

// Record is the on-ledger proof-of-integrity entry for one invoice document.
// The content hash is the primary identity and is globally unique for the
// lifetime of the registry; records are never deleted, only their status moves.
type Record struct {
	ContentHash string       `json:"contentHash"` // lowercase hex sha256, no 0x prefix
	Code        string       `json:"code"`        // business reference, e.g. "INV-2025-2004"
	Issuer      string       `json:"issuer"`      // ledger address that submitted the record
	SubmittedAt time.Time    `json:"submittedAt"` // ledger-assigned, immutable
	Status      RecordStatus `json:"status"`
}

// CanTransitionTo reports whether moving the record to target is a legal
// lifecycle step. Only Submitted records may move, and only into a terminal
// state.
func (r Record) CanTransitionTo(target RecordStatus) bool {
	if r.Status != StatusSubmitted {
		return false
	}
	return target == StatusCompleted || target == StatusRevoked
}
