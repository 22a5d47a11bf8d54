package dto

import (
	"time"

	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
)

// SubmitInvoiceRequest defines the data needed to anchor a new invoice record.
// The hash is the hex-encoded sha256 of the invoice document; a leading "0x"
// is accepted and stripped during validation.
type SubmitInvoiceRequest struct {
	Sha256Hash string `json:"sha256Hash" binding:"required,sha256hex"`
	Code       string `json:"code" binding:"required,invoicecode"`
}

// MutationResponse is returned by submit/complete/revoke once the proposed
// transaction has been broadcast and its confirmation observed (or timed out).
type MutationResponse struct {
	Status   string `json:"status"` // submitted | completed | revoked | indeterminate
	TxID     string `json:"txID"`
	Sequence uint64 `json:"sequence"`
}

// ToMutationResponse builds a MutationResponse from a coordinator handle.
func ToMutationResponse(status string, handle *domain.TxHandle) MutationResponse {
	resp := MutationResponse{Status: status}
	if handle != nil {
		resp.TxID = handle.TxID
		resp.Sequence = handle.Sequence
	}
	return resp
}

// ExistsResponse wraps the hash existence check result.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// RecordResponse defines the data returned for a registry record.
type RecordResponse struct {
	ContentHash string    `json:"contentHash"`
	Code        string    `json:"code"`
	Issuer      string    `json:"issuer"`
	SubmittedAt time.Time `json:"submittedAt"`
	Status      string    `json:"status"`
}

// ToRecordResponse converts a domain.Record to its response DTO.
func ToRecordResponse(rec *domain.Record) RecordResponse {
	return RecordResponse{
		ContentHash: rec.ContentHash,
		Code:        rec.Code,
		Issuer:      rec.Issuer,
		SubmittedAt: rec.SubmittedAt,
		Status:      string(rec.Status),
	}
}
