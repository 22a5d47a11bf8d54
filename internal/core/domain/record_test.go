package domain_test

import (
	"testing"

	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromFlags(t *testing.T) {
	tests := []struct {
		name      string
		revoked   bool
		completed bool
		want      domain.RecordStatus
	}{
		{name: "neither flag set", want: domain.StatusSubmitted},
		{name: "completed only", completed: true, want: domain.StatusCompleted},
		{name: "revoked only", revoked: true, want: domain.StatusRevoked},
		{name: "both flags set, revoked wins", revoked: true, completed: true, want: domain.StatusRevoked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.StatusFromFlags(tt.revoked, tt.completed))
		})
	}
}

func TestRecord_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.RecordStatus
		target domain.RecordStatus
		want   bool
	}{
		{name: "submitted to completed", from: domain.StatusSubmitted, target: domain.StatusCompleted, want: true},
		{name: "submitted to revoked", from: domain.StatusSubmitted, target: domain.StatusRevoked, want: true},
		{name: "completed is terminal", from: domain.StatusCompleted, target: domain.StatusRevoked, want: false},
		{name: "revoked is terminal", from: domain.StatusRevoked, target: domain.StatusCompleted, want: false},
		{name: "no transition back to submitted", from: domain.StatusCompleted, target: domain.StatusSubmitted, want: false},
		{name: "submitted cannot re-enter submitted", from: domain.StatusSubmitted, target: domain.StatusSubmitted, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := domain.Record{Status: tt.from}
			assert.Equal(t, tt.want, rec.CanTransitionTo(tt.target))
		})
	}
}

func TestRecordStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.StatusSubmitted.IsTerminal())
	assert.True(t, domain.StatusCompleted.IsTerminal())
	assert.True(t, domain.StatusRevoked.IsTerminal())
}

func TestCompany_EmailDomain(t *testing.T) {
	assert.Equal(t, "acme.example", domain.Company{Email: "billing@acme.example"}.EmailDomain())
	assert.Equal(t, "", domain.Company{Email: "not-an-email"}.EmailDomain())
}
