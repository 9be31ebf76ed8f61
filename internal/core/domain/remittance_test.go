package domain_test

import (
	"testing"
	"time"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveRemittanceStatus(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	past := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	future := time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC)

	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	tests := []struct {
		name    string
		current domain.RemittanceStatus
		due     decimal.Decimal
		paid    decimal.Decimal
		dueDate *time.Time
		want    domain.RemittanceStatus
	}{
		{"nothing paid, before due date", domain.RemittancePending, d("850.00"), d("0"), &future, domain.RemittancePending},
		{"partial payment", domain.RemittancePending, d("850.00"), d("500.00"), &future, domain.RemittancePartiallyPaid},
		{"fully paid", domain.RemittancePartiallyPaid, d("850.00"), d("850.00"), &future, domain.RemittancePaid},
		{"overpaid counts as paid", domain.RemittancePending, d("850.00"), d("900.00"), &future, domain.RemittancePaid},
		{"overpaid past due date stays paid", domain.RemittancePartiallyPaid, d("850.00"), d("900.00"), &past, domain.RemittancePaid},
		{"nothing paid past due date", domain.RemittancePending, d("850.00"), d("0"), &past, domain.RemittanceOverdue},
		{"partial payment past due date", domain.RemittancePartiallyPaid, d("850.00"), d("500.00"), &past, domain.RemittanceOverdue},
		{"no due date never goes overdue", domain.RemittancePending, d("850.00"), d("0"), nil, domain.RemittancePending},
		{"canceled is sticky", domain.RemittanceCanceled, d("850.00"), d("850.00"), &future, domain.RemittanceCanceled},
		{"zero due amount stays pending", domain.RemittancePending, d("0"), d("0"), &future, domain.RemittancePending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DeriveRemittanceStatus(tt.current, tt.due, tt.paid, tt.dueDate, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectiveRemittanceRate(t *testing.T) {
	orgDefault := decimal.RequireFromString("85")
	wsRate := decimal.RequireFromString("90")
	custom := decimal.RequireFromString("95")

	team := domain.Team{}
	ws := domain.Workspace{RemittanceRate: &wsRate}

	assert.True(t, wsRate.Equal(domain.EffectiveRemittanceRate(team, ws, orgDefault)))

	team.CustomRemittanceRate = &custom
	assert.True(t, custom.Equal(domain.EffectiveRemittanceRate(team, ws, orgDefault)))

	team.CustomRemittanceRate = nil
	ws.RemittanceRate = nil
	assert.True(t, orgDefault.Equal(domain.EffectiveRemittanceRate(team, ws, orgDefault)))
}
