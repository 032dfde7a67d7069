package ledger

import (
	"testing"

	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestValidateConsumption_WithinCapacity(t *testing.T) {
	balance, err := ValidateConsumption(d("100"), d("40"), d("60"))
	require.NoError(t, err)
	assert.True(t, balance.Consumed.Equal(d("100")))
	assert.True(t, balance.Remaining.IsZero())
}

func TestValidateConsumption_Overflow(t *testing.T) {
	_, err := ValidateConsumption(d("100"), d("40"), d("60.01"))
	require.Error(t, err)

	domainErr, ok := err.(*shared.DomainError)
	require.True(t, ok)
	assert.Equal(t, "QUANTITY_EXCEEDED", domainErr.Code)
	assert.Contains(t, domainErr.Message, "60.01")
	assert.Contains(t, domainErr.Message, "60")
}

func TestValidateConsumption_ExhaustedCapacity(t *testing.T) {
	_, err := ValidateConsumption(d("100"), d("100"), d("1"))
	require.Error(t, err)

	domainErr, ok := err.(*shared.DomainError)
	require.True(t, ok)
	assert.Equal(t, "QUANTITY_EXCEEDED", domainErr.Code)
}

func TestValidateConsumption_NonPositiveRequest(t *testing.T) {
	tests := []struct {
		name      string
		requested string
	}{
		{"zero", "0"},
		{"negative", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateConsumption(d("100"), d("0"), d(tt.requested))
			require.Error(t, err)
		})
	}
}

func TestValidateConsumption_NegativePriorTreatedAsZero(t *testing.T) {
	balance, err := ValidateConsumption(d("10"), d("-3"), d("10"))
	require.NoError(t, err)
	assert.True(t, balance.Remaining.IsZero())
}

func TestValidateConsumption_FractionalQuantities(t *testing.T) {
	balance, err := ValidateConsumption(d("7.5"), d("2.25"), d("5.25"))
	require.NoError(t, err)
	assert.True(t, balance.Remaining.IsZero())

	_, err = ValidateConsumption(d("7.5"), d("2.25"), d("5.26"))
	require.Error(t, err)
}
