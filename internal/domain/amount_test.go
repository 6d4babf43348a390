package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain", "113000", "113000", false},
		{"cents", "50000.25", "50000.25", false},
		{"small exponent", "1e5", "100000", false},
		{"at max", "1000000000000", "1000000000000", false},
		{"negative passes through", "-1", "-1", false},
		{"not a number", "lots", "", true},
		{"above max", "1000000000000.01", "", true},
		{"huge exponent", "1e3000000", "", true},
		{"zero with huge exponent", "0e3000000", "", true},
		{"tiny exponent", "1e-3000000", "", true},
		{"below negative max", "-2e12", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount("income", tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCheckAmount_NamesTheValue(t *testing.T) {
	err := CheckAmount("target", MaxAmount.Mul(MaxAmount))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target")
}
