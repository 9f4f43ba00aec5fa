package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarketValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantText string
		wantErr  bool
	}{
		{name: "Two Decimals", input: "10458.68", wantText: "10458.68"},
		{name: "Trailing Zero", input: "10458.60", wantText: "10458.60"},
		{name: "Integer", input: "10458", wantText: "10458"},
		{name: "Surrounding Whitespace", input: " 10458.68\n", wantText: "10458.68"},
		{name: "Empty", input: "", wantErr: true},
		{name: "Not A Number", input: "error", wantErr: true},
		{name: "Zero", input: "0.00", wantErr: true},
		{name: "Negative", input: "-1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseMarketValue(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUpstream)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, v.String())
		})
	}
}

func TestMarketValue_Decimal(t *testing.T) {
	v := NewMarketValue(decimal.RequireFromString("10458.60"))
	assert.True(t, v.Decimal().Equal(decimal.RequireFromString("10458.6")))
	assert.Equal(t, "10458.60", v.String())
	assert.True(t, MarketValue{}.IsZero())
}
