package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2.345", "2.35"},
		{"2.344", "2.34"},
		{"10", "10"},
		{"0.005", "0.01"},
		{"99.995", "100"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Round(decimal.RequireFromString(tt.in))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestLineAmount(t *testing.T) {
	assert.True(t, decimal.RequireFromString("37.50").Equal(LineAmount(3, decimal.RequireFromString("12.5"))))
	// unit price is rounded before multiplication
	assert.True(t, decimal.RequireFromString("3.03").Equal(LineAmount(3, decimal.RequireFromString("1.005"))))
}

func TestSum_EqualsSumOfRoundedLines(t *testing.T) {
	prices := []string{"0.333", "19.999", "7.125", "1.01"}
	var lines []decimal.Decimal
	expected := decimal.Zero
	for i, p := range prices {
		line := LineAmount(i+1, decimal.RequireFromString(p))
		lines = append(lines, line)
		expected = expected.Add(line)
	}

	assert.True(t, expected.Equal(Sum(lines...)))
}

func TestIsPositive(t *testing.T) {
	assert.True(t, IsPositive(decimal.RequireFromString("0.01")))
	assert.False(t, IsPositive(decimal.RequireFromString("0.004")))
	assert.False(t, IsPositive(decimal.Zero))
}
