package money_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/amirasaad/atm/pkg/domain/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		cents   int64
		wantErr error
	}{
		{"whole dollars", "250", 25000, nil},
		{"two decimals", "250.00", 25000, nil},
		{"one decimal", "0.5", 50, nil},
		{"leading dot", ".05", 5, nil},
		{"dollar sign and separators", " $1,250.75 ", 125075, nil},
		{"negative", "-10.25", -1025, nil},
		{"zero", "0", 0, nil},
		{"too many decimals", "100.123", 0, money.ErrInvalidAmount},
		{"letters", "ten", 0, money.ErrInvalidAmount},
		{"empty", "", 0, money.ErrInvalidAmount},
		{"exponent", "1e3", 0, money.ErrInvalidAmount},
		{"fraction", "1/3", 0, money.ErrInvalidAmount},
		{"overflow", "999999999999999999999", 0, money.ErrAmountOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := money.Parse(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cents, m.Amount())
			assert.Equal(t, money.USD, m.Currency())
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	usd100 := money.MustParse("100.00")
	usd50 := money.MustParse("50.00")

	t.Run("Add", func(t *testing.T) {
		result, err := usd100.Add(usd50)
		require.NoError(t, err)
		assert.Equal(t, int64(15000), result.Amount())
	})

	t.Run("Subtract", func(t *testing.T) {
		result, err := usd100.Subtract(usd50)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), result.Amount())
	})

	t.Run("Add overflow", func(t *testing.T) {
		_, err := money.NewFromSmallestUnit(math.MaxInt64).Add(money.NewFromSmallestUnit(1))
		assert.ErrorIs(t, err, money.ErrAmountOverflow)
	})

	t.Run("Repeated cents do not drift", func(t *testing.T) {
		total := money.Zero()
		dime := money.MustParse("0.10")
		for range 1000 {
			var err error
			total, err = total.Add(dime)
			require.NoError(t, err)
		}
		assert.Equal(t, "100.00", total.String())
	})
}

func TestMoney_Comparison(t *testing.T) {
	usd100 := money.MustParse("100")
	usd50 := money.MustParse("50")

	assert.True(t, usd50.LessThan(usd100))
	assert.False(t, usd100.LessThan(usd50))
	assert.True(t, usd100.Equals(money.NewFromSmallestUnit(10000)))
	assert.True(t, usd100.IsPositive())
	assert.True(t, usd100.Negate().IsNegative())
	assert.True(t, money.Zero().IsZero())
}

func TestMoney_Format(t *testing.T) {
	tests := []struct {
		cents   int64
		str     string
		display string
	}{
		{125000, "1250.00", "$1250.00"},
		{5, "0.05", "$0.05"},
		{0, "0.00", "$0.00"},
		{-1025, "-10.25", "-$10.25"},
		{math.MinInt64, "-92233720368547758.08", "-$92233720368547758.08"},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			m := money.NewFromSmallestUnit(tt.cents)
			assert.Equal(t, tt.str, m.String())
			if tt.cents != math.MinInt64 {
				assert.Equal(t, tt.display, m.Display())
			}
		})
	}
}

func TestMoney_JSON(t *testing.T) {
	var payload struct {
		Amount money.Money `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"12.34"}`), &payload))
	assert.Equal(t, int64(1234), payload.Amount.Amount())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"12.34"}`, string(out))

	err = json.Unmarshal([]byte(`{"amount":"abc"}`), &payload)
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
}
