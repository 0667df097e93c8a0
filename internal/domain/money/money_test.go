package money_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arroyo-erp/arroyo-api/internal/domain"
	"github.com/arroyo-erp/arroyo-api/internal/domain/money"
)

func TestRound_HalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"69.544", "69.54"},
		{"69.545", "69.55"},
		{"145.024", "145.02"},
		{"145.025", "145.03"},
		{"0", "0"},
		{"-1.005", "-1.01"},
	}
	for _, c := range cases {
		got := money.Round(decimal.RequireFromString(c.in))
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)),
			"Round(%s) = %s, esperado %s", c.in, got, c.want)
	}
}

// La suma redondea una única vez el total, nunca cada sumando:
// round(75.48 + 69.544) = 145.02, mientras que round(75.48) + round(69.544)
// daría 145.02 también pero round(69.545)+round(69.545) divergiría.
func TestSum_RedondeaSoloElTotal(t *testing.T) {
	a := decimal.RequireFromString("75.48")
	b := decimal.RequireFromString("69.544")

	total := money.Sum(a, b)
	assert.True(t, total.Equal(decimal.RequireFromString("145.02")),
		"Sum(75.48, 69.544) = %s, esperado 145.02", total)

	// Caso en que redondear cada sumando cambiaría el resultado.
	c := decimal.RequireFromString("0.004")
	d := decimal.RequireFromString("0.004")
	total = money.Sum(c, d)
	assert.True(t, total.Equal(decimal.RequireFromString("0.01")),
		"Sum(0.004, 0.004) = %s, esperado 0.01 (redondeo único del total)", total)
}

func TestSum_Vacia(t *testing.T) {
	assert.True(t, money.Sum().IsZero())
}

func TestFromFloat_RechazaNoFinitos(t *testing.T) {
	_, err := money.FromFloat(math.NaN())
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = money.FromFloat(math.Inf(1))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = money.FromFloat(math.Inf(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	v, err := money.FromFloat(145.02)
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.RequireFromString("145.02")))
}
