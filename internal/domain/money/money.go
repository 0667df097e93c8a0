// Package money centraliza el redondeo y la suma de importes monetarios.
//
// Regla de oro: toda suma sobre una colección redondea el resultado final,
// nunca cada sumando, para evitar la deriva acumulada de redondeos
// (75.48 + 69.544 debe dar 145.02, no 145.03).
package money

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/arroyo-erp/arroyo-api/internal/domain"
)

// Precision decimales con los que se almacena todo campo monetario.
const Precision = 2

// Round redondea un importe a 2 decimales (half-up).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Precision)
}

// RoundTo redondea a los decimales indicados (half-up).
func RoundTo(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// Sum suma todos los importes y redondea una única vez el total.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Round(total)
}

// FromFloat convierte un float a decimal validando que sea finito.
// NaN o ±Inf es una violación de contrato del caller: falla rápido.
func FromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return decimal.NewFromFloat(f), nil
}
