package soc

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Money representa montos en unidades menores de moneda (enteros).
// Toda la aritmética de porcentajes se hace sobre enteros con reglas
// explícitas de truncado/redondeo; nunca en punto flotante.
type Money int64

const (
	// PorcRetencion porcentaje de retención obligatoria sobre solicitudes grandes
	PorcRetencion = 5

	// UmbralRetencionDefault monto sobre el cual aplica la retención del 5%
	UmbralRetencionDefault Money = 500_000
)

// UmbralRetencion umbral vigente; configurable al arrancar el servicio
var UmbralRetencion = UmbralRetencionDefault

// PorcentajeDe calcula floor(total * pct / 100)
func PorcentajeDe(total Money, pct int) Money {
	if total <= 0 || pct <= 0 {
		return 0
	}
	return total * Money(pct) / 100
}

// PorcentajeRedondeado calcula round(total * pct / 100) con redondeo half-up
func PorcentajeRedondeado(total Money, pct int) Money {
	if total <= 0 || pct <= 0 {
		return 0
	}
	return (total*Money(pct) + 50) / 100
}

var errMontoDecimal = errors.New("el monto debe ser un número con a lo más dos decimales")

// DesdeDecimal convierte un monto decimal (entrada de API) a unidades menores.
// Rechaza más de dos decimales para no perder precisión en silencio.
func DesdeDecimal(d decimal.Decimal) (Money, error) {
	centavos := d.Shift(2)
	if !centavos.IsInteger() {
		return 0, errMontoDecimal
	}
	if !centavos.BigInt().IsInt64() {
		return 0, errMontoDecimal
	}
	return Money(centavos.IntPart()), nil
}

// Decimal devuelve el monto como decimal en unidades mayores (salida de API)
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}
