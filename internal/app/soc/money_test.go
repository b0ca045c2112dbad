package soc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPorcentajeDe(t *testing.T) {
	// Truncado explícito hacia abajo, nunca punto flotante
	assert.Equal(t, Money(333), PorcentajeDe(33_350, 1))
	assert.Equal(t, Money(0), PorcentajeDe(99, 0))
	assert.Equal(t, Money(0), PorcentajeDe(-100, 5))
	assert.Equal(t, Money(50_000), PorcentajeDe(1_000_000, 5))
}

func TestPorcentajeRedondeado(t *testing.T) {
	assert.Equal(t, Money(334), PorcentajeRedondeado(33_350, 1)) // ,5 sube
	assert.Equal(t, Money(333), PorcentajeRedondeado(33_340, 1))
}

func TestDesdeDecimal(t *testing.T) {
	m, err := DesdeDecimal(decimal.RequireFromString("1234.56"))
	require.NoError(t, err)
	assert.Equal(t, Money(123_456), m)

	m, err = DesdeDecimal(decimal.RequireFromString("1000000"))
	require.NoError(t, err)
	assert.Equal(t, Money(100_000_000), m)

	// Más de dos decimales: rechazo explícito, sin pérdida silenciosa
	_, err = DesdeDecimal(decimal.RequireFromString("0.005"))
	assert.Error(t, err)
}

func TestDecimalIdaYVuelta(t *testing.T) {
	m := Money(987_654_321)
	assert.True(t, m.Decimal().Equal(decimal.RequireFromString("9876543.21")))
}
