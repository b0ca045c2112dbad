package soc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistribuirSumaExacta(t *testing.T) {
	asigns := []Asignacion{
		{Centro: "CG-100", Monto: 600},
		{Centro: "CG-200", Monto: 300},
		{Centro: "CG-300", Monto: 100},
	}

	aceptadas, err := Distribuir(1_000, asigns)
	require.NoError(t, err)
	require.Len(t, aceptadas, 3)

	// El set devuelto es una copia propia
	asigns[0].Monto = 0
	assert.Equal(t, Money(600), aceptadas[0].Monto)
}

func TestDistribuirDescuadre(t *testing.T) {
	casos := []struct {
		nombre string
		total  Money
		montos []Money
	}{
		{"falta un centavo", 1_000, []Money{600, 399}},
		{"sobra un centavo", 1_000, []Money{600, 401}},
		{"muy por debajo", 1_000, []Money{1}},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			asigns := make([]Asignacion, len(c.montos))
			for i, m := range c.montos {
				asigns[i] = Asignacion{Centro: string(rune('A' + i)), Monto: m}
			}
			_, err := Distribuir(c.total, asigns)
			var desc *ErrorAsignacionDescuadrada
			require.ErrorAs(t, err, &desc)
			assert.Equal(t, c.total, desc.Esperado)
		})
	}
}

func TestDistribuirCentroDuplicado(t *testing.T) {
	_, err := Distribuir(200, []Asignacion{
		{Centro: "CG-100", Monto: 100},
		{Centro: "CG-100", Monto: 100},
	})
	var dup *ErrorCentroDuplicado
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "CG-100", dup.Centro)
}

func TestDistribuirCuotasNoPositivas(t *testing.T) {
	_, err := Distribuir(100, []Asignacion{
		{Centro: "CG-100", Monto: 150},
		{Centro: "CG-200", Monto: -50},
	})
	var rango *ErrorFueraDeRango
	assert.ErrorAs(t, err, &rango)
}

func TestDistribuirVacio(t *testing.T) {
	_, err := Distribuir(100, nil)
	var desc *ErrorAsignacionDescuadrada
	assert.ErrorAs(t, err, &desc)
}
