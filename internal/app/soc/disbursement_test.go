package soc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func socContractual(total, solicitado Money) *SOC {
	s := socGeneral(total, solicitado, false)
	s.Tipo = TipoContractual
	return s
}

func TestVentanaCompleto(t *testing.T) {
	s := socGeneral(1_000_000, 0, true)
	v, err := CalcularVentana(s, ModoCompleto)
	require.NoError(t, err)
	// El modo completo excluye la reserva de retención
	assert.Equal(t, Money(950_000), v.Min)
	assert.Equal(t, Money(950_000), v.Max)

	s.TotalSolicitado = 950_000
	_, err = CalcularVentana(s, ModoCompleto)
	var fondos *ErrorFondosInsuficientes
	assert.ErrorAs(t, err, &fondos)
}

func TestVentanaPorcentajeConTope(t *testing.T) {
	// Caso de referencia: total 1.000.000, retiene, nada consumido
	s := socGeneral(1_000_000, 0, true)
	require.Equal(t, Money(50_000), s.Retencion())
	require.Equal(t, Money(950_000), s.Disponible())

	v, err := CalcularVentana(s, ModoPorcentaje)
	require.NoError(t, err)
	assert.Equal(t, PorcMinimo, v.PorcMin)
	assert.Equal(t, 95, v.PorcMax) // tope: la reserva del 5% queda intacta

	// 96% excede la ventana
	_, err = MontoPorPorcentaje(s, 96)
	var rango *ErrorFueraDeRango
	require.ErrorAs(t, err, &rango)

	// 95% entrega el disponible exacto
	monto, err := MontoPorPorcentaje(s, 95)
	require.NoError(t, err)
	assert.Equal(t, Money(950_000), monto)
}

func TestVentanaPorcentajeSinRetencion(t *testing.T) {
	s := socGeneral(400_000, 100_000, true) // bajo el umbral: sin retención
	v, err := CalcularVentana(s, ModoPorcentaje)
	require.NoError(t, err)
	// max% = disponible/total*100 = 75, sin tope del 95
	assert.Equal(t, 75, v.PorcMax)

	monto, err := MontoPorPorcentaje(s, 75)
	require.NoError(t, err)
	assert.Equal(t, Money(300_000), monto)
}

func TestVentanaPorcentajeSoloGeneral(t *testing.T) {
	s := socContractual(1_000_000, 0)
	_, err := CalcularVentana(s, ModoPorcentaje)
	var trans *ErrorTransicionInvalida
	assert.ErrorAs(t, err, &trans)
}

func TestVentanaMontoSoloContractual(t *testing.T) {
	s := socGeneral(1_000_000, 0, false)
	_, err := CalcularVentana(s, ModoMonto)
	var trans *ErrorTransicionInvalida
	assert.ErrorAs(t, err, &trans)

	c := socContractual(1_000_000, 400_000)
	v, err := CalcularVentana(c, ModoMonto)
	require.NoError(t, err)
	assert.Equal(t, Money(1), v.Min)
	assert.Equal(t, Money(600_000), v.Max)
}

func TestVentanaRetencion(t *testing.T) {
	s := socGeneral(1_000_000, 0, true)

	// Con saldo normal vigente el modo retención no se habilita
	_, err := CalcularVentana(s, ModoRetencion)
	var trans *ErrorTransicionInvalida
	require.ErrorAs(t, err, &trans)

	s.TotalSolicitado = 950_000
	v, err := CalcularVentana(s, ModoRetencion)
	require.NoError(t, err)
	assert.Equal(t, Money(50_000), v.Min)
	assert.Equal(t, Money(50_000), v.Max)
}

func TestValidarSolicitudRangos(t *testing.T) {
	s := socContractual(1_000, 0)

	casos := []struct {
		nombre string
		monto  Money
		ok     bool
	}{
		{"cero", 0, false},
		{"negativo", -5, false},
		{"uno", 1, true},
		{"tope exacto", 1_000, true},
		{"sobre el tope", 1_001, false},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := ValidarSolicitud(s, ModoMonto, c.monto, nil)
			if c.ok {
				assert.NoError(t, err)
			} else {
				var rango *ErrorFueraDeRango
				assert.ErrorAs(t, err, &rango)
			}
		})
	}
}

func TestValidarSolicitudSinEstadoParcial(t *testing.T) {
	// La validación es de sólo lectura: un rechazo no toca el libro
	s := socContractual(1_000, 200)
	_, err := ValidarSolicitud(s, ModoMonto, 900, nil)
	require.Error(t, err)
	assert.Equal(t, Money(200), s.TotalSolicitado)
}

func TestPromedioHistoricoContractual(t *testing.T) {
	// Últimas 3 aprobadas: 100, 110, 105 → promedio 105, umbral 110,25
	s := socContractual(10_000, 0)
	historico := []Money{100, 110, 105}

	sol, err := ValidarSolicitud(s, ModoMonto, 111, historico)
	require.NoError(t, err)
	assert.True(t, sol.ExcedePromedio, "111 > 110,25 debe levantar la advertencia")
	assert.Equal(t, Money(105), sol.Promedio)

	sol, err = ValidarSolicitud(s, ModoMonto, 110, historico)
	require.NoError(t, err)
	assert.False(t, sol.ExcedePromedio, "110 <= 110,25 no advierte")

	// La advertencia no bloquea el envío
	sol, err = ValidarSolicitud(s, ModoMonto, 5_000, historico)
	require.NoError(t, err)
	assert.True(t, sol.ExcedePromedio)
}

func TestPromedioNoAplicaAGeneral(t *testing.T) {
	s := socGeneral(10_000, 0, false)
	sol, err := ValidarSolicitud(s, ModoCompleto, 10_000, []Money{1, 1, 1})
	require.NoError(t, err)
	assert.False(t, sol.ExcedePromedio)
}

func TestPromedioVentanaDeTres(t *testing.T) {
	// Sólo las últimas 3 cuentan, más reciente primero
	s := socContractual(100_000, 0)
	historico := []Money{100, 100, 100, 90_000}
	sol, err := ValidarSolicitud(s, ModoMonto, 104, historico)
	require.NoError(t, err)
	assert.False(t, sol.ExcedePromedio)
	assert.Equal(t, Money(100), sol.Promedio)
}
