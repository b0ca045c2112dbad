package soc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func socGeneral(total, solicitado Money, retiene bool) *SOC {
	return &SOC{
		ID:                1,
		Tipo:              TipoGeneral,
		TotalSolicitud:    total,
		TotalSolicitado:   solicitado,
		Retiene5Porc:      retiene,
		EstadoSolicitante: SolicitanteAprobada,
		EstadoGestion:     GestionPorSolicitudFondos,
	}
}

func TestRetencion(t *testing.T) {
	casos := []struct {
		nombre  string
		total   Money
		retiene bool
		want    Money
	}{
		{"sobre el umbral con flag", 100_000_000, true, 5_000_000},
		{"sobre el umbral sin flag", 100_000_000, false, 0},
		{"bajo el umbral", 500_000, true, 0},
		{"exactamente el umbral no retiene", UmbralRetencionDefault, true, 0},
		{"redondeo half-up", 1_000_010, true, 50_001},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			s := socGeneral(c.total, 0, c.retiene)
			assert.Equal(t, c.want, s.Retencion())
		})
	}
}

func TestDisponibleConRetencion(t *testing.T) {
	// Caso de referencia: total 100M (umbral superado), retención 5M
	s := socGeneral(100_000_000, 0, true)
	assert.Equal(t, Money(5_000_000), s.Retencion())
	assert.Equal(t, Money(95_000_000), s.Disponible())
	assert.Equal(t, Money(5_000_000), s.DisponibleRetencion())
	assert.False(t, s.RetencionHabilitada())

	// Consumido el saldo normal, sólo queda la reserva
	s.TotalSolicitado = 95_000_000
	assert.Equal(t, Money(0), s.Disponible())
	assert.Equal(t, Money(5_000_000), s.DisponibleRetencion())
	assert.True(t, s.RetencionHabilitada())

	// Reserva parcialmente consumida: colapsa a lo que queda
	s.TotalSolicitado = 97_000_000
	assert.Equal(t, Money(0), s.Disponible())
	assert.Equal(t, Money(3_000_000), s.DisponibleRetencion())

	// Todo consumido
	s.TotalSolicitado = 100_000_000
	assert.Equal(t, Money(0), s.Disponible())
	assert.Equal(t, Money(0), s.DisponibleRetencion())
	assert.False(t, s.RetencionHabilitada())
}

func TestDisponibleNuncaNegativo(t *testing.T) {
	// La retención jamás deja el disponible bajo cero
	s := socGeneral(2_000_000, 1_950_000, true)
	assert.Equal(t, Money(100_000), s.Retencion())
	assert.Equal(t, Money(0), s.Disponible())
	assert.Equal(t, Money(50_000), s.DisponibleRetencion())
}

func TestLedgerCommit(t *testing.T) {
	s := socGeneral(100, 100, false)
	l := NewFundLedger(s, nil)

	// SOC agotada: disponible 0, cualquier commit falla
	assert.Equal(t, Money(0), s.Disponible())
	err := l.Commit("req-1", 1, ModoMonto)
	var fondos *ErrorFondosInsuficientes
	require.ErrorAs(t, err, &fondos)
	assert.Equal(t, Money(0), fondos.Disponible)

	s2 := socGeneral(1_000, 0, false)
	l2 := NewFundLedger(s2, nil)

	require.NoError(t, l2.Commit("req-a", 400, ModoMonto))
	assert.Equal(t, Money(400), s2.TotalSolicitado)
	assert.Equal(t, Money(600), s2.Disponible())

	// Reintento con el mismo id: no descuenta dos veces
	require.NoError(t, l2.Commit("req-a", 400, ModoMonto))
	assert.Equal(t, Money(400), s2.TotalSolicitado)

	// Monto no positivo
	err = l2.Commit("req-b", 0, ModoMonto)
	require.ErrorAs(t, err, &fondos)

	// Exceder el disponible
	err = l2.Commit("req-c", 601, ModoMonto)
	require.ErrorAs(t, err, &fondos)
	assert.Equal(t, Money(601), fondos.Solicitado)
}

func TestLedgerCommitRetencion(t *testing.T) {
	s := socGeneral(2_000_000, 1_900_000, true)
	l := NewFundLedger(s, nil)

	// Disponible normal es 0: el modo normal no pasa
	var fondos *ErrorFondosInsuficientes
	require.ErrorAs(t, l.Commit("r1", 50_000, ModoMonto), &fondos)

	// El modo retención libera la reserva
	require.NoError(t, l.Commit("r1", 100_000, ModoRetencion))
	assert.Equal(t, Money(2_000_000), s.TotalSolicitado)
	assert.Equal(t, Money(0), s.DisponibleRetencion())
}

func TestTotalSolicitadoMonotonico(t *testing.T) {
	// total_solicitado nunca decrece y nunca supera total_solicitud
	s := socGeneral(10_000, 0, false)
	l := NewFundLedger(s, nil)

	anteriores := s.TotalSolicitado
	montos := []Money{3_000, 5_000, 4_000, 2_000, 1}
	for i, m := range montos {
		err := l.Commit(string(rune('a'+i)), m, ModoMonto)
		if err == nil {
			assert.GreaterOrEqual(t, s.TotalSolicitado, anteriores)
		} else {
			assert.Equal(t, anteriores, s.TotalSolicitado)
		}
		anteriores = s.TotalSolicitado
		assert.LessOrEqual(t, s.TotalSolicitado, s.TotalSolicitud)
	}
}
