package soc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func socEnEstado(e EstadoGestion) *SOC {
	s := socGeneral(1_000, 0, false)
	s.EstadoGestion = e
	if e == GestionPendiente {
		s.EstadoSolicitante = SolicitantePendiente
	}
	return s
}

func TestFlujoCompleto(t *testing.T) {
	s := socEnEstado(GestionPendiente)
	s.EstadoSolicitante = SolicitanteAprobada
	m := NewMaquina(s)

	require.NoError(t, m.IniciarGestion())
	assert.Equal(t, GestionPorOC, s.EstadoGestion)

	require.NoError(t, m.RegistrarOC())
	assert.Equal(t, GestionPorSolicitudFondos, s.EstadoGestion)

	l := NewFundLedger(s, nil)
	require.NoError(t, l.Commit("req-1", 1_000, ModoCompleto))
	require.NoError(t, m.SolicitarFondos(l, "req-1"))
	assert.Equal(t, GestionPorAprobacionFondos, s.EstadoGestion)

	require.NoError(t, m.AprobarFondos())
	assert.Equal(t, GestionPorFactura, s.EstadoGestion)

	// Consumo total: cierra sin necesidad de un participante finaliza
	require.NoError(t, m.Cerrar(nil))
	assert.Equal(t, GestionCerrada, s.EstadoGestion)
}

func TestIniciarGestionRequiereUnanimidad(t *testing.T) {
	s := socEnEstado(GestionPendiente)
	m := NewMaquina(s)

	var trans *ErrorTransicionInvalida
	require.ErrorAs(t, m.IniciarGestion(), &trans)
	assert.Equal(t, GestionPendiente, s.EstadoGestion)
}

func TestSolicitarFondosExigeCommit(t *testing.T) {
	s := socEnEstado(GestionPorSolicitudFondos)
	m := NewMaquina(s)
	l := NewFundLedger(s, nil)

	// Sin commit registrado la guardia rechaza la entrada
	var trans *ErrorTransicionInvalida
	require.ErrorAs(t, m.SolicitarFondos(l, "req-x"), &trans)

	require.NoError(t, l.Commit("req-x", 400, ModoMonto))
	require.NoError(t, m.SolicitarFondos(l, "req-x"))
}

func TestCierreManualRequiereFinaliza(t *testing.T) {
	s := socEnEstado(GestionPorFactura)
	s.TotalSolicitado = 400 // consumo parcial
	m := NewMaquina(s)

	// Sin participante: no cierra
	assert.ErrorIs(t, m.Cerrar(nil), ErrNoFinaliza)

	// Participante sin finaliza: no cierra
	p := &Participante{Nombre: "ana", Finaliza: false}
	assert.ErrorIs(t, m.Cerrar(p), ErrNoFinaliza)

	p.Finaliza = true
	require.NoError(t, m.Cerrar(p))
	assert.Equal(t, GestionCerrada, s.EstadoGestion)
}

func TestEstadosTerminales(t *testing.T) {
	for _, e := range []EstadoGestion{GestionRechazada, GestionCerrada} {
		s := socEnEstado(e)
		m := NewMaquina(s)

		var trans *ErrorTransicionInvalida
		assert.ErrorAs(t, m.RegistrarOC(), &trans)
		assert.ErrorAs(t, m.AprobarFondos(), &trans)
		assert.ErrorAs(t, m.RevertirAnterior(), &trans)
		err := m.Cerrar(nil)
		assert.Error(t, err)
		assert.Equal(t, e, s.EstadoGestion, "un estado terminal no se mueve")
	}
}

func TestTransicionesFueraDeOrden(t *testing.T) {
	s := socEnEstado(GestionPorOC)
	m := NewMaquina(s)

	var trans *ErrorTransicionInvalida
	assert.ErrorAs(t, m.AprobarFondos(), &trans)
	l := NewFundLedger(s, nil)
	_ = l.Commit("r", 100, ModoMonto)
	assert.ErrorAs(t, m.SolicitarFondos(l, "r"), &trans)
}

func TestRevertirAnterior(t *testing.T) {
	s := socEnEstado(GestionPorFactura)
	m := NewMaquina(s)

	require.NoError(t, m.RevertirAnterior())
	assert.Equal(t, GestionPorAprobacionFondos, s.EstadoGestion)
	require.NoError(t, m.RevertirAnterior())
	assert.Equal(t, GestionPorSolicitudFondos, s.EstadoGestion)
	require.NoError(t, m.RevertirAnterior())
	assert.Equal(t, GestionPorOC, s.EstadoGestion)

	// Volver a pendiente reabre la ronda de aprobación
	s.EstadoSolicitante = SolicitanteAprobada
	require.NoError(t, m.RevertirAnterior())
	assert.Equal(t, GestionPendiente, s.EstadoGestion)
	assert.Equal(t, SolicitantePendiente, s.EstadoSolicitante)

	// Desde pendiente no hay paso anterior
	var trans *ErrorTransicionInvalida
	assert.ErrorAs(t, m.RevertirAnterior(), &trans)
}

func TestVolverAPorOC(t *testing.T) {
	for _, e := range []EstadoGestion{GestionPorSolicitudFondos, GestionPorAprobacionFondos} {
		s := socEnEstado(e)
		m := NewMaquina(s)
		require.NoError(t, m.VolverAPorOC())
		assert.Equal(t, GestionPorOC, s.EstadoGestion)
	}

	s := socEnEstado(GestionPorFactura)
	var trans *ErrorTransicionInvalida
	assert.ErrorAs(t, NewMaquina(s).VolverAPorOC(), &trans)
}

func TestRechazar(t *testing.T) {
	s := socEnEstado(GestionPendiente)
	m := NewMaquina(s)
	require.NoError(t, m.Rechazar())
	assert.Equal(t, GestionRechazada, s.EstadoGestion)
	assert.Equal(t, SolicitanteRechazada, s.EstadoSolicitante)

	// Rechazada es terminal: nada más procede
	var trans *ErrorTransicionInvalida
	assert.ErrorAs(t, m.Rechazar(), &trans)
	assert.ErrorAs(t, m.RegistrarOC(), &trans)
}
