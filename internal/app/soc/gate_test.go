package soc

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func socPendiente() *SOC {
	return &SOC{
		ID:                7,
		Tipo:              TipoGeneral,
		TotalSolicitud:    1_000_000,
		EstadoSolicitante: SolicitantePendiente,
		EstadoGestion:     GestionPendiente,
	}
}

func participante(token string, aprueba bool) *Participante {
	return &Participante{
		Nombre:  "p-" + token,
		Email:   token + "@empresa.cl",
		Aprueba: aprueba,
		Token:   token,
		Voto:    VotoPendiente,
	}
}

func TestVotoUnanimeAprueba(t *testing.T) {
	s := socPendiente()
	parts := []*Participante{
		participante("t1", true),
		participante("t2", true),
		participante("t3", false), // no vota, no cuenta para la unanimidad
	}
	g := NewApprovalGate(s, parts)
	ahora := time.Now()

	res, err := g.RegistrarVoto("t1", VotoAprobado, ahora)
	require.NoError(t, err)
	assert.Equal(t, SolicitantePendiente, res.Estado)
	assert.False(t, res.ListaParaFinanza)
	assert.NotNil(t, parts[0].VotadoEn)

	res, err = g.RegistrarVoto("t2", VotoAprobado, ahora)
	require.NoError(t, err)
	assert.Equal(t, SolicitanteAprobada, res.Estado)
	assert.True(t, res.ListaParaFinanza, "la unanimidad emite lista-para-finanza")
	assert.Equal(t, SolicitanteAprobada, s.EstadoSolicitante)
}

func TestVotoRechazoCortaElFlujo(t *testing.T) {
	s := socPendiente()
	parts := []*Participante{participante("t1", true), participante("t2", true)}
	g := NewApprovalGate(s, parts)

	res, err := g.RegistrarVoto("t1", VotoRechazado, time.Now())
	require.NoError(t, err)
	assert.Equal(t, SolicitanteRechazada, res.Estado)

	// Los votos pendientes quedan sin efecto
	_, err = g.RegistrarVoto("t2", VotoAprobado, time.Now())
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestTokenConsumidoNoSeReusa(t *testing.T) {
	s := socPendiente()
	parts := []*Participante{participante("t1", true), participante("t2", true)}
	g := NewApprovalGate(s, parts)

	_, err := g.RegistrarVoto("t1", VotoAprobado, time.Now())
	require.NoError(t, err)

	// Replay del mismo enlace: siempre inválido, a lo más una decisión
	for i := 0; i < 3; i++ {
		_, err = g.RegistrarVoto("t1", VotoAprobado, time.Now())
		assert.ErrorIs(t, err, ErrTokenInvalido)
		_, err = g.RegistrarVoto("t1", VotoRechazado, time.Now())
		assert.ErrorIs(t, err, ErrTokenInvalido)
	}
}

func TestTokenDesconocido(t *testing.T) {
	g := NewApprovalGate(socPendiente(), []*Participante{participante("t1", true)})
	_, err := g.RegistrarVoto("no-existe", VotoAprobado, time.Now())
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestParticipanteNoElegible(t *testing.T) {
	parts := []*Participante{participante("t1", true), participante("obs", false)}
	g := NewApprovalGate(socPendiente(), parts)

	_, err := g.RegistrarVoto("obs", VotoAprobado, time.Now())
	assert.ErrorIs(t, err, ErrNoElegible)
	// El token del no elegible no se consume
	assert.Equal(t, VotoPendiente, parts[1].Voto)
}

func TestDobleEnvioConcurrente(t *testing.T) {
	s := socPendiente()
	parts := []*Participante{participante("t1", true)}
	g := NewApprovalGate(s, parts)

	const intentos = 32
	var wg sync.WaitGroup
	exitos := make(chan struct{}, intentos)

	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := g.RegistrarVoto("t1", VotoAprobado, time.Now()); err == nil {
				exitos <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(exitos)

	total := 0
	for range exitos {
		total++
	}
	assert.Equal(t, 1, total, "el token se consume exactamente una vez")
}

func TestPendientesParaRecordatorio(t *testing.T) {
	parts := []*Participante{
		participante("t1", true),
		participante("t2", true),
		participante("t3", false),
	}
	g := NewApprovalGate(socPendiente(), parts)

	_, err := g.RegistrarVoto("t1", VotoAprobado, time.Now())
	require.NoError(t, err)

	pend := g.Pendientes()
	require.Len(t, pend, 1)
	assert.Equal(t, "t2", pend[0].Token)
}
