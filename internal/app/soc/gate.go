package soc

import (
	"sync"
	"time"
)

// EstadoVoto estado del voto de un participante sobre una SOC
type EstadoVoto string

const (
	VotoPendiente EstadoVoto = "pendiente"
	VotoAprobado  EstadoVoto = "aprobado"
	VotoRechazado EstadoVoto = "rechazado"
)

// Participante persona convocada a aprobar una SOC. El token es una
// capacidad de un solo uso; el set de participantes queda congelado al
// enviar la solicitud.
type Participante struct {
	ID       uint
	Nombre   string
	Email    string
	Aprueba  bool // debe votar para la unanimidad
	Finaliza bool // puede cerrar la SOC manualmente
	Token    string
	Voto     EstadoVoto
	VotadoEn *time.Time
}

// ResultadoVoto efecto de registrar un voto sobre la SOC
type ResultadoVoto struct {
	Participante     *Participante
	Estado           EstadoSolicitante
	ListaParaFinanza bool // recién alcanzada la unanimidad
}

// ApprovalGate colecta las decisiones de los participantes de una SOC y
// evalúa la regla de unanimidad. El consumo del token es atómico: bajo
// doble click o replay de un enlace viejo la decisión se registra a lo
// más una vez.
type ApprovalGate struct {
	mu            sync.Mutex
	soc           *SOC
	participantes []*Participante
}

// NewApprovalGate arma la compuerta al momento del envío de la SOC
func NewApprovalGate(s *SOC, participantes []*Participante) *ApprovalGate {
	return &ApprovalGate{soc: s, participantes: participantes}
}

// RegistrarVoto consume el token y aplica la decisión.
// Cualquier rechazo corta el flujo de inmediato: la SOC queda rechazada y
// los votos pendientes dejan de importar. Sólo la unanimidad de los
// participantes con aprueba deja la SOC aprobada y lista para finanzas.
func (g *ApprovalGate) RegistrarVoto(token string, decision EstadoVoto, ahora time.Time) (*ResultadoVoto, error) {
	if decision != VotoAprobado && decision != VotoRechazado {
		return nil, ErrTokenInvalido
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// Una SOC que ya salió de pendiente no admite más votos
	if g.soc.EstadoSolicitante != SolicitantePendiente {
		return nil, ErrTokenInvalido
	}

	var p *Participante
	for _, cand := range g.participantes {
		if cand.Token == token {
			p = cand
			break
		}
	}
	if p == nil {
		return nil, ErrTokenInvalido
	}
	if !p.Aprueba {
		return nil, ErrNoElegible
	}
	// Token ya consumido: inválido para siempre, sin reintentos
	if p.Voto != VotoPendiente {
		return nil, ErrTokenInvalido
	}

	p.Voto = decision
	t := ahora
	p.VotadoEn = &t

	res := &ResultadoVoto{Participante: p, Estado: g.soc.EstadoSolicitante}

	if decision == VotoRechazado {
		g.soc.EstadoSolicitante = SolicitanteRechazada
		res.Estado = SolicitanteRechazada
		return res, nil
	}

	if g.unanime() {
		g.soc.EstadoSolicitante = SolicitanteAprobada
		res.Estado = SolicitanteAprobada
		res.ListaParaFinanza = true
	}
	return res, nil
}

// unanime todos los participantes con aprueba votaron aprobado
func (g *ApprovalGate) unanime() bool {
	for _, p := range g.participantes {
		if p.Aprueba && p.Voto != VotoAprobado {
			return false
		}
	}
	return true
}

// Pendientes participantes con aprueba que aún no votan (para recordatorios)
func (g *ApprovalGate) Pendientes() []*Participante {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []*Participante
	for _, p := range g.participantes {
		if p.Aprueba && p.Voto == VotoPendiente {
			out = append(out, p)
		}
	}
	return out
}
