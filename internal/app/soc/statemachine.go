package soc

// EstadoGestion etapa de la SOC dentro del flujo de finanzas. Enumeración
// cerrada con transiciones en tabla: los códigos sueltos tipo '1'/'PorOC'
// no existen fuera de este paquete.
type EstadoGestion string

const (
	// GestionPendiente aún en ronda de aprobación de participantes
	GestionPendiente EstadoGestion = "pendiente"
	// GestionRechazada terminal; sólo se puede levantar una SOC nueva
	GestionRechazada EstadoGestion = "rechazada"
	// GestionPorOC aprobada, a la espera de la orden de compra
	GestionPorOC EstadoGestion = "por_oc"
	// GestionPorSolicitudFondos a la espera de una solicitud HES/MIGO
	GestionPorSolicitudFondos EstadoGestion = "por_solicitud_fondos"
	// GestionPorAprobacionFondos solicitud HES/MIGO en manos del aprobador
	GestionPorAprobacionFondos EstadoGestion = "por_aprobacion_fondos"
	// GestionPorFactura fondos aprobados, a la espera de facturación
	GestionPorFactura EstadoGestion = "por_factura"
	// GestionCerrada terminal
	GestionCerrada EstadoGestion = "cerrada"
)

// cadena orden hacia adelante del flujo normal
var cadena = map[EstadoGestion]EstadoGestion{
	GestionPendiente:           GestionPorOC,
	GestionPorOC:               GestionPorSolicitudFondos,
	GestionPorSolicitudFondos:  GestionPorAprobacionFondos,
	GestionPorAprobacionFondos: GestionPorFactura,
	GestionPorFactura:          GestionCerrada,
}

// anterior paso inverso para la reversión administrativa
var anterior = map[EstadoGestion]EstadoGestion{
	GestionPorOC:               GestionPendiente,
	GestionPorSolicitudFondos:  GestionPorOC,
	GestionPorAprobacionFondos: GestionPorSolicitudFondos,
	GestionPorFactura:          GestionPorAprobacionFondos,
}

// EsTerminal rechazada y cerrada no admiten ninguna transición
func (e EstadoGestion) EsTerminal() bool {
	return e == GestionRechazada || e == GestionCerrada
}

// Maquina máquina de estados del ciclo de vida de una SOC. Compone la
// compuerta de aprobación y el libro de fondos en cada transición; las
// reversiones son compensatorias, no deshacen escrituras parciales.
type Maquina struct {
	soc *SOC
}

// NewMaquina crea la máquina sobre el estado actual de la SOC
func NewMaquina(s *SOC) *Maquina {
	return &Maquina{soc: s}
}

// avanzar transición hacia adelante validada contra la tabla
func (m *Maquina) avanzar(hacia EstadoGestion) error {
	desde := m.soc.EstadoGestion
	if desde.EsTerminal() {
		return &ErrorTransicionInvalida{Desde: desde, Hacia: hacia,
			Motivo: "la solicitud está en un estado terminal"}
	}
	if cadena[desde] != hacia {
		return &ErrorTransicionInvalida{Desde: desde, Hacia: hacia}
	}
	m.soc.EstadoGestion = hacia
	return nil
}

// IniciarGestion entra al flujo de finanzas tras la unanimidad de la
// compuerta de aprobación
func (m *Maquina) IniciarGestion() error {
	if m.soc.EstadoSolicitante != SolicitanteAprobada {
		return &ErrorTransicionInvalida{Desde: m.soc.EstadoGestion, Hacia: GestionPorOC,
			Motivo: "la solicitud aún no cuenta con aprobación unánime"}
	}
	return m.avanzar(GestionPorOC)
}

// Rechazar deja la SOC en estado terminal tras un voto de rechazo
func (m *Maquina) Rechazar() error {
	desde := m.soc.EstadoGestion
	if desde != GestionPendiente {
		return &ErrorTransicionInvalida{Desde: desde, Hacia: GestionRechazada,
			Motivo: "sólo una solicitud pendiente puede ser rechazada"}
	}
	m.soc.EstadoSolicitante = SolicitanteRechazada
	m.soc.EstadoGestion = GestionRechazada
	return nil
}

// RegistrarOC la orden de compra fue cargada
func (m *Maquina) RegistrarOC() error {
	return m.avanzar(GestionPorSolicitudFondos)
}

// SolicitarFondos entra a aprobación de fondos. La guardia exige que el
// commit del libro ya se haya aplicado para esta solicitud.
func (m *Maquina) SolicitarFondos(ledger *FundLedger, requestID string) error {
	if !ledger.Aplicada(requestID) {
		return &ErrorTransicionInvalida{Desde: m.soc.EstadoGestion, Hacia: GestionPorAprobacionFondos,
			Motivo: "la solicitud de fondos no tiene un compromiso registrado en el libro"}
	}
	return m.avanzar(GestionPorAprobacionFondos)
}

// AprobarFondos el aprobador registró el código HES/MIGO
func (m *Maquina) AprobarFondos() error {
	return m.avanzar(GestionPorFactura)
}

// Cerrar cierre de la SOC: por consumo total o por acción manual de un
// participante con finaliza
func (m *Maquina) Cerrar(p *Participante) error {
	desde := m.soc.EstadoGestion
	if desde != GestionPorFactura {
		return &ErrorTransicionInvalida{Desde: desde, Hacia: GestionCerrada}
	}
	if m.soc.TotalSolicitado != m.soc.TotalSolicitud {
		if p == nil || !p.Finaliza {
			return ErrNoFinaliza
		}
	}
	m.soc.EstadoGestion = GestionCerrada
	return nil
}

// RevertirAnterior reversión administrativa de un paso. No aplica sobre
// estados terminales y no devuelve fondos ya comprometidos.
func (m *Maquina) RevertirAnterior() error {
	desde := m.soc.EstadoGestion
	if desde.EsTerminal() {
		return &ErrorTransicionInvalida{Desde: desde, Hacia: desde,
			Motivo: "la solicitud está en un estado terminal"}
	}
	prev, ok := anterior[desde]
	if !ok {
		return &ErrorTransicionInvalida{Desde: desde, Hacia: desde,
			Motivo: "no existe un paso anterior"}
	}
	if prev == GestionPendiente {
		m.soc.EstadoSolicitante = SolicitantePendiente
	}
	m.soc.EstadoGestion = prev
	return nil
}

// VolverAPorOC devolución explícita a la etapa de orden de compra por un
// aprobador autorizado, desde cualquiera de las etapas de fondos
func (m *Maquina) VolverAPorOC() error {
	desde := m.soc.EstadoGestion
	if desde != GestionPorSolicitudFondos && desde != GestionPorAprobacionFondos {
		return &ErrorTransicionInvalida{Desde: desde, Hacia: GestionPorOC,
			Motivo: "sólo se puede devolver desde las etapas de fondos"}
	}
	m.soc.EstadoGestion = GestionPorOC
	return nil
}
