package soc

// TipoSOC tipo de solicitud de orden de compra
type TipoSOC string

const (
	TipoGeneral     TipoSOC = "general"
	TipoContractual TipoSOC = "contractual"
)

// EstadoSolicitante estado de la etapa de aprobación de participantes
type EstadoSolicitante string

const (
	SolicitantePendiente EstadoSolicitante = "pendiente"
	SolicitanteAprobada  EstadoSolicitante = "aprobada"
	SolicitanteRechazada EstadoSolicitante = "rechazada"
)

// SOC estado contable y de flujo de una solicitud de orden de compra.
// Es un valor plano sin dependencias de framework; el repositorio lo arma
// desde la base y persiste los cambios que el motor le aplica.
type SOC struct {
	ID                uint
	Tipo              TipoSOC
	TotalSolicitud    Money // total autorizado
	TotalSolicitado   Money // acumulado ya comprometido
	Retiene5Porc      bool
	EstadoSolicitante EstadoSolicitante
	EstadoGestion     EstadoGestion
}

// Retencion retención del 5% cuando el total supera el umbral y la SOC retiene
func (s *SOC) Retencion() Money {
	if !s.Retiene5Porc || s.TotalSolicitud <= UmbralRetencion {
		return 0
	}
	return PorcentajeRedondeado(s.TotalSolicitud, PorcRetencion)
}

// disponibleAntesRetencion total autorizado menos lo ya comprometido
func (s *SOC) disponibleAntesRetencion() Money {
	return s.TotalSolicitud - s.TotalSolicitado
}

// Disponible saldo solicitable sin tocar la reserva de retención.
// La retención sólo se protege mientras quede saldo antes de aplicarla;
// nunca puede dejar el disponible en negativo.
func (s *SOC) Disponible() Money {
	antes := s.disponibleAntesRetencion()
	if antes <= 0 {
		return 0
	}
	d := antes - s.Retencion()
	if d < 0 {
		return 0
	}
	return d
}

// DisponibleRetencion saldo accesible en modo retención. Si parte de la
// reserva ya fue consumida, colapsa a lo que queda antes de retención.
func (s *SOC) DisponibleRetencion() Money {
	antes := s.disponibleAntesRetencion()
	if antes <= 0 {
		return 0
	}
	r := s.Retencion()
	if antes < r {
		return antes
	}
	return r
}

// RetencionHabilitada el modo retención sólo se habilita cuando el saldo
// normal quedó agotado y aún existe reserva que liberar
func (s *SOC) RetencionHabilitada() bool {
	return s.Retencion() > 0 && s.Disponible() == 0 && s.DisponibleRetencion() > 0
}

// FundLedger lleva el consumo acumulado contra el total autorizado de una
// SOC. Los commits son idempotentes por id de solicitud: un reintento de
// red no puede descontar dos veces.
type FundLedger struct {
	soc       *SOC
	aplicadas map[string]Money
}

// NewFundLedger crea el libro sobre una SOC. aplicadas trae los ids de
// solicitudes ya comprometidas (puede ser nil).
func NewFundLedger(s *SOC, aplicadas map[string]Money) *FundLedger {
	copia := make(map[string]Money, len(aplicadas))
	for k, v := range aplicadas {
		copia[k] = v
	}
	return &FundLedger{soc: s, aplicadas: copia}
}

// Commit compromete monto contra la SOC bajo el modo indicado.
// Requiere 0 < monto <= disponible del modo; incrementa TotalSolicitado.
// Un requestID ya aplicado es un no-op (reintento), sin doble descuento.
func (l *FundLedger) Commit(requestID string, monto Money, modo Modo) error {
	if _, ya := l.aplicadas[requestID]; ya {
		return nil
	}

	disponible := l.soc.Disponible()
	if modo == ModoRetencion {
		disponible = l.soc.DisponibleRetencion()
	}

	if monto <= 0 || monto > disponible {
		return &ErrorFondosInsuficientes{Disponible: disponible, Solicitado: monto}
	}

	l.soc.TotalSolicitado += monto
	l.aplicadas[requestID] = monto
	return nil
}

// Aplicada indica si un id de solicitud ya fue comprometido
func (l *FundLedger) Aplicada(requestID string) bool {
	_, ya := l.aplicadas[requestID]
	return ya
}
