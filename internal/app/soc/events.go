package soc

// El motor no envía correos ni persiste nada por sí mismo: emite intenciones
// que la capa orquestadora cumple (persistir estado, notificar participantes).
// Una falla de notificación jamás revierte la transición que la originó.

// TipoEvento clase de intención de notificación
type TipoEvento string

const (
	EventoRecordatorioVoto TipoEvento = "recordatorio_voto"
	EventoListaParaFinanza TipoEvento = "lista_para_finanza"
	EventoRechazada        TipoEvento = "rechazada"
	EventoSolicitudFondos  TipoEvento = "solicitud_fondos"
	EventoFondosAprobados  TipoEvento = "fondos_aprobados"
	EventoCerrada          TipoEvento = "cerrada"
)

// Evento intención de notificación emitida en una transición
type Evento struct {
	Tipo          TipoEvento `json:"tipo"`
	SOCID         uint       `json:"soc_id"`
	Destinatarios []string   `json:"destinatarios,omitempty"`
	Detalle       string     `json:"detalle,omitempty"`
}

// Notificador hook best-effort hacia el backend de correo
type Notificador interface {
	Notificar(evento Evento)
}
