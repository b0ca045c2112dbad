package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============ Estructuras comunes ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Proveedores ============

type ProveedorResponse struct {
	ID           uint   `json:"id"`
	RazonSocial  string `json:"razon_social"`
	RUT          string `json:"rut"`
	Giro         string `json:"giro"`
	Email        string `json:"email"`
	Direccion    string `json:"direccion"`
	DocumentoURL string `json:"documento_url,omitempty"`
}

type ProveedorListResponse struct {
	Proveedores []ProveedorResponse `json:"proveedores"`
	Total       int                 `json:"total"`
}

type CreateProveedorRequest struct {
	RazonSocial string `json:"razon_social" binding:"required,max=150"`
	RUT         string `json:"rut" binding:"required,max=20"`
	Giro        string `json:"giro"`
	Email       string `json:"email" binding:"omitempty,email"`
	Direccion   string `json:"direccion"`
}

type UpdateProveedorRequest struct {
	RazonSocial string `json:"razon_social"`
	Giro        string `json:"giro"`
	Email       string `json:"email" binding:"omitempty,email"`
	Direccion   string `json:"direccion"`
}

// ============ Solicitudes de OC (SOC) ============

type ParticipanteRequest struct {
	Nombre   string `json:"nombre" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Aprueba  bool   `json:"aprueba"`
	Finaliza bool   `json:"finaliza"`
}

type CreateSOCRequest struct {
	Tipo            string                `json:"tipo" binding:"required,oneof=general contractual"`
	TotalSolicitud  decimal.Decimal       `json:"total_solicitud" binding:"required"`
	Retiene5PorcSOC bool                  `json:"retiene_5_porc_soc"`
	Descripcion     string                `json:"descripcion"`
	ProveedorID     *uint                 `json:"proveedor_id"`
	Participantes   []ParticipanteRequest `json:"participantes" binding:"required,min=1,dive"`
}

type ParticipanteResponse struct {
	ID       uint       `json:"id"`
	Nombre   string     `json:"nombre"`
	Email    string     `json:"email"`
	Aprueba  bool       `json:"aprueba"`
	Finaliza bool       `json:"finaliza"`
	Voto     string     `json:"voto"`
	VotadoEn *time.Time `json:"votado_en,omitempty"`
}

type SOCResponse struct {
	ID                uint            `json:"id"`
	Tipo              string          `json:"tipo"`
	EstadoSolicitante string          `json:"estado_solicitante"`
	EstadoGestion     string          `json:"estado_gestion"`
	TotalSolicitud    decimal.Decimal `json:"total_solicitud"`
	TotalSolicitado   decimal.Decimal `json:"total_solicitado"`
	Retencion         decimal.Decimal `json:"retencion"`
	Disponible        decimal.Decimal `json:"disponible"`
	Retiene5PorcSOC   bool            `json:"retiene_5_porc_soc"`
	Descripcion       string          `json:"descripcion,omitempty"`
	Creador           string          `json:"creador"`
	Proveedor         string          `json:"proveedor,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	EnviadaEn         *time.Time      `json:"enviada_en,omitempty"`
	CerradaEn         *time.Time      `json:"cerrada_en,omitempty"`

	Participantes []ParticipanteResponse    `json:"participantes,omitempty"` // sólo en el detalle
	Fondos        []SolicitudFondosResponse `json:"solicitudes_fondos,omitempty"`
}

type SOCListResponse struct {
	Solicitudes []SOCResponse `json:"solicitudes"`
	Total       int           `json:"total"`
}

// ============ Votos ============

type VotoRequest struct {
	Decision string `json:"decision" binding:"required,oneof=aprobado rechazado"`
}

// ============ Solicitudes de fondos (HES/MIGO) ============

type VentanaResponse struct {
	Modo    string          `json:"modo"`
	Min     decimal.Decimal `json:"min"`
	Max     decimal.Decimal `json:"max"`
	PorcMin int             `json:"porc_min,omitempty"`
	PorcMax int             `json:"porc_max,omitempty"`
}

type CreateFondosRequest struct {
	Modo           string           `json:"modo" binding:"required,oneof=completo porcentaje monto retencion"`
	Monto          *decimal.Decimal `json:"monto"`      // modos monto y retención
	Porcentaje     *int             `json:"porcentaje"` // modo porcentaje
	Observacion    string           `json:"observacion"`
	IdempotencyKey string           `json:"idempotency_key" binding:"required,max=64"`
}

type AprobarFondosRequest struct {
	CodigoHESMIGO string `json:"codigo_hes_migo" binding:"required,max=50"`
}

type SolicitudFondosResponse struct {
	ID             uint            `json:"id"`
	SOCID          uint            `json:"soc_id"`
	Modo           string          `json:"modo"`
	Monto          decimal.Decimal `json:"monto"`
	Observacion    string          `json:"observacion,omitempty"`
	Estado         string          `json:"estado"`
	CodigoHESMIGO  string          `json:"codigo_hes_migo,omitempty"`
	ExcedePromedio bool            `json:"excede_promedio"`
	AdjuntoURL     string          `json:"adjunto_url,omitempty"`
	Solicitante    string          `json:"solicitante,omitempty"`
	Aprobador      string          `json:"aprobador,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	AprobadaEn     *time.Time      `json:"aprobada_en,omitempty"`
}

// ============ Presupuesto y asignaciones ============

type ArchivoPresupuestoResponse struct {
	ID           uint            `json:"id"`
	Nombre       string          `json:"nombre"`
	Monto        decimal.Decimal `json:"monto"`
	ArchivoURL   string          `json:"archivo_url,omitempty"`
	Seleccionado bool            `json:"seleccionado"`
}

type AsignacionRequest struct {
	Centro string          `json:"centro" binding:"required,max=30"`
	Monto  decimal.Decimal `json:"monto" binding:"required"`
}

type DistribuirRequest struct {
	ArchivoID    uint                `json:"archivo_id" binding:"required"`
	Asignaciones []AsignacionRequest `json:"asignaciones" binding:"required,min=1,dive"`
}

type AsignacionResponse struct {
	Centro string          `json:"centro"`
	Monto  decimal.Decimal `json:"monto"`
}

// ============ Usuarios ============

type UserResponse struct {
	ID       uint   `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Role     int    `json:"role"`
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Role     int    `json:"role" binding:"omitempty,gte=0,lte=2"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}
