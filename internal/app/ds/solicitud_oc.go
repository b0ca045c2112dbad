package ds

import "time"

// Tabla de solicitudes de orden de compra (SOC)
type SolicitudOC struct {
	ID                uint       `gorm:"primaryKey"`
	Tipo              string     `gorm:"type:varchar(20);not null"` // general, contractual
	EstadoSolicitante string     `gorm:"type:varchar(20);not null;default:'pendiente'"`
	EstadoGestion     string     `gorm:"type:varchar(30);not null;default:'pendiente';index"`
	TotalSolicitud    int64      `gorm:"not null"` // unidades menores
	TotalSolicitado   int64      `gorm:"not null;default:0"`
	Retiene5PorcSOC   bool       `gorm:"type:boolean;default:false;not null"`
	Descripcion       string     `gorm:"type:text"`
	CreadorID         uint       `gorm:"not null"`
	ProveedorID       *uint      `gorm:"default:null"`
	CreatedAt         time.Time  `gorm:"not null"`
	EnviadaEn         *time.Time `gorm:"default:null"` // congela el set de participantes
	CerradaEn         *time.Time `gorm:"default:null"`
	OCArchivoURL      *string    `gorm:"type:varchar(255)"` // orden de compra cargada
	IsDeleted         bool       `gorm:"type:boolean;default:false;not null"` // eliminación administrativa

	Creador   User       `gorm:"foreignKey:CreadorID"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}
