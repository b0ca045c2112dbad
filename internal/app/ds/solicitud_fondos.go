package ds

import "time"

// Tabla de solicitudes de fondos (HES/MIGO) contra una SOC
type SolicitudFondos struct {
	ID             uint       `gorm:"primaryKey"`
	SOCID          uint       `gorm:"not null;index"`
	Modo           string     `gorm:"type:varchar(20);not null"` // completo, porcentaje, monto, retencion
	Monto          int64      `gorm:"not null"`                  // unidades menores
	Observacion    string     `gorm:"type:text"`
	Estado         string     `gorm:"type:varchar(20);not null;default:'pendiente'"` // pendiente, aprobada
	CodigoHESMIGO  *string    `gorm:"type:varchar(50)"` // se registra al aprobar
	ExcedePromedio bool       `gorm:"type:boolean;default:false;not null"` // advertencia para el aprobador
	IdempotencyKey string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	AdjuntoURL     *string    `gorm:"type:varchar(255)"`
	SolicitanteID  uint       `gorm:"not null"`
	AprobadorID    *uint      `gorm:"default:null"`
	CreatedAt      time.Time  `gorm:"not null"`
	AprobadaEn     *time.Time `gorm:"default:null"`

	SOC         SolicitudOC `gorm:"foreignKey:SOCID"`
	Solicitante User        `gorm:"foreignKey:SolicitanteID"`
	Aprobador   *User       `gorm:"foreignKey:AprobadorID"`
}
