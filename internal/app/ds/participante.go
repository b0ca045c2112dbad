package ds

import "time"

// Tabla de participantes de la ronda de aprobación de una SOC.
// El token es una capacidad de un solo uso enviada por correo.
type Participante struct {
	ID       uint       `gorm:"primaryKey"`
	SOCID    uint       `gorm:"not null;index;uniqueIndex:idx_soc_email"`
	Nombre   string     `gorm:"type:varchar(100);not null"`
	Email    string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_soc_email"`
	Aprueba  bool       `gorm:"type:boolean;default:true;not null"`
	Finaliza bool       `gorm:"type:boolean;default:false;not null"`
	Token    string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	Voto     string     `gorm:"type:varchar(20);not null;default:'pendiente'"`
	VotadoEn *time.Time `gorm:"default:null"`

	SOC SolicitudOC `gorm:"foreignKey:SOCID"`
}
