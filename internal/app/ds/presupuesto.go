package ds

// Tabla de líneas de presupuesto (cotizaciones cargadas a una SOC).
// A lo más una queda seleccionada y recibe la distribución por centros.
type ArchivoPresupuesto struct {
	ID           uint   `gorm:"primaryKey"`
	SOCID        uint   `gorm:"not null;index"`
	Nombre       string `gorm:"type:varchar(150);not null"`
	Monto        int64  `gorm:"not null"` // unidades menores
	ArchivoURL   string `gorm:"type:varchar(255)"`
	Seleccionado bool   `gorm:"type:boolean;default:false;not null"`

	SOC SolicitudOC `gorm:"foreignKey:SOCID"`
}

// Tabla de asignaciones por centro de gestión sobre la línea seleccionada.
// La suma de montos calza exacta con el monto de la línea; redistribuir
// reemplaza el set completo.
type AsignacionCentro struct {
	ID        uint   `gorm:"primaryKey"`
	SOCID     uint   `gorm:"not null;index"`
	ArchivoID uint   `gorm:"not null;index;uniqueIndex:idx_archivo_centro"`
	Centro    string `gorm:"type:varchar(30);not null;uniqueIndex:idx_archivo_centro"`
	Monto     int64  `gorm:"not null"`

	Archivo ArchivoPresupuesto `gorm:"foreignKey:ArchivoID"`
}
