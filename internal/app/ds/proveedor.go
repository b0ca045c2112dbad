package ds

// Tabla maestra de proveedores - sólo información de referencia
type Proveedor struct {
	ID           uint    `gorm:"primaryKey"`
	RazonSocial  string  `gorm:"type:varchar(150);not null"`
	RUT          string  `gorm:"type:varchar(20);uniqueIndex;not null"`
	Giro         string  `gorm:"type:varchar(150)"`
	Email        string  `gorm:"type:varchar(100)"`
	Direccion    string  `gorm:"type:varchar(200)"`
	IsDeleted    bool    `gorm:"type:boolean;default:false;not null"`
	DocumentoURL *string `gorm:"type:varchar(255)"` // Nullable, ficha en MinIO
}
