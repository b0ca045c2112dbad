package ds

import "backend/internal/app/role"

// Tabla de usuarios del portal
type User struct {
	ID       uint      `gorm:"primaryKey"`
	Login    string    `gorm:"type:varchar(50);unique;not null"`
	Password string    `gorm:"type:varchar(255);not null"`
	Role     role.Role `gorm:"type:int;default:0;not null"` // comprador, aprobador, admin
	Email    string    `gorm:"type:varchar(100)"`
	FullName string    `gorm:"type:varchar(100)"`
}
