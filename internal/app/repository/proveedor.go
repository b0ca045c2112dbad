package repository

import (
	"backend/internal/app/ds"
)

// Métodos para la tabla maestra de proveedores

func (r *Repository) GetAllProveedores() ([]ds.Proveedor, error) {
	var proveedores []ds.Proveedor
	err := r.db.Where("is_deleted = ?", false).Find(&proveedores).Error
	return proveedores, err
}

// Búsqueda por razón social
func (r *Repository) SearchProveedores(nombre string) ([]ds.Proveedor, error) {
	var proveedores []ds.Proveedor
	err := r.db.Where("razon_social ILIKE ? AND is_deleted = ?", "%"+nombre+"%", false).
		Find(&proveedores).Error
	return proveedores, err
}

func (r *Repository) GetProveedorByID(id uint) (*ds.Proveedor, error) {
	var proveedor ds.Proveedor
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&proveedor).Error
	if err != nil {
		return nil, err
	}
	return &proveedor, nil
}

func (r *Repository) ProveedorExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Proveedor{}).
		Where("id = ? AND is_deleted = ?", id, false).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateProveedor(razonSocial, rut, giro, email, direccion string) (*ds.Proveedor, error) {
	proveedor := ds.Proveedor{
		RazonSocial: razonSocial,
		RUT:         rut,
		Giro:        giro,
		Email:       email,
		Direccion:   direccion,
	}

	err := r.db.Create(&proveedor).Error
	if err != nil {
		return nil, err
	}
	return &proveedor, nil
}

func (r *Repository) UpdateProveedor(id uint, razonSocial, giro, email, direccion *string) error {
	updates := map[string]interface{}{}
	if razonSocial != nil {
		updates["razon_social"] = *razonSocial
	}
	if giro != nil {
		updates["giro"] = *giro
	}
	if email != nil {
		updates["email"] = *email
	}
	if direccion != nil {
		updates["direccion"] = *direccion
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&ds.Proveedor{}).Where("id = ?", id).Updates(updates).Error
}

// Eliminación lógica
func (r *Repository) DeleteProveedor(id uint) error {
	return r.db.Model(&ds.Proveedor{}).Where("id = ?", id).
		Update("is_deleted", true).Error
}

func (r *Repository) UpdateProveedorDocumento(id uint, url string) error {
	return r.db.Model(&ds.Proveedor{}).Where("id = ?", id).
		Update("documento_url", url).Error
}
