package repository

import (
	"errors"

	"backend/internal/app/ds"
	"backend/internal/app/soc"

	"gorm.io/gorm"
)

// Métodos para líneas de presupuesto y asignaciones por centro de gestión

func (r *Repository) CrearArchivoPresupuesto(a *ds.ArchivoPresupuesto) error {
	return r.db.Create(a).Error
}

func (r *Repository) GetArchivosPresupuesto(socID uint) ([]ds.ArchivoPresupuesto, error) {
	var archivos []ds.ArchivoPresupuesto
	err := r.db.Where("soc_id = ?", socID).Order("id").Find(&archivos).Error
	return archivos, err
}

func (r *Repository) GetArchivoPresupuesto(id uint) (*ds.ArchivoPresupuesto, error) {
	var a ds.ArchivoPresupuesto
	err := r.db.Where("id = ?", id).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) GetAsignaciones(socID uint) ([]ds.AsignacionCentro, error) {
	var asigns []ds.AsignacionCentro
	err := r.db.Where("soc_id = ?", socID).Order("id").Find(&asigns).Error
	return asigns, err
}

// ReemplazarAsignaciones deja el archivo como línea seleccionada y
// reemplaza el set de asignaciones completo (todo o nada)
func (r *Repository) ReemplazarAsignaciones(socID, archivoID uint, aceptadas []soc.Asignacion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ds.ArchivoPresupuesto{}).
			Where("id = ? AND soc_id = ?", archivoID, socID).
			Update("seleccionado", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("la línea de presupuesto no pertenece a la solicitud")
		}

		// Sólo una línea seleccionada por SOC
		if err := tx.Model(&ds.ArchivoPresupuesto{}).
			Where("soc_id = ? AND id != ?", socID, archivoID).
			Update("seleccionado", false).Error; err != nil {
			return err
		}

		if err := tx.Where("soc_id = ?", socID).
			Delete(&ds.AsignacionCentro{}).Error; err != nil {
			return err
		}

		for _, a := range aceptadas {
			fila := ds.AsignacionCentro{
				SOCID:     socID,
				ArchivoID: archivoID,
				Centro:    a.Centro,
				Monto:     int64(a.Monto),
			}
			if err := tx.Create(&fila).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
