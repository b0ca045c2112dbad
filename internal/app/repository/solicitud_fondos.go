package repository

import (
	"errors"
	"time"

	"backend/internal/app/ds"
	"backend/internal/app/soc"

	"gorm.io/gorm"
)

// Métodos para las solicitudes de fondos (HES/MIGO)

func (r *Repository) GetFondosBySOC(socID uint) ([]ds.SolicitudFondos, error) {
	var fondos []ds.SolicitudFondos
	err := r.db.Preload("Solicitante").Preload("Aprobador").
		Where("soc_id = ?", socID).Order("created_at DESC").Find(&fondos).Error
	return fondos, err
}

func (r *Repository) GetFondosByID(id uint) (*ds.SolicitudFondos, error) {
	var f ds.SolicitudFondos
	err := r.db.Where("id = ?", id).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *Repository) GetFondosByIdempotencyKey(key string) (*ds.SolicitudFondos, error) {
	var f ds.SolicitudFondos
	err := r.db.Where("idempotency_key = ?", key).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// MontosAprobados montos de las últimas solicitudes aprobadas de la SOC,
// más reciente primero (para el promedio histórico de contractuales)
func (r *Repository) MontosAprobados(socID uint, limit int) ([]soc.Money, error) {
	var filas []ds.SolicitudFondos
	err := r.db.Where("soc_id = ? AND estado = ?", socID, "aprobada").
		Order("aprobada_en DESC").Limit(limit).Find(&filas).Error
	if err != nil {
		return nil, err
	}
	montos := make([]soc.Money, len(filas))
	for i, f := range filas {
		montos[i] = soc.Money(f.Monto)
	}
	return montos, nil
}

// ComprometidasMap ids de solicitud ya comprometidos contra el libro
func (r *Repository) ComprometidasMap(socID uint) (map[string]soc.Money, error) {
	var filas []ds.SolicitudFondos
	err := r.db.Where("soc_id = ?", socID).Find(&filas).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]soc.Money, len(filas))
	for _, f := range filas {
		out[f.IdempotencyKey] = soc.Money(f.Monto)
	}
	return out, nil
}

// CrearSolicitudFondos guarda la solicitud y el nuevo acumulado de la SOC
// en una sola transacción: el compromiso del libro y la fila nacen juntos
func (r *Repository) CrearSolicitudFondos(f *ds.SolicitudFondos, s *soc.SOC) error {
	f.CreatedAt = time.Now()
	f.Estado = "pendiente"

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(f).Error; err != nil {
			return err
		}
		return tx.Model(&ds.SolicitudOC{}).Where("id = ?", s.ID).
			Updates(map[string]interface{}{
				"total_solicitado": int64(s.TotalSolicitado),
				"estado_gestion":   string(s.EstadoGestion),
			}).Error
	})
}

// AprobarFondos registra el código HES/MIGO; el update condicionado evita
// aprobar dos veces la misma solicitud
func (r *Repository) AprobarFondos(id, aprobadorID uint, codigo string, s *soc.SOC) error {
	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ds.SolicitudFondos{}).
			Where("id = ? AND estado = ?", id, "pendiente").
			Updates(map[string]interface{}{
				"estado":          "aprobada",
				"codigo_hes_migo": codigo,
				"aprobador_id":    aprobadorID,
				"aprobada_en":     now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("la solicitud de fondos no existe o ya fue aprobada")
		}
		return tx.Model(&ds.SolicitudOC{}).Where("id = ?", s.ID).
			Update("estado_gestion", string(s.EstadoGestion)).Error
	})
}

func (r *Repository) UpdateFondosAdjunto(id uint, url string) error {
	return r.db.Model(&ds.SolicitudFondos{}).Where("id = ?", id).
		Update("adjunto_url", url).Error
}
