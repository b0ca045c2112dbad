package repository

import (
	"errors"
	"time"

	"backend/internal/app/ds"
	"backend/internal/app/soc"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Métodos para las solicitudes de orden de compra

// CreateSOC crea la SOC en pendiente junto con sus participantes.
// Cada participante recibe un token de un solo uso.
func (r *Repository) CreateSOC(m *ds.SolicitudOC, participantes []ds.Participante) (*ds.SolicitudOC, error) {
	m.EstadoSolicitante = string(soc.SolicitantePendiente)
	m.EstadoGestion = string(soc.GestionPendiente)
	m.CreatedAt = time.Now()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		for i := range participantes {
			participantes[i].SOCID = m.ID
			participantes[i].Token = uuid.New().String()
			participantes[i].Voto = string(soc.VotoPendiente)
			if err := tx.Create(&participantes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Repository) GetSOCByID(id uint) (*ds.SolicitudOC, error) {
	var m ds.SolicitudOC
	err := r.db.Preload("Creador").Preload("Proveedor").
		Where("id = ? AND is_deleted = ?", id, false).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetSOCs lista con filtros por estado de gestión, fechas y creador
func (r *Repository) GetSOCs(estado string, desde, hasta *time.Time, creadorID *uint) ([]ds.SolicitudOC, error) {
	query := r.db.Preload("Creador").Preload("Proveedor").
		Where("is_deleted = ?", false)

	if estado != "" {
		query = query.Where("estado_gestion = ?", estado)
	}
	if desde != nil {
		query = query.Where("created_at >= ?", *desde)
	}
	if hasta != nil {
		query = query.Where("created_at <= ?", *hasta)
	}
	if creadorID != nil {
		query = query.Where("creador_id = ?", *creadorID)
	}

	var solicitudes []ds.SolicitudOC
	err := query.Order("created_at DESC").Find(&solicitudes).Error
	return solicitudes, err
}

func (r *Repository) GetParticipantes(socID uint) ([]ds.Participante, error) {
	var participantes []ds.Participante
	err := r.db.Where("soc_id = ?", socID).Order("id").Find(&participantes).Error
	return participantes, err
}

func (r *Repository) GetParticipanteByToken(token string) (*ds.Participante, error) {
	var p ds.Participante
	err := r.db.Where("token = ?", token).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// AgregarParticipante el set sólo admite altas mientras la SOC no se envíe
func (r *Repository) AgregarParticipante(socID uint, p *ds.Participante) error {
	m, err := r.GetSOCByID(socID)
	if err != nil {
		return err
	}
	if m.EnviadaEn != nil {
		return errors.New("la solicitud ya fue enviada: el set de participantes está congelado")
	}
	p.SOCID = socID
	p.Token = uuid.New().String()
	p.Voto = string(soc.VotoPendiente)
	return r.db.Create(p).Error
}

// MarcarEnviada congela el set de participantes
func (r *Repository) MarcarEnviada(socID uint) error {
	result := r.db.Model(&ds.SolicitudOC{}).
		Where("id = ? AND enviada_en IS NULL AND is_deleted = ?", socID, false).
		Update("enviada_en", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("la solicitud no existe o ya fue enviada")
	}
	return nil
}

// RegistrarVoto persiste el voto con un update condicionado: el token se
// consume a lo más una vez aunque lleguen envíos dobles desde varias
// instancias. Los estados de la SOC se guardan en la misma transacción.
func (r *Repository) RegistrarVoto(s *soc.SOC, p *soc.Participante) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ds.Participante{}).
			Where("token = ? AND voto = ?", p.Token, string(soc.VotoPendiente)).
			Updates(map[string]interface{}{
				"voto":      string(p.Voto),
				"votado_en": p.VotadoEn,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return soc.ErrTokenInvalido
		}
		return tx.Model(&ds.SolicitudOC{}).Where("id = ?", s.ID).
			Updates(map[string]interface{}{
				"estado_solicitante": string(s.EstadoSolicitante),
				"estado_gestion":     string(s.EstadoGestion),
			}).Error
	})
}

// GuardarEstados persiste los campos que el motor pudo mutar
func (r *Repository) GuardarEstados(s *soc.SOC) error {
	return r.db.Model(&ds.SolicitudOC{}).Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"estado_solicitante": string(s.EstadoSolicitante),
			"estado_gestion":     string(s.EstadoGestion),
			"total_solicitado":   int64(s.TotalSolicitado),
		}).Error
}

func (r *Repository) RegistrarOC(socID uint, archivoURL string, s *soc.SOC) error {
	return r.db.Model(&ds.SolicitudOC{}).Where("id = ?", socID).
		Updates(map[string]interface{}{
			"oc_archivo_url": archivoURL,
			"estado_gestion": string(s.EstadoGestion),
		}).Error
}

func (r *Repository) CerrarSOC(s *soc.SOC) error {
	now := time.Now()
	return r.db.Model(&ds.SolicitudOC{}).Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"estado_gestion": string(s.EstadoGestion),
			"cerrada_en":     now,
		}).Error
}

// DeleteSOC eliminación administrativa: lógica y fuera del flujo normal
func (r *Repository) DeleteSOC(socID uint) error {
	result := r.db.Model(&ds.SolicitudOC{}).
		Where("id = ? AND is_deleted = ?", socID, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("la solicitud no existe o ya fue eliminada")
	}
	return nil
}
