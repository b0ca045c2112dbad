package repository

import (
	"fmt"
	"sync"

	"backend/internal/app/ds"
	"backend/internal/app/soc"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
	// Un mutex por SOC: las operaciones sobre SOC distintas avanzan en
	// paralelo, sobre la misma SOC serializan (commit y distribuir no
	// conmutan entre sí)
	socLocks sync.Map
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Migración automática de todas las tablas
	err = db.AutoMigrate(
		&ds.User{},
		&ds.Proveedor{},
		&ds.SolicitudOC{},
		&ds.Participante{},
		&ds.SolicitudFondos{},
		&ds.ArchivoPresupuesto{},
		&ds.AsignacionCentro{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

// LockSOC toma el lock de una SOC y devuelve la función que lo libera
func (r *Repository) LockSOC(socID uint) func() {
	v, _ := r.socLocks.LoadOrStore(socID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// ============ Mapeo fila <-> valor del motor ============

// EngineSOC arma el valor plano que consume el motor
func EngineSOC(m *ds.SolicitudOC) *soc.SOC {
	return &soc.SOC{
		ID:                m.ID,
		Tipo:              soc.TipoSOC(m.Tipo),
		TotalSolicitud:    soc.Money(m.TotalSolicitud),
		TotalSolicitado:   soc.Money(m.TotalSolicitado),
		Retiene5Porc:      m.Retiene5PorcSOC,
		EstadoSolicitante: soc.EstadoSolicitante(m.EstadoSolicitante),
		EstadoGestion:     soc.EstadoGestion(m.EstadoGestion),
	}
}

// EngineParticipantes arma los participantes para la compuerta de aprobación
func EngineParticipantes(filas []ds.Participante) []*soc.Participante {
	out := make([]*soc.Participante, len(filas))
	for i, f := range filas {
		out[i] = &soc.Participante{
			ID:       f.ID,
			Nombre:   f.Nombre,
			Email:    f.Email,
			Aprueba:  f.Aprueba,
			Finaliza: f.Finaliza,
			Token:    f.Token,
			Voto:     soc.EstadoVoto(f.Voto),
			VotadoEn: f.VotadoEn,
		}
	}
	return out
}
