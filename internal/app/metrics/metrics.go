package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de negocio expuestos en /metrics

var (
	Transiciones = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soc_transiciones_total",
		Help: "Transiciones de estado de gestión aplicadas",
	}, []string{"hacia"})

	Commits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "soc_fondos_commits_total",
		Help: "Compromisos de fondos aceptados por el libro",
	})

	RechazosValidacion = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soc_rechazos_validacion_total",
		Help: "Rechazos de validación del motor por tipo de error",
	}, []string{"tipo"})

	VotosRegistrados = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soc_votos_total",
		Help: "Votos consumidos por la compuerta de aprobación",
	}, []string{"decision"})
)
