package handler

import (
	"net/http"
	"time"

	"backend/internal/app/dto"
	"backend/internal/app/metrics"
	"backend/internal/app/repository"
	"backend/internal/app/soc"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RegistrarVoto consume el token de un participante y aplica su decisión.
// Endpoint público: el token del enlace de correo es la credencial.
// @Summary Registrar voto
// @Description Consume el token de un solo uso y registra la decisión del participante. Cualquier rechazo corta el flujo; la unanimidad deja la SOC lista para finanzas
// @Tags Votos
// @Accept json
// @Produce json
// @Param token path string true "Token del participante"
// @Param request body dto.VotoRequest true "Decisión"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/votos/{token} [post]
func (h *APIHandler) RegistrarVoto(c *gin.Context) {
	token := c.Param("token")

	var request dto.VotoRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	fila, err := h.Repository.GetParticipanteByToken(token)
	if err != nil {
		h.engineError(c, soc.ErrTokenInvalido)
		return
	}

	unlock := h.Repository.LockSOC(fila.SOCID)
	defer unlock()

	m, err := h.Repository.GetSOCByID(fila.SOCID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "solicitud no encontrada")
		return
	}
	if m.EnviadaEn == nil {
		h.errorResponse(c, http.StatusBadRequest, "la solicitud aún no ha sido enviada a aprobación")
		return
	}

	participantes, err := h.Repository.GetParticipantes(m.ID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo leer el set de participantes")
		return
	}

	engine := repository.EngineSOC(m)
	gate := soc.NewApprovalGate(engine, repository.EngineParticipantes(participantes))

	resultado, err := gate.RegistrarVoto(token, soc.EstadoVoto(request.Decision), time.Now())
	if err != nil {
		h.engineError(c, err)
		return
	}

	// La compuerta ya dejó el estado del solicitante; la máquina mueve la
	// gestión que le corresponde
	maquina := soc.NewMaquina(engine)
	switch {
	case resultado.Estado == soc.SolicitanteRechazada && !engine.EstadoGestion.EsTerminal():
		if err := maquina.Rechazar(); err != nil {
			h.engineError(c, err)
			return
		}
	case resultado.ListaParaFinanza:
		if err := maquina.IniciarGestion(); err != nil {
			h.engineError(c, err)
			return
		}
	}

	if err := h.Repository.RegistrarVoto(engine, resultado.Participante); err != nil {
		// El update condicionado perdió la carrera: otro envío consumió el token
		h.engineError(c, err)
		return
	}

	metrics.VotosRegistrados.WithLabelValues(request.Decision).Inc()

	switch {
	case resultado.Estado == soc.SolicitanteRechazada:
		h.notificar(soc.Evento{
			Tipo:          soc.EventoRechazada,
			SOCID:         m.ID,
			Destinatarios: []string{m.Creador.Email},
			Detalle:       "un participante rechazó la solicitud",
		})
	case resultado.ListaParaFinanza:
		h.notificar(soc.Evento{
			Tipo:          soc.EventoListaParaFinanza,
			SOCID:         m.ID,
			Destinatarios: []string{m.Creador.Email},
			Detalle:       "aprobación unánime: la solicitud pasa a gestión",
		})
	}

	logrus.Infof("vote %s recorded for SOC %d", request.Decision, m.ID)
	h.successResponse(c, http.StatusOK, "voto registrado", gin.H{
		"estado_solicitante": string(engine.EstadoSolicitante),
		"estado_gestion":     string(engine.EstadoGestion),
	})
}

// RecordarVotos reenvía el recordatorio a los participantes pendientes
// @Summary Recordatorio de voto
// @Tags Votos
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la SOC"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/soc/{id}/recordatorio [post]
func (h *APIHandler) RecordarVotos(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	m, err := h.Repository.GetSOCByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "solicitud no encontrada")
		return
	}
	if m.EnviadaEn == nil {
		h.errorResponse(c, http.StatusBadRequest, "la solicitud aún no ha sido enviada a aprobación")
		return
	}

	participantes, err := h.Repository.GetParticipantes(m.ID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo leer el set de participantes")
		return
	}

	gate := soc.NewApprovalGate(repository.EngineSOC(m), repository.EngineParticipantes(participantes))
	pendientes := gate.Pendientes()
	if len(pendientes) == 0 {
		h.successResponse(c, http.StatusOK, "no quedan votos pendientes", nil)
		return
	}

	destinatarios := make([]string, 0, len(pendientes))
	for _, p := range pendientes {
		destinatarios = append(destinatarios, p.Email)
	}
	h.notificar(soc.Evento{
		Tipo:          soc.EventoRecordatorioVoto,
		SOCID:         m.ID,
		Destinatarios: destinatarios,
	})

	h.successResponse(c, http.StatusOK, "recordatorio enviado", gin.H{"pendientes": len(destinatarios)})
}
