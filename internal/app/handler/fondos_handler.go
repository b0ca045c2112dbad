package handler

import (
	"fmt"
	"io"
	"net/http"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/metrics"
	"backend/internal/app/repository"
	"backend/internal/app/soc"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetVentanaFondos rango legal para una nueva solicitud de fondos
// @Summary Ventana de solicitud
// @Description Rango informativo para el modo pedido; el servidor revalida al recibir la solicitud
// @Tags Fondos
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la SOC"
// @Param modo query string true "completo | porcentaje | monto | retencion"
// @Success 200 {object} dto.VentanaResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/soc/{id}/ventana [get]
func (h *APIHandler) GetVentanaFondos(c *gin.Context) {
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

	ventana, err := soc.CalcularVentana(repository.EngineSOC(m), soc.Modo(c.Query("modo")))
	if err != nil {
		h.engineError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VentanaResponse{
		Modo:    string(ventana.Modo),
		Min:     ventana.Min.Decimal(),
		Max:     ventana.Max.Decimal(),
		PorcMin: ventana.PorcMin,
		PorcMax: ventana.PorcMax,
	})
}

// CreateFondos crea una solicitud de fondos y compromete el monto en el libro
// @Summary Crear solicitud de fondos
// @Description Valida el monto contra la ventana vigente, compromete los fondos y deja la SOC en aprobación de fondos. La clave de idempotencia hace que los reenvíos devuelvan la solicitud original
// @Tags Fondos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la SOC"
// @Param request body dto.CreateFondosRequest true "Datos de la solicitud"
// @Success 201 {object} dto.SolicitudFondosResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/soc/{id}/fondos [post]
func (h *APIHandler) CreateFondos(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "usuario no autenticado")
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	var request dto.CreateFondosRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	unlock := h.Repository.LockSOC(id)
	defer unlock()

	// Reenvío con la misma clave: devolvemos la solicitud original
	if previa, err := h.Repository.GetFondosByIdempotencyKey(request.IdempotencyKey); err == nil {
		if previa.SOCID != id {
			h.errorResponse(c, http.StatusConflict, "la clave de idempotencia pertenece a otra solicitud")
			return
		}
		c.JSON(http.StatusOK, fondosToResponse(previa))
		return
	}

	m, err := h.Repository.GetSOCByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "solicitud no encontrada")
		return
	}

	engine := repository.EngineSOC(m)

	modo := soc.Modo(request.Modo)
	var monto soc.Money
	switch modo {
	case soc.ModoCompleto:
		monto = engine.Disponible()
	case soc.ModoPorcentaje:
		if request.Porcentaje == nil {
			h.errorResponse(c, http.StatusBadRequest, "el modo porcentaje requiere el campo porcentaje")
			return
		}
		monto, err = soc.MontoPorPorcentaje(engine, *request.Porcentaje)
		if err != nil {
			h.engineError(c, err)
			return
		}
	case soc.ModoMonto, soc.ModoRetencion:
		if request.Monto == nil {
			h.errorResponse(c, http.StatusBadRequest, "el modo requiere el campo monto")
			return
		}
		monto, err = soc.DesdeDecimal(*request.Monto)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	historico, err := h.Repository.MontosAprobados(id, soc.VentanaPromedio)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo leer el historial de solicitudes")
		return
	}

	solicitud, err := soc.ValidarSolicitud(engine, modo, monto, historico)
	if err != nil {
		h.engineError(c, err)
		return
	}

	aplicadas, err := h.Repository.ComprometidasMap(id)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo leer el libro de fondos")
		return
	}

	ledger := soc.NewFundLedger(engine, aplicadas)
	if err := ledger.Commit(request.IdempotencyKey, solicitud.Monto, modo); err != nil {
		h.engineError(c, err)
		return
	}

	if err := soc.NewMaquina(engine).SolicitarFondos(ledger, request.IdempotencyKey); err != nil {
		h.engineError(c, err)
		return
	}

	fila := &ds.SolicitudFondos{
		SOCID:          id,
		Modo:           string(modo),
		Monto:          int64(solicitud.Monto),
		Observacion:    request.Observacion,
		ExcedePromedio: solicitud.ExcedePromedio,
		IdempotencyKey: request.IdempotencyKey,
		SolicitanteID:  userID,
	}

	if err := h.Repository.CrearSolicitudFondos(fila, engine); err != nil {
		logrus.Error("Error creating solicitud de fondos: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo guardar la solicitud de fondos")
		return
	}

	metrics.Commits.Inc()
	metrics.Transiciones.WithLabelValues(string(engine.EstadoGestion)).Inc()

	detalle := fmt.Sprintf("solicitud de fondos por %s (modo %s)", solicitud.Monto.Decimal().String(), modo)
	if solicitud.ExcedePromedio {
		detalle += fmt.Sprintf("; excede el promedio histórico de %s en más de un 5%%", solicitud.Promedio.Decimal().String())
	}
	h.notificar(soc.Evento{
		Tipo:    soc.EventoSolicitudFondos,
		SOCID:   id,
		Detalle: detalle,
	})

	c.JSON(http.StatusCreated, fondosToResponse(fila))
}

// AprobarFondos registra el código HES/MIGO y aprueba la solicitud
// @Summary Aprobar solicitud de fondos
// @Tags Fondos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la solicitud de fondos"
// @Param request body dto.AprobarFondosRequest true "Código HES/MIGO"
// @Success 200 {object} dto.SuccessResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/fondos/{id}/aprobar [put]
func (h *APIHandler) AprobarFondos(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "usuario no autenticado")
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	var request dto.AprobarFondosRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	fila, err := h.Repository.GetFondosByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "solicitud de fondos no encontrada")
		return
	}

	unlock := h.Repository.LockSOC(fila.SOCID)
	defer unlock()

	m, err := h.Repository.GetSOCByID(fila.SOCID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "solicitud no encontrada")
		return
	}

	engine := repository.EngineSOC(m)
	if err := soc.NewMaquina(engine).AprobarFondos(); err != nil {
		h.engineError(c, err)
		return
	}

	if err := h.Repository.AprobarFondos(id, userID, request.CodigoHESMIGO, engine); err != nil {
		h.errorResponse(c, http.StatusConflict, err.Error())
		return
	}

	metrics.Transiciones.WithLabelValues(string(engine.EstadoGestion)).Inc()
	h.notificar(soc.Evento{
		Tipo:          soc.EventoFondosAprobados,
		SOCID:         fila.SOCID,
		Destinatarios: []string{m.Creador.Email},
		Detalle:       "código " + request.CodigoHESMIGO,
	})

	h.successResponse(c, http.StatusOK, "solicitud de fondos aprobada", gin.H{
		"estado_gestion": string(engine.EstadoGestion),
	})
}

// UploadFondosAdjunto respaldo de una solicitud de fondos
// @Summary Cargar respaldo
// @Tags Fondos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la solicitud de fondos"
// @Param file formData file true "Respaldo (pdf, xlsx)"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/fondos/{id}/adjunto [post]
func (h *APIHandler) UploadFondosAdjunto(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	if _, err := h.Repository.GetFondosByID(id); err != nil {
		h.errorResponse(c, http.StatusNotFound, "solicitud de fondos no encontrada")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "archivo no presente en la petición")
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo leer el archivo")
		return
	}

	filename, err := h.MinIOClient.UploadFile(fileData, header.Filename, "fondos")
	if err != nil {
		logrus.Error("Error uploading adjunto: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo subir el archivo")
		return
	}

	if err := h.Repository.UpdateFondosAdjunto(id, filename); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo guardar la referencia del archivo")
		return
	}

	h.successResponse(c, http.StatusOK, "respaldo cargado", gin.H{"adjunto_url": filename})
}
