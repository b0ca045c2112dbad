package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/metrics"
	"backend/internal/app/repository"
	"backend/internal/app/role"
	"backend/internal/app/soc"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *APIHandler) socToResponse(m *ds.SolicitudOC) dto.SOCResponse {
	engine := repository.EngineSOC(m)

	resp := dto.SOCResponse{
		ID:                m.ID,
		Tipo:              m.Tipo,
		EstadoSolicitante: m.EstadoSolicitante,
		EstadoGestion:     m.EstadoGestion,
		TotalSolicitud:    soc.Money(m.TotalSolicitud).Decimal(),
		TotalSolicitado:   soc.Money(m.TotalSolicitado).Decimal(),
		Retencion:         engine.Retencion().Decimal(),
		Disponible:        engine.Disponible().Decimal(),
		Retiene5PorcSOC:   m.Retiene5PorcSOC,
		Descripcion:       m.Descripcion,
		Creador:           m.Creador.FullName,
		CreatedAt:         m.CreatedAt,
		EnviadaEn:         m.EnviadaEn,
		CerradaEn:         m.CerradaEn,
	}
	if m.Proveedor != nil {
		resp.Proveedor = m.Proveedor.RazonSocial
	}
	return resp
}

func fondosToResponse(f *ds.SolicitudFondos) dto.SolicitudFondosResponse {
	resp := dto.SolicitudFondosResponse{
		ID:             f.ID,
		SOCID:          f.SOCID,
		Modo:           f.Modo,
		Monto:          soc.Money(f.Monto).Decimal(),
		Observacion:    f.Observacion,
		Estado:         f.Estado,
		ExcedePromedio: f.ExcedePromedio,
		Solicitante:    f.Solicitante.FullName,
		CreatedAt:      f.CreatedAt,
		AprobadaEn:     f.AprobadaEn,
	}
	if f.CodigoHESMIGO != nil {
		resp.CodigoHESMIGO = *f.CodigoHESMIGO
	}
	if f.AdjuntoURL != nil {
		resp.AdjuntoURL = *f.AdjuntoURL
	}
	if f.Aprobador != nil {
		resp.Aprobador = f.Aprobador.FullName
	}
	return resp
}

// CreateSOC crea una solicitud de orden de compra con sus participantes
// @Summary Crear SOC
// @Description Crea la SOC en estado pendiente; cada participante recibe un token de voto de un solo uso
// @Tags SOC
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSOCRequest true "Datos de la SOC"
// @Success 201 {object} dto.SOCResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/soc [post]
func (h *APIHandler) CreateSOC(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "usuario no autenticado")
		return
	}

	var request dto.CreateSOCRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	total, err := soc.DesdeDecimal(request.TotalSolicitud)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if total <= 0 {
		h.errorResponse(c, http.StatusBadRequest, "el total de la solicitud debe ser positivo")
		return
	}

	// Sin al menos un aprobador la unanimidad sería trivial
	tieneAprobador := false
	for _, p := range request.Participantes {
		if p.Aprueba {
			tieneAprobador = true
			break
		}
	}
	if !tieneAprobador {
		h.errorResponse(c, http.StatusBadRequest, "la solicitud necesita al menos un participante que apruebe")
		return
	}

	if request.ProveedorID != nil {
		exists, err := h.Repository.ProveedorExists(*request.ProveedorID)
		if err != nil || !exists {
			h.errorResponse(c, http.StatusBadRequest, "el proveedor indicado no existe")
			return
		}
	}

	m := &ds.SolicitudOC{
		Tipo:            request.Tipo,
		TotalSolicitud:  int64(total),
		Retiene5PorcSOC: request.Retiene5PorcSOC,
		Descripcion:     request.Descripcion,
		CreadorID:       userID,
		ProveedorID:     request.ProveedorID,
	}

	participantes := make([]ds.Participante, len(request.Participantes))
	for i, p := range request.Participantes {
		participantes[i] = ds.Participante{
			Nombre:   p.Nombre,
			Email:    p.Email,
			Aprueba:  p.Aprueba,
			Finaliza: p.Finaliza,
		}
	}

	m, err = h.Repository.CreateSOC(m, participantes)
	if err != nil {
		logrus.Error("Error creating SOC: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo crear la solicitud")
		return
	}

	created, err := h.Repository.GetSOCByID(m.ID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo leer la solicitud creada")
		return
	}

	c.JSON(http.StatusCreated, h.socToResponse(created))
}

// GetSOCs lista de solicitudes con filtros
// @Summary Lista de SOC
// @Description Filtra por estado de gestión y rango de fechas. Un comprador sólo ve sus propias solicitudes
// @Tags SOC
// @Produce json
// @Security BearerAuth
// @Param estado query string false "Estado de gestión"
// @Param desde query string false "Fecha desde (RFC3339)"
// @Param hasta query string false "Fecha hasta (RFC3339)"
// @Success 200 {object} dto.SOCListResponse
// @Router /api/soc [get]
func (h *APIHandler) GetSOCs(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "usuario no autenticado")
		return
	}

	estado := c.Query("estado")

	var desde, hasta *time.Time
	if v := c.Query("desde"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "fecha 'desde' inválida, use RFC3339")
			return
		}
		desde = &t
	}
	if v := c.Query("hasta"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "fecha 'hasta' inválida, use RFC3339")
			return
		}
		hasta = &t
	}

	var creadorID *uint
	if userRole == role.Comprador {
		creadorID = &userID
	}

	solicitudes, err := h.Repository.GetSOCs(estado, desde, hasta, creadorID)
	if err != nil {
		logrus.Error("Error getting SOCs: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo obtener la lista de solicitudes")
		return
	}

	response := dto.SOCListResponse{
		Solicitudes: make([]dto.SOCResponse, 0, len(solicitudes)),
		Total:       len(solicitudes),
	}
	for i := range solicitudes {
		response.Solicitudes = append(response.Solicitudes, h.socToResponse(&solicitudes[i]))
	}

	c.JSON(http.StatusOK, response)
}

// GetSOC detalle con participantes y solicitudes de fondos
// @Summary Detalle de SOC
// @Tags SOC
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la SOC"
// @Success 200 {object} dto.SOCResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/soc/{id} [get]
func (h *APIHandler) GetSOC(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "usuario no autenticado")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	m, err := h.Repository.GetSOCByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "solicitud no encontrada")
		return
	}

	if userRole == role.Comprador && m.CreadorID != userID {
		h.errorResponse(c, http.StatusForbidden, "la solicitud pertenece a otro comprador")
		return
	}

	response := h.socToResponse(m)

	participantes, err := h.Repository.GetParticipantes(m.ID)
	if err == nil {
		for _, p := range participantes {
			response.Participantes = append(response.Participantes, dto.ParticipanteResponse{
				ID:       p.ID,
				Nombre:   p.Nombre,
				Email:    p.Email,
				Aprueba:  p.Aprueba,
				Finaliza: p.Finaliza,
				Voto:     p.Voto,
				VotadoEn: p.VotadoEn,
			})
		}
	}

	fondos, err := h.Repository.GetFondosBySOC(m.ID)
	if err == nil {
		for i := range fondos {
			response.Fondos = append(response.Fondos, fondosToResponse(&fondos[i]))
		}
	}

	c.JSON(http.StatusOK, response)
}

// AgregarParticipante alta de participante antes del envío
// @Summary Agregar participante
// @Description El set de participantes queda congelado una vez enviada la SOC
// @Tags SOC
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la SOC"
// @Param request body dto.ParticipanteRequest true "Datos del participante"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/soc/{id}/participantes [post]
func (h *APIHandler) AgregarParticipante(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	var request dto.ParticipanteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	p := &ds.Participante{
		Nombre:   request.Nombre,
		Email:    request.Email,
		Aprueba:  request.Aprueba,
		Finaliza: request.Finaliza,
	}

	if err := h.Repository.AgregarParticipante(uint(id), p); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusCreated, "participante agregado", nil)
}

// EnviarSOC envía la solicitud a la ronda de aprobación
// @Summary Enviar SOC
// @Description Congela el set de participantes y dispara los correos con los enlaces de voto
// @Tags SOC
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la SOC"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/soc/{id}/enviar [put]
func (h *APIHandler) EnviarSOC(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	if err := h.Repository.MarcarEnviada(uint(id)); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	participantes, err := h.Repository.GetParticipantes(uint(id))
	if err == nil {
		destinatarios := make([]string, 0, len(participantes))
		for _, p := range participantes {
			if p.Voto == string(soc.VotoPendiente) {
				destinatarios = append(destinatarios, p.Email)
			}
		}
		h.notificar(soc.Evento{
			Tipo:          soc.EventoRecordatorioVoto,
			SOCID:         uint(id),
			Destinatarios: destinatarios,
			Detalle:       "solicitud enviada a aprobación",
		})
	}

	h.successResponse(c, http.StatusOK, "solicitud enviada", nil)
}

// RegistrarOC carga la orden de compra emitida y avanza la gestión
// @Summary Registrar orden de compra
// @Tags SOC
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la SOC"
// @Param file formData file true "Orden de compra (pdf)"
// @Success 200 {object} dto.SuccessResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/soc/{id}/oc [post]
func (h *APIHandler) RegistrarOC(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
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

	unlock := h.Repository.LockSOC(uint(id))
	defer unlock()

	m, err := h.Repository.GetSOCByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "solicitud no encontrada")
		return
	}

	engine := repository.EngineSOC(m)
	if err := soc.NewMaquina(engine).RegistrarOC(); err != nil {
		h.engineError(c, err)
		return
	}

	filename, err := h.MinIOClient.UploadFile(fileData, header.Filename, "oc")
	if err != nil {
		logrus.Error("Error uploading OC: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo subir el archivo")
		return
	}

	if err := h.Repository.RegistrarOC(uint(id), filename, engine); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo registrar la orden de compra")
		return
	}

	metrics.Transiciones.WithLabelValues(string(engine.EstadoGestion)).Inc()
	h.successResponse(c, http.StatusOK, "orden de compra registrada", gin.H{"oc_archivo_url": filename})
}

// CerrarSOC cierre manual por un participante con finaliza
// @Summary Cerrar SOC
// @Description Con consumo total el cierre es directo; con saldo pendiente sólo un participante con finaliza puede cerrar
// @Tags SOC
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la SOC"
// @Param token query string false "Token del participante que cierra"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/soc/{id}/cerrar [put]
func (h *APIHandler) CerrarSOC(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	unlock := h.Repository.LockSOC(uint(id))
	defer unlock()

	m, err := h.Repository.GetSOCByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "solicitud no encontrada")
		return
	}

	var participante *soc.Participante
	if token := c.Query("token"); token != "" {
		fila, err := h.Repository.GetParticipanteByToken(token)
		if err != nil || fila.SOCID != uint(id) {
			h.engineError(c, soc.ErrTokenInvalido)
			return
		}
		participante = &soc.Participante{
			ID:       fila.ID,
			Nombre:   fila.Nombre,
			Email:    fila.Email,
			Aprueba:  fila.Aprueba,
			Finaliza: fila.Finaliza,
		}
	}

	engine := repository.EngineSOC(m)
	if err := soc.NewMaquina(engine).Cerrar(participante); err != nil {
		h.engineError(c, err)
		return
	}

	if err := h.Repository.CerrarSOC(engine); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo cerrar la solicitud")
		return
	}

	metrics.Transiciones.WithLabelValues(string(soc.GestionCerrada)).Inc()
	h.notificar(soc.Evento{Tipo: soc.EventoCerrada, SOCID: uint(id)})
	h.successResponse(c, http.StatusOK, "solicitud cerrada", nil)
}

// RevertirSOC reversión administrativa de un paso de gestión
// @Summary Revertir un paso
// @Description Vuelve la gestión un paso atrás. Los fondos ya comprometidos no se devuelven
// @Tags SOC
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la SOC"
// @Success 200 {object} dto.SuccessResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/soc/{id}/revertir [put]
func (h *APIHandler) RevertirSOC(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	unlock := h.Repository.LockSOC(uint(id))
	defer unlock()

	m, err := h.Repository.GetSOCByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "solicitud no encontrada")
		return
	}

	engine := repository.EngineSOC(m)
	if err := soc.NewMaquina(engine).RevertirAnterior(); err != nil {
		h.engineError(c, err)
		return
	}

	if err := h.Repository.GuardarEstados(engine); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo guardar el estado")
		return
	}

	metrics.Transiciones.WithLabelValues(string(engine.EstadoGestion)).Inc()
	h.successResponse(c, http.StatusOK, "solicitud revertida", gin.H{"estado_gestion": string(engine.EstadoGestion)})
}

// VolverAPorOC devolución desde las etapas de fondos a la etapa de OC
// @Summary Devolver a etapa de OC
// @Tags SOC
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la SOC"
// @Success 200 {object} dto.SuccessResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/soc/{id}/volver-a-por-oc [put]
func (h *APIHandler) VolverAPorOC(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	unlock := h.Repository.LockSOC(uint(id))
	defer unlock()

	m, err := h.Repository.GetSOCByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "solicitud no encontrada")
		return
	}

	engine := repository.EngineSOC(m)
	if err := soc.NewMaquina(engine).VolverAPorOC(); err != nil {
		h.engineError(c, err)
		return
	}

	if err := h.Repository.GuardarEstados(engine); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo guardar el estado")
		return
	}

	metrics.Transiciones.WithLabelValues(string(soc.GestionPorOC)).Inc()
	h.successResponse(c, http.StatusOK, "solicitud devuelta a la etapa de orden de compra", nil)
}

// DeleteSOC eliminación administrativa (lógica), sólo en etapa pendiente
// @Summary Eliminar SOC
// @Tags SOC
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la SOC"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/soc/{id} [delete]
func (h *APIHandler) DeleteSOC(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	m, err := h.Repository.GetSOCByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "solicitud no encontrada")
		return
	}
	if m.EstadoGestion != string(soc.GestionPendiente) {
		h.errorResponse(c, http.StatusConflict, "sólo una solicitud pendiente puede ser eliminada")
		return
	}

	if err := h.Repository.DeleteSOC(uint(id)); err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "solicitud eliminada", nil)
}
