package handler

import (
	"io"
	"net/http"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/soc"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CreateArchivoPresupuesto carga una línea de presupuesto (cotización)
// @Summary Cargar línea de presupuesto
// @Tags Presupuesto
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la SOC"
// @Param nombre formData string true "Nombre de la línea"
// @Param monto formData string true "Monto de la línea"
// @Param file formData file false "Cotización (pdf, xlsx)"
// @Success 201 {object} dto.ArchivoPresupuestoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/soc/{id}/presupuestos [post]
func (h *APIHandler) CreateArchivoPresupuesto(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	if _, err := h.Repository.GetSOCByID(id); err != nil {
		h.errorResponse(c, http.StatusNotFound, "solicitud no encontrada")
		return
	}

	nombre := c.PostForm("nombre")
	if nombre == "" {
		h.errorResponse(c, http.StatusBadRequest, "el campo nombre es obligatorio")
		return
	}

	montoDec, err := decimal.NewFromString(c.PostForm("monto"))
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "monto inválido")
		return
	}
	monto, err := soc.DesdeDecimal(montoDec)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if monto <= 0 {
		h.errorResponse(c, http.StatusBadRequest, "el monto debe ser positivo")
		return
	}

	archivo := &ds.ArchivoPresupuesto{
		SOCID:  id,
		Nombre: nombre,
		Monto:  int64(monto),
	}

	// La cotización adjunta es opcional
	if file, header, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		fileData, err := io.ReadAll(file)
		if err != nil {
			h.errorResponse(c, http.StatusInternalServerError, "no se pudo leer el archivo")
			return
		}
		filename, err := h.MinIOClient.UploadFile(fileData, header.Filename, "presupuesto")
		if err != nil {
			logrus.Error("Error uploading presupuesto: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "no se pudo subir el archivo")
			return
		}
		archivo.ArchivoURL = filename
	}

	if err := h.Repository.CrearArchivoPresupuesto(archivo); err != nil {
		logrus.Error("Error creating archivo presupuesto: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo guardar la línea de presupuesto")
		return
	}

	c.JSON(http.StatusCreated, dto.ArchivoPresupuestoResponse{
		ID:           archivo.ID,
		Nombre:       archivo.Nombre,
		Monto:        soc.Money(archivo.Monto).Decimal(),
		ArchivoURL:   archivo.ArchivoURL,
		Seleccionado: archivo.Seleccionado,
	})
}

// GetArchivosPresupuesto líneas de presupuesto de una SOC
// @Summary Líneas de presupuesto
// @Tags Presupuesto
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la SOC"
// @Success 200 {array} dto.ArchivoPresupuestoResponse
// @Router /api/soc/{id}/presupuestos [get]
func (h *APIHandler) GetArchivosPresupuesto(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	archivos, err := h.Repository.GetArchivosPresupuesto(id)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo leer las líneas de presupuesto")
		return
	}

	response := make([]dto.ArchivoPresupuestoResponse, 0, len(archivos))
	for _, a := range archivos {
		response = append(response, dto.ArchivoPresupuestoResponse{
			ID:           a.ID,
			Nombre:       a.Nombre,
			Monto:        soc.Money(a.Monto).Decimal(),
			ArchivoURL:   a.ArchivoURL,
			Seleccionado: a.Seleccionado,
		})
	}

	c.JSON(http.StatusOK, response)
}

// Distribuir reparte el monto de la línea seleccionada entre centros
// @Summary Distribuir asignaciones
// @Description La suma de las cuotas debe calzar exacta con el monto de la línea. Redistribuir reemplaza el set completo
// @Tags Presupuesto
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la SOC"
// @Param request body dto.DistribuirRequest true "Línea seleccionada y cuotas"
// @Success 200 {array} dto.AsignacionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/soc/{id}/asignaciones [put]
func (h *APIHandler) Distribuir(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	var request dto.DistribuirRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	unlock := h.Repository.LockSOC(id)
	defer unlock()

	m, err := h.Repository.GetSOCByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "solicitud no encontrada")
		return
	}

	// La distribución sólo tiene sentido con la gestión en curso
	gestion := soc.EstadoGestion(m.EstadoGestion)
	if gestion == soc.GestionPendiente || gestion.EsTerminal() {
		h.engineError(c, &soc.ErrorTransicionInvalida{Desde: gestion, Hacia: gestion,
			Motivo: "la solicitud no está en gestión"})
		return
	}

	archivo, err := h.Repository.GetArchivoPresupuesto(request.ArchivoID)
	if err != nil || archivo.SOCID != id {
		h.errorResponse(c, http.StatusNotFound, "la línea de presupuesto no pertenece a la solicitud")
		return
	}

	asignaciones := make([]soc.Asignacion, len(request.Asignaciones))
	for i, a := range request.Asignaciones {
		monto, err := soc.DesdeDecimal(a.Monto)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		asignaciones[i] = soc.Asignacion{Centro: a.Centro, Monto: monto}
	}

	aceptadas, err := soc.Distribuir(soc.Money(archivo.Monto), asignaciones)
	if err != nil {
		h.engineError(c, err)
		return
	}

	if err := h.Repository.ReemplazarAsignaciones(id, request.ArchivoID, aceptadas); err != nil {
		logrus.Error("Error replacing asignaciones: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo guardar la distribución")
		return
	}

	response := make([]dto.AsignacionResponse, 0, len(aceptadas))
	for _, a := range aceptadas {
		response = append(response, dto.AsignacionResponse{
			Centro: a.Centro,
			Monto:  a.Monto.Decimal(),
		})
	}

	c.JSON(http.StatusOK, response)
}

// GetAsignaciones distribución vigente por centros de gestión
// @Summary Asignaciones vigentes
// @Tags Presupuesto
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la SOC"
// @Success 200 {array} dto.AsignacionResponse
// @Router /api/soc/{id}/asignaciones [get]
func (h *APIHandler) GetAsignaciones(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	asignaciones, err := h.Repository.GetAsignaciones(id)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo leer las asignaciones")
		return
	}

	response := make([]dto.AsignacionResponse, 0, len(asignaciones))
	for _, a := range asignaciones {
		response = append(response, dto.AsignacionResponse{
			Centro: a.Centro,
			Monto:  soc.Money(a.Monto).Decimal(),
		})
	}

	c.JSON(http.StatusOK, response)
}
