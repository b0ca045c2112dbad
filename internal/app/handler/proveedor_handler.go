package handler

import (
	"io"
	"net/http"
	"strconv"

	"backend/internal/app/ds"
	"backend/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func proveedorToResponse(p *ds.Proveedor) dto.ProveedorResponse {
	resp := dto.ProveedorResponse{
		ID:          p.ID,
		RazonSocial: p.RazonSocial,
		RUT:         p.RUT,
		Giro:        p.Giro,
		Email:       p.Email,
		Direccion:   p.Direccion,
	}
	if p.DocumentoURL != nil {
		resp.DocumentoURL = *p.DocumentoURL
	}
	return resp
}

// GetProveedores lista de proveedores con búsqueda por razón social
// @Summary Lista de proveedores
// @Tags Proveedores
// @Produce json
// @Param nombre query string false "Filtro por razón social"
// @Success 200 {object} dto.ProveedorListResponse
// @Router /api/proveedores [get]
func (h *APIHandler) GetProveedores(c *gin.Context) {
	nombre := c.Query("nombre")

	var (
		proveedores []ds.Proveedor
		err         error
	)
	if nombre != "" {
		proveedores, err = h.Repository.SearchProveedores(nombre)
	} else {
		proveedores, err = h.Repository.GetAllProveedores()
	}
	if err != nil {
		logrus.Error("Error getting proveedores: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo obtener la lista de proveedores")
		return
	}

	response := dto.ProveedorListResponse{
		Proveedores: make([]dto.ProveedorResponse, 0, len(proveedores)),
		Total:       len(proveedores),
	}
	for i := range proveedores {
		response.Proveedores = append(response.Proveedores, proveedorToResponse(&proveedores[i]))
	}

	c.JSON(http.StatusOK, response)
}

// GetProveedor detalle de un proveedor
// @Summary Detalle de proveedor
// @Tags Proveedores
// @Produce json
// @Param id path int true "ID del proveedor"
// @Success 200 {object} dto.ProveedorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/proveedores/{id} [get]
func (h *APIHandler) GetProveedor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	proveedor, err := h.Repository.GetProveedorByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "proveedor no encontrado")
		return
	}

	c.JSON(http.StatusOK, proveedorToResponse(proveedor))
}

// CreateProveedor alta de proveedor (sólo admin)
// @Summary Crear proveedor
// @Tags Proveedores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProveedorRequest true "Datos del proveedor"
// @Success 201 {object} dto.ProveedorResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/proveedores [post]
func (h *APIHandler) CreateProveedor(c *gin.Context) {
	var request dto.CreateProveedorRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	proveedor, err := h.Repository.CreateProveedor(request.RazonSocial, request.RUT, request.Giro, request.Email, request.Direccion)
	if err != nil {
		logrus.Error("Error creating proveedor: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo crear el proveedor")
		return
	}

	c.JSON(http.StatusCreated, proveedorToResponse(proveedor))
}

// UpdateProveedor modificación de proveedor (sólo admin)
// @Summary Actualizar proveedor
// @Tags Proveedores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID del proveedor"
// @Param request body dto.UpdateProveedorRequest true "Campos a actualizar"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/proveedores/{id} [put]
func (h *APIHandler) UpdateProveedor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	exists, err := h.Repository.ProveedorExists(uint(id))
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "proveedor no encontrado")
		return
	}

	var request dto.UpdateProveedorRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var razonSocial, giro, email, direccion *string
	if request.RazonSocial != "" {
		razonSocial = &request.RazonSocial
	}
	if request.Giro != "" {
		giro = &request.Giro
	}
	if request.Email != "" {
		email = &request.Email
	}
	if request.Direccion != "" {
		direccion = &request.Direccion
	}

	if err := h.Repository.UpdateProveedor(uint(id), razonSocial, giro, email, direccion); err != nil {
		logrus.Error("Error updating proveedor: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo actualizar el proveedor")
		return
	}

	h.successResponse(c, http.StatusOK, "proveedor actualizado", nil)
}

// DeleteProveedor eliminación lógica (sólo admin)
// @Summary Eliminar proveedor
// @Tags Proveedores
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID del proveedor"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/proveedores/{id} [delete]
func (h *APIHandler) DeleteProveedor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	exists, err := h.Repository.ProveedorExists(uint(id))
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "proveedor no encontrado")
		return
	}

	if err := h.Repository.DeleteProveedor(uint(id)); err != nil {
		logrus.Error("Error deleting proveedor: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo eliminar el proveedor")
		return
	}

	h.successResponse(c, http.StatusOK, "proveedor eliminado", nil)
}

// UploadProveedorDocumento carga la ficha del proveedor a MinIO
// @Summary Cargar ficha del proveedor
// @Tags Proveedores
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID del proveedor"
// @Param file formData file true "Documento (pdf)"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/proveedores/{id}/documento [post]
func (h *APIHandler) UploadProveedorDocumento(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "ID inválido")
		return
	}

	proveedor, err := h.Repository.GetProveedorByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "proveedor no encontrado")
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

	// Reemplazamos la ficha anterior si existía
	if proveedor.DocumentoURL != nil && *proveedor.DocumentoURL != "" {
		if err := h.MinIOClient.DeleteFile(*proveedor.DocumentoURL); err != nil {
			logrus.Warn("failed to delete previous documento: ", err)
		}
	}

	filename, err := h.MinIOClient.UploadFile(fileData, header.Filename, "proveedor")
	if err != nil {
		logrus.Error("Error uploading documento: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo subir el archivo")
		return
	}

	if err := h.Repository.UpdateProveedorDocumento(uint(id), filename); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "no se pudo guardar la referencia del archivo")
		return
	}

	h.successResponse(c, http.StatusOK, "documento cargado", gin.H{"documento_url": filename})
}
