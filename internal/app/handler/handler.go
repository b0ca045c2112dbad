package handler

import (
	"errors"
	"net/http"
	"strconv"

	"backend/internal/app/dto"
	"backend/internal/app/metrics"
	"backend/internal/app/repository"
	"backend/internal/app/role"
	"backend/internal/app/soc"
	"backend/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIHandler contiene los handlers del REST API
type APIHandler struct {
	Repository  *repository.Repository
	MinIOClient *storage.MinIOClient
	AuthHandler *AuthHandler
	Notifier    soc.Notificador
}

func NewAPIHandler(r *repository.Repository, minioClient *storage.MinIOClient, authHandler *AuthHandler, notifier soc.Notificador) *APIHandler {
	return &APIHandler{
		Repository:  r,
		MinIOClient: minioClient,
		AuthHandler: authHandler,
		Notifier:    notifier,
	}
}

// Usuario actual desde el contexto (lo deja el middleware de auth)
func (h *APIHandler) getUserFromContext(c *gin.Context) (uint, role.Role, error) {
	userID, exists := c.Get("userID")
	if !exists {
		logrus.Warn("userID not found in context")
		return 0, role.Comprador, errors.New("user not authenticated")
	}

	userRole, _ := c.Get("userRole")
	r, _ := userRole.(role.Role)

	id, ok := userID.(uint)
	if !ok {
		logrus.Errorf("getUserFromContext: invalid userID type: %T", userID)
		return 0, r, errors.New("invalid user ID")
	}

	return id, r, nil
}

// ============ Funciones auxiliares ============

func parseUintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(v), err
}

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// engineError mapea los errores del motor a códigos HTTP. El mensaje del
// motor ya viene listo para mostrar en la interfaz.
func (h *APIHandler) engineError(c *gin.Context, err error) {
	var (
		fondos    *soc.ErrorFondosInsuficientes
		rango     *soc.ErrorFueraDeRango
		descuadre *soc.ErrorAsignacionDescuadrada
		duplicado *soc.ErrorCentroDuplicado
		trans     *soc.ErrorTransicionInvalida
	)

	switch {
	case errors.Is(err, soc.ErrTokenInvalido):
		metrics.RechazosValidacion.WithLabelValues("token_invalido").Inc()
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, soc.ErrNoElegible), errors.Is(err, soc.ErrNoFinaliza):
		metrics.RechazosValidacion.WithLabelValues("no_elegible").Inc()
		h.errorResponse(c, http.StatusForbidden, err.Error())
	case errors.As(err, &fondos):
		metrics.RechazosValidacion.WithLabelValues("fondos_insuficientes").Inc()
		h.errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &rango):
		metrics.RechazosValidacion.WithLabelValues("fuera_de_rango").Inc()
		h.errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &descuadre), errors.As(err, &duplicado):
		metrics.RechazosValidacion.WithLabelValues("asignacion").Inc()
		h.errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &trans):
		metrics.RechazosValidacion.WithLabelValues("transicion_invalida").Inc()
		h.errorResponse(c, http.StatusConflict, err.Error())
	default:
		logrus.Error("unexpected engine error: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "error interno")
	}
}

// notificar emite la intención de notificación; best-effort, nunca
// revierte la transición que la originó
func (h *APIHandler) notificar(evento soc.Evento) {
	if h.Notifier == nil {
		return
	}
	h.Notifier.Notificar(evento)
}
