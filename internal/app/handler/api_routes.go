package handler

import (
	"backend/internal/app/middleware"
	"backend/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterAPIRoutes registra todos los endpoints REST con sus roles
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	todos := authMiddleware.WithAuthCheck(role.Comprador, role.Aprobador, role.Admin)
	gestion := authMiddleware.WithAuthCheck(role.Aprobador, role.Admin)
	admin := authMiddleware.WithAuthCheck(role.Admin)

	// ============ Proveedores - lectura pública, gestión sólo admin ============
	proveedores := api.Group("/proveedores")
	{
		proveedores.GET("", h.GetProveedores)
		proveedores.GET("/:id", h.GetProveedor)

		proveedores.POST("", admin, h.CreateProveedor)
		proveedores.PUT("/:id", admin, h.UpdateProveedor)
		proveedores.DELETE("/:id", admin, h.DeleteProveedor)
		proveedores.POST("/:id/documento", admin, h.UploadProveedorDocumento)
	}

	// ============ Solicitudes de orden de compra ============
	socGroup := api.Group("/soc")
	{
		socGroup.POST("", todos, h.CreateSOC)
		socGroup.GET("", todos, h.GetSOCs)
		socGroup.GET("/:id", todos, h.GetSOC)
		socGroup.POST("/:id/participantes", todos, h.AgregarParticipante)
		socGroup.PUT("/:id/enviar", todos, h.EnviarSOC)
		socGroup.POST("/:id/recordatorio", todos, h.RecordarVotos)

		// Etapas de gestión
		socGroup.POST("/:id/oc", gestion, h.RegistrarOC)
		socGroup.GET("/:id/ventana", todos, h.GetVentanaFondos)
		socGroup.POST("/:id/fondos", todos, h.CreateFondos)
		socGroup.PUT("/:id/volver-a-por-oc", gestion, h.VolverAPorOC)
		socGroup.PUT("/:id/revertir", admin, h.RevertirSOC)
		socGroup.DELETE("/:id", admin, h.DeleteSOC)

		// El cierre manual lo ejecuta un participante con finaliza usando el
		// token de su enlace; con consumo total no requiere token
		socGroup.PUT("/:id/cerrar", h.CerrarSOC)

		// Presupuesto y distribución por centros de gestión
		socGroup.POST("/:id/presupuestos", gestion, h.CreateArchivoPresupuesto)
		socGroup.GET("/:id/presupuestos", todos, h.GetArchivosPresupuesto)
		socGroup.PUT("/:id/asignaciones", gestion, h.Distribuir)
		socGroup.GET("/:id/asignaciones", todos, h.GetAsignaciones)
	}

	// ============ Solicitudes de fondos (HES/MIGO) ============
	fondos := api.Group("/fondos")
	{
		fondos.PUT("/:id/aprobar", gestion, h.AprobarFondos)
		fondos.POST("/:id/adjunto", todos, h.UploadFondosAdjunto)
	}

	// ============ Votos - endpoint público, el token es la credencial ============
	api.POST("/votos/:token", h.RegistrarVoto)

	// ============ Autenticación ============
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.AuthHandler.RegisterUser)
		auth.POST("/login", h.AuthHandler.LoginUser)

		auth.POST("/logout", todos, h.AuthHandler.LogoutUser)
		auth.GET("/profile", todos, h.AuthHandler.GetUserProfile)
		auth.PUT("/profile", todos, h.AuthHandler.UpdateProfile)
	}

	// Documentación y observabilidad
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ping", h.Ping)
}

// Ping verificación de vida del servicio
// @Summary Ping
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(c *gin.Context) {
	c.JSON(200, gin.H{"message": "pong"})
}
