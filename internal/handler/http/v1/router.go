package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	auth := APIKeyAuthMiddleware(h.cfg, h.logger)

	// Маршруты конвейера экстренных вызовов, все за API-ключом
	emergencies := api.Group("/emergencies", auth)
	{
		emergencies.POST("", h.createEmergency)
		emergencies.GET("/:id", h.getEmergency)
		emergencies.GET("/:id/hospital", h.getAssignedHospital)
		emergencies.POST("/:id/complete", h.completeEmergency)
	}

	// Справочник больниц
	api.GET("/hospitals", auth, h.listHospitals)

	// Маршрут Health-check остаётся открытым
	api.GET("/system/health", h.healthCheck)
}
