package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/golden_hour_dispatch/internal/config"
	"github.com/shenikar/golden_hour_dispatch/internal/dispatch"
	"github.com/shenikar/golden_hour_dispatch/internal/models"
	"github.com/shenikar/golden_hour_dispatch/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	dispatchService service.DispatchService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(dispatchService service.DispatchService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		dispatchService: dispatchService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary Register a new emergency
// @Description Register an emergency and run it through the full dispatch pipeline: triage, hospital selection and notification. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param emergency body CreateEmergencyRequest true "Emergency registration request"
// @Success 201 {object} EmergencyResponse "Emergency dispatched"
// @Success 200 {object} EmergencyResponse "Pipeline finished in FAILED state"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Dispatch already in progress for this emergency"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies [post]
func (h *Handler) createEmergency(c *gin.Context) {
	var input CreateEmergencyRequest
	log := h.logger.WithField("method", "createEmergency")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := h.dispatchService.HandleEmergency(c.Request.Context(), DTOToEmergencyInput(input))
	if err != nil {
		var validationErr *dispatch.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		case errors.Is(err, dispatch.ErrBusy):
			c.JSON(http.StatusConflict, gin.H{"error": "dispatch already in progress for this emergency"})
		default:
			log.WithError(err).Error("Failed to handle emergency in service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	// FAILED - терминальный исход конвейера, а не ошибка запроса
	if snapshot.Status == models.StatusFailed {
		c.JSON(http.StatusOK, SnapshotToEmergencyResponse(snapshot))
		return
	}
	c.JSON(http.StatusCreated, SnapshotToEmergencyResponse(snapshot))
}

// @Summary Get emergency status
// @Description Get the current status of an emergency by its ID. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Emergency ID"
// @Success 200 {object} EmergencyResponse
// @Failure 400 {object} map[string]string "Invalid emergency ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Emergency not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id} [get]
func (h *Handler) getEmergency(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid emergency ID"})
		return
	}
	log := h.logger.WithField("method", "getEmergency").WithField("id", id)

	snapshot, err := h.dispatchService.GetStatus(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, dispatch.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "emergency not found"})
			return
		}
		log.WithError(err).Error("Failed to get emergency status from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, SnapshotToEmergencyResponse(snapshot))
}

// @Summary Get assigned hospital
// @Description Get the hospital assigned to an emergency. Returns 202 while the assignment is still pending. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Emergency ID"
// @Success 200 {object} HospitalResponse
// @Success 202 {object} map[string]string "Hospital assignment pending"
// @Failure 400 {object} map[string]string "Invalid emergency ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Emergency not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/hospital [get]
func (h *Handler) getAssignedHospital(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid emergency ID"})
		return
	}
	log := h.logger.WithField("method", "getAssignedHospital").WithField("id", id)

	hospital, err := h.dispatchService.GetAssignedHospital(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrPending):
			c.JSON(http.StatusAccepted, gin.H{"status": "pending"})
		case errors.Is(err, dispatch.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "emergency not found"})
		default:
			log.WithError(err).Error("Failed to get assigned hospital from service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, ModelToHospitalResponse(hospital))
}

// @Summary Complete an emergency
// @Description Mark an emergency as completed after the patient arrived at the hospital. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Emergency ID"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid emergency ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Emergency not found"
// @Failure 409 {object} map[string]string "Emergency is not in a completable state"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/complete [post]
func (h *Handler) completeEmergency(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid emergency ID"})
		return
	}
	log := h.logger.WithField("method", "completeEmergency").WithField("id", id)

	if err := h.dispatchService.CompleteEmergency(c.Request.Context(), id); err != nil {
		var invalidTransition *dispatch.InvalidTransitionError
		switch {
		case errors.Is(err, dispatch.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "emergency not found"})
		case errors.As(err, &invalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": invalidTransition.Error()})
		default:
			log.WithError(err).Error("Failed to complete emergency in service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Get a list of hospitals
// @Description Get the hospital directory with current bed availability. Requires API key.
// @Tags Hospitals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} HospitalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /hospitals [get]
func (h *Handler) listHospitals(c *gin.Context) {
	log := h.logger.WithField("method", "listHospitals")

	hospitals, err := h.dispatchService.ListHospitals(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list hospitals from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToHospitalResponses(hospitals))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
