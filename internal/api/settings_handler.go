package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the single user's tunables.
type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest replaces the stored settings wholesale.
type UpdateSettingsRequest struct {
	RestTimerSeconds int     `json:"restTimerSeconds" binding:"required,min=1"`
	WeightIncrement  float64 `json:"weightIncrement" binding:"required,gt=0"`
	UseMetric        bool    `json:"useMetric"`
}

// SettingsResponse mirrors the stored settings plus the display unit label.
type SettingsResponse struct {
	RestTimerSeconds int     `json:"restTimerSeconds"`
	WeightIncrement  float64 `json:"weightIncrement"`
	UseMetric        bool    `json:"useMetric"`
	WeightUnit       string  `json:"weightUnit"`
}

func mapSettingsToResponse(settings domain.Settings) SettingsResponse {
	return SettingsResponse{
		RestTimerSeconds: settings.RestTimerSeconds,
		WeightIncrement:  settings.WeightIncrement,
		UseMetric:        settings.UseMetric,
		WeightUnit:       settings.WeightUnit(),
	}
}

// GetSettings handles GET /settings.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, mapSettingsToResponse(settings))
}

// UpdateSettings handles PUT /settings.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: restTimerSeconds and weightIncrement must be positive")
		return
	}

	saved, err := h.settingsService.Update(c.Request.Context(), domain.Settings{
		RestTimerSeconds: req.RestTimerSeconds,
		WeightIncrement:  req.WeightIncrement,
		UseMetric:        req.UseMetric,
	})
	if err != nil {
		if errors.Is(err, service.ErrSettingsInvalid) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save settings")
		}
		return
	}
	c.JSON(http.StatusOK, mapSettingsToResponse(saved))
}
