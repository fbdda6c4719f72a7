package api

import (
	"alcyxob/workout-tracker/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the workout-day catalog.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseResponse is the DTO for one exercise prescription.
type ExerciseResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	AlternativeName string  `json:"alternativeName,omitempty"`
	DisplayName     string  `json:"displayName"`
	TargetSets      int     `json:"targetSets"`
	TargetRepsMin   int     `json:"targetRepsMin"`
	TargetRepsMax   int     `json:"targetRepsMax"`
	TargetRepsRange string  `json:"targetRepsRange"`
	SortOrder       int     `json:"sortOrder"`
	DefaultWeight   float64 `json:"defaultWeight"`
	Icon            string  `json:"icon,omitempty"`
	ImageURL        string  `json:"imageUrl,omitempty"`
}

// WorkoutDayResponse is the DTO for one rotation day with its exercises.
type WorkoutDayResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Subtitle  string             `json:"subtitle"`
	DayLabel  string             `json:"dayLabel"`
	SortOrder int                `json:"sortOrder"`
	Exercises []ExerciseResponse `json:"exercises"`
}

// MapWorkoutDayToResponse converts a catalog view to its DTO.
func MapWorkoutDayToResponse(view *service.WorkoutDayView) WorkoutDayResponse {
	resp := WorkoutDayResponse{
		ID:        view.ID.Hex(),
		Name:      view.Name,
		Subtitle:  view.Subtitle,
		DayLabel:  view.DayLabel,
		SortOrder: view.SortOrder,
		Exercises: make([]ExerciseResponse, 0, len(view.Exercises)),
	}
	for _, exercise := range view.Exercises {
		resp.Exercises = append(resp.Exercises, ExerciseResponse{
			ID:              exercise.ID.Hex(),
			Name:            exercise.Name,
			AlternativeName: exercise.AlternativeName,
			DisplayName:     exercise.DisplayName,
			TargetSets:      exercise.TargetSets,
			TargetRepsMin:   exercise.TargetRepsMin,
			TargetRepsMax:   exercise.TargetRepsMax,
			TargetRepsRange: exercise.TargetRepsRange,
			SortOrder:       exercise.SortOrder,
			DefaultWeight:   exercise.DefaultWeight,
			Icon:            exercise.Icon,
			ImageURL:        exercise.ImageURL,
		})
	}
	return resp
}

// SessionResponse is the DTO for a stored workout session.
type SessionResponse struct {
	ID           string    `json:"id"`
	WorkoutDayID string    `json:"workoutDayId"`
	Date         time.Time `json:"date"`
	IsCompleted  bool      `json:"isCompleted"`
	Notes        string    `json:"notes,omitempty"`
}

// GetWorkoutDays handles GET /days.
func (h *CatalogHandler) GetWorkoutDays(c *gin.Context) {
	views, err := h.catalogService.GetWorkoutDays(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load workout days")
		return
	}

	response := make([]WorkoutDayResponse, 0, len(views))
	for i := range views {
		response = append(response, MapWorkoutDayToResponse(&views[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GetWorkoutDay handles GET /days/:dayId.
func (h *CatalogHandler) GetWorkoutDay(c *gin.Context) {
	dayID, ok := parseObjectID(c, "dayId")
	if !ok {
		return
	}

	view, err := h.catalogService.GetWorkoutDay(c.Request.Context(), dayID)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutDayNotFound) {
			abortWithError(c, http.StatusNotFound, "Workout day not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load workout day")
		}
		return
	}
	c.JSON(http.StatusOK, MapWorkoutDayToResponse(view))
}
