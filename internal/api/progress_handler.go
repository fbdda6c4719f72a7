package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProgressHandler serves the history and charts screens.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// --- DTOs for API (Data Transfer Objects) ---

// SetResponse is a stored set as shown in history views.
type SetResponse struct {
	ID         string  `json:"id"`
	ExerciseID string  `json:"exerciseId"`
	SetNumber  int     `json:"setNumber"`
	Weight     float64 `json:"weight"`
	Reps       int     `json:"reps"`
}

// ExerciseProgressResponse is the history view for one exercise.
type ExerciseProgressResponse struct {
	ExerciseID    string               `json:"exerciseId"`
	ExerciseName  string               `json:"exerciseName"`
	CompletedSets []SetResponse        `json:"completedSets"`
	PersonalBest  *SetResponse         `json:"personalBest,omitempty"`
	Chart         []service.ChartPoint `json:"chart"`
}

// SessionDetailResponse is one finished session with its sets in display order.
type SessionDetailResponse struct {
	Session   SessionResponse    `json:"session"`
	DayName   string             `json:"dayName,omitempty"`
	Exercises []ExerciseResponse `json:"exercises"`
	Sets      []SetResponse      `json:"sets"`
}

// MonthGroupResponse buckets sessions by calendar month.
type MonthGroupResponse struct {
	Month    string            `json:"month"`
	Sessions []SessionResponse `json:"sessions"`
}

func mapSetToResponse(set *domain.ExerciseSet) SetResponse {
	return SetResponse{
		ID:         set.ID.Hex(),
		ExerciseID: set.ExerciseID.Hex(),
		SetNumber:  set.SetNumber,
		Weight:     set.Weight,
		Reps:       set.Reps,
	}
}

// GetExerciseProgress handles GET /progress/exercises/:exerciseId.
func (h *ProgressHandler) GetExerciseProgress(c *gin.Context) {
	exerciseID, ok := parseObjectID(c, "exerciseId")
	if !ok {
		return
	}

	progress, err := h.progressService.ExerciseProgress(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, "Exercise not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load exercise progress")
		}
		return
	}

	response := ExerciseProgressResponse{
		ExerciseID:    progress.Exercise.ID.Hex(),
		ExerciseName:  progress.Exercise.DisplayName(),
		CompletedSets: make([]SetResponse, 0, len(progress.CompletedSets)),
		Chart:         progress.Chart,
	}
	for i := range progress.CompletedSets {
		response.CompletedSets = append(response.CompletedSets, mapSetToResponse(&progress.CompletedSets[i]))
	}
	if progress.PersonalBest != nil {
		best := mapSetToResponse(progress.PersonalBest)
		response.PersonalBest = &best
	}

	c.JSON(http.StatusOK, response)
}

// GetSessionDetail handles GET /sessions/:sessionId.
func (h *ProgressHandler) GetSessionDetail(c *gin.Context) {
	sessionID, ok := parseObjectID(c, "sessionId")
	if !ok {
		return
	}

	detail, err := h.progressService.SessionDetail(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			abortWithError(c, http.StatusNotFound, "Session not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load session")
		}
		return
	}

	response := SessionDetailResponse{
		Session:   mapSessionToResponse(&detail.Session),
		Exercises: make([]ExerciseResponse, 0, len(detail.Exercises)),
		Sets:      make([]SetResponse, 0, len(detail.Sets)),
	}
	if detail.Day != nil {
		response.DayName = detail.Day.Name
	}
	for _, exercise := range detail.Exercises {
		response.Exercises = append(response.Exercises, ExerciseResponse{
			ID:              exercise.ID.Hex(),
			Name:            exercise.Name,
			AlternativeName: exercise.AlternativeName,
			DisplayName:     exercise.DisplayName(),
			TargetSets:      exercise.TargetSets,
			TargetRepsMin:   exercise.TargetRepsMin,
			TargetRepsMax:   exercise.TargetRepsMax,
			TargetRepsRange: exercise.TargetRepsRange(),
			SortOrder:       exercise.SortOrder,
			DefaultWeight:   exercise.DefaultWeight,
			Icon:            exercise.Icon,
		})
	}
	for i := range detail.Sets {
		response.Sets = append(response.Sets, mapSetToResponse(&detail.Sets[i]))
	}

	c.JSON(http.StatusOK, response)
}

// GetSessionsByMonth handles GET /sessions.
func (h *ProgressHandler) GetSessionsByMonth(c *gin.Context) {
	groups, err := h.progressService.SessionsByMonth(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load sessions")
		return
	}

	response := make([]MonthGroupResponse, 0, len(groups))
	for _, group := range groups {
		monthResponse := MonthGroupResponse{
			Month:    group.Month,
			Sessions: make([]SessionResponse, 0, len(group.Sessions)),
		}
		for i := range group.Sessions {
			monthResponse.Sessions = append(monthResponse.Sessions, mapSessionToResponse(&group.Sessions[i]))
		}
		response = append(response, monthResponse)
	}
	c.JSON(http.StatusOK, response)
}
