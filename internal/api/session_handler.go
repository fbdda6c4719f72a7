package api

import (
	"alcyxob/workout-tracker/internal/service"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionHandler drives the active-workout lifecycle over HTTP.
type SessionHandler struct {
	sessionService     service.SessionService
	progressionService service.ProgressionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService, progressionService service.ProgressionService) *SessionHandler {
	return &SessionHandler{
		sessionService:     sessionService,
		progressionService: progressionService,
	}
}

// --- DTOs for API (Data Transfer Objects) ---

// StartWorkoutRequest selects the rotation day to perform.
type StartWorkoutRequest struct {
	WorkoutDayID string `json:"workoutDayId" binding:"required"`
}

// UpdateSetRequest edits a logged set.
type UpdateSetRequest struct {
	Weight float64 `json:"weight" binding:"min=0"`
	Reps   int     `json:"reps" binding:"min=0"`
}

// ActiveSetResponse is one set of the live session.
type ActiveSetResponse struct {
	ID          string     `json:"id"`
	SetNumber   int        `json:"setNumber"`
	Weight      float64    `json:"weight"`
	Reps        int        `json:"reps"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// ActiveExerciseResponse is one exercise of the live session with its sets
// and, when warranted, the weight-increase suggestion.
type ActiveExerciseResponse struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	DisplayName     string              `json:"displayName"`
	TargetSets      int                 `json:"targetSets"`
	TargetRepsRange string              `json:"targetRepsRange"`
	IsSkipped       bool                `json:"isSkipped"`
	SuggestedWeight *float64            `json:"suggestedWeight,omitempty"`
	Sets            []ActiveSetResponse `json:"sets"`
}

// TimerResponse is the rest countdown state.
type TimerResponse struct {
	IsRunning        bool `json:"isRunning"`
	RemainingSeconds int  `json:"remainingSeconds"`
}

// ActiveWorkoutResponse is the full live-session snapshot.
type ActiveWorkoutResponse struct {
	Session       SessionResponse          `json:"session"`
	DayID         string                   `json:"dayId"`
	DayName       string                   `json:"dayName"`
	Exercises     []ActiveExerciseResponse `json:"exercises"`
	CompletedSets int                      `json:"completedSets"`
	TotalSets     int                      `json:"totalSets"`
	Progress      float64                  `json:"progress"`
	Timer         TimerResponse            `json:"timer"`
}

// mapActiveWorkout renders the engine snapshot, attaching progression
// suggestions per exercise (display-time only; failures just omit them).
func (h *SessionHandler) mapActiveWorkout(c *gin.Context, workout *service.ActiveWorkout) ActiveWorkoutResponse {
	session := workout.Session()
	day := workout.Day()

	response := ActiveWorkoutResponse{
		DayID:         day.ID.Hex(),
		DayName:       day.Name,
		CompletedSets: workout.CompletedSetsCount(),
		TotalSets:     workout.TotalSetsCount(),
		Progress:      workout.Progress(),
		Timer: TimerResponse{
			IsRunning:        workout.Timer().IsRunning(),
			RemainingSeconds: workout.Timer().Remaining(),
		},
	}
	if session != nil {
		response.Session = SessionResponse{
			ID:           session.ID.Hex(),
			WorkoutDayID: session.WorkoutDayID.Hex(),
			Date:         session.Date,
			IsCompleted:  session.IsCompleted,
			Notes:        session.Notes,
		}
	}

	for _, exercise := range workout.Exercises() {
		ex := exercise
		exerciseResponse := ActiveExerciseResponse{
			ID:              ex.ID.Hex(),
			Name:            ex.Name,
			DisplayName:     ex.DisplayName(),
			TargetSets:      ex.TargetSets,
			TargetRepsRange: ex.TargetRepsRange(),
			IsSkipped:       workout.IsExerciseSkipped(ex.ID),
		}

		suggested, err := h.progressionService.SuggestedWeight(c.Request.Context(), &ex)
		if err != nil {
			log.Printf("WARN: progression lookup for %q failed: %v", ex.Name, err)
		} else {
			exerciseResponse.SuggestedWeight = suggested
		}

		for _, set := range workout.SetsForExercise(ex.ID) {
			exerciseResponse.Sets = append(exerciseResponse.Sets, ActiveSetResponse{
				ID:          set.ID.Hex(),
				SetNumber:   set.SetNumber,
				Weight:      set.Weight,
				Reps:        set.Reps,
				IsCompleted: set.IsCompleted,
				CompletedAt: set.CompletedAt,
			})
		}
		response.Exercises = append(response.Exercises, exerciseResponse)
	}
	return response
}

// StartWorkout handles POST /sessions.
func (h *SessionHandler) StartWorkout(c *gin.Context) {
	var req StartWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: workoutDayId is required")
		return
	}
	dayID, err := primitive.ObjectIDFromHex(req.WorkoutDayID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workoutDayId format")
		return
	}

	workout, startErr := h.sessionService.StartWorkout(c.Request.Context(), dayID)
	if startErr != nil {
		switch {
		case errors.Is(startErr, service.ErrWorkoutDayNotFound):
			abortWithError(c, http.StatusNotFound, "Workout day not found")
			return
		case errors.Is(startErr, service.ErrWorkoutInProgress), errors.Is(startErr, service.ErrUnresolvedSession):
			abortWithError(c, http.StatusConflict, startErr.Error())
			return
		}
		if workout == nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to start workout")
			return
		}
		// The workout is live in memory but unsaved: return it with the
		// retryable persistence failure flagged.
		c.JSON(http.StatusAccepted, gin.H{
			"workout": h.mapActiveWorkout(c, workout),
			"warning": "workout started but not saved; storage is failing",
		})
		return
	}

	c.JSON(http.StatusCreated, h.mapActiveWorkout(c, workout))
}

// GetActiveWorkout handles GET /sessions/active.
func (h *SessionHandler) GetActiveWorkout(c *gin.Context) {
	workout, err := h.activeWorkout(c)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, h.mapActiveWorkout(c, workout))
}

// CompleteSet handles POST /sessions/active/sets/:setId/complete.
func (h *SessionHandler) CompleteSet(c *gin.Context) {
	h.mutateSet(c, func(workout *service.ActiveWorkout) error {
		setID, ok := parseObjectID(c, "setId")
		if !ok {
			return errHandled
		}
		return workout.CompleteSet(c.Request.Context(), setID)
	})
}

// UncompleteSet handles POST /sessions/active/sets/:setId/uncomplete.
func (h *SessionHandler) UncompleteSet(c *gin.Context) {
	h.mutateSet(c, func(workout *service.ActiveWorkout) error {
		setID, ok := parseObjectID(c, "setId")
		if !ok {
			return errHandled
		}
		return workout.UncompleteSet(c.Request.Context(), setID)
	})
}

// UpdateSet handles PUT /sessions/active/sets/:setId.
func (h *SessionHandler) UpdateSet(c *gin.Context) {
	h.mutateSet(c, func(workout *service.ActiveWorkout) error {
		setID, ok := parseObjectID(c, "setId")
		if !ok {
			return errHandled
		}
		var req UpdateSetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: weight and reps must be >= 0")
			return errHandled
		}
		return workout.UpdateSet(c.Request.Context(), setID, req.Weight, req.Reps)
	})
}

// SkipExercise handles POST /sessions/active/exercises/:exerciseId/skip.
func (h *SessionHandler) SkipExercise(c *gin.Context) {
	h.mutateSet(c, func(workout *service.ActiveWorkout) error {
		exerciseID, ok := parseObjectID(c, "exerciseId")
		if !ok {
			return errHandled
		}
		return workout.SkipExercise(exerciseID)
	})
}

// UnskipExercise handles POST /sessions/active/exercises/:exerciseId/unskip.
func (h *SessionHandler) UnskipExercise(c *gin.Context) {
	h.mutateSet(c, func(workout *service.ActiveWorkout) error {
		exerciseID, ok := parseObjectID(c, "exerciseId")
		if !ok {
			return errHandled
		}
		return workout.UnskipExercise(exerciseID)
	})
}

// FinishWorkout handles POST /sessions/active/finish.
func (h *SessionHandler) FinishWorkout(c *gin.Context) {
	err := h.sessionService.FinishWorkout(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoActiveWorkout) {
			abortWithError(c, http.StatusNotFound, "No workout is in progress")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to finish workout: "+err.Error())
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// CancelWorkout handles DELETE /sessions/active. Idempotent.
func (h *SessionHandler) CancelWorkout(c *gin.Context) {
	if err := h.sessionService.CancelWorkout(c.Request.Context()); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to cancel workout: "+err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// GetTimer handles GET /sessions/active/timer.
func (h *SessionHandler) GetTimer(c *gin.Context) {
	workout, err := h.activeWorkout(c)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, TimerResponse{
		IsRunning:        workout.Timer().IsRunning(),
		RemainingSeconds: workout.Timer().Remaining(),
	})
}

// StopTimer handles POST /sessions/active/timer/stop.
func (h *SessionHandler) StopTimer(c *gin.Context) {
	workout, err := h.activeWorkout(c)
	if err != nil {
		return
	}
	workout.Timer().Stop()
	c.Status(http.StatusNoContent)
}

// GetIncompleteSession handles GET /sessions/incomplete.
func (h *SessionHandler) GetIncompleteSession(c *gin.Context) {
	session, err := h.sessionService.IncompleteSession(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoIncompleteSession) {
			abortWithError(c, http.StatusNotFound, "No incomplete session")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load incomplete session")
		}
		return
	}
	c.JSON(http.StatusOK, SessionResponse{
		ID:           session.ID.Hex(),
		WorkoutDayID: session.WorkoutDayID.Hex(),
		Date:         session.Date,
		IsCompleted:  session.IsCompleted,
		Notes:        session.Notes,
	})
}

// ResumeIncompleteSession handles POST /sessions/incomplete/resume.
func (h *SessionHandler) ResumeIncompleteSession(c *gin.Context) {
	workout, err := h.sessionService.ResumeIncomplete(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoIncompleteSession):
			abortWithError(c, http.StatusNotFound, "No incomplete session to resume")
		case errors.Is(err, service.ErrWorkoutInProgress):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to resume session")
		}
		return
	}
	c.JSON(http.StatusOK, h.mapActiveWorkout(c, workout))
}

// DiscardIncompleteSession handles DELETE /sessions/incomplete.
func (h *SessionHandler) DiscardIncompleteSession(c *gin.Context) {
	err := h.sessionService.DiscardIncomplete(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoIncompleteSession) {
			abortWithError(c, http.StatusNotFound, "No incomplete session to discard")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to discard session")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// --- helpers ---

// errHandled signals that the mutation callback already wrote a response.
var errHandled = errors.New("response already written")

func (h *SessionHandler) activeWorkout(c *gin.Context) (*service.ActiveWorkout, error) {
	workout, err := h.sessionService.ActiveWorkout()
	if err != nil {
		abortWithError(c, http.StatusNotFound, "No workout is in progress")
		return nil, err
	}
	return workout, nil
}

// mutateSet funnels the per-set and per-exercise mutations through shared
// error mapping and responds with the refreshed snapshot.
func (h *SessionHandler) mutateSet(c *gin.Context, mutate func(*service.ActiveWorkout) error) {
	workout, err := h.activeWorkout(c)
	if err != nil {
		return
	}

	if err := mutate(workout); err != nil {
		switch {
		case errors.Is(err, errHandled):
			// Response already written by the callback.
		case errors.Is(err, service.ErrSetNotInSession):
			abortWithError(c, http.StatusNotFound, "Set does not belong to the current session")
		case errors.Is(err, service.ErrExerciseNotInDay):
			abortWithError(c, http.StatusNotFound, "Exercise does not belong to this workout day")
		case errors.Is(err, service.ErrInvalidSessionState):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			// Applied in memory, not flushed; the client may retry.
			abortWithError(c, http.StatusInternalServerError, "Change applied but not saved: "+err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, h.mapActiveWorkout(c, workout))
}
