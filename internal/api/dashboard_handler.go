package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the home-screen summary.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardResponse is the DTO for the home-screen summary.
type DashboardResponse struct {
	RecentSessions    []SessionResponse `json:"recentSessions"`
	LastSession       *SessionResponse  `json:"lastSession,omitempty"`
	NextWorkoutDayID  string            `json:"nextWorkoutDayId,omitempty"`
	NextWorkoutDay    string            `json:"nextWorkoutDay,omitempty"`
	CompletedThisWeek int               `json:"completedThisWeek"`
	CurrentStreak     int               `json:"currentStreak"`
	TotalCompleted    int               `json:"totalCompleted"`
	IncompleteSession *SessionResponse  `json:"incompleteSession,omitempty"`
}

func mapSessionToResponse(session *domain.WorkoutSession) SessionResponse {
	return SessionResponse{
		ID:           session.ID.Hex(),
		WorkoutDayID: session.WorkoutDayID.Hex(),
		Date:         session.Date,
		IsCompleted:  session.IsCompleted,
		Notes:        session.Notes,
	}
}

// GetDashboard handles GET /dashboard.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	response := DashboardResponse{
		RecentSessions:    make([]SessionResponse, 0, len(dashboard.RecentSessions)),
		CompletedThisWeek: dashboard.CompletedThisWeek,
		CurrentStreak:     dashboard.CurrentStreak,
		TotalCompleted:    dashboard.TotalCompleted,
	}
	for i := range dashboard.RecentSessions {
		response.RecentSessions = append(response.RecentSessions, mapSessionToResponse(&dashboard.RecentSessions[i]))
	}
	if dashboard.LastSession != nil {
		last := mapSessionToResponse(dashboard.LastSession)
		response.LastSession = &last
	}
	if dashboard.NextWorkoutDay != nil {
		response.NextWorkoutDayID = dashboard.NextWorkoutDay.ID.Hex()
		response.NextWorkoutDay = dashboard.NextWorkoutDay.Name
	}
	if dashboard.IncompleteSession != nil {
		incomplete := mapSessionToResponse(dashboard.IncompleteSession)
		response.IncompleteSession = &incomplete
	}

	c.JSON(http.StatusOK, response)
}
