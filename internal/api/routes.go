package api

import (
	"alcyxob/workout-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	catalogService service.CatalogService,
	sessionService service.SessionService,
	progressionService service.ProgressionService,
	dashboardService service.DashboardService,
	progressService service.ProgressService,
	settingsService service.SettingsService,
) {

	catalogHandler := NewCatalogHandler(catalogService)
	sessionHandler := NewSessionHandler(sessionService, progressionService)
	dashboardHandler := NewDashboardHandler(dashboardService)
	progressHandler := NewProgressHandler(progressService)
	settingsHandler := NewSettingsHandler(settingsService)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		// --- Catalog Routes ---
		dayGroup := apiV1.Group("/days")
		{
			dayGroup.GET("", catalogHandler.GetWorkoutDays)
			dayGroup.GET("/:dayId", catalogHandler.GetWorkoutDay)
		}

		// --- Session Routes ---
		sessionGroup := apiV1.Group("/sessions")
		{
			// Lifecycle of the (single) active workout.
			sessionGroup.POST("", sessionHandler.StartWorkout)
			sessionGroup.GET("/active", sessionHandler.GetActiveWorkout)
			sessionGroup.POST("/active/finish", sessionHandler.FinishWorkout)
			sessionGroup.DELETE("/active", sessionHandler.CancelWorkout)

			sessionGroup.POST("/active/sets/:setId/complete", sessionHandler.CompleteSet)
			sessionGroup.POST("/active/sets/:setId/uncomplete", sessionHandler.UncompleteSet)
			sessionGroup.PUT("/active/sets/:setId", sessionHandler.UpdateSet)

			sessionGroup.POST("/active/exercises/:exerciseId/skip", sessionHandler.SkipExercise)
			sessionGroup.POST("/active/exercises/:exerciseId/unskip", sessionHandler.UnskipExercise)

			sessionGroup.GET("/active/timer", sessionHandler.GetTimer)
			sessionGroup.POST("/active/timer/stop", sessionHandler.StopTimer)

			// Crash recovery: a session left incomplete must be resumed or
			// discarded before a new one may start.
			sessionGroup.GET("/incomplete", sessionHandler.GetIncompleteSession)
			sessionGroup.POST("/incomplete/resume", sessionHandler.ResumeIncompleteSession)
			sessionGroup.DELETE("/incomplete", sessionHandler.DiscardIncompleteSession)

			// History reads.
			sessionGroup.GET("", progressHandler.GetSessionsByMonth)
			sessionGroup.GET("/:sessionId", progressHandler.GetSessionDetail)
		}

		// --- Progress Routes ---
		apiV1.GET("/progress/exercises/:exerciseId", progressHandler.GetExerciseProgress)

		// --- Dashboard / Settings ---
		apiV1.GET("/dashboard", dashboardHandler.GetDashboard)
		apiV1.GET("/settings", settingsHandler.GetSettings)
		apiV1.PUT("/settings", settingsHandler.UpdateSettings)
	}
}
