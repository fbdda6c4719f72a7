package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"time"
)

// recentSessionsLimit bounds the dashboard's recency window; the streak
// and weekly counts are computed over it.
const recentSessionsLimit = 20

// Dashboard is the home-screen summary.
type Dashboard struct {
	RecentSessions    []domain.WorkoutSession `json:"recentSessions"`
	LastSession       *domain.WorkoutSession  `json:"lastSession,omitempty"`
	NextWorkoutDay    *domain.WorkoutDay      `json:"nextWorkoutDay,omitempty"`
	CompletedThisWeek int                     `json:"completedThisWeek"`
	CurrentStreak     int                     `json:"currentStreak"`
	TotalCompleted    int                     `json:"totalCompleted"`
	IncompleteSession *domain.WorkoutSession  `json:"incompleteSession,omitempty"`
}

// DashboardService assembles the recency/streak/rotation summary.
type DashboardService interface {
	GetDashboard(ctx context.Context) (*Dashboard, error)
}

type dashboardService struct {
	dayRepo     repository.WorkoutDayRepository
	sessionRepo repository.SessionRepository

	now func() time.Time
}

// NewDashboardService creates a new dashboard read service.
func NewDashboardService(dayRepo repository.WorkoutDayRepository, sessionRepo repository.SessionRepository) DashboardService {
	return &dashboardService{dayRepo: dayRepo, sessionRepo: sessionRepo, now: time.Now}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	recent, err := s.sessionRepo.GetCompleted(ctx, recentSessionsLimit)
	if err != nil {
		return nil, err
	}

	days, err := s.dayRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		RecentSessions:    recent,
		TotalCompleted:    len(recent),
		CompletedThisWeek: s.completedThisWeek(recent),
		CurrentStreak:     s.currentStreak(recent),
	}
	if len(recent) > 0 {
		dashboard.LastSession = &recent[0]
	}
	dashboard.NextWorkoutDay = nextWorkoutDay(recent, days)

	incomplete, err := s.sessionRepo.GetLatestIncomplete(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	dashboard.IncompleteSession = incomplete

	return dashboard, nil
}

// nextWorkoutDay advances the fixed rotation: the day after the most
// recently completed one, wrapping around; day 0 when there is no history.
func nextWorkoutDay(recent []domain.WorkoutSession, days []domain.WorkoutDay) *domain.WorkoutDay {
	if len(days) == 0 {
		return nil
	}

	var lastSortOrder *int
	if len(recent) > 0 {
		for _, day := range days {
			if day.ID == recent[0].WorkoutDayID {
				order := day.SortOrder
				lastSortOrder = &order
				break
			}
		}
	}

	next := domain.NextSortOrder(lastSortOrder, len(days))
	for i := range days {
		if days[i].SortOrder == next {
			return &days[i]
		}
	}
	return nil
}

// completedThisWeek counts sessions since the start of the current week
// (weeks start on Monday).
func (s *dashboardService) completedThisWeek(recent []domain.WorkoutSession) int {
	weekStart := startOfWeek(s.now())
	count := 0
	for _, session := range recent {
		if !session.Date.Before(weekStart) {
			count++
		}
	}
	return count
}

// currentStreak counts consecutive calendar days with at least one
// completed session, ending today. A day without a session so far today
// does not break the streak; the scan then starts at yesterday.
func (s *dashboardService) currentStreak(recent []domain.WorkoutSession) int {
	if len(recent) == 0 {
		return 0
	}

	// Normalize everything into one location so map keys compare by
	// calendar day (stored dates are UTC, the server may not be).
	loc := s.now().Location()
	sessionDays := make(map[time.Time]struct{}, len(recent))
	for _, session := range recent {
		sessionDays[startOfDay(session.Date.In(loc))] = struct{}{}
	}

	checkDate := startOfDay(s.now())
	if _, ok := sessionDays[checkDate]; !ok {
		checkDate = checkDate.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := sessionDays[checkDate]; !ok {
			break
		}
		streak++
		checkDate = checkDate.AddDate(0, 0, -1)
	}
	return streak
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}
