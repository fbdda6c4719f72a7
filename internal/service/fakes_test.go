package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. Each fake mirrors the sort/limit contract of
// its mongo counterpart and exposes an err field to inject a storage
// failure into every call.

type fakeDayRepo struct {
	mu   sync.Mutex
	days []domain.WorkoutDay
	err  error
}

func (r *fakeDayRepo) Create(_ context.Context, day *domain.WorkoutDay) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return primitive.NilObjectID, r.err
	}
	if day.ID == primitive.NilObjectID {
		day.ID = primitive.NewObjectID()
	}
	r.days = append(r.days, *day)
	return day.ID, nil
}

func (r *fakeDayRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.days {
		if r.days[i].ID == id {
			day := r.days[i]
			return &day, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeDayRepo) GetAll(_ context.Context) ([]domain.WorkoutDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	days := append([]domain.WorkoutDay(nil), r.days...)
	sort.Slice(days, func(i, j int) bool { return days[i].SortOrder < days[j].SortOrder })
	return days, nil
}

func (r *fakeDayRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.days)), nil
}

func (r *fakeDayRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i := range r.days {
		if r.days[i].ID == id {
			r.days = append(r.days[:i], r.days[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeExerciseRepo struct {
	mu        sync.Mutex
	exercises []domain.Exercise
	err       error
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return primitive.NilObjectID, r.err
	}
	if err := exercise.Validate(); err != nil {
		return primitive.NilObjectID, err
	}
	if exercise.ID == primitive.NilObjectID {
		exercise.ID = primitive.NewObjectID()
	}
	r.exercises = append(r.exercises, *exercise)
	return exercise.ID, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.exercises {
		if r.exercises[i].ID == id {
			exercise := r.exercises[i]
			return &exercise, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExerciseRepo) GetByDayID(_ context.Context, dayID primitive.ObjectID) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var matched []domain.Exercise
	for _, exercise := range r.exercises {
		if exercise.WorkoutDayID == dayID {
			matched = append(matched, exercise)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].SortOrder < matched[j].SortOrder })
	return matched, nil
}

func (r *fakeExerciseRepo) GetAll(_ context.Context) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	exercises := append([]domain.Exercise(nil), r.exercises...)
	sort.Slice(exercises, func(i, j int) bool { return exercises[i].SortOrder < exercises[j].SortOrder })
	return exercises, nil
}

// fakeSessionRepo cascades session deletes to the linked set repo, matching
// the mongo implementation.
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions []domain.WorkoutSession
	sets     *fakeSetRepo
	err      error
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return primitive.NilObjectID, r.err
	}
	if session.ID == primitive.NilObjectID {
		session.ID = primitive.NewObjectID()
	}
	r.sessions = append(r.sessions, *session)
	return session.ID, nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.sessions {
		if r.sessions[i].ID == id {
			session := r.sessions[i]
			return &session, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSessionRepo) Update(_ context.Context, session *domain.WorkoutSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i := range r.sessions {
		if r.sessions[i].ID == session.ID {
			r.sessions[i] = *session
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	if r.err != nil {
		r.mu.Unlock()
		return r.err
	}
	for i := range r.sessions {
		if r.sessions[i].ID == id {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			break
		}
	}
	r.mu.Unlock()
	if r.sets != nil {
		return r.sets.DeleteBySessionID(ctx, id)
	}
	return nil
}

func (r *fakeSessionRepo) GetCompleted(_ context.Context, limit int64) ([]domain.WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var completed []domain.WorkoutSession
	for _, session := range r.sessions {
		if session.IsCompleted {
			completed = append(completed, session)
		}
	}
	sort.Slice(completed, func(i, j int) bool { return completed[i].Date.After(completed[j].Date) })
	if limit > 0 && int64(len(completed)) > limit {
		completed = completed[:limit]
	}
	return completed, nil
}

func (r *fakeSessionRepo) GetLatestIncomplete(_ context.Context) (*domain.WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var latest *domain.WorkoutSession
	for i := range r.sessions {
		session := r.sessions[i]
		if session.IsCompleted {
			continue
		}
		if latest == nil || session.Date.After(latest.Date) {
			latest = &session
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	found := *latest
	return &found, nil
}

type fakeSetRepo struct {
	mu   sync.Mutex
	sets []domain.ExerciseSet
	err  error
}

func (r *fakeSetRepo) CreateMany(_ context.Context, sets []domain.ExerciseSet) ([]primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	ids := make([]primitive.ObjectID, 0, len(sets))
	for _, set := range sets {
		if set.ID == primitive.NilObjectID {
			set.ID = primitive.NewObjectID()
		}
		r.sets = append(r.sets, set)
		ids = append(ids, set.ID)
	}
	return ids, nil
}

func (r *fakeSetRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ExerciseSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.sets {
		if r.sets[i].ID == id {
			set := r.sets[i]
			return &set, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSetRepo) GetBySessionID(_ context.Context, sessionID primitive.ObjectID) ([]domain.ExerciseSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var matched []domain.ExerciseSet
	for _, set := range r.sets {
		if set.SessionID == sessionID {
			matched = append(matched, set)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].SetNumber < matched[j].SetNumber })
	return matched, nil
}

func (r *fakeSetRepo) Update(_ context.Context, set *domain.ExerciseSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i := range r.sets {
		if r.sets[i].ID == set.ID {
			r.sets[i] = *set
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeSetRepo) DeleteBySessionAndExercise(_ context.Context, sessionID, exerciseID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	kept := r.sets[:0]
	for _, set := range r.sets {
		if set.SessionID == sessionID && set.ExerciseID == exerciseID {
			continue
		}
		kept = append(kept, set)
	}
	r.sets = kept
	return nil
}

func (r *fakeSetRepo) DeleteBySessionID(_ context.Context, sessionID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	kept := r.sets[:0]
	for _, set := range r.sets {
		if set.SessionID == sessionID {
			continue
		}
		kept = append(kept, set)
	}
	r.sets = kept
	return nil
}

type fakeSettingsRepo struct {
	mu     sync.Mutex
	stored *domain.Settings
	err    error
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.stored == nil {
		return nil, repository.ErrNotFound
	}
	settings := *r.stored
	return &settings, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, settings *domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	stored := *settings
	r.stored = &stored
	return nil
}

// fixedSettings is a SettingsService stub returning a constant value.
type fixedSettings struct {
	settings domain.Settings
}

func (s fixedSettings) Get(context.Context) (domain.Settings, error) {
	return s.settings, nil
}

func (s fixedSettings) Update(_ context.Context, settings domain.Settings) (domain.Settings, error) {
	return settings, nil
}
