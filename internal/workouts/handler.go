package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fittrack/backend/internal/auth"
	"github.com/fittrack/backend/internal/telemetry/metrics"
	"github.com/fittrack/backend/internal/telemetry/tracing"
	"github.com/fittrack/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=workouts_mocks_test.go -package=workouts_test

const (
	// duration form bounds, in minutes
	MinDurationMinutes = 1
	MaxDurationMinutes = 480

	workoutDateLayout = "2006-01-02"
)

type workoutsRepo interface {
	Add(ctx context.Context, workout Workout) (*Workout, error)
	Get(ctx context.Context, userID, id string) (*Workout, error)
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, params ListParams) (_ []Workout, total int, err error)
	ListAll(ctx context.Context, params WorkoutParams) ([]Workout, error)
	Count(ctx context.Context, params WorkoutParams) (int, error)
}

type AddWorkoutRequest struct {
	Type            string `json:"type"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
	Notes           string `json:"notes,omitempty"`
	// WorkoutDate uses the YYYY-MM-DD layout
	WorkoutDate string `json:"workoutDate,omitempty"`
}

type AddWorkoutResponse struct {
	Workout
	CountToday int `json:"countToday"`
}

type DeleteWorkoutResponse struct {
	DeletedID string `json:"deletedId"`
}

type ListResponse struct {
	Workouts []Workout `json:"workouts"`
	Total    int       `json:"total"`
}

// StatsResponse carries the all-time figures for the workout table view,
// optionally narrowed down by the same filters as the list endpoint.
type StatsResponse struct {
	PeriodStats
	AvgDuration float64 `json:"avgDuration"`
	ThisWeek    int     `json:"thisWeek"`
}

type Handler struct {
	repo     workoutsRepo
	analyzer *Analyzer
	metrics  *metrics.Manager
}

func NewHandler(repo workoutsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:     repo,
		analyzer: NewAnalyzer(repo),
		metrics:  metricsManager,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.new")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	workout, err := workoutFromAddRequest(req, userID, time.Now())
	if err != nil {
		http.Error(w, fmt.Sprintf("error, %s", err), http.StatusBadRequest)
		return
	}

	addedWorkout, err := handler.repo.Add(ctx, *workout)
	if err != nil {
		log.Errorf("failed to add new workout [%s] for user [%s]: %s", workout.Type, userID, err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutsAdded.Inc()

	countToday := 0
	if day, ok := addedWorkout.Day(); ok {
		dayEnd := day.Add(24*time.Hour - time.Nanosecond)
		workoutsThatDay, err := handler.repo.ListAll(ctx, WorkoutParams{
			UserID: userID,
			From:   &day,
			To:     &dayEnd,
		})
		if err != nil {
			// just log the error, no need to return error to the client
			log.Errorf("failed to get workouts of the day for user [%s]: %s", userID, err)
		} else {
			countToday = len(workoutsThatDay)
		}
	}

	addWorkoutResponse := AddWorkoutResponse{
		Workout:    *addedWorkout,
		CountToday: countToday,
	}

	addedWorkoutJson, err := json.Marshal(addWorkoutResponse)
	if err != nil {
		log.Errorf("failed to marshal new workout: %s", err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("new workout added: %s", addedWorkoutJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedWorkoutJson, http.StatusCreated)
}

// workoutFromAddRequest validates the add request and builds the workout to store.
func workoutFromAddRequest(req AddWorkoutRequest, userID string, now time.Time) (*Workout, error) {
	workoutType, err := ParseType(req.Type)
	if err != nil {
		return nil, err
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes < MinDurationMinutes || *req.DurationMinutes > MaxDurationMinutes {
			return nil, fmt.Errorf(
				"duration must be between %d and %d minutes",
				MinDurationMinutes, MaxDurationMinutes,
			)
		}
	}

	workout := &Workout{
		UserID:          userID,
		Type:            workoutType,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}

	if req.WorkoutDate != "" {
		workoutDate, err := time.Parse(workoutDateLayout, req.WorkoutDate)
		if err != nil {
			return nil, fmt.Errorf("invalid workout date [%s], use %s", req.WorkoutDate, workoutDateLayout)
		}
		if workoutDate.After(DayOf(now)) {
			return nil, errors.New("workout date cannot be in the future")
		}
		workout.WorkoutDate = &workoutDate
	}

	return workout, nil
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	workout, err := handler.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get workout %s: %s", id, err)
		http.Error(w, "failed to get workout", http.StatusInternalServerError)
		return
	}

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("failed to marshal workout: %s", err)
		http.Error(w, "failed to marshal workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, workoutJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete workout %s: %s", id, err)
		http.Error(w, "failed to delete workout", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutsDeleted.Inc()

	respJson, err := json.Marshal(DeleteWorkoutResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete workout response: %s", err)
		http.Error(w, "failed to delete workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		http.Error(w, "error, page NaN", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		http.Error(w, "error, size NaN", http.StatusBadRequest)
		return
	}

	params := ListParams{
		WorkoutParams: WorkoutParams{
			UserID: userID,
		},
		Page: page,
		Size: size,
	}
	if typeFilter := r.URL.Query().Get("type"); typeFilter != "" {
		workoutType, err := ParseType(typeFilter)
		if err != nil {
			http.Error(w, fmt.Sprintf("error, %s", err), http.StatusBadRequest)
			return
		}
		params.Type = workoutType
	}
	params.Search = r.URL.Query().Get("search")

	workoutsPage, total, err := handler.repo.List(ctx, params)
	if err != nil {
		log.Errorf("failed to list workouts for user [%s]: %s", userID, err)
		http.Error(w, "failed to list workouts", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListResponse{
		Workouts: workoutsPage,
		Total:    total,
	})
	if err != nil {
		log.Errorf("failed to marshal workouts list: %s", err)
		http.Error(w, "failed to list workouts", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

// HandleStats returns the all-time numbers for the logged user.
func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.stats")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	params := WorkoutParams{UserID: userID}
	if typeFilter := r.URL.Query().Get("type"); typeFilter != "" {
		workoutType, err := ParseType(typeFilter)
		if err != nil {
			http.Error(w, fmt.Sprintf("error, %s", err), http.StatusBadRequest)
			return
		}
		params.Type = workoutType
	}
	params.Search = r.URL.Query().Get("search")

	allWorkouts, err := handler.repo.ListAll(ctx, params)
	if err != nil {
		log.Errorf("failed to get workouts for user [%s]: %s", userID, err)
		http.Error(w, "failed to get workout stats", http.StatusInternalServerError)
		return
	}

	countPerType, err := CountByType(allWorkouts)
	if err != nil {
		log.Errorf("failed to get workout stats for user [%s]: %s", userID, err)
		http.Error(w, "failed to get workout stats", http.StatusInternalServerError)
		return
	}

	stats := StatsResponse{
		PeriodStats: PeriodStats{
			Workouts:     len(allWorkouts),
			TotalMinutes: TotalDuration(allWorkouts),
			ActiveDays:   ActiveDays(allWorkouts),
			CountPerType: countPerType,
		},
		AvgDuration: AverageDuration(allWorkouts),
		ThisWeek:    len(ThisWeek(allWorkouts, time.Now())),
	}
	if stats.ActiveDays > 0 {
		stats.AvgPerDay = float64(stats.TotalMinutes) / float64(stats.ActiveDays)
	}

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal workout stats: %s", err)
		http.Error(w, "failed to get workout stats", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}

func (handler *Handler) HandleMonthStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.monthStats")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	year, month, ok := yearAndMonth(w, r)
	if !ok {
		return
	}

	stats, err := handler.analyzer.MonthStats(ctx, userID, year, month)
	if err != nil {
		log.Errorf("failed to get month stats for user [%s]: %s", userID, err)
		http.Error(w, "failed to get month stats", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal month stats: %s", err)
		http.Error(w, "failed to get month stats", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}

func (handler *Handler) HandleWeekStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.weekStats")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	stats, err := handler.analyzer.WeekStats(ctx, userID, time.Now())
	if err != nil {
		log.Errorf("failed to get week stats for user [%s]: %s", userID, err)
		http.Error(w, "failed to get week stats", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal week stats: %s", err)
		http.Error(w, "failed to get week stats", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}

func (handler *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.calendar")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	year, month, ok := yearAndMonth(w, r)
	if !ok {
		return
	}

	calendar, err := handler.analyzer.CalendarMonth(ctx, userID, year, month)
	if err != nil {
		log.Errorf("failed to get workout calendar for user [%s]: %s", userID, err)
		http.Error(w, "failed to get workout calendar", http.StatusInternalServerError)
		return
	}

	calendarJson, err := json.Marshal(calendar)
	if err != nil {
		log.Errorf("failed to marshal workout calendar: %s", err)
		http.Error(w, "failed to get workout calendar", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, calendarJson, http.StatusOK)
}

func yearAndMonth(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		http.Error(w, "error, year NaN", http.StatusBadRequest)
		return 0, 0, false
	}
	monthNum, err := strconv.Atoi(vars["month"])
	if err != nil || monthNum < 1 || monthNum > 12 {
		http.Error(w, "error, invalid month", http.StatusBadRequest)
		return 0, 0, false
	}
	return year, time.Month(monthNum), true
}
