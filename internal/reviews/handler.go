package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fittrack/backend/internal/auth"
	"github.com/fittrack/backend/internal/telemetry/metrics"
	"github.com/fittrack/backend/internal/telemetry/tracing"
	"github.com/fittrack/backend/internal/workouts"
	"github.com/fittrack/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=reviews_mocks_test.go -package=reviews_test

type reviewsRepo interface {
	Add(ctx context.Context, review WorkoutReview) (*WorkoutReview, error)
	ListWorkoutIDs(ctx context.Context, userID string) (map[string]bool, error)
	List(ctx context.Context, userID string) ([]WorkoutReview, error)
	GetForWorkout(ctx context.Context, userID, workoutID string) (*WorkoutReview, error)
}

type workoutsGetter interface {
	Get(ctx context.Context, userID, id string) (*workouts.Workout, error)
	ListAll(ctx context.Context, params workouts.WorkoutParams) ([]workouts.Workout, error)
}

type AddReviewRequest struct {
	WorkoutID   string `json:"workoutId"`
	Rating      int    `json:"rating"`
	Feedback    string `json:"feedback,omitempty"`
	EnergyLevel *int   `json:"energyLevel,omitempty"`
	Difficulty  *int   `json:"difficulty,omitempty"`
}

// ListResponse carries the reviews overview: workouts still waiting for
// a review, all completed reviews, and the derived counts.
type ListResponse struct {
	Pending   []workouts.Workout `json:"pending"`
	Completed []WorkoutReview    `json:"completed"`
	Stats     ListStats          `json:"stats"`
}

type ListStats struct {
	PendingCount   int `json:"pendingCount"`
	CompletedCount int `json:"completedCount"`
	// RecentWorkouts counts every workout inside the review window,
	// reviewed or not
	RecentWorkouts int `json:"recentWorkouts"`
}

type Handler struct {
	repo         reviewsRepo
	workoutsRepo workoutsGetter
	metrics      *metrics.Manager

	// NowFunc is swapped in tests to pin the review window
	NowFunc func() time.Time
}

func NewHandler(repo reviewsRepo, workoutsRepo workoutsGetter, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:         repo,
		workoutsRepo: workoutsRepo,
		metrics:      metricsManager,
		NowFunc:      time.Now,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.reviews.new")
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

	var req AddReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new review, unmarshal json params: %s", err)
		http.Error(w, "add review failed", http.StatusBadRequest)
		return
	}

	review := WorkoutReview{
		WorkoutID:   req.WorkoutID,
		UserID:      userID,
		Rating:      req.Rating,
		Feedback:    req.Feedback,
		EnergyLevel: req.EnergyLevel,
		Difficulty:  req.Difficulty,
	}
	if err := review.Validate(); err != nil {
		http.Error(w, fmt.Sprintf("error, %s", err), http.StatusBadRequest)
		return
	}

	workout, err := handler.workoutsRepo.Get(ctx, userID, review.WorkoutID)
	if err != nil {
		if errors.Is(err, workouts.ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get workout %s for review: %s", review.WorkoutID, err)
		http.Error(w, "error, failed to add review", http.StatusInternalServerError)
		return
	}

	if !Reviewable(*workout, handler.NowFunc()) {
		http.Error(w, "workout is not open for review", http.StatusBadRequest)
		return
	}

	addedReview, err := handler.repo.Add(ctx, review)
	if err != nil {
		if errors.Is(err, ErrAlreadyReviewed) {
			http.Error(w, "workout already reviewed", http.StatusConflict)
			return
		}
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to add review for workout [%s], user [%s]: %s", review.WorkoutID, userID, err)
		http.Error(w, "error, failed to add review", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterReviewsAdded.Inc()

	addedReviewJson, err := json.Marshal(addedReview)
	if err != nil {
		log.Errorf("failed to marshal new review: %s", err)
		http.Error(w, "error, failed to add review", http.StatusInternalServerError)
		return
	}

	log.Debugf("new review added: %s", addedReviewJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedReviewJson, http.StatusCreated)
}

// HandleList returns the review overview: pending workouts are computed
// fresh from the review window on every call, never cached.
func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.reviews.list")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	now := handler.NowFunc()
	// midnight-aligned so that day six is fully inside the window
	windowStart := workouts.DayOf(now.AddDate(0, 0, -(reviewWindowDays - 1)))
	recentWorkouts, err := handler.workoutsRepo.ListAll(ctx, workouts.WorkoutParams{
		UserID: userID,
		From:   &windowStart,
	})
	if err != nil {
		log.Errorf("failed to get recent workouts for user [%s]: %s", userID, err)
		http.Error(w, "failed to list reviews", http.StatusInternalServerError)
		return
	}

	reviewedIDs, err := handler.repo.ListWorkoutIDs(ctx, userID)
	if err != nil {
		log.Errorf("failed to get reviewed workout ids for user [%s]: %s", userID, err)
		http.Error(w, "failed to list reviews", http.StatusInternalServerError)
		return
	}

	completed, err := handler.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("failed to get reviews for user [%s]: %s", userID, err)
		http.Error(w, "failed to list reviews", http.StatusInternalServerError)
		return
	}

	classification := Classify(recentWorkouts, reviewedIDs, now)

	resp := ListResponse{
		Pending:   classification.Pending,
		Completed: completed,
		Stats: ListStats{
			PendingCount:   len(classification.Pending),
			CompletedCount: len(completed),
			RecentWorkouts: len(classification.Pending) + len(classification.Reviewed),
		},
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal reviews list: %s", err)
		http.Error(w, "failed to list reviews", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleGetForWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.reviews.getForWorkout")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	workoutID := vars["id"]
	if workoutID == "" {
		http.Error(w, "error, workout id empty", http.StatusBadRequest)
		return
	}

	review, err := handler.repo.GetForWorkout(ctx, userID, workoutID)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			http.Error(w, "review not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get review for workout %s: %s", workoutID, err)
		http.Error(w, "failed to get review", http.StatusInternalServerError)
		return
	}

	reviewJson, err := json.Marshal(review)
	if err != nil {
		log.Errorf("failed to marshal review: %s", err)
		http.Error(w, "failed to get review", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, reviewJson, http.StatusOK)
}
