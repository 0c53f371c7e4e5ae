package reviews

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fittrack/backend/internal/telemetry/tracing"
	"github.com/fittrack/backend/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrAlreadyReviewed = errors.New("workout already reviewed")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add stores a review. One review per workout per user, the unique
// constraint on (workout_id, user_id) is the final gate.
func (r *Repo) Add(ctx context.Context, review WorkoutReview) (_ *WorkoutReview, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reviews.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	review.CreatedAt = time.Now()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout_review
				(id, workout_id, user_id, rating, feedback, energy_level, difficulty, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		review.ID, review.WorkoutID, review.UserID,
		review.Rating, review.Feedback, review.EnergyLevel, review.Difficulty,
		review.CreatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrAlreadyReviewed
		}
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("review.id", review.ID))

	return &review, nil
}

// ListWorkoutIDs returns the set of workout ids the user has reviewed.
func (r *Repo) ListWorkoutIDs(ctx context.Context, userID string) (_ map[string]bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reviews.listWorkoutIDs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT workout_id FROM workout_review WHERE user_id = $1;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	workoutIDs := make(map[string]bool)
	for rows.Next() {
		var workoutID string
		if err := rows.Scan(&workoutID); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		workoutIDs[workoutID] = true
	}

	return workoutIDs, nil
}

// List returns all reviews of a user, newest first.
func (r *Repo) List(ctx context.Context, userID string) (_ []WorkoutReview, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reviews.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, workout_id, user_id, rating, feedback, energy_level, difficulty, created_at
			FROM workout_review
			WHERE user_id = $1
			ORDER BY created_at DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.rows2reviews(rows)
}

func (r *Repo) GetForWorkout(ctx context.Context, userID, workoutID string) (_ *WorkoutReview, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reviews.getForWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout_id", workoutID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, workout_id, user_id, rating, feedback, energy_level, difficulty, created_at
			FROM workout_review
			WHERE user_id = $1 AND workout_id = $2;`,
		userID, workoutID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	reviews, err := r.rows2reviews(rows)
	if err != nil {
		return nil, err
	}

	if len(reviews) != 1 {
		return nil, ErrReviewNotFound
	}

	return &reviews[0], nil
}

func (r *Repo) rows2reviews(rows pgx.Rows) ([]WorkoutReview, error) {
	var reviews []WorkoutReview
	for rows.Next() {
		var review WorkoutReview
		if err := rows.Scan(
			&review.ID, &review.WorkoutID, &review.UserID,
			&review.Rating, &review.Feedback, &review.EnergyLevel, &review.Difficulty,
			&review.CreatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	if reviews == nil {
		reviews = make([]WorkoutReview, 0)
	}

	return reviews, nil
}
