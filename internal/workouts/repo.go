package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fittrack/backend/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type WorkoutParams struct {
	UserID string
	Type   Type
	// Search matches against the workout notes, case-insensitive
	Search string
	From   *time.Time
	To     *time.Time
}

type ListParams struct {
	WorkoutParams
	Page int
	Size int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if workout.ID == "" {
		workout.ID = uuid.NewString()
	}
	now := time.Now()
	workout.CreatedAt = now
	workout.UpdatedAt = now

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout
				(id, user_id, type, duration_minutes, notes, workout_date, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		workout.ID, workout.UserID, workout.Type,
		workout.DurationMinutes, workout.Notes, workout.WorkoutDate,
		workout.CreatedAt, workout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("workout.id", workout.ID))

	return &workout, nil
}

func (r *Repo) Get(ctx context.Context, userID, id string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, type, duration_minutes, notes, workout_date, created_at, updated_at
			FROM workout
			WHERE id = $1 AND user_id = $2;`,
		id, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, err
	}

	if len(workouts) != 1 {
		return nil, ErrWorkoutNotFound
	}

	return &workouts[0], nil
}

func (r *Repo) Delete(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// ListAll returns all workouts of a user matching the given filter,
// newest workout date first.
func (r *Repo) ListAll(ctx context.Context, params WorkoutParams) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", params.UserID))
	span.SetAttributes(attribute.String("type", string(params.Type)))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, type, duration_minutes, notes, workout_date, created_at, updated_at
			FROM workout
				WHERE user_id = $1
				AND ($2::text = '' OR type = $2)
				AND ($3::text = '' OR notes ILIKE '%' || $3 || '%')
				AND ($4::timestamp IS NULL OR workout_date >= $4)
				AND ($5::timestamp IS NULL OR workout_date <= $5)
			ORDER BY workout_date DESC NULLS LAST, created_at DESC;`,
		params.UserID, string(params.Type), params.Search,
		params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2workouts: %w", err)
	}
	return workouts, nil
}

// List is like ListAll, but returns the specific PAGE of workouts,
// i.e. is used for pagination.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Workout, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))
	span.SetAttributes(attribute.String("user_id", params.UserID))
	span.SetAttributes(attribute.String("type", string(params.Type)))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	countAll, err := r.Count(ctx, params.WorkoutParams)
	if err != nil {
		return nil, -1, err
	}

	if countAll <= limit {
		limit = countAll
		offset = 0
	}

	if countAll-offset < limit {
		offset = countAll - limit
	}

	span.SetAttributes(attribute.Int("count_all", countAll))
	span.SetAttributes(attribute.Int("limit", limit))
	span.SetAttributes(attribute.Int("offset", offset))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, type, duration_minutes, notes, workout_date, created_at, updated_at
			FROM workout
				WHERE user_id = $1
				AND ($2::text = '' OR type = $2)
				AND ($5::text = '' OR notes ILIKE '%' || $5 || '%')
				AND ($6::timestamp IS NULL OR workout_date >= $6)
				AND ($7::timestamp IS NULL OR workout_date <= $7)
			ORDER BY workout_date DESC NULLS LAST, created_at DESC
			LIMIT $3
			OFFSET $4;`,
		params.UserID, string(params.Type),
		limit, offset,
		params.Search, params.From, params.To,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, -1, err
	}
	return workouts, countAll, nil
}

func (r *Repo) Count(ctx context.Context, params WorkoutParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT COUNT(*) FROM workout
			WHERE user_id = $1
			AND ($2::text = '' OR type = $2)
			AND ($3::text = '' OR notes ILIKE '%' || $3 || '%')
			AND ($4::timestamp IS NULL OR workout_date >= $4)
			AND ($5::timestamp IS NULL OR workout_date <= $5);
	`,
		params.UserID, string(params.Type), params.Search,
		params.From, params.To,
	)
	if err != nil {
		return -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return -1, err
	}

	if rows.Next() {
		var count int
		if err := rows.Scan(&count); err == nil {
			return count, nil
		}
	}

	return -1, errors.New("unexpected error, failed to get workouts count")
}

func (r *Repo) rows2workouts(rows pgx.Rows) ([]Workout, error) {
	var workouts []Workout
	for rows.Next() {
		var w Workout
		var typeStr string
		if err := rows.Scan(
			&w.ID, &w.UserID, &typeStr,
			&w.DurationMinutes, &w.Notes, &w.WorkoutDate,
			&w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, err
		}

		workoutType, err := ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("workout %s: %w", w.ID, err)
		}
		w.Type = workoutType

		workouts = append(workouts, w)
	}

	if workouts == nil {
		workouts = make([]Workout, 0)
	}

	return workouts, nil
}
