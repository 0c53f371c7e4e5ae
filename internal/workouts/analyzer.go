package workouts

import (
	"context"
	"sort"
	"time"

	"github.com/fittrack/backend/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// PeriodStats holds the derived numbers for a slice of time,
// recomputed from the stored workouts on every request.
type PeriodStats struct {
	Workouts     int     `json:"workouts"`
	TotalMinutes int     `json:"totalMinutes"`
	ActiveDays   int     `json:"activeDays"`
	AvgPerDay    float64 `json:"avgPerDay"`
	// CountPerType is keyed by workout type, zero counts omitted
	CountPerType map[Type]int `json:"countPerType"`
}

// CalendarDay is one cell of the monthly calendar view.
type CalendarDay struct {
	Day          time.Time `json:"day"`
	Workouts     int       `json:"workouts"`
	TotalMinutes int       `json:"totalMinutes"`
	Types        []Type    `json:"types"`
}

type Analyzer struct {
	repo workoutsRepo
}

func NewAnalyzer(repo workoutsRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// MonthStats computes the aggregate numbers for one calendar month.
func (a *Analyzer) MonthStats(
	ctx context.Context,
	userID string,
	year int,
	month time.Month,
) (_ *PeriodStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.monthStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("year", year))
	span.SetAttributes(attribute.String("month", month.String()))

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return a.periodStats(ctx, userID, from, to)
}

// WeekStats computes the aggregate numbers for the trailing 7 days, today included.
func (a *Analyzer) WeekStats(
	ctx context.Context,
	userID string,
	now time.Time,
) (_ *PeriodStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.weekStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return a.periodStats(ctx, userID, now.AddDate(0, 0, -6), now)
}

func (a *Analyzer) periodStats(
	ctx context.Context,
	userID string,
	from, to time.Time,
) (*PeriodStats, error) {
	fromDay := DayOf(from)
	toDay := DayOf(to).Add(24*time.Hour - time.Nanosecond)
	workouts, err := a.repo.ListAll(ctx, WorkoutParams{
		UserID: userID,
		From:   &fromDay,
		To:     &toDay,
	})
	if err != nil {
		return nil, err
	}

	countPerType, err := CountByType(workouts)
	if err != nil {
		return nil, err
	}

	stats := &PeriodStats{
		Workouts:     len(workouts),
		TotalMinutes: TotalDuration(workouts),
		ActiveDays:   ActiveDays(workouts),
		CountPerType: countPerType,
	}

	// an empty period yields all zeroes, not a division error
	if stats.ActiveDays > 0 {
		stats.AvgPerDay = float64(stats.TotalMinutes) / float64(stats.ActiveDays)
	}

	return stats, nil
}

// CalendarMonth returns one entry per active day of the given month,
// sorted chronologically. Days without workouts are not present.
func (a *Analyzer) CalendarMonth(
	ctx context.Context,
	userID string,
	year int,
	month time.Month,
) (_ []CalendarDay, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.calendarMonth")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("year", year))
	span.SetAttributes(attribute.String("month", month.String()))

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	workouts, err := a.repo.ListAll(ctx, WorkoutParams{
		UserID: userID,
		From:   &from,
		To:     &to,
	})
	if err != nil {
		return nil, err
	}

	day2workouts := GroupByDay(workouts)

	calendar := make([]CalendarDay, 0, len(day2workouts))
	for day, dayWorkouts := range day2workouts {
		seenTypes := make(map[Type]bool)
		var dayTypes []Type
		for _, w := range dayWorkouts {
			if !seenTypes[w.Type] {
				seenTypes[w.Type] = true
				dayTypes = append(dayTypes, w.Type)
			}
		}
		sort.Slice(dayTypes, func(i, j int) bool {
			return dayTypes[i] < dayTypes[j]
		})

		calendar = append(calendar, CalendarDay{
			Day:          day,
			Workouts:     len(dayWorkouts),
			TotalMinutes: TotalDuration(dayWorkouts),
			Types:        dayTypes,
		})
	}

	sort.Slice(calendar, func(i, j int) bool {
		return calendar[i].Day.Before(calendar[j].Day)
	})

	return calendar, nil
}
