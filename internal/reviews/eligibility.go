package reviews

import (
	"time"

	"github.com/fittrack/backend/internal/workouts"
)

// reviewWindowDays is how far back a workout stays open for review.
const reviewWindowDays = 7

// Classification splits workouts into those still waiting for a review
// and those already reviewed, considering only the review window.
type Classification struct {
	Pending  []workouts.Workout
	Reviewed []workouts.Workout
}

// Reviewable reports whether a workout is open for review at the given
// moment: its date falls on today or within the trailing 7 days.
// Workouts without a date and future-dated workouts are never reviewable.
func Reviewable(w workouts.Workout, now time.Time) bool {
	day, ok := w.Day()
	if !ok {
		return false
	}

	today := workouts.DayOf(now)
	if day.Equal(today) {
		return true
	}
	if day.After(today) {
		return false
	}

	windowStart := today.AddDate(0, 0, -(reviewWindowDays - 1))
	return !day.Before(windowStart)
}

// Classify partitions the reviewable subset of the given workouts by
// whether their id appears in the reviewed set.
func Classify(ws []workouts.Workout, reviewedIDs map[string]bool, now time.Time) Classification {
	c := Classification{
		Pending:  make([]workouts.Workout, 0),
		Reviewed: make([]workouts.Workout, 0),
	}
	for _, w := range ws {
		if !Reviewable(w, now) {
			continue
		}
		if reviewedIDs[w.ID] {
			c.Reviewed = append(c.Reviewed, w)
		} else {
			c.Pending = append(c.Pending, w)
		}
	}
	return c
}
