package workouts

import "time"

// The functions here operate on already-fetched workout slices and
// never touch the database, so they can be composed and tested freely.

// TotalDuration sums the logged minutes, workouts without a duration count as 0.
func TotalDuration(workouts []Workout) int {
	var total int
	for _, w := range workouts {
		total += w.Minutes()
	}
	return total
}

// AverageDuration is the mean of logged minutes over ALL given workouts,
// including those without a duration. Returns 0 for an empty slice.
func AverageDuration(workouts []Workout) float64 {
	if len(workouts) == 0 {
		return 0
	}
	return float64(TotalDuration(workouts)) / float64(len(workouts))
}

// CountByType counts the workouts per type. Fails on a workout
// carrying a type outside of the known set.
func CountByType(workouts []Workout) (map[Type]int, error) {
	counts := make(map[Type]int)
	for _, w := range workouts {
		if _, err := ParseType(string(w.Type)); err != nil {
			return nil, err
		}
		counts[w.Type]++
	}
	return counts, nil
}

// InRange returns the workouts whose date falls within [from, to], both
// bounds compared at day granularity. Workouts without a date are skipped.
func InRange(workouts []Workout, from, to time.Time) []Workout {
	fromDay := DayOf(from)
	toDay := DayOf(to)
	inRange := make([]Workout, 0)
	for _, w := range workouts {
		day, ok := w.Day()
		if !ok {
			continue
		}
		if day.Before(fromDay) || day.After(toDay) {
			continue
		}
		inRange = append(inRange, w)
	}
	return inRange
}

// ThisWeek returns the workouts from the trailing 7 days, today included.
func ThisWeek(workouts []Workout, now time.Time) []Workout {
	return InRange(workouts, now.AddDate(0, 0, -6), now)
}

// GroupByDay buckets the workouts by their (normalized) date.
// Workouts without a date are left out.
func GroupByDay(workouts []Workout) map[time.Time][]Workout {
	day2workouts := make(map[time.Time][]Workout)
	for _, w := range workouts {
		day, ok := w.Day()
		if !ok {
			continue
		}
		day2workouts[day] = append(day2workouts[day], w)
	}
	return day2workouts
}

// ActiveDays counts the distinct days with at least one workout.
func ActiveDays(workouts []Workout) int {
	return len(GroupByDay(workouts))
}
