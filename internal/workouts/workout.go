package workouts

import (
	"encoding/json"
	"fmt"
	"time"
)

// Type is the kind of a workout session.
type Type string

const (
	TypeCardio   Type = "cardio"
	TypeStrength Type = "strength"
	TypePilates  Type = "pilates"
	TypeCustom   Type = "custom"
)

type ErrUnknownWorkoutType struct {
	Value string
}

func (e ErrUnknownWorkoutType) Error() string {
	return fmt.Sprintf("unknown workout type: %s", e.Value)
}

func ParseType(value string) (Type, error) {
	switch Type(value) {
	case TypeCardio, TypeStrength, TypePilates, TypeCustom:
		return Type(value), nil
	default:
		return "", ErrUnknownWorkoutType{Value: value}
	}
}

func (t *Type) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	parsed, err := ParseType(value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type Workout struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Type   Type   `json:"type"`
	// DurationMinutes is nil when the workout was logged without a duration
	DurationMinutes *int       `json:"durationMinutes,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	WorkoutDate     *time.Time `json:"workoutDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Minutes returns the logged duration, 0 when none was given.
func (w Workout) Minutes() int {
	if w.DurationMinutes == nil {
		return 0
	}
	return *w.DurationMinutes
}

// Day returns the workout date normalized to midnight, false when no date was logged.
func (w Workout) Day() (time.Time, bool) {
	if w.WorkoutDate == nil {
		return time.Time{}, false
	}
	return DayOf(*w.WorkoutDate), true
}

// DayOf normalizes a timestamp to the midnight of its calendar day,
// anchored in UTC. Stored workout dates are UTC midnights already and a
// server-local timestamp maps onto its local calendar day, so days from
// different locations compare as plain instants.
func DayOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
