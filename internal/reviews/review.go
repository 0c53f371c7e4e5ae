package reviews

import (
	"fmt"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// WorkoutReview is a post-workout reflection: a required overall rating
// plus optional feedback, energy and difficulty scores.
type WorkoutReview struct {
	ID        string `json:"id"`
	WorkoutID string `json:"workoutId"`
	UserID    string `json:"userId"`
	Rating    int    `json:"rating"`
	Feedback  string `json:"feedback,omitempty"`
	// EnergyLevel and Difficulty use the same 1 to 5 scale as Rating
	EnergyLevel *int      `json:"energyLevel,omitempty"`
	Difficulty  *int      `json:"difficulty,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate checks the rating scales, not the review target.
func (r WorkoutReview) Validate() error {
	if r.WorkoutID == "" {
		return fmt.Errorf("workout id is required")
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return fmt.Errorf("rating must be between %d and %d", MinRating, MaxRating)
	}
	if r.EnergyLevel != nil && (*r.EnergyLevel < MinRating || *r.EnergyLevel > MaxRating) {
		return fmt.Errorf("energy level must be between %d and %d", MinRating, MaxRating)
	}
	if r.Difficulty != nil && (*r.Difficulty < MinRating || *r.Difficulty > MaxRating) {
		return fmt.Errorf("difficulty must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}
