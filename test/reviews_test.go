package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fittrack/backend/internal/reviews"
	"github.com/fittrack/backend/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) deleteAllReviews(ctx context.Context) {
	_, err := s.dbPool.Exec(ctx, "DELETE FROM workout_review")
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) newReviewRequest(
	ctx context.Context,
	token string,
	reviewReq reviews.AddReviewRequest,
	expectedStatusCode int,
) *reviews.WorkoutReview {
	reviewJson, err := json.Marshal(reviewReq)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/reviews", serverEndpoint),
		bytes.NewReader(reviewJson),
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FITTRACK-TOKEN", token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), expectedStatusCode, resp.StatusCode)
	defer resp.Body.Close()

	if expectedStatusCode != http.StatusCreated {
		return nil
	}

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var addedReview reviews.WorkoutReview
	require.NoError(s.T(), json.Unmarshal(respBytes, &addedReview))

	return &addedReview
}

func (s *IntegrationTestSuite) listReviewsRequest(ctx context.Context, token string) reviews.ListResponse {
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/reviews", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FITTRACK-TOKEN", token)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var listResp reviews.ListResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &listResp))

	return listResp
}

func (s *IntegrationTestSuite) TestReviews() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := s.doLogin(ctx, t)
	s.deleteAllReviews(ctx)
	s.deleteAllWorkouts(ctx)

	now := time.Now()
	duration := 40
	recentWorkout := s.newWorkoutRequest(ctx, token, workouts.AddWorkoutRequest{
		Type:            "cardio",
		DurationMinutes: &duration,
		WorkoutDate:     now.AddDate(0, 0, -2).Format("2006-01-02"),
	})
	staleWorkout := s.newWorkoutRequest(ctx, token, workouts.AddWorkoutRequest{
		Type:        "strength",
		WorkoutDate: now.AddDate(0, 0, -20).Format("2006-01-02"),
	})

	// only the recent workout shows up as pending,
	// the stale one is already outside the review window
	listResp := s.listReviewsRequest(ctx, token)
	require.Len(t, listResp.Pending, 1)
	assert.Equal(t, recentWorkout.ID, listResp.Pending[0].ID)
	assert.Empty(t, listResp.Completed)
	assert.Equal(t, 1, listResp.Stats.PendingCount)
	assert.Equal(t, 0, listResp.Stats.CompletedCount)
	assert.Equal(t, 1, listResp.Stats.RecentWorkouts)

	energy := 4
	addedReview := s.newReviewRequest(ctx, token, reviews.AddReviewRequest{
		WorkoutID:   recentWorkout.ID,
		Rating:      5,
		Feedback:    "felt great",
		EnergyLevel: &energy,
	}, http.StatusCreated)
	require.NotNil(t, addedReview)
	require.NotEmpty(t, addedReview.ID)
	assert.Equal(t, recentWorkout.ID, addedReview.WorkoutID)
	assert.Equal(t, 5, addedReview.Rating)

	// reviewing the same workout again is a conflict
	s.newReviewRequest(ctx, token, reviews.AddReviewRequest{
		WorkoutID: recentWorkout.ID,
		Rating:    3,
	}, http.StatusConflict)

	// the stale workout is outside the trailing window
	s.newReviewRequest(ctx, token, reviews.AddReviewRequest{
		WorkoutID: staleWorkout.ID,
		Rating:    4,
	}, http.StatusBadRequest)

	// an unknown workout cannot be reviewed
	s.newReviewRequest(ctx, token, reviews.AddReviewRequest{
		WorkoutID: "deadbeef-0000-0000-0000-000000000000",
		Rating:    4,
	}, http.StatusNotFound)

	// the reviewed workout moved from pending to completed
	listResp = s.listReviewsRequest(ctx, token)
	assert.Empty(t, listResp.Pending)
	require.Len(t, listResp.Completed, 1)
	assert.Equal(t, addedReview.ID, listResp.Completed[0].ID)
	assert.Equal(t, 0, listResp.Stats.PendingCount)
	assert.Equal(t, 1, listResp.Stats.CompletedCount)
	// the reviewed workout is still inside the window
	assert.Equal(t, 1, listResp.Stats.RecentWorkouts)

	// fetch the review through the workout
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/reviews/workout/%s", serverEndpoint, recentWorkout.ID),
		nil,
	)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FITTRACK-TOKEN", token)

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var gottenReview reviews.WorkoutReview
	require.NoError(t, json.Unmarshal(respBytes, &gottenReview))
	assert.Equal(t, addedReview.ID, gottenReview.ID)

	// deleting the workout takes its review along
	deleteReq, err := http.NewRequestWithContext(
		ctx,
		"DELETE", fmt.Sprintf("%s/workouts/%s", serverEndpoint, recentWorkout.ID),
		nil,
	)
	require.NoError(t, err)
	deleteReq.Header.Set("User-Agent", "test-agent")
	deleteReq.Header.Set("X-FITTRACK-TOKEN", token)

	deleteResp, err := s.httpClient.Do(deleteReq)
	require.NoError(t, err)
	require.NoError(t, deleteResp.Body.Close())
	require.Equal(t, http.StatusOK, deleteResp.StatusCode)

	listResp = s.listReviewsRequest(ctx, token)
	assert.Empty(t, listResp.Completed)
}
