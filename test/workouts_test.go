package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fittrack/backend/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) deleteAllWorkouts(ctx context.Context) {
	_, err := s.dbPool.Exec(ctx, "DELETE FROM workout")
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) newWorkoutRequest(
	ctx context.Context,
	token string,
	workoutReq workouts.AddWorkoutRequest,
) workouts.AddWorkoutResponse {
	workoutJson, err := json.Marshal(workoutReq)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/workouts", serverEndpoint),
		bytes.NewReader(workoutJson),
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FITTRACK-TOKEN", token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var addedWorkout workouts.AddWorkoutResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &addedWorkout))

	return addedWorkout
}

func (s *IntegrationTestSuite) getWorkoutRequest(ctx context.Context, token, id string) workouts.Workout {
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/workouts/%s", serverEndpoint, id),
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

	var workout workouts.Workout
	require.NoError(s.T(), json.Unmarshal(respBytes, &workout))

	return workout
}

func (s *IntegrationTestSuite) getWorkoutStats(ctx context.Context, token, path string) workouts.PeriodStats {
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s%s", serverEndpoint, path),
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

	var stats workouts.PeriodStats
	require.NoError(s.T(), json.Unmarshal(respBytes, &stats))

	return stats
}

func (s *IntegrationTestSuite) TestWorkouts_AddGetDelete() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := s.doLogin(ctx, t)
	s.deleteAllWorkouts(ctx)

	duration := 45
	today := time.Now().Format("2006-01-02")
	added := s.newWorkoutRequest(ctx, token, workouts.AddWorkoutRequest{
		Type:            "cardio",
		DurationMinutes: &duration,
		Notes:           "morning run",
		WorkoutDate:     today,
	})
	require.NotEmpty(t, added.ID)
	assert.Equal(t, workouts.TypeCardio, added.Type)
	assert.Equal(t, 1, added.CountToday)

	// a second one today bumps the counter
	added2 := s.newWorkoutRequest(ctx, token, workouts.AddWorkoutRequest{
		Type:        "strength",
		WorkoutDate: today,
	})
	assert.Equal(t, 2, added2.CountToday)

	gotten := s.getWorkoutRequest(ctx, token, added.ID)
	assert.Equal(t, added.ID, gotten.ID)
	assert.Equal(t, workouts.TypeCardio, gotten.Type)
	assert.Equal(t, 45, gotten.Minutes())
	assert.Equal(t, "morning run", gotten.Notes)

	// delete it, then it is gone
	req, err := http.NewRequestWithContext(
		ctx,
		"DELETE", fmt.Sprintf("%s/workouts/%s", serverEndpoint, added.ID),
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

	var deleteResp workouts.DeleteWorkoutResponse
	require.NoError(t, json.Unmarshal(respBytes, &deleteResp))
	assert.Equal(t, added.ID, deleteResp.DeletedID)

	req, err = http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/workouts/%s", serverEndpoint, added.ID),
		nil,
	)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FITTRACK-TOKEN", token)

	resp, err = s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestWorkouts_Unauthorized() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workoutJson, err := json.Marshal(workouts.AddWorkoutRequest{
		Type: "cardio",
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/workouts", serverEndpoint),
		bytes.NewReader(workoutJson),
	)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestWorkouts_ListAndStats() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := s.doLogin(ctx, t)
	s.deleteAllWorkouts(ctx)

	now := time.Now()
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	thirty, sixty := 30, 60
	s.newWorkoutRequest(ctx, token, workouts.AddWorkoutRequest{
		Type:            "cardio",
		DurationMinutes: &thirty,
		WorkoutDate:     today,
	})
	s.newWorkoutRequest(ctx, token, workouts.AddWorkoutRequest{
		Type:            "strength",
		DurationMinutes: &sixty,
		WorkoutDate:     today,
	})
	s.newWorkoutRequest(ctx, token, workouts.AddWorkoutRequest{
		Type:            "pilates",
		DurationMinutes: &thirty,
		WorkoutDate:     yesterday,
	})

	// list first page
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/workouts/list/page/1/size/2", serverEndpoint),
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

	var listResp workouts.ListResponse
	require.NoError(t, json.Unmarshal(respBytes, &listResp))
	assert.Equal(t, 3, listResp.Total)
	assert.Len(t, listResp.Workouts, 2)

	// all time stats
	req, err = http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/workouts/stats", serverEndpoint),
		nil,
	)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FITTRACK-TOKEN", token)

	resp, err = s.httpClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var stats workouts.StatsResponse
	require.NoError(t, json.Unmarshal(respBytes, &stats))
	assert.Equal(t, 3, stats.Workouts)
	assert.Equal(t, 120, stats.TotalMinutes)
	assert.Equal(t, 2, stats.ActiveDays)
	assert.InDelta(t, 60, stats.AvgPerDay, 0.01)
	assert.InDelta(t, 40, stats.AvgDuration, 0.01)
	assert.Equal(t, 3, stats.ThisWeek)
	assert.Equal(t, 1, stats.CountPerType[workouts.TypeCardio])
	assert.Equal(t, 1, stats.CountPerType[workouts.TypeStrength])
	assert.Equal(t, 1, stats.CountPerType[workouts.TypePilates])

	// trailing week covers both days
	weekStats := s.getWorkoutStats(ctx, token, "/workouts/stats/week")
	assert.Equal(t, 3, weekStats.Workouts)
	assert.Equal(t, 120, weekStats.TotalMinutes)

	// current month stats at least cover today
	monthStats := s.getWorkoutStats(
		ctx, token,
		fmt.Sprintf("/workouts/stats/month/%d/%d", now.Year(), int(now.Month())),
	)
	assert.GreaterOrEqual(t, monthStats.Workouts, 2)

	// calendar for the current month has a bucket for today
	req, err = http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/workouts/calendar/%d/%d", serverEndpoint, now.Year(), int(now.Month())),
		nil,
	)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FITTRACK-TOKEN", token)

	resp, err = s.httpClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var calendar []workouts.CalendarDay
	require.NoError(t, json.Unmarshal(respBytes, &calendar))
	require.NotEmpty(t, calendar)

	var todayBucket *workouts.CalendarDay
	for i := range calendar {
		if calendar[i].Day.Format("2006-01-02") == today {
			todayBucket = &calendar[i]
		}
	}
	require.NotNil(t, todayBucket)
	assert.Equal(t, 2, todayBucket.Workouts)
	assert.Equal(t, 90, todayBucket.TotalMinutes)
	assert.ElementsMatch(
		t,
		[]workouts.Type{workouts.TypeCardio, workouts.TypeStrength},
		todayBucket.Types,
	)
}
