package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/kv"
	"github.com/meltforce/speedifit/internal/metrics"
	"github.com/meltforce/speedifit/internal/storage"
)

// Sunday 2025-08-10, 20:00 UTC
var now = time.Date(2025, 8, 10, 20, 0, 0, 0, time.UTC)

func newHandlers(t *testing.T) (*handlers, *storage.Repository) {
	t.Helper()
	store, err := kv.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "speedifit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := storage.New(store, calendar.Fixed(now), log, metrics.NewTestManager())
	return &handlers{ds: Local{Repo: repo}, log: log}, repo
}

func call(t *testing.T, fn func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := fn(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

func TestNewRegistersEverything(t *testing.T) {
	h, _ := newHandlers(t)
	s := New(h.ds, "test", h.log)
	require.NotNil(t, s)

	tools := s.ListTools()
	for _, name := range []string{
		"list_exercises", "list_set_schemes", "generate_workout",
		"estimate_one_rep_max", "get_progress", "get_creatine_status", "log_creatine",
	} {
		assert.Contains(t, tools, name)
	}
}

func TestListExercisesTool(t *testing.T) {
	h, _ := newHandlers(t)

	res := call(t, h.listExercises, map[string]any{"category": "Legs"})
	require.False(t, res.IsError)
	var exercises []map[string]any
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &exercises))
	assert.NotEmpty(t, exercises)

	res = call(t, h.listExercises, map[string]any{"category": "Neck"})
	assert.Equal(t, "[]", text(t, res))
}

func TestGenerateWorkoutTool(t *testing.T) {
	h, repo := newHandlers(t)
	ctx := context.Background()

	res := call(t, h.generateWorkout, map[string]any{"exercise_ids": []any{"squat", "deadlift"}})
	require.True(t, res.IsError)
	assert.Equal(t, "please test your max for: Squat, Deadlift", text(t, res))

	_, err := repo.SaveUserMax(ctx, "squat", 225, calendar.Date{})
	require.NoError(t, err)

	res = call(t, h.generateWorkout, map[string]any{"exercise_ids": []any{"squat"}})
	require.False(t, res.IsError, text(t, res))
	var out struct {
		Scheme      string  `json:"scheme"`
		TotalVolume float64 `json:"totalVolume"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.Equal(t, "Pyramid", out.Scheme)
	assert.Equal(t, 7140.0, out.TotalVolume)

	res = call(t, h.generateWorkout, map[string]any{"exercise_ids": []any{"squat"}, "scheme": "zigzag"})
	assert.True(t, res.IsError)
	res = call(t, h.generateWorkout, map[string]any{"exercise_ids": []any{"curl_of_doom"}})
	assert.True(t, res.IsError)
	res = call(t, h.generateWorkout, map[string]any{})
	assert.True(t, res.IsError)
}

func TestEstimateOneRepMaxTool(t *testing.T) {
	h, _ := newHandlers(t)

	res := call(t, h.estimateOneRepMax, map[string]any{"weight": 200.0, "reps": 5.0})
	require.False(t, res.IsError, text(t, res))
	assert.JSONEq(t, `{"oneRepMax":235,"formatted":"235 lbs"}`, text(t, res))

	res = call(t, h.estimateOneRepMax, map[string]any{"weight": 200.0, "reps": 40.0})
	assert.True(t, res.IsError)
}

func TestCreatineTools(t *testing.T) {
	h, _ := newHandlers(t)

	res := call(t, h.logCreatine, map[string]any{"date": "2025-08-09"})
	require.False(t, res.IsError, text(t, res))
	res = call(t, h.logCreatine, nil)
	require.False(t, res.IsError, text(t, res))

	var logged struct {
		Added  bool                   `json:"added"`
		Status storage.CreatineStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &logged))
	assert.True(t, logged.Added)
	assert.Equal(t, 2, logged.Status.Streak)
	assert.True(t, logged.Status.TakenToday)

	res = call(t, h.logCreatine, map[string]any{"date": "2025-08-11"})
	assert.True(t, res.IsError, "future dates are rejected")
	res = call(t, h.logCreatine, map[string]any{"date": "yesterday"})
	assert.True(t, res.IsError)

	res = call(t, h.getCreatineStatus, nil)
	var status storage.CreatineStatus
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &status))
	assert.Equal(t, 2, status.Streak)
	assert.Len(t, status.History, 2)
}

func TestGetProgressTool(t *testing.T) {
	h, _ := newHandlers(t)

	res := call(t, h.getProgress, map[string]any{"range": "month"})
	require.False(t, res.IsError, text(t, res))
	var p storage.Progress
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &p))
	assert.Equal(t, "2025-07-11", p.Since.String())

	res = call(t, h.getProgress, map[string]any{"range": "decade"})
	assert.True(t, res.IsError)
}

func TestResources(t *testing.T) {
	h, repo := newHandlers(t)
	ctx := context.Background()
	repo.RecordCreatine(ctx, calendar.Date{})

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "speedifit://home"
	contents, err := h.home(ctx, req)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	tc := contents[0].(mcp.TextResourceContents)
	assert.Equal(t, "speedifit://home", tc.URI)
	var home storage.Home
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &home))
	assert.True(t, home.CreatineTaken)

	req.Params.URI = "speedifit://recent_workouts"
	contents, err = h.recentWorkouts(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "[]", contents[0].(mcp.TextResourceContents).Text)
}
