package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/catalog"
	"github.com/meltforce/speedifit/internal/models"
	"github.com/meltforce/speedifit/internal/training"
)

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List exercises from the Speediance catalog. Filter by category (a muscle group, 'Legs' for all lower body, or 'All')."),
	mcp.WithString("category", mcp.Description("Category filter, e.g. 'Chest', 'Legs', 'Back'. Defaults to 'All'.")),
)

var toolListSetSchemes = mcp.NewTool("list_set_schemes",
	mcp.WithDescription("List the set scheme templates (pyramid, straight, progressive, drop, volume, strength) with their percentage, reps and rest prescriptions."),
)

var toolGenerateWorkout = mcp.NewTool("generate_workout",
	mcp.WithDescription("Generate concrete sets for the selected exercises from the user's tested one-rep maxes. Weights are rounded to the nearest 5 lbs. Fails listing every exercise that still needs a max test."),
	mcp.WithArray("exercise_ids", mcp.Required(), mcp.Description("Catalog exercise ids, e.g. ['squat', 'deadlift']"), mcp.WithStringItems()),
	mcp.WithString("scheme", mcp.Description("Set scheme key. Defaults to 'pyramid'."),
		mcp.Enum("pyramid", "straight", "progressive", "drop", "volume", "strength")),
)

var toolEstimateOneRepMax = mcp.NewTool("estimate_one_rep_max",
	mcp.WithDescription("Estimate a one-rep max from a submaximal set using the Epley formula, rounded to 5 lbs."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight lifted in lbs")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Reps completed (1-30)")),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Progress statistics for a timeframe: workout count, total volume, average duration, training streak, most trained muscles, personal records, and workout history."),
	mcp.WithString("range", mcp.Description("Timeframe. Defaults to 'week'."), mcp.Enum("week", "month", "year")),
)

var toolGetCreatineStatus = mcp.NewTool("get_creatine_status",
	mcp.WithDescription("Whether creatine was taken today, the current consecutive-day streak, its tier, and the logged days."),
)

var toolLogCreatine = mcp.NewTool("log_creatine",
	mcp.WithDescription("Log a creatine dose. Logging the same day twice has no effect."),
	mcp.WithString("date", mcp.Description("Day taken (YYYY-MM-DD). Defaults to today.")),
)

// --- Tool handlers ---

func (h *handlers) listExercises(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises := catalog.FilterByCategory(req.GetString("category", ""))
	if exercises == nil {
		exercises = []models.Exercise{}
	}
	return jsonResult(exercises)
}

func (h *handlers) listSetSchemes(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(training.Schemes())
}

func (h *handlers) generateWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := req.RequireStringSlice("exercise_ids")
	if err != nil {
		return mcp.NewToolResultError("exercise_ids parameter is required"), nil
	}

	tmpl, err := training.Scheme(req.GetString("scheme", training.DefaultScheme))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	selected := make([]models.Exercise, 0, len(ids))
	for _, id := range ids {
		e, ok := catalog.ByID(id)
		if !ok {
			return mcp.NewToolResultError("unknown exercise: " + id), nil
		}
		selected = append(selected, e)
	}

	maxes, err := h.ds.UserMaxes(ctx)
	if err != nil {
		h.log.Error("mcp generate_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	// a MissingMaxesError already reads as guidance for the user
	exercises, err := training.Generate(selected, maxes, tmpl)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"scheme":      tmpl.Name,
		"exercises":   exercises,
		"totalVolume": training.WorkoutVolume(models.Workout{Exercises: exercises}),
	})
}

func (h *handlers) estimateOneRepMax(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireInt("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}

	est := training.EstimateOneRepMax(weight, reps)
	if est <= 0 {
		return mcp.NewToolResultError("weight must be positive and reps between 1 and 30"), nil
	}
	return jsonResult(map[string]any{
		"oneRepMax": est,
		"formatted": training.FormatWeight(est),
	})
}

func (h *handlers) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tf, err := training.ParseTimeframe(req.GetString("range", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	progress, err := h.ds.Progress(ctx, tf)
	if err != nil {
		h.log.Error("mcp get_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(progress)
}

func (h *handlers) getCreatineStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := h.ds.CreatineStatus(ctx)
	if err != nil {
		h.log.Error("mcp get_creatine_status", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(status)
}

func (h *handlers) logCreatine(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var date calendar.Date
	if s := req.GetString("date", ""); s != "" {
		d, err := calendar.Parse(s)
		if err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
		date = d
	}

	status, added, err := h.ds.LogCreatine(ctx, date)
	if err != nil {
		h.log.Error("mcp log_creatine", "error", err)
		return mcp.NewToolResultError("log failed: " + err.Error()), nil
	}
	return jsonResult(map[string]any{
		"added":  added,
		"status": status,
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
