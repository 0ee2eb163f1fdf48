package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// recentWorkoutLimit caps the recent_workouts resource.
const recentWorkoutLimit = 10

func (h *handlers) home(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	home, err := h.ds.Home(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, home)
}

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	workouts, err := h.ds.Workouts(ctx)
	if err != nil {
		return nil, err
	}
	if len(workouts) > recentWorkoutLimit {
		workouts = workouts[:recentWorkoutLimit]
	}
	return jsonResource(req.Params.URI, workouts)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
