package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("SpeediFit", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("SpeediFit strength training companion. Browse the exercise catalog and set schemes, generate percentage-based workouts from tested one-rep maxes, review progress, and track daily creatine adherence. Weights are in pounds."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolListSetSchemes, Handler: h.listSetSchemes},
		server.ServerTool{Tool: toolGenerateWorkout, Handler: h.generateWorkout},
		server.ServerTool{Tool: toolEstimateOneRepMax, Handler: h.estimateOneRepMax},
		server.ServerTool{Tool: toolGetProgress, Handler: h.getProgress},
		server.ServerTool{Tool: toolGetCreatineStatus, Handler: h.getCreatineStatus},
		server.ServerTool{Tool: toolLogCreatine, Handler: h.logCreatine},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resHome, Handler: h.home},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resHome = mcp.NewResource(
	"speedifit://home",
	"Home",
	mcp.WithResourceDescription("This week's workouts and volume, tested exercise count, and today's creatine status with the current streak"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"speedifit://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("The most recent saved workouts, newest first"),
	mcp.WithMIMEType("application/json"),
)
