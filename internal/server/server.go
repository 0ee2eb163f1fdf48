package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/meltforce/speedifit/internal/metrics"
	"github.com/meltforce/speedifit/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	repo     *storage.Repository
	metrics  *metrics.Manager
	gatherer prometheus.Gatherer
	log      *slog.Logger
	apiKey   string
	whois    whoIser
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(repo *storage.Repository, m *metrics.Manager, gatherer prometheus.Gatherer, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		repo:     repo,
		metrics:  m,
		gatherer: gatherer,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(Instrument(s.metrics))
	s.router.Use(CORS)
	s.router.Use(s.Identity)

	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/me", s.handleMe)

		// Reference data
		r.Get("/exercises", s.handleListExercises)
		r.Get("/exercises/{id}", s.handleGetExercise)
		r.Get("/schemes", s.handleListSchemes)
		r.Get("/ranges", s.handleListRanges)
		r.Get("/ranges/{goal}", s.handleGetRange)
		r.Post("/estimate", s.handleEstimate)

		// Reads
		r.Get("/maxes", s.handleListMaxes)
		r.Get("/workouts", s.handleListWorkouts)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Get("/workouts/{id}/share", s.handleShareWorkout)
		r.Get("/progress", s.handleProgress)
		r.Get("/home", s.handleHome)
		r.Get("/creatine", s.handleCreatineStatus)

		// Writes (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey, s.log))
			r.Put("/maxes/{exerciseId}", s.handlePutMax)
			r.Delete("/maxes/{exerciseId}", s.handleDeleteMax)
			r.Post("/workouts/generate", s.handleGenerate)
			r.Post("/workouts", s.handleSaveWorkout)
			r.Post("/creatine", s.handleLogCreatine)
			r.Delete("/data", s.handleClearAll)
		})
	})
}
