package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/catalog"
	"github.com/meltforce/speedifit/internal/models"
	"github.com/meltforce/speedifit/internal/storage"
	"github.com/meltforce/speedifit/internal/training"
)

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var out []models.Exercise
	switch {
	case len(q["muscle"]) > 0:
		groups := make([]models.MuscleGroup, len(q["muscle"]))
		for i, m := range q["muscle"] {
			groups[i] = models.MuscleGroup(m)
		}
		out = catalog.FilterByMuscleGroups(groups...)
	default:
		out = catalog.FilterByCategory(q.Get("category"))
	}
	if out == nil {
		out = []models.Exercise{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	e, ok := catalog.ByID(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleListSchemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, training.Schemes())
}

func (s *Server) handleListRanges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, training.TrainingRanges)
}

func (s *Server) handleGetRange(w http.ResponseWriter, r *http.Request) {
	goal := training.Goal(chi.URLParam(r, "goal"))
	rec, err := training.RecommendedRange(goal)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"goal":           goal,
		"recommendation": rec,
		"range":          training.TrainingRanges[goal],
	})
}

type estimateRequest struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	est := training.EstimateOneRepMax(req.Weight, req.Reps)
	if est <= 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "weight must be positive and reps between 1 and 30"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"oneRepMax": est})
}

func (s *Server) handleListMaxes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.repo.LoadUserMaxes(r.Context()))
}

type putMaxRequest struct {
	Weight     float64       `json:"weight"`
	TestedDate calendar.Date `json:"tested_date"`
}

func (s *Server) handlePutMax(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "exerciseId")
	if _, ok := catalog.ByID(id); !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}
	var req putMaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	m, err := s.repo.SaveUserMax(r.Context(), id, req.Weight, req.TestedDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeleteMax(w http.ResponseWriter, r *http.Request) {
	if !s.repo.DeleteUserMax(r.Context(), chi.URLParam(r, "exerciseId")) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no max recorded"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type generateRequest struct {
	ExerciseIDs []string `json:"exercise_ids"`
	Scheme      string   `json:"scheme"`
}

type generateResponse struct {
	Scheme       models.SetSchemeTemplate `json:"scheme"`
	MuscleGroups []models.MuscleGroup     `json:"muscleGroups"`
	Exercises    []models.WorkoutExercise `json:"exercises"`
	TotalVolume  float64                  `json:"totalVolume"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Scheme == "" {
		req.Scheme = training.DefaultScheme
	}
	tmpl, err := training.Scheme(req.Scheme)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	selected := make([]models.Exercise, 0, len(req.ExerciseIDs))
	for _, id := range req.ExerciseIDs {
		e, ok := catalog.ByID(id)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown exercise: " + id})
			return
		}
		selected = append(selected, e)
	}

	exercises, err := training.Generate(selected, s.repo.LoadUserMaxes(r.Context()), tmpl)
	var missing *training.MissingMaxesError
	switch {
	case errors.As(err, &missing):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":   err.Error(),
			"missing": missing.Exercises,
		})
		return
	case err != nil:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Scheme:       tmpl,
		MuscleGroups: primaryMuscles(selected),
		Exercises:    exercises,
		TotalVolume:  training.WorkoutVolume(models.Workout{Exercises: exercises}),
	})
}

// primaryMuscles lists the distinct primary muscles in selection order.
func primaryMuscles(exercises []models.Exercise) []models.MuscleGroup {
	seen := map[models.MuscleGroup]bool{}
	out := []models.MuscleGroup{}
	for _, e := range exercises {
		if !seen[e.PrimaryMuscle] {
			seen[e.PrimaryMuscle] = true
			out = append(out, e.PrimaryMuscle)
		}
	}
	return out
}

type saveWorkoutRequest struct {
	Name         string                   `json:"name"`
	Date         time.Time                `json:"date"`
	MuscleGroups []models.MuscleGroup     `json:"muscle_groups"`
	Exercises    []models.WorkoutExercise `json:"exercises"`
	Duration     *int                     `json:"duration,omitempty"`
}

func (s *Server) handleSaveWorkout(w http.ResponseWriter, r *http.Request) {
	var req saveWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Date.IsZero() {
		req.Date = s.repo.Clock().Time()
	}
	workout, err := training.NewWorkout(req.Name, req.Date, req.MuscleGroups, req.Exercises)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	workout.Duration = req.Duration

	writeJSON(w, http.StatusCreated, s.repo.SaveWorkout(r.Context(), workout))
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, training.History(s.repo.LoadWorkouts(r.Context())))
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	workout, err := s.repo.GetWorkout(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleShareWorkout(w http.ResponseWriter, r *http.Request) {
	workout, err := s.repo.GetWorkout(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(training.ShareText(workout, s.repo.Clock().Loc())))
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	tf, err := training.ParseTimeframe(r.URL.Query().Get("range"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.repo.Progress(r.Context(), tf))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.repo.Home(r.Context()))
}

func (s *Server) handleCreatineStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.repo.CreatineStatus(r.Context()))
}

type logCreatineRequest struct {
	Date calendar.Date `json:"date"`
}

type logCreatineResponse struct {
	Added  bool                   `json:"added"`
	Streak int                    `json:"streak"`
	Status storage.CreatineStatus `json:"status"`
}

func (s *Server) handleLogCreatine(w http.ResponseWriter, r *http.Request) {
	var req logCreatineRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
			return
		}
	}
	if req.Date.After(s.repo.Clock().Today()) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cannot log a future date"})
		return
	}

	streak, added := s.repo.RecordCreatine(r.Context(), req.Date)
	writeJSON(w, http.StatusOK, logCreatineResponse{
		Added:  added,
		Streak: streak,
		Status: s.repo.CreatineStatus(r.Context()),
	})
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	s.repo.ClearAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
