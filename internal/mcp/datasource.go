package mcp

import (
	"context"
	"errors"

	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/models"
	"github.com/meltforce/speedifit/internal/storage"
	"github.com/meltforce/speedifit/internal/training"
)

// DataSource abstracts the data layer for MCP tools. Both Local (a
// repository in this process) and HTTPClient (remote via REST API) satisfy
// this interface.
type DataSource interface {
	UserMaxes(ctx context.Context) (models.UserMaxes, error)
	Workouts(ctx context.Context) ([]training.HistoryEntry, error)
	Progress(ctx context.Context, tf training.Timeframe) (storage.Progress, error)
	Home(ctx context.Context) (storage.Home, error)
	CreatineStatus(ctx context.Context) (storage.CreatineStatus, error)
	LogCreatine(ctx context.Context, date calendar.Date) (status storage.CreatineStatus, added bool, err error)
}

// Local serves tools straight from a repository. Storage failures are
// already degraded by the repository, so its methods never fail.
type Local struct {
	Repo *storage.Repository
}

// Compile-time checks.
var (
	_ DataSource = Local{}
	_ DataSource = (*HTTPClient)(nil)
)

func (l Local) UserMaxes(ctx context.Context) (models.UserMaxes, error) {
	return l.Repo.LoadUserMaxes(ctx), nil
}

func (l Local) Workouts(ctx context.Context) ([]training.HistoryEntry, error) {
	return training.History(l.Repo.LoadWorkouts(ctx)), nil
}

func (l Local) Progress(ctx context.Context, tf training.Timeframe) (storage.Progress, error) {
	return l.Repo.Progress(ctx, tf), nil
}

func (l Local) Home(ctx context.Context) (storage.Home, error) {
	return l.Repo.Home(ctx), nil
}

func (l Local) CreatineStatus(ctx context.Context) (storage.CreatineStatus, error) {
	return l.Repo.CreatineStatus(ctx), nil
}

var errFutureDate = errors.New("cannot log a future date")

func (l Local) LogCreatine(ctx context.Context, date calendar.Date) (storage.CreatineStatus, bool, error) {
	if date.After(l.Repo.Clock().Today()) {
		return storage.CreatineStatus{}, false, errFutureDate
	}
	_, added := l.Repo.RecordCreatine(ctx, date)
	return l.Repo.CreatineStatus(ctx), added, nil
}
