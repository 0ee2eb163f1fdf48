package kv

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/meltforce/speedifit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "@SpeediFit:workouts")
	require.NoError(t, err)
	assert.False(t, ok, "missing key must report absent")

	require.NoError(t, s.Set(ctx, "@SpeediFit:workouts", `[{"id":"1"}]`))
	v, ok, err := s.Get(ctx, "@SpeediFit:workouts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, v)

	require.NoError(t, s.Set(ctx, "@SpeediFit:workouts", `[]`))
	v, _, err = s.Get(ctx, "@SpeediFit:workouts")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v, "set overwrites")

	require.NoError(t, s.Set(ctx, "@SpeediFit:creatineStreak", "3"))
	require.NoError(t, s.Remove(ctx, "@SpeediFit:workouts", "@SpeediFit:creatineStreak", "never-set"))
	for _, k := range []string{"@SpeediFit:workouts", "@SpeediFit:creatineStreak"} {
		_, ok, err := s.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, ok, k)
	}
	require.NoError(t, s.Remove(ctx))
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "speedifit.db"))
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "speedifit.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

// TestPostgresStore needs a disposable database; it is skipped otherwise.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("SPEEDIFIT_TEST_DSN")
	if dsn == "" {
		t.Skip("SPEEDIFIT_TEST_DSN not set")
	}
	require.NoError(t, RunMigrations(dsn, "../../migrations"))
	s, err := OpenPostgres(context.Background(), dsn)
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	s, err := Open(ctx, config.StorageConfig{
		Backend: config.BackendSQLite,
		CacheMB: 1,
		SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "a.db")},
	}, log)
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &CachedStore{}, s)
	exerciseStore(t, s)

	plain, err := Open(ctx, config.StorageConfig{
		Backend: config.BackendSQLite,
		SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "b.db")},
	}, log)
	require.NoError(t, err)
	defer plain.Close()
	assert.IsType(t, &SQLiteStore{}, plain)

	_, err = Open(ctx, config.StorageConfig{Backend: "mongo"}, log)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
