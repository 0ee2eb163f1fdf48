package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "speedifit"

type Manager struct {
	// counters
	CounterRequests        *prometheus.CounterVec
	CounterStorageFailures *prometheus.CounterVec
	CounterWorkoutsSaved   prometheus.Counter
	CounterCreatineLogged  prometheus.Counter
	CounterStreakMismatch  prometheus.Counter
	CounterReminders       *prometheus.CounterVec

	// gauges
	GaugeCreatineStreak prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("test", reg), reg
}

func NewManager(subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "The total number of incoming requests",
		}, []string{"method", "status"}),
		CounterStorageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "storage_failures_total",
			Help:      "Storage reads and writes that failed and were degraded",
		}, []string{"op"}),
		CounterWorkoutsSaved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "workouts_saved_total",
			Help:      "The total number of saved workouts",
		}),
		CounterCreatineLogged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "creatine_logged_total",
			Help:      "Creatine days newly recorded",
		}),
		CounterStreakMismatch: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "streak_mismatch_total",
			Help:      "Incremental streak updates that disagreed with recomputation",
		}),
		CounterReminders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reminders_total",
			Help:      "Reminder runs by outcome",
		}, []string{"outcome"}),
		GaugeCreatineStreak: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "creatine_streak_days",
			Help:      "Current creatine streak as last computed",
		}),
		HistogramRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Histogram of response time for requests in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"route", "method", "status_code"}),
	}
}
