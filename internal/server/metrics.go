package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricGamesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discscore_games_created_total",
		Help: "Games created since process start.",
	})
	metricEventsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discscore_events_recorded_total",
		Help: "Play events recorded, by event type.",
	}, []string{"type"})
	metricEventsUndone = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discscore_events_undone_total",
		Help: "Play events removed via undo.",
	})
	metricPointsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discscore_points_completed_total",
		Help: "Points completed across all games.",
	})
)
