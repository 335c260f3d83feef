// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

// Package metrics holds the Prometheus collectors of the scoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tennis_scoring"

var (
	MatchesCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_created_total",
			Help:      "Total number of matches created",
		},
		[]string{"format"},
	)

	MatchesCompletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_completed_total",
			Help:      "Total number of matches that reached a winner",
		},
	)

	PointsAwardedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_awarded_total",
			Help:      "Total number of points accepted, by game mode",
		},
		[]string{"mode"},
	)

	PointsUndoneTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_undone_total",
			Help:      "Total number of points reverted",
		},
	)

	StoreConflictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_conflicts_total",
			Help:      "Total number of concurrent-update conflicts on a match record",
		},
		[]string{"operation"},
	)

	EventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Total number of derived match events, by type",
		},
		[]string{"type"},
	)
)

// Collectors lists every collector the service exposes.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		MatchesCreatedTotal,
		MatchesCompletedTotal,
		PointsAwardedTotal,
		PointsUndoneTotal,
		StoreConflictsTotal,
		EventsTotal,
	}
}
