package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the auth and check-in flows. Registered on the default
// registry and served from /metrics.
var (
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "presensi_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})

	Checkins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "presensi_checkins_total",
		Help: "Accepted check-ins.",
	})

	DuplicateCheckins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "presensi_checkins_duplicate_total",
		Help: "Check-in submissions rejected as duplicates for the day.",
	})

	InconsistentWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "presensi_inconsistent_writes_total",
		Help: "Check-ins where the photo uploaded but the record insert failed.",
	})

	OrphanBlobsCleaned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "presensi_orphan_blobs_cleaned_total",
		Help: "Stray photo blobs removed by the housekeeping worker.",
	})
)
