package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	Registrations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_registrations_total",
			Help: "Number of session registrations accepted",
		},
	)

	Validations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_validations_total",
			Help: "Number of attendances validated",
		},
	)

	AccessDenied = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_access_denied_total",
			Help: "Number of confirmations refused for lack of a registration",
		},
	)

	CapacityRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_capacity_rejections_total",
			Help: "Number of registrations refused because the session was full",
		},
	)

	OfferedSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gym_offered_sessions",
			Help: "Sessions currently offered this week",
		},
	)

	BoundaryRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_week_boundary_runs_total",
			Help: "Weekly boundary routines by result",
		},
		[]string{"result"},
	)

	BoundaryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "gym_week_boundary_duration_seconds",
			Help: "Time taken to close a week, artifact writes included",
		},
	)

	SettlementWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_settlement_write_failures_total",
			Help: "Closings whose artifacts could not be written after retries",
		},
	)

	PendingClosings = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gym_pending_closings",
			Help: "Closed weeks whose artifacts are waiting to be written",
		},
	)
)

var once sync.Once

func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			Registrations,
			Validations,
			AccessDenied,
			CapacityRejections,
			OfferedSessions,
			BoundaryRuns,
			BoundaryDuration,
			SettlementWriteFailures,
			PendingClosings,
		)
	})
}
