package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SyncRuns          *prometheus.CounterVec
	SyncDuration      prometheus.Histogram
	PhaseActive       *prometheus.GaugeVec
	AttendeesUpserted prometheus.Counter
	PetsReplaced      prometheus.Counter
	WriteErrors       prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		SyncRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "checkinhub_sync_runs_total",
			Help: "Total number of sync runs by outcome",
		}, []string{"outcome"}),
		SyncDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "checkinhub_sync_run_duration_seconds",
			Help:    "Wall-clock duration of sync runs",
			Buckets: prometheus.DefBuckets,
		}),
		PhaseActive: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "checkinhub_sync_phase_active",
			Help: "Number of sync runs currently in each phase",
		}, []string{"phase"}),
		AttendeesUpserted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "checkinhub_sync_attendees_upserted_total",
			Help: "Total number of attendee rows upserted by sync runs",
		}),
		PetsReplaced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "checkinhub_sync_pets_replaced_total",
			Help: "Total number of pet rows written by sync runs",
		}),
		WriteErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "checkinhub_sync_write_errors_total",
			Help: "Total number of non-fatal store write errors during sync runs",
		}),
	}
}

// EnterPhase marks a run as being in the phase; the returned func exits it.
func (m *Metrics) EnterPhase(phase string) func() {
	g := m.PhaseActive.WithLabelValues(phase)
	g.Inc()
	return g.Dec
}

func (m *Metrics) ObserveRun(outcome string, d time.Duration) {
	m.SyncRuns.WithLabelValues(outcome).Inc()
	m.SyncDuration.Observe(d.Seconds())
}

func (m *Metrics) AddAttendeesUpserted(n int) {
	m.AttendeesUpserted.Add(float64(n))
}

func (m *Metrics) AddPetsReplaced(n int) {
	m.PetsReplaced.Add(float64(n))
}

func (m *Metrics) AddWriteErrors(n int) {
	m.WriteErrors.Add(float64(n))
}
