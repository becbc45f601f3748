package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Submits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auditsvc", Name: "submits_total", Help: "Audit submissions by outcome",
	}, []string{"result"})
	ValidationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "auditsvc", Name: "validation_failures_total", Help: "Submissions rejected by field validation",
	})
	AutoFails = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "auditsvc", Name: "autofails_total", Help: "Audits failed by an auto-fail option",
	})
	PersistenceErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "auditsvc", Name: "persistence_errors_total", Help: "Failed audit inserts/updates",
	})
	PendingAudits = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "auditsvc", Name: "pending_audits", Help: "Audits currently in pending status",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "auditsvc", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(Submits, ValidationFailures, AutoFails, PersistenceErrors, PendingAudits, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
