package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas de observabilidade da sincronização. Registradas no registry
// default e expostas em /metrics
var (
	SyncRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "client_reporting",
		Subsystem: "sync",
		Name:      "runs_total",
		Help:      "Total de sincronizações por conta, por plataforma e resultado",
	}, []string{"platform", "status"})

	SyncRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "client_reporting",
		Subsystem: "sync",
		Name:      "records_total",
		Help:      "Total de linhas de métricas gravadas pela sincronização",
	}, []string{"platform"})

	SyncDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "client_reporting",
		Subsystem: "sync",
		Name:      "duration_seconds",
		Help:      "Duração da sincronização de uma conta de anúncios",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	}, []string{"platform"})
)
