package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Barrido de suscripciones
	SweepExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "menuqr_sweep_expired_total",
			Help: "Restaurants marked EXPIRED by the expire sweep",
		},
	)

	SweepRenewedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "menuqr_sweep_renewed_total",
			Help: "Subscriptions extended by the renew sweep",
		},
	)

	SweepRenewFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "menuqr_sweep_renew_failures_total",
			Help: "Per-restaurant renewal failures skipped by the renew sweep",
		},
	)

	SweepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "menuqr_sweep_duration_seconds",
			Help:    "Duration of a sweep pass",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"pass"},
	)

	// Menú público
	MenuViewsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "menuqr_menu_views_total",
			Help: "Full public menu renders",
		},
	)

	MenuViewLogFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "menuqr_menu_view_log_failures_total",
			Help: "Menu view records that could not be stored",
		},
	)

	// HTTP
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "menuqr_http_request_duration_seconds",
			Help:    "HTTP request duration by method, route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	prometheus.MustRegister(SweepExpiredTotal)
	prometheus.MustRegister(SweepRenewedTotal)
	prometheus.MustRegister(SweepRenewFailuresTotal)
	prometheus.MustRegister(SweepDuration)
	prometheus.MustRegister(MenuViewsTotal)
	prometheus.MustRegister(MenuViewLogFailuresTotal)
	prometheus.MustRegister(HTTPRequestDuration)
}

// Handler expone el registro por defecto en formato Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer mide la duración de una operación.
type Timer struct {
	start time.Time
}

func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// ObserveDuration registra la duración transcurrida en el histograma.
func (t *Timer) ObserveDuration(o prometheus.Observer) {
	o.Observe(t.Duration().Seconds())
}
