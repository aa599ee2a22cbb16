package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"vacation-tracker/internal/models"
)

// Metrics - счетчики движка отпусков. Нулевой *Metrics допустим: вызовы ничего не делают.
type Metrics struct {
	transitions       *prometheus.CounterVec
	refusals          *prometheus.CounterVec
	bulkAssignCreated prometheus.Counter
	bulkAssignSkipped prometheus.Counter
}

// New регистрирует счетчики в reg. Для бота это prometheus.DefaultRegisterer,
// для тестов - prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vacation",
			Subsystem: "request",
			Name:      "transitions_total",
			Help:      "Total vacation request status transitions.",
		}, []string{"from", "to"}),
		refusals: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vacation",
			Subsystem: "request",
			Name:      "refusals_total",
			Help:      "Total refused lifecycle operations by operation.",
		}, []string{"operation"}),
		bulkAssignCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vacation",
			Subsystem: "balance",
			Name:      "bulk_assign_created_total",
			Help:      "Total balances created by bulk assignment.",
		}),
		bulkAssignSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vacation",
			Subsystem: "balance",
			Name:      "bulk_assign_skipped_total",
			Help:      "Total employees skipped by bulk assignment.",
		}),
	}
}

func (m *Metrics) Transition(from, to models.RequestStatus) {
	if m == nil {
		return
	}
	fromLabel := string(from)
	if fromLabel == "" {
		fromLabel = "none"
	}
	m.transitions.WithLabelValues(fromLabel, string(to)).Inc()
}

func (m *Metrics) Refusal(operation string) {
	if m == nil {
		return
	}
	m.refusals.WithLabelValues(operation).Inc()
}

func (m *Metrics) BulkAssign(created, skipped int) {
	if m == nil {
		return
	}
	m.bulkAssignCreated.Add(float64(created))
	m.bulkAssignSkipped.Add(float64(skipped))
}
