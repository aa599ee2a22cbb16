package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"vacation-tracker/internal/models"
)

func TestMetricsCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Transition(models.StatusDraft, models.StatusSubmitted)
	m.Transition(models.StatusDraft, models.StatusSubmitted)
	m.Transition("", models.StatusDraft)
	m.Refusal("approve")
	m.BulkAssign(3, 2)

	if got := testutil.ToFloat64(m.transitions.WithLabelValues("draft", "submitted")); got != 2 {
		t.Errorf("draft->submitted = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues("none", "draft")); got != 1 {
		t.Errorf("none->draft = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.refusals.WithLabelValues("approve")); got != 1 {
		t.Errorf("refusals = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.bulkAssignCreated); got != 3 {
		t.Errorf("created = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.bulkAssignSkipped); got != 2 {
		t.Errorf("skipped = %v, want 2", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Transition(models.StatusDraft, models.StatusSubmitted)
	m.Refusal("submit")
	m.BulkAssign(1, 1)
}
