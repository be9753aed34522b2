package typecheck

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	callsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typecheck_calls_total",
		Help: "Checked calls by function and outcome",
	}, []string{"func", "result"})

	mismatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typecheck_mismatches_total",
		Help: "Rejected arguments by name prefix",
	}, []string{"prefix"})
)

func recordCheck(fn string, mismatches []Mismatch) {
	if len(mismatches) == 0 {
		callsTotal.WithLabelValues(fn, "ok").Inc()
		return
	}
	callsTotal.WithLabelValues(fn, "mismatch").Inc()
	for _, m := range mismatches {
		mismatchesTotal.WithLabelValues(ExtractPrefix(m.Name)).Inc()
	}
}
