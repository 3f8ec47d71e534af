package fpgrowth

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"rds-fpgrowth/fpgrowth/common"
)

var (
	// miningRuns counts mining runs by result
	miningRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fpgrowth_mining_runs_total",
		Help: "Total mining runs by result",
	}, []string{"result"})

	// miningDuration tracks end-to-end mining latency
	miningDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fpgrowth_mining_duration_seconds",
		Help:    "Mining duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	})

	// miningItemsets tracks number of frequent itemsets per run
	miningItemsets = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fpgrowth_frequent_itemsets",
		Help:    "Number of frequent itemsets per mining run",
		Buckets: []float64{0, 10, 100, 1000, 10000, 100000},
	})

	// miningRules tracks number of rules per run
	miningRules = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fpgrowth_rules",
		Help:    "Number of association rules per mining run",
		Buckets: []float64{0, 10, 100, 1000, 10000, 100000},
	})
)

func observeRun(start time.Time, res *Result, err error) {
	miningDuration.Observe(time.Since(start).Seconds())
	switch {
	case err == nil:
		miningRuns.WithLabelValues("ok").Inc()
		miningItemsets.Observe(float64(len(res.Itemsets)))
		miningRules.Observe(float64(res.Rules.Len()))
	case errors.Is(err, common.ErrInvalidParameter):
		miningRuns.WithLabelValues("invalid").Inc()
	default:
		miningRuns.WithLabelValues("error").Inc()
	}
}
