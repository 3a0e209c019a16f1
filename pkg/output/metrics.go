package output

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vertti/uismoke/pkg/check"
	"github.com/vertti/uismoke/pkg/runner"
)

// Registry returns a registry holding the report's metrics.
func Registry(r *runner.Report) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	status := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "uismoke_check_status",
		Help: "1 for the status each check ended with.",
	}, []string{"check", "status"})
	duration := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "uismoke_check_duration_seconds",
		Help: "Wall time of each check.",
	}, []string{"check"})
	totals := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "uismoke_checks",
		Help: "Number of checks by outcome.",
	}, []string{"status"})
	runDuration := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "uismoke_run_duration_seconds",
		Help: "Wall time of the whole run.",
	})
	aborted := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "uismoke_run_aborted",
		Help: "1 if the run stopped before every check executed.",
	})
	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "uismoke_last_run_timestamp_seconds",
		Help: "Unix time the run finished.",
	})
	reg.MustRegister(status, duration, totals, runDuration, aborted, lastRun)

	for _, e := range r.Results {
		for _, st := range []check.Status{check.StatusPass, check.StatusFail, check.StatusSkip} {
			v := 0.0
			if e.Result.Status == st {
				v = 1
			}
			status.WithLabelValues(e.Result.Name, string(st)).Set(v)
		}
		duration.WithLabelValues(e.Result.Name).Set(e.Duration.Seconds())
	}

	sum := r.Summary()
	totals.WithLabelValues("pass").Set(float64(sum.Passed))
	totals.WithLabelValues("fail").Set(float64(sum.Failed))
	totals.WithLabelValues("skip").Set(float64(sum.Skipped))
	totals.WithLabelValues("not_run").Set(float64(sum.NotRun))
	runDuration.Set(r.Duration().Seconds())
	if r.Aborted {
		aborted.Set(1)
	}
	lastRun.Set(float64(r.FinishedAt.Unix()))

	return reg
}

// WriteMetrics writes the report's metrics to path in the Prometheus text
// format, for the node_exporter textfile collector.
func WriteMetrics(path string, r *runner.Report) error {
	return prometheus.WriteToTextfile(path, Registry(r))
}
