// Package metrics records pipeline metrics in a private Prometheus registry
// and exports them in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AndreyAkinshin/cssbuild/internal/errors"
)

// EnvMetricsFile names the textfile written after a run when no flag is given.
const EnvMetricsFile = "CSSBUILD_METRICS_FILE"

const namespace = "cssbuild"

// Recorder collects step and run metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry     *prometheus.Registry
	stepDuration *prometheus.HistogramVec
	stepFailures *prometheus.CounterVec
	outputBytes  *prometheus.GaugeVec
	runs         *prometheus.CounterVec
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Duration of pipeline steps.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"task", "target"}),
		stepFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "step_failures_total",
			Help:      "Failed pipeline steps by error kind.",
		}, []string{"task", "target", "kind"}),
		outputBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "output_bytes",
			Help:      "Size of files written by the last run.",
		}, []string{"file"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Pipeline runs by result.",
		}, []string{"result"}),
	}
	r.registry.MustRegister(r.stepDuration, r.stepFailures, r.outputBytes, r.runs)
	return r
}

// ObserveStep records a finished step.
func (r *Recorder) ObserveStep(task, target string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.stepDuration.WithLabelValues(task, target).Observe(d.Seconds())
	if err != nil {
		r.stepFailures.WithLabelValues(task, target, kindOf(err)).Inc()
	}
}

// SetOutputBytes records the size of a written file.
func (r *Recorder) SetOutputBytes(file string, n int) {
	if r == nil {
		return
	}
	r.outputBytes.WithLabelValues(file).Set(float64(n))
}

// ObserveRun records the outcome of a whole pipeline run.
func (r *Recorder) ObserveRun(err error) {
	if r == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.runs.WithLabelValues(result).Inc()
}

// WriteTextfile atomically writes all metrics to path.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}

func kindOf(err error) string {
	for _, k := range []errors.ErrorKind{errors.KindCompile, errors.KindMinify, errors.KindEnvironment, errors.KindConfig} {
		if errors.IsKind(err, k) {
			return k.String()
		}
	}
	return errors.KindRuntime.String()
}
