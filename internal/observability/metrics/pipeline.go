// Package metrics centralises the metric names and tags the pipeline emits.
package metrics

import (
	"time"

	"github.com/buyers-scofflaw/s1-bq-connector/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// EmitStep emits the duration and outcome of one pipeline step.
func EmitStep(sink statsd.Sink, step string, duration time.Duration, err error) {
	if sink == nil {
		return
	}

	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	tags := map[string]string{"step": step, "result": result}

	sink.Count("pipeline.step", 1, tags)
	sink.Timing("pipeline.step.duration", duration, tags)
}

// EmitPollAttempts records how many status checks one polling loop consumed.
func EmitPollAttempts(sink statsd.Sink, attempts int) {
	if sink == nil {
		return
	}
	sink.Gauge("pipeline.poll.attempts", float64(attempts), nil)
}

// EmitRateLimited counts advisory rate-limit backoffs during polling.
func EmitRateLimited(sink statsd.Sink, wait time.Duration) {
	if sink == nil {
		return
	}
	sink.Count("pipeline.poll.rate_limited", 1, nil)
	sink.Timing("pipeline.poll.rate_limited.wait", wait, nil)
}

// EmitRunOutcome emits the whole-run result counter and, when the run
// succeeded, its duration.
func EmitRunOutcome(sink statsd.Sink, result string, duration time.Duration) {
	if sink == nil {
		return
	}
	sink.Count("pipeline.run", 1, map[string]string{"result": result})
	if duration > 0 {
		sink.Timing("pipeline.run.duration", duration, map[string]string{"result": result})
	}
}

// EmitLoadedRows records the row count the warehouse reported for one load.
func EmitLoadedRows(sink statsd.Sink, table string, rows int64) {
	if sink == nil {
		return
	}
	sink.Gauge("pipeline.load.rows", float64(rows), map[string]string{"table": table})
}
