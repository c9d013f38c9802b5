// Copyright 2019 Intel Corporation. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics exposes Prometheus instrumentation for the coloring
// solver: how long Solve takes, how often it fails and with which kind of
// SolveError, and the R5 objective counts of the last successful run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sepkernel/colorer/pkg/coloring"
)

const namespace = "colorer"

// Recorder wraps the Prometheus collectors for one colorer instance.
type Recorder struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
	l1Count  prometheus.Gauge
	l2Count  prometheus.Gauge
	l3Count  prometheus.Gauge
}

// NewRecorder creates a Recorder. Call Register to expose it on a
// prometheus.Registerer.
func NewRecorder() *Recorder {
	return &Recorder{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Time spent in Solve, labeled by outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solve_failures_total",
			Help:      "Number of Solve calls that returned an error, by SolveErrorKind.",
		}, []string{"kind"}),
		l1Count: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_l1_count",
			Help:      "Distinct (l1, cpu) pairs used in the most recent successful assignment.",
		}),
		l2Count: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_l2_count",
			Help:      "Distinct (l2, cpu) pairs used in the most recent successful assignment.",
		}),
		l3Count: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_l3_count",
			Help:      "Distinct l3 colors used in the most recent successful assignment.",
		}),
	}
}

// Register registers every collector with reg.
func (r *Recorder) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{r.duration, r.failures, r.l1Count, r.l2Count, r.l3Count} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Observe records the outcome of one Solve call.
func (r *Recorder) Observe(elapsed time.Duration, a *coloring.Assignment, err error) {
	if err == nil {
		r.duration.WithLabelValues("success").Observe(elapsed.Seconds())
		r.l1Count.Set(float64(a.L1Count()))
		r.l2Count.Set(float64(a.L2Count()))
		r.l3Count.Set(float64(a.L3Count()))
		return
	}

	kind := "unknown"
	var se *coloring.SolveError
	if ok := asSolveError(err, &se); ok {
		kind = se.Kind.String()
	}
	r.duration.WithLabelValues("failure").Observe(elapsed.Seconds())
	r.failures.WithLabelValues(kind).Inc()
}

func asSolveError(err error, target **coloring.SolveError) bool {
	se, ok := err.(*coloring.SolveError)
	if ok {
		*target = se
	}
	return ok
}
