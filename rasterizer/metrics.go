// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rasterizer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the frame instrumentation. A nil *metrics records nothing.
type metrics struct {
	frames   *prometheus.CounterVec
	duration prometheus.Histogram
	merged   prometheus.Gauge
}

func newMetrics(r prometheus.Registerer) *metrics {
	if r == nil {
		return nil
	}
	m := &metrics{
		frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flow_frames_total",
				Help: "Total number of drawn frames by status",
			},
			[]string{"status"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flow_draw_duration_seconds",
				Help:    "Duration of frame draws",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
		),
		merged: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "flow_threads_merged",
				Help: "Whether the raster and platform threads are merged",
			},
		),
	}
	r.MustRegister(m.frames, m.duration, m.merged)
	return m
}

func (m *metrics) observe(status Status, start time.Time, merged bool) {
	if m == nil {
		return
	}
	m.frames.WithLabelValues(status.String()).Inc()
	m.duration.Observe(time.Since(start).Seconds())
	if merged {
		m.merged.Set(1)
	} else {
		m.merged.Set(0)
	}
}
