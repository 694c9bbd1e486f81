// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "novatel",
			Subsystem: "reader",
			Name:      "frames_total",
			Help:      "Frames that passed the checksum, by message.",
		},
		[]string{"message"},
	)
	framesDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "novatel",
			Subsystem: "reader",
			Name:      "dropped_frames_total",
			Help:      "Frames discarded by the reader, by reason.",
		},
		[]string{"reason"},
	)
	skippedBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "novatel",
			Subsystem: "reader",
			Name:      "skipped_bytes",
			Help:      "Bytes discarded while hunting for the sync pattern.",
		},
	)
	fixQuality = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "novatel",
			Subsystem: "gps",
			Name:      "fix_quality",
			Help:      "Last fix quality (-1 no fix, 0 GPS, 1 SBAS).",
		},
	)
	satellitesUsed = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "novatel",
			Subsystem: "gps",
			Name:      "satellites_used",
			Help:      "Satellites used in the last position solution.",
		},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "novatel",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "novatel",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(framesDecoded, framesDropped, skippedBytes, fixQuality, satellitesUsed, httpRequests, httpDuration)
	})
}

func RecordFrame(message string) {
	RegisterMetrics()
	framesDecoded.WithLabelValues(message).Inc()
}

func RecordDrop(reason string) {
	RegisterMetrics()
	framesDropped.WithLabelValues(reason).Inc()
}

// SetSkippedBytes publishes the reader's running skip total.
func SetSkippedBytes(total uint64) {
	RegisterMetrics()
	skippedBytes.Set(float64(total))
}

func RecordFix(quality int8, used int) {
	RegisterMetrics()
	fixQuality.Set(float64(quality))
	satellitesUsed.Set(float64(used))
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}
