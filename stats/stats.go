// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stats exports a chanwire.Statistics snapshot as Prometheus
// metrics as a directly-implemented Collector (see DESIGN.md) rather than
// inventing a bespoke exporter.
package stats

import (
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/brevict/chanwire"
)

// Collector implements prometheus.Collector over a *chanwire.Statistics,
// reading it on every scrape rather than mirroring its counters into a
// second set of atomics.
type Collector struct {
	stats      *chanwire.Statistics
	instanceID string

	bytes   *prometheus.Desc
	packets *prometheus.Desc
	ops     *prometheus.Desc
	items   *prometheus.Desc
}

// NewCollector returns a Collector over stats, labeled with a fresh random
// instance ID so metrics from multiple Sender/Receiver pairs sharing one
// process don't collide when registered under the same name.
func NewCollector(stats *chanwire.Statistics) *Collector {
	id := uuid.NewString()
	labels := []string{"instance"}
	return &Collector{
		stats:      stats,
		instanceID: id,
		bytes:      prometheus.NewDesc("chanwire_total_bytes", "Payload bytes sent or received.", labels, nil),
		packets:    prometheus.NewDesc("chanwire_total_packets", "Wire frames sent or received.", labels, nil),
		ops:        prometheus.NewDesc("chanwire_total_ops", "Send/Recv calls completed.", labels, nil),
		items:      prometheus.NewDesc("chanwire_total_items", "Values successfully sent or received.", labels, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.bytes
	ch <- c.packets
	ch <- c.ops
	ch <- c.items
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.bytes, prometheus.CounterValue, float64(c.stats.TotalBytes()), c.instanceID)
	ch <- prometheus.MustNewConstMetric(c.packets, prometheus.CounterValue, float64(c.stats.TotalPackets()), c.instanceID)
	ch <- prometheus.MustNewConstMetric(c.ops, prometheus.CounterValue, float64(c.stats.TotalOps()), c.instanceID)
	ch <- prometheus.MustNewConstMetric(c.items, prometheus.CounterValue, float64(c.stats.TotalItems()), c.instanceID)
}
