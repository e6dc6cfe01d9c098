// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chanwire

import "sync/atomic"

// Statistics holds the optional counters of §6.4. A nil *Statistics
// disables counting entirely: every method returns early on a nil
// receiver, so the feature costs nothing when unused, the closest a
// non-cfg-gated language gets to channels-rs's cfg_statistics! compile-time
// feature (see DESIGN.md).
//
// All fields are updated with atomic operations so one Statistics value can
// be shared and read concurrently from a metrics exporter (see the stats
// subpackage) while a Sender/Receiver pair is in use.
type Statistics struct {
	totalBytes   atomic.Int64
	totalPackets atomic.Int64
	totalOps     atomic.Int64
	totalItems   atomic.Int64
}

// NewStatistics returns a zeroed Statistics ready to be passed to WithStats.
func NewStatistics() *Statistics { return &Statistics{} }

// TotalBytes returns the number of payload bytes sent or received so far.
func (s *Statistics) TotalBytes() int64 {
	if s == nil {
		return 0
	}
	return s.totalBytes.Load()
}

// TotalPackets returns the number of wire frames sent or received so far.
func (s *Statistics) TotalPackets() int64 {
	if s == nil {
		return 0
	}
	return s.totalPackets.Load()
}

// TotalOps returns the number of user-level Send/Recv calls completed so far.
func (s *Statistics) TotalOps() int64 {
	if s == nil {
		return 0
	}
	return s.totalOps.Load()
}

// TotalItems returns the number of values successfully sent or received.
func (s *Statistics) TotalItems() int64 {
	if s == nil {
		return 0
	}
	return s.totalItems.Load()
}

// recordMessage accounts for one completed Send/Recv: payloadLen bytes of
// item payload carried across frames wire frames.
func (s *Statistics) recordMessage(payloadLen, frames int) {
	if s == nil {
		return
	}
	s.totalBytes.Add(int64(payloadLen))
	s.totalPackets.Add(int64(frames))
}

func (s *Statistics) recordOp() {
	if s == nil {
		return
	}
	s.totalOps.Add(1)
}

func (s *Statistics) recordItem() {
	if s == nil {
		return
	}
	s.totalItems.Add(1)
}
