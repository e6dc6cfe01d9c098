// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chanwire

import "time"

// Config configures framing behavior for a Sender or a Receiver (§6.2).
// Sender fields are ignored by a Receiver and vice versa; both halves share
// one type, and each Option sets only the fields it documents.
type Config struct {
	// --- Sender-side ---

	// FlushOnSend calls Flush after every Send. Default true.
	FlushOnSend bool
	// CoalesceWrites serializes a frame's header and payload into one
	// contiguous buffer before writing it. When false, FramedWrite issues
	// one write per chunk (header, then payload). Default true.
	CoalesceWrites bool
	// UseHeaderChecksum computes and stamps the header checksum on send.
	// When false, a zero checksum is transmitted; a receiver with
	// VerifyHeaderChecksum disabled still accepts the result. Default true.
	UseHeaderChecksum bool

	// --- Receiver-side ---

	// MaxSize rejects messages whose accumulated payload would exceed this
	// many bytes. Zero means unlimited (§6.2's default), but
	// DefaultConfig sets a conservative non-zero value per §9's "SHOULD
	// default to a conservative value" guidance.
	MaxSize int
	// SizeEstimate sizes the initial capacity of the accumulation buffer.
	SizeEstimate int
	// VerifyOrder enforces the sequence-number check of §4.4 step 3.
	// Default true.
	VerifyOrder bool
	// VerifyHeaderChecksum enforces the checksum check of §4.1. Default true.
	VerifyHeaderChecksum bool

	// --- Shared ---

	// RetryDelay controls how the framed IO driver handles ErrWouldBlock
	// from the underlying transport (§4.7, §5):
	//   - negative: non-blocking; return ErrWouldBlock immediately.
	//   - zero: cooperative yield (runtime.Gosched) and retry.
	//   - positive: sleep for the duration and retry.
	RetryDelay time.Duration

	// Stats, when non-nil, accumulates the optional counters of §6.4.
	Stats *Statistics
}

// defaultMaxSize bounds the decoder's accumulation buffer when the caller
// does not set MaxSize, per §9's guidance that an unbounded default invites
// a malicious peer to drive unbounded memory growth.
const defaultMaxSize = 64 * 1024 * 1024

// DefaultConfig returns the default configuration described in §6.2, with
// the single deliberate deviation noted on MaxSize above.
func DefaultConfig() Config {
	return Config{
		FlushOnSend:          true,
		CoalesceWrites:       true,
		UseHeaderChecksum:    true,
		MaxSize:              defaultMaxSize,
		VerifyOrder:          true,
		VerifyHeaderChecksum: true,
		RetryDelay:           -1,
	}
}

// Option mutates a Config. Functional options compose left to right, each
// one touching only the fields it documents.
type Option func(*Config)

// WithFlushOnSend toggles FlushOnSend.
func WithFlushOnSend(v bool) Option { return func(c *Config) { c.FlushOnSend = v } }

// WithCoalesceWrites toggles CoalesceWrites.
func WithCoalesceWrites(v bool) Option { return func(c *Config) { c.CoalesceWrites = v } }

// WithHeaderChecksum toggles UseHeaderChecksum / VerifyHeaderChecksum
// together, since most callers want both sides symmetric.
func WithHeaderChecksum(v bool) Option {
	return func(c *Config) {
		c.UseHeaderChecksum = v
		c.VerifyHeaderChecksum = v
	}
}

// WithMaxSize sets MaxSize. Zero means unlimited.
func WithMaxSize(n int) Option { return func(c *Config) { c.MaxSize = n } }

// WithSizeEstimate sets SizeEstimate.
func WithSizeEstimate(n int) Option { return func(c *Config) { c.SizeEstimate = n } }

// WithVerifyOrder toggles VerifyOrder.
func WithVerifyOrder(v bool) Option { return func(c *Config) { c.VerifyOrder = v } }

// WithRetryDelay sets the retry/wait policy used when the underlying
// transport returns ErrWouldBlock.
func WithRetryDelay(d time.Duration) Option { return func(c *Config) { c.RetryDelay = d } }

// WithBlock enables cooperative blocking (yield-and-retry) on ErrWouldBlock.
func WithBlock() Option { return func(c *Config) { c.RetryDelay = 0 } }

// WithNonblock forces non-blocking behavior (return ErrWouldBlock
// immediately). This is the default.
func WithNonblock() Option { return func(c *Config) { c.RetryDelay = -1 } }

// WithStats enables statistics collection using s.
func WithStats(s *Statistics) Option { return func(c *Config) { c.Stats = s } }

// build applies opts over DefaultConfig and returns the result.
func build(opts []Option) Config {
	c := DefaultConfig()
	for _, fn := range opts {
		fn(&c)
	}
	return c
}
