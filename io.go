// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chanwire

import (
	"context"
	"io"
	"runtime"
	"sync"
	"time"

	"code.hybscloud.com/iox"
)

// These are re-exported so callers never need to import iox directly to
// recognize the core's control-flow signals.
var (
	// ErrWouldBlock means "no further progress without waiting". It is an
	// expected, non-failure control-flow signal for non-blocking I/O. Any
	// returned byte count still represents real progress.
	ErrWouldBlock = iox.ErrWouldBlock

	// ErrMore means "this completion is usable and more completions will
	// follow". The operation remains active; call again for the next chunk.
	ErrMore = iox.ErrMore
)

// Reader is the synchronous I/O trait the framed layer drives directly
// (§4.7). An io.Reader does not satisfy it directly; IntoRead adapts one.
type Reader interface {
	ReadSlice(p []byte) (int, error)
}

// Writer is the synchronous I/O trait the framed layer drives directly.
type Writer interface {
	WriteSlice(p []byte) (int, error)
	FlushOnce() error
}

// IntoRead adapts a standard io.Reader into a Reader.
func IntoRead(r io.Reader) Reader {
	if rr, ok := r.(Reader); ok {
		return rr
	}
	return readerAdapter{r}
}

type readerAdapter struct{ r io.Reader }

func (a readerAdapter) ReadSlice(p []byte) (int, error) { return a.r.Read(p) }

// IntoWrite adapts a standard io.Writer into a Writer. If w also implements
// Flush() error, it is used for FlushOnce; otherwise FlushOnce is a no-op,
// matching transports with no explicit flush concept.
func IntoWrite(w io.Writer) Writer {
	if ww, ok := w.(Writer); ok {
		return ww
	}
	return writerAdapter{w: w}
}

type flusher interface{ Flush() error }

type writerAdapter struct{ w io.Writer }

func (a writerAdapter) WriteSlice(p []byte) (int, error) { return a.w.Write(p) }

func (a writerAdapter) FlushOnce() error {
	if f, ok := a.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// retryPolicy captures how readOnce/writeOnce/flushLoop react to
// ErrWouldBlock.
type retryPolicy struct {
	delay time.Duration
}

// shouldRetry sleeps or yields according to the policy and reports whether
// the caller should retry the operation.
func (p retryPolicy) shouldRetry() bool {
	if p.delay < 0 {
		return false
	}
	if p.delay == 0 {
		runtime.Gosched()
		return true
	}
	time.Sleep(p.delay)
	return true
}

// readOnce calls r.ReadSlice, retrying on ErrWouldBlock per policy and
// guarding against readers that violate the io.Reader contract by
// returning (0, nil) on a non-empty buffer.
func readOnce(r Reader, p []byte, policy retryPolicy) (int, error) {
	for {
		n, err := r.ReadSlice(p)
		if len(p) != 0 && n == 0 && err == nil {
			return 0, io.ErrNoProgress
		}
		if n > 0 || err != ErrWouldBlock {
			return n, err
		}
		if !policy.shouldRetry() {
			return n, err
		}
	}
}

// writeOnce calls w.WriteSlice, retrying on ErrWouldBlock per policy and
// guarding against writers that violate the io.Writer contract.
func writeOnce(w Writer, p []byte, policy retryPolicy) (int, error) {
	for {
		n, err := w.WriteSlice(p)
		if len(p) != 0 && n == 0 && err == nil {
			return 0, io.ErrShortWrite
		}
		if n > 0 || err != ErrWouldBlock {
			return n, err
		}
		if !policy.shouldRetry() {
			return n, err
		}
	}
}

// writeAll drives writeOnce until all of p has been written or an error
// (including a propagated ErrWouldBlock, when policy is non-blocking)
// interrupts it. off lets the caller resume a partially-written buffer
// after a prior ErrWouldBlock without losing progress (§4.5 back-pressure).
func writeAll(w Writer, p []byte, off int, policy retryPolicy) (newOff int, err error) {
	for off < len(p) {
		n, werr := writeOnce(w, p[off:], policy)
		off += n
		if werr != nil {
			return off, werr
		}
		if n == 0 {
			return off, io.ErrNoProgress
		}
	}
	return off, nil
}

// flushLoop calls w.FlushOnce until it reports done, retrying on
// ErrWouldBlock per policy.
func flushLoop(w Writer, policy retryPolicy) error {
	for {
		err := w.FlushOnce()
		if err != ErrWouldBlock {
			return err
		}
		if !policy.shouldRetry() {
			return err
		}
	}
}

// AsyncReader is the cooperative-async counterpart to Reader (§4.7, §9):
// its method is poll-based, taking an explicit context instead of blocking,
// and returns ErrWouldBlock (the "Pending" case) when no bytes are
// available yet. Encoder/decoder state is never touched by a pending poll,
// so retrying is always safe, provided the caller passes the same
// destination slice on every poll of one read until it completes: the
// background goroutine started by the bridge implementation below reads
// into whatever slice it was given when the read began.
type AsyncReader interface {
	PollReadSlice(ctx context.Context, p []byte) (int, error)
}

// AsyncWriter is the cooperative-async counterpart to Writer. The
// same-buffer-until-complete contract documented on AsyncReader applies to
// PollWriteSlice too.
type AsyncWriter interface {
	PollWriteSlice(ctx context.Context, p []byte) (int, error)
	PollFlushOnce(ctx context.Context) error
}

// IntoAsyncReader adapts a blocking io.Reader into an AsyncReader by
// running its Read calls on a background goroutine and polling a channel
// for the result. This is the realistic Go shape of the "newtype bridge"
// design note in §9: a blocking ecosystem type cannot be made to return
// control without a helper goroutine, so one is spawned lazily, at most
// one in flight at a time, and reused across polls of the same read.
func IntoAsyncReader(r io.Reader) AsyncReader {
	if ar, ok := r.(AsyncReader); ok {
		return ar
	}
	return &asyncReaderBridge{r: r}
}

type readResult struct {
	n   int
	err error
}

type asyncReaderBridge struct {
	r       io.Reader
	mu      sync.Mutex
	pending bool
	resCh   chan readResult
}

func (b *asyncReaderBridge) PollReadSlice(ctx context.Context, p []byte) (int, error) {
	b.mu.Lock()
	if !b.pending {
		b.pending = true
		b.resCh = make(chan readResult, 1)
		go func(buf []byte, ch chan<- readResult) {
			n, err := b.r.Read(buf)
			ch <- readResult{n, err}
		}(p, b.resCh)
	}
	ch := b.resCh
	b.mu.Unlock()

	select {
	case res := <-ch:
		b.mu.Lock()
		b.pending = false
		b.mu.Unlock()
		return res.n, res.err
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
		return 0, ErrWouldBlock
	}
}

// IntoAsyncWriter adapts a blocking io.Writer into an AsyncWriter using the
// same background-goroutine bridge as IntoAsyncReader.
func IntoAsyncWriter(w io.Writer) AsyncWriter {
	if aw, ok := w.(AsyncWriter); ok {
		return aw
	}
	return &asyncWriterBridge{w: w}
}

type writeResult struct {
	n   int
	err error
}

type asyncWriterBridge struct {
	w       io.Writer
	mu      sync.Mutex
	pending bool
	resCh   chan writeResult
}

func (b *asyncWriterBridge) PollWriteSlice(ctx context.Context, p []byte) (int, error) {
	b.mu.Lock()
	if !b.pending {
		b.pending = true
		b.resCh = make(chan writeResult, 1)
		go func(buf []byte, ch chan<- writeResult) {
			n, err := b.w.Write(buf)
			ch <- writeResult{n, err}
		}(p, b.resCh)
	}
	ch := b.resCh
	b.mu.Unlock()

	select {
	case res := <-ch:
		b.mu.Lock()
		b.pending = false
		b.mu.Unlock()
		return res.n, res.err
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
		return 0, ErrWouldBlock
	}
}

func (b *asyncWriterBridge) PollFlushOnce(ctx context.Context) error {
	if f, ok := b.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}
