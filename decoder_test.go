package chanwire

import (
	"bytes"
	"testing"
)

// encodeAll serializes payload into a byte stream using a fresh Encoder,
// for feeding straight into a Decoder under test.
func encodeAll(t *testing.T, payload []byte) []byte {
	t.Helper()
	var out []byte
	enc := NewEncoder()
	if err := enc.Encode(payload, func(hdr [HeaderSize]byte, body []byte) error {
		out = append(out, hdr[:]...)
		out = append(out, body...)
		return nil
	}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return out
}

func TestDecodeRoundTripSingleAndMultiFrame(t *testing.T) {
	payloads := [][]byte{
		nil,
		[]byte("x"),
		[]byte("hello, chanwire"),
		make([]byte, FrameCap),
		make([]byte, FrameCap+1),
		make([]byte, FrameCap*3+5),
	}
	for i, want := range payloads {
		wire := encodeAll(t, want)
		d := NewDecoder(DefaultConfig())
		buf := append([]byte(nil), wire...)
		got, _, ok, err := d.Decode(&buf)
		if err != nil {
			t.Fatalf("case %d: Decode: %v", i, err)
		}
		if !ok {
			t.Fatalf("case %d: Decode: ok=false with a complete wire buffer", i)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("case %d: payload mismatch: got %d bytes want %d bytes", i, len(got), len(want))
		}
		if len(buf) != 0 {
			t.Fatalf("case %d: %d trailing bytes left undrained", i, len(buf))
		}
	}
}

func TestDecodeIncrementalByteAtATime(t *testing.T) {
	want := make([]byte, FrameCap+100)
	for i := range want {
		want[i] = byte(i * 7)
	}
	wire := encodeAll(t, want)

	d := NewDecoder(DefaultConfig())
	var buf []byte
	var got []byte
	for _, b := range wire {
		buf = append(buf, b)
		payload, _, ok, err := d.Decode(&buf)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if ok {
			got = payload
		}
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("incremental decode mismatch: got %d bytes want %d bytes", len(got), len(want))
	}
}

func TestDecodeNotReadyOnShortBuffer(t *testing.T) {
	d := NewDecoder(DefaultConfig())
	buf := []byte{0x01, 0x02, 0x03}
	_, _, ok, err := d.Decode(&buf)
	if ok || err != nil {
		t.Fatalf("want (false, nil) on a short buffer, got (%v, %v)", ok, err)
	}
	if len(buf) != 3 {
		t.Fatalf("a not-ready decode must not consume bytes, len=%d", len(buf))
	}
}

func TestDecodeRejectsOutOfOrder(t *testing.T) {
	payload := make([]byte, FrameCap+1) // two frames
	wire := encodeAll(t, payload)

	// Swap the two frames' positions so the second arrives first.
	firstLen := HeaderSize + FrameCap
	swapped := append(append([]byte(nil), wire[firstLen:]...), wire[:firstLen]...)

	d := NewDecoder(DefaultConfig())
	buf := append([]byte(nil), swapped...)
	_, _, _, err := d.Decode(&buf)
	var decErr *DecodeError
	if err == nil {
		t.Fatalf("want an error for an out-of-order frame, got nil")
	}
	if !asDecodeError(err, &decErr) || decErr.Unwrap() != ErrOutOfOrder {
		t.Fatalf("want ErrOutOfOrder, got %v", err)
	}
}

func TestDecodeVerifyOrderDisabledAllowsGap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VerifyOrder = false
	d := NewDecoder(cfg)

	h := Header{FrameNum: 9, DataLen: 1, MoreData: false}
	wire := append(h.wireBytes(), 'a')
	buf := wire
	got, _, ok, err := d.Decode(&buf)
	if err != nil || !ok {
		t.Fatalf("Decode with VerifyOrder=false: ok=%v err=%v", ok, err)
	}
	if string(got) != "a" {
		t.Fatalf("payload mismatch: %q", got)
	}
}

func TestDecodeMaxSizeEnforced(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSize = 4
	d := NewDecoder(cfg)

	wire := encodeAll(t, []byte("hello"))
	buf := append([]byte(nil), wire...)
	_, _, _, err := d.Decode(&buf)
	var decErr *DecodeError
	if err == nil || !asDecodeError(err, &decErr) || decErr.Unwrap() != ErrTooLarge {
		t.Fatalf("want ErrTooLarge, got %v", err)
	}
}

func TestDecodeMidMessageTracksFrameBoundaries(t *testing.T) {
	payload := make([]byte, FrameCap+1) // two frames: one full FrameCap frame, then one more
	wire := encodeAll(t, payload)
	firstLen := HeaderSize + FrameCap

	d := NewDecoder(DefaultConfig())
	if d.MidMessage() {
		t.Fatalf("MidMessage() before any bytes were decoded, want false")
	}

	buf := append([]byte(nil), wire[:firstLen]...)
	_, _, ok, err := d.Decode(&buf)
	if err != nil || ok {
		t.Fatalf("Decode of first frame only: ok=%v err=%v, want (false, nil)", ok, err)
	}
	if len(buf) != 0 {
		t.Fatalf("first frame left %d undrained bytes, want 0", len(buf))
	}
	if !d.MidMessage() {
		t.Fatalf("MidMessage() after a complete non-final frame, want true")
	}

	buf = append(buf, wire[firstLen:]...)
	_, _, ok, err = d.Decode(&buf)
	if err != nil || !ok {
		t.Fatalf("Decode of remaining frame: ok=%v err=%v, want (true, nil)", ok, err)
	}
	if d.MidMessage() {
		t.Fatalf("MidMessage() after the message completed, want false")
	}
}

func TestDecodeChecksumVerificationRejectsCorruption(t *testing.T) {
	d := NewDecoder(DefaultConfig())
	wire := encodeAll(t, []byte("hello"))
	wire[5] ^= 0xff // corrupt a data_len byte of the header

	buf := append([]byte(nil), wire...)
	_, _, _, err := d.Decode(&buf)
	var decErr *DecodeError
	if err == nil || !asDecodeError(err, &decErr) || decErr.Unwrap() != ErrInvalidChecksum {
		t.Fatalf("want ErrInvalidChecksum, got %v", err)
	}
}

// asDecodeError is a small errors.As shim kept local to this test file to
// avoid importing the errors package just for one assertion helper.
func asDecodeError(err error, target **DecodeError) bool {
	if de, ok := err.(*DecodeError); ok {
		*target = de
		return true
	}
	return false
}

// wireBytes is a test-only helper building the wire bytes for a single
// Header with its payload length implied by the caller's own append.
func (h Header) wireBytes() []byte {
	b := h.encode()
	return b[:]
}
