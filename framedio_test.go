package chanwire

import (
	"bytes"
	"io"
	"testing"
)

func TestFramedWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()

	fw := NewFramedWrite(IntoWrite(&buf), cfg)
	defer fw.Close()

	messages := [][]byte{
		[]byte(""),
		[]byte("short"),
		make([]byte, FrameCap+42),
	}
	for i := range messages[2] {
		messages[2][i] = byte(i)
	}

	for _, m := range messages {
		if err := fw.SendFrame(m); err != nil {
			t.Fatalf("SendFrame: %v", err)
		}
	}

	fr := NewFramedRead(IntoRead(bytes.NewReader(buf.Bytes())), cfg)
	defer fr.Close()

	for i, want := range messages {
		got, err := fr.NextFrame()
		if err != nil {
			t.Fatalf("message %d: NextFrame: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("message %d: mismatch: got %d bytes want %d bytes", i, len(got), len(want))
		}
	}
}

func TestFramedWriteNotCoalesced(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.CoalesceWrites = false

	fw := NewFramedWrite(IntoWrite(&buf), cfg)
	defer fw.Close()
	if err := fw.SendFrame([]byte("payload")); err != nil {
		t.Fatalf("SendFrame: %v", err)
	}

	fr := NewFramedRead(IntoRead(bytes.NewReader(buf.Bytes())), cfg)
	defer fr.Close()
	got, err := fr.NextFrame()
	if err != nil {
		t.Fatalf("NextFrame: %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("got %q", got)
	}
}

func TestFramedReadEOFMidMessageIsUnexpected(t *testing.T) {
	wire := encodeAll(t, []byte("hello"))
	truncated := wire[:len(wire)-1]

	fr := NewFramedRead(IntoRead(bytes.NewReader(truncated)), DefaultConfig())
	defer fr.Close()
	_, err := fr.NextFrame()
	if err != io.ErrUnexpectedEOF {
		t.Fatalf("want io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestFramedReadEOFAtFrameBoundaryIsUnexpected(t *testing.T) {
	// Two frames: one full FrameCap-sized frame followed by a final one-byte
	// frame. Truncate the wire exactly after the first, complete frame, so
	// the dropped bytes are an entire missing frame rather than a partial
	// one. The decoder drains its input buffer to empty processing the
	// first frame, so a naive "buffer empty" EOF check would misreport this
	// as a clean end of stream.
	wire := encodeAll(t, make([]byte, FrameCap+1))
	truncated := wire[:HeaderSize+FrameCap]

	fr := NewFramedRead(IntoRead(bytes.NewReader(truncated)), DefaultConfig())
	defer fr.Close()
	_, err := fr.NextFrame()
	if err != io.ErrUnexpectedEOF {
		t.Fatalf("want io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestFramedReadCleanEOFBetweenMessages(t *testing.T) {
	fr := NewFramedRead(IntoRead(bytes.NewReader(nil)), DefaultConfig())
	defer fr.Close()
	_, err := fr.NextFrame()
	if err != io.EOF {
		t.Fatalf("want io.EOF, got %v", err)
	}
}
