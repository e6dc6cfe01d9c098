package chanwire

import (
	"bytes"
	"testing"
)

func collectFrames(t *testing.T, enc *Encoder, payload []byte) []Frame {
	t.Helper()
	var frames []Frame
	err := enc.Encode(payload, func(hdr [HeaderSize]byte, body []byte) error {
		h, ok, perr := parseHeader(hdr[:])
		if perr != nil || !ok {
			t.Fatalf("emitted header did not parse: ok=%v err=%v", ok, perr)
		}
		cp := append([]byte(nil), body...)
		frames = append(frames, Frame{Header: h, Payload: cp})
		return nil
	})
	if err != nil {
		t.Fatalf("Encode: unexpected error: %v", err)
	}
	return frames
}

func TestEncodeZeroLengthPayloadEmitsOneFrame(t *testing.T) {
	frames := collectFrames(t, NewEncoder(), nil)
	if len(frames) != 1 {
		t.Fatalf("want exactly one frame for an empty payload, got %d", len(frames))
	}
	if frames[0].Header.MoreData {
		t.Fatalf("the only frame of an empty message must not set MORE_DATA")
	}
	if frames[0].Header.DataLen != 0 {
		t.Fatalf("want DataLen 0, got %d", frames[0].Header.DataLen)
	}
}

func TestEncodeSmallPayloadSingleFrame(t *testing.T) {
	payload := []byte("hello, chanwire")
	frames := collectFrames(t, NewEncoder(), payload)
	if len(frames) != 1 {
		t.Fatalf("want one frame, got %d", len(frames))
	}
	if frames[0].Header.MoreData {
		t.Fatalf("single-frame message must not set MORE_DATA")
	}
	if !bytes.Equal(frames[0].Payload, payload) {
		t.Fatalf("payload mismatch: got %q want %q", frames[0].Payload, payload)
	}
}

func TestEncodeFragmentsLargePayload(t *testing.T) {
	payload := make([]byte, FrameCap*2+17)
	for i := range payload {
		payload[i] = byte(i)
	}
	frames := collectFrames(t, NewEncoder(), payload)
	if len(frames) != 3 {
		t.Fatalf("want 3 frames, got %d", len(frames))
	}

	var reassembled []byte
	for i, f := range frames {
		wantMore := i != len(frames)-1
		if f.Header.MoreData != wantMore {
			t.Fatalf("frame %d: MoreData=%v, want %v", i, f.Header.MoreData, wantMore)
		}
		if f.Header.FrameNum != uint8(i) {
			t.Fatalf("frame %d: FrameNum=%d, want %d", i, f.Header.FrameNum, i)
		}
		if len(f.Payload) > FrameCap {
			t.Fatalf("frame %d: payload %d bytes exceeds FrameCap %d", i, len(f.Payload), FrameCap)
		}
		reassembled = append(reassembled, f.Payload...)
	}
	if !bytes.Equal(reassembled, payload) {
		t.Fatalf("reassembled payload does not match original")
	}
}

func TestEncodeSequenceNumbersWrapAcrossMessages(t *testing.T) {
	enc := NewEncoder()
	payload := make([]byte, FrameCap+1) // two frames per message

	var last uint8
	for msg := 0; msg < 40; msg++ {
		frames := collectFrames(t, enc, payload)
		if len(frames) != 2 {
			t.Fatalf("message %d: want 2 frames, got %d", msg, len(frames))
		}
		for _, f := range frames {
			if f.Header.FrameNum != last {
				t.Fatalf("message %d: FrameNum=%d, want %d", msg, f.Header.FrameNum, last)
			}
			last = (last + 1) & frameNumMask
		}
	}
}

func TestEncodeChecksumDisabled(t *testing.T) {
	enc := NewEncoder()
	enc.DisableHeaderChecksum()
	err := enc.Encode([]byte("x"), func(hdr [HeaderSize]byte, body []byte) error {
		if _, _, perr := parseHeaderWith(hdr[:], true); perr != ErrInvalidChecksum {
			t.Fatalf("want ErrInvalidChecksum when verifying an unchecksummed header, got %v", perr)
		}
		if _, ok, perr := parseHeaderWith(hdr[:], false); perr != nil || !ok {
			t.Fatalf("unchecksummed header should still parse with verification off: ok=%v err=%v", ok, perr)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
}
