// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chanwire

import "encoding/binary"

// HeaderSize is the fixed size, in bytes, of every frame header.
const HeaderSize = 8

// protocolVersion is the constant value every header's version field must
// carry. Any other value is a version mismatch.
const protocolVersion = 0x42

// Bit positions of the packed 64-bit little-endian header word. See §3.1:
// version(0-7) | reserved_flags(8-9) | frame_num(10-15) | checksum(16-31) | data_len(32-63).
const (
	versionShift  = 0
	flagsShift    = 8
	frameNumShift = 10
	frameNumMask  = 0x3f
	dataLenShift  = 32
)

// moreDataFlag is the bit, within the 2-bit reserved_flags field, that this
// implementation assigns to the MORE_DATA continuation signal. The exact bit
// position is a free choice as long as both endpoints agree (see DESIGN.md);
// this package always uses bit 8 of the packed word (the low bit of
// reserved_flags).
const moreDataFlag = 1 << flagsShift

// Header is the parsed form of a frame's 8-byte header.
type Header struct {
	// FrameNum is the 6-bit sequence number of this frame, mod 64.
	FrameNum uint8
	// DataLen is the number of payload bytes following this header.
	DataLen uint32
	// MoreData is set on every non-final frame of a multi-frame message.
	MoreData bool
}

// encode packs h into its 8-byte wire representation, computing and
// stamping the header checksum.
func (h Header) encode() [HeaderSize]byte {
	return h.encodeWith(true)
}

// encodeWith packs h into its 8-byte wire representation. When
// withChecksum is false the checksum field is left at zero instead of
// being computed, matching Config.UseHeaderChecksum=false (§6.2).
func (h Header) encodeWith(withChecksum bool) [HeaderSize]byte {
	x := uint64(protocolVersion) << versionShift
	if h.MoreData {
		x |= uint64(moreDataFlag)
	}
	x |= uint64(h.FrameNum&frameNumMask) << frameNumShift
	x |= uint64(h.DataLen) << dataLenShift

	var buf [HeaderSize]byte
	binary.LittleEndian.PutUint64(buf[:], x)

	if withChecksum {
		cs := internetChecksum(buf[:])
		binary.LittleEndian.PutUint16(buf[2:4], cs)
	}

	return buf
}

// parseHeader parses a header from the first HeaderSize bytes of b.
//
// It returns ok == false (with err == nil) when b is shorter than
// HeaderSize, signaling the caller to wait for more bytes. A non-nil err is
// always fatal: ErrVersionMismatch or ErrInvalidChecksum.
func parseHeader(b []byte) (h Header, ok bool, err error) {
	return parseHeaderWith(b, true)
}

// parseHeaderWith is parseHeader with the checksum check made optional,
// for Config.VerifyHeaderChecksum=false (§6.2).
func parseHeaderWith(b []byte, verifyChecksum bool) (h Header, ok bool, err error) {
	if len(b) < HeaderSize {
		return Header{}, false, nil
	}
	raw := b[:HeaderSize]

	x := binary.LittleEndian.Uint64(raw)
	version := uint8(x >> versionShift)
	if version != protocolVersion {
		return Header{}, false, ErrVersionMismatch
	}
	if verifyChecksum && internetChecksum(raw) != 0 {
		return Header{}, false, ErrInvalidChecksum
	}

	flags := uint8((x >> flagsShift) & 0x3)
	frameNum := uint8((x >> frameNumShift) & frameNumMask)
	dataLen := uint32(x >> dataLenShift)

	return Header{
		FrameNum: frameNum,
		DataLen:  dataLen,
		MoreData: flags&(moreDataFlag>>flagsShift) != 0,
	}, true, nil
}

// internetChecksum computes the 16-bit one's-complement internet checksum
// over data, treated as a sequence of little-endian 16-bit words. data must
// have even length; HeaderSize (8) always satisfies this so callers never
// need to pad.
//
// A header whose checksum field already holds the correct stamped value
// satisfies internetChecksum(rawHeaderBytes) == 0, because the stored value
// is precisely the one's complement of the sum of the other words.
func internetChecksum(data []byte) uint16 {
	var sum uint32
	for i := 0; i+1 < len(data); i += 2 {
		word := uint16(data[i]) | uint16(data[i+1])<<8
		sum += uint32(word)
	}
	return ^foldUint32ToUint16(sum)
}

func foldUint32ToUint16(x uint32) uint16 {
	for x>>16 != 0 {
		x = (x >> 16) + (x & 0xffff)
	}
	return uint16(x)
}
