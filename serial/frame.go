// Package serial carries encoded vectors over a byte stream, usually a
// serial port opened with Open.
//
// Each frame is
//
//	STX | length (uint16, big-endian) | payload | CRC16 (big-endian)
//
// where payload is vector.Vector.Bytes() and the CRC covers the length and
// payload bytes.
package serial

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/CK6170/vectorkit/vector"
)

// STX starts every frame.
const STX byte = 0x02

// MaxPayload is the largest payload a frame can carry.
const MaxPayload = 0xFFFF

var (
	// ErrFrameTooLarge is returned when an encoded vector exceeds MaxPayload.
	ErrFrameTooLarge = errors.New("serial: frame payload too large")
	// ErrChecksum is returned when a frame's CRC does not match.
	ErrChecksum = errors.New("serial: wrong checksum")
)

// crc16 is the line checksum: feedback 0x8810, with the
// carry rotated back into bit 0.
func crc16(data []byte) uint16 {
	cs := uint16(0)
	for _, b := range data {
		cs ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			carry := cs & 0x8000
			if carry != 0 {
				cs ^= 0x8810
			}
			cs = (cs << 1) + (carry >> 15)
		}
	}
	return cs
}

// EncodeFrame wraps v in a frame.
func EncodeFrame(v *vector.Vector) ([]byte, error) {
	payload := v.Bytes()
	if len(payload) > MaxPayload {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}
	out := make([]byte, 0, 1+2+len(payload)+2)
	out = append(out, STX)
	out = binary.BigEndian.AppendUint16(out, uint16(len(payload)))
	out = append(out, payload...)
	out = binary.BigEndian.AppendUint16(out, crc16(out[1:]))
	return out, nil
}

// WriteFrame writes v to w as a single frame.
func WriteFrame(w io.Writer, v *vector.Vector) error {
	frame, err := EncodeFrame(v)
	if err != nil {
		return err
	}
	_, err = w.Write(frame)
	return err
}

// ReadFrame reads the next frame from r and decodes its vector. Bytes before
// the next STX are skipped, so line noise between frames is tolerated.
func ReadFrame(r io.Reader) (*vector.Vector, error) {
	var one [1]byte
	for {
		if _, err := io.ReadFull(r, one[:]); err != nil {
			return nil, err
		}
		if one[0] == STX {
			break
		}
	}

	var hdr [2]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("serial: reading frame length: %w", err)
	}
	n := int(binary.BigEndian.Uint16(hdr[:]))

	body := make([]byte, n+2)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("serial: reading frame body: %w", err)
	}
	payload := body[:n]
	got := binary.BigEndian.Uint16(body[n:])
	want := crc16(append(hdr[:], payload...))
	if got != want {
		return nil, fmt.Errorf("%w: got %04X, want %04X", ErrChecksum, got, want)
	}
	return vector.FromBytes(payload)
}
