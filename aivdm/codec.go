package aivdm

import "strings"

// PeekMessageType decodes just the 6-bit message-type field from an armored
// AIVDM payload, letting a listener dispatch to the right decoder without
// committing to one message's field layout first.
func PeekMessageType(payload string) (int, error) {
	r, err := newBitReader(payload)
	if err != nil {
		return 0, err
	}
	if r.len() < 6 {
		return 0, ErrPayloadTooShort
	}
	return int(r.readUint(6)), nil
}

// bitWriter accumulates a big-endian (MSB-first) bit stream, matching the
// bit-packing ITU-R M.1371 uses for AIS binary payloads. One bool per bit
// keeps the field-packing code in msg1.go/msg5.go simple and exactly
// traceable to ITU-R M.1371's bit-offset tables; payload sizes here (168,
// 424 bits) are small enough that this costs nothing in practice.
type bitWriter struct {
	bits []bool
}

func (w *bitWriter) writeUint(v uint64, width int) {
	for i := width - 1; i >= 0; i-- {
		w.bits = append(w.bits, (v>>uint(i))&1 == 1)
	}
}

// writeInt writes v as a two's-complement signed value in width bits.
func (w *bitWriter) writeInt(v int64, width int) {
	mask := uint64(1)<<uint(width) - 1
	w.writeUint(uint64(v)&mask, width)
}

// writeAISString writes s as widthBits/6 6-bit characters from the AIS
// string alphabet: upper-cased, right-padded with '@' (value 0), with any
// character outside the 64-entry alphabet mapped to '@'.
func (w *bitWriter) writeAISString(s string, widthBits int) {
	maxChars := widthBits / 6
	s = strings.ToUpper(s)
	runes := []rune(s)
	for i := 0; i < maxChars; i++ {
		v := uint8(0) // '@'
		if i < len(runes) && runes[i] < 256 {
			c := byte(runes[i])
			if idx := charToSixBit[c]; idx >= 0 {
				v = uint8(idx)
			}
		}
		w.writeUint(uint64(v), 6)
	}
}

// armor groups the accumulated bits into 6-bit chunks (zero-padding the
// last chunk as needed) and maps each chunk to its ASCII armor byte. It
// returns the armored payload string and the count of zero fill bits added
// to the final chunk.
func (w *bitWriter) armor() (payload string, fillBits int) {
	n := len(w.bits)
	fillBits = (6 - n%6) % 6
	total := n + fillBits

	var sb strings.Builder
	sb.Grow(total / 6)
	for i := 0; i < total; i += 6 {
		var v uint8
		for j := 0; j < 6; j++ {
			v <<= 1
			if i+j < n && w.bits[i+j] {
				v |= 1
			}
		}
		sb.WriteByte(armorEncode(v))
	}
	return sb.String(), fillBits
}

// bitReader walks a big-endian bit stream decoded from an armored AIVDM
// payload.
type bitReader struct {
	bits []bool
	pos  int
}

// newBitReader decodes payload's 6-bit ASCII armor into a bitReader. It
// returns ErrInvalidArmorByte if any byte of payload is outside the valid
// armor alphabet, causing the fragment to be rejected.
func newBitReader(payload string) (*bitReader, error) {
	bits := make([]bool, 0, len(payload)*6)
	for i := 0; i < len(payload); i++ {
		v, ok := armorDecode(payload[i])
		if !ok {
			return nil, ErrInvalidArmorByte
		}
		for j := 5; j >= 0; j-- {
			bits = append(bits, (v>>uint(j))&1 == 1)
		}
	}
	return &bitReader{bits: bits}, nil
}

func (r *bitReader) len() int { return len(r.bits) }

func (r *bitReader) readUint(width int) uint64 {
	var v uint64
	for i := 0; i < width; i++ {
		v <<= 1
		if r.pos < len(r.bits) && r.bits[r.pos] {
			v |= 1
		}
		r.pos++
	}
	return v
}

// readInt reads width bits as a two's-complement signed value.
func (r *bitReader) readInt(width int) int64 {
	v := r.readUint(width)
	if width == 64 {
		return int64(v)
	}
	signBit := uint64(1) << uint(width-1)
	if v&signBit != 0 {
		return int64(v) - int64(1<<uint(width))
	}
	return int64(v)
}

// readAISString reads widthBits/6 six-bit characters and returns them
// translated through the AIS string alphabet, with trailing '@' padding
// removed and leading and trailing whitespace trimmed.
func (r *bitReader) readAISString(widthBits int) string {
	n := widthBits / 6
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		v := r.readUint(6)
		sb.WriteByte(sixBitAlphabet[v])
	}
	return strings.TrimSpace(strings.TrimRight(sb.String(), "@"))
}
