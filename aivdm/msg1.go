package aivdm

import nmeasim "github.com/mmcho/nmea-ecdis-sim"

// Message1 is an AIS Class A position report (Message 1), a 168-bit binary
// payload. ROT is always encoded as 0 ("not used"); it is decoded but not
// exposed since nothing in this system emits a non-zero value.
type Message1 struct {
	Identity uint32 // 9-decimal-digit MMSI

	NavStatus uint8 // 0 under-way, 1 at-anchor, 5 moored, ...

	SOGKnots     float64
	SOGAvailable bool // false when the wire sentinel 1023 (102.3 kn) was seen

	PositionAccuracy bool
	Position         nmeasim.Position

	COGDeg       float64
	COGAvailable bool // false when the wire sentinel 3600 (360.0 deg) was seen

	HeadingDeg   int
	HeadingAvail bool // false when the wire sentinel 511 was seen
	TimestampSec uint8
}

// EncodeMessage1 packs m into its 168-bit AIVDM payload and armors it. The
// returned fill count is always 0 since 168 is a multiple of 6.
func EncodeMessage1(m Message1) (payload string, fillBits int) {
	w := &bitWriter{}
	w.writeUint(1, 6)  // type
	w.writeUint(0, 2)  // repeat
	w.writeUint(uint64(m.Identity), 30)
	w.writeUint(uint64(m.NavStatus), 4)
	w.writeUint(0, 8) // ROT, not used

	sog := clampRound(m.SOGKnots*10, 0, 1022)
	w.writeUint(uint64(sog), 10)

	if m.PositionAccuracy {
		w.writeUint(1, 1)
	} else {
		w.writeUint(0, 1)
	}

	w.writeInt(int64(round(m.Position.Lon*60*10000)), 28)
	w.writeInt(int64(round(m.Position.Lat*60*10000)), 27)

	cog := clampRound(m.COGDeg*10, 0, 3599)
	w.writeUint(uint64(cog), 12)

	hdg := clampRound(float64(m.HeadingDeg), 0, 359)
	w.writeUint(uint64(hdg), 9)

	w.writeUint(uint64(m.TimestampSec), 6)
	w.writeUint(0, 2) // maneuver
	w.writeUint(0, 3) // spare
	w.writeUint(0, 1) // RAIM
	w.writeUint(0, 19) // radio

	return w.armor()
}

// DecodeMessage1 unpacks an armored 168-bit Message 1 payload. It returns
// ErrInvalidArmorByte if payload contains a character outside the 6-bit
// armor alphabet, and ErrPayloadTooShort if fewer than 168 bits are present.
func DecodeMessage1(payload string) (Message1, error) {
	r, err := newBitReader(payload)
	if err != nil {
		return Message1{}, err
	}
	if r.len() < 168 {
		return Message1{}, ErrPayloadTooShort
	}

	r.readUint(6) // type
	r.readUint(2) // repeat
	m := Message1{}
	m.Identity = uint32(r.readUint(30))
	m.NavStatus = uint8(r.readUint(4))
	r.readUint(8) // ROT

	sogRaw := r.readUint(10)
	m.SOGAvailable = sogRaw != 1023
	m.SOGKnots = float64(sogRaw) / 10.0

	m.PositionAccuracy = r.readUint(1) == 1

	lonRaw := r.readInt(28)
	m.Position.Lon = float64(lonRaw) / 600000.0
	latRaw := r.readInt(27)
	m.Position.Lat = float64(latRaw) / 600000.0

	cogRaw := r.readUint(12)
	m.COGAvailable = cogRaw != 3600
	m.COGDeg = float64(cogRaw) / 10.0

	hdgRaw := r.readUint(9)
	m.HeadingAvail = hdgRaw != 511
	m.HeadingDeg = int(hdgRaw)

	m.TimestampSec = uint8(r.readUint(6))
	// maneuver, spare, RAIM, radio are not exposed; nothing in this system
	// reads them.
	return m, nil
}

func round(v float64) float64 {
	if v >= 0 {
		return float64(int64(v + 0.5))
	}
	return float64(int64(v - 0.5))
}

func clampRound(v, lo, hi float64) float64 {
	v = round(v)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
