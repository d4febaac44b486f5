package aivdm

// ETA is a voyage estimated-time-of-arrival, UTC, month/day fields only (no
// year — this mirrors the AIS wire format itself).
type ETA struct {
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
}

// Message5 is an AIS static and voyage data report (Message 5), a 424-bit
// binary payload. AIS version, IMO number, EPFD type and DTE are always
// encoded as 0.
type Message5 struct {
	Identity uint32

	CallSign string // <= 7 chars
	ShipName string // <= 20 chars
	ShipType uint8

	DimA, DimB uint16 // metres, 9-bit fields
	DimC, DimD uint8  // metres, 6-bit fields

	ETA *ETA // nil encodes as "not available" (month 0, day 0, hour 24, minute 60)

	DraughtM    float64 // metres
	Destination string  // <= 20 chars
}

const msg5TotalBits = 424

// fragmentSplitChars is the 56-character boundary the producer splits the
// 71-character armored Message 5 payload at.
const fragmentSplitChars = 56

// EncodeMessage5 packs m into its 424-bit payload, armors it, and splits the
// 71-character result into the two fragments an AIS producer transmits
// (!AIVDM,2,1,... and !AIVDM,2,2,...).
func EncodeMessage5(m Message5) (part1, part2 string) {
	w := &bitWriter{}
	w.writeUint(5, 6) // type
	w.writeUint(0, 2) // repeat
	w.writeUint(uint64(m.Identity), 30)
	w.writeUint(0, 2)  // AIS version
	w.writeUint(0, 30) // IMO number

	w.writeAISString(m.CallSign, 42)
	w.writeAISString(m.ShipName, 120)

	w.writeUint(uint64(m.ShipType), 8)
	w.writeUint(uint64(m.DimA), 9)
	w.writeUint(uint64(m.DimB), 9)
	w.writeUint(uint64(m.DimC), 6)
	w.writeUint(uint64(m.DimD), 6)

	w.writeUint(0, 4) // EPFD type

	if m.ETA != nil {
		w.writeUint(uint64(m.ETA.Month), 4)
		w.writeUint(uint64(m.ETA.Day), 5)
		w.writeUint(uint64(m.ETA.Hour), 5)
		w.writeUint(uint64(m.ETA.Minute), 6)
	} else {
		w.writeUint(0, 4)
		w.writeUint(0, 5)
		w.writeUint(24, 5)
		w.writeUint(60, 6)
	}

	w.writeUint(uint64(clampRound(m.DraughtM*10, 0, 255)), 8)
	w.writeAISString(m.Destination, 120)

	w.writeUint(0, 1) // DTE
	w.writeUint(0, 1) // spare

	payload, _ := w.armor()
	if len(payload) <= fragmentSplitChars {
		return payload, ""
	}
	return payload[:fragmentSplitChars], payload[fragmentSplitChars:]
}

// DecodeMessage5 unpacks an armored, fully-reassembled 424-bit Message 5
// payload (both fragments concatenated). It returns ErrPayloadTooShort if
// fewer than 424 bits are present.
func DecodeMessage5(payload string) (Message5, error) {
	r, err := newBitReader(payload)
	if err != nil {
		return Message5{}, err
	}
	if r.len() < msg5TotalBits {
		return Message5{}, ErrPayloadTooShort
	}

	r.readUint(6) // type
	r.readUint(2) // repeat
	m := Message5{}
	m.Identity = uint32(r.readUint(30))
	r.readUint(2)  // AIS version
	r.readUint(30) // IMO number

	m.CallSign = r.readAISString(42)
	m.ShipName = r.readAISString(120)

	m.ShipType = uint8(r.readUint(8))
	m.DimA = uint16(r.readUint(9))
	m.DimB = uint16(r.readUint(9))
	m.DimC = uint8(r.readUint(6))
	m.DimD = uint8(r.readUint(6))

	r.readUint(4) // EPFD type

	month := uint8(r.readUint(4))
	day := uint8(r.readUint(5))
	hour := uint8(r.readUint(5))
	minute := uint8(r.readUint(6))
	if month > 0 && day > 0 && hour < 24 && minute < 60 {
		m.ETA = &ETA{Month: month, Day: day, Hour: hour, Minute: minute}
	}

	m.DraughtM = float64(r.readUint(8)) / 10.0
	m.Destination = r.readAISString(120)

	// DTE, spare: not exposed.
	return m, nil
}
