package producer

import (
	"math"
	"math/rand"

	"github.com/mmcho/nmea-ecdis-sim/aivdm"
)

// Identity is an AIS producer's static vessel data, sent inside Message 5
// every 30 ticks (NavStatus goes into Message 1 instead).
type Identity struct {
	MMSI     uint32
	CallSign string
	ShipName string
	ShipType uint8

	DimA, DimB uint16
	DimC, DimD uint8

	DraughtM    float64
	Destination string
	ETA         *aivdm.ETA

	// NavStatus is the code reported while Cruising and while Holding at a
	// single-waypoint route's start; the producer switches to nav_status 5
	// (Moored) once Holding is entered by arriving at the final waypoint,
	// or on externally signalled stop.
	NavStatus uint8
}

// NewIdentity derives the dimensional quadruple (a,b,c,d) from overall
// length and beam: a=ceil(L/2), b=L-a, c=ceil(B/2), d=B-c.
func NewIdentity(mmsi uint32, shipName, callSign string, shipType uint8, lengthM, beamM, draughtM float64, destination string, eta *aivdm.ETA, navStatus uint8) Identity {
	a := math.Ceil(lengthM / 2)
	b := lengthM - a
	c := math.Ceil(beamM / 2)
	d := beamM - c

	return Identity{
		MMSI:        mmsi,
		ShipName:    shipName,
		CallSign:    callSign,
		ShipType:    shipType,
		DimA:        uint16(a),
		DimB:        uint16(b),
		DimC:        uint8(c),
		DimD:        uint8(d),
		DraughtM:    draughtM,
		Destination: destination,
		ETA:         eta,
		NavStatus:   navStatus,
	}
}

// countryMIDs is the Maritime Identification Digits table used to mint
// demo MMSIs, grounded on the original's generate_random_mmsi table.
var countryMIDs = map[string][]string{
	"Korea":  {"440", "441"},
	"Japan":  {"431", "432"},
	"USA":    {"338", "366", "367", "368", "369"},
	"China":  {"412", "413", "414"},
	"Random": {"999"},
}

// RandomIdentity mints a random 9-digit MMSI for the given country, for
// demo or test fixtures that do not hand-supply an identity. Unknown
// country names fall back to the "Random" MID.
func RandomIdentity(country string) uint32 {
	mids, ok := countryMIDs[country]
	if !ok {
		mids = countryMIDs["Random"]
	}
	mid := mids[rand.Intn(len(mids))]

	suffix := rand.Intn(1000000)
	mmsi := 0
	for _, c := range mid {
		mmsi = mmsi*10 + int(c-'0')
	}
	return uint32(mmsi)*1000000 + uint32(suffix)
}
