package navstore

// shipTypeLabels and navStatusLabels are the human-readable lookup tables
// a boundary consumer may want alongside the raw AIS codes the receiver
// always decodes regardless of whether a label exists.
var shipTypeLabels = map[uint8]string{
	0:  "Not Available",
	37: "Pleasure Craft",
	60: "Passenger Ship",
	70: "Cargo Ship",
	80: "Tanker",
}

var navStatusLabels = map[uint8]string{
	0:  "Under way",
	1:  "At anchor",
	5:  "Moored",
	7:  "R. in maneuver",
	8:  "Constr. by draught",
	15: "Not defined",
}

// DescribeShipType returns a human label for an AIS ship-type code, or
// "Unknown" for a code with no entry.
func DescribeShipType(code uint8) string {
	if label, ok := shipTypeLabels[code]; ok {
		return label
	}
	return "Unknown"
}

// DescribeNavStatus returns a human label for an AIS navigational-status
// code, or "Not defined" for a code with no entry.
func DescribeNavStatus(code uint8) string {
	if label, ok := navStatusLabels[code]; ok {
		return label
	}
	return "Not defined"
}
