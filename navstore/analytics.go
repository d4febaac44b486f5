package navstore

import (
	"math"

	nmeasim "github.com/mmcho/nmea-ecdis-sim"
)

// Vector is a kinematic fix: position, ground speed and course, used as
// both own-ship and target input to CPA/TCPA analytics.
type Vector struct {
	Position nmeasim.Position
	SOGKnots float64
	COGDeg   float64
}

// CPAResult is the closest-point-of-approach computation's output.
type CPAResult struct {
	RangeNM    float64
	BearingDeg float64

	// CPANM is the predicted closest-approach range in nautical miles.
	CPANM float64
	// TCPAMin is minutes to closest approach; +Inf if the relative speed
	// is negligible (never closing), 0 if closest approach is already past.
	TCPAMin float64
}

// relativeSpeedFloorKn is the |relative velocity| below which own-ship and
// target are treated as not closing.
const relativeSpeedFloorKn = 0.1

// ComputeCPA derives range, bearing, CPA and TCPA between own-ship and a
// target vector, using a flat-earth approximation for velocity components
// over the short ranges AIS targets are tracked at.
func ComputeCPA(own, target Vector) CPAResult {
	rng := nmeasim.Distance(own.Position, target.Position)
	brg := nmeasim.Bearing(own.Position, target.Position)

	ownVx, ownVy := velocityComponents(own.SOGKnots, own.COGDeg)
	tgtVx, tgtVy := velocityComponents(target.SOGKnots, target.COGDeg)
	relVx, relVy := tgtVx-ownVx, tgtVy-ownVy
	relSpeed := math.Hypot(relVx, relVy)

	if relSpeed < relativeSpeedFloorKn {
		return CPAResult{RangeNM: rng, BearingDeg: brg, CPANM: rng, TCPAMin: math.Inf(1)}
	}

	brgRad := brg * math.Pi / 180.0
	px := rng * math.Sin(brgRad)
	py := rng * math.Cos(brgRad)

	tCPAHours := -(relVx*px + relVy*py) / (relSpeed * relSpeed)
	if tCPAHours < 0 {
		return CPAResult{RangeNM: rng, BearingDeg: brg, CPANM: rng, TCPAMin: 0}
	}

	cpaX := px + relVx*tCPAHours
	cpaY := py + relVy*tCPAHours
	cpa := math.Hypot(cpaX, cpaY)

	return CPAResult{RangeNM: rng, BearingDeg: brg, CPANM: cpa, TCPAMin: tCPAHours * 60.0}
}

func velocityComponents(speedKn, courseDeg float64) (vx, vy float64) {
	rad := courseDeg * math.Pi / 180.0
	return speedKn * math.Sin(rad), speedKn * math.Cos(rad)
}
