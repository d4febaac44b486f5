// Package motion implements the motion-and-inertia simulation engine:
// per-tick speed ramp, heading slew, arrival detection, dynamic braking
// and holding-mode behavior for one vessel following a waypoint route.
package motion

import (
	"errors"
	"math"

	nmeasim "github.com/mmcho/nmea-ecdis-sim"
)

// ErrNoWaypoints is returned by NewEngine when given an empty route.
var ErrNoWaypoints = errors.New("motion: route must have at least one waypoint")

// Mode is the vessel's current motion mode.
type Mode int

const (
	// Cruising means the engine is actively navigating toward TargetIdx.
	Cruising Mode = iota
	// Holding means the vessel is stationary but still reporting identity,
	// position and a non-under-way nav status.
	Holding
	// Stopped is terminal: the engine no longer advances and the owning
	// producer closes its transport.
	Stopped
)

// Params are the motion engine's tunable dynamics. Zero-value Params from
// a struct literal are invalid; use NewParams or DefaultParams.
type Params struct {
	MaxSpeedKn  float64
	TurnSpeedKn float64

	AccelerationKnPerSec float64
	DecelerationKnPerSec float64
	BrakingKnPerSec      float64
	TurnRateDegPerSec    float64
}

// DefaultParams returns default dynamics for a vessel whose maximum speed
// is maxSpeedKn: turn_speed = max(2.0, 0.4*max_speed), acceleration 0.1
// kn/s, deceleration 0.2 kn/s, braking 0.3 kn/s, turn rate 0.3 deg/s.
func DefaultParams(maxSpeedKn float64) Params {
	return Params{
		MaxSpeedKn:           maxSpeedKn,
		TurnSpeedKn:          math.Max(2.0, 0.4*maxSpeedKn),
		AccelerationKnPerSec: 0.1,
		DecelerationKnPerSec: 0.2,
		BrakingKnPerSec:      0.3,
		TurnRateDegPerSec:    0.3,
	}
}

// State is the vessel's per-tick mutable motion state. It is owned
// exclusively by its Engine; Engine.State returns a copy so callers never
// hold a mutable reference into the engine.
type State struct {
	Position nmeasim.Position

	HeadingDeg       float64
	TargetHeadingDeg float64

	SpeedKn       float64
	TargetSpeedKn float64

	// TargetIdx is the index of the next waypoint; >= 1 while Cruising.
	TargetIdx int

	Mode Mode

	// Arrived is true once Holding was entered by reaching the final
	// waypoint, false when Holding is the route's single-waypoint starting
	// mode. A producer uses this to pick the nav status reported while
	// Holding: the configured status before arrival, a fixed "moored" code
	// after it.
	Arrived bool

	// RotDegPerMin is this tick's turn-rate indication (ΔHeading·60), for
	// the own-ship GPROT sentence.
	RotDegPerMin float64
}

// Engine advances one vessel along waypoints with the dynamics in Params.
// Tick must be called once per second (the engine assumes a fixed Δt of
// 1s); it is not safe for concurrent use — each producer owns exactly one
// Engine.
type Engine struct {
	waypoints []nmeasim.Position
	params    Params
	state     State
}

// NewEngine constructs an Engine starting at waypoints[0]. A single-waypoint
// route enters Holding immediately.
func NewEngine(waypoints []nmeasim.Position, params Params) (*Engine, error) {
	if len(waypoints) == 0 {
		return nil, ErrNoWaypoints
	}

	e := &Engine{waypoints: waypoints, params: params}
	e.state.Position = waypoints[0]
	e.state.TargetIdx = 1

	if len(waypoints) > 1 {
		hdg := nmeasim.Bearing(waypoints[0], waypoints[1])
		e.state.HeadingDeg = hdg
		e.state.TargetHeadingDeg = hdg
		e.state.Mode = Cruising
	} else {
		e.state.Mode = Holding
	}
	return e, nil
}

// State returns a snapshot of the engine's current motion state.
func (e *Engine) State() State { return e.state }

// Stop forces the engine into Stopped, the terminal mode reached on a
// transport failure or externally signalled termination from Holding.
func (e *Engine) Stop() { e.state.Mode = Stopped }

// Tick advances the engine by one second.
func (e *Engine) Tick() {
	switch e.state.Mode {
	case Cruising:
		e.tickCruising()
	case Holding:
		e.state.SpeedKn = 0
		e.state.RotDegPerMin = 0
	case Stopped:
		// terminal; no further movement.
	}
}

func (e *Engine) tickCruising() {
	target := e.waypoints[e.state.TargetIdx]
	distToTarget := nmeasim.Distance(e.state.Position, target)

	if distToTarget > 0.005 {
		e.state.TargetHeadingDeg = nmeasim.Bearing(e.state.Position, target)
	}

	deltaHdg := normalizeDelta(e.state.TargetHeadingDeg - e.state.HeadingDeg)
	isTurning := math.Abs(deltaHdg) > e.params.TurnRateDegPerSec
	isFinal := e.state.TargetIdx == len(e.waypoints)-1

	switch {
	case isFinal:
		tStopSec := e.state.SpeedKn / e.params.BrakingKnPerSec
		brakingDistNM := (e.state.SpeedKn / 2.0 / 3600.0) * tStopSec
		if distToTarget <= brakingDistNM+0.005 {
			e.state.TargetSpeedKn = 0
		} else {
			e.state.TargetSpeedKn = e.params.MaxSpeedKn
		}
	case isTurning:
		e.state.TargetSpeedKn = e.params.TurnSpeedKn
	default:
		e.state.TargetSpeedKn = e.params.MaxSpeedKn
	}

	e.rampSpeed()

	rot := e.slewHeading(deltaHdg, isTurning)
	e.state.RotDegPerMin = rot * 60.0

	distPerSec := e.state.SpeedKn / 3600.0
	e.state.Position = nmeasim.Destination(e.state.Position, e.state.HeadingDeg, distPerSec)

	e.checkArrival(distToTarget, isFinal)
}

func (e *Engine) rampSpeed() {
	switch {
	case e.state.SpeedKn < e.state.TargetSpeedKn:
		e.state.SpeedKn = math.Min(e.state.SpeedKn+e.params.AccelerationKnPerSec, e.state.TargetSpeedKn)
	case e.state.SpeedKn > e.state.TargetSpeedKn:
		if e.state.TargetSpeedKn == 0 {
			e.state.SpeedKn = math.Max(e.state.SpeedKn-e.params.BrakingKnPerSec, 0)
		} else {
			e.state.SpeedKn = math.Max(e.state.SpeedKn-e.params.DecelerationKnPerSec, 0)
		}
	}
}

// slewHeading moves heading toward target by at most TurnRateDegPerSec and
// returns the turn rate applied, in degrees/sec (signed).
func (e *Engine) slewHeading(deltaHdg float64, isTurning bool) float64 {
	var rot float64
	if isTurning {
		if deltaHdg > 0 {
			e.state.HeadingDeg += e.params.TurnRateDegPerSec
			rot = e.params.TurnRateDegPerSec
		} else {
			e.state.HeadingDeg -= e.params.TurnRateDegPerSec
			rot = -e.params.TurnRateDegPerSec
		}
	} else {
		e.state.HeadingDeg = e.state.TargetHeadingDeg
		rot = deltaHdg
	}
	e.state.HeadingDeg = math.Mod(e.state.HeadingDeg+360, 360)
	return rot
}

func (e *Engine) checkArrival(distToTarget float64, isFinal bool) {
	arrival := math.Max(0.005, (e.params.MaxSpeedKn/3600.0)*2.0)
	if distToTarget >= arrival {
		return
	}
	switch {
	case isFinal && e.state.SpeedKn < 0.1:
		e.state.Mode = Holding
		e.state.Arrived = true
		e.state.SpeedKn = 0
	case !isFinal:
		e.state.TargetIdx++
	}
}

// normalizeDelta maps a heading difference to [-180, 180).
func normalizeDelta(deg float64) float64 {
	d := math.Mod(deg+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

// RouteDistanceNM sums the great-circle distance between consecutive
// waypoints, used to estimate a voyage ETA when none is supplied.
func RouteDistanceNM(waypoints []nmeasim.Position) float64 {
	total := 0.0
	for i := 0; i < len(waypoints)-1; i++ {
		total += nmeasim.Distance(waypoints[i], waypoints[i+1])
	}
	return total
}
