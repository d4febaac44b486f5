package producer

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"time"

	charmlog "github.com/charmbracelet/log"

	nmeasim "github.com/mmcho/nmea-ecdis-sim"
	"github.com/mmcho/nmea-ecdis-sim/aivdm"
	"github.com/mmcho/nmea-ecdis-sim/motion"
)

const (
	msg1Interval = 6
	msg5Interval = 30

	// fragmentPacing is the delay between Message 5's two fragments.
	fragmentPacing = 100 * time.Millisecond
)

// AIS is the traffic producer for one AIS target: one outbound TCP stream
// driving a motion engine and emitting Message 1 every 6s and Message 5
// (two fragments) every 30s. Several targets run side by side under a
// Supervisor.
type AIS struct {
	addr     string
	engine   *motion.Engine
	identity Identity
	groupID  string

	log *charmlog.Logger

	now  func() time.Time
	tick time.Duration
}

// NewAIS constructs an AIS producer. If identity.ETA is nil and the route
// has more than one waypoint, an ETA is computed from total route distance
// and max speed, the way the original simulator's calculate_eta does.
func NewAIS(addr string, waypoints []nmeasim.Position, params motion.Params, identity Identity, log *charmlog.Logger) (*AIS, error) {
	engine, err := motion.NewEngine(waypoints, params)
	if err != nil {
		return nil, err
	}

	if identity.ETA == nil && len(waypoints) > 1 {
		identity.ETA = computeETA(motion.RouteDistanceNM(waypoints), params.MaxSpeedKn, time.Now().UTC())
	}

	return &AIS{
		addr:     addr,
		engine:   engine,
		identity: identity,
		groupID:  fmt.Sprintf("%d", rand.Intn(10)),
		log:      log,
		now:      time.Now,
		tick:     1 * time.Second,
	}, nil
}

// computeETA estimates time of arrival from total route distance and
// cruising speed, mirroring the original simulator's calculate_eta.
func computeETA(totalDistNM, speedKn float64, now time.Time) *aivdm.ETA {
	if speedKn <= 0 || totalDistNM <= 0 {
		return nil
	}
	hours := totalDistNM / speedKn
	arrival := now.Add(time.Duration(hours * float64(time.Hour)))
	return &aivdm.ETA{
		Month:  uint8(arrival.Month()),
		Day:    uint8(arrival.Day()),
		Hour:   uint8(arrival.Hour()),
		Minute: uint8(arrival.Minute()),
	}
}

// Run dials addr, then drives the motion engine and AIS message cadence
// until ctx is cancelled or a transport error occurs. On cancellation it
// sends one final Message 1 with SOG=0, nav_status 5 (Moored).
func (a *AIS) Run(ctx context.Context) error {
	conn, err := dialTCP(ctx, a.addr)
	if err != nil {
		return fmt.Errorf("ais producer %d: connect %s: %w", a.identity.MMSI, a.addr, err)
	}
	defer conn.Close()

	msg5Part1, msg5Part2 := a.encodeMessage5(a.engine.State())

	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

	var ticks int
	for {
		select {
		case <-ctx.Done():
			a.sendStopFrame(conn)
			a.engine.Stop()
			return nil
		case <-ticker.C:
			a.engine.Tick()
			state := a.engine.State()

			if ticks%msg1Interval == 0 {
				navStatus := a.identity.NavStatus
				if state.Mode == motion.Holding && state.Arrived {
					navStatus = 5
				}
				if err := a.sendMessage1(conn, state, state.SpeedKn, navStatus); err != nil {
					a.engine.Stop()
					a.log.Warn("ais producer: send failed, stopping", "mmsi", a.identity.MMSI, "err", err)
					return err
				}
			}

			if ticks%msg5Interval == 0 {
				if err := a.sendMessage5Fragments(ctx, conn, msg5Part1, msg5Part2); err != nil {
					a.engine.Stop()
					a.log.Warn("ais producer: send failed, stopping", "mmsi", a.identity.MMSI, "err", err)
					return err
				}
			}

			ticks++
			if state.Mode == motion.Stopped {
				return nil
			}
		}
	}
}

func (a *AIS) sendStopFrame(conn net.Conn) {
	state := a.engine.State()
	if err := a.sendMessage1(conn, state, 0, 5); err != nil {
		a.log.Debug("ais producer: best-effort stop frame failed", "mmsi", a.identity.MMSI, "err", err)
	}
}

func (a *AIS) sendMessage1(conn net.Conn, state motion.State, sogKn float64, navStatus uint8) error {
	m := aivdm.Message1{
		Identity:         a.identity.MMSI,
		NavStatus:        navStatus,
		SOGKnots:         sogKn,
		SOGAvailable:     true,
		PositionAccuracy: false,
		Position:         state.Position,
		COGDeg:           state.HeadingDeg,
		COGAvailable:     true,
		HeadingDeg:       int(state.HeadingDeg),
		HeadingAvail:     true,
		TimestampSec:     uint8(a.now().UTC().Second()),
	}
	payload, _ := aivdm.EncodeMessage1(m)
	return a.sendVDM(conn, 1, 1, "", payload)
}

func (a *AIS) encodeMessage5(state motion.State) (string, string) {
	m := aivdm.Message5{
		Identity:    a.identity.MMSI,
		CallSign:    a.identity.CallSign,
		ShipName:    a.identity.ShipName,
		ShipType:    a.identity.ShipType,
		DimA:        a.identity.DimA,
		DimB:        a.identity.DimB,
		DimC:        a.identity.DimC,
		DimD:        a.identity.DimD,
		ETA:         a.identity.ETA,
		DraughtM:    a.identity.DraughtM,
		Destination: a.identity.Destination,
	}
	return aivdm.EncodeMessage5(m)
}

func (a *AIS) sendMessage5Fragments(ctx context.Context, conn net.Conn, part1, part2 string) error {
	if err := a.sendVDM(conn, 2, 1, a.groupID, part1); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
	case <-time.After(fragmentPacing):
	}
	return a.sendVDM(conn, 2, 2, a.groupID, part2)
}

func (a *AIS) sendVDM(conn net.Conn, total, seq int, groupID, payload string) error {
	body := fmt.Sprintf("AIVDM,%d,%d,%s,A,%s,0", total, seq, groupID, payload)
	_, err := conn.Write([]byte(nmeasim.Frame('!', body)))
	return err
}
