package producer

import (
	"context"
	"fmt"
	"math"
	"net"
	"time"

	charmlog "github.com/charmbracelet/log"

	nmeasim "github.com/mmcho/nmea-ecdis-sim"
	"github.com/mmcho/nmea-ecdis-sim/motion"
)

// OwnShip is the own-ship sensor producer: one outbound TCP stream
// emitting GPRMC, HEHDT, GPROT, SDDPT, SDDBT and WIMWV once per second
// from a single motion engine.
type OwnShip struct {
	addr   string
	engine *motion.Engine
	log    *charmlog.Logger

	// now and tick are overridable for deterministic tests; they default
	// to time.Now and a real 1s ticker.
	now  func() time.Time
	tick time.Duration
}

// NewOwnShip constructs an own-ship producer dialing addr and driving engine
// once per tick.
func NewOwnShip(addr string, engine *motion.Engine, log *charmlog.Logger) *OwnShip {
	return &OwnShip{
		addr:   addr,
		engine: engine,
		log:    log,
		now:    time.Now,
		tick:   1 * time.Second,
	}
}

// Run dials addr, then drives the motion engine one tick per second until
// ctx is cancelled or a transport error occurs. On cancellation it sends one
// best-effort Holding frame set before closing the socket.
func (o *OwnShip) Run(ctx context.Context) error {
	conn, err := dialTCP(ctx, o.addr)
	if err != nil {
		return fmt.Errorf("ownship producer: connect %s: %w", o.addr, err)
	}
	defer conn.Close()

	ticker := time.NewTicker(o.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			o.sendStopFrames(conn)
			o.engine.Stop()
			return nil
		case <-ticker.C:
			o.engine.Tick()
			state := o.engine.State()

			if err := o.sendFrames(conn, state); err != nil {
				o.engine.Stop()
				o.log.Warn("ownship producer: send failed, stopping", "err", err)
				return err
			}
			if state.Mode == motion.Stopped {
				return nil
			}
		}
	}
}

func (o *OwnShip) sendStopFrames(conn net.Conn) {
	state := o.engine.State()
	state.SpeedKn = 0
	state.RotDegPerMin = 0
	if err := o.sendFrames(conn, state); err != nil {
		o.log.Debug("ownship producer: best-effort stop frame failed", "err", err)
	}
}

func (o *OwnShip) sendFrames(conn net.Conn, state motion.State) error {
	tm := o.now().UTC()
	for _, body := range ownShipSentences(state, tm) {
		if _, err := conn.Write([]byte(nmeasim.Frame('$', body))); err != nil {
			return err
		}
	}
	return nil
}

func ownShipSentences(state motion.State, tm time.Time) []string {
	latStr, latHemi := formatLatNMEA(state.Position.Lat)
	lonStr, lonHemi := formatLonNMEA(state.Position.Lon)
	timeStr := tm.Format("150405.00")
	dateStr := tm.Format("020106")

	rmc := fmt.Sprintf("GPRMC,%s,A,%s,%c,%s,%c,%.1f,%.1f,%s,,",
		timeStr, latStr, latHemi, lonStr, lonHemi, state.SpeedKn, state.HeadingDeg, dateStr)
	hdt := fmt.Sprintf("HEHDT,%.1f,T", state.HeadingDeg)
	rot := fmt.Sprintf("GPROT,%.1f,A", state.RotDegPerMin)

	return []string{
		rmc,
		hdt,
		rot,
		"SDDPT,21.5,,",
		"SDDBT,,f,20.0,M,,F",
		"WIMWV,030.0,R,8.5,N,A",
	}
}

// formatLatNMEA renders a decimal latitude as NMEA ddmm.mmmm plus hemisphere.
func formatLatNMEA(lat float64) (string, byte) {
	hemi := byte('N')
	if lat < 0 {
		hemi = 'S'
	}
	deg := int(math.Trunc(lat))
	minutes := (lat - float64(deg)) * 60.0
	return fmt.Sprintf("%02d%07.4f", absInt(deg), math.Abs(minutes)), hemi
}

// formatLonNMEA renders a decimal longitude as NMEA dddmm.mmmm plus hemisphere.
func formatLonNMEA(lon float64) (string, byte) {
	hemi := byte('E')
	if lon < 0 {
		hemi = 'W'
	}
	deg := int(math.Trunc(lon))
	minutes := (lon - float64(deg)) * 60.0
	return fmt.Sprintf("%03d%07.4f", absInt(deg), math.Abs(minutes)), hemi
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
