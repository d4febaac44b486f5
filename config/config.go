// Package config decodes the YAML boundary configuration surface used by
// the three cmd/ binaries: the receiver's port table and sensor profile,
// and each producer's route and vessel identity.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	nmeasim "github.com/mmcho/nmea-ecdis-sim"
	"github.com/mmcho/nmea-ecdis-sim/aivdm"
	"github.com/mmcho/nmea-ecdis-sim/listener"
	"github.com/mmcho/nmea-ecdis-sim/navstore"
)

// ErrConfigInvalid is returned when a decoded config fails validation
// (missing route, zero ports, an AIS producer without vessel data).
var ErrConfigInvalid = errors.New("config: invalid configuration")

// Waypoint is one leg endpoint of a producer's route, in decimal degrees.
type Waypoint struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// Route is a producer's waypoint list plus its top speed, from which
// motion.DefaultParams derives the rest of the dynamics.
type Route struct {
	Waypoints  []Waypoint `yaml:"waypoints"`
	MaxSpeedKn float64    `yaml:"max_speed_kn"`
}

// ETA mirrors aivdm.ETA for YAML decoding; a nil ETA on Vessel leaves
// producer.NewAIS to compute one from route distance and max speed (for
// routes of more than one waypoint; otherwise it stays "not available").
type ETA struct {
	Month  uint8 `yaml:"month"`
	Day    uint8 `yaml:"day"`
	Hour   uint8 `yaml:"hour"`
	Minute uint8 `yaml:"minute"`
}

func (e *ETA) toAIVDM() *aivdm.ETA {
	if e == nil {
		return nil
	}
	return &aivdm.ETA{Month: e.Month, Day: e.Day, Hour: e.Hour, Minute: e.Minute}
}

// Vessel is an AIS producer's static identity. A nil Vessel on
// ProducerConfig means "own-ship": no Message 1/5 traffic.
type Vessel struct {
	MMSI     uint32 `yaml:"mmsi"`
	Country  string `yaml:"country"` // used to mint MMSI when MMSI == 0
	ShipName string `yaml:"ship_name"`
	CallSign string `yaml:"call_sign"`
	ShipType uint8  `yaml:"ship_type"`

	LengthM  float64 `yaml:"length_m"`
	BeamM    float64 `yaml:"beam_m"`
	DraughtM float64 `yaml:"draught_m"`

	Destination string `yaml:"destination"`
	ETA         *ETA   `yaml:"eta"`
	NavStatus   uint8  `yaml:"nav_status"`
}

// ProducerConfig is the boundary config for cmd/ownship-producer and
// cmd/ais-producer: a target TCP endpoint, a route, and — for AIS — the
// vessel's static identity.
type ProducerConfig struct {
	Addr   string  `yaml:"addr"`
	Route  Route   `yaml:"route"`
	Vessel *Vessel `yaml:"vessel"`
}

// LoadProducerConfig reads and validates a producer config file.
func LoadProducerConfig(path string) (*ProducerConfig, error) {
	var cfg ProducerConfig
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr is required", ErrConfigInvalid)
	}
	if len(cfg.Route.Waypoints) == 0 {
		return nil, fmt.Errorf("%w: route must have at least one waypoint", ErrConfigInvalid)
	}
	if cfg.Route.MaxSpeedKn <= 0 {
		return nil, fmt.Errorf("%w: route.max_speed_kn must be positive", ErrConfigInvalid)
	}
	return &cfg, nil
}

// Positions converts the route's waypoints to root-package geodesy points.
func (r Route) Positions() []nmeasim.Position {
	out := make([]nmeasim.Position, len(r.Waypoints))
	for i, w := range r.Waypoints {
		out[i] = nmeasim.Position{Lat: w.Lat, Lon: w.Lon}
	}
	return out
}

// ETAOrNil returns the vessel's configured ETA translated to aivdm.ETA, or
// nil if none was configured.
func (v *Vessel) ETAOrNil() *aivdm.ETA {
	if v == nil {
		return nil
	}
	return v.ETA.toAIVDM()
}

// AISFleetConfig is the boundary config for cmd/ais-producer: one or more
// AIS targets, each a complete ProducerConfig with its own route and
// vessel identity, run concurrently (mirroring the original GUI's
// per-target start/stop thread list).
type AISFleetConfig struct {
	Targets []ProducerConfig `yaml:"targets"`
}

// LoadAISFleetConfig reads and validates an AIS fleet config file: every
// target must have a vessel identity and pass the same validation as a
// single ProducerConfig.
func LoadAISFleetConfig(path string) (*AISFleetConfig, error) {
	var cfg AISFleetConfig
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("%w: targets must have at least one entry", ErrConfigInvalid)
	}
	for i, t := range cfg.Targets {
		if t.Addr == "" {
			return nil, fmt.Errorf("%w: targets[%d].addr is required", ErrConfigInvalid, i)
		}
		if len(t.Route.Waypoints) == 0 {
			return nil, fmt.Errorf("%w: targets[%d].route must have at least one waypoint", ErrConfigInvalid, i)
		}
		if t.Route.MaxSpeedKn <= 0 {
			return nil, fmt.Errorf("%w: targets[%d].route.max_speed_kn must be positive", ErrConfigInvalid, i)
		}
		if t.Vessel == nil {
			return nil, fmt.Errorf("%w: targets[%d].vessel is required", ErrConfigInvalid, i)
		}
	}
	return &cfg, nil
}

// PortEntry is one listener acceptor's port-alias binding; the zero Port
// means the alias is configured off.
type PortEntry struct {
	Alias string `yaml:"alias"`
	Port  int    `yaml:"port"`
}

// ReceiverConfig is the boundary config for cmd/ecdis-receiver: the port
// table (one entry per sensor input) and the sensor profile routing
// decoded sentences into the nav store.
type ReceiverConfig struct {
	Ports   []PortEntry   `yaml:"ports"`
	Profile ProfileConfig `yaml:"profile"`
}

// ProfileConfig mirrors navstore.Profile for YAML decoding.
type ProfileConfig struct {
	EPFS1 string `yaml:"epfs1"`
	EPFS2 string `yaml:"epfs2"`

	Heading string `yaml:"heading"`
	Speed   string `yaml:"speed"`
	Time    string `yaml:"time"`
	ROT     string `yaml:"rot"`
	Sounder string `yaml:"sounder"`
	Wind    string `yaml:"wind"`

	AIS1 string `yaml:"ais1"`
	AIS2 string `yaml:"ais2"`

	PrimaryEPFS2 bool `yaml:"primary_epfs2"`
}

func (p ProfileConfig) toNavstore() navstore.Profile {
	return navstore.Profile{
		EPFS1: p.EPFS1, EPFS2: p.EPFS2,
		Heading: p.Heading, Speed: p.Speed, Time: p.Time,
		ROT: p.ROT, Sounder: p.Sounder, Wind: p.Wind,
		AIS1: p.AIS1, AIS2: p.AIS2,
		PrimaryEPFS2: p.PrimaryEPFS2,
	}
}

// LoadReceiverConfig reads and validates a receiver config file.
func LoadReceiverConfig(path string) (*ReceiverConfig, error) {
	var cfg ReceiverConfig
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Ports) == 0 {
		return nil, fmt.Errorf("%w: ports must have at least one entry", ErrConfigInvalid)
	}
	return &cfg, nil
}

// PortConfigs converts the decoded port table to listener.PortConfig.
func (c *ReceiverConfig) PortConfigs() []listener.PortConfig {
	out := make([]listener.PortConfig, len(c.Ports))
	for i, p := range c.Ports {
		out[i] = listener.PortConfig{Alias: p.Alias, Port: p.Port}
	}
	return out
}

// NavstoreProfile converts the decoded profile to navstore.Profile.
func (c *ReceiverConfig) NavstoreProfile() navstore.Profile {
	return c.Profile.toNavstore()
}

func decodeFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrConfigInvalid, path, err)
	}
	return nil
}
