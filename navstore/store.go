// Package navstore implements the Nav Store, the Profile Router that feeds
// it, and the Target Analytics computed from its snapshots.
package navstore

import (
	"sync"
	"time"

	"github.com/samber/lo"

	nmeasim "github.com/mmcho/nmea-ecdis-sim"
	"github.com/mmcho/nmea-ecdis-sim/aivdm"
)

// retireAfter and retireStoppedAfter are the target record retirement
// thresholds.
const (
	retireAfter        = 300 * time.Second
	retireStoppedAfter = 900 * time.Second
)

// OwnShipState is the receiver's own-ship scalar fields.
type OwnShipState struct {
	Position     nmeasim.Position
	SOGKnots     float64
	COGDeg       float64
	HeadingDeg   float64
	RotDegPerMin float64
	DepthM       float64
	UTC          time.Time
	FixValid     bool
}

// TargetRecord is one AIS-derived contact in the target table.
type TargetRecord struct {
	Identity uint32

	CallSign    string
	ShipName    string
	ShipType    uint8
	DimA, DimB  uint16
	DimC, DimD  uint8
	DraughtM    float64
	Destination string
	ETA         *aivdm.ETA

	Position   nmeasim.Position
	SOGKnots   float64
	COGDeg     float64
	HeadingDeg float64
	NavStatus  uint8

	LastSeen  time.Time
	IsStopped bool
}

// Snapshot is an immutable copy of the Nav Store's state, safe to read
// without holding the store's mutex.
type Snapshot struct {
	OwnShip OwnShipState
	Targets []TargetRecord
}

// Store is the shared, mutex-guarded navigational picture: own-ship scalar
// fields, the target table keyed by identity, and the own-ship vector used
// by analytics. Exactly one mutex guards all three: holders must not
// perform I/O, and there are no nested locks.
type Store struct {
	mu      sync.Mutex
	ownShip OwnShipState
	targets map[uint32]*TargetRecord

	now func() time.Time
}

// NewStore constructs an empty Nav Store.
func NewStore() *Store {
	return &Store{
		targets: make(map[uint32]*TargetRecord),
		now:     time.Now,
	}
}

// ApplyRMC merges a decoded GPRMC fix into own-ship state.
func (s *Store) ApplyRMC(pos nmeasim.Position, sogKn, cogDeg float64, utc time.Time, valid bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownShip.Position = pos
	s.ownShip.SOGKnots = sogKn
	s.ownShip.COGDeg = cogDeg
	s.ownShip.UTC = utc
	s.ownShip.FixValid = valid
}

// ApplyGGA merges a decoded GPGGA fix into own-ship position and time.
func (s *Store) ApplyGGA(pos nmeasim.Position, utc time.Time, valid bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownShip.Position = pos
	s.ownShip.UTC = utc
	s.ownShip.FixValid = valid
}

// ApplyHDT merges a decoded HEHDT true heading.
func (s *Store) ApplyHDT(headingDeg float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownShip.HeadingDeg = headingDeg
}

// ApplyROT merges a decoded GPROT turn-rate indication.
func (s *Store) ApplyROT(rotDegPerMin float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownShip.RotDegPerMin = rotDegPerMin
}

// ApplyDepth merges a decoded SDDPT/SDDBT depth reading.
func (s *Store) ApplyDepth(depthM float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownShip.DepthM = depthM
}

// ApplyMessage1 creates or merges a target record from a decoded AIS
// Message 1 position report.
func (s *Store) ApplyMessage1(m aivdm.Message1) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.targets[m.Identity]
	if t == nil {
		t = &TargetRecord{Identity: m.Identity}
		s.targets[m.Identity] = t
	}
	t.Position = m.Position
	t.SOGKnots = m.SOGKnots
	t.COGDeg = m.COGDeg
	t.HeadingDeg = float64(m.HeadingDeg)
	t.NavStatus = m.NavStatus
	t.LastSeen = s.now()
	t.IsStopped = m.SOGKnots < 0.1
}

// ApplyMessage5 creates or merges a Target Record's static/voyage data from
// a decoded AIS Message 5.
func (s *Store) ApplyMessage5(m aivdm.Message5) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.targets[m.Identity]
	if t == nil {
		t = &TargetRecord{Identity: m.Identity}
		s.targets[m.Identity] = t
	}
	t.CallSign = m.CallSign
	t.ShipName = m.ShipName
	t.ShipType = m.ShipType
	t.DimA, t.DimB = m.DimA, m.DimB
	t.DimC, t.DimD = m.DimC, m.DimD
	t.DraughtM = m.DraughtM
	t.Destination = m.Destination
	t.ETA = m.ETA
	t.LastSeen = s.now()
}

// RemoveByIdentity deletes the target record for identity, if any. Unlike
// the original's clear_all_routes, this removes exactly the requested
// identity's record, never a different one.
func (s *Store) RemoveByIdentity(identity uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.targets[identity]; !ok {
		return false
	}
	delete(s.targets, identity)
	return true
}

// Clear removes every target record.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = make(map[uint32]*TargetRecord)
}

// Snapshot copies own-ship state and every target record under the mutex,
// then releases it before the caller computes or renders anything.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	targets := lo.MapToSlice(s.targets, func(_ uint32, t *TargetRecord) TargetRecord {
		return *t
	})
	return Snapshot{OwnShip: s.ownShip, Targets: targets}
}

// SweepExpired removes every target record with no update in over 300s,
// or a stopped target with no update in over 900s (redundant given the
// first clause, but kept to mirror the two-part retirement rule
// explicitly). Returns the number of records removed. Runnable standalone
// on its own ticker, rather than buried in a UI refresh.
func (s *Store) SweepExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := lo.Filter(lo.Keys(s.targets), func(id uint32, _ int) bool {
		t := s.targets[id]
		age := now.Sub(t.LastSeen)
		return age > retireAfter || (t.IsStopped && age > retireStoppedAfter)
	})
	for _, id := range expired {
		delete(s.targets, id)
	}
	return len(expired)
}

// OwnShipVector returns the (lat, lon, sog, cog) tuple used by C9 analytics.
func (s *Store) OwnShipVector() Vector {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Vector{
		Position: s.ownShip.Position,
		SOGKnots: s.ownShip.SOGKnots,
		COGDeg:   s.ownShip.COGDeg,
	}
}
