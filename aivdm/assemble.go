package aivdm

import "errors"

// ErrFragmentGap indicates a fragment arrived out of sequence — its seq
// skipped ahead of, or behind, the fragment that should have preceded it —
// and invalidates whatever partial group was being assembled for that
// group ID.
var ErrFragmentGap = errors.New("aivdm: fragment sequence gap")

// FragmentHeader holds the !AIVDM framing fields that drive multi-fragment
// assembly: total fragment count, this fragment's 1-based sequence number,
// the single-digit group ID tying a batch together, and the radio channel.
type FragmentHeader struct {
	Total   int
	Seq     int
	GroupID string
	Channel byte
}

// Assembler reassembles multi-fragment AIVDM payloads for a single
// connection, keyed by group ID — the connection half of the key is the
// Assembler instance itself: one Assembler per accepted socket.
//
// Its shape — accumulate parts, detect completeness, reset on restart — is
// adapted from a NMEA2000 fast-packet reassembler (fastPacketSequence),
// generalised from a frame-counter bitmask to AIVDM's simpler
// strictly-increasing seq/total framing.
type Assembler struct {
	groups map[string]*fragmentGroup
}

type fragmentGroup struct {
	total    int
	lastSeq  int
	payloads []string
}

// NewAssembler returns an empty Assembler for one connection.
func NewAssembler() *Assembler {
	return &Assembler{groups: make(map[string]*fragmentGroup)}
}

// Append feeds one fragment's header and armored payload to the assembler.
// On the final fragment of a group it returns the concatenated payload and
// ready=true. On a single-fragment message (header.Total == 1) it resets
// any in-flight cache for that group ID and returns the payload
// immediately. A fragment whose seq skips or precedes its predecessor
// returns ErrFragmentGap and drops the group.
func (a *Assembler) Append(h FragmentHeader, payload string) (full string, ready bool, err error) {
	if h.Total <= 1 {
		delete(a.groups, h.GroupID)
		return payload, true, nil
	}

	if h.Seq == 1 {
		a.groups[h.GroupID] = &fragmentGroup{
			total:    h.Total,
			lastSeq:  1,
			payloads: []string{payload},
		}
		return "", false, nil
	}

	g, ok := a.groups[h.GroupID]
	if !ok || h.Seq != g.lastSeq+1 {
		delete(a.groups, h.GroupID)
		return "", false, ErrFragmentGap
	}

	g.payloads = append(g.payloads, payload)
	g.lastSeq = h.Seq

	if h.Seq < g.total {
		return "", false, nil
	}

	var joined string
	for _, p := range g.payloads {
		joined += p
	}
	delete(a.groups, h.GroupID)
	return joined, true, nil
}
