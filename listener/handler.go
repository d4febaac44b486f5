package listener

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"

	nmeasim "github.com/mmcho/nmea-ecdis-sim"
	"github.com/mmcho/nmea-ecdis-sim/aivdm"
	"github.com/mmcho/nmea-ecdis-sim/internal/utils"
	"github.com/mmcho/nmea-ecdis-sim/navstore"
)

// Handler is a per-connection parser: buffered line reader on "\r\n",
// validating and decoding one producer's stream and routing its sentences
// through a Router into a shared Store.
type Handler struct {
	conn   net.Conn
	alias  string
	store  *navstore.Store
	router *navstore.Router
	log    *charmlog.Logger

	assembler *aivdm.Assembler
}

// NewHandler builds a Handler for one accepted connection tagged with the
// port-alias it was accepted on.
func NewHandler(conn net.Conn, alias string, store *navstore.Store, router *navstore.Router, log *charmlog.Logger) *Handler {
	return &Handler{
		conn:      conn,
		alias:     alias,
		store:     store,
		router:    router,
		log:       log,
		assembler: aivdm.NewAssembler(),
	}
}

// Serve reads lines until the connection closes or ctx is cancelled, never
// returning an error: a malformed line is logged and skipped, not fatal.
func (h *Handler) Serve(ctx context.Context) {
	defer h.conn.Close()

	go func() {
		<-ctx.Done()
		h.conn.Close()
	}()

	scanner := bufio.NewScanner(h.conn)
	scanner.Buffer(make([]byte, 4096), 64*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if line[0] != '$' && line[0] != '!' {
			continue
		}
		h.handleLine(line)
	}
}

func (h *Handler) handleLine(line string) {
	body, ok := nmeasim.Verify(line)
	if !ok {
		h.log.Debug("listener: dropping malformed frame", "alias", h.alias, "line", utils.FormatSpaces([]byte(line)))
		return
	}
	if len(body) < 5 {
		return
	}

	sentenceType := body[2:5]
	fields := strings.Split(body[5:], ",")
	if len(fields) > 0 && fields[0] == "" {
		fields = fields[1:]
	}

	switch sentenceType {
	case "RMC":
		h.handleRMC(fields)
	case "GGA":
		h.handleGGA(fields)
	case "HDT":
		h.handleHDT(fields)
	case "ROT":
		h.handleROT(fields)
	case "DPT", "DBT":
		h.handleDepth(sentenceType, fields)
	case "VDM":
		h.handleVDM(fields)
	}
}

func (h *Handler) handleRMC(fields []string) {
	if !h.router.AllowsEPFS1(h.alias) || len(fields) < 9 {
		return
	}
	utc := parseUTCTime(fields[0], fields[8])
	lat, latOK := parseNMEALat(fields[2], fields[3])
	lon, lonOK := parseNMEALon(fields[4], fields[5])
	if !latOK || !lonOK {
		return
	}
	sog, _ := strconv.ParseFloat(fields[6], 64)
	cog, _ := strconv.ParseFloat(fields[7], 64)
	h.store.ApplyRMC(nmeasim.Position{Lat: lat, Lon: lon}, sog, cog, utc, fields[1] == "A")
}

func (h *Handler) handleGGA(fields []string) {
	if !h.router.AllowsEPFS1(h.alias) || len(fields) < 6 {
		return
	}
	utc := parseUTCTime(fields[0], "")
	lat, latOK := parseNMEALat(fields[1], fields[2])
	lon, lonOK := parseNMEALon(fields[3], fields[4])
	if !latOK || !lonOK {
		return
	}
	h.store.ApplyGGA(nmeasim.Position{Lat: lat, Lon: lon}, utc, fields[5] != "0")
}

func (h *Handler) handleHDT(fields []string) {
	if !h.router.AllowsHeading(h.alias) || len(fields) < 1 {
		return
	}
	hdg, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return
	}
	h.store.ApplyHDT(hdg)
}

func (h *Handler) handleROT(fields []string) {
	if !h.router.AllowsROT(h.alias) || len(fields) < 1 {
		return
	}
	rot, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return
	}
	h.store.ApplyROT(rot)
}

func (h *Handler) handleDepth(sentenceType string, fields []string) {
	if !h.router.AllowsSounder(h.alias) {
		return
	}
	idx := 0
	if sentenceType == "DBT" {
		idx = 2
	}
	if len(fields) <= idx {
		return
	}
	depth, err := strconv.ParseFloat(fields[idx], 64)
	if err != nil {
		return
	}
	h.store.ApplyDepth(depth)
}

func (h *Handler) handleVDM(fields []string) {
	matches := h.router.MatchAIS(h.alias)
	if matches == 0 || len(fields) < 5 {
		return
	}

	total, err1 := strconv.Atoi(fields[0])
	seq, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return
	}
	groupID := fields[2]
	payload := fields[4]

	full, ready, err := h.assembler.Append(aivdm.FragmentHeader{Total: total, Seq: seq, GroupID: groupID}, payload)
	if err != nil {
		h.log.Debug("listener: AIVDM fragment gap", "alias", h.alias, "err", err)
		return
	}
	if !ready {
		return
	}

	for i := 0; i < matches; i++ {
		h.applyAIVDM(full)
	}
}

func (h *Handler) applyAIVDM(payload string) {
	msgType, err := aivdm.PeekMessageType(payload)
	if err != nil {
		return
	}
	switch msgType {
	case 1, 2, 3:
		m, err := aivdm.DecodeMessage1(payload)
		if err != nil {
			return
		}
		h.store.ApplyMessage1(m)
	case 5:
		m, err := aivdm.DecodeMessage5(payload)
		if err != nil {
			return
		}
		h.store.ApplyMessage5(m)
	}
}

func parseUTCTime(hhmmss, ddmmyy string) time.Time {
	now := time.Now().UTC()
	if len(hhmmss) < 6 {
		return now
	}
	hh, _ := strconv.Atoi(hhmmss[0:2])
	mm, _ := strconv.Atoi(hhmmss[2:4])
	ss, _ := strconv.Atoi(hhmmss[4:6])

	year, month, day := now.Date()
	if len(ddmmyy) == 6 {
		if d, err := strconv.Atoi(ddmmyy[0:2]); err == nil {
			day = d
		}
		if m, err := strconv.Atoi(ddmmyy[2:4]); err == nil {
			month = time.Month(m)
		}
		if y, err := strconv.Atoi(ddmmyy[4:6]); err == nil {
			year = 2000 + y
		}
	}
	return time.Date(year, month, day, hh, mm, ss, 0, time.UTC)
}

// parseNMEALat parses an NMEA "ddmm.mmmm" latitude field with hemisphere.
func parseNMEALat(s, hemi string) (float64, bool) {
	return parseNMEALatLon(s, hemi, 2)
}

// parseNMEALon parses an NMEA "dddmm.mmmm" longitude field with hemisphere.
func parseNMEALon(s, hemi string) (float64, bool) {
	return parseNMEALatLon(s, hemi, 3)
}

func parseNMEALatLon(s, hemi string, degDigits int) (float64, bool) {
	if len(s) < degDigits+2 {
		return 0, false
	}
	degStr := s[:degDigits]
	minStr := s[degDigits:]

	deg, err := strconv.Atoi(degStr)
	if err != nil {
		return 0, false
	}
	min, err := strconv.ParseFloat(minStr, 64)
	if err != nil {
		return 0, false
	}

	val := float64(deg) + min/60.0
	if hemi == "S" || hemi == "W" {
		val = -val
	}
	return val, true
}
