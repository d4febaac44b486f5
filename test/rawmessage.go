package test_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nmeasim "github.com/mmcho/nmea-ecdis-sim"
	"github.com/mmcho/nmea-ecdis-sim/aivdm"
)

// AssertFrameValid checksum-verifies a raw NMEA/AIVDM line and returns its
// body (the part between the talker/formatter prefix and the checksum).
func AssertFrameValid(t *testing.T, line string) string {
	t.Helper()
	body, ok := nmeasim.Verify(line)
	require.True(t, ok, "sentence failed checksum: %s", line)
	return body
}

// AssertMessage1 compares two decoded Message 1 reports, allowing the
// quantization slack ITU-R M.1371's fixed-point fields introduce: position
// to ~1/600000 deg, speed/course to 0.05 kn/deg, heading to 0.5 deg. Takes
// assert.TestingT so it works from inside rapid.Check's *rapid.T callback
// as well as an ordinary *testing.T.
func AssertMessage1(t assert.TestingT, expect, actual aivdm.Message1) {
	assert.Equal(t, expect.Identity, actual.Identity)
	assert.Equal(t, expect.NavStatus, actual.NavStatus)
	assert.InDelta(t, expect.SOGKnots, actual.SOGKnots, 0.05)
	assert.InDelta(t, expect.Position.Lat, actual.Position.Lat, 1.0/600000.0+1e-9)
	assert.InDelta(t, expect.Position.Lon, actual.Position.Lon, 1.0/600000.0+1e-9)
	assert.InDelta(t, expect.COGDeg, actual.COGDeg, 0.05)
	assert.InDelta(t, float64(expect.HeadingDeg), float64(actual.HeadingDeg), 0.5)
	assert.Equal(t, expect.TimestampSec, actual.TimestampSec)
}

// AssertMessage5 compares two decoded Message 5 reports for exact equality,
// with no fixed-point slack; DraughtM, stored in 0.1 m units on the wire,
// only compares equal for whole-decimetre values.
func AssertMessage5(t assert.TestingT, expect, actual aivdm.Message5) {
	assert.Equal(t, expect, actual)
}
