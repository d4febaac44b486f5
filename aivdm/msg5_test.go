package aivdm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mmcho/nmea-ecdis-sim/aivdm"
	test_test "github.com/mmcho/nmea-ecdis-sim/test"
)

func TestMessage5_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		hasETA := rapid.Bool().Draw(t, "hasETA")
		var eta *aivdm.ETA
		if hasETA {
			eta = &aivdm.ETA{
				Month:  uint8(rapid.IntRange(1, 12).Draw(t, "month")),
				Day:    uint8(rapid.IntRange(1, 28).Draw(t, "day")),
				Hour:   uint8(rapid.IntRange(0, 23).Draw(t, "hour")),
				Minute: uint8(rapid.IntRange(0, 59).Draw(t, "minute")),
			}
		}
		m := aivdm.Message5{
			Identity:    uint32(rapid.IntRange(100000000, 999999999).Draw(t, "identity")),
			CallSign:    rapid.StringMatching(`[A-Z0-9]{1,7}`).Draw(t, "callSign"),
			ShipName:    rapid.StringMatching(`[A-Z0-9 ]{1,20}`).Draw(t, "shipName"),
			ShipType:    uint8(rapid.IntRange(0, 99).Draw(t, "shipType")),
			DimA:        uint16(rapid.IntRange(0, 400).Draw(t, "dimA")),
			DimB:        uint16(rapid.IntRange(0, 400).Draw(t, "dimB")),
			DimC:        uint8(rapid.IntRange(0, 63).Draw(t, "dimC")),
			DimD:        uint8(rapid.IntRange(0, 63).Draw(t, "dimD")),
			ETA:         eta,
			DraughtM:    rapid.Float64Range(0, 25.5).Draw(t, "draught"),
			Destination: rapid.StringMatching(`[A-Z0-9 ]{1,20}`).Draw(t, "destination"),
		}

		part1, part2 := aivdm.EncodeMessage5(m)
		assert.LessOrEqual(t, len(part1), 56)

		got, err := aivdm.DecodeMessage5(part1 + part2)
		require.NoError(t, err)

		assert.Equal(t, m.Identity, got.Identity)
		assert.Equal(t, strings.TrimSpace(m.CallSign), got.CallSign)
		assert.Equal(t, strings.TrimSpace(m.ShipName), got.ShipName)
		assert.Equal(t, m.ShipType, got.ShipType)
		assert.Equal(t, m.DimA, got.DimA)
		assert.Equal(t, m.DimB, got.DimB)
		assert.Equal(t, m.DimC, got.DimC)
		assert.Equal(t, m.DimD, got.DimD)
		assert.InDelta(t, m.DraughtM, got.DraughtM, 0.05)
		assert.Equal(t, strings.TrimSpace(m.Destination), got.Destination)

		if hasETA {
			require.NotNil(t, got.ETA)
			assert.Equal(t, *eta, *got.ETA)
		} else {
			assert.Nil(t, got.ETA)
		}
	})
}

func TestMessage5_FragmentSplitAt56Chars(t *testing.T) {
	m := aivdm.Message5{Identity: 368962950, ShipName: "EVER GIVEN", Destination: "PUSAN"}
	part1, part2 := aivdm.EncodeMessage5(m)
	assert.Len(t, part1, 56)
	assert.Len(t, part2, 15) // 71 total chars for 424 bits (426 padded) / 6

	got, err := aivdm.DecodeMessage5(part1 + part2)
	require.NoError(t, err)
	test_test.AssertMessage5(t, m, got)
}
