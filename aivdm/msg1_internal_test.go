package aivdm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMessage1_SentinelsMeanNotAvailable exercises the ITU "not available"
// sentinels (SOG=1023, COG=3600, heading=511) that the producer in this
// system never emits, but that the decoder must still recognise when
// talking to any other AIS source.
func TestMessage1_SentinelsMeanNotAvailable(t *testing.T) {
	w := &bitWriter{}
	w.writeUint(1, 6)
	w.writeUint(0, 2)
	w.writeUint(123456789, 30)
	w.writeUint(0, 4)
	w.writeUint(0, 8)
	w.writeUint(1023, 10) // SOG sentinel
	w.writeUint(1, 1)
	w.writeInt(0, 28)
	w.writeInt(0, 27)
	w.writeUint(3600, 12) // COG sentinel
	w.writeUint(511, 9)   // heading sentinel
	w.writeUint(0, 6)
	w.writeUint(0, 2)
	w.writeUint(0, 3)
	w.writeUint(0, 1)
	w.writeUint(0, 19)

	payload, fill := w.armor()
	assert.Equal(t, 0, fill)

	got, err := DecodeMessage1(payload)
	require.NoError(t, err)
	assert.False(t, got.SOGAvailable)
	assert.False(t, got.COGAvailable)
	assert.False(t, got.HeadingAvail)
}
