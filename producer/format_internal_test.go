package producer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLatNMEA(t *testing.T) {
	s, hemi := formatLatNMEA(35.1234)
	assert.Equal(t, byte('N'), hemi)
	assert.Equal(t, "3507.4040", s)

	s, hemi = formatLatNMEA(-1.0)
	assert.Equal(t, byte('S'), hemi)
	assert.Equal(t, "0100.0000", s)
}

func TestFormatLonNMEA(t *testing.T) {
	s, hemi := formatLonNMEA(129.0400)
	assert.Equal(t, byte('E'), hemi)
	assert.Equal(t, "12902.4000", s)

	s, hemi = formatLonNMEA(-12.5)
	assert.Equal(t, byte('W'), hemi)
	assert.Equal(t, "01230.0000", s)
}
