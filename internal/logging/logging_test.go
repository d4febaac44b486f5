package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcho/nmea-ecdis-sim/internal/logging"
)

func TestFor_TagsComponentField(t *testing.T) {
	var buf bytes.Buffer
	root := logging.New(&buf)

	logging.For(root, "producer").Info("dialing", "addr", "127.0.0.1:10110")

	out := buf.String()
	assert.True(t, strings.Contains(out, "component=producer"))
	assert.True(t, strings.Contains(out, "addr=127.0.0.1:10110"))
}
