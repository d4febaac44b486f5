package producer_test

import (
	"bufio"
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nmeasim "github.com/mmcho/nmea-ecdis-sim"
	"github.com/mmcho/nmea-ecdis-sim/aivdm"
	"github.com/mmcho/nmea-ecdis-sim/motion"
	"github.com/mmcho/nmea-ecdis-sim/producer"
	test_test "github.com/mmcho/nmea-ecdis-sim/test"
)

func TestAIS_EmitsMessage1AndMessage5(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	lines := make(chan string, 64)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	wp := []nmeasim.Position{{Lat: 35.10, Lon: 129.04}, {Lat: 35.30, Lon: 129.04}}
	id := producer.NewIdentity(368962950, "EVER GIVEN", "H3RC", 70, 300, 40, 14.5, "PUSAN", nil, 0)

	a, err := producer.NewAIS(ln.Addr().String(), wp, motion.DefaultParams(12), id, log.New(io.Discard))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	var msg1, msg5 int
	timeout := time.After(3 * time.Second)
loop:
	for {
		select {
		case l := <-lines:
			body := test_test.AssertFrameValid(t, l)
			if strings.HasPrefix(body, "AIVDM,1,1,") {
				msg1++
			} else if strings.HasPrefix(body, "AIVDM,2,") {
				msg5++
			}
			if msg1 >= 1 && msg5 >= 2 {
				break loop
			}
		case <-timeout:
			t.Fatalf("timed out: msg1=%d msg5-fragments=%d", msg1, msg5)
		}
	}
	cancel()
	<-done
}

// TestAIS_SingleWaypointHoldingKeepsConfiguredNavStatus exercises a
// single-waypoint route, which motion.NewEngine starts directly in
// Holding. Unlike Holding entered by arrival at a final waypoint, this
// must not overwrite the configured nav status with "moored" (5).
func TestAIS_SingleWaypointHoldingKeepsConfiguredNavStatus(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	lines := make(chan string, 64)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	wp := []nmeasim.Position{{Lat: 35.10, Lon: 129.04}}
	id := producer.NewIdentity(368962950, "EVER GIVEN", "H3RC", 70, 300, 40, 14.5, "PUSAN", nil, 1)

	a, err := producer.NewAIS(ln.Addr().String(), wp, motion.DefaultParams(12), id, log.New(io.Discard))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	select {
	case l := <-lines:
		body := test_test.AssertFrameValid(t, l)
		require.True(t, strings.HasPrefix(body, "AIVDM,1,1,"))
		fields := strings.Split(body, ",")
		require.Len(t, fields, 7)
		got, err := aivdm.DecodeMessage1(fields[5])
		require.NoError(t, err)
		assert.Equal(t, uint8(1), got.NavStatus)
		assert.Equal(t, 0.0, got.SOGKnots)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for Message 1")
	}
	cancel()
	<-done
}
