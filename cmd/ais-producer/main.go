// Command ais-producer simulates one or more AIS targets (Message 1 every
// 6s, Message 5 every 30s), each driving its own motion engine and its own
// outbound TCP stream, run concurrently under one supervisor — the Go
// counterpart of the original GUI's per-target thread list.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/mmcho/nmea-ecdis-sim/config"
	"github.com/mmcho/nmea-ecdis-sim/internal/logging"
	"github.com/mmcho/nmea-ecdis-sim/motion"
	"github.com/mmcho/nmea-ecdis-sim/producer"
)

func main() {
	configPath := pflag.String("config", "", "path to the AIS fleet YAML config")
	pflag.Parse()

	log := logging.NewStderr()

	if *configPath == "" {
		log.Fatal("missing --config")
	}
	cfg, err := config.LoadAISFleetConfig(*configPath)
	if err != nil {
		log.Fatal("loading config", "err", err)
	}

	runners := make([]producer.Runner, 0, len(cfg.Targets))
	for i, t := range cfg.Targets {
		mmsi := t.Vessel.MMSI
		if mmsi == 0 {
			mmsi = producer.RandomIdentity(t.Vessel.Country)
		}
		identity := producer.NewIdentity(mmsi, t.Vessel.ShipName, t.Vessel.CallSign, t.Vessel.ShipType,
			t.Vessel.LengthM, t.Vessel.BeamM, t.Vessel.DraughtM, t.Vessel.Destination,
			t.Vessel.ETAOrNil(), t.Vessel.NavStatus)

		ais, err := producer.NewAIS(t.Addr, t.Route.Positions(), motion.DefaultParams(t.Route.MaxSpeedKn),
			identity, logging.For(log, "producer").With("mmsi", mmsi))
		if err != nil {
			log.Fatal("building AIS target", "index", i, "err", err)
		}
		runners = append(runners, ais)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	supervisor := producer.NewSupervisor(runners...)
	if err := supervisor.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("AIS fleet exited", "err", err)
	}
}
