// Command ownship-producer simulates one own-ship sensor suite (GPRMC,
// HEHDT, GPROT, SDDPT, SDDBT, WIMWV) driven along a configured route and
// streamed to a single TCP endpoint.
package main

import (
	"context"
	"fmt"
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
	configPath := pflag.String("config", "", "path to the own-ship producer YAML config")
	addrOverride := pflag.String("addr", "", "override the config's target host:port")
	pflag.Parse()

	log := logging.NewStderr()

	if *configPath == "" {
		log.Fatal("missing --config")
	}
	cfg, err := config.LoadProducerConfig(*configPath)
	if err != nil {
		log.Fatal("loading config", "err", err)
	}
	addr := cfg.Addr
	if *addrOverride != "" {
		addr = *addrOverride
	}

	engine, err := motion.NewEngine(cfg.Route.Positions(), motion.DefaultParams(cfg.Route.MaxSpeedKn))
	if err != nil {
		log.Fatal("building motion engine", "err", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ownShip := producer.NewOwnShip(addr, engine, logging.For(log, "producer"))
	if err := ownShip.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("own-ship producer exited", "err", err)
	}
	fmt.Fprintln(os.Stderr, "# own-ship producer stopped")
}
