// Command ecdis-receiver runs the mini-ECDIS reception side: one TCP
// acceptor per configured sensor port, a profile router federating them
// into a single nav store, and a periodic aging sweep of stale AIS targets.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/mmcho/nmea-ecdis-sim/config"
	"github.com/mmcho/nmea-ecdis-sim/internal/logging"
	"github.com/mmcho/nmea-ecdis-sim/listener"
	"github.com/mmcho/nmea-ecdis-sim/navstore"
)

func main() {
	configPath := pflag.String("config", "", "path to the receiver YAML config")
	pflag.Parse()

	log := logging.NewStderr()

	if *configPath == "" {
		log.Fatal("missing --config")
	}
	cfg, err := config.LoadReceiverConfig(*configPath)
	if err != nil {
		log.Fatal("loading config", "err", err)
	}

	store := navstore.NewStore()
	router := navstore.NewRouter(cfg.NavstoreProfile())
	pool := listener.NewPool(cfg.PortConfigs(), store, router, logging.For(log, "listener"))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return pool.Run(gctx) })
	g.Go(func() error { return runAgingSweep(gctx, store, logging.For(log, "navstore")) })

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		log.Fatal("receiver exited", "err", err)
	}
}

func runAgingSweep(ctx context.Context, store *navstore.Store, log *charmlog.Logger) error {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := store.SweepExpired(now); n > 0 {
				log.Debug("navstore: retired stale targets", "count", n)
			}
		}
	}
}
