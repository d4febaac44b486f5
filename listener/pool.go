// Package listener implements the listener pool: one
// TCP acceptor per configured port-alias, each accepted connection handed
// off to an independent parser handler.
package listener

import (
	"context"
	"fmt"
	"net"

	charmlog "github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/mmcho/nmea-ecdis-sim/navstore"
)

// PortConfig names one acceptor: Alias is the port-alias the profile router
// matches against (e.g. "EPFS1", "AIS1"); Port is the TCP port to bind.
// A zero Port means the alias is configured off and no acceptor is started.
type PortConfig struct {
	Alias string
	Port  int
}

// Pool runs one acceptor per non-zero configured port, routing decoded
// sentences into a shared Store via a Router.
type Pool struct {
	configs []PortConfig
	store   *navstore.Store
	router  *navstore.Router
	log     *charmlog.Logger
}

// NewPool builds a listener pool over the given port configs.
func NewPool(configs []PortConfig, store *navstore.Store, router *navstore.Router, log *charmlog.Logger) *Pool {
	return &Pool{configs: configs, store: store, router: router, log: log}
}

// Run starts one acceptor goroutine per non-zero port and blocks until ctx
// is cancelled or an acceptor hits an unrecoverable error. Shutdown
// unblocks every accept by closing its listening socket.
func (p *Pool) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, cfg := range p.configs {
		cfg := cfg
		if cfg.Port == 0 {
			continue
		}
		g.Go(func() error {
			return p.runAcceptor(ctx, cfg)
		})
	}
	return g.Wait()
}

func (p *Pool) runAcceptor(ctx context.Context, cfg PortConfig) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("listener %s: listen on %d: %w", cfg.Alias, cfg.Port, err)
	}
	setReuseAddr(ln, p.log)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				p.log.Error("listener: accept failed, acceptor exiting", "alias", cfg.Alias, "err", err)
				return err
			}
		}

		h := NewHandler(conn, cfg.Alias, p.store, p.router, p.log)
		go h.Serve(ctx)
	}
}

// setReuseAddr sets SO_REUSEADDR on ln's underlying socket so a restarted
// listener can rebind its port immediately, using golang.org/x/sys/unix
// rather than the deprecated raw syscall constants.
func setReuseAddr(ln net.Listener, log *charmlog.Logger) {
	tcpLn, ok := ln.(*net.TCPListener)
	if !ok {
		return
	}
	raw, err := tcpLn.SyscallConn()
	if err != nil {
		return
	}
	ctrlErr := raw.Control(func(fd uintptr) {
		if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
			log.Debug("listener: SO_REUSEADDR failed", "err", err)
		}
	})
	if ctrlErr != nil {
		log.Debug("listener: SyscallConn control failed", "err", ctrlErr)
	}
}
