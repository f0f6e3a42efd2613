// Package daemon wires the settings namespace to the web service and runs the session lifecycle.
package daemon

import (
	"net"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoSecureSettings/GoSecureSettings/internal/config"
	"github.com/GoSecureSettings/GoSecureSettings/internal/form"
	"github.com/GoSecureSettings/GoSecureSettings/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	storage    *Storage
	webService *web.Service
}

// New opens the settings namespace and builds the web service around a form loaded from it.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	storage, err := OpenStorage(cfg)
	if err != nil {
		return nil, err
	}

	d := &Daemon{cfg: cfg, storage: storage}

	// the session starts before the form snapshot, so the screen shows this access
	if err = storage.Store.StartSession(); err != nil {
		_ = storage.Close()

		return nil, errors.Wrap(err, "failed to start session")
	}

	f, err := form.New(storage.Store)
	if err != nil {
		d.stop()

		return nil, errors.Wrap(err, "failed to load settings")
	}

	d.webService = web.New(cfg, f)

	return d, nil
}

// Addr is the listen address of the web service.
func (d *Daemon) Addr() string {
	return net.JoinHostPort(d.cfg.Webserver.Host, strconv.Itoa(d.cfg.Webserver.Port))
}

// Start serves the settings screen until SIGINT or SIGTERM, then ends the session.
func (d *Daemon) Start() error {
	return d.serve(d.webService.WaitShutdown)
}

// serve runs the web service until it fails to listen or wait returns after stopping it.
// The session ends in both cases.
func (d *Daemon) serve(wait func()) error {
	listenErr := make(chan error, 1)

	go func() {
		listenErr <- d.webService.Start(d.Addr())
	}()

	log.Info().Str("addr", d.Addr()).Msg("settings screen listening")

	shutdown := make(chan struct{})

	go func() {
		wait()
		close(shutdown)
	}()

	var err error

	select {
	case err = <-listenErr:
		if err != nil {
			log.Error().Err(err).Msg("fiber listen error")
		}
	case <-shutdown:
		err = <-listenErr
	}

	d.stop()

	return err
}

// stop ends the session and closes the database.
func (d *Daemon) stop() {
	if err := d.storage.Store.EndSession(); err != nil {
		log.Error().Err(err).Msg("failed to end session")
	}

	if total, err := d.storage.Store.TotalUsageTime(); err == nil {
		log.Info().Str("usage", form.FormatUsage(total)).Msg("session ended")
	}

	if err := d.storage.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}
}
