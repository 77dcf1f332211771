package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// Dependency is a unit of the application lifecycle. Start may block for
// the dependency's whole lifetime; a returned error shuts the app down.
type Dependency interface {
	Start() error
	Stop() error
	// Name identifies the dependency in logs, nothing more.
	Name() string
}

type App struct {
	serviceName string
	deps        []Dependency
	// depFailChan receives the first failure from any dependency.
	depFailChan  chan error
	osSignalChan chan os.Signal
	// runCalled and stopCalled make Run and stop single-shot.
	runCalled   *atomic.Bool
	stopCalled  *atomic.Bool
	stopTimeout time.Duration
}

type Config struct {
	ServiceName string
	StopTimeout time.Duration
}

func (c *Config) validate() error {
	var errs []error
	if c.ServiceName == "" {
		errs = append(errs, errors.New("service name is required"))
	}
	if c.StopTimeout == 0 {
		errs = append(errs, errors.New("stop timeout is required"))
	}
	return errors.Join(errs...)
}

// CreateApp creates a new application with the provided dependencies.
func CreateApp(cfg *Config, deps ...Dependency) (*App, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &App{
		serviceName:  cfg.ServiceName,
		deps:         deps,
		stopTimeout:  cfg.StopTimeout,
		runCalled:    &atomic.Bool{},
		stopCalled:   &atomic.Bool{},
		depFailChan:  make(chan error, len(deps)),
		osSignalChan: make(chan os.Signal, 1),
	}, nil
}

// Run starts every dependency in its own goroutine and blocks until the
// context is cancelled, a dependency fails, or the OS signals shutdown.
func (a *App) Run(ctx context.Context) error {
	if a.runCalled.Swap(true) {
		return errors.New("run has already been called")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer func() {
		close(a.depFailChan)
		close(a.osSignalChan)
		cancel()
	}()

	for _, dep := range a.deps {
		go func(dep Dependency) {
			defer func() {
				if r := recover(); r != nil {
					a.depFailChan <- fmt.Errorf("panic in Start() for dependency %s: %v", dep.Name(), r)
				}
			}()

			log.Info().Str("service", a.serviceName).Msg("starting dependency: " + dep.Name())
			if err := dep.Start(); err != nil {
				a.depFailChan <- fmt.Errorf("failure in Start() for dependency %s: %w", dep.Name(), err)
			}
		}(dep)
	}

	signal.Notify(a.osSignalChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-runCtx.Done():
		log.Info().Msg("context cancelled: shutting down")
	case depErr := <-a.depFailChan:
		log.Error().Err(depErr).Msg("dependency failed")
	case sig := <-a.osSignalChan:
		log.Info().Str("signal", sig.String()).Msg("OS signal received, shutdown beginning")
	}

	signal.Stop(a.osSignalChan)
	if err := a.stop(); err != nil {
		log.Error().Err(err).Msg("error stopping application")
		return err
	}
	return nil
}

// stop shuts dependencies down in reverse start order, bounded by the
// configured stop timeout.
func (a *App) stop() error {
	if a.stopCalled.Swap(true) {
		return errors.New("stop has already been called")
	}

	ctxTo, cancel := context.WithTimeout(context.Background(), a.stopTimeout)
	defer cancel()

	var errs []error
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := len(a.deps) - 1; i >= 0; i-- {
			dep := a.deps[i]
			log.Info().Msg("stopping dependency: " + dep.Name())
			if err := dep.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("failure in Stop() for dependency %s: %w", dep.Name(), err))
			}
		}
	}()

	select {
	case <-done:
	case <-ctxTo.Done():
		errs = append(errs, ctxTo.Err())
	}
	return errors.Join(errs...)
}
