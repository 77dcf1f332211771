package main

import (
	"context"
	"flag"
	"time"

	"github.com/rs/zerolog"

	"github.com/rowforge/rowforge/internal/app"
	"github.com/rowforge/rowforge/internal/config"
	"github.com/rowforge/rowforge/internal/formatter"
	"github.com/rowforge/rowforge/internal/pipeline"
	"github.com/rowforge/rowforge/internal/publisher"
	"github.com/rowforge/rowforge/internal/schema"
	"github.com/rowforge/rowforge/internal/trail"
)

const serviceName = "rowforge"

func main() {
	configPath := flag.String("config", "rowforge.yaml", "path to the configuration file")
	flag.Parse()

	application, err := initialize(*configPath)
	if err != nil {
		panic(err)
	}

	if err = application.Run(context.Background()); err != nil {
		panic(err)
	}
}

func initialize(configPath string) (*app.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(level)

	provider := schema.NewProvider()

	engine, err := formatter.New(&formatter.Config{
		Options: cfg.Formatter.Options(),
		Schemas: provider,
	})
	if err != nil {
		return nil, err
	}

	reader, err := trail.New(&trail.Config{
		Path: cfg.Trail.Path,
	})
	if err != nil {
		return nil, err
	}

	pub, err := publisher.New(&publisher.Config{
		URL:           cfg.NATS.URL,
		SubjectPrefix: cfg.NATS.SubjectPrefix,
		Encoding:      cfg.NATS.Encoding,
		MaxReconnects: cfg.NATS.MaxReconnects,
		ReconnectWait: cfg.NATS.ReconnectWait,
	})
	if err != nil {
		return nil, err
	}

	pipe, err := pipeline.New(&pipeline.Config{
		Source:       reader,
		Engine:       engine,
		Schemas:      provider,
		Sink:         pub,
		PollInterval: cfg.Trail.PollInterval,
	})
	if err != nil {
		return nil, err
	}

	return app.CreateApp(&app.Config{
		ServiceName: serviceName,
		StopTimeout: 30 * time.Second,
	}, pub, pipe)
}
