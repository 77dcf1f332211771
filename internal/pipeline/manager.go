package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rowforge/rowforge/internal/cdc"
	"github.com/rowforge/rowforge/internal/formatter"
	"github.com/rowforge/rowforge/internal/schema"
	"github.com/rowforge/rowforge/internal/trail"
)

//go:generate mockgen -destination=manager_mock.go -package=pipeline -source=manager.go

type source interface {
	Read() (*trail.Entry, error)
	Position() string
	Close() error
}

type engine interface {
	Format(op *cdc.Operation, meta *cdc.TableMetadata, out *formatter.FormattedData) error
	HandleDDL(ev *cdc.DDLEvent)
}

type schemaProvider interface {
	Get(table string, meta *cdc.TableMetadata) (*schema.TableSchemas, error)
}

type sink interface {
	Publish(data *formatter.FormattedData, schemas *schema.TableSchemas) error
}

// Manager drives the apply loop: trail entries in, formatted records out.
// Formatting failures abend the pipeline; restart policy belongs to the
// operator, not this process.
type Manager struct {
	source       source
	engine       engine
	schemas      schemaProvider
	sink         sink
	pollInterval time.Duration

	tables map[string]*cdc.TableMetadata

	procCtx    context.Context
	procCancel context.CancelFunc
}

type Config struct {
	Source  source
	Engine  engine
	Schemas schemaProvider
	Sink    sink
	// PollInterval is the wait between polls at the end of the trail.
	PollInterval time.Duration
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Source == nil {
		errGrp = append(errGrp, errors.New("source cannot be nil"))
	}
	if c.Engine == nil {
		errGrp = append(errGrp, errors.New("formatting engine cannot be nil"))
	}
	if c.Schemas == nil {
		errGrp = append(errGrp, errors.New("schema provider cannot be nil"))
	}
	if c.Sink == nil {
		errGrp = append(errGrp, errors.New("sink cannot be nil"))
	}
	return errors.Join(errGrp...)
}

// New creates a new pipeline manager
func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		source:       cfg.Source,
		engine:       cfg.Engine,
		schemas:      cfg.Schemas,
		sink:         cfg.Sink,
		pollInterval: interval,
		tables:       make(map[string]*cdc.TableMetadata),
		procCtx:      ctx,
		procCancel:   cancel,
	}, nil
}

// Start runs the apply loop until the trail close, a fatal error, or Stop.
// It blocks; the app runner owns the goroutine.
func (m *Manager) Start() error {
	for {
		select {
		case <-m.procCtx.Done():
			return nil
		default:
		}

		entry, err := m.source.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				select {
				case <-m.procCtx.Done():
					return nil
				case <-time.After(m.pollInterval):
				}
				continue
			}
			return fmt.Errorf("trail read failed: %w", err)
		}

		if err := m.apply(entry); err != nil {
			return err
		}
	}
}

func (m *Manager) Stop() error {
	if m.procCancel != nil {
		m.procCancel()
	}
	return m.source.Close()
}

func (m *Manager) Name() string {
	return "CDC Pipeline"
}

// apply dispatches one trail entry. Table metadata definitions are cached
// for subsequent operations; DDL drops the matching cached schema.
func (m *Manager) apply(entry *trail.Entry) error {
	switch entry.Kind {
	case trail.KindMeta:
		m.tables[entry.Meta.Name] = entry.Meta
		log.Debug().Str("table", entry.Meta.Name).Msg("table metadata registered")
		return nil

	case trail.KindDDL:
		m.engine.HandleDDL(entry.DDL)
		return nil

	case trail.KindOp:
		return m.applyOp(entry.Op)

	default:
		// Trail readers validate kinds before handing entries over.
		return fmt.Errorf("unroutable trail entry kind: %q", entry.Kind)
	}
}

func (m *Manager) applyOp(op *cdc.Operation) error {
	meta, ok := m.tables[op.Table]
	if !ok {
		return fmt.Errorf("no metadata registered for table %s at %s", op.Table, op.Position)
	}

	var out formatter.FormattedData
	if err := m.engine.Format(op, meta, &out); err != nil {
		return fmt.Errorf("formatting aborted at %s: %w", op.Position, err)
	}

	schemas, err := m.schemas.Get(op.Table, meta)
	if err != nil {
		return fmt.Errorf("schema lookup failed for table %s: %w", op.Table, err)
	}

	if err := m.sink.Publish(&out, schemas); err != nil {
		return fmt.Errorf("publish failed at %s: %w", op.Position, err)
	}
	return nil
}
