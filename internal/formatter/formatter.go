package formatter

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rowforge/rowforge/internal/cdc"
	"github.com/rowforge/rowforge/internal/schema"
)

//go:generate mockgen -destination=formatter_mock.go -package=formatter -source=formatter.go

type schemaProvider interface {
	Get(table string, meta *cdc.TableMetadata) (*schema.TableSchemas, error)
	Drop(objectName string)
}

// Row is one before or after payload block: column name to typed value.
// Columns that were absent or explicitly NULL on the selected side carry no
// entry at all.
type Row map[string]any

// SourceInfo is the per-record bookkeeping block. The offset fields are
// placeholders for streaming-offset tracking and are not computed from real
// state yet.
type SourceInfo struct {
	Entity          string `json:"entity"`
	IsIncrement     bool   `json:"is_increment"`
	SnapshotLast    bool   `json:"snapshot_last"`
	OffsetTotalSize int64  `json:"offset_total_size"`
	OffsetIndex     int64  `json:"offset_index"`
	CaptureTS       int64  `json:"binlog_ts"`
}

// Record is one formatted output record. Exactly one of Before/After is set,
// matching the side the emission plan selected.
type Record struct {
	Table            string            `json:"table"`
	OpType           string            `json:"op_type"`
	OpTimestamp      string            `json:"op_ts"`
	CurrentTimestamp string            `json:"current_ts"`
	Position         string            `json:"pos"`
	PrimaryKeys      []string          `json:"primary_keys,omitempty"`
	Tokens           map[string]string `json:"tokens,omitempty"`
	Source           *SourceInfo       `json:"source"`
	Before           Row               `json:"before,omitempty"`
	After            Row               `json:"after,omitempty"`
}

// Pair is one (record, key) emission. Key is nil for tables without key
// columns.
type Pair struct {
	Record *Record
	Key    Row
}

// FormattedData is the caller-owned result of formatting one operation. The
// primary pair is always populated on success; Secondary only when a primary
// key update was split into a delete and an insert.
type FormattedData struct {
	Primary   Pair
	Secondary *Pair
}

// Manager is the operation formatting engine. It is safe for concurrent use:
// all state besides the schema cache and the timestamp source is immutable.
type Manager struct {
	opts    Options
	schemas schemaProvider
	clock   *timestampSource
	nowMs   func() int64 // capture-time millis, swappable for tests
}

type Config struct {
	Options Options
	Schemas schemaProvider
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Schemas == nil {
		errGrp = append(errGrp, errors.New("schema provider cannot be nil"))
	}
	if c.Options.InsertOpKey == "" || c.Options.UpdateOpKey == "" || c.Options.DeleteOpKey == "" {
		errGrp = append(errGrp, errors.New("operation keys cannot be empty"))
	}
	return errors.Join(errGrp...)
}

// New creates a new formatting engine.
func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Manager{
		opts:    cfg.Options,
		schemas: cfg.Schemas,
		clock:   newTimestampSource(cfg.Options.ISO8601Timestamps),
		nowMs:   func() int64 { return time.Now().UnixMilli() },
	}, nil
}

// Format converts one operation into one or two (record, key) pairs in out.
// Any abend or coercion failure is logged with the table and operation type
// and returned with no output set; the caller owns restart policy.
func (m *Manager) Format(op *cdc.Operation, meta *cdc.TableMetadata, out *FormattedData) error {
	out.Primary = Pair{}
	out.Secondary = nil

	tuples, err := meta.Zip(op)
	if err != nil {
		return m.failed(op, err)
	}

	schemas, err := m.schemas.Get(op.Table, meta)
	if err != nil {
		return m.failed(op, err)
	}

	plan, err := m.plan(op)
	if err != nil {
		return m.failed(op, err)
	}

	pairs := make([]Pair, 0, len(plan))
	for _, em := range plan {
		pair, err := m.assemble(op, meta, tuples, schemas, em)
		if err != nil {
			return m.failed(op, err)
		}
		pairs = append(pairs, pair)
	}

	out.Primary = pairs[0]
	if len(pairs) > 1 {
		out.Secondary = &pairs[1]
	}
	return nil
}

// HandleDDL reacts to a schema change by dropping the cached shape for the
// named object. The next operation on that table rebuilds it.
func (m *Manager) HandleDDL(ev *cdc.DDLEvent) {
	log.Info().
		Str("object", ev.ObjectName).
		Str("object_type", ev.ObjectType).
		Msg("DDL received, dropping cached schema")
	m.schemas.Drop(ev.ObjectName)
}

// assemble executes one planned emission against the operation.
func (m *Manager) assemble(op *cdc.Operation, meta *cdc.TableMetadata,
	tuples []cdc.ColumnTuple, schemas *schema.TableSchemas, em emission) (Pair, error) {

	rec := &Record{
		Table:            op.Table,
		OpType:           m.opKey(em.kind),
		OpTimestamp:      op.Timestamp,
		CurrentTimestamp: m.clock.next(),
		Position:         op.Position,
		Source: &SourceInfo{
			Entity:       meta.ShortName(),
			IsIncrement:  true,
			SnapshotLast: false,
			CaptureTS:    m.nowMs(),
		},
	}

	if m.opts.IncludePrimaryKeys {
		keys := make([]string, 0, len(meta.Columns))
		for _, col := range meta.KeyColumns() {
			keys = append(keys, col.Name)
		}
		rec.PrimaryKeys = keys
	}
	if m.opts.IncludeTokens {
		// Always a map, even when the operation carries no tokens.
		rec.Tokens = make(map[string]string, len(op.Tokens))
		for k, v := range op.Tokens {
			rec.Tokens[k] = v
		}
	}

	row, err := projectRow(tuples, em.side, m.opts.TreatAllColumnsAsStrings)
	if err != nil {
		return Pair{}, err
	}
	if em.side == sideBefore {
		rec.Before = row
	} else {
		rec.After = row
	}

	pair := Pair{Record: rec}
	if schemas.Key != nil {
		pair.Key, err = projectKey(tuples, em.side, m.opts.TreatAllColumnsAsStrings)
		if err != nil {
			return Pair{}, err
		}
	}
	return pair, nil
}

func (m *Manager) failed(op *cdc.Operation, err error) error {
	log.Error().
		Str("table", op.Table).
		Str("op_type", op.Type.String()).
		Err(err).
		Msg("operation formatting failed")
	return err
}
