package trail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/rowforge/rowforge/internal/cdc"
)

// Entry kinds. A trail file is a sequence of newline-delimited JSON
// envelopes: table metadata definitions, row operations, and DDL events.
const (
	KindMeta = "meta"
	KindOp   = "op"
	KindDDL  = "ddl"
)

// Entry is one decoded trail envelope. Exactly one of Meta, Op, DDL is set,
// matching Kind.
type Entry struct {
	Kind string             `json:"kind"`
	Meta *cdc.TableMetadata `json:"meta,omitempty"`
	Op   *cdc.Operation     `json:"op,omitempty"`
	DDL  *cdc.DDLEvent      `json:"ddl,omitempty"`
}

func (e *Entry) validate() error {
	switch e.Kind {
	case KindMeta:
		if e.Meta == nil {
			return errors.New("meta entry without table metadata")
		}
	case KindOp:
		if e.Op == nil {
			return errors.New("op entry without operation")
		}
	case KindDDL:
		if e.DDL == nil {
			return errors.New("ddl entry without event")
		}
	default:
		return fmt.Errorf("unknown entry kind: %q", e.Kind)
	}
	return nil
}

// Reader reads trail entries sequentially from a single trail file. It
// reports io.EOF at the current end of file; callers tailing a live trail
// poll again later. Malformed lines are skipped with a warning, matching
// capture-side crash semantics where a torn last line is expected.
type Reader struct {
	mu     sync.Mutex
	name   string
	file   *os.File
	buf    *bufio.Reader
	offset int64
}

type Config struct {
	// Path of the trail file to read.
	Path string
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Path == "" {
		errGrp = append(errGrp, errors.New("trail path cannot be empty"))
	}
	return errors.Join(errGrp...)
}

func New(cfg *Config) (*Reader, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	file, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trail file: %w", err)
	}

	return &Reader{
		name: filepath.Base(cfg.Path),
		file: file,
		buf:  bufio.NewReader(file),
	}, nil
}

// Read returns the next entry, or io.EOF at the current end of the trail.
// Operations without a position token get one assigned from the entry's
// byte offset in the trail.
func (r *Reader) Read() (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		start := r.offset
		line, err := r.buf.ReadBytes('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				// A torn line without its newline is left for the next
				// poll; rewind so it is re-read in full.
				if len(line) > 0 {
					if _, serr := r.file.Seek(start, io.SeekStart); serr != nil {
						return nil, serr
					}
					r.buf.Reset(r.file)
				}
				return nil, io.EOF
			}
			return nil, err
		}
		r.offset += int64(len(line))

		if len(line) <= 1 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			log.Warn().Str("trail", r.name).Int64("offset", start).Err(err).
				Msg("skipping malformed trail entry")
			continue
		}
		if err := entry.validate(); err != nil {
			log.Warn().Str("trail", r.name).Int64("offset", start).Err(err).
				Msg("skipping invalid trail entry")
			continue
		}

		if entry.Kind == KindOp && entry.Op.Position == "" {
			entry.Op.Position = fmt.Sprintf("%s:%d", r.name, start)
		}
		return &entry, nil
	}
}

// Position is the token naming the next unread byte of the trail.
func (r *Reader) Position() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("%s:%d", r.name, r.offset)
}

func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
