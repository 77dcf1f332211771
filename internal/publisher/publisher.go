package publisher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/rowforge/rowforge/internal/formatter"
	"github.com/rowforge/rowforge/internal/schema"
)

// Payload encodings.
const (
	EncodingJSON = "json"
	EncodingAvro = "avro"
)

const keyHeader = "Rowforge-Key"

// Manager publishes formatted records to NATS. Each record goes to
// <subject prefix>.<table>, carries a fresh Nats-Msg-Id for downstream
// dedupe, and its key block JSON-encoded in a header for partitioning.
type Manager struct {
	conn          *nats.Conn
	subjectPrefix string
	encoding      string
}

type Config struct {
	URL           string
	SubjectPrefix string
	// Encoding is "json" or "avro". Avro payloads are single-record OCF
	// blocks, self-describing via the embedded schema.
	Encoding      string
	MaxReconnects int
	ReconnectWait time.Duration
}

func (c *Config) validate() error {
	var errGrp []error
	if c.URL == "" {
		errGrp = append(errGrp, errors.New("nats url cannot be empty"))
	}
	if c.SubjectPrefix == "" {
		errGrp = append(errGrp, errors.New("subject prefix cannot be empty"))
	}
	if c.Encoding != EncodingJSON && c.Encoding != EncodingAvro {
		errGrp = append(errGrp, fmt.Errorf("unknown encoding: %q", c.Encoding))
	}
	return errors.Join(errGrp...)
}

func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Info().Str("url", cfg.URL).Msg("connected to NATS")

	return &Manager{
		conn:          conn,
		subjectPrefix: cfg.SubjectPrefix,
		encoding:      cfg.Encoding,
	}, nil
}

func (m *Manager) Start() error {
	return m.conn.Flush()
}

func (m *Manager) Stop() error {
	if m.conn != nil {
		m.conn.Close()
	}
	return nil
}

func (m *Manager) Name() string {
	return "NATS Publisher"
}

// Publish sends the primary pair and, for a split primary key update, the
// secondary pair. The two messages are independent; there is no
// exactly-once or transactional guarantee.
func (m *Manager) Publish(data *formatter.FormattedData, schemas *schema.TableSchemas) error {
	if err := m.publishPair(data.Primary, schemas); err != nil {
		return err
	}
	if data.Secondary != nil {
		return m.publishPair(*data.Secondary, schemas)
	}
	return nil
}

func (m *Manager) publishPair(pair formatter.Pair, schemas *schema.TableSchemas) error {
	payload, err := m.encode(pair.Record, schemas)
	if err != nil {
		return err
	}

	msg := nats.NewMsg(m.subject(pair.Record.Table))
	msg.Header.Set(nats.MsgIdHdr, uuid.NewString())
	msg.Data = payload

	if pair.Key != nil {
		keyData, err := encodeKey(pair.Key)
		if err != nil {
			return err
		}
		msg.Header.Set(keyHeader, string(keyData))
	}

	if err := m.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", msg.Subject, err)
	}
	log.Debug().
		Str("subject", msg.Subject).
		Str("op_type", pair.Record.OpType).
		Msg("published record")
	return nil
}

func (m *Manager) subject(table string) string {
	return m.subjectPrefix + "." + strings.ToLower(table)
}

func (m *Manager) encode(rec *formatter.Record, schemas *schema.TableSchemas) ([]byte, error) {
	if m.encoding == EncodingAvro {
		return encodeAvro(rec, schemas)
	}
	return encodeJSON(rec)
}
