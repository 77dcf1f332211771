package schema

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/rowforge/rowforge/internal/cdc"
)

// Field is one named, typed slot of a derived shape.
type Field struct {
	Name string
	Type cdc.DataType
}

// Shape is the structural description of a record block, derived from table
// metadata. Field order follows column declaration order.
type Shape struct {
	Name   string
	Fields []Field
}

// TableSchemas carries the derived shapes and Avro codecs for one table.
// Key is nil when the table declares no key columns.
type TableSchemas struct {
	Value *Shape
	Key   *Shape

	rowName    string
	valueCodec *codecHolder
	keyCodec   *codecHolder
}

// RowName is the Avro type name of the before/after row record. Publishers
// need it to wrap row values into the nullable union.
func (t *TableSchemas) RowName() string {
	return t.rowName
}

// Provider derives and caches per-table schemas. Construction is memoized:
// concurrent first requests for the same table build the shapes at most
// once. Drop removes a table's entry; there is no other eviction.
type Provider struct {
	mu     sync.Mutex
	tables map[string]*entry
}

type entry struct {
	once    sync.Once
	schemas *TableSchemas
	err     error
}

func NewProvider() *Provider {
	return &Provider{tables: make(map[string]*entry)}
}

// Get returns the cached schemas for the table, building them on first use.
func (p *Provider) Get(table string, meta *cdc.TableMetadata) (*TableSchemas, error) {
	p.mu.Lock()
	e, ok := p.tables[table]
	if !ok {
		e = &entry{}
		p.tables[table] = e
	}
	p.mu.Unlock()

	e.once.Do(func() {
		e.schemas, e.err = build(table, meta)
		if e.err == nil {
			log.Debug().Str("table", table).Msg("derived table schemas")
		}
	})
	return e.schemas, e.err
}

// Drop invalidates the cached schemas for the named object. Subsequent Get
// calls rebuild from whatever metadata they are handed.
func (p *Provider) Drop(objectName string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.tables, objectName)
}

func build(table string, meta *cdc.TableMetadata) (*TableSchemas, error) {
	value := &Shape{
		Name:   table,
		Fields: make([]Field, 0, len(meta.Columns)),
	}
	var key *Shape
	for _, col := range meta.Columns {
		f := Field{Name: col.Name, Type: col.Type}
		value.Fields = append(value.Fields, f)
		if col.Key {
			if key == nil {
				key = &Shape{Name: table + "_key"}
			}
			key.Fields = append(key.Fields, f)
		}
	}

	ts := &TableSchemas{
		Value:   value,
		Key:     key,
		rowName: AvroName(table) + "_row",
	}
	ts.valueCodec = newCodecHolder(func() (string, error) {
		return envelopeSchema(table, value.Fields)
	})
	if key != nil {
		ts.keyCodec = newCodecHolder(func() (string, error) {
			return keySchema(table, key.Fields)
		})
	}
	return ts, nil
}
