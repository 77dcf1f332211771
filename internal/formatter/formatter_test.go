package formatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rowforge/rowforge/internal/cdc"
	"github.com/rowforge/rowforge/internal/schema"
)

func customerMeta() *cdc.TableMetadata {
	return &cdc.TableMetadata{
		Name: "ACCT.CUSTOMER",
		Columns: []cdc.ColumnMetadata{
			{Name: "id", Type: cdc.TypeInteger, Key: true},
			{Name: "name", Type: cdc.TypeVarchar},
			{Name: "balance", Type: cdc.TypeNumeric},
			{Name: "active", Type: cdc.TypeBoolean},
		},
	}
}

func newTestManager(t *testing.T, opts Options) *Manager {
	t.Helper()

	m, err := New(&Config{Options: opts, Schemas: schema.NewProvider()})
	require.NoError(t, err)
	m.nowMs = func() int64 { return 1700000000000 }
	return m
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("empty config", func(t *testing.T) {
		t.Parallel()
		got, err := New(&Config{})
		require.Error(t, err)
		require.Nil(t, got)
	})

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		got, err := New(&Config{Options: DefaultOptions(), Schemas: schema.NewProvider()})
		require.NoError(t, err)
		require.NotNil(t, got)
	})
}

func TestManager_Format_Insert(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	m := newTestManager(t, DefaultOptions())
	op := &cdc.Operation{
		Type:      cdc.OpInsert,
		Table:     "ACCT.CUSTOMER",
		Timestamp: "2024-06-01 12:00:00.000000",
		Position:  "trail:42",
		Columns: []cdc.ColumnChange{
			{After: strVal("7")},
			{After: strVal("alice")},
			{After: strVal("3.14159265358979323846")},
			{After: strVal("true")},
		},
	}

	var out FormattedData
	req.NoError(m.Format(op, customerMeta(), &out))
	req.Nil(out.Secondary)

	rec := out.Primary.Record
	req.Equal("ACCT.CUSTOMER", rec.Table)
	req.Equal("I", rec.OpType)
	req.Equal("2024-06-01 12:00:00.000000", rec.OpTimestamp)
	req.Equal("trail:42", rec.Position)
	req.NotEmpty(rec.CurrentTimestamp)
	req.Nil(rec.Before)
	req.Equal(Row{
		"id":      int32(7),
		"name":    "alice",
		"balance": 3.1415926535897931,
		"active":  true,
	}, rec.After)

	req.Equal("CUSTOMER", rec.Source.Entity)
	req.True(rec.Source.IsIncrement)
	req.False(rec.Source.SnapshotLast)
	req.Zero(rec.Source.OffsetTotalSize)
	req.Zero(rec.Source.OffsetIndex)

	req.Equal(Row{"id": int32(7)}, out.Primary.Key)
}

func TestManager_Format_Delete(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	m := newTestManager(t, DefaultOptions())
	op := &cdc.Operation{
		Type:  cdc.OpDelete,
		Table: "ACCT.CUSTOMER",
		Columns: []cdc.ColumnChange{
			{Before: strVal("7")},
			{Before: strVal("alice")},
			{Before: strVal("100.5")},
			{Before: strVal("false")},
		},
	}

	var out FormattedData
	req.NoError(m.Format(op, customerMeta(), &out))
	req.Nil(out.Secondary)

	rec := out.Primary.Record
	req.Equal("D", rec.OpType)
	req.Nil(rec.After)
	req.Equal(Row{
		"id":      int32(7),
		"name":    "alice",
		"balance": 100.5,
		"active":  false,
	}, rec.Before)
	req.Equal(Row{"id": int32(7)}, out.Primary.Key)
}

func TestManager_Format_Update(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	m := newTestManager(t, DefaultOptions())
	// Before values are present on the operation; a plain update still
	// emits only the after block.
	op := &cdc.Operation{
		Type:  cdc.OpUpdate,
		Table: "ACCT.CUSTOMER",
		Columns: []cdc.ColumnChange{
			{Before: strVal("7"), After: strVal("7")},
			{Before: strVal("alice"), After: strVal("bob")},
			{Before: strVal("1"), After: strVal("2")},
			{Before: strVal("true"), After: nullVal()},
		},
	}

	var out FormattedData
	req.NoError(m.Format(op, customerMeta(), &out))
	req.Nil(out.Secondary)

	rec := out.Primary.Record
	req.Equal("U", rec.OpType)
	req.Nil(rec.Before)
	// active is explicitly NULL after the change: omitted, just as an
	// uncaptured column would be.
	req.Equal(Row{"id": int32(7), "name": "bob", "balance": float64(2)}, rec.After)
	req.Equal(Row{"id": int32(7)}, out.Primary.Key)
}

func TestManager_Format_PkUpdate(t *testing.T) {
	t.Parallel()

	pkOp := func() *cdc.Operation {
		return &cdc.Operation{
			Type:     cdc.OpPkUpdate,
			Table:    "ACCT.CUSTOMER",
			Position: "trail:99",
			Columns: []cdc.ColumnChange{
				{Before: strVal("7"), After: strVal("8")},
				{Before: strVal("alice"), After: strVal("alice")},
				{Before: strVal("1"), After: strVal("1")},
				{Before: strVal("true"), After: strVal("true")},
			},
		}
	}

	t.Run("abend handling yields no output", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		m := newTestManager(t, DefaultOptions())
		var out FormattedData
		err := m.Format(pkOp(), customerMeta(), &out)
		req.ErrorIs(err, ErrAbend)
		req.Nil(out.Primary.Record)
		req.Nil(out.Secondary)
	})

	t.Run("update handling forces a normal update", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		opts := DefaultOptions()
		opts.PkHandling = PkUpdate
		m := newTestManager(t, opts)

		var out FormattedData
		req.NoError(m.Format(pkOp(), customerMeta(), &out))
		req.Nil(out.Secondary)
		req.Equal("U", out.Primary.Record.OpType)
		req.Nil(out.Primary.Record.Before)
		req.Equal(Row{"id": int32(8)}, out.Primary.Key)
	})

	t.Run("delete-insert handling splits into two pairs", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		opts := DefaultOptions()
		opts.PkHandling = PkDeleteInsert
		m := newTestManager(t, opts)

		var out FormattedData
		req.NoError(m.Format(pkOp(), customerMeta(), &out))
		req.NotNil(out.Secondary)

		first, second := out.Primary, *out.Secondary
		req.Equal("D", first.Record.OpType)
		req.NotNil(first.Record.Before)
		req.Nil(first.Record.After)
		req.Equal(Row{"id": int32(7)}, first.Key)

		req.Equal("I", second.Record.OpType)
		req.Nil(second.Record.Before)
		req.NotNil(second.Record.After)
		req.Equal(Row{"id": int32(8)}, second.Key)

		// Both emissions share the metadata template.
		req.Equal(first.Record.Table, second.Record.Table)
		req.Equal(first.Record.Position, second.Record.Position)
		req.Equal("trail:99", first.Record.Position)
	})
}

func TestManager_Format_NoKeyColumns(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	meta := &cdc.TableMetadata{
		Name: "LOG.EVENTS",
		Columns: []cdc.ColumnMetadata{
			{Name: "msg", Type: cdc.TypeVarchar},
		},
	}
	m := newTestManager(t, DefaultOptions())

	var out FormattedData
	op := &cdc.Operation{
		Type:    cdc.OpInsert,
		Table:   "LOG.EVENTS",
		Columns: []cdc.ColumnChange{{After: strVal("hello")}},
	}
	req.NoError(m.Format(op, meta, &out))
	req.Nil(out.Primary.Key)
	req.Equal(Row{"msg": "hello"}, out.Primary.Record.After)
}

func TestManager_Format_CoercionFailureYieldsNothing(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	m := newTestManager(t, DefaultOptions())
	op := &cdc.Operation{
		Type:  cdc.OpInsert,
		Table: "ACCT.CUSTOMER",
		Columns: []cdc.ColumnChange{
			{After: strVal("not-an-int")},
		},
	}

	var out FormattedData
	err := m.Format(op, customerMeta(), &out)
	req.ErrorIs(err, ErrCoerce)
	req.Nil(out.Primary.Record)
	req.Nil(out.Secondary)
}

func TestManager_Format_RepeatDiffersOnlyInCurrentTimestamp(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	m := newTestManager(t, DefaultOptions())
	op := &cdc.Operation{
		Type:     cdc.OpInsert,
		Table:    "ACCT.CUSTOMER",
		Position: "trail:7",
		Columns: []cdc.ColumnChange{
			{After: strVal("1")},
			{After: strVal("x")},
			{After: strVal("2.5")},
			{After: strVal("true")},
		},
	}

	var first, second FormattedData
	req.NoError(m.Format(op, customerMeta(), &first))
	req.NoError(m.Format(op, customerMeta(), &second))

	a, b := first.Primary.Record, second.Primary.Record
	req.NotEqual(a.CurrentTimestamp, b.CurrentTimestamp)

	b.CurrentTimestamp = a.CurrentTimestamp
	req.Equal(a, b)
	req.Equal(first.Primary.Key, second.Primary.Key)
}

func TestManager_Format_OptionalExtensions(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	opts := DefaultOptions()
	opts.IncludePrimaryKeys = true
	opts.IncludeTokens = true
	m := newTestManager(t, opts)

	op := &cdc.Operation{
		Type:   cdc.OpInsert,
		Table:  "ACCT.CUSTOMER",
		Tokens: map[string]string{"txid": "0xBEEF"},
		Columns: []cdc.ColumnChange{
			{After: strVal("1")},
		},
	}

	var out FormattedData
	req.NoError(m.Format(op, customerMeta(), &out))
	req.Equal([]string{"id"}, out.Primary.Record.PrimaryKeys)
	req.Equal(map[string]string{"txid": "0xBEEF"}, out.Primary.Record.Tokens)

	// Without tokens on the operation the map is still present, just empty.
	op.Tokens = nil
	req.NoError(m.Format(op, customerMeta(), &out))
	req.NotNil(out.Primary.Record.Tokens)
	req.Empty(out.Primary.Record.Tokens)
}

func TestManager_Format_TreatAllColumnsAsStrings(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	opts := DefaultOptions()
	opts.TreatAllColumnsAsStrings = true
	m := newTestManager(t, opts)

	op := &cdc.Operation{
		Type:  cdc.OpInsert,
		Table: "ACCT.CUSTOMER",
		Columns: []cdc.ColumnChange{
			{After: strVal("7")},
			{After: strVal("alice")},
			{After: strVal("3.5")},
			{After: strVal("true")},
		},
	}

	var out FormattedData
	req.NoError(m.Format(op, customerMeta(), &out))
	req.Equal(Row{
		"id":      "7",
		"name":    "alice",
		"balance": "3.5",
		"active":  "true",
	}, out.Primary.Record.After)
	req.Equal(Row{"id": "7"}, out.Primary.Key)
}

func TestManager_Format_SchemaLookupFailure(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	ctrl := gomock.NewController(t)
	schemas := NewMockschemaProvider(ctrl)
	m, err := New(&Config{Options: DefaultOptions(), Schemas: schemas})
	req.NoError(err)

	schemas.EXPECT().Get("ACCT.CUSTOMER", gomock.Any()).
		Return(nil, errors.New("schema build failed"))

	op := &cdc.Operation{
		Type:    cdc.OpInsert,
		Table:   "ACCT.CUSTOMER",
		Columns: []cdc.ColumnChange{{After: strVal("1")}},
	}
	var out FormattedData
	err = m.Format(op, customerMeta(), &out)
	req.Error(err)
	req.Contains(err.Error(), "schema build failed")
}

func TestManager_HandleDDL(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	provider := schema.NewProvider()
	m, err := New(&Config{Options: DefaultOptions(), Schemas: provider})
	req.NoError(err)

	meta := customerMeta()
	before, err := provider.Get(meta.Name, meta)
	req.NoError(err)

	m.HandleDDL(&cdc.DDLEvent{ObjectType: "table", ObjectName: meta.Name, Text: "ALTER TABLE ..."})

	after, err := provider.Get(meta.Name, meta)
	req.NoError(err)
	req.NotSame(before, after)
}
