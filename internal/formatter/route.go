package formatter

import (
	"github.com/rowforge/rowforge/internal/cdc"
)

// emissionKind is the effective operation type of one output record. For a
// primary key update handled as update or delete-insert, the effective kind
// differs from the operation's own type.
type emissionKind int

const (
	kindInsert emissionKind = iota
	kindUpdate
	kindDelete
)

// emission is one planned output record: which op key it carries and which
// side of the captured values fills its payload and key blocks.
type emission struct {
	kind emissionKind
	side side
}

// plan classifies the operation and applies the configured primary key
// update handling. It returns one emission for plain operations, two for a
// split primary key update, and an abend error otherwise. Pure decision
// logic; no side effects.
func (m *Manager) plan(op *cdc.Operation) ([]emission, error) {
	switch {
	case op.Type.IsInsert():
		return []emission{{kind: kindInsert, side: sideAfter}}, nil

	case op.Type.IsDelete():
		return []emission{{kind: kindDelete, side: sideBefore}}, nil

	case op.Type.IsPkUpdate():
		switch m.opts.PkHandling {
		case PkUpdate:
			return []emission{{kind: kindUpdate, side: sideAfter}}, nil
		case PkDeleteInsert:
			return []emission{
				{kind: kindDelete, side: sideBefore},
				{kind: kindInsert, side: sideAfter},
			}, nil
		default:
			return nil, newError(ErrAbend,
				"primary key update on table %s while handling is configured to abend", op.Table)
		}

	case op.Type.IsUpdate():
		// A plain update carries only after values. Before values may be
		// present on the operation but are not emitted.
		return []emission{{kind: kindUpdate, side: sideAfter}}, nil

	default:
		return nil, newError(ErrAbend, "unknown operation type %s on table %s", op.Type, op.Table)
	}
}

func (m *Manager) opKey(k emissionKind) string {
	switch k {
	case kindInsert:
		return m.opts.InsertOpKey
	case kindDelete:
		return m.opts.DeleteOpKey
	default:
		return m.opts.UpdateOpKey
	}
}
