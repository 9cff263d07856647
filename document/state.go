package document

import (
	"fmt"
	"log/slog"
)

// AppendFunc runs after a document-changing transaction was applied and may
// return a follow-up transaction built from next. Follow-ups are applied
// without running the hooks again.
type AppendFunc func(applied *Transaction, next *State) *Transaction

type Options struct {
	HistoryLimit int // default: 1000
	Append       []AppendFunc
	Logger       *slog.Logger
}

// State is an immutable-document editing state: the current document,
// selection and version, with undo history and the last change record.
type State struct {
	schema  *Schema
	doc     *Node
	sel     Selection
	version uint64

	opt  Options
	hist historyState

	lastChange    Change
	hasLastChange bool
}

// NewState creates a state for doc with the cursor at the first valid
// position.
func NewState(schema *Schema, doc *Node, opt Options) *State {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	return &State{
		schema: schema,
		doc:    doc,
		sel:    AtStart(doc),
		opt:    opt,
	}
}

func (s *State) Schema() *Schema { return s.schema }

func (s *State) Doc() *Node { return s.doc }

func (s *State) Selection() Selection { return s.sel }

func (s *State) Version() uint64 { return s.version }

// Tx starts a transaction against the current state.
func (s *State) Tx() *Transaction {
	return newTransaction(s.schema, s.doc, s.sel, s.version)
}

// AddAppendFunc registers a hook run after document-changing transactions.
func (s *State) AddAppendFunc(fn AppendFunc) {
	if fn != nil {
		s.opt.Append = append(s.opt.Append, fn)
	}
}

// Apply commits tr. Failed transactions and transactions built against an
// older version are rejected and leave the state untouched.
func (s *State) Apply(tr *Transaction) error {
	if err := s.apply(tr); err != nil {
		return err
	}
	if !tr.DocChanged() {
		return nil
	}
	for _, fn := range s.opt.Append {
		next := fn(tr, s)
		if next == nil || (!next.DocChanged() && !next.SelectionSet()) {
			continue
		}
		if err := s.apply(next); err != nil {
			s.opt.Logger.Debug("append transaction rejected", "error", err)
		}
	}
	return nil
}

func (s *State) apply(tr *Transaction) error {
	if tr == nil {
		return nil
	}
	if tr.err != nil {
		return tr.err
	}
	if tr.base != s.version || tr.before != s.doc {
		return fmt.Errorf("%w: base version %d, current %d", ErrStale, tr.base, s.version)
	}
	nextSel := tr.Selection()
	if !tr.DocChanged() && nextSel == s.sel {
		return nil
	}

	prev := s.snapshot()
	change := s.beginChange(tr)

	s.doc = tr.doc
	s.sel = nextSel
	s.version++
	if tr.DocChanged() {
		if add, ok := tr.Meta(MetaAddToHistory).(bool); !ok || add {
			s.recordUndo(prev)
		}
		s.opt.Logger.Debug("transaction applied", "steps", len(tr.steps), "version", s.version)
	}
	s.commitChange(change, tr)
	return nil
}

// Dispatch applies tr and reports whether it was applied. Failures are
// logged, not returned.
func (s *State) Dispatch(tr *Transaction) bool {
	before := s.version
	if err := s.Apply(tr); err != nil {
		s.opt.Logger.Debug("transaction rejected", "error", err)
		return false
	}
	return s.version != before
}

// SetSelection replaces the selection.
func (s *State) SetSelection(sel Selection) {
	_ = s.Apply(s.Tx().SetSelection(sel))
}
