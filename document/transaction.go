package document

// Transaction accumulates steps against an evolving copy of a document. It
// never touches the State it was created from; State.Apply commits it.
//
// Builder methods record the first failure and turn every later call into a
// no-op, so a chain of edits either applies completely or not at all.
type Transaction struct {
	schema  *Schema
	base    uint64
	before  *Node
	doc     *Node
	steps   []Step
	docs    []*Node
	mapping Mapping

	sel        Selection
	selMapFrom int
	selSet     bool

	meta map[string]any
	err  error
}

func newTransaction(schema *Schema, doc *Node, sel Selection, version uint64) *Transaction {
	return &Transaction{schema: schema, base: version, before: doc, doc: doc, sel: sel}
}

// NewTransaction starts a detached transaction over doc. It is useful for
// computing edits without a State; State.Apply rejects it unless its base
// version matches.
func NewTransaction(schema *Schema, doc *Node, sel Selection) *Transaction {
	return newTransaction(schema, doc, sel, 0)
}

func (tr *Transaction) Schema() *Schema { return tr.schema }

// Doc returns the document with every step so far applied.
func (tr *Transaction) Doc() *Node { return tr.doc }

// Before returns the document the transaction started from.
func (tr *Transaction) Before() *Node { return tr.before }

func (tr *Transaction) Steps() []Step { return append([]Step(nil), tr.steps...) }

func (tr *Transaction) Mapping() Mapping { return tr.mapping }

func (tr *Transaction) DocChanged() bool { return len(tr.steps) > 0 }

func (tr *Transaction) SelectionSet() bool { return tr.selSet }

// Err returns the first failure recorded by a builder method.
func (tr *Transaction) Err() error { return tr.err }

func (tr *Transaction) fail(err error) *Transaction {
	if tr.err == nil {
		tr.err = err
	}
	return tr
}

// Step applies s to the current document.
func (tr *Transaction) Step(s Step) *Transaction {
	if tr.err != nil {
		return tr
	}
	next, err := s.Apply(tr.doc)
	if err != nil {
		return tr.fail(err)
	}
	tr.docs = append(tr.docs, tr.doc)
	tr.steps = append(tr.steps, s)
	tr.mapping.Append(s.StepMap())
	tr.doc = next
	return tr
}

// Selection returns the selection mapped through the steps applied since it
// was last set, validated against the current document.
func (tr *Transaction) Selection() Selection {
	m := tr.mapping.Slice(tr.selMapFrom)
	return tr.sel.Map(m).Validate(tr.doc)
}

// SetSelection sets the selection in terms of the current document. Later
// steps map it forward.
func (tr *Transaction) SetSelection(sel Selection) *Transaction {
	if tr.err != nil {
		return tr
	}
	tr.sel = sel
	tr.selMapFrom = tr.mapping.Len()
	tr.selSet = true
	return tr
}

// SetMeta attaches metadata to the transaction.
func (tr *Transaction) SetMeta(key string, value any) *Transaction {
	if tr.meta == nil {
		tr.meta = make(map[string]any)
	}
	tr.meta[key] = value
	return tr
}

func (tr *Transaction) Meta(key string) any { return tr.meta[key] }

// Meta keys understood by State.
const (
	MetaAddToHistory = "addToHistory"
	MetaOrigin       = "origin"
)
