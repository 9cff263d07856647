package document

// ChangeSource identifies where a change originated.
type ChangeSource uint8

const (
	ChangeSourceLocal ChangeSource = iota
	ChangeSourceHistory
)

// AppliedEdit describes one replaced range: [From, To) in the document
// before the edit became [From, From+Size) after it.
type AppliedEdit struct {
	From, To int
	Size     int
}

// Change is a versioned record of one applied transaction or history move.
type Change struct {
	Source          ChangeSource
	VersionBefore   uint64
	VersionAfter    uint64
	SelectionBefore Selection
	SelectionAfter  Selection
	DocChanged      bool
	AppliedEdits    []AppliedEdit
	Origin          string
}

type changeBuilder struct {
	source          ChangeSource
	versionBefore   uint64
	docBefore       *Node
	selectionBefore Selection
}

// LastChange returns the most recent effective change.
func (s *State) LastChange() (Change, bool) {
	if !s.hasLastChange {
		return Change{}, false
	}
	out := s.lastChange
	out.AppliedEdits = append([]AppliedEdit(nil), s.lastChange.AppliedEdits...)
	return out, true
}

func (s *State) beginChange(tr *Transaction) changeBuilder {
	source := ChangeSourceLocal
	if tr == nil {
		source = ChangeSourceHistory
	}
	return changeBuilder{
		source:          source,
		versionBefore:   s.version,
		docBefore:       s.doc,
		selectionBefore: s.sel,
	}
}

func (s *State) commitChange(cb changeBuilder, tr *Transaction) {
	if s.version == cb.versionBefore {
		return
	}
	c := Change{
		Source:          cb.source,
		VersionBefore:   cb.versionBefore,
		VersionAfter:    s.version,
		SelectionBefore: cb.selectionBefore,
		SelectionAfter:  s.sel,
		DocChanged:      cb.docBefore != s.doc,
	}
	if tr != nil {
		for _, st := range tr.steps {
			m := st.StepMap()
			for i := 0; i+2 < len(m.ranges); i += 3 {
				c.AppliedEdits = append(c.AppliedEdits, AppliedEdit{
					From: m.ranges[i],
					To:   m.ranges[i] + m.ranges[i+1],
					Size: m.ranges[i+2],
				})
			}
		}
		if origin, ok := tr.Meta(MetaOrigin).(string); ok {
			c.Origin = origin
		}
	} else if c.DocChanged {
		c.AppliedEdits = []AppliedEdit{{From: 0, To: cb.docBefore.ContentSize(), Size: s.doc.ContentSize()}}
	}
	s.lastChange = c
	s.hasLastChange = true
}
