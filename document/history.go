package document

type stateSnapshot struct {
	doc *Node
	sel Selection
}

type historyState struct {
	undo []stateSnapshot
	redo []stateSnapshot
}

func (s *State) snapshot() stateSnapshot {
	return stateSnapshot{doc: s.doc, sel: s.sel}
}

func (s *State) restore(snap stateSnapshot) {
	s.doc = snap.doc
	s.sel = snap.sel.Validate(snap.doc)
}

func (s *State) recordUndo(prev stateSnapshot) {
	limit := s.opt.HistoryLimit
	if limit <= 0 {
		return
	}

	s.hist.undo = append(s.hist.undo, prev)
	if len(s.hist.undo) > limit {
		s.hist.undo = s.hist.undo[len(s.hist.undo)-limit:]
	}
	s.hist.redo = nil
}

func (s *State) CanUndo() bool { return len(s.hist.undo) > 0 }

func (s *State) CanRedo() bool { return len(s.hist.redo) > 0 }

func (s *State) Undo() bool {
	if len(s.hist.undo) == 0 {
		return false
	}

	cur := s.snapshot()
	change := s.beginChange(nil)

	i := len(s.hist.undo) - 1
	prev := s.hist.undo[i]
	s.hist.undo = s.hist.undo[:i]
	s.hist.redo = append(s.hist.redo, cur)

	s.restore(prev)
	s.version++
	s.commitChange(change, nil)
	return true
}

func (s *State) Redo() bool {
	if len(s.hist.redo) == 0 {
		return false
	}

	cur := s.snapshot()
	change := s.beginChange(nil)

	i := len(s.hist.redo) - 1
	next := s.hist.redo[i]
	s.hist.redo = s.hist.redo[:i]

	if limit := s.opt.HistoryLimit; limit > 0 {
		s.hist.undo = append(s.hist.undo, cur)
		if len(s.hist.undo) > limit {
			s.hist.undo = s.hist.undo[len(s.hist.undo)-limit:]
		}
	}

	s.restore(next)
	s.version++
	s.commitChange(change, nil)
	return true
}
