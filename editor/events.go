package editor

import "github.com/seo-rii/tiptap/document"

// ChangeEvent is reported through Config.OnChange after an update changed
// the document or the selection.
type ChangeEvent struct {
	Version   uint64
	Selection document.Selection
	Doc       *document.Node

	// Change is the record of the last applied transaction.
	Change    document.Change
	HasChange bool
}

func buildChangeEvent(st *document.State) ChangeEvent {
	ev := ChangeEvent{
		Version:   st.Version(),
		Selection: st.Selection(),
		Doc:       st.Doc(),
	}
	ev.Change, ev.HasChange = st.LastChange()
	return ev
}
