// Package document implements the immutable rich-document model the editor
// extensions operate on.
//
// A document is a tree of typed nodes. Positions are integer offsets into the
// flattened tree: entering or leaving a container node costs one offset, a
// leaf atom costs one, and text costs one per grapheme cluster. Ranges are
// half-open: [from, to).
//
// Documents are never mutated in place. Edits are expressed as Steps
// accumulated in a Transaction and applied atomically by State.Apply.
package document
