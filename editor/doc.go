// Package editor provides a Bubble Tea rich-text editor component backed by
// the document package.
//
// The package is responsible for input handling, viewport behavior and
// rendering of textblocks, lists, tables and media boxes, and it hosts the
// editor extensions: the slash command palette, media resize handles with
// the aspect-ratio toolbar, table cell navigation, list input rules and
// image uploads with placeholders.
package editor
