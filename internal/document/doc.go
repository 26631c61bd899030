// Package document is an in-memory host for the live overlay: a text buffer
// with a line index, a viewport and an editor with a single caret.
//
// Offsets and columns are byte offsets into LF-normalized text. The Editor
// satisfies overlay.View, so an overlay.Engine can be driven directly from
// it, and suggest.Editor, so autosuggest selections edit it in place.
package document
