// Package editor provides a Bubble Tea rich-text editor component backed by
// the document package.
//
// The component owns one document. It syncs it with host-supplied markup,
// maps keys to editing primitives and formatting commands, and schedules the
// debounced auto-format pass. It reports every committed change back to the
// host as serialized markup through Config.OnContentChange.
package editor
