// Package state coordinates the live document, the last synced snapshot,
// and the requests that move content between them.
//
// The Coordinator is the single owner of sync state. The UI mutates the
// live document through it, stages serialized contents on it, and begins
// save and load requests against it. Every request carries a sequence
// number; a completion whose sequence no longer matches the most recent
// request for that operation is discarded, so a stale response can never
// clobber state produced by a newer one.
//
// The dirty/clean distinction is structural: the live document is compared
// against the snapshot field by field, so retyping a deleted character
// lands the editor back in the clean state. User-facing failures accumulate
// as toasts, newest first in storage and oldest first for display.
package state
