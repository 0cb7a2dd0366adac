// Package staging implements the staging view controller: the rules that
// keep the "select all" checkbox, the per-row checkboxes, the approve
// buttons, the bulk-edit form and the artwork lookup panel consistent with
// each other.
//
// The controller keeps no copy of the view. Every operation reads the
// document, recomputes what it needs and writes the result back, so running
// an operation twice is the same as running it once. Operations never fail:
// an element the current page does not render is skipped.
//
// Listeners are registered once on an events.Dispatcher (see Bind). Because
// the dispatcher matches on the target's ancestry, rows and controls
// introduced by a later fragment swap are handled without re-binding; a swap
// only triggers a recomputation of derived state.
package staging
