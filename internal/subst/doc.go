// Package subst applies an ordered table of literal substitutions to a text
// buffer.
//
// A Table is folded over the document one Pair at a time. Each pass is a
// standard global, non-overlapping, left-to-right literal replace over the
// buffer produced by the previous pass, so:
//
//   - Earlier pairs win: a longer phrase listed before one of its
//     substrings is replaced as a whole.
//   - Replacement text is visible to later passes (table-order chaining),
//     but never re-scanned by its own pass.
//   - Output is a pure function of (document, table).
//
// Entries with an empty Match are rejected before any pass runs.
package subst
