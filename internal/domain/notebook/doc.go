// Package notebook implements the bidirectional workspace codec.
//
// The export engine serializes the window store into an nbformat v4
// document: one markdown summary cell, then one cell per window whose
// source text carries a structured contract (prefixed single-line tags
// that losslessly encode the payload) followed by human-readable fallback
// code.
//
// The import engine parses a document back into window records. Parsing is
// fail-fast on structural corruption (missing or non-list cells array) and
// fail-soft at cell granularity: unrecognized window types and malformed
// metadata fields are accumulated as CellErrors while the import continues.
//
// Payload extraction is two-tier: a deterministic contract scanner runs
// first, a narrow heuristic pattern matcher covers foreign or hand-edited
// cells, and a deterministic placeholder is synthesized when both miss so
// restored windows are never visually empty.
package notebook
