// Package window manages the in-memory spatial workspace.
//
// The Store maps integer window ids to WindowRecords and owns id
// allocation: the next free id is always one past the current maximum.
// Reads are safe under concurrent access; writes assume the single-writer
// discipline documented for the codec (concurrent imports against one
// Store must be serialized by the caller).
package window
