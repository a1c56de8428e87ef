// Package models defines the value types shared by the tip engine, the
// session store and the transport layers.
//
// # Models
//
//   - Snapshot: the derived numbers for one session at one instant
//   - Display: the same numbers formatted for a rendering collaborator
//   - SessionInfo: bookkeeping for a live session (ID and creation time)
//
// All models are plain values. Nothing here is persisted: a session and
// its inputs live only as long as the interactive use that created them.
package models
