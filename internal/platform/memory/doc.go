// Package memory implements the record store collections on in-process data
// structures. A single DB guards every collection with one lock, hands out
// copies on read, and can report each committed change through a persist hook.
package memory
