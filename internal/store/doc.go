// Package store defines the record store contract: one interface per
// collection, the Sequencer that hands out monotonic ids, the sentinel errors
// every backend maps onto, and the seed directory. Backends live under
// internal/platform (memory, filestore, postgres).
package store
