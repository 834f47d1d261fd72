// Package command implements the host side of the interrupted-execution
// protocol.
//
// When the device cannot hold the data it needs for an operation, it
// suspends and emits a one-byte-opcode request. The Interpreter dispatches
// the request to the matching command, which answers from state registered
// at session setup: preimages, Merkle trees over element hashes, and
// ordered public-key descriptor lists.
//
// Ownership boundary:
// - opcode dispatch and the five command handlers
// - session registries and the continuation queue
// - registration helpers used at session setup
//
// Transport, retries and session management belong to the caller.
package command
