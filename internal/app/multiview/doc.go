// Package multiview holds the bookkeeping behind a call's video sockets:
// which sources hold a socket, which sockets are free, and which source was
// least recently referenced. None of the types lock across each other; the
// orchestrator owns the critical section that spans them.
package multiview
