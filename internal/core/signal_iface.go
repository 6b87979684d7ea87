package core

// Frame is a raw binary payload.
type Frame []byte

// SignalConnection abstracts the call platform's event feed transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
