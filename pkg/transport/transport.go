package transport

// Handler consumes one raw message from the bus. Implementations may call it
// from their own delivery goroutines; whoever subscribes is responsible for
// serializing further processing.
type Handler func(data []byte)

// Transport moves serialized state payloads between all instances sharing a
// topic. Delivery is at-least-once: consumers must tolerate duplicates and
// out-of-order arrival.
type Transport interface {
	Publish(data []byte) error
	Subscribe(handler Handler) error

	GetType() Type
}
