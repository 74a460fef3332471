// Package devices tracks known controllers, their live transport handles,
// and routes outbound commands to them.
package devices

// Connection is the capability a transport adapter must provide. The
// registry and router depend only on this interface, never on a concrete
// socket type.
type Connection interface {
	Send(data []byte) error
	Close() error
	IsOpen() bool
}
