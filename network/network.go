package network

// Addr is a network-layer address.
type Addr interface {
	String() string
	Raw() []byte
}
