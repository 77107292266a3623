// Package ipv4 parses and serializes IPv4 host literals using the legacy
// numeric grammar of the WHATWG URL Standard: one to four dot-separated
// components, each in decimal, octal (leading "0") or hexadecimal
// (leading "0x"), where the last component absorbs the remaining low-order
// bytes.
package ipv4

import (
	"strconv"

	"github.com/pkg/errors"
)

var (
	ErrTooManyComponents   = errors.New("ipv4: more than 4 components")
	ErrEmptyComponent      = errors.New("ipv4: empty component")
	ErrInvalidComponent    = errors.New("ipv4: invalid component")
	ErrComponentOutOfRange = errors.New("ipv4: component out of range")
	ErrAddressOverflow     = errors.New("ipv4: last component overflows address")
)

// Addr is an IPv4 address. The first byte is the most significant.
type Addr [4]byte

// AddrFrom builds an address from its numeric value.
func AddrFrom(n uint32) Addr {
	return Addr{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
}

func (a Addr) ToUint32() uint32 {
	return uint32(a[0])<<24 | uint32(a[1])<<16 | uint32(a[2])<<8 | uint32(a[3])
}

func (a Addr) Raw() []byte   { return a[:] }
func (a Addr) Version() uint { return 4 }

// String returns the dotted-decimal form: always four groups, no leading
// zeros.
func (a Addr) String() string {
	return string(a.AppendTo(make([]byte, 0, len("255.255.255.255"))))
}

// AppendTo appends the dotted-decimal form of a to b.
func (a Addr) AppendTo(b []byte) []byte {
	n := a.ToUint32()

	var groups [4]uint32
	for i := len(groups) - 1; i >= 0; i-- {
		groups[i] = n % 256
		n /= 256
	}

	for i, g := range groups {
		if i > 0 {
			b = append(b, '.')
		}
		b = strconv.AppendUint(b, uint64(g), 10)
	}
	return b
}

func (a Addr) MarshalText() ([]byte, error) {
	return a.AppendTo(nil), nil
}

func (a *Addr) UnmarshalText(text []byte) error {
	parsed, err := ParseAddr(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
