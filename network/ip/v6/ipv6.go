// Package ipv6 parses and serializes IPv6 host literals as they appear
// between the brackets of a URL host.
package ipv6

import (
	"cmp"
	ipv4 "host-literal/network/ip/v4"
	"slices"
	"strconv"

	"github.com/pkg/errors"
)

var (
	ErrMalformedAddress      = errors.New("ipv6: malformed address")
	ErrDoubleCompression     = errors.New("ipv6: multiple '::'")
	ErrTooManyGroups         = errors.New("ipv6: more than 8 groups")
	ErrWrongGroupCount       = errors.New("ipv6: fewer than 8 groups without '::'")
	ErrTrailingColon         = errors.New("ipv6: trailing ':'")
	ErrMalformedEmbeddedIPv4 = errors.New("ipv6: malformed embedded ipv4")
	ErrEmbeddedIPv4TooLate   = errors.New("ipv6: no room for embedded ipv4")
)

const groups = 8

// Addr is an IPv6 address as eight 16-bit groups, leftmost group first.
type Addr [groups]uint16

// AddrFrom16 builds an address from its 16 network-order bytes.
func AddrFrom16(b [16]byte) Addr {
	var a Addr
	for i := range a {
		a[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	return a
}

func (a Addr) Raw() []byte {
	b := make([]byte, 0, 16)
	for _, g := range a {
		b = append(b, byte(g>>8), byte(g))
	}
	return b
}

func (a Addr) Version() uint { return 6 }

// IsIPv4Mapped reports whether a is of the form ::ffff:a.b.c.d.
func (a Addr) IsIPv4Mapped() bool {
	return a[0] == 0 && a[1] == 0 && a[2] == 0 && a[3] == 0 && a[4] == 0 && a[5] == 0xffff
}

// Unmap returns the IPv4 address held in the last two groups when a is
// IPv4-mapped.
func (a Addr) Unmap() (ipv4.Addr, bool) {
	if !a.IsIPv4Mapped() {
		return ipv4.Addr{}, false
	}
	return ipv4.AddrFrom(uint32(a[6])<<16 | uint32(a[7])), true
}

// String returns the canonical form: lowercase hex without leading zeros,
// the longest run (earliest on ties) of two or more zero groups replaced by
// "::". Brackets are not included.
func (a Addr) String() string {
	return string(a.AppendTo(make([]byte, 0, len("ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff"))))
}

// AppendTo appends the canonical form of a to b.
func (a Addr) AppendTo(b []byte) []byte {
	run, compress := a.compressedRun()

	for i := 0; i < groups; i++ {
		if compress && i == run.start {
			if i == 0 {
				b = append(b, ':', ':')
			} else {
				b = append(b, ':')
			}
			i += run.length - 1
			continue
		}

		b = strconv.AppendUint(b, uint64(a[i]), 16)
		if i != groups-1 {
			b = append(b, ':')
		}
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

type zeroRun struct {
	start, length int
}

// zeroRuns lists every maximal run of zero groups, left to right.
func (a Addr) zeroRuns() []zeroRun {
	var runs []zeroRun
	for i := 0; i < groups; i++ {
		if a[i] != 0 {
			continue
		}

		j := i
		for j < groups && a[j] == 0 {
			j++
		}
		runs = append(runs, zeroRun{start: i, length: j - i})
		i = j
	}
	return runs
}

// compressedRun picks the run to replace with "::", if any.
func (a Addr) compressedRun() (zeroRun, bool) {
	runs := a.zeroRuns()
	if len(runs) == 0 {
		return zeroRun{}, false
	}

	// Stable: among equally long runs the leftmost stays first.
	slices.SortStableFunc(runs, func(x, y zeroRun) int {
		return cmp.Compare(y.length, x.length)
	})

	if runs[0].length < 2 {
		return zeroRun{}, false
	}
	return runs[0], true
}
