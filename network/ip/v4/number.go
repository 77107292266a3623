package ipv4

import (
	"github.com/pkg/errors"
)

type radix uint8

const (
	radixOctal   radix = 8
	radixDecimal radix = 10
	radixHex     radix = 16
)

// componentLimit saturates accumulation. No component at or above it can
// ever be part of a valid address, so the exact magnitude is irrelevant and
// the range checks in the fold still reject it.
const componentLimit = 1 << 32

// classifyComponent selects the radix of an IPv4 component from its prefix
// and returns the remaining digits.
func classifyComponent(s string) (radix, string) {
	switch {
	case len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X'):
		return radixHex, s[2:]
	case len(s) >= 2 && s[0] == '0':
		return radixOctal, s[1:]
	default:
		return radixDecimal, s
	}
}

// parseComponent parses one non-empty IPv4 component. A bare prefix such as
// "0x" parses as zero.
func parseComponent(s string) (uint64, radix, error) {
	r, digits := classifyComponent(s)
	n, err := parseDigits(digits, r)
	if err != nil {
		return 0, r, err
	}
	return n, r, nil
}

func parseDigits(digits string, r radix) (uint64, error) {
	var n uint64
	for i := 0; i < len(digits); i++ {
		d, ok := digitValue(digits[i])
		if !ok || d >= uint64(r) {
			return 0, errors.Wrapf(ErrInvalidComponent,
				"%q is not a base-%d digit", digits[i], r)
		}

		n = n*uint64(r) + d
		if n > componentLimit {
			n = componentLimit
		}
	}
	return n, nil
}

func digitValue(c byte) (uint64, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint64(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint64(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return uint64(c-'A') + 10, true
	}
	return 0, false
}

// IsNumber reports whether s is a well-formed IPv4 component in any radix,
// whatever its magnitude.
func IsNumber(s string) bool {
	if s == "" {
		return false
	}
	_, _, err := parseComponent(s)
	return err == nil
}
