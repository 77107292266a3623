package ipv4

import (
	"host-literal/network/ip"
	"strings"

	"github.com/pkg/errors"
)

const maxComponents = 4

type ParseOptions struct {
	// OnValidationError observes non-fatal violations. It may be nil.
	OnValidationError ip.ValidationFunc
}

// ParseAddr parses s, discarding validation errors.
func ParseAddr(s string) (Addr, error) {
	return ParseAddrWithOptions(s, ParseOptions{})
}

// ParseAddrWithOptions parses s, which must already be isolated from any
// scheme, brackets or port.
func ParseAddrWithOptions(s string, opts ParseOptions) (Addr, error) {
	report := opts.OnValidationError

	parts := strings.Split(s, ".")
	if last := len(parts) - 1; parts[last] == "" {
		if last == 0 {
			report.Report(ip.ValidationError{Code: ip.IPv4EmptyInput, Input: s, Component: -1})
			return Addr{}, errors.Wrap(ErrEmptyComponent, "empty input")
		}
		report.Report(ip.ValidationError{Code: ip.IPv4EmptyPart, Input: s, Component: last})
		parts = parts[:last]
	}

	if len(parts) > maxComponents {
		return Addr{}, errors.Wrapf(ErrTooManyComponents, "%d components in %q", len(parts), s)
	}

	numbers := make([]uint64, 0, maxComponents)
	for idx, part := range parts {
		if part == "" {
			return Addr{}, errors.Wrapf(ErrEmptyComponent, "component %d of %q", idx, s)
		}

		n, r, err := parseComponent(part)
		if err != nil {
			return Addr{}, errors.Wrapf(err, "component %d of %q", idx, s)
		}
		if r != radixDecimal {
			report.Report(ip.ValidationError{Code: ip.IPv4NonDecimalPart, Input: s, Component: idx})
		}

		numbers = append(numbers, n)
	}

	for idx, n := range numbers {
		if n > 255 {
			report.Report(ip.ValidationError{Code: ip.IPv4OutOfRangePart, Input: s, Component: idx})
		}
	}

	return fold(numbers, s)
}

// fold combines parsed components into an address. Components before the
// last one are single bytes; the last one fills every remaining byte.
func fold(numbers []uint64, s string) (Addr, error) {
	last := len(numbers) - 1
	for idx, n := range numbers[:last] {
		if n > 255 {
			return Addr{}, errors.Wrapf(ErrComponentOutOfRange, "component %d of %q", idx, s)
		}
	}

	limit := uint64(1) << (8 * (5 - len(numbers)))
	if numbers[last] >= limit {
		return Addr{}, errors.Wrapf(ErrAddressOverflow,
			"component %d of %q must be less than %d", last, s, limit)
	}

	v := numbers[last]
	for idx, n := range numbers[:last] {
		v += n << (8 * (3 - idx))
	}

	return AddrFrom(uint32(v)), nil
}
