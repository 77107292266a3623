package domain

import (
	"bufio"
	"host-literal/network/ip"
	ipv4 "host-literal/network/ip/v4"
	ipv6 "host-literal/network/ip/v6"
	"io"
	"strings"

	"github.com/pkg/errors"
)

var ErrMalformedLine = errors.New("malformed hosts line")

// ParseHosts reads a hosts(5) style table: an address followed by one or
// more names per line, '#' starting a comment. Addresses accept the URL host
// grammar, so legacy IPv4 forms are canonicalized. Names are lowercased and
// a name listed on several lines collects every address in order.
func ParseHosts(r io.Reader) (map[string][]ip.Addr, error) {
	set := make(map[string][]ip.Addr)

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line, _, _ := strings.Cut(scanner.Text(), "#")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, errors.Wrapf(ErrMalformedLine, "line %d: missing host name", lineNo)
		}

		addr, err := parseHostsAddr(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}

		for _, name := range fields[1:] {
			name = strings.ToLower(name)
			set[name] = append(set[name], addr)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading hosts")
	}

	return set, nil
}

func parseHostsAddr(s string) (ip.Addr, error) {
	if strings.Contains(s, ":") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
		addr, err := ipv6.ParseAddr(s)
		if err != nil {
			return nil, err
		}
		return addr, nil
	}

	addr, err := ipv4.ParseAddr(s)
	if err != nil {
		return nil, err
	}
	return addr, nil
}

// NewHostsLookuper builds a Lookuper from a hosts table.
func NewHostsLookuper(r io.Reader) (*mapLookuper, error) {
	set, err := ParseHosts(r)
	if err != nil {
		return nil, err
	}
	return &mapLookuper{set: set}, nil
}
