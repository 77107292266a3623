package uri

import (
	"fmt"
	"host-literal/network/ip"
	ipv4 "host-literal/network/ip/v4"
	ipv6 "host-literal/network/ip/v6"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrEmptyHost    = errors.New("uri: empty host")
	ErrUnclosedIPv6 = errors.New("uri: ipv6 host is missing ']'")
)

type HostKind uint8

const (
	HostEmpty HostKind = iota
	HostDomain
	HostIPv4
	HostIPv6
	HostOpaque
)

func (k HostKind) String() string {
	switch k {
	case HostEmpty:
		return "empty"
	case HostDomain:
		return "domain"
	case HostIPv4:
		return "ipv4"
	case HostIPv6:
		return "ipv6"
	case HostOpaque:
		return "opaque"
	}
	return fmt.Sprintf("HostKind(%d)", uint8(k))
}

// Host is a parsed URL host. Only the field matching Kind is set.
type Host struct {
	Kind HostKind
	IPv4 ipv4.Addr
	IPv6 ipv6.Addr
	// Name holds a domain or an opaque host.
	Name string
}

// Addr returns the address of an IPv4 or IPv6 host, or nil.
func (h Host) Addr() ip.Addr {
	switch h.Kind {
	case HostIPv4:
		return h.IPv4
	case HostIPv6:
		return h.IPv6
	}
	return nil
}

// Reference: https://url.spec.whatwg.org/#host-serializing
func (h Host) String() string {
	switch h.Kind {
	case HostIPv4:
		return h.IPv4.String()
	case HostIPv6:
		return "[" + h.IPv6.String() + "]"
	}
	return h.Name
}

type HostOptions struct {
	// Special selects the host grammar of special schemes (http, ws, ...),
	// where numeric hosts are IPv4 addresses. Other schemes keep their host
	// opaque.
	Special bool
	// OnValidationError observes non-fatal violations. It may be nil.
	OnValidationError ip.ValidationFunc
}

// HostParser classifies and parses URL hosts. It is safe for concurrent use.
type HostParser struct {
	logger *slog.Logger
	opts   HostOptions
}

func NewHostParser(logger *slog.Logger, opts HostOptions) *HostParser {
	return &HostParser{logger: logger, opts: opts}
}

// ParseHost parses input as the host of a URL with the given lowercase
// scheme, discarding validation errors.
func ParseHost(input, scheme string) (Host, error) {
	p := NewHostParser(slog.New(slog.DiscardHandler), HostOptions{Special: IsSpecial(scheme)})
	return p.Parse(input)
}

// Parse parses input, which must already be percent-decoded and isolated
// from userinfo and port.
// Reference: https://url.spec.whatwg.org/#host-parsing
func (p *HostParser) Parse(input string) (Host, error) {
	if strings.HasPrefix(input, "[") {
		if !strings.HasSuffix(input, "]") {
			return Host{}, errors.Wrapf(ErrUnclosedIPv6, "host %q", input)
		}
		addr, err := ipv6.ParseAddr(input[1 : len(input)-1])
		if err != nil {
			return Host{}, errors.Wrap(err, "parsing ipv6 host")
		}
		return Host{Kind: HostIPv6, IPv6: addr}, nil
	}

	if !p.opts.Special {
		if input == "" {
			return Host{Kind: HostEmpty}, nil
		}
		return Host{Kind: HostOpaque, Name: input}, nil
	}

	if input == "" {
		return Host{}, ErrEmptyHost
	}

	name := strings.ToLower(input)
	if !endsInNumber(name) {
		return Host{Kind: HostDomain, Name: name}, nil
	}

	addr, err := ipv4.ParseAddrWithOptions(name, ipv4.ParseOptions{OnValidationError: p.report})
	if err != nil {
		return Host{}, errors.Wrap(err, "parsing ipv4 host")
	}
	return Host{Kind: HostIPv4, IPv4: addr}, nil
}

func (p *HostParser) report(e ip.ValidationError) {
	p.logger.Warn("host validation error",
		"code", e.Code.String(),
		"input", e.Input,
		"component", e.Component,
	)
	p.opts.OnValidationError.Report(e)
}

// endsInNumber reports whether the last label of a domain, ignoring one
// trailing empty label, is numeric. Such hosts must parse as IPv4.
// Reference: https://url.spec.whatwg.org/#ends-in-a-number-checker
func endsInNumber(s string) bool {
	labels := strings.Split(s, ".")
	if labels[len(labels)-1] == "" {
		if len(labels) == 1 {
			return false
		}
		labels = labels[:len(labels)-1]
	}

	last := labels[len(labels)-1]
	if last != "" && strings.Trim(last, "0123456789") == "" {
		return true
	}
	return ipv4.IsNumber(last)
}
