package uri

import (
	"bytes"
	"host-literal/network/ip"
	ipv4 "host-literal/network/ip/v4"
	ipv6 "host-literal/network/ip/v6"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHost(t *testing.T) {
	testcases := []struct {
		desc     string
		input    string
		scheme   string
		expected Host
		repr     string
		wantErr  error
	}{
		{
			desc:     "domain",
			input:    "example.com",
			scheme:   "http",
			expected: Host{Kind: HostDomain, Name: "example.com"},
			repr:     "example.com",
		},
		{
			desc:     "domain is lowercased",
			input:    "EXAMPLE.Com",
			scheme:   "https",
			expected: Host{Kind: HostDomain, Name: "example.com"},
			repr:     "example.com",
		},
		{
			desc:     "dotted decimal",
			input:    "192.168.0.1",
			scheme:   "http",
			expected: Host{Kind: HostIPv4, IPv4: ipv4.Addr{192, 168, 0, 1}},
			repr:     "192.168.0.1",
		},
		{
			desc:     "legacy numeric",
			input:    "0X7F.1",
			scheme:   "ws",
			expected: Host{Kind: HostIPv4, IPv4: ipv4.Addr{127, 0, 0, 1}},
			repr:     "127.0.0.1",
		},
		{
			desc:     "trailing dot on ipv4",
			input:    "1.2.3.4.",
			scheme:   "http",
			expected: Host{Kind: HostIPv4, IPv4: ipv4.Addr{1, 2, 3, 4}},
			repr:     "1.2.3.4",
		},
		{
			desc:     "hex-looking label that is not a number",
			input:    "0xg",
			scheme:   "http",
			expected: Host{Kind: HostDomain, Name: "0xg"},
			repr:     "0xg",
		},
		{
			desc:     "digits inside the last label",
			input:    "foo.bar0x1",
			scheme:   "http",
			expected: Host{Kind: HostDomain, Name: "foo.bar0x1"},
			repr:     "foo.bar0x1",
		},
		{
			desc:     "ipv6",
			input:    "[2001:DB8:0:0:0:0:0:1]",
			scheme:   "http",
			expected: Host{Kind: HostIPv6, IPv6: ipv6.Addr{0x2001, 0xdb8, 0, 0, 0, 0, 0, 1}},
			repr:     "[2001:db8::1]",
		},
		{
			desc:     "ipv6 on non-special scheme",
			input:    "[::ffff:192.0.2.1]",
			scheme:   "ldap",
			expected: Host{Kind: HostIPv6, IPv6: ipv6.Addr{0, 0, 0, 0, 0, 0xffff, 0xc000, 0x0201}},
			repr:     "[::ffff:c000:201]",
		},
		{
			desc:     "opaque host keeps case",
			input:    "Example.COM",
			scheme:   "ldap",
			expected: Host{Kind: HostOpaque, Name: "Example.COM"},
			repr:     "Example.COM",
		},
		{
			desc:     "numbers are opaque on non-special scheme",
			input:    "0x7f.1",
			scheme:   "ldap",
			expected: Host{Kind: HostOpaque, Name: "0x7f.1"},
			repr:     "0x7f.1",
		},
		{
			desc:     "empty host on non-special scheme",
			input:    "",
			scheme:   "ldap",
			expected: Host{Kind: HostEmpty},
			repr:     "",
		},
		{
			desc:    "empty host on special scheme",
			input:   "",
			scheme:  "http",
			wantErr: ErrEmptyHost,
		},
		{
			desc:    "unclosed ipv6",
			input:   "[::1",
			scheme:  "http",
			wantErr: ErrUnclosedIPv6,
		},
		{
			desc:    "bad ipv6",
			input:   "[1::2::3]",
			scheme:  "http",
			wantErr: ipv6.ErrDoubleCompression,
		},
		{
			desc:    "empty brackets",
			input:   "[]",
			scheme:  "http",
			wantErr: ipv6.ErrWrongGroupCount,
		},
		{
			desc:    "ends in hex number but is not ipv4",
			input:   "foo.0x10",
			scheme:  "http",
			wantErr: ipv4.ErrInvalidComponent,
		},
		{
			desc:    "ends in decimal number but is not ipv4",
			input:   "foo.09",
			scheme:  "http",
			wantErr: ipv4.ErrInvalidComponent,
		},
		{
			desc:    "too many components",
			input:   "1.2.3.4.5",
			scheme:  "https",
			wantErr: ipv4.ErrTooManyComponents,
		},
		{
			desc:    "overflow",
			input:   "999999999999",
			scheme:  "https",
			wantErr: ipv4.ErrAddressOverflow,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			host, err := ParseHost(tc.input, tc.scheme)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Zero(t, host)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, host)
			assert.Equal(t, tc.repr, host.String())
		})
	}
}

func TestHostAddr(t *testing.T) {
	v4 := Host{Kind: HostIPv4, IPv4: ipv4.Addr{10, 0, 0, 1}}
	require.NotNil(t, v4.Addr())
	assert.Equal(t, uint(4), v4.Addr().Version())
	assert.Equal(t, []byte{10, 0, 0, 1}, v4.Addr().Raw())

	v6 := Host{Kind: HostIPv6, IPv6: ipv6.Addr{7: 1}}
	require.NotNil(t, v6.Addr())
	assert.Equal(t, uint(6), v6.Addr().Version())
	assert.Equal(t, "::1", v6.Addr().String())

	assert.Nil(t, Host{Kind: HostDomain, Name: "example.com"}.Addr())
}

func TestHostKindString(t *testing.T) {
	assert.Equal(t, "ipv6", HostIPv6.String())
	assert.Equal(t, "opaque", HostOpaque.String())
	assert.Equal(t, "HostKind(9)", HostKind(9).String())
}

func TestHostParserValidationErrors(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(buf, nil))

	var got []ip.ValidationError
	p := NewHostParser(logger, HostOptions{
		Special:           true,
		OnValidationError: func(e ip.ValidationError) { got = append(got, e) },
	})

	host, err := p.Parse("0x7f.1.")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", host.String())

	assert.Equal(t, []ip.ValidationError{
		{Code: ip.IPv4EmptyPart, Input: "0x7f.1.", Component: 2},
		{Code: ip.IPv4NonDecimalPart, Input: "0x7f.1.", Component: 0},
	}, got)
	assert.Contains(t, buf.String(), "code=IPv4-empty-part")
	assert.Contains(t, buf.String(), "code=IPv4-non-decimal-part")
}

func TestEndsInNumber(t *testing.T) {
	testcases := []struct {
		input    string
		expected bool
	}{
		{input: "1.2.3.4", expected: true},
		{input: "1.2.3.4.", expected: true},
		{input: "example.0x1f", expected: true},
		{input: "example.0x", expected: true},
		{input: "example.09", expected: true},
		{input: "example.com", expected: false},
		{input: "example.com.", expected: false},
		{input: "1.2.3.4..", expected: false},
		{input: "", expected: false},
		{input: ".", expected: false},
	}

	for _, tc := range testcases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, endsInNumber(tc.input))
		})
	}
}
