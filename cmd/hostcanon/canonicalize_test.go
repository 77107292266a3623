package main

import (
	"context"
	"host-literal/application/util/domain"
	"host-literal/network/ip"
	ipv4 "host-literal/network/ip/v4"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errLookupDown = errors.New("lookup down")

// slowLookuper advances a mock clock on every lookup.
type slowLookuper struct {
	clock *clock.Mock
	delay time.Duration
	addrs map[string][]ip.Addr
}

func (l *slowLookuper) LookupIP(_ context.Context, name string) ([]ip.Addr, error) {
	l.clock.Add(l.delay)
	if name == "down.test" {
		return nil, errLookupDown
	}
	addrs, ok := l.addrs[name]
	if !ok {
		return nil, domain.ErrDomainNotFound
	}
	return addrs, nil
}

func TestCanonicalizeAll(t *testing.T) {
	mock := clock.NewMock()
	lookup := &slowLookuper{
		clock: mock,
		delay: 5 * time.Millisecond,
		addrs: map[string][]ip.Addr{"a.test": {ipv4.Addr{10, 0, 0, 1}}},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := newCanonicalizer(logger, options{special: true, family: familyAuto}, lookup)

	start := mock.Now()
	results, err := c.canonicalizeAll(context.Background(),
		[]string{"A.test", "b.test", "down.test", "0x0a.1"}, 1)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Millisecond, mock.Since(start))

	require.Len(t, results, 4)
	assert.Equal(t, result{input: "A.test", output: "a.test\t10.0.0.1"}, results[0])
	assert.Equal(t, result{input: "b.test", output: "b.test"}, results[1])
	assert.ErrorIs(t, results[2].err, errLookupDown)
	assert.Equal(t, result{input: "0x0a.1", output: "10.0.0.1"}, results[3])
}

func TestCanonicalizeAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := newCanonicalizer(logger, options{special: true, family: familyAuto}, nil)

	_, err := c.canonicalizeAll(ctx, []string{"1.2.3.4"}, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadInputs(t *testing.T) {
	inputs, err := readInputs(strings.NewReader(" a \n\n\tb\nc"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, inputs)
}
