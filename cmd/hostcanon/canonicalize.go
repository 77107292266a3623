package main

import (
	"bufio"
	"context"
	"fmt"
	"host-literal/application/util/domain"
	"host-literal/application/util/uri"
	"host-literal/network/ip"
	ipv4 "host-literal/network/ip/v4"
	ipv6 "host-literal/network/ip/v6"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type result struct {
	input  string
	output string
	err    error
}

type canonicalizer struct {
	logger *slog.Logger
	parser *uri.HostParser
	family family
	lookup domain.Lookuper
}

func newCanonicalizer(logger *slog.Logger, opts options, lookup domain.Lookuper) *canonicalizer {
	return &canonicalizer{
		logger: logger,
		parser: uri.NewHostParser(logger, uri.HostOptions{Special: opts.special}),
		family: opts.family,
		lookup: lookup,
	}
}

func (c *canonicalizer) canonicalize(ctx context.Context, input string) (string, error) {
	switch c.family {
	case familyIPv4:
		addr, err := ipv4.ParseAddrWithOptions(input, ipv4.ParseOptions{
			OnValidationError: c.logValidation,
		})
		if err != nil {
			return "", err
		}
		return addr.String(), nil

	case familyIPv6:
		literal := strings.TrimSuffix(strings.TrimPrefix(input, "["), "]")
		addr, err := ipv6.ParseAddr(literal)
		if err != nil {
			return "", err
		}
		return addr.String(), nil
	}

	host, err := c.parser.Parse(input)
	if err != nil {
		return "", err
	}
	if host.Kind != uri.HostDomain || c.lookup == nil {
		return host.String(), nil
	}

	addrs, err := c.lookup.LookupIP(ctx, host.Name)
	if err != nil {
		if errors.Is(err, domain.ErrDomainNotFound) {
			return host.String(), nil
		}
		return "", errors.Wrap(err, "resolving domain")
	}
	return host.String() + "\t" + joinAddrs(addrs), nil
}

func (c *canonicalizer) logValidation(e ip.ValidationError) {
	c.logger.Warn("host validation error",
		"code", e.Code.String(),
		"input", e.Input,
		"component", e.Component,
	)
}

func joinAddrs(addrs []ip.Addr) string {
	reprs := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		if addr.Version() == 6 {
			reprs = append(reprs, "["+addr.String()+"]")
			continue
		}
		reprs = append(reprs, addr.String())
	}
	return strings.Join(reprs, ",")
}

// canonicalizeAll parses inputs with at most workers goroutines. Results
// keep the input order.
func (c *canonicalizer) canonicalizeAll(ctx context.Context, inputs []string, workers int) ([]result, error) {
	results := make([]result, len(inputs))

	var g errgroup.Group
	g.SetLimit(workers)
	for idx, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			output, err := c.canonicalize(ctx, input)
			results[idx] = result{input: input, output: output, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readInputs(r io.Reader) ([]string, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading hosts from stdin")
	}
	return inputs, nil
}

func loadLookuper(path string) (domain.Lookuper, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening hosts file")
	}
	defer f.Close()

	l, err := domain.NewHostsLookuper(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return l, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func execute(
	ctx context.Context,
	opts options,
	args []string,
	stdin io.Reader,
	stdout, stderr io.Writer,
	clk clock.Clock,
) error {
	logger := newLogger(stderr, opts.verbose)

	lookup, err := loadLookuper(opts.hostsFile)
	if err != nil {
		return errors.Wrap(errUsage, err.Error())
	}

	inputs := args
	if len(inputs) == 0 {
		if inputs, err = readInputs(stdin); err != nil {
			return err
		}
	}

	start := clk.Now()
	c := newCanonicalizer(logger, opts, lookup)
	results, err := c.canonicalizeAll(ctx, inputs, opts.workers)
	if err != nil {
		return err
	}
	elapsed := clk.Since(start)

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(stdout, "%s\terror: %v\n", r.input, r.err)
			logger.Debug("host rejected", "input", r.input, "error", r.err.Error())
			continue
		}
		fmt.Fprintf(stdout, "%s\t%s\n", r.input, r.output)
	}

	if opts.stats {
		fmt.Fprintf(stderr, "parsed=%d failed=%d elapsed=%s\n", len(results)-failed, failed, elapsed)
	}

	if failed > 0 {
		return errFailures
	}
	return nil
}
