package main

import (
	"host-literal/application/util/uri"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

type family string

const (
	familyAuto family = "auto"
	familyIPv4 family = "ipv4"
	familyIPv6 family = "ipv6"
)

type options struct {
	special   bool
	family    family
	hostsFile string
	workers   int
	stats     bool
	verbose   bool
}

func optionsFromCommand(cmd *cli.Command) (options, error) {
	opts := options{
		special:   cmd.Bool("special"),
		family:    family(cmd.String("family")),
		hostsFile: cmd.String("hosts"),
		workers:   int(cmd.Int("workers")),
		stats:     cmd.Bool("stats"),
		verbose:   cmd.Bool("verbose"),
	}

	if scheme := cmd.String("scheme"); scheme != "" {
		opts.special = uri.IsSpecial(scheme)
	}

	switch opts.family {
	case familyAuto, familyIPv4, familyIPv6:
	default:
		return options{}, errors.Wrapf(errUsage, "unknown family %q", opts.family)
	}

	if opts.workers < 1 {
		return options{}, errors.Wrapf(errUsage, "workers must be positive, got %d", opts.workers)
	}

	return opts, nil
}
