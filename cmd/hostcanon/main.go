// hostcanon canonicalizes URL host literals.
//
// Usage:
//
//	hostcanon [flags] [HOST...]
//
// Hosts are read from the arguments or, when there are none, one per line
// from stdin. Each output line is the input, a tab, then the canonical host
// or the parse error.
//
//	$ hostcanon 0x7f.1 '[::ffff:192.0.2.1]' Example.COM
//	0x7f.1	127.0.0.1
//	[::ffff:192.0.2.1]	[::ffff:c000:201]
//	Example.COM	example.com
//
// Exit codes: 0 when every host parses, 1 when any fails, 2 on usage errors.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

var (
	errFailures = errors.New("some hosts failed to parse")
	errUsage    = errors.New("usage error")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr, clock.New()))
}

func run(
	ctx context.Context,
	args []string,
	stdin io.Reader,
	stdout, stderr io.Writer,
	clk clock.Clock,
) int {
	app := newApp(stdin, stdout, stderr, clk)
	err := app.Run(ctx, args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFailures):
		return 1
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, err)
		return 1
	default:
		// Everything else is either errUsage or a flag parsing error from
		// the framework.
		fmt.Fprintln(stderr, err)
		return 2
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer, clk clock.Clock) *cli.Command {
	return &cli.Command{
		Name:      "hostcanon",
		Usage:     "canonicalize URL host literals",
		ArgsUsage: "[HOST...]",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "special",
				Usage: "use the host grammar of special schemes (numeric hosts are IPv4)",
				Value: true,
			},
			&cli.StringFlag{
				Name:  "scheme",
				Usage: "derive --special from this scheme",
			},
			&cli.StringFlag{
				Name:    "family",
				Aliases: []string{"f"},
				Usage:   "auto, ipv4 or ipv6",
				Value:   string(familyAuto),
			},
			&cli.StringFlag{
				Name:  "hosts",
				Usage: "hosts(5) style file used to resolve domain hosts",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "number of hosts parsed concurrently",
				Value: 4,
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "print a summary line to stderr",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log validation errors",
			},
		},
		// Exit codes are mapped by run.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := optionsFromCommand(cmd)
			if err != nil {
				return err
			}
			return execute(ctx, opts, cmd.Args().Slice(), stdin, stdout, stderr, clk)
		},
	}
}
