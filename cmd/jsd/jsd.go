// 14 Oct 2026

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/andrew-torda/jsd/pkg/common"
	"github.com/andrew-torda/jsd/pkg/jsd"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// newApp sets up the command line. Defaults come from jsd.DfltFlags,
// then the config file, then explicit flags.
func newApp(prog common.Prog, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      prog.Name,
		Version:   prog.Version,
		Usage:     "distance of two k-mer distributions by Jensen-Shannon divergence",
		UsageText: prog.Name + " -f <first ffp profile> -s <second ffp profile> [-o <output file>]",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "f", Usage: "first profile, \"Sequence Frequency\" format"},
			&cli.StringFlag{Name: "s", Usage: "second profile"},
			&cli.StringFlag{Name: "o", Value: jsd.DfltOutfile, Usage: "output file, - for standard output only"},
			&cli.IntFlag{Name: "t", Value: 1, Usage: "number of threads"},
			&cli.StringFlag{Name: "c", Usage: "write per-key contributions to this csv file"},
			&cli.StringFlag{Name: "config", Usage: "yaml file with defaults for o, t, c, verbose, quiet"},
			&cli.BoolFlag{Name: "verbose", Usage: "debug logging"},
			&cli.BoolFlag{Name: "q", Aliases: []string{"quiet"}, Usage: "only log errors"},
		},
		HideHelpCommand: true,
		OnUsageError: func(c *cli.Context, err error, _ bool) error {
			return errors.Wrap(jsd.ErrInvalidConfig, err.Error())
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return errors.Wrapf(jsd.ErrInvalidConfig, "unexpected argument %s", c.Args().First())
			}
			flags := jsd.DfltFlags()
			if cfg := c.String("config"); cfg != "" {
				if err := flags.LoadConfig(cfg); err != nil {
					return err
				}
			}
			flags.File1 = c.String("f")
			flags.File2 = c.String("s")
			if c.IsSet("o") {
				flags.Outfile = c.String("o")
			}
			if c.IsSet("t") {
				flags.NThread = c.Int("t")
			}
			if c.IsSet("c") {
				flags.ContribFile = c.String("c")
			}
			if c.IsSet("verbose") {
				flags.Verbose = c.Bool("verbose")
			}
			if c.IsSet("q") {
				flags.Quiet = c.Bool("q")
			}
			log := jsd.NewLogger(&flags, stderr)
			defer log.Sync()
			return jsd.Mymain(prog, &flags, stdout, log)
		},
	}
}

// run does the work of main and gives back the exit code.
func run(prog common.Prog, args []string, stdout, stderr io.Writer) int {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(c.App.Writer, "\n%s\n\n", prog)
	}
	app := newApp(prog, stdout, stderr)
	err := app.Run(args)
	switch {
	case err == nil:
		return common.ExitSuccess
	case errors.Is(err, jsd.ErrInvalidConfig):
		fmt.Fprintln(stderr, "*** Error:", err)
		cli.ShowAppHelp(cli.NewContext(app, nil, nil))
		return common.ExitUsageError
	}
	fmt.Fprintln(stderr, "*** Error:", err)
	return common.ExitFailure
}

func main() {
	prog := common.NewProg(os.Args[0])
	os.Exit(run(prog, os.Args, os.Stdout, os.Stderr))
}
