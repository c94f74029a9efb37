// 14 Oct 2026

// randtab writes a random k-mer frequency table, for testing jsd.
//
//	randtab [-r seed] [-a alphabet] [-j] file nkey k
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/andrew-torda/jsd/pkg/common"
	"github.com/andrew-torda/jsd/pkg/randtab"
	"github.com/urfave/cli/v2"
)

const iseed int64 = 1637

func action(c *cli.Context) error {
	if c.NArg() != 3 {
		cli.ShowAppHelp(c)
		return cli.Exit("Too few args", common.ExitUsageError)
	}
	args := randtab.RandTabArgs{
		Iseed:    c.Int64("r"),
		Alphabet: c.String("a"),
		MaxCount: c.Int("m"),
		Junk:     c.Bool("j"),
	}
	const emsg = "Failed converting %s to positive integer"
	nkey, err := strconv.ParseUint(c.Args().Get(1), 10, 32)
	if err != nil {
		return cli.Exit(fmt.Sprintf(emsg, c.Args().Get(1)), common.ExitFailure)
	}
	k, err := strconv.ParseUint(c.Args().Get(2), 10, 32)
	if err != nil {
		return cli.Exit(fmt.Sprintf(emsg, c.Args().Get(2)), common.ExitFailure)
	}
	args.NKey, args.K = int(nkey), int(k)

	var w io.Writer = c.App.Writer
	if fname := c.Args().Get(0); fname != "-" && fname != "" {
		ft, err := os.Create(fname)
		if err != nil {
			return cli.Exit(fmt.Sprint("File for output: ", err), common.ExitFailure)
		}
		defer ft.Close()
		w = ft
	}
	args.Wrtr = w
	if err := randtab.RandTabMain(&args); err != nil {
		return cli.Exit(err.Error(), common.ExitFailure)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:      "randtab",
		Version:   common.Version,
		UsageText: "randtab [options] file nkey k",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "r", Value: iseed, Usage: "random number seed"},
			&cli.StringFlag{Name: "a", Value: randtab.Nucleotides, Usage: "alphabet for keys"},
			&cli.IntFlag{Name: "m", Value: 100, Usage: "largest count"},
			&cli.BoolFlag{Name: "j", Usage: "add junk lines"},
		},
		HideHelpCommand: true,
		Action:          action,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(common.ExitUsageError)
	}
}
