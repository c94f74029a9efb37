// 14 Oct 2026

package jsd

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DfltOutfile is where the result goes if nobody says otherwise.
const DfltOutfile = "JSD_out.txt"

// CmdFlag is literally command line flags after parsing, with
// defaults possibly coming from a config file.
type CmdFlag struct {
	File1       string // first frequency profile
	File2       string // second frequency profile
	Outfile     string // result file, "-" for standard output only
	ContribFile string // optional csv with the per-key breakdown
	NThread     int    // goroutines for the summation
	Verbose     bool   // debug logging
	Quiet       bool   // only log errors
}

// fileConfig is what may appear in a yaml config file. Pointers, so
// we can tell what was set.
type fileConfig struct {
	Outfile     *string `yaml:"outfile"`
	ContribFile *string `yaml:"contrib"`
	NThread     *int    `yaml:"threads"`
	Verbose     *bool   `yaml:"verbose"`
	Quiet       *bool   `yaml:"quiet"`
}

// DfltFlags gives the flags before the config file or command line
// have been looked at.
func DfltFlags() CmdFlag {
	return CmdFlag{Outfile: DfltOutfile, NThread: 1}
}

// LoadConfig reads a yaml file and overwrites whatever settings it
// mentions. Input file names do not belong in a config file.
// An unknown key is an error.
func (flags *CmdFlag) LoadConfig(fname string) error {
	b, err := os.ReadFile(fname)
	if err != nil {
		return errors.Wrapf(ErrInvalidConfig, "config file: %v", err)
	}
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) { // io.EOF, empty file
		return errors.Wrapf(ErrInvalidConfig, "config file %s: %v", fname, err)
	}
	if fc.Outfile != nil {
		flags.Outfile = *fc.Outfile
	}
	if fc.ContribFile != nil {
		flags.ContribFile = *fc.ContribFile
	}
	if fc.NThread != nil {
		flags.NThread = *fc.NThread
	}
	if fc.Verbose != nil {
		flags.Verbose = *fc.Verbose
	}
	if fc.Quiet != nil {
		flags.Quiet = *fc.Quiet
	}
	return nil
}

// sane checks the flags before we read anything.
func sane(flags *CmdFlag) error {
	switch {
	case flags.File1 == "":
		return errors.Wrap(ErrInvalidConfig, "missing first profile (-f)")
	case flags.File2 == "":
		return errors.Wrap(ErrInvalidConfig, "missing second profile (-s)")
	case flags.NThread < 1:
		return errors.Wrapf(ErrInvalidConfig, "check -t option value, got %d", flags.NThread)
	case flags.Verbose && flags.Quiet:
		return errors.Wrap(ErrInvalidConfig, "verbose and quiet together")
	}
	return nil
}
