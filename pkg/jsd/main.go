// 14 Oct 2026

// Package jsd is the body of the jsd command. It reads two frequency
// profiles, calculates their Jensen-Shannon divergence and reports it.
package jsd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/andrew-torda/jsd/pkg/common"
	"github.com/andrew-torda/jsd/pkg/diverg"
	"github.com/andrew-torda/jsd/pkg/freqtab"
	"github.com/andrew-torda/matrix"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidConfig covers bad or missing options.
var ErrInvalidConfig = errors.New("invalid configuration")

// warnExists logs a warning if we are about to trash a file.
func warnExists(fname string, log *zap.Logger) {
	if _, err := os.Stat(fname); err == nil {
		log.Warn("trashing old version", zap.String("file", fname))
	}
}

// readtwofiles reads the two profiles, each in its own goroutine,
// and waits for both.
func readtwofiles(file1, file2 string, log *zap.Logger) (t1, t2 *freqtab.Table, err error) {
	var g errgroup.Group
	get := func(fname string, tp **freqtab.Table) func() error {
		return func() error {
			t, err := freqtab.ReadFile(fname)
			if err != nil {
				return err
			}
			log.Debug("read profile", zap.String("file", fname),
				zap.Int("keys", t.Len()), zap.Int("lines", t.NLine),
				zap.Int("skipped", t.NSkip), zap.Int("dup", t.NDup),
				zap.String("size", humanize.Bytes(uint64(t.NByte))))
			*tp = t
			return nil
		}
	}
	g.Go(get(file1, &t1))
	g.Go(get(file2, &t2))
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return t1, t2, nil
}

// fmtResult is the one line of output.
func fmtResult(v float64) string {
	return "JSD value=" + strconv.FormatFloat(v, 'g', -1, 64)
}

// writeResult writes the result line to stdout and to the output file.
// The file is created first, so a bad path means no result at all.
func writeResult(outfile, line string, stdout io.Writer, log *zap.Logger) error {
	var fp io.WriteCloser
	if outfile != "" && outfile != "-" {
		warnExists(outfile, log)
		var err error
		if fp, err = os.Create(outfile); err != nil {
			return errors.Wrap(err, "output file")
		}
	}
	if _, err := fmt.Fprintln(stdout, line); err != nil {
		if fp != nil {
			fp.Close()
		}
		return err
	}
	if fp == nil {
		return nil
	}
	if _, err := fmt.Fprintln(fp, line); err != nil {
		fp.Close()
		return errors.Wrapf(err, "writing %s", outfile)
	}
	return errors.Wrapf(fp.Close(), "closing %s", outfile)
}

// writeContrib writes the per-key breakdown in csv format.
func writeContrib(fname string, keys []string, mat *matrix.FMatrix2d, log *zap.Logger) error {
	warnExists(fname, log)
	fp, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "contribution file")
	}
	defer fp.Close()
	if _, err := fmt.Fprintln(fp, `"key","p","q","m","term"`); err != nil {
		return errors.Wrapf(err, "writing %s", fname)
	}
	for i, k := range keys {
		row := mat.Mat[i]
		if _, err := fmt.Fprintf(fp, "%s,%g,%g,%g,%g\n", k, row[diverg.ColP],
			row[diverg.ColQ], row[diverg.ColM], row[diverg.ColTerm]); err != nil {
			return errors.Wrapf(err, "writing %s", fname)
		}
	}
	return errors.Wrapf(fp.Close(), "closing %s", fname)
}

// Mymain is the main function for the divergence calculation. The
// result goes to stdout and the output file, diagnostics to log.
// The per-key csv, if wanted, is written first, so a failed run never
// leaves a result line behind.
func Mymain(prog common.Prog, flags *CmdFlag, stdout io.Writer, log *zap.Logger) error {
	if err := sane(flags); err != nil {
		return err
	}
	startTime := time.Now()
	log.Info("Beginning " + prog.String())

	t1, t2, err := readtwofiles(flags.File1, flags.File2, log)
	if err != nil {
		return err
	}
	p, q, err := diverg.NormalizePair(t1, t2)
	if err != nil {
		return err
	}
	v := diverg.JSD(p, q, flags.NThread)
	log.Debug("divergence", zap.Int("keys1", len(p)), zap.Int("keys2", len(q)),
		zap.Int("threads", flags.NThread))

	if flags.ContribFile != "" {
		keys, mat := diverg.Contrib(p, q)
		if err := writeContrib(flags.ContribFile, keys, mat, log); err != nil {
			return err
		}
	}
	if err := writeResult(flags.Outfile, fmtResult(v), stdout, log); err != nil {
		return err
	}
	log.Info("Ending "+prog.Name,
		zap.Float64("elapsed_s", time.Since(startTime).Seconds()))
	return nil
}
