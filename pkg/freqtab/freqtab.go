// 14 Oct 2026

// Package freqtab reads sparse frequency tables. These are the
// "sequence frequency" profiles written by k-mer counters, one record
// per line, a key followed by its count:
//
//	AACG 12
//	AACT 3
//
// Lines which do not look like this are dropped and counted, but they
// are not an error.
package freqtab

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/andrew-torda/jsd/pkg/zwrap"
	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// ErrSourceUnavailable means we could not open or read an input.
var ErrSourceUnavailable = errors.New("source unavailable")

var maxLine = 16 * 1024 * 1024 // longest line we will swallow

var utf8BOM = []byte("\xef\xbb\xbf")

// Table maps each key to its count. Total is the sum of the stored
// counts. If a key appears twice, the last count wins and the earlier
// one is not part of the total.
type Table struct {
	Counts map[string]float64
	Total  float64
	NLine  int   // number of lines seen
	NSkip  int   // malformed lines, silently dropped
	NDup   int   // lines which overwrote an earlier key
	NByte  int64 // size of the source file, if we read from one
}

// New gives an empty table.
func New() *Table {
	return &Table{Counts: make(map[string]float64)}
}

// FromMap builds a table from a map of counts. The map is copied.
func FromMap(m map[string]float64) *Table {
	t := New()
	for k, v := range m {
		t.Counts[k] = v
	}
	t.Total = t.Sum()
	return t
}

// Len is the number of distinct keys.
func (t *Table) Len() int { return len(t.Counts) }

// Keys returns the keys in sorted order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.Counts))
	for k := range t.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sum adds up the counts. We walk the keys in sorted order, so the
// last bits of the sum do not depend on map iteration order.
func (t *Table) Sum() float64 {
	var sum float64
	for _, k := range t.Keys() {
		sum += t.Counts[k]
	}
	return sum
}

// parseLine gets the key and count from one line. Fields after the
// count are ignored.
func parseLine(line []byte) (string, float64, bool) {
	flds := bytes.Fields(line)
	if len(flds) < 2 {
		return "", 0, false
	}
	c, err := strconv.ParseFloat(string(flds[1]), 64)
	if err != nil || c < 0 || math.IsInf(c, 0) || math.IsNaN(c) {
		return "", 0, false
	}
	return string(flds[0]), c, true
}

// readLine gets the next line from br, without looking at it. A line
// longer than maxLine comes back empty with tooLong set, and the rest
// of it is thrown away. buf is scratch space for lines which do not
// fit in br's buffer.
func readLine(br *bufio.Reader, buf []byte) (line []byte, tooLong bool, err error) {
	line = buf[:0]
	for {
		var frag []byte
		frag, err = br.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(frag) > maxLine {
				tooLong, line = true, line[:0]
			} else {
				line = append(line, frag...)
			}
		}
		if err != bufio.ErrBufferFull {
			return line, tooLong, err
		}
	}
}

// Read parses a table from a reader.
func Read(rdr io.Reader) (*Table, error) {
	t := New()
	br := bufio.NewReaderSize(rdr, 64*1024)
	var buf []byte
	for {
		line, tooLong, err := readLine(br, buf)
		buf = line
		if err != nil && err != io.EOF {
			return nil, errors.Wrapf(ErrSourceUnavailable, "line %d: %v", t.NLine+1, err)
		}
		if len(line) == 0 && !tooLong && err == io.EOF {
			break
		}
		t.NLine++
		if t.NLine == 1 {
			line = bytes.TrimPrefix(line, utf8BOM)
		}
		key, c, ok := parseLine(line)
		switch {
		case tooLong || !ok:
			t.NSkip++
		default:
			if _, seen := t.Counts[key]; seen {
				t.NDup++
			}
			t.Counts[key] = c
		}
		if err == io.EOF {
			break
		}
	}
	t.Total = t.Sum()
	return t, nil
}

// byMmap maps the file and parses straight out of the mapping.
func byMmap(fp *os.File) (*Table, error) {
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrap(ErrSourceUnavailable, err.Error())
	}
	defer mm.Unmap()
	return Read(bytes.NewReader(mm))
}

// byGzip is used when WrapMaybe found a compressed file.
func byGzip(z *zwrap.FpGzip) (*Table, error) {
	t, err := Read(z)
	if e := z.Close(); e != nil && err == nil {
		err = errors.Wrap(ErrSourceUnavailable, e.Error())
	}
	return t, err
}

// byStream is for pipes, devices and the like, which cannot be mapped
// or rewound. We peek at the start to see if it is compressed.
func byStream(fp *os.File) (*Table, error) {
	br := bufio.NewReader(fp)
	if !zwrap.IsGzip(br) {
		return Read(br)
	}
	z, err := zwrap.Wrap(io.NopCloser(br))
	if err != nil {
		return nil, errors.Wrap(ErrSourceUnavailable, err.Error())
	}
	return byGzip(z) // fp is closed by the caller
}

// byRegular handles ordinary files. Gzipped ones are decompressed on
// the fly, others memory mapped.
func byRegular(fp *os.File, fi os.FileInfo) (*Table, error) {
	if fi.Size() == 0 { // cannot map zero bytes
		fp.Close()
		return New(), nil
	}
	z, err := zwrap.WrapMaybe(fp)
	switch {
	case err != nil:
		fp.Close()
		return nil, errors.Wrap(ErrSourceUnavailable, err.Error())
	case z.Compressed():
		return byGzip(z) // closes fp
	}
	defer fp.Close()
	return byMmap(fp)
}

// ReadFile reads a table from a named file. Regular files may be
// gzipped or plain. Anything else which can be opened, like a pipe
// or /dev/stdin, is read as a stream.
func ReadFile(fname string) (*Table, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(ErrSourceUnavailable, err.Error())
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, errors.Wrapf(ErrSourceUnavailable, "%s: %v", fname, err)
	}
	if fi.IsDir() {
		fp.Close()
		return nil, errors.Wrapf(ErrSourceUnavailable, "%s is a directory", fname)
	}

	var t *Table
	if fi.Mode().IsRegular() {
		t, err = byRegular(fp, fi)
	} else {
		t, err = byStream(fp)
		fp.Close()
	}
	if err != nil {
		return nil, errors.WithMessage(err, fname)
	}
	t.NByte = fi.Size()
	return t, nil
}
