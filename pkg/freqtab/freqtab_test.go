// 14 Oct 2026

package freqtab_test

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/andrew-torda/jsd/pkg/brokenio"
	"github.com/andrew-torda/jsd/pkg/common"
	. "github.com/andrew-torda/jsd/pkg/freqtab"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodTab = `AAA 2
AAC 4.5
ACG 1e1
TTT 0
`

const badTab = `AAA 2

AAC 4.5
GGG abc
ACG 1e1
CCC
   
TTT 0
CAT -3
TAC NaN
GTA +Inf
`

func TestParseLine(t *testing.T) {
	good := []struct {
		line string
		key  string
		c    float64
	}{
		{"AACG 12", "AACG", 12},
		{"  AACG\t12  ", "AACG", 12},
		{"x 0.25 trailing junk", "x", 0.25},
		{"k 1e3", "k", 1000},
		{"k 0", "k", 0},
	}
	for _, g := range good {
		key, c, ok := ParseLine([]byte(g.line))
		require.True(t, ok, g.line)
		assert.Equal(t, g.key, key)
		assert.Equal(t, g.c, c)
	}
	for _, b := range []string{"", " ", "AACG", "AACG twelve", "AACG -1", "a inf", "a nan", "12abc AACG"} {
		_, _, ok := ParseLine([]byte(b))
		assert.False(t, ok, "should reject %q", b)
	}
}

func TestRead(t *testing.T) {
	tab, err := Read(strings.NewReader(goodTab))
	require.NoError(t, err)
	want := map[string]float64{"AAA": 2, "AAC": 4.5, "ACG": 10, "TTT": 0}
	if diff := cmp.Diff(want, tab.Counts); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 16.5, tab.Total)
	assert.Equal(t, 4, tab.NLine)
	assert.Zero(t, tab.NSkip)
	assert.Equal(t, []string{"AAA", "AAC", "ACG", "TTT"}, tab.Keys())
}

// Bad lines must make no difference to the table.
func TestMalformedSkipped(t *testing.T) {
	good, err := Read(strings.NewReader(goodTab))
	require.NoError(t, err)
	bad, err := Read(strings.NewReader(badTab))
	require.NoError(t, err)
	if diff := cmp.Diff(good.Counts, bad.Counts); diff != "" {
		t.Fatalf("malformed lines changed table (-good +bad):\n%s", diff)
	}
	assert.Equal(t, good.Total, bad.Total)
	assert.Equal(t, 7, bad.NSkip)
}

// A repeated key keeps its last count and the total only counts the
// stored values.
func TestDuplicateKey(t *testing.T) {
	tab, err := Read(strings.NewReader("k 3\nother 1\nk 5\n"))
	require.NoError(t, err)
	assert.Equal(t, 5.0, tab.Counts["k"])
	assert.Equal(t, 6.0, tab.Total)
	assert.Equal(t, 1, tab.NDup)
	assert.Equal(t, tab.Sum(), tab.Total)
}

func TestReadBroken(t *testing.T) {
	rdr := brokenio.NewReader(strings.NewReader(goodTab), 1)
	rdr.SetFailAfter(9)
	_, err := Read(rdr)
	assert.True(t, errors.Is(err, ErrSourceUnavailable), "got %v", err)
}

func TestFromMap(t *testing.T) {
	m := map[string]float64{"a": 1, "b": 3}
	tab := FromMap(m)
	m["a"] = 100
	assert.Equal(t, 4.0, tab.Total)
	assert.Equal(t, 1.0, tab.Counts["a"])
	assert.Equal(t, 2, tab.Len())
}

func TestReadFile(t *testing.T) {
	fname, err := common.WrtTemp(badTab)
	require.NoError(t, err)
	defer os.Remove(fname)
	tab, err := ReadFile(fname)
	require.NoError(t, err)
	assert.Equal(t, 16.5, tab.Total)
	assert.Equal(t, 4, tab.Len())
	assert.Equal(t, int64(len(badTab)), tab.NByte)
}

func TestReadFileGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(goodTab))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	fname := filepath.Join(t.TempDir(), "tab.gz")
	require.NoError(t, os.WriteFile(fname, buf.Bytes(), 0o644))

	tab, err := ReadFile(fname)
	require.NoError(t, err)
	assert.Equal(t, 16.5, tab.Total)
	assert.Equal(t, 4, tab.Len())
}

func TestReadFileEmpty(t *testing.T) {
	fname, err := common.WrtTemp("")
	require.NoError(t, err)
	defer os.Remove(fname)
	tab, err := ReadFile(fname)
	require.NoError(t, err)
	assert.Zero(t, tab.Len())
	assert.Zero(t, tab.Total)
}

func TestReadFileMissing(t *testing.T) {
	for _, fname := range []string{"notexist", t.TempDir()} {
		_, err := ReadFile(fname)
		assert.True(t, errors.Is(err, ErrSourceUnavailable), "%s gave %v", fname, err)
	}
}

// Lines which are too long are dropped like any other bad line,
// whether or not they fit in the read buffer.
func TestLongLine(t *testing.T) {
	const limit = 100 * 1024
	defer SetMaxLine(SetMaxLine(limit))
	fits := strings.Repeat("A", 80*1024) // bigger than the read buffer
	tooLong := strings.Repeat("C", 2*limit)
	s := "x 1\n" + tooLong + " 5\n" + fits + " 3\ny 2\n"
	tab, err := Read(strings.NewReader(s))
	require.NoError(t, err)
	assert.Equal(t, 1, tab.NSkip)
	assert.Equal(t, 4, tab.NLine)
	want := map[string]float64{"x": 1, fits: 3, "y": 2}
	assert.True(t, cmp.Equal(want, tab.Counts), "wrong keys, %d of them", tab.Len())
	assert.Equal(t, 6.0, tab.Total)

	tab, err = Read(strings.NewReader("x 1\n" + tooLong)) // no final newline
	require.NoError(t, err)
	assert.Equal(t, 1, tab.NSkip)
	assert.Equal(t, 1, tab.Len())
}

func TestByteOrderMark(t *testing.T) {
	tab, err := Read(strings.NewReader("\ufeffx 1\r\ny 2\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, tab.Keys())
	assert.Zero(t, tab.NSkip)
}

// readPipe feeds s through a pipe and reads it back with ReadFile.
func readPipe(t *testing.T, b []byte) *Table {
	if runtime.GOOS != "linux" {
		t.Skip("needs /dev/fd")
	}
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	go func() {
		w.Write(b)
		w.Close()
	}()
	tab, err := ReadFile(fmt.Sprintf("/dev/fd/%d", r.Fd()))
	require.NoError(t, err)
	return tab
}

func TestReadFilePipe(t *testing.T) {
	tab := readPipe(t, []byte("x 2\ny 2\n"))
	assert.Equal(t, 2, tab.Len())
	assert.Equal(t, 4.0, tab.Total)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(goodTab))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	tab = readPipe(t, buf.Bytes())
	assert.Equal(t, 16.5, tab.Total)
	assert.Equal(t, 4, tab.Len())
}
