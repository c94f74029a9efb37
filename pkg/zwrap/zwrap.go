// Package zwrap takes a file pointer and, if the contents are gzip
// compressed, wraps it so reads come from the decompressor. Calling
// Close closes the decompressor, followed by the underlying file.
// Frequency profiles from k-mer counters are big and often compressed.
package zwrap

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"

	"github.com/pkg/errors"
)

// FpGzip is what we return.
type FpGzip struct {
	fp   io.ReadCloser
	zrdr *gzip.Reader
}

// Compressed says if reads go through the decompressor.
func (fc *FpGzip) Compressed() bool { return fc.zrdr != nil }

// Close closes the decompressor, then the underlying backing readCloser.
func (fc *FpGzip) Close() error {
	if fc.zrdr == nil {
		return fc.fp.Close()
	}
	e1 := fc.zrdr.Close() // decompressor
	e2 := fc.fp.Close()   // and backing file
	switch {
	case e1 != nil && e2 != nil:
		return errors.Wrap(e2, e1.Error())
	case e1 != nil:
		return e1
	}
	return e2
}

// Read makes sure we read from the compressed stream and
// not the underlying file stream.
func (fc *FpGzip) Read(p []byte) (int, error) {
	if fc.zrdr != nil {
		return fc.zrdr.Read(p)
	}
	return fc.fp.Read(p)
}

// Wrap takes a source like a file pointer and wraps it so the
// decompressor is used. It fails if the stream does not start with
// a gzip header.
func Wrap(fp io.ReadCloser) (*FpGzip, error) {
	zrdr, err := gzip.NewReader(fp)
	if err != nil {
		return nil, err
	}
	return &FpGzip{fp: fp, zrdr: zrdr}, nil
}

var gzipMagic = []byte{0x1f, 0x8b}

// IsGzip peeks at the start of a stream which cannot be rewound and
// says if it looks like gzip. Nothing is consumed.
func IsGzip(br *bufio.Reader) bool {
	b, _ := br.Peek(len(gzipMagic))
	return bytes.Equal(b, gzipMagic)
}

// ReadSeekCloser is what WrapMaybe needs, so it can rewind after
// sniffing the header.
type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// WrapMaybe will decide if the underlying stream is compressed
// and wrap the file pointer if necessary. If it is not compressed,
// the source is rewound and reads go straight through.
func WrapMaybe(fpIn ReadSeekCloser) (*FpGzip, error) {
	if out, err := Wrap(fpIn); err == nil {
		return out, nil
	}
	_, err := fpIn.Seek(0, io.SeekStart)
	return &FpGzip{fp: fpIn}, err // zrdr implicitly nil
}
