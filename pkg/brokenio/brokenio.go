// Package brokenio wraps an io.Reader so reads go wrong in a
// controlled way. Typical use: you get a file pointer or a reader from
// a compressed source and write
//
//	reader = brokenio.NewReader(reader, seed)
//
// Everything then functions as before, but with artificial errors.
// When we introduce a failure on the first read, we return io.EOF
// without data. This is what one often sees on a zero length file.
package brokenio

import (
	"io"
	"math/rand"

	"github.com/pkg/errors"
)

// ErrBroken is returned for every artificial failure.
var ErrBroken = errors.New("brokenio: artificial read failure")

// Reader is modelled on the various Readers in the standard library,
// but with variables controlling the frequency of errors.
// These values are the fraction of time an error will take place,
// so a value of 0.05 means failure in 5% of the cases.
type Reader struct {
	rdrOrig      io.Reader
	rnd          *rand.Rand
	probZeroFile float32 // Probability of returning a zero length file
	probFail     float32 // Probability that a read fails
	failAfter    int64   // Fail once this many bytes went through, if > 0
	nCalled      int
	nByte        int64
}

// NewReader returns a new Reader, a wrapper around the old one.
// The seed makes the failures reproducible.
func NewReader(rIn io.Reader, seed int64) *Reader {
	return &Reader{rdrOrig: rIn, rnd: rand.New(rand.NewSource(seed))}
}

// SetProbZeroFile sets the rate at which we simply return 0 bytes on the
// first read. It must be a value from 0 to 1. We do not check if the
// argument is valid.
func (r *Reader) SetProbZeroFile(prob float32) { r.probZeroFile = prob }

// SetProbFail sets the probability of a read failure.
// It must be between zero and 1.
func (r *Reader) SetProbFail(prob float32) { r.probFail = prob }

// SetFailAfter makes the reader fail once n bytes have been delivered.
func (r *Reader) SetFailAfter(n int64) { r.failAfter = n }

// NByte is the amount of data which made it through.
func (r *Reader) NByte() int64 { return r.nByte }

// Read wraps the original reader and sums up the amount of data that
// has gone through.
func (r *Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probZeroFile > 0 {
		if r.rnd.Float32() < r.probZeroFile {
			r.nCalled++
			return 0, io.EOF
		}
	}
	r.nCalled++
	if r.failAfter > 0 {
		left := r.failAfter - r.nByte
		if left <= 0 {
			return 0, ErrBroken
		}
		if int64(len(p)) > left {
			p = p[:left]
		}
	}
	if r.probFail > 0 && r.rnd.Float32() < r.probFail {
		return 0, ErrBroken
	}
	n, err = r.rdrOrig.Read(p)
	r.nByte += int64(n)
	return n, err
}
