// 14 Oct 2026

// Package diverg calculates the Jensen-Shannon divergence between two
// sparse frequency tables. With p and q normalised and m = (p + q) / 2,
//
//	JSD = H(m) - H(p)/2 - H(q)/2
//
// using base 2 logarithms, so the result lies in [0, 1]. We do it as
// one running sum over the keys of m. A key which is missing from p
// or q has probability zero there and adds nothing.
package diverg

import (
	"math"
	"sort"

	"github.com/andrew-torda/jsd/pkg/freqtab"
	"github.com/andrew-torda/matrix"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrDegenerateInput is returned when a table has nothing to normalise.
var ErrDegenerateInput = errors.New("degenerate input, total count is zero")

// chunkSize is the number of keys handled per partial sum. It must not
// depend on the number of threads, or the rounding would.
const chunkSize = 4096

// roundoff is how far outside [0, 1] we will put down to rounding.
const roundoff = 1e-12

// Dist is a probability distribution over keys.
type Dist map[string]float64

// Normalize divides each count by the table total.
func Normalize(tab *freqtab.Table) (Dist, error) {
	if !(tab.Total > 0) || math.IsInf(tab.Total, 0) {
		return nil, errors.Wrapf(ErrDegenerateInput, "total %v over %d keys", tab.Total, tab.Len())
	}
	p := make(Dist, len(tab.Counts))
	for k, c := range tab.Counts {
		p[k] = c / tab.Total
	}
	return p, nil
}

// Mixture gives the average of p and q over the union of their keys.
func Mixture(p, q Dist) Dist {
	m := make(Dist, len(p)+len(q))
	for k, pk := range p {
		if qk, ok := q[k]; ok {
			m[k] = (pk + qk) / 2
		} else {
			m[k] = pk / 2
		}
	}
	for k, qk := range q {
		if _, ok := p[k]; !ok {
			m[k] = qk / 2
		}
	}
	return m
}

// unionKeys returns the keys of p and q, sorted, each once.
func unionKeys(p, q Dist) []string {
	keys := make([]string, 0, len(p)+len(q))
	for k := range p {
		keys = append(keys, k)
	}
	for k := range q {
		if _, ok := p[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// xlog2x is x log2(x), with the limit of 0 at x = 0.
func xlog2x(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return x * math.Log2(x)
}

// term gives the mixture value and the contribution of one key.
func term(pk, qk float64) (m, t float64) {
	m = (pk + qk) / 2
	t = -xlog2x(m) + 0.5*xlog2x(pk) + 0.5*xlog2x(qk)
	return m, t
}

// partial sums the terms for a run of keys.
func partial(keys []string, p, q Dist) float64 {
	var sum float64
	for _, k := range keys {
		_, t := term(p[k], q[k]) // missing keys give zero
		sum += t
	}
	return sum
}

// clamp removes rounding noise at the ends of [0, 1].
func clamp(x float64) float64 {
	switch {
	case x < 0 && x > -roundoff:
		return 0
	case x > 1 && x < 1+roundoff:
		return 1
	}
	return x
}

// JSD returns the Jensen-Shannon divergence of p and q. The keys are
// split into chunks, which are summed by up to nThread goroutines.
// The chunk sums are added in order, so the answer does not change
// with nThread.
func JSD(p, q Dist, nThread int) float64 {
	keys := unionKeys(p, q)
	nChunk := (len(keys) + chunkSize - 1) / chunkSize
	sums := make([]float64, nChunk)
	if nThread < 1 {
		nThread = 1
	}

	var g errgroup.Group
	g.SetLimit(nThread)
	for i := 0; i < nChunk; i++ {
		i := i
		lo, hi := i*chunkSize, (i+1)*chunkSize
		if hi > len(keys) {
			hi = len(keys)
		}
		g.Go(func() error {
			sums[i] = partial(keys[lo:hi], p, q)
			return nil
		})
	}
	g.Wait() // nobody returns an error

	var jsd float64
	for _, s := range sums {
		jsd += s
	}
	return clamp(jsd)
}

// NormalizePair normalises both tables, saying which one was bad.
func NormalizePair(t1, t2 *freqtab.Table) (p, q Dist, err error) {
	if p, err = Normalize(t1); err != nil {
		return nil, nil, errors.WithMessage(err, "first table")
	}
	if q, err = Normalize(t2); err != nil {
		return nil, nil, errors.WithMessage(err, "second table")
	}
	return p, q, nil
}

// ComputeJSD normalises two count tables and returns their divergence.
func ComputeJSD(t1, t2 *freqtab.Table, nThread int) (float64, error) {
	p, q, err := NormalizePair(t1, t2)
	if err != nil {
		return 0, err
	}
	return JSD(p, q, nThread), nil
}

// Column order in the matrix from Contrib.
const (
	ColP = iota
	ColQ
	ColM
	ColTerm
	NCol
)

// Contrib breaks the divergence down by key. Row i of the matrix
// belongs to keys[i], which are sorted. The columns are p, q, the
// mixture and the key's term in the sum. Values are float32, so the
// term column only adds up to the JSD approximately.
func Contrib(p, q Dist) ([]string, *matrix.FMatrix2d) {
	keys := unionKeys(p, q)
	mat := matrix.NewFMatrix2d(len(keys), NCol)
	for i, k := range keys {
		pk, qk := p[k], q[k]
		m, t := term(pk, qk)
		row := mat.Mat[i]
		row[ColP] = float32(pk)
		row[ColQ] = float32(qk)
		row[ColM] = float32(m)
		row[ColTerm] = float32(t)
	}
	return keys, mat
}
