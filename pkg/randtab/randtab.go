// 14 Oct 2026

// Package randtab writes random k-mer frequency tables. They are
// used as test data and for timing.
package randtab

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/pkg/errors"
)

// Nucleotides is the default alphabet.
const Nucleotides = "ACGT"

// RandTabArgs is the set of arguments passed to the main function
type RandTabArgs struct {
	Iseed    int64     // random number seed
	Wrtr     io.Writer // where we write to
	Alphabet string    // symbols for building keys, Nucleotides if empty
	K        int       // length of each key
	NKey     int       // number of distinct keys
	MaxCount int       // counts are drawn from 1..MaxCount
	Junk     bool      // sprinkle in blank and malformed lines
}

type rec struct {
	key   []byte
	count int
}

// nPossible is len(alphabet)^k, capped so it cannot overflow.
func nPossible(nsym, k int) int {
	const big = 1 << 40
	n := 1
	for i := 0; i < k; i++ {
		if n *= nsym; n > big {
			return big
		}
	}
	return n
}

// writetab takes records off the channel and writes them. With junk
// set, roughly one line in ten is rubbish.
func writetab(rChan <-chan rec, args *RandTabArgs, errp *error, wg *sync.WaitGroup) {
	defer wg.Done()
	w := bufio.NewWriter(args.Wrtr)
	junkrnd := rand.New(rand.NewSource(args.Iseed + 1))
	junk := []string{"\n", "   \n", "NOCOUNT\n", "ACGT abc\n", "# comment\n"}
	var err error
	for r := range rChan {
		if err != nil {
			continue // drain, so the sender is not stuck
		}
		if args.Junk && junkrnd.Intn(10) == 0 {
			_, err = io.WriteString(w, junk[junkrnd.Intn(len(junk))])
		}
		if err == nil {
			_, err = fmt.Fprintf(w, "%s %d\n", r.key, r.count)
		}
	}
	if err == nil {
		err = w.Flush()
	}
	*errp = err
}

// RandTabMain writes a random table to args.Wrtr.
func RandTabMain(args *RandTabArgs) error {
	alphabet := args.Alphabet
	if alphabet == "" {
		alphabet = Nucleotides
	}
	if args.K < 1 || args.MaxCount < 1 || args.NKey < 0 {
		return errors.Errorf("randtab: want k >= 1, maxcount >= 1, nkey >= 0, got %d %d %d",
			args.K, args.MaxCount, args.NKey)
	}
	if n := nPossible(len(alphabet), args.K); args.NKey > n {
		return errors.Errorf("randtab: only %d keys of length %d, asked for %d", n, args.K, args.NKey)
	}
	rnd := rand.New(rand.NewSource(args.Iseed))
	seen := make(map[string]bool, args.NKey)
	var wg sync.WaitGroup
	var werr error
	rChan := make(chan rec)
	wg.Add(1)
	go writetab(rChan, args, &werr, &wg)
	for len(seen) < args.NKey {
		key := make([]byte, args.K)
		for i := range key {
			key[i] = alphabet[rnd.Intn(len(alphabet))]
		}
		if seen[string(key)] {
			continue
		}
		seen[string(key)] = true
		rChan <- rec{key: key, count: 1 + rnd.Intn(args.MaxCount)}
	}
	close(rChan)
	wg.Wait()
	return errors.Wrap(werr, "randtab writing")
}
