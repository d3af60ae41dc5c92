package analysis

import (
	"slices"
	"sort"

	"github.com/SeamusWaldron/glitchcube/internal/cube"
)

// NGram is a move sequence that repeats within a game.
type NGram struct {
	N           int               `json:"n"`
	Sequence    []cube.Move       `json:"-"`
	Notation    string            `json:"sequence"`
	Count       int               `json:"count"`
	Occurrences []NGramOccurrence `json:"occurrences,omitempty"`
}

// NGramOccurrence is where an n-gram was found.
type NGramOccurrence struct {
	StartIndex int   `json:"start_index"`
	TsMs       int64 `json:"ts_ms"`
}

// NGramReport holds the top n-grams keyed by length.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"`
}

// maxOccurrences caps the sample occurrences kept per n-gram.
const maxOccurrences = 10

// RollingHash is a Rabin-Karp hash over a fixed window of tokens.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1)
	window []uint8
	n      int
}

// NewRollingHash creates a rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{base: 31, n: n, window: make([]uint8, 0, n)}
	rh.pow = 1
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}
	return rh
}

// Roll pushes a token, dropping the oldest once the window is full.
func (rh *RollingHash) Roll(t uint8) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, t)
		rh.hash = rh.hash*rh.base + uint64(t)
		return
	}
	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(t)
	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = t
}

// Hash returns the current hash.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []uint8 {
	return slices.Clone(rh.window)
}

// Ready reports whether the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

type ngramEntry struct {
	tokens      []uint8
	first       int
	count       int
	occurrences []NGramOccurrence
}

// MineNGrams finds the topK most frequent repeated sequences for each
// length in [minN, maxN]. Sequences seen once are ignored.
func MineNGrams(moves []TimedMove, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{TopNGrams: make(map[int][]NGram)}
	if minN < 1 || len(moves) < minN {
		return report
	}

	tokens := make([]uint8, len(moves))
	for i, m := range moves {
		tokens[i] = token(m.Move)
	}

	for n := minN; n <= maxN && n <= len(moves); n++ {
		if ngrams := mineN(tokens, moves, n, topK); len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}
	return report
}

func mineN(tokens []uint8, moves []TimedMove, n, topK int) []NGram {
	// Buckets per hash hold every distinct window that collided on it.
	buckets := make(map[uint64][]*ngramEntry)
	var order []*ngramEntry
	rh := NewRollingHash(n)

	for i, t := range tokens {
		rh.Roll(t)
		if !rh.Ready() {
			continue
		}
		start := i - n + 1
		occ := NGramOccurrence{StartIndex: start, TsMs: moves[start].TsMs}

		var entry *ngramEntry
		for _, e := range buckets[rh.Hash()] {
			if slices.Equal(e.tokens, tokens[start:i+1]) {
				entry = e
				break
			}
		}
		if entry == nil {
			entry = &ngramEntry{tokens: rh.Window(), first: start}
			buckets[rh.Hash()] = append(buckets[rh.Hash()], entry)
			order = append(order, entry)
		}
		entry.count++
		if len(entry.occurrences) < maxOccurrences {
			entry.occurrences = append(entry.occurrences, occ)
		}
	}

	var repeated []*ngramEntry
	for _, e := range order {
		if e.count >= 2 {
			repeated = append(repeated, e)
		}
	}
	// Ties keep first appearance order.
	sort.SliceStable(repeated, func(i, j int) bool {
		return repeated[i].count > repeated[j].count
	})
	if len(repeated) > topK {
		repeated = repeated[:topK]
	}

	out := make([]NGram, len(repeated))
	for i, e := range repeated {
		seq := make([]cube.Move, len(e.tokens))
		for j, t := range e.tokens {
			seq[j] = fromToken(t)
		}
		out[i] = NGram{
			N:           n,
			Sequence:    seq,
			Notation:    cube.FormatMoves(seq),
			Count:       e.count,
			Occurrences: e.occurrences,
		}
	}
	return out
}
