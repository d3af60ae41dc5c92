package analysis

import (
	"sort"

	"github.com/SeamusWaldron/glitchcube"
	"github.com/SeamusWaldron/glitchcube/internal/cube"
)

// Algorithm is a named face-notation sequence.
type Algorithm struct {
	Name     string
	Notation string
	steps    []step
}

// step is one face move; a half turn matches two equal quarter turns in
// either direction.
type step struct {
	move cube.Move
	half bool
}

func mustAlgorithm(name, notation string) Algorithm {
	moves, err := glitchcube.ParseMoves(notation)
	if err != nil {
		panic(err)
	}
	a := Algorithm{Name: name, Notation: notation}
	for _, m := range moves {
		a.steps = append(a.steps, step{move: m.FrameMoves()[0], half: m.Turn == glitchcube.Double})
	}
	return a
}

// Known algorithms, longest first so longer matches win.
var (
	Sune         = mustAlgorithm("Sune", "R U R' U R U2 R'")
	AntiSune     = mustAlgorithm("Anti-Sune", "R U2 R' U' R U' R'")
	LeftSune     = mustAlgorithm("Left Sune", "L' U' L U' L' U2 L")
	SexyMove     = mustAlgorithm("Sexy Move", "R U R' U'")
	ReverseSexy  = mustAlgorithm("Reverse Sexy", "U R U' R'")
	Sledgehammer = mustAlgorithm("Sledgehammer", "R' F R F'")
)

// AllAlgorithms lists every known algorithm in match priority order.
var AllAlgorithms = []Algorithm{Sune, AntiSune, LeftSune, SexyMove, ReverseSexy, Sledgehammer}

// AlgorithmMatch is one detected use of an algorithm.
type AlgorithmMatch struct {
	Name       string `json:"name"`
	StartIndex int    `json:"start_index"`
	EndIndex   int    `json:"end_index"`
	TsMs       int64  `json:"ts_ms"`
}

// AlgorithmReport summarises algorithm use in a game.
type AlgorithmReport struct {
	Matches            []AlgorithmMatch `json:"matches"`
	Counts             map[string]int   `json:"counts"`
	ConsecutiveRepeats int              `json:"consecutive_repeats"`
	UnmatchedMoves     int              `json:"unmatched_moves"`
}

// matchAt returns the index after the match of a at moves[i:].
func (a Algorithm) matchAt(moves []TimedMove, i int) (int, bool) {
	for _, s := range a.steps {
		if i >= len(moves) {
			return 0, false
		}
		m := moves[i].Move
		if !s.half {
			if m != s.move {
				return 0, false
			}
			i++
			continue
		}
		if m.Frame != s.move.Frame || i+1 >= len(moves) || moves[i+1].Move != m {
			return 0, false
		}
		i += 2
	}
	return i, true
}

// DetectAlgorithms scans moves left to right for known algorithms. Matches
// do not overlap.
func DetectAlgorithms(moves []TimedMove) *AlgorithmReport {
	r := &AlgorithmReport{Matches: []AlgorithmMatch{}, Counts: make(map[string]int)}

	lastEnd := -1
	lastName := ""
	for i := 0; i < len(moves); {
		matched := false
		for _, a := range AllAlgorithms {
			end, ok := a.matchAt(moves, i)
			if !ok {
				continue
			}
			r.Matches = append(r.Matches, AlgorithmMatch{
				Name:       a.Name,
				StartIndex: i,
				EndIndex:   end - 1,
				TsMs:       moves[i].TsMs,
			})
			r.Counts[a.Name]++
			if lastEnd == i-1 && lastName == a.Name {
				r.ConsecutiveRepeats++
			}
			lastEnd, lastName = end-1, a.Name
			i = end
			matched = true
			break
		}
		if !matched {
			r.UnmatchedMoves++
			i++
		}
	}
	return r
}

// Names returns the detected algorithm names sorted by use, most used first.
func (r *AlgorithmReport) Names() []string {
	names := make([]string, 0, len(r.Counts))
	for n := range r.Counts {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if r.Counts[names[i]] != r.Counts[names[j]] {
			return r.Counts[names[i]] > r.Counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
