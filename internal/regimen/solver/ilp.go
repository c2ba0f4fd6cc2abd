package solver

import (
	"math"

	"github.com/nirmitee/drugregimen/internal/regimen/model"
)

// Input bundles the candidate fetch and conflict build outputs every
// solver needs, so both Ilp and Greedy share one call shape.
type Input struct {
	CandidateIDs []string // deterministic, first-seen order
	DrugInfo     map[string]*model.Candidate
	Coverage     model.CoverageMap
	Conflicts    []model.ConflictEdge
	Conditions   []string
}

// Output is the raw result of one solve: the selected drug IDs and the
// number of conflict edges realized among them. The assembler turns
// this into the public model.Result.
type Output struct {
	Selected      []string
	ConflictCount int
}

func pairWeights(edges []model.ConflictEdge, w Weights) map[string]map[string]float64 {
	m := make(map[string]map[string]float64, len(edges))
	add := func(a, b string, weight float64) {
		if m[a] == nil {
			m[a] = make(map[string]float64)
		}
		m[a][b] = weight
	}
	for _, e := range edges {
		weight := w.Metabolic
		if e.Kind == model.ConflictDirect {
			weight = w.Direct
		}
		add(e.DrugA, e.DrugB, weight)
		add(e.DrugB, e.DrugA, weight)
	}
	return m
}

func countRealizedConflicts(edges []model.ConflictEdge, selected map[string]bool) int {
	count := 0
	for _, e := range edges {
		if selected[e.DrugA] && selected[e.DrugB] {
			count++
		}
	}
	return count
}

// routeMismatch reports whether a and b carry distinct, known
// administration routes — e.g. an ophthalmic drug alongside an oral
// one. Candidates with an unknown (empty) route never mismatch; there
// is nothing to penalize without a recorded route on both sides.
func routeMismatch(a, b *model.Candidate) bool {
	return a.Route != "" && b.Route != "" && a.Route != b.Route
}

// Ilp is IlpSolver: an exact branch-and-bound search over the binary
// candidate variables. There is no third-party MILP backend anywhere
// in the available dependency set, so the search is hand-rolled; it
// relies on the objective being strictly positive-weighted (so partial
// cost is monotone non-decreasing along the search) to prune
// aggressively, and on a precomputed suffix-coverage bitmask to cut
// branches that can no longer cover a required condition. Candidate
// counts in this domain are clinically small (tens, not thousands),
// which keeps the exponential worst case from mattering in practice.
type Ilp struct {
	Weights Weights
}

// NewIlp constructs an Ilp solver with the given weights.
func NewIlp(w Weights) *Ilp {
	return &Ilp{Weights: w}
}

// Solve runs the branch-and-bound search described above and returns
// the minimum-cost feasible selection.
func (s *Ilp) Solve(in Input) (Output, error) {
	n := len(in.CandidateIDs)
	if n == 0 {
		return Output{}, nil
	}
	if n > 63 {
		return s.solveLargeN(in)
	}

	// Required conditions are those with at least one covering
	// candidate; conditions with empty coverage yield no constraint.
	var required []string
	for _, c := range in.Conditions {
		if len(in.Coverage[c]) > 0 {
			required = append(required, c)
		}
	}
	nReq := len(required)
	var fullMask uint64
	if nReq > 0 {
		fullMask = 1<<uint(nReq) - 1
	}

	coverBits := make(map[string]uint64, n)
	for _, id := range in.CandidateIDs {
		var mask uint64
		for i, c := range required {
			if in.Coverage.Covers(c, id) {
				mask |= 1 << uint(i)
			}
		}
		coverBits[id] = mask
	}

	suffixCoverage := make([]uint64, n+1)
	for i := n - 1; i >= 0; i-- {
		suffixCoverage[i] = suffixCoverage[i+1] | coverBits[in.CandidateIDs[i]]
	}

	pw := pairWeights(in.Conflicts, s.Weights)

	best := struct {
		cost     float64
		selected []string
	}{cost: math.Inf(1), selected: nil}

	var dfs func(i int, coveredMask uint64, cost float64, selected []string)
	dfs = func(i int, coveredMask uint64, cost float64, selected []string) {
		if coveredMask|suffixCoverage[i] != fullMask {
			return
		}
		if cost >= best.cost {
			return
		}
		if i == n {
			if coveredMask == fullMask {
				best.cost = cost
				best.selected = append([]string(nil), selected...)
			}
			return
		}

		id := in.CandidateIDs[i]
		info := in.DrugInfo[id]

		addCost := s.Weights.Count + s.Weights.Safety*info.ToxicityScore + s.Weights.Price*info.PriceVal
		for _, sel := range selected {
			if weight, ok := pw[id][sel]; ok {
				addCost += weight
			}
			if s.Weights.RoutePenalty != 0 && routeMismatch(info, in.DrugInfo[sel]) {
				addCost += s.Weights.RoutePenalty
			}
		}

		// Include id first so ties are broken toward denser, earlier
		// solutions deterministically.
		dfs(i+1, coveredMask|coverBits[id], cost+addCost, append(selected, id))
		dfs(i+1, coveredMask, cost, selected)
	}

	dfs(0, 0, 0, nil)

	selectedSet := make(map[string]bool, len(best.selected))
	for _, id := range best.selected {
		selectedSet[id] = true
	}

	return Output{
		Selected:      best.selected,
		ConflictCount: countRealizedConflicts(in.Conflicts, selectedSet),
	}, nil
}

// solveLargeN falls back to the greedy heuristic when the candidate
// count exceeds the branch-and-bound's bitmask width. This never
// happens for the search's real inputs in practice, but keeps Solve
// total instead of silently truncating coverage tracking.
func (s *Ilp) solveLargeN(in Input) (Output, error) {
	g := NewGreedy(Weights{
		Cover:    s.Weights.Count,
		Conflict: s.Weights.Direct,
		Safety:   s.Weights.Safety,
		Price:    s.Weights.Price,
	})
	return g.Solve(in)
}
