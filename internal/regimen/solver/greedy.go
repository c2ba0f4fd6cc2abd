package solver

import "github.com/nirmitee/drugregimen/internal/regimen/model"

// Greedy is GreedySolver: the fast heuristic fallback. At each step it
// picks the candidate maximizing newly-covered conditions against
// conflicts with the already-selected set, toxicity, and price —
// never backtracking. It terminates as soon as no remaining candidate
// can improve coverage, same as the reference implementation.
type Greedy struct {
	Weights Weights
}

// NewGreedy constructs a Greedy solver with the given weights.
func NewGreedy(w Weights) *Greedy {
	return &Greedy{Weights: w}
}

// Solve runs the greedy selection loop described above.
func (g *Greedy) Solve(in Input) (Output, error) {
	var required []string
	for _, c := range in.Conditions {
		if len(in.Coverage[c]) > 0 {
			required = append(required, c)
		}
	}

	selected := make([]string, 0, len(in.CandidateIDs))
	selectedSet := make(map[string]bool, len(in.CandidateIDs))
	covered := make(map[string]bool, len(required))

	for {
		if len(covered) == len(required) {
			break
		}

		bestID := ""
		bestScore := 0.0
		bestNewCov := 0
		found := false

		for _, id := range in.CandidateIDs {
			if selectedSet[id] {
				continue
			}

			newCov := 0
			for _, c := range required {
				if !covered[c] && in.Coverage.Covers(c, id) {
					newCov++
				}
			}
			if newCov == 0 {
				continue
			}

			curConf := conflictsWithSelected(in.Conflicts, id, selectedSet)
			info := in.DrugInfo[id]
			routeMismatches := 0
			if g.Weights.RoutePenalty != 0 {
				for _, sel := range selected {
					if routeMismatch(info, in.DrugInfo[sel]) {
						routeMismatches++
					}
				}
			}

			score := float64(newCov)*g.Weights.Cover -
				float64(curConf)*g.Weights.Conflict -
				info.ToxicityScore*g.Weights.Safety -
				info.PriceVal*g.Weights.Price -
				float64(routeMismatches)*g.Weights.RoutePenalty

			if !found || score > bestScore {
				found = true
				bestID = id
				bestScore = score
				bestNewCov = newCov
			}
		}

		if !found || bestNewCov == 0 {
			break
		}

		selected = append(selected, bestID)
		selectedSet[bestID] = true
		for _, c := range required {
			if in.Coverage.Covers(c, bestID) {
				covered[c] = true
			}
		}
	}

	return Output{
		Selected:      selected,
		ConflictCount: countRealizedConflicts(in.Conflicts, selectedSet),
	}, nil
}

func conflictsWithSelected(edges []model.ConflictEdge, id string, selectedSet map[string]bool) int {
	count := 0
	for _, e := range edges {
		if e.DrugA == id && selectedSet[e.DrugB] {
			count++
		}
		if e.DrugB == id && selectedSet[e.DrugA] {
			count++
		}
	}
	return count
}
