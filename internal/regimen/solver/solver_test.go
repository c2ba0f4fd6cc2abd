package solver_test

import (
	"testing"

	"github.com/nirmitee/drugregimen/internal/regimen/model"
	"github.com/nirmitee/drugregimen/internal/regimen/solver"
)

func coverage(pairs ...[2]string) model.CoverageMap {
	m := make(model.CoverageMap)
	for _, p := range pairs {
		condition, drugID := p[0], p[1]
		if m[condition] == nil {
			m[condition] = make(map[string]struct{})
		}
		m[condition][drugID] = struct{}{}
	}
	return m
}

func TestIlpSingleDrugCoversCYP3A4PairPicksOne(t *testing.T) {
	// A is substrate, B is inhibitor on the same enzyme; both cover the
	// only required condition equally well, so the optimum is whichever
	// single drug suffices — never both, since that pays the conflict
	// penalty for free extra coverage.
	in := solver.Input{
		CandidateIDs: []string{"A", "B"},
		DrugInfo: map[string]*model.Candidate{
			"A": {DrugID: "A", PriceVal: 1, ToxicityScore: 1},
			"B": {DrugID: "B", PriceVal: 1, ToxicityScore: 1},
		},
		Coverage:   coverage([2]string{"migraine", "A"}, [2]string{"migraine", "B"}),
		Conflicts:  []model.ConflictEdge{{DrugA: "A", DrugB: "B", Kind: model.ConflictMetabolic}},
		Conditions: []string{"migraine"},
	}

	out, err := solver.NewIlp(solver.DefaultWeights()).Solve(in)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(out.Selected) != 1 {
		t.Fatalf("selected = %v, want exactly one drug", out.Selected)
	}
	if out.ConflictCount != 0 {
		t.Errorf("conflict count = %d, want 0", out.ConflictCount)
	}
}

func TestIlpDistinctConditionsBothSelectedDespiteConflict(t *testing.T) {
	// A and B are the only drugs covering two distinct conditions, and
	// conflict directly. The optimum must still select both since
	// neither condition has any other covering candidate.
	in := solver.Input{
		CandidateIDs: []string{"A", "B"},
		DrugInfo: map[string]*model.Candidate{
			"A": {DrugID: "A", PriceVal: 1, ToxicityScore: 1},
			"B": {DrugID: "B", PriceVal: 1, ToxicityScore: 1},
		},
		Coverage:   coverage([2]string{"hypertension", "A"}, [2]string{"diabetes", "B"}),
		Conflicts:  []model.ConflictEdge{{DrugA: "A", DrugB: "B", Kind: model.ConflictDirect}},
		Conditions: []string{"hypertension", "diabetes"},
	}

	out, err := solver.NewIlp(solver.DefaultWeights()).Solve(in)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(out.Selected) != 2 {
		t.Fatalf("selected = %v, want both drugs", out.Selected)
	}
	if out.ConflictCount != 1 {
		t.Errorf("conflict count = %d, want 1", out.ConflictCount)
	}
}

func TestIlpPrefersCheaperCandidateWhenCoverageTied(t *testing.T) {
	in := solver.Input{
		CandidateIDs: []string{"expensive", "cheap"},
		DrugInfo: map[string]*model.Candidate{
			"expensive": {DrugID: "expensive", PriceVal: 1000, ToxicityScore: 1},
			"cheap":     {DrugID: "cheap", PriceVal: 1, ToxicityScore: 1},
		},
		Coverage:   coverage([2]string{"headache", "expensive"}, [2]string{"headache", "cheap"}),
		Conditions: []string{"headache"},
	}

	out, err := solver.NewIlp(solver.DefaultWeights()).Solve(in)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(out.Selected) != 1 || out.Selected[0] != "cheap" {
		t.Fatalf("selected = %v, want [cheap]", out.Selected)
	}
}

func TestIlpEmptyCandidatesReturnsEmptyOutput(t *testing.T) {
	out, err := solver.NewIlp(solver.DefaultWeights()).Solve(solver.Input{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(out.Selected) != 0 {
		t.Errorf("selected = %v, want none", out.Selected)
	}
}

func TestGreedyCoversDistinctConditions(t *testing.T) {
	in := solver.Input{
		CandidateIDs: []string{"A", "B"},
		DrugInfo: map[string]*model.Candidate{
			"A": {DrugID: "A", PriceVal: 1, ToxicityScore: 1},
			"B": {DrugID: "B", PriceVal: 1, ToxicityScore: 1},
		},
		Coverage:   coverage([2]string{"hypertension", "A"}, [2]string{"diabetes", "B"}),
		Conflicts:  []model.ConflictEdge{{DrugA: "A", DrugB: "B", Kind: model.ConflictDirect}},
		Conditions: []string{"hypertension", "diabetes"},
	}

	out, err := solver.NewGreedy(solver.DefaultWeights()).Solve(in)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(out.Selected) != 2 {
		t.Fatalf("selected = %v, want both drugs", out.Selected)
	}
	if out.ConflictCount != 1 {
		t.Errorf("conflict count = %d, want 1", out.ConflictCount)
	}
}

func TestGreedyStopsWhenNoCandidateAddsCoverage(t *testing.T) {
	in := solver.Input{
		CandidateIDs: []string{"A", "B"},
		DrugInfo: map[string]*model.Candidate{
			"A": {DrugID: "A", PriceVal: 1, ToxicityScore: 1},
			"B": {DrugID: "B", PriceVal: 1, ToxicityScore: 1},
		},
		Coverage:   coverage([2]string{"headache", "A"}),
		Conditions: []string{"headache", "unreachable condition"},
	}

	out, err := solver.NewGreedy(solver.DefaultWeights()).Solve(in)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(out.Selected) != 1 || out.Selected[0] != "A" {
		t.Fatalf("selected = %v, want [A]", out.Selected)
	}
}
