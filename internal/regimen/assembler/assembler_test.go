package assembler_test

import (
	"testing"

	"github.com/nirmitee/drugregimen/internal/regimen/assembler"
	"github.com/nirmitee/drugregimen/internal/regimen/model"
	"github.com/nirmitee/drugregimen/internal/regimen/solver"
)

func TestAssembleAnnotatesCoveredConditionsAndTotalsCost(t *testing.T) {
	drugInfo := map[string]*model.Candidate{
		"A": {DrugID: "A", Name: "DrugA", PriceVal: 2.5},
		"B": {DrugID: "B", Name: "DrugB", PriceVal: 1.0},
	}
	coverageMap := model.CoverageMap{
		"hypertension": {"A": struct{}{}},
		"diabetes":     {"B": struct{}{}},
	}

	result := assembler.Assemble(
		model.StatusSuccess,
		[]string{"hypertension", "diabetes"},
		drugInfo,
		coverageMap,
		solver.Output{Selected: []string{"A", "B"}, ConflictCount: 1},
	)

	if result.Status != model.StatusSuccess {
		t.Errorf("status = %q", result.Status)
	}
	if result.TotalCost != 3.5 {
		t.Errorf("total cost = %v, want 3.5", result.TotalCost)
	}
	if result.ConflictCount != 1 {
		t.Errorf("conflict count = %v, want 1", result.ConflictCount)
	}
	if len(result.Regimen) != 2 {
		t.Fatalf("regimen = %v, want 2 entries", result.Regimen)
	}
	if result.Regimen[0].CoveredConditions[0] != "hypertension" {
		t.Errorf("DrugA covered = %v, want [hypertension]", result.Regimen[0].CoveredConditions)
	}
}

func TestAssembleNoSelectionYieldsNoDrugsStatus(t *testing.T) {
	result := assembler.Assemble(model.StatusSuccess, []string{"depression"}, nil, nil, solver.Output{})
	if result.Status != model.StatusNoDrugs {
		t.Errorf("status = %q, want %q", result.Status, model.StatusNoDrugs)
	}
	if result.Regimen != nil {
		t.Errorf("regimen = %v, want nil", result.Regimen)
	}
}
