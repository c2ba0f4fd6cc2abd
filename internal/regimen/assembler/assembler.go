// Package assembler turns a solver's raw selection into the public
// model.Result: each selected drug annotated with which input
// conditions it covers, plus the regimen's total price.
package assembler

import (
	"github.com/nirmitee/drugregimen/internal/regimen/model"
	"github.com/nirmitee/drugregimen/internal/regimen/solver"
)

// Assembler is RegimenAssembler.
type Assembler struct{}

// New constructs an Assembler. It carries no state; a value receiver
// would do just as well, but a type keeps the call sites consistent
// with the rest of the package set.
func New() *Assembler {
	return &Assembler{}
}

// Assemble builds the final model.Result from a solver's Output,
// the conditions originally requested, and the candidate/coverage
// data the solver consumed. status is the solver-specific status
// string (model.StatusSuccess or model.StatusSuccessGreedy); Assemble
// itself only overrides it to model.StatusNoDrugs when nothing was
// selected.
func Assemble(status string, conditions []string, drugInfo map[string]*model.Candidate, coverageMap model.CoverageMap, out solver.Output) model.Result {
	if len(out.Selected) == 0 {
		return model.Result{Status: model.StatusNoDrugs}
	}

	regimen := make([]model.RegimenEntry, 0, len(out.Selected))
	var totalCost float64

	for _, id := range out.Selected {
		info := drugInfo[id]
		if info == nil {
			continue
		}

		var covered []string
		for _, c := range conditions {
			if coverageMap.Covers(c, id) {
				covered = append(covered, c)
			}
		}

		regimen = append(regimen, model.RegimenEntry{
			DrugID:            info.DrugID,
			Name:              info.Name,
			Description:       info.Description,
			ToxicityScore:     info.ToxicityScore,
			PriceVal:          info.PriceVal,
			HalfLifeHours:     info.HalfLifeHours,
			CoveredConditions: covered,
		})
		totalCost += info.PriceVal
	}

	return model.Result{
		Status:        status,
		Regimen:       regimen,
		TotalCost:     totalCost,
		ConflictCount: out.ConflictCount,
	}
}
