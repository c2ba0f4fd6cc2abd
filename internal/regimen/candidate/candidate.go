// Package candidate implements CandidateFetcher: for each input
// condition, it resolves search terms via the condition mapper, runs
// one filtered store query, and folds the results into the candidate
// set, condition coverage map, and per-drug info the solvers need.
package candidate

import (
	"context"
	"fmt"

	"github.com/nirmitee/drugregimen/internal/regimen/condition"
	"github.com/nirmitee/drugregimen/internal/regimen/model"
	"github.com/nirmitee/drugregimen/internal/regimen/regerr"
	"github.com/nirmitee/drugregimen/internal/regimen/store"
	"github.com/nirmitee/drugregimen/internal/regimen/textnorm"
)

// Result is the output of one fetch: the candidate drug IDs in
// first-seen order (so downstream iteration, and therefore the greedy
// solver's tie-breaking, is deterministic), per-drug info keyed by
// drug ID, the condition→drugs coverage map, and any conditions that
// matched nothing.
type Result struct {
	CandidateIDs []string
	DrugInfo     map[string]*model.Candidate
	Coverage     model.CoverageMap
	Uncovered    []string
}

// Fetcher is CandidateFetcher. The caller (engine) is responsible for
// scoping ctx to the fetch phase's single store connection — Fetcher
// itself just issues queries through gw, one per condition.
type Fetcher struct {
	gw     store.Gateway
	mapper *condition.Mapper
}

// NewFetcher constructs a Fetcher over gw using mapper to resolve each
// condition's query.
func NewFetcher(gw store.Gateway, mapper *condition.Mapper) *Fetcher {
	return &Fetcher{gw: gw, mapper: mapper}
}

// Fetch runs the candidate-retrieval phase for conditions. A condition
// that matches no row is recorded in Uncovered rather than failing the
// call — only a store error is fatal.
func (f *Fetcher) Fetch(ctx context.Context, conditions []string) (*Result, error) {
	res := &Result{
		DrugInfo: make(map[string]*model.Candidate),
		Coverage: make(model.CoverageMap),
	}
	seen := make(map[string]struct{})

	for _, cond := range conditions {
		mapping := f.mapper.Map(cond, conditions)

		rows, err := f.gw.FetchCandidates(ctx, store.CandidateQuery{
			SearchTerms:    mapping.SearchTerms,
			ExclusionTerms: mapping.ExclusionTerms,
			RoutePref:      mapping.RoutePref,
		})
		if err != nil {
			return nil, regerr.NewStoreError("fetch candidates", fmt.Errorf("condition %q: %w", cond, err))
		}

		if len(rows) == 0 {
			res.Uncovered = append(res.Uncovered, cond)
			continue
		}

		if res.Coverage[cond] == nil {
			res.Coverage[cond] = make(map[string]struct{})
		}

		for _, row := range rows {
			res.Coverage[cond][row.DrugID] = struct{}{}

			if _, ok := seen[row.DrugID]; ok {
				continue
			}
			seen[row.DrugID] = struct{}{}
			res.CandidateIDs = append(res.CandidateIDs, row.DrugID)

			halfLife := textnorm.ParseHalfLife(row.HalfLifeText)
			res.DrugInfo[row.DrugID] = &model.Candidate{
				DrugID:        row.DrugID,
				Name:          row.Name,
				Description:   row.Description,
				ToxicityScore: textnorm.ToxicityScore(row.ToxicityText, halfLife),
				PriceVal:      textnorm.ParsePrice(row.PriceText),
				HalfLifeHours: halfLife,
				Route:         row.Route,
			}
		}
	}

	return res, nil
}
