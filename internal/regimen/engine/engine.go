// Package engine wires the regimen pipeline end to end: candidate
// fetch, direct-conflict lookup, metabolic-enzyme lookup, solve, and
// assembly. It owns the per-phase connection scoping the rest of the
// packages stay oblivious to.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	regimendb "github.com/nirmitee/drugregimen/internal/platform/db"
	"github.com/nirmitee/drugregimen/internal/regimen/assembler"
	"github.com/nirmitee/drugregimen/internal/regimen/candidate"
	"github.com/nirmitee/drugregimen/internal/regimen/condition"
	"github.com/nirmitee/drugregimen/internal/regimen/conflict"
	"github.com/nirmitee/drugregimen/internal/regimen/model"
	"github.com/nirmitee/drugregimen/internal/regimen/regerr"
	"github.com/nirmitee/drugregimen/internal/regimen/solver"
	"github.com/nirmitee/drugregimen/internal/regimen/store"
)

// Mode selects which solver backend a Solve call uses.
type Mode string

const (
	ModeIlp    Mode = "ilp"
	ModeGreedy Mode = "greedy"
)

// Engine holds the long-lived collaborators a solve call shares: the
// pool (for phase-scoped connection acquisition), the gateway built
// over it, and the configured solver weights.
type Engine struct {
	pool         *pgxpool.Pool
	gw           store.Gateway
	conflictOpts conflict.Options
	weights      solver.Weights
	log          zerolog.Logger
}

// New constructs an Engine. weights is shared between both solver
// backends; callers that want per-mode overrides should construct two
// Engines.
func New(pool *pgxpool.Pool, weights solver.Weights, log zerolog.Logger) *Engine {
	return &Engine{
		pool:         pool,
		gw:           store.NewPgGateway(pool),
		conflictOpts: conflict.DefaultOptions(),
		weights:      weights,
		log:          log,
	}
}

// Solve runs one full pipeline pass for conditions using the named
// mode. A solve that finds no candidates at all returns a
// model.StatusNoDrugs result rather than an error; individual
// uncovered conditions are accumulated into the result and logged,
// never fatal.
func (e *Engine) Solve(ctx context.Context, conditions []string, mode Mode) (model.Result, error) {
	if len(conditions) == 0 {
		return model.Result{Status: model.StatusNoDrugs}, nil
	}

	fetchRes, err := e.fetchCandidates(ctx, conditions)
	if err != nil {
		return model.Result{}, err
	}

	if len(fetchRes.CandidateIDs) == 0 {
		noCandidates := &regerr.NoCandidatesError{Conditions: fetchRes.Uncovered}
		e.log.Warn().Err(noCandidates).Msg("no candidates found for any condition")
		return model.Result{
			Status:              model.StatusNoDrugs,
			UncoveredConditions: fetchRes.Uncovered,
		}, nil
	}

	for _, c := range fetchRes.Uncovered {
		e.log.Warn().Err(&regerr.UncoveredConditionError{Condition: c}).Msg("condition matched no candidate drug")
	}

	conflictSet, _, err := e.buildConflicts(ctx, fetchRes.CandidateIDs)
	if err != nil {
		return model.Result{}, err
	}

	in := solver.Input{
		CandidateIDs: fetchRes.CandidateIDs,
		DrugInfo:     fetchRes.DrugInfo,
		Coverage:     fetchRes.Coverage,
		Conflicts:    conflictSet.Edges(),
		Conditions:   conditions,
	}

	status := model.StatusSuccess
	var out solver.Output
	switch mode {
	case ModeGreedy:
		status = model.StatusSuccessGreedy
		out, err = solver.NewGreedy(e.weights).Solve(in)
	case ModeIlp, "":
		out, err = solver.NewIlp(e.weights).Solve(in)
	default:
		return model.Result{}, regerr.NewSolverError(string(mode), fmt.Errorf("unknown solver mode"))
	}
	if err != nil {
		return model.Result{}, regerr.NewSolverError(string(mode), err)
	}

	result := assembler.Assemble(status, conditions, fetchRes.DrugInfo, fetchRes.Coverage, out)
	result.UncoveredConditions = fetchRes.Uncovered
	return result, nil
}

// fetchCandidates scopes the entire candidate-retrieval phase to one
// pooled connection.
func (e *Engine) fetchCandidates(ctx context.Context, conditions []string) (*candidate.Result, error) {
	fetcher := candidate.NewFetcher(e.gw, condition.NewMapper())

	var res *candidate.Result
	err := regimendb.WithPhaseConn(ctx, e.pool, func(phaseCtx context.Context) error {
		var ferr error
		res, ferr = fetcher.Fetch(phaseCtx, conditions)
		return ferr
	})
	if err != nil {
		var storeErr *regerr.StoreError
		if errors.As(err, &storeErr) {
			return nil, err
		}
		return nil, regerr.NewStoreError("fetch candidates phase", err)
	}
	return res, nil
}

// buildConflicts runs the direct-interaction and metabolic-enzyme
// lookups as two independently connection-scoped phases, then merges
// them — matching the pipeline's one-connection-per-phase model even
// though both phases feed the same logical conflict graph. It also
// returns the raw enzyme role rows the metabolic phase fetched, so a
// caller building EnrichedDetail for the same candidate set does not
// need to re-derive them from the merged Set.
func (e *Engine) buildConflicts(ctx context.Context, candidateIDs []string) (*conflict.Set, []model.EnzymeRole, error) {
	builder := conflict.NewBuilder(e.gw)

	var direct *conflict.Set
	err := regimendb.WithPhaseConn(ctx, e.pool, func(phaseCtx context.Context) error {
		var derr error
		direct, derr = builder.BuildDirect(phaseCtx, candidateIDs)
		return derr
	})
	if err != nil {
		return nil, nil, err
	}

	var metabolic *conflict.Set
	var enzymeRoles []model.EnzymeRole
	err = regimendb.WithPhaseConn(ctx, e.pool, func(phaseCtx context.Context) error {
		var merr error
		enzymeRoles, metabolic, merr = builder.BuildMetabolic(phaseCtx, candidateIDs, e.conflictOpts)
		return merr
	})
	if err != nil {
		return nil, nil, err
	}

	direct.Merge(metabolic)
	return direct, enzymeRoles, nil
}

// Enrich attaches EnrichedDetail to every entry of an already-solved
// Result: synonyms, food interactions, and pathways read fresh from the
// store, plus the enzyme roles on file for that drug. It is never
// called by Solve itself — it exists for callers that explicitly want
// the extra clinical context on a regimen they already have, matching
// spec's "reachable only if the caller asks" framing. Each entry's
// fetch is its own phase-scoped connection.
func (e *Engine) Enrich(ctx context.Context, result *model.Result) error {
	if result == nil || len(result.Regimen) == 0 {
		return nil
	}

	drugIDs := make([]string, len(result.Regimen))
	for i, entry := range result.Regimen {
		drugIDs[i] = entry.DrugID
	}

	rolesByDrug := make(map[string][]model.EnzymeRole, len(drugIDs))
	err := regimendb.WithPhaseConn(ctx, e.pool, func(phaseCtx context.Context) error {
		roles, rerr := e.gw.FetchEnzymeRoles(phaseCtx, drugIDs)
		if rerr != nil {
			return rerr
		}
		for _, r := range roles {
			rolesByDrug[r.DrugID] = append(rolesByDrug[r.DrugID], r)
		}
		return nil
	})
	if err != nil {
		return regerr.NewStoreError("enrich: fetch enzyme roles", err)
	}

	for i := range result.Regimen {
		entry := &result.Regimen[i]

		var row store.EnrichedRow
		err := regimendb.WithPhaseConn(ctx, e.pool, func(phaseCtx context.Context) error {
			var ferr error
			row, ferr = e.gw.FetchEnrichedDetail(phaseCtx, entry.DrugID)
			return ferr
		})
		if err != nil {
			return regerr.NewStoreError("enrich: fetch enriched detail", err)
		}

		entry.Enriched = &model.EnrichedDetail{
			Synonyms:         row.Synonyms,
			FoodInteractions: row.FoodInteractions,
			Pathways:         row.Pathways,
			EnzymeRoles:      rolesByDrug[entry.DrugID],
		}
	}
	return nil
}
