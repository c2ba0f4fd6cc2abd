// Package store is the sole place the regimen core issues SQL against
// the read-only relational drug store. It knows the 17-table schema's
// shape but never writes to it — ingestion and schema management are
// external collaborators.
package store

import (
	"context"

	"github.com/nirmitee/drugregimen/internal/regimen/model"
)

// CandidateQuery is one condition's filter, already resolved by the
// condition package into its internal token tables plus the raw
// condition text itself — nothing in this struct reaches SQL
// unescaped; every field is bound as a parameter by the query builder.
type CandidateQuery struct {
	SearchTerms    []string
	ExclusionTerms []string
	RoutePref      string
}

// CandidateRow is one row from the per-condition candidate query,
// mirroring the reference query's column list exactly: drug id, name,
// toxicity text, price text, description, half-life text, clearance,
// plus the drug's administration route (lowest-sorted dosage route on
// file), which RoutePenalty scoring needs alongside the RoutePref gate
// the query already applies.
type CandidateRow struct {
	DrugID       string
	Name         string
	ToxicityText string
	PriceText    string
	Description  string
	HalfLifeText string
	Clearance    string
	Route        string
}

// EnrichedRow bundles the read-only, non-scored clinical context a
// caller can attach to a regimen entry after the fact: the drug's first
// five synonyms, every documented food interaction, and every known
// metabolic pathway. Enzyme roles are absent here — Engine.Enrich
// fetches those separately through FetchEnzymeRoles.
type EnrichedRow struct {
	Synonyms         []string
	FoodInteractions []string
	Pathways         []string
}

// Gateway is the read-only store surface the candidate fetcher and
// conflict builder depend on. It is satisfied by gateway_pg.go's pgx
// implementation and by hand-rolled fakes in tests.
type Gateway interface {
	// FetchCandidates runs one condition's filtered
	// indications⋈drugs⟕toxicity⟕prices query and returns every
	// matching row.
	FetchCandidates(ctx context.Context, q CandidateQuery) ([]CandidateRow, error)

	// FetchDirectInteractions returns every interactions-table row
	// where both endpoints are in drugIDs.
	FetchDirectInteractions(ctx context.Context, drugIDs []string) ([]model.DirectInteraction, error)

	// FetchEnzymeRoles returns every human-scope enzymes-table row for
	// the given drugIDs.
	FetchEnzymeRoles(ctx context.Context, drugIDs []string) ([]model.EnzymeRole, error)

	// FetchEnrichedDetail returns drugID's synonyms (first 5, ordered),
	// food interactions, and pathways — the optional annotation data a
	// caller can attach to a successful regimen via Engine.Enrich.
	FetchEnrichedDetail(ctx context.Context, drugID string) (EnrichedRow, error)
}
