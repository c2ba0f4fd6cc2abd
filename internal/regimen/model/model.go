// Package model holds the data types shared across the regimen
// optimizer: store-backed records and the derived entities a solve
// call builds and discards.
package model

// Drug is the immutable store record for one drug, keyed by DrugID.
type Drug struct {
	DrugID      string
	Name        string
	Type        string
	CASNumber   string
	Groups      string
	Description string
	MOA         string
	HalfLife    string
	Clearance   string
}

// Dosage is a (form, route, strength) row used only for route filtering.
type Dosage struct {
	DrugID   string
	Form     string
	Route    string
	Strength string
}

// DirectInteraction is a documented, source-directional drug–drug
// interaction row. The core treats it as an undirected pair.
type DirectInteraction struct {
	DrugID       string
	TargetDrugID string
	TargetName   string
	Description  string
}

// EnzymeRole is one (drug, enzyme, action) row from the enzymes table,
// restricted to human-organism scope by the query that produces it.
type EnzymeRole struct {
	DrugID             string
	EnzymeID           string
	EnzymeName         string
	Organism           string
	Action             string
	InhibitionStrength string
	InductionStrength  string
}

// Candidate is a drug considered for a regimen, annotated with the
// numeric scores and raw text the solvers and assembler need. It
// belongs to the coverage of at least one input condition.
type Candidate struct {
	DrugID            string
	Name              string
	Description       string
	ToxicityScore     float64
	PriceVal          float64
	HalfLifeHours     float64
	Route             string // administration route, e.g. "oral", "ophthalmic"; empty if unknown
	CoveredConditions []string
}

// ConflictKind tags the provenance of a conflict edge. When a pair has
// both a direct and a metabolic edge, Direct is preferred for weighting.
type ConflictKind int

const (
	ConflictDirect ConflictKind = iota
	ConflictMetabolic
)

// ConflictEdge is an unordered pair of candidate drug IDs in conflict.
// DrugA/DrugB are stored in a canonical (lexicographically sorted)
// order so edges can be deduplicated by equality.
type ConflictEdge struct {
	DrugA string
	DrugB string
	Kind  ConflictKind
}

// CoverageMap relates each input condition to the set of candidate
// drug IDs whose indication text matched its search terms.
type CoverageMap map[string]map[string]struct{}

// Covers reports whether drugID covers condition.
func (m CoverageMap) Covers(condition, drugID string) bool {
	drugs, ok := m[condition]
	if !ok {
		return false
	}
	_, ok = drugs[drugID]
	return ok
}

// RegimenEntry is one selected drug in a solve's result, annotated with
// the input conditions it covers.
type RegimenEntry struct {
	DrugID            string          `json:"drug_id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	ToxicityScore     float64         `json:"toxicity_score"`
	PriceVal          float64         `json:"price_val"`
	HalfLifeHours     float64         `json:"half_life_hours"`
	CoveredConditions []string        `json:"covered_conditions"`
	Enriched          *EnrichedDetail `json:"enriched,omitempty"`
}

// EnrichedDetail is optional, read-only clinical context attached to a
// regimen entry after a successful solve. It is never consulted by the
// cost function or coverage invariants — a caller opts into fetching it
// with Engine.Enrich once it already has a Result.
type EnrichedDetail struct {
	Synonyms         []string     `json:"synonyms"`
	FoodInteractions []string     `json:"food_interactions"`
	Pathways         []string     `json:"pathways"`
	EnzymeRoles      []EnzymeRole `json:"enzyme_roles"`
}

// Status values a Result can carry, matching the reference solver's
// literal status strings.
const (
	StatusSuccess       = "Success"
	StatusSuccessGreedy = "Success (Greedy)"
	StatusNoDrugs       = "No drugs found"
)

// Result is what solve(conditions, mode) returns.
type Result struct {
	Status              string         `json:"status"`
	Regimen             []RegimenEntry `json:"regimen"`
	TotalCost           float64        `json:"total_cost"`
	ConflictCount       int            `json:"conflict_count"`
	UncoveredConditions []string       `json:"uncovered_conditions,omitempty"`
}
