// Package conflict builds the conflict graph over a candidate set:
// direct, documented drug–drug interactions plus derived metabolic
// (CYP450 substrate/inhibitor/inducer) conflicts. Edges are stored in
// a gonum undirected graph so dedup and neighbor lookups are
// off-the-shelf rather than hand-rolled set bookkeeping.
package conflict

import (
	"context"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/nirmitee/drugregimen/internal/regimen/model"
	"github.com/nirmitee/drugregimen/internal/regimen/regerr"
	"github.com/nirmitee/drugregimen/internal/regimen/store"
)

// Options carries the policy knobs spec left as open questions rather
// than hard-coded behavior.
type Options struct {
	// IncludeWeakInhibitors, when false, excludes enzyme roles whose
	// inhibition_strength parses as "weak" from metabolic-conflict
	// generation. Default true, matching the reference behavior of
	// flagging every substrate-inhibitor pair unconditionally.
	IncludeWeakInhibitors bool
}

// DefaultOptions matches the reference implementation's behavior.
func DefaultOptions() Options {
	return Options{IncludeWeakInhibitors: true}
}

// Builder is ConflictBuilder.
type Builder struct {
	gw store.Gateway
}

// NewBuilder constructs a Builder over gw.
func NewBuilder(gw store.Gateway) *Builder {
	return &Builder{gw: gw}
}

// Set is the deduplicated conflict graph over one solve's candidates.
// A pair present as both direct and metabolic is recorded once, tagged
// Direct — direct conflicts are preferred for weighting per spec.
type Set struct {
	g      *simple.UndirectedGraph
	nodeOf map[string]int64
	drugOf map[int64]string
	kindOf map[nodePair]model.ConflictKind
	nextID int64
}

type nodePair struct{ a, b int64 }

func newSet() *Set {
	return &Set{
		g:      simple.NewUndirectedGraph(),
		nodeOf: make(map[string]int64),
		drugOf: make(map[int64]string),
		kindOf: make(map[nodePair]model.ConflictKind),
	}
}

func (s *Set) nodeID(drugID string) int64 {
	if id, ok := s.nodeOf[drugID]; ok {
		return id
	}
	id := s.nextID
	s.nextID++
	s.nodeOf[drugID] = id
	s.drugOf[id] = drugID
	return id
}

func canonicalPair(a, b int64) nodePair {
	if a <= b {
		return nodePair{a, b}
	}
	return nodePair{b, a}
}

// addEdge records an edge between a and b with the given kind. If the
// pair already exists as Direct, a later Metabolic addition does not
// downgrade it; a Direct addition always wins.
func (s *Set) addEdge(a, b string, kind model.ConflictKind) {
	if a == b {
		return
	}
	idA, idB := s.nodeID(a), s.nodeID(b)
	pair := canonicalPair(idA, idB)

	if existing, ok := s.kindOf[pair]; ok && existing == model.ConflictDirect {
		return
	}
	s.kindOf[pair] = kind
	s.g.SetEdge(simple.Edge{F: simple.Node(idA), T: simple.Node(idB)})
}

// Has reports whether a and b are in conflict.
func (s *Set) Has(a, b string) bool {
	idA, ok1 := s.nodeOf[a]
	idB, ok2 := s.nodeOf[b]
	if !ok1 || !ok2 {
		return false
	}
	return s.g.HasEdgeBetween(idA, idB)
}

// ConflictsOf returns the drug IDs in conflict with drugID.
func (s *Set) ConflictsOf(drugID string) []string {
	id, ok := s.nodeOf[drugID]
	if !ok {
		return nil
	}
	it := s.g.From(id)
	var out []string
	for it.Next() {
		out = append(out, s.drugOf[it.Node().ID()])
	}
	return out
}

// Edges returns every conflict edge with its provenance, in a stable
// order (sorted by the canonical pair) so callers relying on edge
// iteration order stay deterministic.
func (s *Set) Edges() []model.ConflictEdge {
	var edges []model.ConflictEdge
	edgeIt := s.g.Edges()
	for edgeIt.Next() {
		e := edgeIt.Edge()
		a, b := s.drugOf[e.From().ID()], s.drugOf[e.To().ID()]
		if a > b {
			a, b = b, a
		}
		kind := s.kindOf[canonicalPair(e.From().ID(), e.To().ID())]
		edges = append(edges, model.ConflictEdge{DrugA: a, DrugB: b, Kind: kind})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].DrugA != edges[j].DrugA {
			return edges[i].DrugA < edges[j].DrugA
		}
		return edges[i].DrugB < edges[j].DrugB
	})
	return edges
}

// Len returns the number of distinct conflict edges.
func (s *Set) Len() int {
	return s.g.Edges().Len()
}

// Merge folds other's edges into s, preferring Direct provenance over
// Metabolic for any pair present in both.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for _, e := range other.Edges() {
		s.addEdge(e.DrugA, e.DrugB, e.Kind)
	}
}

// Build fetches both direct interaction rows and human-scope enzyme
// roles for candidateIDs over a single connection and folds them into
// one deduplicated Set. Callers that need each fetch scoped to its own
// connection (the engine's phase model) should call BuildDirect and
// BuildMetabolic separately and Merge the results instead.
func (b *Builder) Build(ctx context.Context, candidateIDs []string, opts Options) (*Set, error) {
	direct, err := b.BuildDirect(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}
	_, metabolic, err := b.BuildMetabolic(ctx, candidateIDs, opts)
	if err != nil {
		return nil, err
	}
	direct.Merge(metabolic)
	return direct, nil
}

// BuildDirect fetches only documented direct interactions, scoped to
// whatever connection ctx carries for this phase.
func (b *Builder) BuildDirect(ctx context.Context, candidateIDs []string) (*Set, error) {
	set := newSet()

	directs, err := b.gw.FetchDirectInteractions(ctx, candidateIDs)
	if err != nil {
		return nil, regerr.NewStoreError("fetch direct interactions", err)
	}
	for _, d := range directs {
		set.addEdge(d.DrugID, d.TargetDrugID, model.ConflictDirect)
	}
	return set, nil
}

// BuildMetabolic fetches only the human-scope enzyme roles (any enzyme,
// not just CYP450) and derives substrate/inhibitor/inducer conflicts
// from them, scoped to whatever connection ctx carries for this phase.
// It returns the raw roles alongside the derived Set.
func (b *Builder) BuildMetabolic(ctx context.Context, candidateIDs []string, opts Options) ([]model.EnzymeRole, *Set, error) {
	set := newSet()

	roles, err := b.gw.FetchEnzymeRoles(ctx, candidateIDs)
	if err != nil {
		return nil, nil, regerr.NewStoreError("fetch enzyme roles", err)
	}

	type roleBag struct {
		substrates []string
		inhibitors []string
		inducers   []string
	}
	byEnzyme := make(map[string]*roleBag)

	for _, r := range roles {
		action := strings.ToLower(r.Action)
		rb := byEnzyme[r.EnzymeName]
		if rb == nil {
			rb = &roleBag{}
			byEnzyme[r.EnzymeName] = rb
		}
		if strings.Contains(action, "substrate") {
			rb.substrates = append(rb.substrates, r.DrugID)
		}
		if strings.Contains(action, "inhibitor") {
			if opts.IncludeWeakInhibitors || !isWeak(r.InhibitionStrength) {
				rb.inhibitors = append(rb.inhibitors, r.DrugID)
			}
		}
		if strings.Contains(action, "inducer") {
			rb.inducers = append(rb.inducers, r.DrugID)
		}
	}

	for _, rb := range byEnzyme {
		for _, sub := range rb.substrates {
			for _, inh := range rb.inhibitors {
				if sub != inh {
					set.addEdge(sub, inh, model.ConflictMetabolic)
				}
			}
			for _, ind := range rb.inducers {
				if sub != ind {
					set.addEdge(sub, ind, model.ConflictMetabolic)
				}
			}
		}
	}

	return roles, set, nil
}

func isWeak(strength string) bool {
	return strings.Contains(strings.ToLower(strength), "weak")
}
