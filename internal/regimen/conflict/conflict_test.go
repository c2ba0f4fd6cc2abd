package conflict_test

import (
	"context"
	"testing"

	"github.com/nirmitee/drugregimen/internal/regimen/conflict"
	"github.com/nirmitee/drugregimen/internal/regimen/model"
	"github.com/nirmitee/drugregimen/internal/regimen/store"
)

type fakeGateway struct {
	directs []model.DirectInteraction
	enzymes []model.EnzymeRole
}

func (f *fakeGateway) FetchCandidates(context.Context, store.CandidateQuery) ([]store.CandidateRow, error) {
	return nil, nil
}

func (f *fakeGateway) FetchDirectInteractions(context.Context, []string) ([]model.DirectInteraction, error) {
	return f.directs, nil
}

func (f *fakeGateway) FetchEnzymeRoles(context.Context, []string) ([]model.EnzymeRole, error) {
	return f.enzymes, nil
}

func (f *fakeGateway) FetchEnrichedDetail(context.Context, string) (store.EnrichedRow, error) {
	return store.EnrichedRow{}, nil
}

func TestDirectConflictDeduped(t *testing.T) {
	gw := &fakeGateway{
		directs: []model.DirectInteraction{
			{DrugID: "A", TargetDrugID: "B"},
			{DrugID: "B", TargetDrugID: "A"}, // reverse row, must dedupe to one edge
		},
	}
	b := conflict.NewBuilder(gw)
	set, err := b.Build(context.Background(), []string{"A", "B"}, conflict.DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("edges = %d, want 1", set.Len())
	}
	if !set.Has("A", "B") {
		t.Error("expected conflict between A and B")
	}
}

func TestMetabolicConflictSubstrateInhibitor(t *testing.T) {
	gw := &fakeGateway{
		enzymes: []model.EnzymeRole{
			{DrugID: "A", EnzymeName: "CYP3A4", Action: "substrate"},
			{DrugID: "B", EnzymeName: "CYP3A4", Action: "inhibitor"},
			{DrugID: "C", EnzymeName: "CYP3A4", Action: "inducer"},
		},
	}
	b := conflict.NewBuilder(gw)
	set, err := b.Build(context.Background(), []string{"A", "B", "C"}, conflict.DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !set.Has("A", "B") {
		t.Error("expected substrate-inhibitor conflict between A and B")
	}
	if !set.Has("A", "C") {
		t.Error("expected substrate-inducer conflict between A and C")
	}
	if set.Has("B", "C") {
		t.Error("inhibitor and inducer alone must not conflict")
	}
}

func TestDirectPreferredOverMetabolicForSamePair(t *testing.T) {
	gw := &fakeGateway{
		directs: []model.DirectInteraction{{DrugID: "A", TargetDrugID: "B"}},
		enzymes: []model.EnzymeRole{
			{DrugID: "A", EnzymeName: "CYP2D6", Action: "substrate"},
			{DrugID: "B", EnzymeName: "CYP2D6", Action: "inhibitor"},
		},
	}
	b := conflict.NewBuilder(gw)
	set, err := b.Build(context.Background(), []string{"A", "B"}, conflict.DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	edges := set.Edges()
	if len(edges) != 1 {
		t.Fatalf("edges = %d, want exactly one deduplicated pair", len(edges))
	}
	if edges[0].Kind != model.ConflictDirect {
		t.Error("expected direct provenance to win over metabolic for the same pair")
	}
}

func TestWeakInhibitorExclusion(t *testing.T) {
	gw := &fakeGateway{
		enzymes: []model.EnzymeRole{
			{DrugID: "A", EnzymeName: "CYP3A4", Action: "substrate"},
			{DrugID: "B", EnzymeName: "CYP3A4", Action: "inhibitor", InhibitionStrength: "Weak"},
		},
	}
	b := conflict.NewBuilder(gw)

	set, err := b.Build(context.Background(), []string{"A", "B"}, conflict.Options{IncludeWeakInhibitors: false})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if set.Has("A", "B") {
		t.Error("weak inhibitor must be excluded when IncludeWeakInhibitors is false")
	}

	set, err = b.Build(context.Background(), []string{"A", "B"}, conflict.DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !set.Has("A", "B") {
		t.Error("weak inhibitor must be included by default")
	}
}
