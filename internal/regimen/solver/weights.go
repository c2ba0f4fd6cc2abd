package solver

// Weights holds every tunable coefficient the two solvers use. They
// are configuration, not literals baked into the objective code, so
// clinical tuning never touches the solver core. The recognized keys
// are count, direct, metabolic, safety, price, cover, conflict.
type Weights struct {
	Count     float64 // ILP: penalty per selected drug
	Direct    float64 // ILP: penalty per selected direct-conflict pair
	Metabolic float64 // ILP: penalty per selected metabolic-conflict pair
	Safety    float64 // both solvers: penalty per unit of toxicity score
	Price     float64 // both solvers: penalty per unit of price
	Cover     float64 // greedy: reward per newly covered condition
	Conflict  float64 // greedy: penalty per conflict with an already-selected drug

	// RoutePenalty is an open-question knob (unresolved in the
	// original): the objective penalty added once per pair of
	// co-selected drugs whose known routes differ. Default 0, matching
	// the reference implementation's silence on this.
	RoutePenalty float64
}

// DefaultWeights returns the reference weight constants.
func DefaultWeights() Weights {
	return Weights{
		Count:        1000,
		Direct:       500,
		Metabolic:    300,
		Safety:       5.0,
		Price:        0.05,
		Cover:        1000,
		Conflict:     500,
		RoutePenalty: 0,
	}
}
