package mcda

// Builtin scheme names.
const (
	SchemeBaseline  = "baseline"
	SchemeRegulator = "regulator_focused"
	SchemeInvestor  = "investor_focused"
	SchemePatient   = "patient_focused"
)

// Builtin stakeholder weight profiles in canonical domain order:
// lifespan, healthspan, conservation, human trials, safety, cost/access.
//
// The regulator profile prioritizes clinical evidence and safety, the
// investor profile efficacy outcomes, and the patient profile balances
// quality of life, safety and access.
var builtinWeights = map[string]Vector{
	SchemeBaseline:  {0.30, 0.10, 0.10, 0.20, 0.20, 0.10},
	SchemeRegulator: {0.10, 0.10, 0.00, 0.30, 0.40, 0.10},
	SchemeInvestor:  {0.40, 0.20, 0.10, 0.10, 0.10, 0.10},
	SchemePatient:   {0.15, 0.15, 0.00, 0.25, 0.30, 0.15},
}

// builtinOrder keeps scheme registration deterministic.
var builtinOrder = []string{SchemeBaseline, SchemeRegulator, SchemeInvestor, SchemePatient}

// BuiltinSchemes returns the four stakeholder schemes in a fresh table.
// The caller may add user-supplied schemes on top.
func BuiltinSchemes() *SchemeTable {
	t := &SchemeTable{index: make(map[string]int, len(builtinOrder))}
	for _, name := range builtinOrder {
		s, err := NewWeightSchemeFromVector(name, builtinWeights[name])
		if err != nil {
			// Builtin weights are constants that sum to 1; a failure
			// here is a programming error.
			panic(err)
		}
		if err := t.Add(s); err != nil {
			panic(err)
		}
	}
	return t
}

// BaselineScheme returns the baseline weight profile.
func BaselineScheme() WeightScheme {
	s, _ := BuiltinSchemes().Lookup(SchemeBaseline)
	return s
}
