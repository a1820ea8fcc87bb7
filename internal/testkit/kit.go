package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"gerorank/adapters/rng"
	"gerorank/domain/mcda"
	"gerorank/ports"
)

// TestKit provides deterministic fixtures for engine and adapter tests.
type TestKit struct{}

// NewTestKit creates a new test kit instance
func NewTestKit() *TestKit {
	return &TestKit{}
}

// RNGAdapter returns the deterministic RNG adapter
func (t *TestKit) RNGAdapter() ports.RNGPort {
	return rng.NewDeterministicAdapter()
}

// FixedScoreTable returns a small hand-built table whose expected
// scores and ranks are easy to verify by hand. Intervention order is
// the tie-break order.
func (t *TestKit) FixedScoreTable() *mcda.ScoreTable {
	rows := []struct {
		name   string
		scores mcda.Vector
	}{
		{"Rapamycin", mcda.Vector{5, 4, 5, 3, 4, 4}},
		{"Metformin", mcda.Vector{3, 3, 4, 5, 5, 5}},
		{"Gene therapy", mcda.Vector{4, 4, 3, 2, 2, 1}},
		{"Exercise mimetics", mcda.Vector{2, 3, 3, 3, 4, 5}},
	}
	interventions := make([]mcda.Intervention, 0, len(rows))
	for _, row := range rows {
		iv, err := t.intervention(row.name, row.scores)
		if err != nil {
			panic(err)
		}
		interventions = append(interventions, iv)
	}
	table, err := mcda.NewScoreTable(interventions)
	if err != nil {
		panic(err)
	}
	return table
}

// ExtremeScoreTable returns two interventions at the score bounds:
// A with all fives and B with all ones.
func (t *TestKit) ExtremeScoreTable() *mcda.ScoreTable {
	a, err := t.intervention("A", mcda.Vector{5, 5, 5, 5, 5, 5})
	if err != nil {
		panic(err)
	}
	b, err := t.intervention("B", mcda.Vector{1, 1, 1, 1, 1, 1})
	if err != nil {
		panic(err)
	}
	table, err := mcda.NewScoreTable([]mcda.Intervention{a, b})
	if err != nil {
		panic(err)
	}
	return table
}

// SyntheticScoreTable generates n interventions with seeded random
// scores on the half-point grid in [1,5]. The same seed always yields
// the same table.
func (t *TestKit) SyntheticScoreTable(n int, seed int64) *mcda.ScoreTable {
	r := rand.New(rand.NewSource(seed))
	interventions := make([]mcda.Intervention, 0, n)
	for i := 0; i < n; i++ {
		var v mcda.Vector
		for d := range v {
			v[d] = 1 + math.Round(r.Float64()*8)/2
		}
		iv, err := t.intervention(fmt.Sprintf("intervention_%02d", i+1), v)
		if err != nil {
			panic(err)
		}
		interventions = append(interventions, iv)
	}
	table, err := mcda.NewScoreTable(interventions)
	if err != nil {
		panic(err)
	}
	return table
}

// Schemes returns the builtin scheme table plus one uniform
// user-supplied scheme.
func (t *TestKit) Schemes() *mcda.SchemeTable {
	schemes := mcda.BuiltinSchemes()
	uniform, err := mcda.NewWeightSchemeFromVector("uniform", mcda.Vector{
		1.0 / 6, 1.0 / 6, 1.0 / 6, 1.0 / 6, 1.0 / 6, 1.0 / 6,
	})
	if err != nil {
		panic(err)
	}
	if err := schemes.Add(uniform); err != nil {
		panic(err)
	}
	return schemes
}

func (t *TestKit) intervention(name string, v mcda.Vector) (mcda.Intervention, error) {
	scores := make(map[mcda.Domain]float64, mcda.NumDomains)
	for i, d := range mcda.AllDomains {
		scores[d] = v[i]
	}
	return mcda.NewIntervention(name, scores)
}
