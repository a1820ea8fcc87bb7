package mcda

import (
	"math"

	"gerorank/domain/core"

	"gonum.org/v1/gonum/floats"
)

// Score bounds for raw domain scores. Jittered simulation values may
// leave this range before clamping; loaded inputs may not.
const (
	ScoreMin = 1.0
	ScoreMax = 5.0
)

// WeightSumTolerance is the allowed deviation of a scheme's weight sum
// from 1.0 at load time.
const WeightSumTolerance = 1e-6

// Vector is a fixed-size container of per-domain values in the
// canonical domain order.
type Vector [NumDomains]float64

// Slice returns the vector as a float64 slice backed by a copy.
func (v Vector) Slice() []float64 {
	out := make([]float64, NumDomains)
	copy(out, v[:])
	return out
}

// Intervention is one scored alternative. Immutable after load.
type Intervention struct {
	Name   string
	Scores Vector
}

// NewIntervention validates and builds an intervention from a
// per-domain score map. All six canonical domains must be present and
// every score must lie in [ScoreMin, ScoreMax].
func NewIntervention(name string, scores map[Domain]float64) (Intervention, error) {
	if name == "" {
		return Intervention{}, core.NewSchemaError("intervention", "empty name")
	}
	var v Vector
	for i, d := range AllDomains {
		s, ok := scores[d]
		if !ok {
			return Intervention{}, core.NewMissingDomainError("intervention "+name, d.String())
		}
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return Intervention{}, core.NewSchemaError("intervention "+name, "non-numeric score for "+d.String())
		}
		if s < ScoreMin || s > ScoreMax {
			return Intervention{}, core.NewScoreRangeError(name, d.String(), s)
		}
		v[i] = s
	}
	if len(scores) != NumDomains {
		for d := range scores {
			if _, ok := d.Index(); !ok {
				return Intervention{}, core.NewSchemaError("intervention "+name, "unknown domain "+d.String())
			}
		}
	}
	return Intervention{Name: name, Scores: v}, nil
}

// ScoreTable is the validated, ordered set of interventions. Input
// order is preserved; it is the ranking tie-break order.
type ScoreTable struct {
	interventions []Intervention
	index         map[string]int
}

// NewScoreTable builds a table from already-validated interventions,
// rejecting duplicate names.
func NewScoreTable(interventions []Intervention) (*ScoreTable, error) {
	if len(interventions) == 0 {
		return nil, core.NewSchemaError("score table", "no interventions")
	}
	t := &ScoreTable{
		interventions: make([]Intervention, len(interventions)),
		index:         make(map[string]int, len(interventions)),
	}
	for i, iv := range interventions {
		if _, dup := t.index[iv.Name]; dup {
			return nil, core.NewDuplicateError("intervention", iv.Name)
		}
		t.interventions[i] = iv
		t.index[iv.Name] = i
	}
	return t, nil
}

// Len returns the number of interventions.
func (t *ScoreTable) Len() int { return len(t.interventions) }

// Names returns intervention names in input order.
func (t *ScoreTable) Names() []string {
	names := make([]string, len(t.interventions))
	for i, iv := range t.interventions {
		names[i] = iv.Name
	}
	return names
}

// At returns the intervention at position i in input order.
func (t *ScoreTable) At(i int) Intervention { return t.interventions[i] }

// Lookup returns an intervention by name.
func (t *ScoreTable) Lookup(name string) (Intervention, error) {
	i, ok := t.index[name]
	if !ok {
		return Intervention{}, core.ErrInterventionNotFound
	}
	return t.interventions[i], nil
}

// Matrix returns a freshly allocated (#interventions x NumDomains)
// score matrix in input/canonical order.
func (t *ScoreTable) Matrix() [][]float64 {
	m := make([][]float64, len(t.interventions))
	for i, iv := range t.interventions {
		m[i] = iv.Scores.Slice()
	}
	return m
}

// WeightScheme is one named stakeholder weight vector. Immutable after
// load; weights sum to 1.0 within WeightSumTolerance.
type WeightScheme struct {
	Name    string
	Weights Vector
}

// NewWeightScheme validates and builds a scheme from a per-domain
// weight map.
func NewWeightScheme(name string, weights map[Domain]float64) (WeightScheme, error) {
	if name == "" {
		return WeightScheme{}, core.NewSchemaError("weighting scheme", "empty name")
	}
	var v Vector
	for i, d := range AllDomains {
		w, ok := weights[d]
		if !ok {
			return WeightScheme{}, core.NewMissingDomainError("scheme "+name, d.String())
		}
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 || w > 1 {
			return WeightScheme{}, core.NewSchemaError("scheme "+name, "weight for "+d.String()+" outside [0,1]")
		}
		v[i] = w
	}
	return newSchemeFromVector(name, v)
}

// NewWeightSchemeFromVector validates and builds a scheme from a weight
// vector in canonical domain order.
func NewWeightSchemeFromVector(name string, weights Vector) (WeightScheme, error) {
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 || w > 1 {
			return WeightScheme{}, core.NewSchemaError("scheme "+name, "weight for "+AllDomains[i].String()+" outside [0,1]")
		}
	}
	return newSchemeFromVector(name, weights)
}

func newSchemeFromVector(name string, v Vector) (WeightScheme, error) {
	sum := floats.Sum(v[:])
	if math.Abs(sum-1.0) > WeightSumTolerance {
		return WeightScheme{}, core.NewWeightSumError(name, sum)
	}
	return WeightScheme{Name: name, Weights: v}, nil
}

// Weight returns the weight for one domain.
func (s WeightScheme) Weight(d Domain) float64 {
	i, ok := d.Index()
	if !ok {
		return 0
	}
	return s.Weights[i]
}

// SchemeTable holds named weighting schemes in registration order.
type SchemeTable struct {
	schemes []WeightScheme
	index   map[string]int
}

// NewSchemeTable builds a table from validated schemes.
func NewSchemeTable(schemes []WeightScheme) (*SchemeTable, error) {
	t := &SchemeTable{index: make(map[string]int, len(schemes))}
	for _, s := range schemes {
		if err := t.Add(s); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add registers a scheme, rejecting duplicate names.
func (t *SchemeTable) Add(s WeightScheme) error {
	if _, dup := t.index[s.Name]; dup {
		return core.NewDuplicateError("scheme", s.Name)
	}
	t.index[s.Name] = len(t.schemes)
	t.schemes = append(t.schemes, s)
	return nil
}

// Lookup returns a scheme by name.
func (t *SchemeTable) Lookup(name string) (WeightScheme, error) {
	i, ok := t.index[name]
	if !ok {
		return WeightScheme{}, core.ErrSchemeNotFound
	}
	return t.schemes[i], nil
}

// Names returns scheme names in registration order.
func (t *SchemeTable) Names() []string {
	names := make([]string, len(t.schemes))
	for i, s := range t.schemes {
		names[i] = s.Name
	}
	return names
}

// Len returns the number of schemes.
func (t *SchemeTable) Len() int { return len(t.schemes) }
