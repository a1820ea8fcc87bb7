package mcda

import (
	"strings"

	"gerorank/domain/core"
)

// Domain is one of the six fixed evaluation criteria. The set is closed:
// every score table and weighting scheme carries exactly these six, in
// the canonical order given by AllDomains.
type Domain string

const (
	DomainLifespan     Domain = "lifespan_efficacy"
	DomainHealthspan   Domain = "healthspan_efficacy"
	DomainConservation Domain = "mechanism_conservation"
	DomainHumanTrials  Domain = "human_trial_evidence"
	DomainSafety       Domain = "safety_tolerability"
	DomainCostAccess   Domain = "cost_accessibility"
)

// NumDomains is the size of every score and weight vector.
const NumDomains = 6

// AllDomains is the canonical domain order. Weighted scores are always
// computed over this order, so vectors from different sources line up.
var AllDomains = [NumDomains]Domain{
	DomainLifespan,
	DomainHealthspan,
	DomainConservation,
	DomainHumanTrials,
	DomainSafety,
	DomainCostAccess,
}

// domainIndex maps a domain code to its position in AllDomains.
var domainIndex = map[Domain]int{
	DomainLifespan:     0,
	DomainHealthspan:   1,
	DomainConservation: 2,
	DomainHumanTrials:  3,
	DomainSafety:       4,
	DomainCostAccess:   5,
}

// displayNames maps spreadsheet display labels to canonical codes.
// Labels are matched case-insensitively after trimming any "(30%)"
// weight suffix.
var displayNames = map[string]Domain{
	"lifespan":               DomainLifespan,
	"lifespan efficacy":      DomainLifespan,
	"healthspan":             DomainHealthspan,
	"healthspan efficacy":    DomainHealthspan,
	"conservation":           DomainConservation,
	"mechanism conservation": DomainConservation,
	"human trials":           DomainHumanTrials,
	"human trial evidence":   DomainHumanTrials,
	"safety & tolerability":  DomainSafety,
	"safety":                 DomainSafety,
	"cost/access":            DomainCostAccess,
	"cost/accessibility":     DomainCostAccess,
	"cost & accessibility":   DomainCostAccess,
}

// String returns the canonical code.
func (d Domain) String() string { return string(d) }

// Index returns the domain's position in the canonical order.
func (d Domain) Index() (int, bool) {
	i, ok := domainIndex[d]
	return i, ok
}

// ParseDomain resolves a canonical code into a Domain.
func ParseDomain(code string) (Domain, error) {
	d := Domain(strings.TrimSpace(code))
	if _, ok := domainIndex[d]; !ok {
		return "", core.NewSchemaError("domain", "unknown code "+code)
	}
	return d, nil
}

// ParseDisplayName resolves a spreadsheet column label (for example
// "Safety & Tolerability") into a canonical domain code.
func ParseDisplayName(label string) (Domain, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	if d, ok := displayNames[key]; ok {
		return d, nil
	}
	// Accept canonical codes in display position too
	if _, ok := domainIndex[Domain(key)]; ok {
		return Domain(key), nil
	}
	return "", core.NewSchemaError("domain column", "unrecognized label "+label)
}
