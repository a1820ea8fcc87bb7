package mcda

import "math"

// Category groups interventions by mechanism type.
type Category string

const (
	CategoryPharmacological Category = "Pharmacological"
	CategoryGenetic         Category = "Genetic & Epigenetic"
	CategoryCellular        Category = "Cellular & Regenerative"
	CategorySystemic        Category = "Systemic & Other"
	CategoryOther           Category = "Other"
)

var categoryByName = map[string]Category{
	"Rapamycin": CategoryPharmacological,
	"Metformin": CategoryPharmacological,
	"Acarbose": CategoryPharmacological,
	"GLP-1 agonists": CategoryPharmacological,
	"SGLT2 inhibitors": CategoryPharmacological,
	"Alpha-ketoglutarate": CategoryPharmacological,
	"Senolytics (D+Q)": CategoryPharmacological,
	"Fisetin": CategoryPharmacological,
	"NAD+ Restoration (NMN/NR)": CategoryPharmacological,
	"Mitochondria (Urolithin A)": CategoryPharmacological,
	"Elamipretide": CategoryPharmacological,
	"Spermidine": CategoryPharmacological,
	"Chloroquine": CategoryPharmacological,
	"Glutathione Precursors": CategoryPharmacological,
	"L-deprenyl": CategoryPharmacological,
	"17α-estradiol": CategoryPharmacological,
	"Epigenetic reprogramming": CategoryGenetic,
	"Gene therapy": CategoryGenetic,
	"Proteostasis & Nucleolus": CategoryGenetic,
	"Telomere extension": CategoryGenetic,
	"Stem cell therapy": CategoryCellular,
	"Exosome therapy": CategoryCellular,
	"Chemical reprogramming": CategoryCellular,
	"Synthetic organs": CategoryCellular,
	"Immunotherapy senolytics": CategoryCellular,
	"Xenotransplantation": CategoryCellular,
	"Gut Microbiome Modulation": CategorySystemic,
	"Anti-inflammatory": CategorySystemic,
	"Plasma dilution/apheresis": CategorySystemic,
	"Young blood plasma": CategorySystemic,
}

// Categorize assigns an intervention category from its name. Unknown
// interventions fall into CategoryOther.
func Categorize(name string) Category {
	if c, ok := categoryByName[name]; ok {
		return c
	}
	return CategoryOther
}

// TranslationalReadiness is the rounded mean of the human-trial and
// safety scores. Halves round to even, matching the published tables.
func TranslationalReadiness(scores Vector) float64 {
	ht := scores[domainIndex[DomainHumanTrials]]
	sf := scores[domainIndex[DomainSafety]]
	return math.RoundToEven((ht + sf) / 2)
}

// AgingImpact weights lifespan efficacy three times against healthspan
// and mechanism conservation.
func AgingImpact(scores Vector) float64 {
	ls := scores[domainIndex[DomainLifespan]]
	hs := scores[domainIndex[DomainHealthspan]]
	cons := scores[domainIndex[DomainConservation]]
	return (ls*3 + hs + cons) / 5
}

// DerivedMetrics bundles the per-intervention derived values.
type DerivedMetrics struct {
	Intervention           string
	TranslationalReadiness float64
	AgingImpact            float64
	Category               Category
}

// ComputeDerivedMetrics evaluates all derived metrics for a table, in
// input order.
func ComputeDerivedMetrics(table *ScoreTable) []DerivedMetrics {
	out := make([]DerivedMetrics, table.Len())
	for i := 0; i < table.Len(); i++ {
		iv := table.At(i)
		out[i] = DerivedMetrics{
			Intervention:           iv.Name,
			TranslationalReadiness: TranslationalReadiness(iv.Scores),
			AgingImpact:            AgingImpact(iv.Scores),
			Category:               Categorize(iv.Name),
		}
	}
	return out
}
