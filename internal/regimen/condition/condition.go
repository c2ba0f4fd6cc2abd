// Package condition maps a raw patient condition string to the search
// terms, route preference, and exclusion terms CandidateFetcher needs
// to build its per-condition query, with awareness of the other
// conditions in the same request (e.g. asthma disables beta-blockers
// as a hypertension treatment).
package condition

import "strings"

// Mapping is the three-part output of mapping one condition.
type Mapping struct {
	Condition     string
	SearchTerms   []string
	RoutePref     string
	ExclusionTerms []string
}

// Mapper is a deterministic, stateless lexical mapper. It holds no
// fields; it exists so call sites read like the rest of the core's
// component boundary (construct once, call per condition).
type Mapper struct{}

// NewMapper constructs a condition Mapper.
func NewMapper() *Mapper { return &Mapper{} }

// Map builds the Mapping for one condition given every condition in
// the request (lowercased and joined here, for cross-condition rules).
func (m *Mapper) Map(rawCondition string, allConditions []string) Mapping {
	c := strings.ToLower(strings.TrimSpace(rawCondition))
	allText := strings.ToLower(strings.Join(allConditions, " "))

	return Mapping{
		Condition:      rawCondition,
		SearchTerms:    searchTerms(c, allText),
		RoutePref:      routePreference(c),
		ExclusionTerms: exclusionTerms(c, allText),
	}
}

// categoryTerms returns the term list of the first exclusive category
// c matches, or nil when it matches none.
func categoryTerms(c, allText string) []string {
	switch {
	case strings.Contains(c, "bacterial") || strings.Contains(c, "infection"):
		// "antibiotic" is deliberately excluded: it over-matches drugs
		// like acetohydroxamic acid whose description merely mentions it.
		return []string{
			"penicillin", "cephalosporin", "fluoroquinolone", "macrolide",
			"tetracycline", "sulfonamide", "aminoglycoside", "carbapenem",
			"nitroimidazole", "quinolone", "lincomycin", "glycopeptide",
		}
	case strings.Contains(c, "fungal") || strings.Contains(c, "fungus") || strings.Contains(c, "yeast"):
		return []string{"antifungal", "azole", "echinocandin", "allylamine"}
	case strings.Contains(c, "gerd") || strings.Contains(c, "reflux"):
		return []string{"gastroesophageal", "proton pump inhibitor", "antacid", "h2 antagonist"}
	case strings.Contains(c, "stomach") || strings.Contains(c, "gastric"):
		return []string{"antacid", "proton pump inhibitor", "h2 antagonist", "gastric"}
	case strings.Contains(c, "hypertension") || strings.Contains(c, "blood pressure"):
		if strings.Contains(allText, "asthma") || strings.Contains(allText, "copd") {
			return []string{"antihypertensive", "ace inhibitor", "calcium channel blocker", "diuretic", "angiotensin"}
		}
		return []string{"antihypertensive", "ace inhibitor", "beta blocker", "calcium channel blocker", "diuretic"}
	case strings.Contains(c, "headache") || strings.Contains(c, "migraine"):
		return []string{"migraine", "acetaminophen", "paracetamol", "triptan", "nsaid", "salicylate"}
	}
	return nil
}

// searchTerms implements the exclusive-category-first, then-generic
// rules: the matching exclusive category's terms (if any), then the raw
// condition string itself, then every generic, additive term group the
// condition triggers, deduplicated.
func searchTerms(c, allText string) []string {
	terms := append(categoryTerms(c, allText), c)
	if strings.Contains(c, "pain") || strings.Contains(c, "ache") {
		terms = append(terms, "analgesic", "antinociceptive", "nsaid", "acetaminophen", "paracetamol")
	}
	if strings.Contains(c, "fever") {
		terms = append(terms, "antipyretic", "pyrexia", "acetaminophen", "paracetamol")
	}
	if strings.Contains(c, "diabetes") {
		terms = append(terms, "hypoglycemic", "antidiabetic", "insulin", "biguanide", "sulfonylurea")
	}
	if strings.Contains(c, "anxiety") {
		terms = append(terms, "anxiolytic", "benzodiazepine")
	}
	if strings.Contains(c, "insomnia") {
		terms = append(terms, "sedative", "hypnotic", "sleep")
	}
	if strings.Contains(c, "cholesterol") {
		terms = append(terms, "statin", "lipid-lowering", "fibrates")
	}
	if strings.Contains(c, "depression") {
		terms = append(terms, "antidepressant", "ssri", "snri", "tricyclic", "tetracyclic", "mao inhibitor")
	}

	return dedupe(terms)
}

var systemicIndicators = []string{
	"headache", "back pain", "fever", "diabetes", "hypertension",
	"cholesterol", "gerd", "stomach", "anxiety", "insomnia",
	"bacterial", "infection", "depression",
}

var ophthalmicIndicators = []string{"eye", "ocular", "glaucoma"}
var topicalIndicators = []string{"skin", "rash", "dermatitis", "topical", "itch", "fungal"}

func routePreference(c string) string {
	if containsAny(c, systemicIndicators) {
		return "oral"
	}
	if containsAny(c, ophthalmicIndicators) {
		return "ophthalmic"
	}
	if containsAny(c, topicalIndicators) {
		return "topical"
	}
	return "oral"
}

func exclusionTerms(c, allText string) []string {
	var terms []string

	if !strings.Contains(c, "cancer") && !strings.Contains(c, "tumor") && !strings.Contains(c, "chemo") {
		terms = append(terms, "cancer", "carcinoma", "metastatic", "chemotherapy", "palliation")
	}
	if strings.Contains(c, "pain") || strings.Contains(c, "headache") || strings.Contains(c, "ache") {
		terms = append(terms, "anesthetic", "numbing", "local anesthesia")
	}
	if strings.Contains(allText, "asthma") || strings.Contains(allText, "copd") {
		terms = append(terms, "beta blocker", "beta-adrenergic", "beta-blocker", "beta antagonist")
	}

	return terms
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0:0]
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// NaiveSplit is a fallback condition extractor for callers with no
// biomedical NER model wired in — it splits free text on sentence and
// comma boundaries. It is not a substitute for NER and is intentionally
// crude: the core's primary input contract remains a []string of
// already-identified conditions.
func NaiveSplit(text string) []string {
	replacer := strings.NewReplacer(".", ",", ";", ",", "\n", ",")
	parts := strings.Split(replacer.Replace(text), ",")

	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
