package condition

import "testing"

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func TestBacterialExcludesGenericAntibiotic(t *testing.T) {
	m := NewMapper()
	mapping := m.Map("bacterial infection", []string{"bacterial infection"})
	if contains(mapping.SearchTerms, "antibiotic") {
		t.Error("search terms must not include the generic word antibiotic")
	}
	if !contains(mapping.SearchTerms, "penicillin") {
		t.Error("expected penicillin in bacterial infection search terms")
	}
}

func TestHypertensionDropsBetaBlockerWithAsthma(t *testing.T) {
	m := NewMapper()
	all := []string{"hypertension", "asthma"}
	mapping := m.Map("hypertension", all)
	if contains(mapping.SearchTerms, "beta blocker") {
		t.Error("beta blocker must be dropped from hypertension terms when asthma is present")
	}
	if !contains(mapping.SearchTerms, "angiotensin") {
		t.Error("angiotensin must replace beta blocker when asthma is present")
	}
	if !contains(mapping.ExclusionTerms, "beta blocker") {
		t.Error("beta blocker must be excluded when asthma is present")
	}
}

func TestHypertensionKeepsBetaBlockerWithoutAsthma(t *testing.T) {
	m := NewMapper()
	mapping := m.Map("hypertension", []string{"hypertension"})
	if !contains(mapping.SearchTerms, "beta blocker") {
		t.Error("beta blocker expected in plain hypertension terms")
	}
}

func TestRoutePreference(t *testing.T) {
	m := NewMapper()
	cases := map[string]string{
		"headache":       "oral",
		"glaucoma":       "ophthalmic",
		"skin rash":      "topical",
		"something else": "oral",
	}
	for cond, want := range cases {
		got := m.Map(cond, []string{cond}).RoutePref
		if got != want {
			t.Errorf("routePreference(%q) = %q, want %q", cond, got, want)
		}
	}
}

func TestPainExcludesAnesthetic(t *testing.T) {
	m := NewMapper()
	mapping := m.Map("chronic pain", []string{"chronic pain"})
	if !contains(mapping.ExclusionTerms, "anesthetic") {
		t.Error("pain conditions must exclude anesthetic terms")
	}
}

func TestCancerConditionDoesNotExcludeCancerTerms(t *testing.T) {
	m := NewMapper()
	mapping := m.Map("breast cancer", []string{"breast cancer"})
	if contains(mapping.ExclusionTerms, "cancer") {
		t.Error("a cancer condition must not exclude cancer-related drugs")
	}
}

func TestNaiveSplit(t *testing.T) {
	got := NaiveSplit("Patient has hypertension, and mild asthma. Reports headaches too.")
	want := []string{"Patient has hypertension", "and mild asthma", "Reports headaches too"}
	if len(got) != len(want) {
		t.Fatalf("NaiveSplit returned %d parts, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("part %d = %q, want %q", i, got[i], want[i])
		}
	}
}
