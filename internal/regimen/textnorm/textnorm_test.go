package textnorm

import "testing"

func TestParsePrice(t *testing.T) {
	cases := map[string]float64{
		"":          0,
		"$12.50":    12.50,
		"USD 4":     4,
		"not a num": 0,
		"3.":        3,
	}
	for in, want := range cases {
		if got := ParsePrice(in); got != want {
			t.Errorf("ParsePrice(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseHalfLife(t *testing.T) {
	cases := map[string]float64{
		"":                     0,
		"2-3 hours":            2,
		"1 day":                24,
		"1.5 days":             36,
		"45 minutes":           0.75,
		"no number here at all": 0,
	}
	for in, want := range cases {
		if got := ParseHalfLife(in); got != want {
			t.Errorf("ParseHalfLife(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestToxicityScoreSentinel(t *testing.T) {
	got := ToxicityScore("", 0)
	want := 500.0 / 10
	if got != want {
		t.Errorf("ToxicityScore(\"\", 0) = %v, want %v", got, want)
	}
}

func TestToxicityScoreWithHalfLife(t *testing.T) {
	text := "liver damage reported" // 21 chars
	got := ToxicityScore(text, 10)
	want := float64(len(text))/10 + 10*0.5
	if got != want {
		t.Errorf("ToxicityScore = %v, want %v", got, want)
	}
}
