// Package textnorm cleans the heterogeneous free-text numeric fields
// (price, half-life, toxicity) that the relational store carries as
// unstructured strings.
package textnorm

import (
	"regexp"
	"strconv"
	"strings"
)

var nonNumeric = regexp.MustCompile(`[^\d.]`)

// ParsePrice strips every non-digit, non-dot character from p and
// parses the remainder as a float. An empty or unparseable string
// yields 0, never an error — heterogeneous source data means a parse
// failure is data loss to be tolerated, not a reason to fail a solve.
func ParsePrice(p string) float64 {
	if p == "" {
		return 0
	}
	clean := nonNumeric.ReplaceAllString(p, "")
	val, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return val
}

var firstDecimal = regexp.MustCompile(`\d+(\.\d+)?`)

// ParseHalfLife extracts the first decimal number in hl and scales it
// by the unit implied by the surrounding text: ×24 if "day" appears,
// ÷60 if "minute" appears, else the number is already in hours. An
// empty string or one with no number yields 0.
func ParseHalfLife(hl string) float64 {
	if hl == "" {
		return 0
	}
	match := firstDecimal.FindString(hl)
	if match == "" {
		return 0
	}
	num, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	lower := strings.ToLower(hl)
	switch {
	case strings.Contains(lower, "day"):
		return num * 24
	case strings.Contains(lower, "minute"):
		return num / 60
	default:
		return num
	}
}

// toxicitySentinel is the numerator used when a drug has no toxicity
// row at all — "unknown" is treated as cautiously dangerous rather
// than cautiously safe.
const toxicitySentinel = 500

// ToxicityScore combines a crude proxy for documented adverse-effect
// volume (toxicity text length, or the sentinel if absent) with
// half-life (longer systemic exposure is treated as riskier).
func ToxicityScore(toxicityText string, halfLifeHours float64) float64 {
	numerator := float64(toxicitySentinel)
	if toxicityText != "" {
		numerator = float64(len(toxicityText))
	}
	return numerator/10 + halfLifeHours*0.5
}
