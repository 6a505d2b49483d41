// Package evidence extracts DecisionSignals from landing, ad, and pricing
// sources and merges them into one weighted record (spec.md §4.5,
// component C5).
package evidence

import (
	"regexp"
	"strings"

	"decision-analysis/internal/model"
)

// Source names a weighted evidence extractor, in the order the merger
// weights them.
type Source string

const (
	SourceLanding Source = "landing"
	SourceAd      Source = "ad"
	SourcePricing Source = "pricing"
)

// sourceWeights are normalized over present sources at merge time.
var sourceWeights = map[Source]float64{
	SourceLanding: 0.6,
	SourceAd:      0.2,
	SourcePricing: 0.2,
}

// Landing derives DecisionSignals from PageFeatures (spec.md §4.5):
// trustScore → reassurance_level; frictionScore → cognitive_load (higher
// friction reads as higher load);
// clarityScore → promise_strength; trust-signal presence → risk_exposure
// (inverse).
func Landing(f model.PageFeatures) model.DecisionSignals {
	return model.DecisionSignals{
		ReassuranceLevel: scoreToOrdinal(f.TrustScore),
		CognitiveLoad:    scoreToOrdinal(f.FrictionScore),
		PromiseStrength:  scoreToOrdinal(f.ClarityScore),
		RiskExposure:     scoreToOrdinal(100 - trustSignalDensity(f)),
		EmotionalTone:    model.OrdinalMedium,
		PressureLevel:    model.OrdinalLow,
		Confidence:       0.7,
	}
}

func trustSignalDensity(f model.PageFeatures) int {
	n := len(f.TrustSignals)
	switch {
	case n >= 3:
		return 100
	case n == 2:
		return 70
	case n == 1:
		return 40
	default:
		return 0
	}
}

// promiseWords/urgencyWords/reassuranceWords ground the ad-text lexical
// analysis (spec.md §4.5: "lexical analysis for promise, urgency,
// reassurance").
var promiseWords = []string{"guaranteed", "proven", "transform", "#1", "best-in-class", "results"}
var urgencyWords = []string{"today", "now", "limited time", "ends soon", "last chance", "hurry"}
var reassuranceWords = []string{"risk-free", "no credit card", "cancel anytime", "money-back"}

// Ad derives DecisionSignals from optional ad text/headlines. Returns
// false if adText is empty — the caller skips this source entirely
// (spec.md §4.9: "skip ad signals if no ad text").
func Ad(adText string) (model.DecisionSignals, bool) {
	if strings.TrimSpace(adText) == "" {
		return model.DecisionSignals{}, false
	}
	lower := strings.ToLower(adText)
	promise := lexicalOrdinal(lower, promiseWords)
	urgency := lexicalOrdinal(lower, urgencyWords)
	reassurance := lexicalOrdinal(lower, reassuranceWords)

	tone := model.OrdinalMedium
	if urgency == model.OrdinalHigh {
		tone = model.OrdinalHigh
	}

	return model.DecisionSignals{
		PromiseStrength:  promise,
		EmotionalTone:    tone,
		ReassuranceLevel: reassurance,
		RiskExposure:     invert(reassurance),
		CognitiveLoad:    model.OrdinalLow,
		PressureLevel:    urgency,
		Confidence:       0.7,
	}, true
}

// commitmentTermWords grounds the pricing-text commitment-language test.
var commitmentTermWords = []string{"annual commitment", "long-term contract", "non-refundable", "minimum term"}

// Pricing derives DecisionSignals from optional pricing HTML/text: plan
// count → cognitive_load; transparency → reassurance_level; commitment
// terms → pressure_level (spec.md §4.5). Returns false only if pricingText
// is empty and planCount is 0.
func Pricing(pricingText string, planCount int) (model.DecisionSignals, bool) {
	if strings.TrimSpace(pricingText) == "" && planCount == 0 {
		return model.DecisionSignals{}, false
	}
	lower := strings.ToLower(pricingText)

	cognitiveLoad := model.OrdinalLow
	switch {
	case planCount >= 4:
		cognitiveLoad = model.OrdinalHigh
	case planCount >= 2:
		cognitiveLoad = model.OrdinalMedium
	}

	transparent := strings.Contains(lower, "$") || strings.Contains(lower, "€") || strings.Contains(lower, "£")
	reassurance := model.OrdinalMedium
	if transparent {
		reassurance = model.OrdinalHigh
	}

	pressure := lexicalOrdinal(lower, commitmentTermWords)

	return model.DecisionSignals{
		PromiseStrength:  model.OrdinalMedium,
		EmotionalTone:    model.OrdinalMedium,
		ReassuranceLevel: reassurance,
		RiskExposure:     invert(reassurance),
		CognitiveLoad:    cognitiveLoad,
		PressureLevel:    pressure,
		Confidence:       0.7,
	}, true
}

var priceAmountPattern = regexp.MustCompile(`(?i)(\$|€|£)\s?\d`)

// EstimatePlanCount approximates how many pricing tiers a page shows by
// counting currency-amount occurrences in its rendered text (repeated
// amounts are counted each time). Used
// as the planCount input to Pricing when no separate pricing payload is
// supplied (spec.md §4.5's plan-count signal, derived from the same
// captured page rather than a dedicated pricing source).
func EstimatePlanCount(text string) int {
	return len(priceAmountPattern.FindAllString(text, -1))
}

func lexicalOrdinal(lower string, words []string) model.Ordinal {
	hits := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			hits++
		}
	}
	switch {
	case hits >= 2:
		return model.OrdinalHigh
	case hits == 1:
		return model.OrdinalMedium
	default:
		return model.OrdinalLow
	}
}

func invert(o model.Ordinal) model.Ordinal {
	switch o {
	case model.OrdinalHigh:
		return model.OrdinalLow
	case model.OrdinalLow:
		return model.OrdinalHigh
	default:
		return model.OrdinalMedium
	}
}

func scoreToOrdinal(score int) model.Ordinal {
	switch {
	case score >= 66:
		return model.OrdinalHigh
	case score >= 33:
		return model.OrdinalMedium
	default:
		return model.OrdinalLow
	}
}
