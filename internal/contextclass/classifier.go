// Package contextclass infers brand maturity and decision stage from page
// features, purely by lexical/structural tests (spec.md §4.4, component C4).
package contextclass

import (
	"strings"

	"decision-analysis/internal/model"
)

// enterpriseMarkers is the configurable dictionary of lexical enterprise
// signals (spec.md §4.4: "recognizable brand tokens via a configurable
// dictionary, compliance badges, multi-language switchers, careers/
// investors links").
var enterpriseMarkers = []string{
	"soc 2", "soc2", "iso 27001", "gdpr compliant", "hipaa compliant",
	"careers", "investor relations", "investors", "enterprise plan",
	"dedicated account manager", "sla", "fortune 500", "global offices",
}

var growingMarkers = []string{
	"series a", "series b", "backed by", "featured in", "award-winning",
	"trusted by over", "customers worldwide",
}

// ClassifyBrandMaturity applies the lexical test ladder. Confidence scales
// with the number of confirming markers, mirroring the stage-classifier's
// confirming-signal-count convention (spec.md §4.4).
func ClassifyBrandMaturity(text string) model.BrandContext {
	lower := strings.ToLower(text)

	enterpriseHits := countHits(lower, enterpriseMarkers)
	growingHits := countHits(lower, growingMarkers)

	var maturity model.BrandMaturity
	var confidence float64
	switch {
	case enterpriseHits >= 2:
		maturity = model.BrandEnterprise
		confidence = capConfidence(0.6 + 0.1*float64(enterpriseHits))
	case enterpriseHits == 1:
		maturity = model.BrandEstablished
		confidence = 0.65
	case growingHits >= 1:
		maturity = model.BrandGrowing
		confidence = capConfidence(0.5 + 0.1*float64(growingHits))
	default:
		maturity = model.BrandNew
		confidence = 0.55
	}

	mode := model.AnalysisModeGeneric
	if maturity == model.BrandEnterprise || maturity == model.BrandEstablished {
		mode = model.AnalysisModeEnterpriseContextAware
	}

	return model.BrandContext{
		BrandMaturity: maturity,
		Confidence:    confidence,
		AnalysisMode:  mode,
	}
}

func countHits(lower string, markers []string) int {
	n := 0
	for _, m := range markers {
		if strings.Contains(lower, m) {
			n++
		}
	}
	return n
}

func capConfidence(c float64) float64 {
	if c > 0.95 {
		return 0.95
	}
	return c
}

// ClassifyStage applies the ordered rule ladder from spec.md §4.4.
// Confidence = 0.5 + 0.1 × (number of confirming signals), capped at 0.95.
func ClassifyStage(f model.PageFeatures) model.StageAssessment {
	var stage model.DecisionStage
	var signals []string

	switch {
	case f.HasCheckoutOrForm && f.HasPricing:
		stage = model.StageCommitment
		signals = append(signals, "checkout_or_form_present", "pricing_visible")
	case hasComparisonSignal(f) || f.HasPricing:
		stage = model.StageEvaluation
		signals = append(signals, "pricing_or_comparison_visible")
	case f.HasEducationalCopy && !hasStrongCTA(f):
		stage = model.StageOrientation
		signals = append(signals, "educational_copy_dominant", "no_strong_cta")
	case hasSoftCTA(f):
		stage = model.StageSenseMaking
		signals = append(signals, "benefit_copy_with_soft_cta")
	case hasPostDecisionSignal(f):
		stage = model.StagePostDecision
		signals = append(signals, "confirmation_or_onboarding_cues")
	default:
		stage = model.StageOrientation
		signals = append(signals, "default_fallback")
	}

	confidence := 0.5 + 0.1*float64(len(signals))
	if confidence > 0.95 {
		confidence = 0.95
	}

	return model.StageAssessment{Stage: stage, Confidence: confidence, Signals: signals}
}

func hasComparisonSignal(f model.PageFeatures) bool {
	return f.PageType == model.PageTypeSaaSPricing
}

func hasStrongCTA(f model.PageFeatures) bool {
	return len(f.CTAs) >= 2
}

func hasSoftCTA(f model.PageFeatures) bool {
	return len(f.CTAs) == 1
}

func hasPostDecisionSignal(f model.PageFeatures) bool {
	for _, h := range f.Headlines {
		lower := strings.ToLower(h.Text)
		if strings.Contains(lower, "welcome") || strings.Contains(lower, "thank you") || strings.Contains(lower, "confirmed") {
			return true
		}
	}
	return false
}
