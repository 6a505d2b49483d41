package report

import (
	"strings"

	"decision-analysis/internal/model"
)

// superlatives are marketing words forbidden in diagnostic prose
// (spec.md §4.8).
var superlatives = []string{"amazing", "incredible", "game-changing", "revolutionary", "unbelievable"}

// genericTrustVerdicts are the naive phrasings forbidden once the engine is
// in enterprise-aware mode.
var genericTrustVerdicts = []string{"lacks trust signals", "no trust signals", "missing trust signals"}

// roiPromisePhrases flag absolute, unconditional ROI claims.
var roiPromisePhrases = []string{"guaranteed roi", "will double your", "guaranteed increase", "100% increase"}

// toneViolation runs the pre-emit checks from spec.md §4.8 across every
// prose section and returns a short description of the first violation
// found, or "" if the prose passes.
func toneViolation(p proseOutput, analysisMode model.AnalysisMode) string {
	fields := []string{
		p.ExecutiveSummary, p.ContextSnapshot, p.FailureBreakdown,
		p.WhatToFixFirst, p.Recommendations, p.WhatThisWillImprove, p.NextDiagnosticStep,
	}
	for _, text := range fields {
		lower := strings.ToLower(text)
		for _, word := range superlatives {
			if strings.Contains(lower, word) {
				return "marketing superlative: " + word
			}
		}
		for _, phrase := range roiPromisePhrases {
			if strings.Contains(lower, phrase) {
				return "absolute roi promise: " + phrase
			}
		}
		if analysisMode == model.AnalysisModeEnterpriseContextAware {
			for _, phrase := range genericTrustVerdicts {
				if strings.Contains(lower, phrase) {
					return "generic trust verdict in enterprise-aware mode: " + phrase
				}
			}
		}
	}
	return ""
}
