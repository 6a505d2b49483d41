package report

import (
	"context"
	"strings"
	"testing"

	"decision-analysis/internal/model"
)

func sampleSections() model.ReportSections {
	return model.ReportSections{
		ExecutiveSummary: model.ExecutiveSummarySection{
			PrimaryBlocker: model.BlockerTrustGap,
			Confidence:     72,
			Category:       model.CategoryTrust,
		},
		ContextSnapshot: model.ContextSnapshotSection{
			PageType:   model.PageTypeSaaSPricing,
			PageIntent: model.IntentSignup,
			Stage:      model.StageEvaluation,
		},
		FailureBreakdown: model.FailureBreakdownSection{
			Primary: model.DecisionOutcome{Blocker: model.BlockerTrustGap, Why: "no trust signal", Where: "hero"},
		},
		WhatToFixFirst: model.WhatToFixFirstSection{
			Intervention: "Add a guarantee.", Rationale: "Visitors hesitate.", CostOfInaction: "Lost signups.",
		},
		Recommendations: model.RecommendationsSection{
			MessageLevel: []model.RecommendationItem{{Text: "Add testimonial", AddressesBlocker: model.BlockerTrustGap}},
		},
		WhatThisWillImprove: model.WhatThisWillImproveSection{ExpectedLift: model.LiftMedium, Narrative: "Should help."},
		NextDiagnosticStep:  model.NextDiagnosticStepSection{Enabled: true, Suggestion: "Re-run later."},
	}
}

func TestComposeFallsBackWithoutLLMClient(t *testing.T) {
	out, stageErr := Compose(context.Background(), nil, model.LocaleEN, model.AnalysisModeGeneric, sampleSections())
	if !strings.Contains(out, "Executive Decision Summary") {
		t.Fatal("expected fallback prose to include section headers")
	}
	if !strings.Contains(out, string(model.BlockerTrustGap)) {
		t.Fatal("expected fallback prose to mention the primary blocker")
	}
	if stageErr != nil {
		t.Fatalf("expected no stage error when the LLM client is simply disabled, got %v", stageErr)
	}
}

func TestToneViolationCatchesSuperlative(t *testing.T) {
	p := proseOutput{ExecutiveSummary: "This is an amazing result."}
	if toneViolation(p, model.AnalysisModeGeneric) == "" {
		t.Fatal("expected superlative to be flagged")
	}
}

func TestToneViolationCatchesGenericTrustVerdictInEnterpriseMode(t *testing.T) {
	p := proseOutput{FailureBreakdown: "The page lacks trust signals entirely."}
	if toneViolation(p, model.AnalysisModeEnterpriseContextAware) == "" {
		t.Fatal("expected generic trust verdict to be flagged in enterprise mode")
	}
}

func TestToneViolationAllowsCleanProse(t *testing.T) {
	p := proseOutput{ExecutiveSummary: "The primary blocker is a trust gap near the call to action."}
	if toneViolation(p, model.AnalysisModeGeneric) != "" {
		t.Fatal("expected clean prose to pass")
	}
}

func TestBuildNextDiagnosticStepDisabledOnCriticalFatigue(t *testing.T) {
	fatigue := model.DecisionFatigueAnalysis{Level: model.FatigueCritical, Recommendation: "Redesign the flow."}
	section := buildNextDiagnosticStep(fatigue, nil)
	if section.Enabled {
		t.Fatal("expected diagnostic step disabled under critical fatigue")
	}
	if section.RedesignCall != "Redesign the flow." {
		t.Fatalf("expected redesign call text, got %q", section.RedesignCall)
	}
}

func TestBuildRecommendationsGroupsByCategory(t *testing.T) {
	primary := model.DecisionOutcome{Blocker: model.BlockerEffortTooHigh, Category: model.CategoryCognitive, WhatToChangeFirst: "trim the form"}
	secondary := model.DecisionOutcome{Blocker: model.BlockerRiskNotAddressed, Category: model.CategoryRisk, WhatToChangeFirst: "name the risk"}
	recs := buildRecommendations(primary, &secondary)
	if len(recs.StructureLevel) != 1 || len(recs.TimingFlow) != 1 {
		t.Fatalf("expected one structure-level and one timing-flow item, got %+v", recs)
	}
}
