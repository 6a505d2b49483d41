package decisionengine

import (
	"testing"

	"decision-analysis/internal/model"
)

func trustGapSignals() model.DecisionSignals {
	return model.DecisionSignals{
		PromiseStrength:  model.OrdinalHigh,
		EmotionalTone:    model.OrdinalMedium,
		ReassuranceLevel: model.OrdinalLow,
		RiskExposure:     model.OrdinalHigh,
		CognitiveLoad:    model.OrdinalLow,
		PressureLevel:    model.OrdinalLow,
	}
}

func TestRankPicksHighestScoringBlocker(t *testing.T) {
	e := New()
	signals := trustGapSignals()
	brand := model.BrandContext{BrandMaturity: model.BrandNew, AnalysisMode: model.AnalysisModeGeneric}
	stage := model.StageAssessment{Stage: model.StageEvaluation}

	result := e.Rank(signals, model.PageFeatures{}, brand, stage, MemoryInput{})

	if result.Primary.Blocker != model.BlockerTrustGap {
		t.Fatalf("expected Trust Gap to win with low reassurance/high risk, got %s", result.Primary.Blocker)
	}
	if result.Primary.Category != model.CategoryTrust {
		t.Fatalf("expected trust category, got %s", result.Primary.Category)
	}
}

func TestEnterpriseModeReframesTrustGap(t *testing.T) {
	e := New()
	signals := trustGapSignals()
	brand := model.BrandContext{BrandMaturity: model.BrandEnterprise, AnalysisMode: model.AnalysisModeEnterpriseContextAware}
	stage := model.StageAssessment{Stage: model.StageEvaluation}

	result := e.Rank(signals, model.PageFeatures{}, brand, stage, MemoryInput{})

	if result.Primary.Blocker == model.BlockerTrustGap {
		t.Fatal("enterprise mode should discount a naive trust-gap verdict below another candidate when scores are close")
	}
}

func TestSecondaryOutcomeRequiresDifferentCategoryAndCloseScore(t *testing.T) {
	e := New()
	// Symmetric signals so no field dominates heavily: check that a secondary,
	// when present, is never from the same category as the primary.
	signals := model.DecisionSignals{
		PromiseStrength:  model.OrdinalMedium,
		EmotionalTone:    model.OrdinalMedium,
		ReassuranceLevel: model.OrdinalMedium,
		RiskExposure:     model.OrdinalMedium,
		CognitiveLoad:    model.OrdinalMedium,
		PressureLevel:    model.OrdinalMedium,
	}
	brand := model.BrandContext{AnalysisMode: model.AnalysisModeGeneric}
	stage := model.StageAssessment{Stage: model.StageOrientation}

	result := e.Rank(signals, model.PageFeatures{}, brand, stage, MemoryInput{})

	if result.Secondary != nil && result.Secondary.Category == result.Primary.Category {
		t.Fatalf("secondary outcome must differ in category from primary, got %s twice", result.Primary.Category)
	}
}

func TestModulateByMemoryNoHistoryDiscounts(t *testing.T) {
	got := modulateByMemory(80, MemoryInput{HasHistory: false})
	if got != 80*0.9 {
		t.Fatalf("expected ×0.9 discount with no history, got %f", got)
	}
}

func TestModulateByMemoryConflictingDiscounts(t *testing.T) {
	got := modulateByMemory(80, MemoryInput{HasHistory: true, Conflicting: true})
	if got != 80*0.85 {
		t.Fatalf("expected ×0.85 discount when history conflicts, got %f", got)
	}
}

func TestModulateByMemoryPersistentBoostsAndCaps(t *testing.T) {
	got := modulateByMemory(95, MemoryInput{HasHistory: true, PersistentMatch: true})
	if got != 100 {
		t.Fatalf("expected persistent match to boost and cap at 100, got %f", got)
	}
}

func TestSuppressRepeatedFixUsesDeeperIntervention(t *testing.T) {
	e := New()
	signals := trustGapSignals()
	brand := model.BrandContext{AnalysisMode: model.AnalysisModeGeneric}
	stage := model.StageAssessment{Stage: model.StageEvaluation}

	withoutSuppress := e.Rank(signals, model.PageFeatures{}, brand, stage, MemoryInput{})
	withSuppress := e.Rank(signals, model.PageFeatures{}, brand, stage, MemoryInput{SuppressFix: true})

	if withoutSuppress.Primary.WhatToChangeFirst == withSuppress.Primary.WhatToChangeFirst {
		t.Fatal("expected suppressed fix text to differ from the normal fix text")
	}
}

func TestSeverityMatrixCoversEveryBlockerStagePair(t *testing.T) {
	for _, b := range model.AllBlockers {
		for _, stage := range []model.DecisionStage{
			model.StageOrientation,
			model.StageSenseMaking,
			model.StageEvaluation,
			model.StageCommitment,
			model.StagePostDecision,
		} {
			sev := SeverityFor(b, stage)
			if sev == "" {
				t.Fatalf("missing severity for (%s, %s)", b, stage)
			}
		}
	}
}

func TestConfidenceFromGapClampedToRange(t *testing.T) {
	if got := confidenceFromGap(100, 0); got > 95 {
		t.Fatalf("expected confidence capped at 95, got %f", got)
	}
	if got := confidenceFromGap(0, 0); got < 20 {
		t.Fatalf("expected confidence floored at 20, got %f", got)
	}
}
