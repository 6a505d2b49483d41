package contextclass

import (
	"testing"

	"decision-analysis/internal/model"
)

func TestClassifyBrandMaturityEnterprise(t *testing.T) {
	bc := ClassifyBrandMaturity("We are SOC 2 certified and ISO 27001 compliant. See our careers page.")
	if bc.BrandMaturity != model.BrandEnterprise {
		t.Fatalf("expected enterprise, got %s", bc.BrandMaturity)
	}
	if bc.AnalysisMode != model.AnalysisModeEnterpriseContextAware {
		t.Fatalf("expected enterprise_context_aware mode, got %s", bc.AnalysisMode)
	}
}

func TestClassifyBrandMaturityNew(t *testing.T) {
	bc := ClassifyBrandMaturity("Just launched our product last week!")
	if bc.BrandMaturity != model.BrandNew {
		t.Fatalf("expected new, got %s", bc.BrandMaturity)
	}
	if bc.AnalysisMode != model.AnalysisModeGeneric {
		t.Fatalf("expected generic mode, got %s", bc.AnalysisMode)
	}
}

func TestClassifyStageCommitment(t *testing.T) {
	f := model.PageFeatures{HasCheckoutOrForm: true, HasPricing: true}
	s := ClassifyStage(f)
	if s.Stage != model.StageCommitment {
		t.Fatalf("expected commitment, got %s", s.Stage)
	}
}

func TestClassifyStageEvaluation(t *testing.T) {
	f := model.PageFeatures{HasPricing: true, PageType: model.PageTypeSaaSPricing}
	s := ClassifyStage(f)
	if s.Stage != model.StageEvaluation {
		t.Fatalf("expected evaluation, got %s", s.Stage)
	}
}

func TestClassifyStageConfidenceCapped(t *testing.T) {
	f := model.PageFeatures{HasCheckoutOrForm: true, HasPricing: true}
	s := ClassifyStage(f)
	if s.Confidence > 0.95 {
		t.Fatalf("confidence should be capped at 0.95, got %f", s.Confidence)
	}
}
