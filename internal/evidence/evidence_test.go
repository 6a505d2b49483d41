package evidence

import (
	"testing"

	"decision-analysis/internal/model"
)

func TestAdReturnsFalseWhenEmpty(t *testing.T) {
	_, ok := Ad("")
	if ok {
		t.Fatal("expected Ad to report absent source for empty text")
	}
}

func TestPricingReturnsFalseWhenEmpty(t *testing.T) {
	_, ok := Pricing("", 0)
	if ok {
		t.Fatal("expected Pricing to report absent source for empty input")
	}
}

func TestMergeSingleSourceKeepsItsValues(t *testing.T) {
	landing := model.DecisionSignals{
		PromiseStrength:  model.OrdinalHigh,
		EmotionalTone:    model.OrdinalMedium,
		ReassuranceLevel: model.OrdinalLow,
		RiskExposure:     model.OrdinalHigh,
		CognitiveLoad:    model.OrdinalMedium,
		PressureLevel:    model.OrdinalLow,
	}
	merged := Merge(landing, nil, nil)
	if merged.PromiseStrength != model.OrdinalHigh {
		t.Fatalf("expected promise_strength to carry through, got %s", merged.PromiseStrength)
	}
	if merged.Confidence < 0.4 || merged.Confidence > 0.95 {
		t.Fatalf("confidence out of bounds: %f", merged.Confidence)
	}
}

func TestMergeConfidenceClamped(t *testing.T) {
	landing := model.DecisionSignals{PromiseStrength: model.OrdinalHigh, RiskExposure: model.OrdinalHigh}
	ad := model.DecisionSignals{PromiseStrength: model.OrdinalLow, RiskExposure: model.OrdinalLow}
	pricing := model.DecisionSignals{PromiseStrength: model.OrdinalMedium, RiskExposure: model.OrdinalMedium}
	merged := Merge(landing, &ad, &pricing)
	if merged.Confidence < 0.4 || merged.Confidence > 0.95 {
		t.Fatalf("confidence out of bounds: %f", merged.Confidence)
	}
}
