package evidence

import "decision-analysis/internal/model"

// signalField names one of the six always-present ordinal fields, in
// merge order.
type signalField struct {
	name string
	get  func(model.DecisionSignals) model.Ordinal
	set  func(*model.DecisionSignals, model.Ordinal)
}

var signalFields = []signalField{
	{"promise_strength", func(s model.DecisionSignals) model.Ordinal { return s.PromiseStrength }, func(s *model.DecisionSignals, o model.Ordinal) { s.PromiseStrength = o }},
	{"emotional_tone", func(s model.DecisionSignals) model.Ordinal { return s.EmotionalTone }, func(s *model.DecisionSignals, o model.Ordinal) { s.EmotionalTone = o }},
	{"reassurance_level", func(s model.DecisionSignals) model.Ordinal { return s.ReassuranceLevel }, func(s *model.DecisionSignals, o model.Ordinal) { s.ReassuranceLevel = o }},
	{"risk_exposure", func(s model.DecisionSignals) model.Ordinal { return s.RiskExposure }, func(s *model.DecisionSignals, o model.Ordinal) { s.RiskExposure = o }},
	{"cognitive_load", func(s model.DecisionSignals) model.Ordinal { return s.CognitiveLoad }, func(s *model.DecisionSignals, o model.Ordinal) { s.CognitiveLoad = o }},
	{"pressure_level", func(s model.DecisionSignals) model.Ordinal { return s.PressureLevel }, func(s *model.DecisionSignals, o model.Ordinal) { s.PressureLevel = o }},
}

// namedSignals pairs a present source with its weight for merging.
type namedSignals struct {
	source  Source
	signals model.DecisionSignals
}

// Merge combines whichever sources are present using the weights in
// spec.md §4.5 (landing 0.6, ad 0.2, pricing 0.2, renormalized over present
// sources), merging each ordinal field by weighted mean on the 0/1/2 scale.
// Confidence starts at 0.7 and is adjusted ±0.05 per agreeing/disagreeing
// pair, clamped to [0.4, 0.95].
func Merge(landing model.DecisionSignals, ad *model.DecisionSignals, pricing *model.DecisionSignals) model.DecisionSignals {
	present := []namedSignals{{SourceLanding, landing}}
	if ad != nil {
		present = append(present, namedSignals{SourceAd, *ad})
	}
	if pricing != nil {
		present = append(present, namedSignals{SourcePricing, *pricing})
	}

	totalWeight := 0.0
	for _, p := range present {
		totalWeight += sourceWeights[p.source]
	}

	merged := model.DecisionSignals{}
	for _, field := range signalFields {
		weightedSum := 0.0
		for _, p := range present {
			w := sourceWeights[p.source] / totalWeight
			weightedSum += w * float64(model.OrdinalValue(field.get(p.signals)))
		}
		field.set(&merged, model.OrdinalFromValue(weightedSum))
	}

	merged.Confidence = clampConfidence(0.7 + agreementAdjustment(present))
	return merged
}

func agreementAdjustment(present []namedSignals) float64 {
	adjustment := 0.0
	for _, field := range signalFields {
		for i := 0; i < len(present); i++ {
			for j := i + 1; j < len(present); j++ {
				if field.get(present[i].signals) == field.get(present[j].signals) {
					adjustment += 0.05
				} else {
					adjustment -= 0.05
				}
			}
		}
	}
	return adjustment
}

func clampConfidence(c float64) float64 {
	if c < 0.4 {
		return 0.4
	}
	if c > 0.95 {
		return 0.95
	}
	return c
}
