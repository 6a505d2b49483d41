// ═══════════════════════════════════════════════════════════════════════════════
// DECISION ENGINE — DETERMINISTIC BLOCKER RANKING
// No randomness, no LLM calls in this package: pure rule logic over the
// merged DecisionSignals, PageFeatures, BrandContext, and StageAssessment
// (spec.md §4.6, component C6).
// ═══════════════════════════════════════════════════════════════════════════════
package decisionengine

import (
	"sort"

	"decision-analysis/internal/model"
)

// Engine ranks decision blockers deterministically.
type Engine struct{}

// New constructs an Engine. Stateless; safe to share across requests.
func New() *Engine {
	return &Engine{}
}

// MemoryInput carries the Memory Layer's confidence-adjustment inputs so
// the engine never imports the memory package directly (spec.md §4.6's
// modulation step, kept as a narrow value object rather than a dependency).
type MemoryInput struct {
	HasHistory      bool
	Sparse          bool // fewer than 3 records exist; too little to trust yet
	PersistentMatch bool // a consistent persistent pattern was found
	Conflicting     bool // history conflicts with the proposed outcome
	SuppressFix     bool // suppressRepeatedFix fired for the candidate fix text
}

// Result is the engine's full output for one analysis.
type Result struct {
	Primary   model.DecisionOutcome
	Secondary *model.DecisionOutcome
}

// blockerWeights is the fixed signal→blocker scoring matrix (spec.md §4.6
// step 1). Each entry contributes weight × ordinal-value(field) to that
// blocker's score.
type weightEntry struct {
	field  string
	weight float64
	invert bool // true if low ordinal should contribute, not high
}

var blockerWeights = map[model.Blocker][]weightEntry{
	model.BlockerOutcomeUnclear: {
		{"cognitive_load", 1.0, false},
		{"promise_strength", 1.0, true},
	},
	model.BlockerTrustGap: {
		{"reassurance_level", 1.0, true},
		{"risk_exposure", 1.0, false},
	},
	model.BlockerRiskNotAddressed: {
		{"risk_exposure", 1.2, false},
		{"reassurance_level", 0.6, true},
	},
	model.BlockerEffortTooHigh: {
		{"cognitive_load", 1.4, false},
	},
	model.BlockerCommitmentAnxiety: {
		{"pressure_level", 1.0, false},
		{"reassurance_level", 1.0, true},
	},
	model.BlockerMotivationMismatch: {
		{"promise_strength", 1.0, true},
		{"emotional_tone", 0.5, true},
	},
	model.BlockerIdentityMisfit: {
		{"emotional_tone", 1.0, true},
		{"expectation_gap", 0.8, false},
	},
}

// Rank scores all seven blockers, selects primary/secondary, computes
// severity, confidence, and expected lift (spec.md §4.6).
func (e *Engine) Rank(signals model.DecisionSignals, features model.PageFeatures, brand model.BrandContext, stage model.StageAssessment, mem MemoryInput) Result {
	scores := e.score(signals)

	type scored struct {
		blocker model.Blocker
		score   float64
	}
	var ranked []scored
	for _, b := range model.AllBlockers {
		ranked = append(ranked, scored{b, scores[b]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	primaryBlocker := ranked[0].blocker
	primaryScore := ranked[0].score

	// Brand-aware reframing: enterprise mode forbids naive trust-gap verdicts.
	if brand.AnalysisMode == model.AnalysisModeEnterpriseContextAware && primaryBlocker == model.BlockerTrustGap {
		ranked[0].score *= 0.7
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
		primaryBlocker = ranked[0].blocker
		primaryScore = ranked[0].score
	}

	var secondaryBlocker *model.Blocker
	var secondaryScore float64
	if len(ranked) > 1 {
		runnerUp := ranked[1]
		sameCategory := model.BlockerCategory[primaryBlocker] == model.BlockerCategory[runnerUp.blocker]
		if primaryScore > 0 && runnerUp.score >= primaryScore*0.85 && !sameCategory {
			b := runnerUp.blocker
			secondaryBlocker = &b
			secondaryScore = runnerUp.score
		}
	}

	confidence := confidenceFromGap(primaryScore, secondaryScore) * evidenceQualityFactor(signals.Confidence)
	confidence = clampConfidencePercent(modulateByMemory(confidence, mem))

	severity := SeverityFor(primaryBlocker, stage.Stage)
	lift := expectedLiftFor(severity, model.BlockerCategory[primaryBlocker])

	why, where := rationaleFor(primaryBlocker, brand)
	fix := whatToChangeFirst(primaryBlocker, stage.Stage, model.BlockerCategory[primaryBlocker], features.PageType)
	if mem.SuppressFix {
		fix = deeperIntervention(primaryBlocker)
	}

	primary := model.DecisionOutcome{
		Blocker:           primaryBlocker,
		Category:          model.BlockerCategory[primaryBlocker],
		Why:               why,
		Where:             where,
		WhatToChangeFirst: fix,
		Confidence:        confidence,
		ExpectedLift:      lift,
		Severity:          severity,
		Score:             primaryScore,
	}

	result := Result{Primary: primary}
	if secondaryBlocker != nil {
		sb := *secondaryBlocker
		sWhy, sWhere := rationaleFor(sb, brand)
		sSeverity := SeverityFor(sb, stage.Stage)
		result.Secondary = &model.DecisionOutcome{
			Blocker:           sb,
			Category:          model.BlockerCategory[sb],
			Why:               sWhy,
			Where:             sWhere,
			WhatToChangeFirst: whatToChangeFirst(sb, stage.Stage, model.BlockerCategory[sb], features.PageType),
			Confidence:        clampConfidencePercent(confidenceFromGap(secondaryScore, primaryScore) * 0.9 * evidenceQualityFactor(signals.Confidence)),
			ExpectedLift:      expectedLiftFor(sSeverity, model.BlockerCategory[sb]),
			Severity:          sSeverity,
			Score:             secondaryScore,
		}
	}
	return result
}

func (e *Engine) score(signals model.DecisionSignals) map[model.Blocker]float64 {
	fields := signals.Fields()
	if signals.ExpectationGap != nil {
		fields["expectation_gap"] = *signals.ExpectationGap
	} else {
		fields["expectation_gap"] = model.OrdinalMedium
	}

	scores := make(map[model.Blocker]float64)
	for blocker, entries := range blockerWeights {
		total := 0.0
		for _, we := range entries {
			v := float64(model.OrdinalValue(fields[we.field]))
			if we.invert {
				v = 2 - v
			}
			total += we.weight * v
		}
		scores[blocker] = total
	}
	return scores
}

// confidenceFromGap: wider gap between primary and runner-up → higher
// confidence (spec.md §4.6).
func confidenceFromGap(primary, runnerUp float64) float64 {
	gap := primary - runnerUp
	confidence := 50 + gap*10
	if confidence > 95 {
		confidence = 95
	}
	if confidence < 20 {
		confidence = 20
	}
	return confidence
}

// evidenceQualityFactor turns the Evidence Merger's agreement-adjusted
// Confidence (spec.md §4.5, baseline 0.7 for a single source, [0.4, 0.95]
// once more than one source is merged) into a multiplier against the
// gap-derived confidence score: 1.0 at the single-source baseline, above 1
// when merged sources agree, below 1 when they conflict. A zero value means
// the caller never populated it (e.g. a hand-built DecisionSignals in a
// test) and is treated as neutral.
func evidenceQualityFactor(mergedConfidence float64) float64 {
	if mergedConfidence <= 0 {
		return 1.0
	}
	return mergedConfidence / 0.7
}

func clampConfidencePercent(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// modulateByMemory applies the ×0.9/×1.1/×0.85 rules from spec.md §4.6/§4.7.
// No history and sparse (<3 records) history both discount by the same
// ×0.9 factor — there isn't yet enough trajectory to trust either way.
func modulateByMemory(confidence float64, mem MemoryInput) float64 {
	if !mem.HasHistory || mem.Sparse {
		return confidence * 0.9
	}
	if mem.Conflicting {
		return confidence * 0.85
	}
	if mem.PersistentMatch {
		confidence *= 1.1
		if confidence > 100 {
			confidence = 100
		}
	}
	return confidence
}
