package memory

import (
	"strings"

	"decision-analysis/internal/decisionengine"
	"decision-analysis/internal/model"
)

// Trajectory classifies every blocker observed in history per spec.md §4.7:
// persistent ≥70% of analyses, weakening 40-70%, resolved last seen ≥3 ago,
// emerging first seen in last 2, shifting otherwise. Rules are applied in
// that priority order.
func Trajectory(history []model.HistoricalOutcome) []model.OutcomeTrajectory {
	if len(history) == 0 {
		return nil
	}

	type occurrence struct {
		count     int
		firstIdx  int
		lastIdx   int
	}
	seen := map[model.Blocker]*occurrence{}
	for i, h := range history {
		o, ok := seen[h.Outcome.Blocker]
		if !ok {
			o = &occurrence{firstIdx: i, lastIdx: i}
			seen[h.Outcome.Blocker] = o
		}
		o.count++
		o.lastIdx = i
	}

	lastRecordIdx := len(history) - 1
	var out []model.OutcomeTrajectory
	for _, b := range model.AllBlockers {
		o, ok := seen[b]
		if !ok {
			continue
		}
		ratio := float64(o.count) / float64(len(history))
		ago := lastRecordIdx - o.lastIdx
		sinceFirst := lastRecordIdx - o.firstIdx

		var class model.TrajectoryClass
		switch {
		case ratio >= 0.7:
			class = model.TrajectoryPersistent
		case ratio >= 0.4:
			class = model.TrajectoryWeakening
		case ago >= 3:
			class = model.TrajectoryResolved
		case sinceFirst < 2:
			class = model.TrajectoryEmerging
		default:
			class = model.TrajectoryShifting
		}

		out = append(out, model.OutcomeTrajectory{Blocker: b, Class: class, Ratio: ratio})
	}
	return out
}

// Fatigue derives the cognitive-category fatigue level: high at ≥4
// occurrences of the same cognitive-category blocker, critical at ≥6
// (spec.md §4.7).
func Fatigue(history []model.HistoricalOutcome) model.DecisionFatigueAnalysis {
	counts := map[model.Blocker]int{}
	for _, h := range history {
		if model.BlockerCategory[h.Outcome.Blocker] == model.CategoryCognitive {
			counts[h.Outcome.Blocker]++
		}
	}

	max := 0
	var worst model.Blocker
	for b, c := range counts {
		if c > max {
			max = c
			worst = b
		}
	}

	var level model.FatigueLevel
	var indicators []string
	switch {
	case max >= 6:
		level = model.FatigueCritical
		indicators = []string{string(worst) + " has appeared in 6 or more analyses"}
	case max >= 4:
		level = model.FatigueHigh
		indicators = []string{string(worst) + " has appeared in 4 or more analyses"}
	case max >= 2:
		level = model.FatigueMedium
		indicators = []string{string(worst) + " has recurred"}
	case max == 1:
		level = model.FatigueLow
	default:
		level = model.FatigueNone
	}

	recommendation := "Continue monitoring cognitive-load blockers across future analyses."
	if level == model.FatigueCritical {
		recommendation = "Surface-level fixes have been exhausted for this blocker; recommend a structural redesign of the affected flow."
	} else if level == model.FatigueHigh {
		recommendation = "Escalate to a deeper intervention rather than another incremental copy change."
	}

	return model.DecisionFatigueAnalysis{
		Level:          level,
		Indicators:     indicators,
		Recommendation: recommendation,
	}
}

// TrustDynamics derives the trust-category trend by comparing the first and
// second half of history (a time-windowed majority per spec.md §4.7).
func TrustDynamics(history []model.HistoricalOutcome) model.TrustDynamics {
	if len(history) == 0 {
		return model.TrustDynamics{Trend: model.TrustTrendStable, Consistency: model.TrustConsistent}
	}

	mid := len(history) / 2
	firstHalf, secondHalf := history[:mid], history[mid:]

	countTrust := func(records []model.HistoricalOutcome) int {
		n := 0
		for _, h := range records {
			if model.BlockerCategory[h.Outcome.Blocker] == model.CategoryTrust {
				n++
			}
		}
		return n
	}

	firstRate := rateOf(countTrust(firstHalf), len(firstHalf))
	secondRate := rateOf(countTrust(secondHalf), len(secondHalf))

	var trend model.TrustTrend
	switch {
	case secondRate < firstRate-0.1:
		trend = model.TrustTrendImproving
	case secondRate > firstRate+0.1:
		trend = model.TrustTrendWorsening
	default:
		trend = model.TrustTrendStable
	}

	var consistency model.TrustConsistency
	switch {
	case trend == model.TrustTrendImproving:
		consistency = model.TrustImproving
	case firstRate == 0 && secondRate == 0:
		consistency = model.TrustConsistent
	case trend == model.TrustTrendStable:
		consistency = model.TrustConsistent
	default:
		consistency = model.TrustInconsistent
	}

	recommendation := "Trust signals have held steady; no additional trust intervention is indicated."
	switch trend {
	case model.TrustTrendWorsening:
		recommendation = "Trust-category friction is increasing across analyses; prioritize a trust intervention before further changes."
	case model.TrustTrendImproving:
		recommendation = "Trust-category friction is easing; continue the current trust-building changes."
	}

	return model.TrustDynamics{Trend: trend, Consistency: consistency, Recommendation: recommendation}
}

func rateOf(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}

// BuildMemoryInput translates raw history into the Decision Engine's narrow
// confidence-modulation input (spec.md §4.6/§4.7): sparse history (<3
// records) discounts ×0.9, a persistent matching trajectory boosts ×1.1
// capped at 100, a conflicting trajectory discounts ×0.85.
func BuildMemoryInput(history []model.HistoricalOutcome, proposedBlocker model.Blocker) decisionengine.MemoryInput {
	if len(history) == 0 {
		return decisionengine.MemoryInput{HasHistory: false}
	}
	if len(history) < 3 {
		return decisionengine.MemoryInput{HasHistory: true, Sparse: true}
	}

	trajectories := Trajectory(history)
	for _, t := range trajectories {
		if t.Blocker != proposedBlocker {
			continue
		}
		switch t.Class {
		case model.TrajectoryPersistent:
			return decisionengine.MemoryInput{HasHistory: true, PersistentMatch: true}
		case model.TrajectoryShifting:
			return decisionengine.MemoryInput{HasHistory: true, Conflicting: true}
		}
	}
	return decisionengine.MemoryInput{HasHistory: true}
}

// SuppressRepeatedFix compares a proposed fix against the fixes suggested in
// the last n records (default 5) using a normalized (lowercased, stemmed)
// string comparison; a near-duplicate signals the engine to recommend a
// deeper intervention family instead (spec.md §4.7).
func SuppressRepeatedFix(history []model.HistoricalOutcome, proposedFix string, n int) bool {
	if n <= 0 {
		n = 5
	}
	start := len(history) - n
	if start < 0 {
		start = 0
	}

	normalizedProposed := normalizeFix(proposedFix)
	if normalizedProposed == "" {
		return false
	}
	for _, h := range history[start:] {
		if normalizeFix(h.Fix) == normalizedProposed {
			return true
		}
	}
	return false
}

// normalizeFix lowercases and strips common suffixes so near-duplicate fix
// text (plural/tense variants) compares equal, without pulling in a full
// stemming library for a five-record comparison window.
func normalizeFix(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(f, "ing"), "ed"), "s")
	}
	return strings.Join(fields, " ")
}
