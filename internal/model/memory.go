package model

import "time"

// HistoricalOutcome is a single memory-layer record: a past outcome, the
// stage it was assessed under, and when.
type HistoricalOutcome struct {
	ContextID string          `json:"contextId"`
	Outcome   DecisionOutcome `json:"outcome"`
	Stage     StageAssessment `json:"stage"`
	Fix       string          `json:"fix"`
	Timestamp time.Time       `json:"timestamp"`
}

// TrajectoryClass names how a blocker's occurrence pattern reads across
// history.
type TrajectoryClass string

const (
	TrajectoryPersistent TrajectoryClass = "persistent"
	TrajectoryWeakening  TrajectoryClass = "weakening"
	TrajectoryResolved   TrajectoryClass = "resolved"
	TrajectoryEmerging   TrajectoryClass = "emerging"
	TrajectoryShifting   TrajectoryClass = "shifting"
)

// OutcomeTrajectory classifies one observed blocker's trend across history.
type OutcomeTrajectory struct {
	Blocker Blocker         `json:"blocker"`
	Class   TrajectoryClass `json:"class"`
	Ratio   float64         `json:"ratio"`
}

// FatigueLevel names how entrenched a cognitive-category blocker has become.
type FatigueLevel string

const (
	FatigueNone     FatigueLevel = "none"
	FatigueLow      FatigueLevel = "low"
	FatigueMedium   FatigueLevel = "medium"
	FatigueHigh     FatigueLevel = "high"
	FatigueCritical FatigueLevel = "critical"
)

// DecisionFatigueAnalysis is the memory layer's fatigue derivation.
type DecisionFatigueAnalysis struct {
	Level          FatigueLevel `json:"level"`
	Indicators     []string     `json:"indicators"`
	Recommendation string       `json:"recommendation"`
}

// TrustTrend names the direction of trust-category blocker occurrence.
type TrustTrend string

const (
	TrustTrendImproving TrustTrend = "improving"
	TrustTrendStable    TrustTrend = "stable"
	TrustTrendWorsening TrustTrend = "worsening"
)

// TrustConsistency names how stable the trust trend has been.
type TrustConsistency string

const (
	TrustConsistent   TrustConsistency = "consistent"
	TrustInconsistent TrustConsistency = "inconsistent"
	TrustImproving    TrustConsistency = "improving"
)

// TrustDynamics is the memory layer's trust-trajectory derivation.
type TrustDynamics struct {
	Trend          TrustTrend       `json:"trend"`
	Consistency    TrustConsistency `json:"consistency"`
	Recommendation string           `json:"recommendation"`
}

// DecisionHistoryInsight is the memory layer's composed output, attached to
// a report only once at least one prior record exists for the context.
type DecisionHistoryInsight struct {
	WhatFailed             []string                `json:"whatFailed"`
	WhatImproved           []string                `json:"whatImproved"`
	WhatRemainsUnresolved  []string                `json:"whatRemainsUnresolved"`
	Fatigue                DecisionFatigueAnalysis `json:"fatigue"`
	TrustDynamics          TrustDynamics           `json:"trustDynamics"`
	TrajectorySummary      string                  `json:"trajectorySummary"`
}
