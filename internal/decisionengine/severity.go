package decisionengine

import "decision-analysis/internal/model"

// severityMatrix is the fixed 7×5 (blocker, stage) table from spec.md §4.6.
// Representative entries are given in the spec; the remainder follows the
// same reasoning (earlier stages tolerate more friction, later stages
// punish it).
var severityMatrix = map[model.Blocker]map[model.DecisionStage]model.FrictionSeverity{
	model.BlockerTrustGap: {
		model.StageOrientation:  model.SeverityNatural,
		model.StageSenseMaking:  model.SeverityAcceptable,
		model.StageEvaluation:   model.SeverityWarning,
		model.StageCommitment:   model.SeverityCritical,
		model.StagePostDecision: model.SeverityWarning,
	},
	model.BlockerEffortTooHigh: {
		model.StageOrientation:  model.SeverityAcceptable,
		model.StageSenseMaking:  model.SeverityAcceptable,
		model.StageEvaluation:   model.SeverityWarning,
		model.StageCommitment:   model.SeverityHighRisk,
		model.StagePostDecision: model.SeverityWarning,
	},
	model.BlockerOutcomeUnclear: {
		model.StageOrientation:  model.SeverityAcceptable,
		model.StageSenseMaking:  model.SeverityWarning,
		model.StageEvaluation:   model.SeverityCritical,
		model.StageCommitment:   model.SeverityHighRisk,
		model.StagePostDecision: model.SeverityWarning,
	},
	model.BlockerRiskNotAddressed: {
		model.StageOrientation:  model.SeverityNatural,
		model.StageSenseMaking:  model.SeverityAcceptable,
		model.StageEvaluation:   model.SeverityWarning,
		model.StageCommitment:   model.SeverityCritical,
		model.StagePostDecision: model.SeverityAcceptable,
	},
	model.BlockerCommitmentAnxiety: {
		model.StageOrientation:  model.SeverityNatural,
		model.StageSenseMaking:  model.SeverityNatural,
		model.StageEvaluation:   model.SeverityAcceptable,
		model.StageCommitment:   model.SeverityHighRisk,
		model.StagePostDecision: model.SeverityWarning,
	},
	model.BlockerMotivationMismatch: {
		model.StageOrientation:  model.SeverityWarning,
		model.StageSenseMaking:  model.SeverityWarning,
		model.StageEvaluation:   model.SeverityCritical,
		model.StageCommitment:   model.SeverityCritical,
		model.StagePostDecision: model.SeverityWarning,
	},
	model.BlockerIdentityMisfit: {
		model.StageOrientation:  model.SeverityWarning,
		model.StageSenseMaking:  model.SeverityAcceptable,
		model.StageEvaluation:   model.SeverityWarning,
		model.StageCommitment:   model.SeverityCritical,
		model.StagePostDecision: model.SeverityAcceptable,
	},
}

// SeverityFor looks up the fixed matrix entry for a (blocker, stage) pair.
func SeverityFor(blocker model.Blocker, stage model.DecisionStage) model.FrictionSeverity {
	if row, ok := severityMatrix[blocker]; ok {
		if sev, ok := row[stage]; ok {
			return sev
		}
	}
	return model.SeverityWarning
}

// expected-lift lookup: a small fixed table keyed by (severity, category),
// directional and never a numeric guarantee (spec.md §4.6).
func expectedLiftFor(sev model.FrictionSeverity, cat model.Category) model.ExpectedLift {
	switch sev {
	case model.SeverityHighRisk, model.SeverityCritical:
		if cat == model.CategoryTrust || cat == model.CategoryRisk {
			return model.LiftHigh
		}
		return model.LiftMedium
	case model.SeverityWarning:
		return model.LiftMedium
	default:
		return model.LiftLow
	}
}
