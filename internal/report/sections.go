package report

import (
	"fmt"

	"decision-analysis/internal/model"
)

// BuildSections assembles the machine-readable twin from the pipeline's
// collaborator outputs, in the seven-section order fixed by spec.md §4.8.
// fatigue and historyInsight may be zero-value/nil when no history exists
// for this context yet.
func BuildSections(
	primary model.DecisionOutcome,
	secondary *model.DecisionOutcome,
	stage model.StageAssessment,
	brand model.BrandContext,
	pageType model.PageTypeSummary,
	pageIntent model.PageIntent,
	fatigue model.DecisionFatigueAnalysis,
	historyInsight *model.DecisionHistoryInsight,
) model.ReportSections {
	sections := model.ReportSections{
		ExecutiveSummary: model.ExecutiveSummarySection{
			PrimaryBlocker: primary.Blocker,
			Confidence:     primary.Confidence,
			Category:       primary.Category,
		},
		ContextSnapshot: model.ContextSnapshotSection{
			PageType:           pageType.Type,
			PageTypeConfidence: pageType.Confidence,
			PageIntent:         pageIntent,
			Stage:              stage.Stage,
			StageConfidence:    stage.Confidence,
			BrandMaturity:      brand.BrandMaturity,
			BrandConfidence:    brand.Confidence,
		},
		FailureBreakdown: buildFailureBreakdown(primary, secondary),
		WhatToFixFirst: model.WhatToFixFirstSection{
			Intervention:   primary.WhatToChangeFirst,
			Rationale:      primary.Why,
			CostOfInaction: costOfInaction(primary),
		},
		Recommendations: buildRecommendations(primary, secondary),
		WhatThisWillImprove: model.WhatThisWillImproveSection{
			ExpectedLift: primary.ExpectedLift,
			Narrative:    improvementNarrative(primary),
		},
		NextDiagnosticStep: buildNextDiagnosticStep(fatigue, historyInsight),
	}
	return sections
}

func buildFailureBreakdown(primary model.DecisionOutcome, secondary *model.DecisionOutcome) model.FailureBreakdownSection {
	section := model.FailureBreakdownSection{Primary: primary, Secondary: secondary}
	if secondary != nil {
		section.Interaction = fmt.Sprintf(
			"%s compounds %s: addressing the primary blocker alone may not fully resolve the secondary friction.",
			primary.Blocker, secondary.Blocker,
		)
	}
	return section
}

func costOfInaction(primary model.DecisionOutcome) string {
	switch primary.Severity {
	case model.SeverityCritical, model.SeverityHighRisk:
		return "Visitors abandoning at this stage are unlikely to return without a structural change."
	case model.SeverityWarning:
		return "Some visitors push through despite the friction, but conversion is being left on the table."
	default:
		return "This friction is within the range typical for this stage and is lower priority."
	}
}

// buildRecommendations groups the primary (and secondary, if present) fix
// text into message-level, structure-level, and timing/flow buckets by
// blocker category, per spec.md §4.8 item 5.
func buildRecommendations(primary model.DecisionOutcome, secondary *model.DecisionOutcome) model.RecommendationsSection {
	var section model.RecommendationsSection
	add := func(outcome model.DecisionOutcome) {
		item := model.RecommendationItem{Text: outcome.WhatToChangeFirst, AddressesBlocker: outcome.Blocker}
		switch outcome.Category {
		case model.CategoryTrust, model.CategoryIdentity:
			section.MessageLevel = append(section.MessageLevel, item)
		case model.CategoryCognitive:
			section.StructureLevel = append(section.StructureLevel, item)
		case model.CategoryRisk:
			section.TimingFlow = append(section.TimingFlow, item)
		}
	}
	add(primary)
	if secondary != nil {
		add(*secondary)
	}
	return section
}

func improvementNarrative(primary model.DecisionOutcome) string {
	return fmt.Sprintf(
		"Resolving %s is expected to produce a %s improvement in decision follow-through; this is directional, not a guarantee.",
		primary.Blocker, primary.ExpectedLift,
	)
}

// buildNextDiagnosticStep disables the diagnostic suggestion and substitutes
// a redesign call when fatigue is critical, and attaches the history
// insight whenever one is available (spec.md §4.8 item 7).
func buildNextDiagnosticStep(fatigue model.DecisionFatigueAnalysis, historyInsight *model.DecisionHistoryInsight) model.NextDiagnosticStepSection {
	section := model.NextDiagnosticStepSection{History: historyInsight}
	if fatigue.Level == model.FatigueCritical {
		section.Enabled = false
		section.RedesignCall = fatigue.Recommendation
		return section
	}
	section.Enabled = true
	section.Suggestion = "Re-run this analysis after implementing the primary fix to confirm the blocker has shifted."
	return section
}
