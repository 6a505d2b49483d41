package decisionengine

import "decision-analysis/internal/model"

// rationaleTemplate is a fixed, directional (why, where) pair per blocker.
// Non-enterprise wording; ClassifyBrandMaturity-aware reframing happens in
// rationaleFor below.
var rationaleTemplates = map[model.Blocker]struct{ why, where string }{
	model.BlockerOutcomeUnclear: {
		why:   "The page does not make clear, in one read, what happens immediately after the visitor acts.",
		where: "primary headline and call-to-action area",
	},
	model.BlockerTrustGap: {
		why:   "The page lacks trust signals a first-time visitor relies on before committing.",
		where: "above-the-fold area and near the primary call to action",
	},
	model.BlockerRiskNotAddressed: {
		why:   "The visible copy does not name or neutralize the downside the visitor is weighing.",
		where: "pricing and commitment sections",
	},
	model.BlockerEffortTooHigh: {
		why:   "The path to completing the intended action asks for more steps or information than the stage warrants.",
		where: "form and checkout flow",
	},
	model.BlockerCommitmentAnxiety: {
		why:   "Pressure language is present without matching reassurance, which raises hesitation near commitment.",
		where: "final call-to-action and pricing terms",
	},
	model.BlockerMotivationMismatch: {
		why:   "The stated benefit does not clearly match what this visitor segment is looking for.",
		where: "headline and opening paragraph",
	},
	model.BlockerIdentityMisfit: {
		why:   "The tone and positioning do not read as built for this visitor's self-image.",
		where: "overall voice and imagery",
	},
}

// rationaleFor returns (why, where), reframed for enterprise-aware mode
// per spec.md §4.6: forbidden to emit "trust signals are missing"–class
// verbiage; reframed as an informed-buyer friction instead.
func rationaleFor(blocker model.Blocker, brand model.BrandContext) (string, string) {
	t := rationaleTemplates[blocker]
	if blocker == model.BlockerTrustGap && brand.AnalysisMode == model.AnalysisModeEnterpriseContextAware {
		return "For an informed buyer already weighing this brand, the remaining friction is pricing clarity and proof of fit, not baseline credibility.", t.where
	}
	return t.why, t.where
}

// localServiceOverrides swaps in appointment/call-booking phrasing for the
// blockers whose default wording assumes a SaaS trial/signup flow (spec.md
// §4.3's local_service page type: "book appointment"/"call now" CTAs, no
// pricing). Blockers not listed here read the same regardless of page
// type — their phrasing was never SaaS-specific to begin with.
var localServiceOverrides = map[model.Blocker]string{
	model.BlockerOutcomeUnclear:    "Make the next step to book unmistakable in the first screen: a visible phone number or a \"Book Appointment\" button, not a generic signup link.",
	model.BlockerRiskNotAddressed:  "Name the downside directly and offer a no-obligation first contact, such as a free consultation call or same-day appointment confirmation, rather than software-trial language.",
	model.BlockerCommitmentAnxiety: "Pair any urgency language with an easy-exit offer: a call to ask questions first, or a plain rescheduling and cancellation policy, in place of refund or trial terms.",
}

// whatToChangeFirst reads the fixed template keyed by (blocker, stage, category)
// from spec.md §4.6. Stage-specific nuance is folded into the phrasing
// rather than a full 7×5×4 table, matching the teacher's practice of
// collapsing sparse dimensions into conditionals inside a template
// function (see generateRecommendation in the pricing analysis service).
func whatToChangeFirst(blocker model.Blocker, stage model.DecisionStage, category model.Category, pageType model.PageType) string {
	base := map[model.Blocker]string{
		model.BlockerOutcomeUnclear:     "State the single next step and its outcome in the first screen of content.",
		model.BlockerTrustGap:           "Add one concrete trust signal (a specific guarantee, security badge, or named testimonial) near the primary call to action.",
		model.BlockerRiskNotAddressed:   "Name the downside the visitor is worried about and address it directly, rather than leaving it implicit.",
		model.BlockerEffortTooHigh:      "Remove or defer every field and step not required to reach the next decision point.",
		model.BlockerCommitmentAnxiety:  "Pair any urgency language with an explicit reversibility statement (trial, refund, or cancel-anytime terms).",
		model.BlockerMotivationMismatch: "Rewrite the opening benefit statement to match the segment the traffic source implies.",
		model.BlockerIdentityMisfit:     "Adjust tone and imagery to match how this visitor segment already sees itself.",
	}[blocker]

	if pageType == model.PageTypeLocalService {
		if override, ok := localServiceOverrides[blocker]; ok {
			base = override
		}
	}

	if stage == model.StageCommitment {
		return base + " This matters most right now: the visitor is at the point of commitment."
	}
	return base
}

// deeperIntervention is returned instead of whatToChangeFirst when the
// Memory Layer's suppressRepeatedFix rule fires (spec.md §4.7): the engine
// pivots to a structural intervention family rather than repeating advice.
func deeperIntervention(blocker model.Blocker) string {
	return map[model.Blocker]string{
		model.BlockerOutcomeUnclear:     "Prior surface-level clarity fixes have not resolved this: restructure the page's information hierarchy, not just its wording.",
		model.BlockerTrustGap:           "Prior trust-signal additions have not resolved this: consider a third-party proof point (case study, audit, or certification) instead of more on-page badges.",
		model.BlockerRiskNotAddressed:   "Prior risk-language fixes have not resolved this: offer a structural risk reversal (trial, pilot, or money-back term) instead of more copy.",
		model.BlockerEffortTooHigh:      "Prior field-trimming has not resolved this: redesign the flow itself (fewer steps, not fewer fields per step).",
		model.BlockerCommitmentAnxiety:  "Prior reassurance copy has not resolved this: offer a lower-commitment first step (trial or pilot) before the full ask.",
		model.BlockerMotivationMismatch: "Prior messaging adjustments have not resolved this: reconsider whether this page is serving the right traffic segment at all.",
		model.BlockerIdentityMisfit:     "Prior tone adjustments have not resolved this: consider a dedicated page variant for this visitor segment.",
	}[blocker]
}
