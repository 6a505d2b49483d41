package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"decision-analysis/internal/llmclient"
	"decision-analysis/internal/model"
	"decision-analysis/internal/obs"
)

// proseOutput is the LLM's structured rewrite of the seven sections.
type proseOutput struct {
	ExecutiveSummary     string `json:"executive_summary"`
	ContextSnapshot      string `json:"context_snapshot"`
	FailureBreakdown     string `json:"failure_breakdown"`
	WhatToFixFirst       string `json:"what_to_fix_first"`
	Recommendations      string `json:"recommendations"`
	WhatThisWillImprove  string `json:"what_this_will_improve"`
	NextDiagnosticStep   string `json:"next_diagnostic_step"`
}

// Compose produces the prose "human_report" string for a completed
// ReportSections twin. It always returns a complete string: if the LLM is
// disabled, times out, errors, or produces prose that fails the tone
// pre-emit checks, a deterministic template fallback is used instead
// (spec.md §4.8). The second return value is non-nil when the fallback was
// taken because the findings could not be marshaled, the LLM call failed, or
// its reply could not be parsed, so the caller can surface the stable error
// kind in debug.errors (spec.md §7). It is nil when the LLM is disabled or
// its prose fails the tone checks.
func Compose(ctx context.Context, client *llmclient.Client, locale model.Locale, analysisMode model.AnalysisMode, sections model.ReportSections) (string, *obs.StageError) {
	fallback := fallbackProse(sections)

	if client == nil || !client.IsEnabled() {
		return renderProse(fallback), nil
	}

	payload, err := json.MarshalIndent(struct {
		Sections     model.ReportSections `json:"sections"`
		Locale       model.Locale         `json:"locale"`
		AnalysisMode model.AnalysisMode   `json:"analysis_mode"`
	}{sections, locale, analysisMode}, "", "  ")
	if err != nil {
		log.Warn().Err(err).Msg("report composer: failed to marshal findings, using fallback prose")
		return renderProse(fallback), obs.NewStageError(obs.ErrInternalInvariant, err.Error())
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, string(payload))
	raw, err := client.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		log.Warn().Err(err).Msg("report composer: llm call failed, using fallback prose")
		if ctx.Err() != nil {
			return renderProse(fallback), obs.NewStageError(obs.ErrLLMTimeout, err.Error())
		}
		return renderProse(fallback), obs.NewStageError(obs.ErrLLMTransport, err.Error())
	}

	var prose proseOutput
	if err := json.Unmarshal([]byte(llmclient.StripFences(raw)), &prose); err != nil {
		log.Warn().Err(err).Msg("report composer: failed to parse llm prose, using fallback")
		return renderProse(fallback), obs.NewStageError(obs.ErrLLMTransport, err.Error())
	}

	if violation := toneViolation(prose, analysisMode); violation != "" {
		log.Warn().Str("violation", violation).Msg("report composer: llm prose failed tone check, using fallback")
		return renderProse(fallback), nil
	}

	return renderProse(prose), nil
}

// fallbackProse builds deterministic template prose directly from the
// machine-readable twin, with no LLM involvement.
func fallbackProse(s model.ReportSections) proseOutput {
	rec := func(items []model.RecommendationItem) string {
		if len(items) == 0 {
			return "none"
		}
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = it.Text
		}
		return strings.Join(parts, " ")
	}

	next := "This analysis should be re-run after the primary fix is implemented."
	if !s.NextDiagnosticStep.Enabled {
		next = s.NextDiagnosticStep.RedesignCall
	}

	return proseOutput{
		ExecutiveSummary: fmt.Sprintf(
			"The primary blocker identified is %s, in the %s category, with %.0f%% confidence.",
			s.ExecutiveSummary.PrimaryBlocker, s.ExecutiveSummary.Category, s.ExecutiveSummary.Confidence,
		),
		ContextSnapshot: fmt.Sprintf(
			"This page reads as %s, serving a %s intent, with the visitor likely in the %s stage of deciding. Brand maturity reads as %s.",
			s.ContextSnapshot.PageType, s.ContextSnapshot.PageIntent, s.ContextSnapshot.Stage, s.ContextSnapshot.BrandMaturity,
		),
		FailureBreakdown: failureBreakdownProse(s.FailureBreakdown),
		WhatToFixFirst: fmt.Sprintf(
			"%s %s %s", s.WhatToFixFirst.Intervention, s.WhatToFixFirst.Rationale, s.WhatToFixFirst.CostOfInaction,
		),
		Recommendations: fmt.Sprintf(
			"Message-level: %s Structure-level: %s Timing and flow: %s",
			rec(s.Recommendations.MessageLevel), rec(s.Recommendations.StructureLevel), rec(s.Recommendations.TimingFlow),
		),
		WhatThisWillImprove: s.WhatThisWillImprove.Narrative,
		NextDiagnosticStep:  next,
	}
}

func failureBreakdownProse(f model.FailureBreakdownSection) string {
	text := fmt.Sprintf("%s: %s The affected area is %s.", f.Primary.Blocker, f.Primary.Why, f.Primary.Where)
	if f.Secondary != nil {
		text += " " + f.Interaction
	}
	return text
}

func renderProse(p proseOutput) string {
	var b strings.Builder
	sections := []struct{ title, body string }{
		{"Executive Decision Summary", p.ExecutiveSummary},
		{"Context Snapshot", p.ContextSnapshot},
		{"Decision Failure Breakdown", p.FailureBreakdown},
		{"What to Fix First", p.WhatToFixFirst},
		{"Actionable Recommendations", p.Recommendations},
		{"What This Will Improve", p.WhatThisWillImprove},
		{"Next Diagnostic Step", p.NextDiagnosticStep},
	}
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s.title)
		b.WriteString("\n")
		b.WriteString(s.body)
	}
	return b.String()
}
