package orchestrator

import (
	"context"
	"testing"
	"time"

	"decision-analysis/internal/llmclient"
	"decision-analysis/internal/memory"
	"decision-analysis/internal/model"
)

const sampleLandingText = `Get Started Free
Sign up in seconds and try it free for 14 days.
No credit card required. Cancel anytime.
Enter your email to get started.`

func newTestOrchestrator() *Orchestrator {
	return New(nil, nil, memory.NewInProcessStore(10), llmclient.New("", ""), 5*time.Second)
}

func textRequest(text string) model.AnalysisRequest {
	return model.AnalysisRequest{
		Mode:   model.ModeText,
		Text:   text,
		Goal:   model.GoalLeads,
		Locale: model.LocaleEN,
	}
}

func TestRunRejectsInvalidRequest(t *testing.T) {
	o := newTestOrchestrator()
	_, err := o.Run(context.Background(), model.AnalysisRequest{Mode: model.ModeURL})
	if err == nil {
		t.Fatal("expected a validation error for a url-mode request with no url")
	}
}

func TestRunProducesCompleteReportForTextMode(t *testing.T) {
	o := newTestOrchestrator()
	report, err := o.Run(context.Background(), textRequest(sampleLandingText))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Status != "ok" {
		t.Fatalf("expected status ok, got %q", report.Status)
	}
	if report.HumanReport == "" {
		t.Fatal("expected a non-empty human report")
	}
	if report.PrimaryOutcome.Blocker == "" {
		t.Fatal("expected a primary blocker to be ranked")
	}
	if report.Debug.PipelineVersion != "human_report_v2" {
		t.Fatalf("unexpected pipeline version %q", report.Debug.PipelineVersion)
	}
	if report.DecisionHistoryInsight != nil {
		t.Fatal("expected no history insight on a context's first analysis")
	}
	if report.Screenshots != nil {
		t.Fatal("text mode should not produce screenshots")
	}
}

func TestRunAssignsStableContextIDPerText(t *testing.T) {
	o := newTestOrchestrator()
	ctx := context.Background()

	if _, err := o.Run(ctx, textRequest(sampleLandingText)); err != nil {
		t.Fatalf("first run: %v", err)
	}
	report, err := o.Run(ctx, textRequest(sampleLandingText))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if report.DecisionHistoryInsight == nil {
		t.Fatal("expected history insight once a prior record exists for this context")
	}
}

func TestRunDefaultsGoalAndLocaleViaValidate(t *testing.T) {
	o := newTestOrchestrator()
	req := model.AnalysisRequest{Mode: model.ModeText, Text: sampleLandingText}

	report, err := o.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Summary.Goal != model.GoalOther {
		t.Fatalf("expected default goal %q, got %q", model.GoalOther, report.Summary.Goal)
	}
	if report.Summary.Locale != model.LocaleEN {
		t.Fatalf("expected default locale %q, got %q", model.LocaleEN, report.Summary.Locale)
	}
}

func TestRunImageModeDegradesToEmptyText(t *testing.T) {
	o := newTestOrchestrator()
	req := model.AnalysisRequest{
		Mode:  model.ModeImage,
		Image: []byte{0xFF, 0xD8, 0xFF},
	}

	report, err := o.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.PrimaryOutcome.Blocker == "" {
		t.Fatal("expected a primary blocker even from an empty-text feature pass")
	}
}
