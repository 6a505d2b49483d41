// Package orchestrator sequences the analysis pipeline's stages and
// produces the final Report, degrading rather than failing past
// validation (spec.md §4.9, component C9).
package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"decision-analysis/internal/artifact"
	"decision-analysis/internal/capture"
	"decision-analysis/internal/contextclass"
	"decision-analysis/internal/decisionengine"
	"decision-analysis/internal/evidence"
	"decision-analysis/internal/feature"
	"decision-analysis/internal/llmclient"
	"decision-analysis/internal/memory"
	"decision-analysis/internal/model"
	"decision-analysis/internal/obs"
	"decision-analysis/internal/report"
)

// Stage names the pipeline's state machine positions (spec.md §4.9).
type Stage string

const (
	StageReceived   Stage = "RECEIVED"
	StageValidated  Stage = "VALIDATED"
	StageRejected   Stage = "REJECTED"
	StageCapturing  Stage = "CAPTURING"
	StageFeaturing  Stage = "FEATURING"
	StageContexting Stage = "CONTEXTING"
	StageEvidencing Stage = "EVIDENCING"
	StageDeciding   Stage = "DECIDING"
	StageMemorizing Stage = "MEMORIZING"
	StageComposing  Stage = "COMPOSING"
	StageDone       Stage = "DONE"
	StageDegraded   Stage = "DEGRADED"
)

// Orchestrator wires every collaborator package into one sequential
// pipeline run per request.
type Orchestrator struct {
	capture       *capture.Service
	artifacts     *artifact.Store
	memoryStore   memory.Store
	decisions     *decisionengine.Engine
	llm           *llmclient.Client
	requestBudget time.Duration
}

// New wires the collaborators the orchestrator drives.
func New(captureSvc *capture.Service, artifacts *artifact.Store, memoryStore memory.Store, llm *llmclient.Client, requestBudget time.Duration) *Orchestrator {
	if requestBudget <= 0 {
		requestBudget = 120 * time.Second
	}
	return &Orchestrator{
		capture:       captureSvc,
		artifacts:     artifacts,
		memoryStore:   memoryStore,
		decisions:     decisionengine.New(),
		llm:           llm,
		requestBudget: requestBudget,
	}
}

// Run drives one AnalysisRequest through every stage and always returns a
// complete Report (validation failures are reported via the returned error;
// every other stage degrades rather than fails).
func (o *Orchestrator) Run(ctx context.Context, req model.AnalysisRequest) (model.Report, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(ctx, o.requestBudget)
	defer cancel()

	debug := model.Debug{PipelineVersion: "human_report_v2", Steps: []string{string(StageReceived)}}

	if err := req.Validate(); err != nil {
		debug.Steps = append(debug.Steps, string(StageRejected))
		return model.Report{}, err
	}
	debug.Steps = append(debug.Steps, string(StageValidated))

	var pageText string
	var screenshots *model.ScreenshotPair
	contextID := req.URL
	captureStatus := model.CaptureOK

	if req.Mode == model.ModeURL {
		debug.Steps = append(debug.Steps, string(StageCapturing))
		captureCtx, captureCancel := context.WithTimeout(ctx, capture.DefaultCaptureTimeout)
		cap := o.capture.Capture(captureCtx, req.URL, req.Refresh)
		captureCancel()
		pageText = cap.ExtractedText
		contextID = cap.URL
		captureStatus = cap.Status
		screenshots = buildScreenshotPair(cap)
		if cap.Status == model.CaptureError || cap.Status == model.CaptureDegraded {
			debug.Errors = append(debug.Errors, captureErrorKinds(cap)...)
		}
	} else if req.Mode == model.ModeText {
		pageText = req.Text
		contextID = textContextID(req.Text)
	} else {
		// Image mode: vision/OCR extraction is out of this pipeline's scope
		// here; the feature extractor degrades to an empty-text pass.
		contextID = "image:" + req.RequestID
	}

	debug.Steps = append(debug.Steps, string(StageFeaturing))
	features := feature.Extract(pageText, false)

	debug.Steps = append(debug.Steps, string(StageContexting))
	brand := contextclass.ClassifyBrandMaturity(pageText)
	stage := contextclass.ClassifyStage(features)

	debug.Steps = append(debug.Steps, string(StageEvidencing))
	landing := evidence.Landing(features)
	var merged model.DecisionSignals
	if features.HasPricing {
		if pricingSignals, ok := evidence.Pricing(pageText, evidence.EstimatePlanCount(pageText)); ok {
			merged = evidence.Merge(landing, nil, &pricingSignals)
		} else {
			merged = evidence.Merge(landing, nil, nil)
		}
	} else {
		merged = evidence.Merge(landing, nil, nil)
	}

	debug.Steps = append(debug.Steps, string(StageDeciding))
	history := o.memoryStore.History(contextID)
	if o.memoryStore.Unavailable() {
		debug.Errors = append(debug.Errors, string(obs.ErrMemoryStoreUnavailable))
	}
	// A first pass, with no blocker-specific memory input, identifies the
	// candidate primary blocker so the memory modulation (which depends on
	// that blocker's trajectory) can be computed before the final ranking
	// pass.
	candidate := o.decisions.Rank(merged, features, brand, stage, memory.BuildMemoryInput(history, ""))
	memInput := memory.BuildMemoryInput(history, candidate.Primary.Blocker)
	result := o.decisions.Rank(merged, features, brand, stage, memInput)

	suppressed := memory.SuppressRepeatedFix(history, result.Primary.WhatToChangeFirst, 5)
	if suppressed {
		memInput.SuppressFix = true
		result = o.decisions.Rank(merged, features, brand, stage, memInput)
	}

	debug.Steps = append(debug.Steps, string(StageMemorizing))
	fatigue := memory.Fatigue(history)
	var historyInsight *model.DecisionHistoryInsight
	if len(history) > 0 {
		historyInsight = buildHistoryInsight(history, fatigue)
	}
	o.memoryStore.Record(contextID, model.HistoricalOutcome{
		ContextID: contextID,
		Outcome:   result.Primary,
		Stage:     stage,
		Fix:       result.Primary.WhatToChangeFirst,
		Timestamp: recordTimestamp(),
	})
	if o.memoryStore.Unavailable() {
		debug.Errors = append(debug.Errors, string(obs.ErrMemoryStoreUnavailable))
	}

	debug.Steps = append(debug.Steps, string(StageComposing))
	sections := report.BuildSections(result.Primary, result.Secondary, stage, brand,
		model.PageTypeSummary{Type: features.PageType, Confidence: features.PageTypeConfidence},
		features.PageIntent, fatigue, historyInsight)
	humanReport, composeErr := report.Compose(ctx, o.llm, req.Locale, brand.AnalysisMode, sections)
	if composeErr != nil {
		debug.Errors = append(debug.Errors, string(composeErr.Kind))
	}

	debug.Steps = append(debug.Steps, string(StageDone))

	issuesCount := 1
	if result.Secondary != nil {
		issuesCount = 2
	}
	quickWins := len(sections.Recommendations.MessageLevel) + len(sections.Recommendations.StructureLevel) + len(sections.Recommendations.TimingFlow)

	// analysisStatus uses the capture-status vocabulary from spec.md §6/§8:
	// "error" when the page never rendered at all, "degraded" when any
	// stage recorded a recoverable failure, "ok" otherwise.
	analysisStatus := "ok"
	switch {
	case captureStatus == model.CaptureError:
		analysisStatus = "error"
	case len(debug.Errors) > 0:
		analysisStatus = "degraded"
	}

	return model.Report{
		Status:         "ok",
		Mode:           req.Mode,
		AnalysisStatus: analysisStatus,
		Summary: model.Summary{
			URL:            req.URL,
			Goal:           req.Goal,
			Locale:         req.Locale,
			IssuesCount:    issuesCount,
			QuickWinsCount: quickWins,
		},
		HumanReport:            humanReport,
		ReportSections:         sections,
		PrimaryOutcome:         result.Primary,
		SecondaryOutcome:       result.Secondary,
		StageAssessment:        stage,
		BrandContext:           brand,
		PageType:               model.PageTypeSummary{Type: features.PageType, Confidence: features.PageTypeConfidence},
		DecisionHistoryInsight: historyInsight,
		Screenshots:            screenshots,
		Debug:                  debug,
	}, nil
}

// captureErrorKinds maps each failed viewport's fine-grained error tag onto
// the stable pipeline-error taxonomy surfaced in debug.errors (spec.md §7).
func captureErrorKinds(cap model.Capture) []string {
	var kinds []string
	for _, vc := range cap.Viewports {
		switch vc.Error {
		case model.ErrTimeoutDOMContentLoaded, model.ErrScreenshotTimeout:
			kinds = append(kinds, string(obs.ErrCaptureTimeout))
		case model.ErrEngineCrash:
			kinds = append(kinds, string(obs.ErrCaptureEngineCrash))
		case model.ErrNavigationError:
			kinds = append(kinds, string(obs.ErrCaptureNavigation))
		case "artifact_write_failed":
			kinds = append(kinds, string(obs.ErrArtifactWriteFailed))
		}
	}
	return kinds
}

func buildScreenshotPair(cap model.Capture) *model.ScreenshotPair {
	pair := &model.ScreenshotPair{}
	for vp, entry := range pair2Entries(cap) {
		switch vp {
		case model.ViewportDesktop:
			pair.Desktop = entry
		case model.ViewportMobile:
			pair.Mobile = entry
		}
	}
	return pair
}

func pair2Entries(cap model.Capture) map[model.Viewport]model.ScreenshotEntry {
	out := make(map[model.Viewport]model.ScreenshotEntry, 2)
	for _, vp := range []model.Viewport{model.ViewportDesktop, model.ViewportMobile} {
		vc, ok := cap.Viewports[vp]
		entry := model.ScreenshotEntry{Status: "error"}
		if ok {
			entry.Status = vc.Status
			entry.Width = vc.Width
			entry.Height = vc.Height
			entry.Error = vc.Error
			if vc.Artifact != nil {
				entry.URL = vc.Artifact.URL
				entry.DataURI = vc.Artifact.DataURI
			}
		}
		out[vp] = entry
	}
	return out
}

func buildHistoryInsight(history []model.HistoricalOutcome, fatigue model.DecisionFatigueAnalysis) *model.DecisionHistoryInsight {
	trajectories := memory.Trajectory(history)
	trust := memory.TrustDynamics(history)

	var whatFailed, whatImproved, unresolved []string
	for _, t := range trajectories {
		switch t.Class {
		case model.TrajectoryPersistent:
			whatFailed = append(whatFailed, string(t.Blocker)+" has persisted across analyses.")
		case model.TrajectoryWeakening:
			whatImproved = append(whatImproved, string(t.Blocker)+" appears to be weakening.")
		case model.TrajectoryResolved:
			whatImproved = append(whatImproved, string(t.Blocker)+" has not recurred recently.")
		case model.TrajectoryEmerging, model.TrajectoryShifting:
			unresolved = append(unresolved, string(t.Blocker)+" remains unresolved.")
		}
	}

	return &model.DecisionHistoryInsight{
		WhatFailed:            whatFailed,
		WhatImproved:          whatImproved,
		WhatRemainsUnresolved: unresolved,
		Fatigue:               fatigue,
		TrustDynamics:         trust,
		TrajectorySummary:     summarizeTrajectories(trajectories),
	}
}

func summarizeTrajectories(trajectories []model.OutcomeTrajectory) string {
	if len(trajectories) == 0 {
		return "No prior analyses recorded for this context."
	}
	summary := ""
	for i, t := range trajectories {
		if i > 0 {
			summary += " "
		}
		summary += string(t.Blocker) + ": " + string(t.Class) + "."
	}
	return summary
}

func textContextID(text string) string {
	if len(text) > 64 {
		text = text[:64]
	}
	return "text:" + text
}

// recordTimestamp is a seam for the orchestrator's single Date.now()-like
// call; kept in one place so callers (and tests) can stub it.
var recordTimestamp = func() time.Time { return time.Now() }
