package model

// ReportSections is the machine-readable twin of the prose report. Section
// order matches spec.md §4.8.
type ReportSections struct {
	ExecutiveSummary   ExecutiveSummarySection   `json:"executiveSummary"`
	ContextSnapshot    ContextSnapshotSection    `json:"contextSnapshot"`
	FailureBreakdown   FailureBreakdownSection   `json:"failureBreakdown"`
	WhatToFixFirst     WhatToFixFirstSection     `json:"whatToFixFirst"`
	Recommendations    RecommendationsSection    `json:"recommendations"`
	WhatThisWillImprove WhatThisWillImproveSection `json:"whatThisWillImprove"`
	NextDiagnosticStep NextDiagnosticStepSection `json:"nextDiagnosticStep"`
}

type ExecutiveSummarySection struct {
	PrimaryBlocker Blocker  `json:"primaryBlocker"`
	Confidence     float64  `json:"confidence"`
	Category       Category `json:"category"`
}

type ContextSnapshotSection struct {
	PageType           PageType      `json:"pageType"`
	PageTypeConfidence float64       `json:"pageTypeConfidence"`
	PageIntent         PageIntent    `json:"pageIntent"`
	Stage              DecisionStage `json:"stage"`
	StageConfidence    float64       `json:"stageConfidence"`
	BrandMaturity      BrandMaturity `json:"brandMaturity"`
	BrandConfidence    float64       `json:"brandConfidence"`
}

type FailureBreakdownSection struct {
	Primary      DecisionOutcome  `json:"primary"`
	Secondary    *DecisionOutcome `json:"secondary,omitempty"`
	Interaction  string           `json:"interaction,omitempty"`
}

type WhatToFixFirstSection struct {
	Intervention   string `json:"intervention"`
	Rationale      string `json:"rationale"`
	CostOfInaction string `json:"costOfInaction"`
}

type RecommendationItem struct {
	Text            string  `json:"text"`
	AddressesBlocker Blocker `json:"addressesBlocker"`
}

type RecommendationsSection struct {
	MessageLevel []RecommendationItem `json:"messageLevel"`
	StructureLevel []RecommendationItem `json:"structureLevel"`
	TimingFlow   []RecommendationItem `json:"timingFlow"`
}

type WhatThisWillImproveSection struct {
	ExpectedLift ExpectedLift `json:"expectedLift"`
	Narrative    string       `json:"narrative"`
}

type NextDiagnosticStepSection struct {
	Enabled      bool                    `json:"enabled"`
	Suggestion   string                  `json:"suggestion,omitempty"`
	RedesignCall string                  `json:"redesignCall,omitempty"`
	History      *DecisionHistoryInsight `json:"history,omitempty"`
}

// Debug carries orchestration metadata, never user-facing prose.
type Debug struct {
	PipelineVersion string   `json:"pipeline_version"`
	Steps           []string `json:"steps"`
	Errors          []string `json:"errors"`
}

// ScreenshotPair is the URL-mode screenshot twin, always present (even if
// every field inside is a placeholder) per spec.md §6.
type ScreenshotPair struct {
	Desktop ScreenshotEntry `json:"desktop"`
	Mobile  ScreenshotEntry `json:"mobile"`
}

type ScreenshotEntry struct {
	Status  string `json:"status"`
	URL     string `json:"url"`
	DataURI string `json:"data_uri"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Error   string `json:"error,omitempty"`
}

// Summary is the response's compact header block.
type Summary struct {
	URL             string `json:"url"`
	Goal            Goal   `json:"goal"`
	Locale          Locale `json:"locale"`
	IssuesCount     int    `json:"issues_count"`
	QuickWinsCount  int    `json:"quick_wins_count"`
}

// Report is the final, always-complete response.
type Report struct {
	Status                string                  `json:"status"`
	Mode                   Mode                    `json:"mode"`
	AnalysisStatus         string                  `json:"analysisStatus"`
	Summary                Summary                 `json:"summary"`
	HumanReport            string                  `json:"human_report"`
	ReportSections         ReportSections          `json:"report_sections"`
	PrimaryOutcome         DecisionOutcome         `json:"primary_outcome"`
	SecondaryOutcome       *DecisionOutcome        `json:"secondary_outcome"`
	StageAssessment        StageAssessment         `json:"stage_assessment"`
	BrandContext           BrandContext            `json:"brand_context"`
	PageType               PageTypeSummary         `json:"page_type"`
	DecisionHistoryInsight *DecisionHistoryInsight `json:"decision_history_insight"`
	Screenshots            *ScreenshotPair         `json:"screenshots"`
	Debug                  Debug                   `json:"debug"`
}

type PageTypeSummary struct {
	Type       PageType `json:"type"`
	Confidence float64  `json:"confidence"`
}
