// Package model holds the data types shared across the analysis pipeline.
package model

// Mode names the shape of an AnalysisRequest payload.
type Mode string

const (
	ModeURL   Mode = "url"
	ModeText  Mode = "text"
	ModeImage Mode = "image"
)

// Goal names the business objective a marketing artifact serves.
type Goal string

const (
	GoalLeads     Goal = "leads"
	GoalSales     Goal = "sales"
	GoalBooking   Goal = "booking"
	GoalContact   Goal = "contact"
	GoalSubscribe Goal = "subscribe"
	GoalOther     Goal = "other"
)

// Locale governs the report's output language only.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleFA Locale = "fa"
	LocaleTR Locale = "tr"
)

// SupportedLocales is the default locale set (spec.md §6).
var SupportedLocales = map[Locale]bool{
	LocaleEN: true,
	LocaleFA: true,
	LocaleTR: true,
}

// AnalysisRequest is the input envelope for one pipeline run.
//
// Exactly one of URL, Text, Image is populated, consistent with Mode.
type AnalysisRequest struct {
	RequestID string `json:"requestId"`
	Mode      Mode   `json:"mode"`
	URL       string `json:"url,omitempty"`
	Text      string `json:"text,omitempty"`
	Image     []byte `json:"-"`
	Goal      Goal   `json:"goal"`
	Locale    Locale `json:"locale"`
	Refresh   bool   `json:"refresh"`
}

// Validate checks the mode/payload invariant from spec.md §3.
func (r *AnalysisRequest) Validate() error {
	switch r.Mode {
	case ModeURL:
		if r.URL == "" {
			return &ValidationError{Field: "url", Reason: "url is required for mode=url"}
		}
	case ModeText:
		if r.Text == "" {
			return &ValidationError{Field: "text", Reason: "text is required for mode=text"}
		}
	case ModeImage:
		if len(r.Image) == 0 {
			return &ValidationError{Field: "image", Reason: "image payload is empty"}
		}
	default:
		return &ValidationError{Field: "mode", Reason: "mode must be one of url, text, image"}
	}
	if r.Goal == "" {
		r.Goal = GoalOther
	}
	if r.Locale == "" {
		r.Locale = LocaleEN
	}
	if !SupportedLocales[r.Locale] {
		return &ValidationError{Field: "locale", Reason: "unsupported locale"}
	}
	return nil
}

// ValidationError reports a bad AnalysisRequest field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
