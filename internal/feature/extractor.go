// Package feature computes structured PageFeatures from rendered text (or
// vision-derived signals for image input), deterministically (spec.md
// §4.3, component C3).
package feature

import (
	"regexp"
	"strings"
	"unicode"

	"decision-analysis/internal/model"
)

// ctaVerbs × goal-congruent objects, compiled once (spec.md §4.3 step 2).
var ctaPatterns = []string{
	"buy now", "buy", "start trial", "start your trial", "start free trial",
	"get demo", "request a demo", "sign up", "signup", "get started",
	"add to cart", "book appointment", "book now", "book a call",
	"call now", "contact us", "subscribe", "join now", "try it free",
	"get a quote", "schedule a consultation",
}

var trustPatterns = map[model.TrustSignal][]string{
	model.TrustGuarantee:   {"money-back guarantee", "satisfaction guaranteed", "30-day guarantee", "no-risk"},
	model.TrustSecurity:    {"ssl secured", "secure checkout", "pci compliant", "gdpr compliant", "256-bit encryption"},
	model.TrustTestimonial: {"what our customers say", "testimonial", "\"", "review"},
	model.TrustLogo:        {"as seen on", "trusted by", "featured in"},
}

var pricingPatterns = regexp.MustCompile(`(?i)(\$\s?\d|€\s?\d|£\s?\d|\bprice(s|ing)?\b|\bplan(s)?\b|/mo\b|/month\b|/year\b)`)
var formPatterns = regexp.MustCompile(`(?i)\b(email address|credit card|card number|checkout|sign up|create account|password)\b`)
var educationalPatterns = regexp.MustCompile(`(?i)\b(what is|how it works|learn more|how does it work|guide to)\b`)
var localServicePatterns = regexp.MustCompile(`(?i)\b(book appointment|call now|directions|open hours|near you|our location)\b`)

// block is one coarsely classified span of text.
type block struct {
	text string
	kind string // headline, paragraph, cta-candidate, list, nav, footer
	pos  int    // index in the ordered block list; lower = earlier
}

// Extract implements the URL/text algorithm of spec.md §4.3. It is
// deterministic: identical text always yields a byte-identical
// PageFeatures (enforced by never consulting wall-clock time, randomness,
// or any external collaborator).
func Extract(text string, hasPricingHint bool) model.PageFeatures {
	blocks := tokenizeBlocks(text)

	var headlines []model.Headline
	var ctas []model.CTA
	for _, b := range blocks {
		switch b.kind {
		case "headline":
			headlines = append(headlines, model.Headline{Text: b.text})
		}
		if tag, hit := detectCTA(b.text); hit {
			ctas = append(ctas, model.CTA{Text: tag, Location: b.kind})
		}
	}

	trustSignals := detectTrustSignals(text)
	hasPricing := hasPricingHint || pricingPatterns.MatchString(text)
	hasForm := formPatterns.MatchString(text)
	hasEducational := educationalPatterns.MatchString(text)
	isLocalService := localServicePatterns.MatchString(text)

	trustScore := computeTrustScore(trustSignals)
	clarityScore := computeClarityScore(headlines, ctas)
	frictionScore := computeFrictionScore(clarityScore, hasForm, hasPricing)

	pageType, confidence := classifyPageType(hasPricing, hasForm, isLocalService, hasEducational, len(ctas) > 0)
	intent := classifyIntent(pageType, hasForm, hasPricing)

	return model.PageFeatures{
		TrustScore:         trustScore,
		ClarityScore:       clarityScore,
		FrictionScore:      frictionScore,
		PageType:           pageType,
		PageTypeConfidence: confidence,
		PageIntent:         intent,
		Headlines:          headlines,
		CTAs:               ctas,
		TrustSignals:       trustSignals,
		HasPricing:         hasPricing,
		HasCheckoutOrForm:  hasForm,
		HasEducationalCopy: hasEducational,
	}
}

func tokenizeBlocks(text string) []block {
	lines := strings.Split(text, "\n")
	var blocks []block
	pos := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		blocks = append(blocks, block{text: line, kind: classifyBlock(line, pos), pos: pos})
		pos++
	}
	return blocks
}

func classifyBlock(line string, pos int) string {
	if pos < 6 && isHeadlineShaped(line) {
		return "headline"
	}
	lower := strings.ToLower(line)
	if strings.HasPrefix(lower, "©") || strings.Contains(lower, "all rights reserved") {
		return "footer"
	}
	if len(line) < 40 && !strings.HasSuffix(line, ".") {
		return "cta-candidate"
	}
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•") {
		return "list"
	}
	return "paragraph"
}

// isHeadlineShaped matches spec.md §4.3 step 1: short, title-case or
// ends without punctuation, appears early.
func isHeadlineShaped(line string) bool {
	if len(line) == 0 || len(line) > 90 {
		return false
	}
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, ",") {
		return false
	}
	words := strings.Fields(line)
	if len(words) == 0 || len(words) > 14 {
		return false
	}
	titleCaseCount := 0
	for _, w := range words {
		r := []rune(w)
		if len(r) > 0 && unicode.IsUpper(r[0]) {
			titleCaseCount++
		}
	}
	return titleCaseCount >= (len(words)+1)/2
}

func detectCTA(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, p := range ctaPatterns {
		if strings.Contains(lower, p) {
			return p, true
		}
	}
	return "", false
}

func detectTrustSignals(text string) []model.TrustSignal {
	lower := strings.ToLower(text)
	var found []model.TrustSignal
	// Fixed order, not map order, so TrustSignals is identical across runs.
	for _, signal := range []model.TrustSignal{model.TrustGuarantee, model.TrustSecurity, model.TrustTestimonial, model.TrustLogo} {
		for _, p := range trustPatterns[signal] {
			if strings.Contains(lower, p) {
				found = append(found, signal)
				break
			}
		}
	}
	return found
}

// computeTrustScore: base 50 ± weighted presence of each trust signal,
// clamped to [0,100] (spec.md §4.3 step 7).
func computeTrustScore(signals []model.TrustSignal) int {
	score := 50
	weight := map[model.TrustSignal]int{
		model.TrustGuarantee:   15,
		model.TrustSecurity:    10,
		model.TrustTestimonial: 12,
		model.TrustLogo:        8,
	}
	for _, s := range signals {
		score += weight[s]
	}
	return clamp(score, 0, 100)
}

// computeClarityScore is a function of headline count, CTA-to-headline
// ratio, and mean headline length.
func computeClarityScore(headlines []model.Headline, ctas []model.CTA) int {
	if len(headlines) == 0 {
		return 30
	}
	score := 50
	if len(headlines) >= 1 && len(headlines) <= 3 {
		score += 15
	} else if len(headlines) > 6 {
		score -= 10
	}

	ratio := float64(len(ctas)) / float64(len(headlines))
	switch {
	case ratio >= 0.5 && ratio <= 2:
		score += 15
	case ratio == 0:
		score -= 15
	}

	totalLen := 0
	for _, h := range headlines {
		totalLen += len(h.Text)
	}
	mean := totalLen / len(headlines)
	switch {
	case mean > 70:
		score -= 10
	case mean < 10:
		score -= 10
	default:
		score += 10
	}
	return clamp(score, 0, 100)
}

func computeFrictionScore(clarityScore int, hasForm, hasPricing bool) int {
	score := 100 - clarityScore
	if hasForm && !hasPricing {
		score += 15
	}
	return clamp(score, 0, 100)
}

// classifyPageType implements the decision tree and fixed tie-break order
// of spec.md §4.3 step 8.
func classifyPageType(hasPricing, hasForm, isLocalService, hasEducational, hasCTA bool) (model.PageType, float64) {
	type candidate struct {
		pt         model.PageType
		satisfied  int
		discriminating int
	}
	var candidates []candidate
	if hasForm && hasPricing && hasCTA {
		candidates = append(candidates, candidate{model.PageTypeEcommerceProduct, 3, 3})
	}
	if hasPricing && !isLocalService {
		candidates = append(candidates, candidate{model.PageTypeSaaSPricing, boolCount(hasPricing, hasCTA), 2})
	}
	if isLocalService {
		candidates = append(candidates, candidate{model.PageTypeLocalService, boolCount(isLocalService, hasForm), 2})
	}
	if hasEducational && !hasForm {
		candidates = append(candidates, candidate{model.PageTypeContentInformational, boolCount(hasEducational, !hasForm), 2})
	}
	if hasCTA {
		candidates = append(candidates, candidate{model.PageTypeLandingGeneric, 1, 2})
	}
	if len(candidates) == 0 {
		return model.PageTypeOther, 0.3
	}

	for _, pt := range model.PageTypePriority {
		for _, c := range candidates {
			if c.pt == pt {
				confidence := float64(c.satisfied) / float64(c.discriminating)
				if confidence > 1 {
					confidence = 1
				}
				return c.pt, confidence
			}
		}
	}
	return model.PageTypeOther, 0.3
}

func boolCount(bs ...bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

func classifyIntent(pt model.PageType, hasForm, hasPricing bool) model.PageIntent {
	switch pt {
	case model.PageTypeEcommerceProduct:
		return model.IntentPurchase
	case model.PageTypeSaaSPricing:
		if hasForm {
			return model.IntentSignup
		}
		return model.IntentPricingComparison
	case model.PageTypeLocalService:
		return model.IntentLeadCapture
	case model.PageTypeContentInformational:
		return model.IntentInform
	default:
		if hasForm {
			return model.IntentLeadCapture
		}
		return model.IntentOther
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
