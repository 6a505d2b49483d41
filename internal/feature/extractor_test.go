package feature

import "testing"

func TestExtractIsDeterministic(t *testing.T) {
	text := "Simple Pricing\nStart Free Trial\nOur plans start at $29/month\nSSL Secured"
	a := Extract(text, false)
	b := Extract(text, false)
	if a.TrustScore != b.TrustScore || a.ClarityScore != b.ClarityScore || a.FrictionScore != b.FrictionScore {
		t.Fatalf("scores differ across identical runs: %+v vs %+v", a, b)
	}
	if a.PageType != b.PageType || a.PageTypeConfidence != b.PageTypeConfidence {
		t.Fatalf("page type differs across identical runs")
	}
}

func TestExtractDetectsSaaSPricing(t *testing.T) {
	text := "Simple Pricing\nStart Free Trial\nOur plans start at $29/month"
	f := Extract(text, false)
	if !f.HasPricing {
		t.Fatal("expected pricing detection")
	}
	if f.PageType != "saas_pricing" {
		t.Fatalf("expected saas_pricing, got %s", f.PageType)
	}
}

func TestExtractDetectsLocalService(t *testing.T) {
	text := "Book Appointment Today\nCall Now for a Free Consultation\nVisit our location near you"
	f := Extract(text, false)
	if f.PageType != "local_service" {
		t.Fatalf("expected local_service, got %s", f.PageType)
	}
}

func TestExtractFallsBackToOther(t *testing.T) {
	f := Extract("just some plain unrelated sentence without any signals at all today.", false)
	if f.PageType != "other" {
		t.Fatalf("expected other, got %s", f.PageType)
	}
}

func TestTrustScoreClampedToRange(t *testing.T) {
	text := "money-back guarantee\nssl secured\ntestimonial\nas seen on\ntrusted by\nreview"
	f := Extract(text, false)
	if f.TrustScore < 0 || f.TrustScore > 100 {
		t.Fatalf("trust score out of range: %d", f.TrustScore)
	}
}
