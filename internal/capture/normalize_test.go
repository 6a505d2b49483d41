package capture

import "testing"

func TestNormalizeURLAddsScheme(t *testing.T) {
	got, err := NormalizeURL("example.com/pricing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://example.com/pricing" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeURLStripsFragment(t *testing.T) {
	got, err := NormalizeURL("https://example.com/pricing#plans")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://example.com/pricing" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeURLRejectsEmpty(t *testing.T) {
	if _, err := NormalizeURL("   "); err == nil {
		t.Fatal("expected error for empty url")
	}
}
