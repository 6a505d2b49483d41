package llmclient

import "testing"

func TestIsEnabledReflectsAPIKey(t *testing.T) {
	if (New("", "")).IsEnabled() {
		t.Fatal("expected disabled client with empty key")
	}
	if !(New("sk-test", "")).IsEnabled() {
		t.Fatal("expected enabled client with a key")
	}
}

func TestStripFencesRemovesJSONFence(t *testing.T) {
	in := "```json\n{\"a\":1}\n```"
	got := StripFences(in)
	if got != `{"a":1}` {
		t.Fatalf("expected fence stripped, got %q", got)
	}
}

func TestStripFencesLeavesPlainTextAlone(t *testing.T) {
	in := "plain text"
	if got := StripFences(in); got != in {
		t.Fatalf("expected no-op on unfenced text, got %q", got)
	}
}
