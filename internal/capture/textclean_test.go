package capture

import "testing"

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	in := "Hello   world\n\n\n\nSecond   paragraph"
	got := CleanText(in)
	want := "Hello world\n\nSecond paragraph"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCleanTextUnescapesEntities(t *testing.T) {
	got := CleanText("Q&amp;A &mdash; really?")
	if got != "Q&A — really?" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanTextStripsKnownMojibake(t *testing.T) {
	got := CleanText("Itâ€™s great")
	if got != "It's great" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanTextTruncatesToCeiling(t *testing.T) {
	huge := make([]byte, maxExtractedTextBytes+5000)
	for i := range huge {
		huge[i] = 'a'
	}
	got := CleanText(string(huge))
	if len(got) > maxExtractedTextBytes {
		t.Fatalf("expected truncation to %d bytes, got %d", maxExtractedTextBytes, len(got))
	}
}
