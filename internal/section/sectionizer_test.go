// File path: internal/section/sectionizer_test.go
package section

import (
	"reflect"
	"testing"
)

func TestParseWellFormedMarkers(t *testing.T) {
	input := "SECTION: 1\nAlpha body.\nSECTION: 2\nBeta line one.\nBeta line two.\nSECTION: 6.5\nGamma."
	got := Parse(input)
	want := map[string]string{
		"1":   "Alpha body.",
		"2":   "Beta line one.\nBeta line two.",
		"6.5": "Gamma.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected sections: %#v", got)
	}
}

func TestParseDiscardsPreamble(t *testing.T) {
	got := Parse("Cover page noise\nrevision table\nSECTION: 1\nReal content.")
	if len(got) != 1 {
		t.Fatalf("expected one section, got %d", len(got))
	}
	if got["1"] != "Real content." {
		t.Fatalf("unexpected body: %q", got["1"])
	}
}

func TestParseMidLineMarker(t *testing.T) {
	got := Parse("intro text SECTION: 3 overview\ndetails follow")
	body, ok := got["3"]
	if !ok {
		t.Fatalf("expected section 3, got %#v", got)
	}
	if body != "overview\ndetails follow" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestParseRepeatedIdentifierLastWins(t *testing.T) {
	got := Parse("SECTION: 1\nA\nSECTION: 1\nB")
	if !reflect.DeepEqual(got, map[string]string{"1": "B"}) {
		t.Fatalf("expected last occurrence to win, got %#v", got)
	}
}

func TestParseNoMarkers(t *testing.T) {
	got := Parse("just prose with no markers at all")
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %#v", got)
	}
}

func TestParseTrailingEmptyBody(t *testing.T) {
	got := Parse("SECTION: 1\ncontent\nSECTION: 2")
	body, ok := got["2"]
	if !ok {
		t.Fatalf("expected section 2 present, got %#v", got)
	}
	if body != "" {
		t.Fatalf("expected empty body, got %q", body)
	}
}

func TestParseMarkerVariants(t *testing.T) {
	got := Parse("section - 2.1\nlower dash\nSeCtIoN:3\nmixed case")
	if got["2.1"] != "lower dash" {
		t.Fatalf("dash variant not parsed: %#v", got)
	}
	if got["3"] != "mixed case" {
		t.Fatalf("mixed-case variant not parsed: %#v", got)
	}
}

func TestParseCarriageReturns(t *testing.T) {
	got := Parse("SECTION: 1\r\nwindows line\r\nSECTION: 2\r\nsecond")
	if got["1"] != "windows line" || got["2"] != "second" {
		t.Fatalf("carriage returns not normalized: %#v", got)
	}
}

func TestParseSingleSectionRoundTrip(t *testing.T) {
	body := "  line one\nline two  "
	got := Parse("SECTION: 4.2\n" + body)
	if !reflect.DeepEqual(got, map[string]string{"4.2": "line one\nline two"}) {
		t.Fatalf("round trip mismatch: %#v", got)
	}
}
