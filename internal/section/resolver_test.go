// File path: internal/section/resolver_test.go
package section

import "testing"

func TestResolveSliceMultiKeyJoin(t *testing.T) {
	fsd := "SECTION: 1\nAlpha\nSECTION: 2\nBeta"
	got := ResolveSlice(fsd, "X", Map{"X": {"1", "2"}})
	if got != "Alpha\n\nBeta" {
		t.Fatalf("unexpected slice: %q", got)
	}
}

func TestResolveSliceRespectsMapOrder(t *testing.T) {
	fsd := "SECTION: 1\nAlpha\nSECTION: 2\nBeta"
	got := ResolveSlice(fsd, "X", Map{"X": {"2", "1"}})
	if got != "Beta\n\nAlpha" {
		t.Fatalf("unexpected slice: %q", got)
	}
}

func TestResolveSliceFallbackNoMapping(t *testing.T) {
	fsd := "SECTION: 1\nScope text."
	got := ResolveSlice(fsd, "Unmapped", Map{})
	if got != fsd {
		t.Fatalf("expected full fsd fallback, got %q", got)
	}
}

func TestResolveSliceFallbackNoMatchingSections(t *testing.T) {
	fsd := "SECTION: 1\nScope text."
	got := ResolveSlice(fsd, "X", Map{"X": {"9"}})
	if got != fsd {
		t.Fatalf("expected full fsd fallback, got %q", got)
	}
}

func TestResolveSliceSkipsMissingIdentifiers(t *testing.T) {
	fsd := "SECTION: 1\nAlpha"
	got := ResolveSlice(fsd, "X", Map{"X": {"9", "1"}})
	if got != "Alpha" {
		t.Fatalf("expected missing id skipped, got %q", got)
	}
}

func TestResolveSliceTrimsMappedIdentifiers(t *testing.T) {
	fsd := "SECTION: 1\nAlpha"
	got := ResolveSlice(fsd, "X", Map{"X": {" 1 "}})
	if got != "Alpha" {
		t.Fatalf("expected padded id to resolve, got %q", got)
	}
}
