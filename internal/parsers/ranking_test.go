package parsers

import (
	"reflect"
	"testing"
)

func TestParseRankingNumberedList(t *testing.T) {
	text := `Response A is thorough but slow to the point.
Response B is sharp.
Response C misses the question.

FINAL RANKING:
1. Response B
2. Response A
3. Response C`
	got := ParseRanking(text)
	want := []string{"B", "A", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseRanking = %v, want %v", got, want)
	}
}

func TestParseRankingHeaderCaseInsensitive(t *testing.T) {
	text := "analysis...\n\nfinal ranking:\n1. Response C\n2. Response A"
	got := ParseRanking(text)
	want := []string{"C", "A"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseRanking = %v, want %v", got, want)
	}
}

func TestParseRankingOutOfOrderNumbers(t *testing.T) {
	text := "FINAL RANKING:\n2. Response A\n1. Response B\n3. Response C"
	got := ParseRanking(text)
	want := []string{"B", "A", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseRanking = %v, want %v", got, want)
	}
}

func TestParseRankingSectionWithoutNumbers(t *testing.T) {
	text := "FINAL RANKING:\nResponse B, then Response C, then Response A"
	got := ParseRanking(text)
	want := []string{"B", "C", "A"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseRanking = %v, want %v", got, want)
	}
}

func TestParseRankingFallbackScan(t *testing.T) {
	// No FINAL RANKING header at all; labels are scanned in first-occurrence
	// order across the whole text.
	text := "Response C beats Response A which beats Response B"
	got := ParseRanking(text)
	want := []string{"C", "A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseRanking = %v, want %v", got, want)
	}
}

func TestParseRankingFallbackDeduplicates(t *testing.T) {
	text := "Response A is better than Response B. Overall Response A wins."
	got := ParseRanking(text)
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseRanking = %v, want %v", got, want)
	}
}

func TestParseRankingEmpty(t *testing.T) {
	if got := ParseRanking("no labels here"); len(got) != 0 {
		t.Fatalf("ParseRanking = %v, want empty", got)
	}
}

func TestParseRankingHeaderMustBeOwnLine(t *testing.T) {
	// An inline mention does not open a ranking section; the scan fallback
	// still finds the labels.
	text := "I will give my FINAL RANKING: later. Response B then Response A."
	got := ParseRanking(text)
	want := []string{"B", "A"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseRanking = %v, want %v", got, want)
	}
}
