package parsers

import "testing"

func TestSplitReflection(t *testing.T) {
	text := `The models agree on the core claim.
One response is an outlier.

## Synthesis
The final answer is 42.`
	reflection, synthesis := SplitReflection(text)
	if reflection != "The models agree on the core claim.\nOne response is an outlier." {
		t.Fatalf("reflection = %q", reflection)
	}
	if synthesis != "The final answer is 42." {
		t.Fatalf("synthesis = %q", synthesis)
	}
}

func TestSplitReflectionMissingBoundary(t *testing.T) {
	reflection, synthesis := SplitReflection("The answers agree on the main points.")
	if reflection != "" {
		t.Fatalf("reflection = %q, want empty", reflection)
	}
	if synthesis != "The answers agree on the main points." {
		t.Fatalf("synthesis = %q", synthesis)
	}
}

func TestSplitReflectionCaseInsensitive(t *testing.T) {
	reflection, synthesis := SplitReflection("analysis\n## synthesis\nanswer")
	if reflection != "analysis" || synthesis != "answer" {
		t.Fatalf("got %q / %q", reflection, synthesis)
	}
}
