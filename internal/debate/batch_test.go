package debate

import (
	"context"
	"strings"
	"testing"
	"time"

	"council/internal/council"
	"council/internal/testutil"
)

func batchOptions(fake *testutil.FakeGateway, participants ...string) Options {
	return Options{
		Gateway:            fake,
		Executor:           testutil.NoopExecutor{},
		Participants:       participants,
		Timeout:            100 * time.Millisecond,
		MaxToolCalls:       5,
		MaxStreamToolCalls: 5,
		Now:                func() time.Time { return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC) },
	}
}

func TestBatchRoundCompletionOrder(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Script("p1", testutil.Reply{Content: "slow answer", Delay: 40 * time.Millisecond})
	fake.Script("p2", testutil.Reply{Content: "fast answer"})
	executor := NewBatch(batchOptions(fake, "p1", "p2"))

	events := testutil.Drain(executor.ExecuteRound(context.Background(), council.RoundInitial, "q", RoundContext{}))

	starts := testutil.OfType(events, council.EventModelStart)
	if len(starts) != 2 {
		t.Fatalf("starts = %+v", starts)
	}
	completes := testutil.OfType(events, council.EventModelComplete)
	if len(completes) != 2 || completes[0].Model != "p2" || completes[1].Model != "p1" {
		t.Fatalf("completion order = %+v", completes)
	}

	terminal := testutil.Last(events)
	if terminal.Type != council.EventRoundComplete {
		t.Fatalf("terminal = %+v", terminal)
	}
	if len(terminal.Responses) != 2 || terminal.Responses[0].Model != "p2" {
		t.Fatalf("responses = %+v", terminal.Responses)
	}
}

func TestBatchRoundTimeoutIsolated(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Script("p1", testutil.Reply{Content: "ok"})
	fake.Script("p2", testutil.Reply{Content: "never arrives", Delay: time.Second})
	fake.Script("p3", testutil.Reply{Content: "also ok"})
	executor := NewBatch(batchOptions(fake, "p1", "p2", "p3"))

	events := testutil.Drain(executor.ExecuteRound(context.Background(), council.RoundInitial, "q", RoundContext{}))

	failures := testutil.OfType(events, council.EventModelError)
	if len(failures) != 1 || failures[0].Model != "p2" {
		t.Fatalf("failures = %+v", failures)
	}
	if failures[0].Message != "Timeout after 0.1s" {
		t.Fatalf("timeout message = %q", failures[0].Message)
	}

	// No model_complete for the timed-out participant, ever.
	for _, event := range testutil.OfType(events, council.EventModelComplete) {
		if event.Model == "p2" {
			t.Fatalf("model_complete emitted after model_error: %+v", events)
		}
	}

	terminal := testutil.Last(events)
	if terminal.Type != council.EventRoundComplete || len(terminal.Responses) != 2 {
		t.Fatalf("terminal = %+v", terminal)
	}
	for _, response := range terminal.Responses {
		if response.Model == "p2" {
			t.Fatalf("timed-out participant in responses: %+v", terminal.Responses)
		}
	}
}

func TestBatchDefenseParsesRevisedAnswer(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Script("p1", testutil.Reply{Content: "## Addressing Critiques\nfine\n\n## Revised Response\nBetter answer."})
	fake.Script("p2", testutil.Reply{Content: "no sections at all"})
	executor := NewBatch(batchOptions(fake, "p1", "p2"))

	rctx := RoundContext{
		InitialResponses: []council.Response{
			{Model: "p1", Content: "orig1"},
			{Model: "p2", Content: "orig2"},
		},
		CritiqueResponses: []council.Response{
			{Model: "p2", Content: "## Critique of p1\nweak"},
			{Model: "p1", Content: "## Critique of p2\nvague"},
		},
	}
	events := testutil.Drain(executor.ExecuteRound(context.Background(), council.RoundDefense, "q", rctx))
	terminal := testutil.Last(events)
	if terminal.Type != council.EventRoundComplete {
		t.Fatalf("terminal = %+v", terminal)
	}
	for _, response := range terminal.Responses {
		if response.RevisedAnswer == "" {
			t.Fatalf("empty revised answer for %s", response.Model)
		}
		if response.Model == "p1" && response.RevisedAnswer != "Better answer." {
			t.Fatalf("revised = %q", response.RevisedAnswer)
		}
		if response.Model == "p2" && response.RevisedAnswer != "no sections at all" {
			t.Fatalf("fallback revised = %q", response.RevisedAnswer)
		}
	}
}

func TestBatchCritiqueUsesPlainQuery(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Script("p1", testutil.Reply{Content: "## Critique of p2\nweak"})
	fake.Script("p2", testutil.Reply{Content: "## Critique of p1\nvague"})
	executor := NewBatch(batchOptions(fake, "p1", "p2"))

	rctx := RoundContext{InitialResponses: []council.Response{
		{Model: "p1", Content: "a"},
		{Model: "p2", Content: "b"},
	}}
	events := testutil.Drain(executor.ExecuteRound(context.Background(), council.RoundCritique, "q", rctx))
	terminal := testutil.Last(events)
	if len(terminal.Responses) != 2 {
		t.Fatalf("responses = %+v", terminal.Responses)
	}
	// Each participant sees the attributed initial responses in its prompt.
	prompt := fake.Requests["p1"][0][0].Content
	if !strings.Contains(prompt, "**p2:**\nb") || !strings.Contains(prompt, "do NOT critique yourself") {
		t.Fatalf("critique prompt = %q", prompt)
	}
}
