package react

import (
	"context"
	"strings"
	"testing"
	"time"

	"council/internal/council"
	"council/internal/testutil"
)

// searchExecutor returns a fixed observation for search_web.
type searchExecutor struct {
	calls []string
}

func (e *searchExecutor) Execute(ctx context.Context, name, argumentsJSON string) string {
	e.calls = append(e.calls, argumentsJSON)
	return "[1] Euro today\nhttps://example.com\n1 USD = 0.92 EUR"
}

func TestLoopSearchThenRespond(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Script("p1",
		testutil.Reply{Content: "Thought: need latest rate.\nAction: search_web(\"usd to eur today\")"},
		testutil.Reply{Content: "Thought: got it.\nAction: respond()\nThe rate is 0.92."},
	)
	executor := &searchExecutor{}
	loop := &Loop{Gateway: fake, Executor: executor, Timeout: time.Second}

	events := testutil.Drain(loop.Run(context.Background(), "p1", "wrapped prompt"))

	var kinds []council.EventType
	for _, event := range events {
		if event.Type == council.EventToken {
			continue
		}
		kinds = append(kinds, event.Type)
	}
	want := []council.EventType{
		council.EventThought,
		council.EventAction,
		council.EventToolCall,
		council.EventToolResult,
		council.EventObservation,
		council.EventThought,
		council.EventAction,
		council.EventModelComplete,
	}
	if len(kinds) != len(want) {
		t.Fatalf("event kinds = %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}

	if executor.calls[0] != `{"query":"usd to eur today"}` {
		t.Fatalf("executor args = %v", executor.calls)
	}

	terminal := testutil.Last(events)
	if terminal.Type != council.EventModelComplete {
		t.Fatalf("terminal = %+v", terminal)
	}
	response := terminal.Response
	if response.Content != "The rate is 0.92." || !response.Reasoned {
		t.Fatalf("response = %+v", response)
	}
	if len(response.ToolCallsMade) != 1 || response.ToolCallsMade[0].Tool != "search_web" {
		t.Fatalf("tool calls made = %+v", response.ToolCallsMade)
	}

	// The observation must have been threaded into the follow-up request.
	second := fake.Requests["p1"][1]
	lastMessage := second[len(second)-1]
	if lastMessage.Role != "user" || !strings.Contains(lastMessage.Content, "Observation: [1] Euro today") {
		t.Fatalf("observation message = %+v", lastMessage)
	}
}

func TestLoopImmediateRespond(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Script("p1", testutil.Reply{Content: "Thought: trivial.\nAction: respond()\nParis."})
	loop := &Loop{Gateway: fake, Executor: &searchExecutor{}, Timeout: time.Second}

	events := testutil.Drain(loop.Run(context.Background(), "p1", "prompt"))
	terminal := testutil.Last(events)
	if terminal.Type != council.EventModelComplete || terminal.Response.Content != "Paris." {
		t.Fatalf("terminal = %+v", terminal)
	}
	if fake.RequestCount("p1") != 1 {
		t.Fatalf("requests = %d", fake.RequestCount("p1"))
	}
}

func TestLoopForcedFinalPassAfterCap(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Script("p1",
		testutil.Reply{Content: "rambling without protocol"},
		testutil.Reply{Content: "still rambling"},
		testutil.Reply{Content: "Thought: hmm\nAction: dance()"},
		testutil.Reply{Content: "Final forced answer."},
	)
	loop := &Loop{Gateway: fake, Executor: &searchExecutor{}, MaxIterations: 3, Timeout: time.Second}

	events := testutil.Drain(loop.Run(context.Background(), "p1", "prompt"))
	terminal := testutil.Last(events)
	if terminal.Type != council.EventModelComplete {
		t.Fatalf("terminal = %+v", terminal)
	}
	if terminal.Response.Content != "Final forced answer." {
		t.Fatalf("content = %q", terminal.Response.Content)
	}
	// Three loop turns plus the forced respond pass.
	if fake.RequestCount("p1") != 4 {
		t.Fatalf("requests = %d", fake.RequestCount("p1"))
	}
	final := fake.Requests["p1"][3]
	if !strings.Contains(final[len(final)-1].Content, "final answer now") {
		t.Fatalf("final nudge missing: %+v", final[len(final)-1])
	}
}

func TestLoopGatewayErrorBecomesModelError(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Script("p1", testutil.Reply{Err: "connection refused"})
	loop := &Loop{Gateway: fake, Executor: &searchExecutor{}, Timeout: time.Second}

	events := testutil.Drain(loop.Run(context.Background(), "p1", "prompt"))
	terminal := testutil.Last(events)
	if terminal.Type != council.EventModelError || terminal.Message != "connection refused" {
		t.Fatalf("terminal = %+v", terminal)
	}
	for _, event := range events {
		if event.Type == council.EventModelComplete {
			t.Fatalf("model_complete after error: %+v", events)
		}
	}
}
