package ranking

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"council/internal/council"
	"council/internal/debate"
	"council/internal/reflection"
	"council/internal/testutil"
)

func newPipeline(fake *testutil.FakeGateway, participants ...string) *Pipeline {
	opts := debate.Options{
		Gateway:      fake,
		Executor:     testutil.NoopExecutor{},
		Participants: participants,
		Timeout:      100 * time.Millisecond,
		MaxToolCalls: 5,
		Now:          func() time.Time { return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC) },
	}
	return &Pipeline{
		Executor:     debate.NewBatch(opts),
		Gateway:      fake,
		Synthesizer:  &reflection.Synthesizer{Gateway: fake, Chairman: "chair", Timeout: time.Second},
		Participants: participants,
		Timeout:      time.Second,
	}
}

func TestRankingPipelineEndToEnd(t *testing.T) {
	fake := testutil.NewFakeGateway()
	// Stage 1 answers arrive in submission order thanks to staggered delays.
	fake.Script("p1", testutil.Reply{Content: "A1"})
	fake.Script("p2", testutil.Reply{Content: "A2", Delay: 10 * time.Millisecond})
	fake.Script("p3", testutil.Reply{Content: "A3", Delay: 20 * time.Millisecond})
	// Stage 2 peer rankings.
	fake.Script("p1", testutil.Reply{Content: "FINAL RANKING:\n1. Response B\n2. Response A\n3. Response C"})
	fake.Script("p2", testutil.Reply{Content: "FINAL RANKING:\n1. Response B\n2. Response C\n3. Response A"})
	fake.Script("p3", testutil.Reply{Content: "FINAL RANKING:\n1. Response A\n2. Response B\n3. Response C"})
	// Chairman synthesis.
	fake.Script("chair", testutil.Reply{Content: "analysis of rankings\n\n## Synthesis\nThe agreed answer."})

	pipeline := newPipeline(fake, "p1", "p2", "p3")
	events, result := pipeline.Run(context.Background(), "q")
	all := testutil.Drain(events)

	if result.LabelToModel["A"] != "p1" || result.LabelToModel["B"] != "p2" || result.LabelToModel["C"] != "p3" {
		t.Fatalf("label map = %+v", result.LabelToModel)
	}
	if len(result.LabelToModel) != len(result.Stage1) {
		t.Fatalf("label map size %d != stage1 %d", len(result.LabelToModel), len(result.Stage1))
	}

	if len(result.Aggregate) != 3 {
		t.Fatalf("aggregate = %+v", result.Aggregate)
	}
	wantOrder := []string{"p2", "p1", "p3"}
	wantMeans := []float64{4.0 / 3.0, 2.0, 8.0 / 3.0}
	for i, entry := range result.Aggregate {
		if entry.Model != wantOrder[i] || entry.VoteCount != 3 {
			t.Fatalf("aggregate[%d] = %+v", i, entry)
		}
		if math.Abs(entry.MeanPosition-wantMeans[i]) > 1e-9 {
			t.Fatalf("aggregate[%d] mean = %v", i, entry.MeanPosition)
		}
	}

	if result.Synthesis.Model != "chair" || result.Synthesis.Content != "The agreed answer." {
		t.Fatalf("synthesis = %+v", result.Synthesis)
	}

	terminal := testutil.Last(all)
	if terminal.Type != council.EventSynthesis {
		t.Fatalf("terminal = %+v", terminal)
	}
	reflections := testutil.OfType(all, council.EventReflection)
	if len(reflections) != 1 || reflections[0].Text != "analysis of rankings" {
		t.Fatalf("reflection = %+v", reflections)
	}
}

func TestRankingPipelineStage2FailureIsolated(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Script("p1", testutil.Reply{Content: "A1"})
	fake.Script("p2", testutil.Reply{Content: "A2", Delay: 5 * time.Millisecond})
	fake.Script("p1", testutil.Reply{Content: "FINAL RANKING:\n1. Response A\n2. Response B"})
	fake.Script("p2", testutil.Reply{Err: "connection reset"})
	fake.Script("chair", testutil.Reply{Content: "## Synthesis\nstill answered"})

	pipeline := newPipeline(fake, "p1", "p2")
	events, result := pipeline.Run(context.Background(), "q")
	all := testutil.Drain(events)

	if len(result.Stage2) != 1 || result.Stage2[0].Model != "p1" {
		t.Fatalf("stage2 = %+v", result.Stage2)
	}
	if len(result.Aggregate) != 2 {
		t.Fatalf("aggregate = %+v", result.Aggregate)
	}
	if testutil.Last(all).Type != council.EventSynthesis {
		t.Fatalf("terminal = %+v", testutil.Last(all))
	}
}

func TestRankingPipelineQuorumLost(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Script("p1", testutil.Reply{Content: "A1"})
	fake.Script("p2", testutil.Reply{Err: "boom"})

	pipeline := newPipeline(fake, "p1", "p2")
	events, result := pipeline.Run(context.Background(), "q")
	all := testutil.Drain(events)

	terminal := testutil.Last(all)
	if terminal.Type != council.EventError || terminal.Message != debate.QuorumLost {
		t.Fatalf("terminal = %+v", terminal)
	}
	if result.Synthesis.Content != "" {
		t.Fatalf("synthesis after quorum loss: %+v", result.Synthesis)
	}
}

func TestRankingPipelineFallbackParsing(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Script("p1", testutil.Reply{Content: "A1"})
	fake.Script("p2", testutil.Reply{Content: "A2", Delay: 5 * time.Millisecond})
	fake.Script("p1", testutil.Reply{Content: "Response B beats Response A easily."})
	fake.Script("p2", testutil.Reply{Content: "FINAL RANKING:\n1. Response A\n2. Response B"})
	fake.Script("chair", testutil.Reply{Content: "## Synthesis\nok"})

	pipeline := newPipeline(fake, "p1", "p2")
	events, result := pipeline.Run(context.Background(), "q")
	testutil.Drain(events)

	var p1Record *council.RankingRecord
	for i := range result.Stage2 {
		if result.Stage2[i].Model == "p1" {
			p1Record = &result.Stage2[i]
		}
	}
	if p1Record == nil {
		t.Fatalf("stage2 = %+v", result.Stage2)
	}
	if len(p1Record.ParsedOrder) != 2 || p1Record.ParsedOrder[0] != "B" || p1Record.ParsedOrder[1] != "A" {
		t.Fatalf("fallback parsed order = %v", p1Record.ParsedOrder)
	}
}

func TestGenerateTitle(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Script("chair", testutil.Reply{Content: "\"Currency Exchange Question\"\n"})
	title := GenerateTitle(context.Background(), fake, "chair", "what is usd to eur?")
	if title != "Currency Exchange Question" {
		t.Fatalf("title = %q", title)
	}
}

func TestGenerateTitleFallback(t *testing.T) {
	fake := testutil.NewFakeGateway()
	fake.Script("chair", testutil.Reply{Err: "down"})
	if title := GenerateTitle(context.Background(), fake, "chair", "q"); title != "New Conversation" {
		t.Fatalf("title = %q", title)
	}
}

func TestGenerateTitleTruncates(t *testing.T) {
	fake := testutil.NewFakeGateway()
	long := strings.Repeat("word ", 20)
	fake.Script("chair", testutil.Reply{Content: long})
	title := GenerateTitle(context.Background(), fake, "chair", "q")
	if len([]rune(title)) != 50 || !strings.HasSuffix(title, "...") {
		t.Fatalf("title = %q (%d runes)", title, len([]rune(title)))
	}
}
