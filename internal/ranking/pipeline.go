// Package ranking runs the anonymous peer-ranking deliberation: collect
// answers, rank them blind, aggregate, synthesize.
package ranking

import (
	"context"
	"sort"
	"time"

	"council/internal/aggregate"
	"council/internal/council"
	"council/internal/debate"
	"council/internal/gateway"
	"council/internal/parsers"
	"council/internal/prompts"
	"council/internal/reflection"
)

// labelAlphabet supplies anonymized labels in submission order.
const labelAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Pipeline wires the four ranking stages together.
type Pipeline struct {
	Executor     debate.RoundExecutor
	Gateway      gateway.Client
	Synthesizer  *reflection.Synthesizer
	Participants []string
	Timeout      time.Duration
}

// Run streams the full ranking deliberation. The returned result is
// populated once the event stream closes. Stage-2 failures are isolated:
// aggregation proceeds over the rankings that parsed.
func (p *Pipeline) Run(ctx context.Context, userQuery string) (<-chan council.Event, *council.RankingResult) {
	out := make(chan council.Event)
	result := &council.RankingResult{}
	go func() {
		defer close(out)
		emit := func(event council.Event) bool {
			select {
			case out <- event:
				return true
			case <-ctx.Done():
				return false
			}
		}

		// Stage 1: initial answers through the round executor.
		stage1, ok := p.runStage1(ctx, userQuery, emit)
		if !ok {
			return
		}
		if len(stage1) < 2 {
			emit(council.Event{Type: council.EventError, Message: debate.QuorumLost})
			return
		}
		// Anonymize in submission order, whatever order stage 1 completed in.
		submitted := make(map[string]int, len(p.Participants))
		for i, model := range p.Participants {
			submitted[model] = i
		}
		stage1 = append([]council.Response(nil), stage1...)
		sort.SliceStable(stage1, func(i, j int) bool {
			return submitted[stage1[i].Model] < submitted[stage1[j].Model]
		})
		result.Stage1 = stage1

		labels := make([]string, len(stage1))
		labelToModel := make(map[string]string, len(stage1))
		for i, response := range stage1 {
			labels[i] = string(labelAlphabet[i])
			labelToModel[labels[i]] = response.Model
		}
		result.LabelToModel = labelToModel

		// Stage 2: blind peer rankings, all participants concurrent.
		stage2, ok := p.runStage2(ctx, userQuery, labels, stage1, emit)
		if !ok {
			return
		}
		result.Stage2 = stage2
		result.Aggregate = aggregate.Calculate(stage2, labelToModel)

		// Synthesis through the reflection chairman.
		contextText := prompts.BuildChairmanContextRanking(userQuery, stage1, stage2)
		for event := range p.Synthesizer.Synthesize(ctx, contextText) {
			if event.Type == council.EventSynthesis {
				result.Synthesis = council.Response{Model: event.Model, Content: event.Text}
			}
			if !emit(event) {
				return
			}
		}
	}()
	return out, result
}

// runStage1 executes the initial round and returns its responses.
func (p *Pipeline) runStage1(ctx context.Context, userQuery string, emit func(council.Event) bool) ([]council.Response, bool) {
	if !emit(council.Event{Type: council.EventRoundStart, RoundNumber: 1, RoundType: council.RoundInitial}) {
		return nil, false
	}
	var responses []council.Response
	for event := range p.Executor.ExecuteRound(ctx, council.RoundInitial, userQuery, debate.RoundContext{}) {
		if event.Type == council.EventRoundComplete {
			responses = event.Responses
			event.RoundNumber = 1
		}
		if !emit(event) {
			return nil, false
		}
	}
	if ctx.Err() != nil {
		return nil, false
	}
	return responses, true
}

// stage2Result is one peer evaluation outcome.
type stage2Result struct {
	model   string
	record  council.RankingRecord
	errText string
	failed  bool
}

// runStage2 collects peer rankings concurrently, in completion order.
func (p *Pipeline) runStage2(ctx context.Context, userQuery string, labels []string, stage1 []council.Response, emit func(council.Event) bool) ([]council.RankingRecord, bool) {
	responsesText := prompts.FormatAnonymizedResponses(labels, stage1)
	prompt := prompts.BuildPeerRank(userQuery, responsesText)

	for _, model := range p.Participants {
		if !emit(council.Event{Type: council.EventModelStart, Model: model}) {
			return nil, false
		}
	}

	results := make(chan stage2Result, len(p.Participants))
	for _, model := range p.Participants {
		go func(model string) {
			reply, err := p.Gateway.Query(ctx, model, council.UserMessage(prompt), nil, p.Timeout)
			if err != nil {
				results <- stage2Result{model: model, errText: err.Error(), failed: true}
				return
			}
			results <- stage2Result{model: model, record: council.RankingRecord{
				Model:       model,
				Evaluation:  reply.Content,
				ParsedOrder: parsers.ParseRanking(reply.Content),
			}}
		}(model)
	}

	records := make([]council.RankingRecord, 0, len(p.Participants))
	for range p.Participants {
		result := <-results
		if result.failed {
			if !emit(council.Event{Type: council.EventModelError, Model: result.model, Message: result.errText}) {
				return nil, false
			}
			continue
		}
		if !emit(council.Event{
			Type:     council.EventModelComplete,
			Model:    result.model,
			Response: council.Response{Model: result.model, Content: result.record.Evaluation},
		}) {
			return nil, false
		}
		records = append(records, result.record)
	}
	return records, true
}
