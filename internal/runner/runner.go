// Package runner wires configuration into runnable deliberations.
package runner

import (
	"context"
	"net/http"
	"time"

	"council/internal/config"
	"council/internal/council"
	"council/internal/debate"
	"council/internal/gateway"
	"council/internal/prompts"
	"council/internal/ranking"
	"council/internal/reflection"
	"council/internal/search"
	"council/internal/spec"
	"council/internal/tools"
)

// Runner holds the long-lived collaborators of a council process.
type Runner struct {
	Config   spec.Config
	Gateway  gateway.Client
	Registry *tools.Registry
}

// New builds a runner from validated config and environment secrets.
func New(cfg spec.Config, env config.Env) (*Runner, error) {
	client, err := gateway.NewOpenRouter(env.OpenRouterKey, cfg.OpenRouter.BaseURL, http.DefaultClient)
	if err != nil {
		return nil, err
	}
	searcher := search.NewClient(env.TavilyKey, cfg.Search.BaseURL, nil)
	searcher.MaxResults = cfg.Search.MaxResults
	searcher.Depth = cfg.Search.Depth
	registry := tools.NewRegistry(tools.NewSearchWeb(searcher))
	return &Runner{Config: cfg, Gateway: client, Registry: registry}, nil
}

// Options selects the protocol variant for one run.
type Options struct {
	Streaming bool
	UseReAct  bool
	Cycles    int
}

// timeout returns the per-participant deadline.
func (r *Runner) timeout() time.Duration {
	if r.Config.Timeouts.ParticipantSeconds <= 0 {
		return gateway.DefaultTimeout
	}
	return time.Duration(r.Config.Timeouts.ParticipantSeconds) * time.Second
}

// executor builds the configured round-execution strategy.
func (r *Runner) executor(opts Options) debate.RoundExecutor {
	shared := debate.Options{
		Gateway:            r.Gateway,
		Executor:           r.Registry,
		Tools:              r.Registry.Definitions(),
		Participants:       r.Config.Participants,
		Timeout:            r.timeout(),
		UseReAct:           opts.UseReAct,
		MaxToolCalls:       r.Config.MaxToolCalls.Query,
		MaxStreamToolCalls: r.Config.MaxToolCalls.Stream,
	}
	if opts.Streaming {
		return debate.NewStreaming(shared)
	}
	return debate.NewBatch(shared)
}

// synthesizer builds the reflection chairman.
func (r *Runner) synthesizer() *reflection.Synthesizer {
	return &reflection.Synthesizer{
		Gateway:  r.Gateway,
		Chairman: r.Config.Chairman,
		Timeout:  r.timeout(),
	}
}

// Debate streams a full debate run followed by chairman synthesis. The
// returned result is populated once the stream closes; on quorum loss or
// a synthesizer failure the stream ends with the error event and no
// synthesis.
func (r *Runner) Debate(ctx context.Context, userQuery string, opts Options) (<-chan council.Event, *council.DebateResult) {
	out := make(chan council.Event)
	result := &council.DebateResult{}
	go func() {
		defer close(out)
		collector := council.Collector{}
		forward := func(event council.Event) bool {
			collector.Observe(event)
			select {
			case out <- event:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for event := range debate.RunDebate(ctx, userQuery, r.executor(opts), opts.Cycles) {
			if !forward(event) {
				return
			}
		}
		if collector.Failed() || ctx.Err() != nil {
			result.Rounds = collector.Rounds
			return
		}

		contextText := prompts.BuildChairmanContextDebate(userQuery, collector.Rounds)
		for event := range r.synthesizer().Synthesize(ctx, contextText) {
			if !forward(event) {
				return
			}
		}
		*result = collector.DebateResult()
	}()
	return out, result
}

// Ranking streams a full ranking run.
func (r *Runner) Ranking(ctx context.Context, userQuery string, opts Options) (<-chan council.Event, *council.RankingResult) {
	pipeline := &ranking.Pipeline{
		Executor:     r.executor(opts),
		Gateway:      r.Gateway,
		Synthesizer:  r.synthesizer(),
		Participants: r.Config.Participants,
		Timeout:      r.timeout(),
	}
	return pipeline.Run(ctx, userQuery)
}

// Title generates a conversation title for the first user message.
func (r *Runner) Title(ctx context.Context, userQuery string) string {
	return ranking.GenerateTitle(ctx, r.Gateway, r.Config.Chairman, userQuery)
}
