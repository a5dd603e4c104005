// Package debate sequences deliberation rounds and executes them through
// interchangeable round-execution strategies.
package debate

import (
	"context"
	"fmt"
	"time"

	"council/internal/council"
	"council/internal/gateway"
	"council/internal/parsers"
	"council/internal/prompts"
)

// RoundContext carries the prior-round outputs a round builds on.
type RoundContext struct {
	InitialResponses  []council.Response
	CritiqueResponses []council.Response
}

// RoundExecutor is the round-execution strategy contract. The returned
// stream yields per-participant events and ends with one round_complete
// event carrying the responses in arrival order; the producer closes it.
type RoundExecutor interface {
	ExecuteRound(ctx context.Context, roundType council.RoundType, userQuery string, rctx RoundContext) <-chan council.Event
}

// RoundConfig captures the per-round-type differences so executors contain
// no dispatch on round type.
type RoundConfig struct {
	UsesTools        bool
	UsesReAct        bool
	HasRevisedAnswer bool
	BuildPrompt      func(model string) string
}

// BuildRoundConfig is the single point of round-type dispatch shared by
// both executors. reactEnabled applies only to rounds that support the
// agent loop; critiques never use it.
func BuildRoundConfig(roundType council.RoundType, userQuery string, rctx RoundContext, reactEnabled bool, now time.Time) (RoundConfig, error) {
	switch roundType {
	case council.RoundInitial:
		prompt := prompts.BuildInitial(userQuery, now)
		return RoundConfig{
			UsesTools: true,
			UsesReAct: reactEnabled,
			BuildPrompt: func(string) string {
				return prompt
			},
		}, nil

	case council.RoundCritique:
		responsesText := prompts.FormatResponsesForCritique(rctx.InitialResponses)
		return RoundConfig{
			BuildPrompt: func(model string) string {
				return prompts.BuildCritique(userQuery, responsesText, model, now)
			},
		}, nil

	case council.RoundDefense:
		ownResponse := map[string]string{}
		for _, response := range rctx.InitialResponses {
			ownResponse[response.Model] = response.Content
		}
		return RoundConfig{
			UsesTools:        true,
			UsesReAct:        reactEnabled,
			HasRevisedAnswer: true,
			BuildPrompt: func(model string) string {
				critiques := parsers.ExtractCritiquesFor(model, rctx.CritiqueResponses)
				return prompts.BuildDefense(userQuery, ownResponse[model], critiques, now)
			},
		}, nil

	default:
		return RoundConfig{}, fmt.Errorf("unknown round type: %s", roundType)
	}
}

// Options bundles the dependencies and limits shared by both executors.
type Options struct {
	Gateway            gateway.Client
	Executor           gateway.ToolExecutor
	Tools              []gateway.Tool
	Participants       []string
	Timeout            time.Duration
	UseReAct           bool
	MaxToolCalls       int
	MaxStreamToolCalls int
	ReActIterations    int
	Now                func() time.Time
}

// now returns the configured clock or the wall clock.
func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// finishResponse applies round-level post-processing to one response.
func finishResponse(config RoundConfig, response council.Response) council.Response {
	if config.HasRevisedAnswer {
		response.RevisedAnswer = parsers.ParseRevisedAnswer(response.Content)
	}
	return response
}

// roundPrompt builds the participant's prompt, ReAct-wrapped when the
// round runs the agent loop.
func roundPrompt(config RoundConfig, opts Options, model string) (string, bool) {
	prompt := config.BuildPrompt(model)
	useReAct := config.UsesReAct && opts.UseReAct
	if useReAct {
		iterations := opts.ReActIterations
		if iterations <= 0 {
			iterations = 3
		}
		prompt = prompts.WrapReAct(prompt, iterations)
	}
	return prompt, useReAct
}
