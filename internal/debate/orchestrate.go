package debate

import (
	"context"

	"council/internal/council"
)

// QuorumLost is the fatal error message when too few participants remain.
const QuorumLost = "quorum lost"

// minQuorum is the smallest panel that can debate.
const minQuorum = 2

// RunDebate sequences one initial round followed by cycles critique/defense
// pairs, delegating execution to the given strategy. The stream ends with
// debate_complete carrying every RoundRecord, or a fatal error event when
// cycles is invalid or quorum is lost after an initial or defense round.
// A participant that fails in one round stays eligible for later rounds.
func RunDebate(ctx context.Context, userQuery string, executor RoundExecutor, cycles int) <-chan council.Event {
	out := make(chan council.Event)
	go func() {
		defer close(out)
		emit := eventEmitter(ctx, out)

		if cycles < 1 {
			emit(council.Event{Type: council.EventError, Message: "cycles must be at least 1"})
			return
		}

		sequence := make([]council.RoundType, 0, 1+2*cycles)
		sequence = append(sequence, council.RoundInitial)
		for i := 0; i < cycles; i++ {
			sequence = append(sequence, council.RoundCritique, council.RoundDefense)
		}

		var rounds []council.RoundRecord
		var initialResponses []council.Response
		var critiqueResponses []council.Response
		var currentResponses []council.Response

		for index, roundType := range sequence {
			roundNumber := index + 1
			if !emit(council.Event{Type: council.EventRoundStart, RoundNumber: roundNumber, RoundType: roundType}) {
				return
			}

			rctx := RoundContext{}
			switch roundType {
			case council.RoundCritique:
				rctx.InitialResponses = latest(currentResponses, initialResponses)
			case council.RoundDefense:
				rctx.InitialResponses = latest(currentResponses, initialResponses)
				rctx.CritiqueResponses = critiqueResponses
			}

			var responses []council.Response
			for event := range executor.ExecuteRound(ctx, roundType, userQuery, rctx) {
				if event.Type == council.EventRoundComplete {
					responses = event.Responses
					if !emit(council.Event{
						Type:        council.EventRoundComplete,
						RoundNumber: roundNumber,
						RoundType:   roundType,
						Responses:   responses,
					}) {
						return
					}
					continue
				}
				if !emit(event) {
					return
				}
			}
			if ctx.Err() != nil {
				return
			}

			rounds = append(rounds, council.RoundRecord{
				RoundNumber: roundNumber,
				RoundType:   roundType,
				Responses:   responses,
			})

			switch roundType {
			case council.RoundInitial:
				initialResponses = responses
				if len(responses) < minQuorum {
					emit(council.Event{Type: council.EventError, Message: QuorumLost})
					return
				}
			case council.RoundCritique:
				critiqueResponses = responses
			case council.RoundDefense:
				currentResponses = responses
				if len(responses) < minQuorum {
					emit(council.Event{Type: council.EventError, Message: QuorumLost})
					return
				}
			}
		}

		emit(council.Event{Type: council.EventDebateComplete, Rounds: rounds})
	}()
	return out
}

// latest prefers the newest defense outputs over the original initial
// responses when seeding a follow-up round.
func latest(current, initial []council.Response) []council.Response {
	if len(current) > 0 {
		return current
	}
	return initial
}
