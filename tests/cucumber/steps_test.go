package cucumber

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"council/internal/council"
	"council/internal/debate"
)

// panelExecutor completes every round with one response per participant.
type panelExecutor struct {
	participants []string
}

func (p *panelExecutor) ExecuteRound(ctx context.Context, roundType council.RoundType, userQuery string, rctx debate.RoundContext) <-chan council.Event {
	out := make(chan council.Event)
	go func() {
		defer close(out)
		responses := make([]council.Response, 0, len(p.participants))
		for _, model := range p.participants {
			out <- council.Event{Type: council.EventModelStart, Model: model}
			response := council.Response{Model: model, Content: "answer from " + model}
			if roundType == council.RoundDefense {
				response.RevisedAnswer = response.Content
			}
			out <- council.Event{Type: council.EventModelComplete, Model: model, Response: response}
			responses = append(responses, response)
		}
		out <- council.Event{Type: council.EventRoundComplete, RoundType: roundType, Responses: responses}
	}()
	return out
}

// featureState carries scenario state between steps.
type featureState struct {
	participants []string
	events       []council.Event
	rounds       []council.Event
}

func (s *featureState) aPanelOfParticipants(count int) error {
	s.participants = nil
	for i := 0; i < count; i++ {
		s.participants = append(s.participants, fmt.Sprintf("model-%d", i+1))
	}
	return nil
}

func (s *featureState) iRunADebateWithCycles(cycles int) error {
	executor := &panelExecutor{participants: s.participants}
	s.events = nil
	s.rounds = nil
	for event := range debate.RunDebate(context.Background(), "question", executor, cycles) {
		s.events = append(s.events, event)
		if event.Type == council.EventRoundStart {
			s.rounds = append(s.rounds, event)
		}
	}
	return nil
}

func (s *featureState) roundsAreExecuted(count int) error {
	if len(s.rounds) != count {
		return fmt.Errorf("executed %d rounds, want %d", len(s.rounds), count)
	}
	return nil
}

func (s *featureState) roundIs(number int, roundType string) error {
	if number < 1 || number > len(s.rounds) {
		return fmt.Errorf("no round %d", number)
	}
	if got := string(s.rounds[number-1].RoundType); got != roundType {
		return fmt.Errorf("round %d is %q, want %q", number, got, roundType)
	}
	return nil
}

func (s *featureState) theLastRoundIs(roundType string) error {
	if len(s.rounds) == 0 {
		return fmt.Errorf("no rounds executed")
	}
	return s.roundIs(len(s.rounds), roundType)
}

func (s *featureState) theRunEndsWith(eventType string) error {
	if len(s.events) == 0 {
		return fmt.Errorf("no events observed")
	}
	last := s.events[len(s.events)-1]
	if string(last.Type) != eventType {
		return fmt.Errorf("run ended with %q, want %q", last.Type, eventType)
	}
	return nil
}

// InitializeScenario registers the step definitions.
func InitializeScenario(sc *godog.ScenarioContext) {
	state := &featureState{}
	sc.Step(`^a panel of (\d+) participants?$`, state.aPanelOfParticipants)
	sc.Step(`^I run a debate with (\d+) cycles?$`, state.iRunADebateWithCycles)
	sc.Step(`^(\d+) rounds are executed$`, state.roundsAreExecuted)
	sc.Step(`^round (\d+) is "([^"]+)"$`, state.roundIs)
	sc.Step(`^the last round is "([^"]+)"$`, state.theLastRoundIs)
	sc.Step(`^the run ends with "([^"]+)"$`, state.theRunEndsWith)
}
