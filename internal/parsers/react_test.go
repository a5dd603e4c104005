package parsers

import "testing"

func TestParseReActSearch(t *testing.T) {
	text := `Thought: need latest rate.
Action: search_web("usd to eur today")`
	thought, action, arg := ParseReAct(text)
	if thought != "need latest rate." {
		t.Fatalf("thought = %q", thought)
	}
	if action != ActionSearchWeb {
		t.Fatalf("action = %q", action)
	}
	if arg != "usd to eur today" {
		t.Fatalf("arg = %q", arg)
	}
}

func TestParseReActSingleQuotes(t *testing.T) {
	_, action, arg := ParseReAct("Action: search_web('rainfall in march')")
	if action != ActionSearchWeb || arg != "rainfall in march" {
		t.Fatalf("got %q %q", action, arg)
	}
}

func TestParseReActRespond(t *testing.T) {
	thought, action, arg := ParseReAct("Thought: I know enough.\nAction: respond()")
	if thought != "I know enough." || action != ActionRespond || arg != "" {
		t.Fatalf("got %q %q %q", thought, action, arg)
	}
}

func TestParseReActSynthesizeAlias(t *testing.T) {
	_, action, _ := ParseReAct("Action: synthesize()")
	if action != ActionSynthesize || !TerminalAction(action) {
		t.Fatalf("action = %q", action)
	}
}

func TestParseReActUnknownAction(t *testing.T) {
	thought, action, _ := ParseReAct("Thought: hmm\nAction: fly_to_moon()")
	if thought != "hmm" {
		t.Fatalf("thought = %q", thought)
	}
	if action != "" {
		t.Fatalf("action = %q, want empty", action)
	}
}

func TestParseReActAllAbsent(t *testing.T) {
	thought, action, arg := ParseReAct("just some prose with no protocol")
	if thought != "" || action != "" || arg != "" {
		t.Fatalf("got %q %q %q, want all empty", thought, action, arg)
	}
}

func TestExtractAfterAction(t *testing.T) {
	text := "Thought: done.\nAction: respond()\nHere is the final answer."
	answer, found := ExtractAfterAction(text, ActionRespond)
	if !found || answer != "Here is the final answer." {
		t.Fatalf("got %q %v", answer, found)
	}
}

func TestExtractAfterActionMissing(t *testing.T) {
	if _, found := ExtractAfterAction("no marker here", ActionRespond); found {
		t.Fatalf("expected not found")
	}
}
