package council

import "encoding/json"

// RoundType identifies the kind of a debate round.
type RoundType string

const (
	RoundInitial  RoundType = "initial"
	RoundCritique RoundType = "critique"
	RoundDefense  RoundType = "defense"
)

// Message is a single chat-completions message.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	Name       string     `json:"name,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

// UserMessage builds a single-entry user message list.
func UserMessage(content string) []Message {
	return []Message{{Role: "user", Content: content}}
}

// ToolCall is a structured request by the assistant to invoke a tool.
// Arguments is the raw JSON string as assembled from the wire.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// DecodeArguments parses the arguments JSON into a generic map.
func (c ToolCall) DecodeArguments() (map[string]any, error) {
	args := map[string]any{}
	if c.Arguments == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(c.Arguments), &args); err != nil {
		return nil, err
	}
	return args, nil
}

// ToolResult carries a tool handler's output back to the model.
type ToolResult struct {
	ToolCallID string `json:"tool_call_id"`
	Name       string `json:"name"`
	Content    string `json:"content"`
}

// ToolCallRecord summarizes an executed tool call for transcripts.
type ToolCallRecord struct {
	Tool          string `json:"tool"`
	Args          string `json:"args"`
	ResultPreview string `json:"result_preview"`
}

// Response is a participant's output for one round.
type Response struct {
	Model         string           `json:"model"`
	Content       string           `json:"response"`
	Reasoned      bool             `json:"reasoned,omitempty"`
	ToolCallsMade []ToolCallRecord `json:"tool_calls_made,omitempty"`
	RevisedAnswer string           `json:"revised_answer,omitempty"`
}

// RoundRecord is the completed output of one round. Responses preserve
// arrival order: completion order in batch mode, submission order in
// streaming mode.
type RoundRecord struct {
	RoundNumber int        `json:"round_number"`
	RoundType   RoundType  `json:"round_type"`
	Responses   []Response `json:"responses"`
}

// RankingRecord is one participant's peer evaluation in ranking mode.
// ParsedOrder holds anonymized labels ("A", "B", ...) best first.
type RankingRecord struct {
	Model       string   `json:"model"`
	Evaluation  string   `json:"ranking"`
	ParsedOrder []string `json:"parsed_ranking"`
}

// AggregateEntry is a participant's aggregated peer-ranking score.
type AggregateEntry struct {
	Model        string  `json:"model"`
	MeanPosition float64 `json:"average_rank"`
	VoteCount    int     `json:"rankings_count"`
}

// DebateResult is the terminal value of a debate run.
type DebateResult struct {
	Rounds    []RoundRecord `json:"rounds"`
	Synthesis Response      `json:"synthesis"`
}

// RankingResult is the terminal value of a ranking run.
type RankingResult struct {
	Stage1       []Response       `json:"stage1"`
	Stage2       []RankingRecord  `json:"stage2"`
	Synthesis    Response         `json:"synthesis"`
	LabelToModel map[string]string `json:"label_to_model"`
	Aggregate    []AggregateEntry `json:"aggregate"`
}
