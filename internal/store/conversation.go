// Package store persists conversations as JSON documents on disk.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"council/internal/council"
)

// Turn is a single exchange in a conversation: a user question or a
// council deliverable.
type Turn struct {
	Role    string          `json:"role"`
	Content string          `json:"content,omitempty"`
	Council *CouncilPayload `json:"council,omitempty"`
}

// CouncilPayload is the persisted shape of one deliberation outcome.
type CouncilPayload struct {
	Mode      string                  `json:"mode"`
	Rounds    []council.RoundRecord   `json:"rounds,omitempty"`
	Stage1    []council.Response      `json:"stage1,omitempty"`
	Stage2    []council.RankingRecord `json:"stage2,omitempty"`
	Synthesis council.Response        `json:"synthesis"`
	Metadata  *RankingMetadata        `json:"metadata,omitempty"`
}

// RankingMetadata carries the anonymization map and aggregate scores of a
// ranking run.
type RankingMetadata struct {
	LabelToModel map[string]string        `json:"label_to_model"`
	Aggregate    []council.AggregateEntry `json:"aggregate"`
}

// DebatePayload wraps a debate result for persistence.
func DebatePayload(result council.DebateResult) *CouncilPayload {
	return &CouncilPayload{
		Mode:      "debate",
		Rounds:    result.Rounds,
		Synthesis: result.Synthesis,
	}
}

// RankingPayload wraps a ranking result for persistence.
func RankingPayload(result council.RankingResult) *CouncilPayload {
	return &CouncilPayload{
		Mode:      "ranking",
		Stage1:    result.Stage1,
		Stage2:    result.Stage2,
		Synthesis: result.Synthesis,
		Metadata: &RankingMetadata{
			LabelToModel: result.LabelToModel,
			Aggregate:    result.Aggregate,
		},
	}
}

// Conversation is a stored exchange history.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Turns     []Turn    `json:"messages"`
}

// Summary is a listing entry.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	TurnCount int       `json:"turn_count"`
}

// Store reads and writes conversations under a data directory.
type Store struct {
	Dir string
}

// New constructs a store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// NewConversation creates an unsaved conversation with a fresh id.
func (s *Store) NewConversation(title string) *Conversation {
	return &Conversation{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
}

// Save writes a conversation document, creating the directory as needed.
func (s *Store) Save(conversation *Conversation) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	payload, err := json.MarshalIndent(conversation, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal conversation: %w", err)
	}
	return os.WriteFile(s.path(conversation.ID), payload, 0o644)
}

// Load reads one conversation by id.
func (s *Store) Load(id string) (*Conversation, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, fmt.Errorf("read conversation: %w", err)
	}
	var conversation Conversation
	if err := json.Unmarshal(data, &conversation); err != nil {
		return nil, fmt.Errorf("parse conversation: %w", err)
	}
	return &conversation, nil
}

// Delete removes one conversation by id.
func (s *Store) Delete(id string) error {
	return os.Remove(s.path(id))
}

// List returns summaries of all stored conversations, newest first.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	summaries := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		conversation, err := s.Load(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		summaries = append(summaries, Summary{
			ID:        conversation.ID,
			Title:     conversation.Title,
			CreatedAt: conversation.CreatedAt,
			TurnCount: len(conversation.Turns),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

// path resolves a conversation document path.
func (s *Store) path(id string) string {
	return filepath.Join(s.Dir, id+".json")
}
