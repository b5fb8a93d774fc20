package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Champion is the saved best-ever solution of a run. Instance carries the
// problem definition (tables, dimensions) so the solution can be shown again.
type Champion struct {
	RunID      string          `json:"run_id"`
	Problem    string          `json:"problem"`
	Generation int             `json:"generation"`
	Fitness    float64         `json:"fitness"`
	Genome     string          `json:"genome"`
	Instance   json.RawMessage `json:"instance,omitempty"`
	SavedAt    time.Time       `json:"saved_at"`
}

// SaveChampion saves the champion to a file
func SaveChampion(path string, c Champion) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create champion directory: %w", err)
	}
	if c.SavedAt.IsZero() {
		c.SavedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal champion: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadChampion loads a champion from a file
func LoadChampion(path string) (*Champion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Champion
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse champion %s: %w", path, err)
	}
	return &c, nil
}
