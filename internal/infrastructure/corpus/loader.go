// Package corpus loads the advisory passage set from disk.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kirillkom/idea-coach/internal/core/domain"
)

type record struct {
	Content string `json:"content"`
}

// LoadFile reads a JSON array of passage records from path. An absent
// file is not an error: retrieval simply degrades to always-empty.
// Records without usable content are skipped; they never abort the
// load of the remaining corpus.
func LoadFile(path string) ([]domain.Passage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read corpus file: %w", err)
	}
	return Parse(data)
}

// Parse decodes raw JSON into passages, assigning ids in array order.
func Parse(data []byte) ([]domain.Passage, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode corpus json: %w", err)
	}

	out := make([]domain.Passage, 0, len(records))
	for _, rec := range records {
		content := strings.TrimSpace(rec.Content)
		if content == "" {
			continue
		}
		out = append(out, domain.Passage{
			ID:      len(out),
			Content: content,
		})
	}
	return out, nil
}
