package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/masmgr/gitgauge-go/internal/contributor"
)

// LoadContributors reads contributors previously exported as JSON.
func LoadContributors(path string) (map[string]contributor.Contributor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open contributors file: %w", err)
	}
	defer file.Close()
	return ReadContributors(file)
}

// ReadContributors decodes a JSON report written by JSONContributorWriter,
// a bare array of contributors, or an object mapping name to contributor.
// Entries are keyed by username.
func ReadContributors(r io.Reader) (map[string]contributor.Contributor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty contributors document")
	}

	var list []contributor.Contributor
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("failed to decode contributors: %w", err)
		}
	case '{':
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, fmt.Errorf("failed to decode contributors: %w", err)
		}
		if raw, ok := probe["contributors"]; ok {
			if err := json.Unmarshal(raw, &list); err != nil {
				return nil, fmt.Errorf("failed to decode report contributors: %w", err)
			}
			break
		}
		byName := make(map[string]contributor.Contributor, len(probe))
		if err := json.Unmarshal(data, &byName); err != nil {
			return nil, fmt.Errorf("failed to decode contributors: %w", err)
		}
		for name, c := range byName {
			if c.Username == "" {
				c.Username = name
			}
			list = append(list, c)
		}
	default:
		return nil, fmt.Errorf("contributors document must be a JSON array or object")
	}

	out := make(map[string]contributor.Contributor, len(list))
	for _, c := range list {
		out[c.Username] = c
	}
	return out, nil
}
