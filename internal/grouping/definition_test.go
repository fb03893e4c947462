package grouping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDefinition(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Group
	}{
		{
			name:     "JSON keeps key order",
			input:    `{"Zeta": ["z@x"], "Alpha": ["a@x", "b@x"]}`,
			expected: []Group{{Name: "Zeta", Emails: []string{"z@x"}}, {Name: "Alpha", Emails: []string{"a@x", "b@x"}}},
		},
		{
			name:     "YAML",
			input:    "Team1:\n  - alice@x\n  - alice@y\nTeam2: [bob@x]\n",
			expected: []Group{{Name: "Team1", Emails: []string{"alice@x", "alice@y"}}, {Name: "Team2", Emails: []string{"bob@x"}}},
		},
		{
			name:     "Non-list members give an empty group",
			input:    `{"Team1": "alice@x", "Team2": {"a": 1}}`,
			expected: []Group{{Name: "Team1"}, {Name: "Team2"}},
		},
		{
			name:     "Non-string members are skipped",
			input:    `{"Team1": ["alice@x", 42, null, ["nested"], true, "bob@x"]}`,
			expected: []Group{{Name: "Team1", Emails: []string{"alice@x", "bob@x"}}},
		},
		{
			name:     "Repeated name replaces members",
			input:    "Team1: [a@x]\nTeam2: [b@x]\nTeam1: [c@x]\n",
			expected: []Group{{Name: "Team1", Emails: []string{"c@x"}}, {Name: "Team2", Emails: []string{"b@x"}}},
		},
		{name: "List root", input: `["a@x"]`},
		{name: "Scalar root", input: `"a@x"`},
		{name: "Empty document", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := ParseDefinition([]byte(tt.input))
			if err != nil {
				t.Fatalf("ParseDefinition: %v", err)
			}
			if diff := cmp.Diff(tt.expected, def.Groups); diff != "" {
				t.Errorf("groups mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseDefinition_SyntaxError(t *testing.T) {
	if _, err := ParseDefinition([]byte(`{"Team1": [`)); err == nil {
		t.Error("expected a syntax error")
	}
}

func TestLoadDefinition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "groups.json")
	if err := os.WriteFile(path, []byte(`{"Team1": ["alice@x"]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	def, err := LoadDefinition(path)
	if err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}
	if len(def.Groups) != 1 || def.Groups[0].Name != "Team1" {
		t.Errorf("groups = %+v", def.Groups)
	}

	if _, err := LoadDefinition(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for a missing file")
	}
}
