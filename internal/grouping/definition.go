package grouping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Group is one named set of member emails.
type Group struct {
	Name   string
	Emails []string
}

// Definition is an ordered list of groups.
type Definition struct {
	Groups []Group
}

// Emails returns every email named by any group.
func (d Definition) Emails() map[string]struct{} {
	set := make(map[string]struct{})
	for _, g := range d.Groups {
		for _, e := range g.Emails {
			set[e] = struct{}{}
		}
	}
	return set
}

// LoadDefinition reads a group definition from a JSON or YAML file.
func LoadDefinition(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("failed to read group definition: %w", err)
	}
	def, err := ParseDefinition(data)
	if err != nil {
		return Definition{}, fmt.Errorf("failed to parse group definition %s: %w", path, err)
	}
	return def, nil
}

// ParseDefinition parses a mapping of group name to member emails.
// JSON documents are accepted since they are valid YAML, and key order is kept.
// Shapes other than a mapping of lists are tolerated: a non-mapping root has no
// groups, a non-list value is an empty group, non-string members are skipped,
// and a repeated group name replaces the earlier members.
func ParseDefinition(data []byte) (Definition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Definition{}, err
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return Definition{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return Definition{}, nil
	}

	var def Definition
	index := make(map[string]int)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			continue
		}
		g := Group{Name: key.Value, Emails: memberEmails(value)}
		if at, ok := index[g.Name]; ok {
			def.Groups[at] = g
			continue
		}
		index[g.Name] = len(def.Groups)
		def.Groups = append(def.Groups, g)
	}
	return def, nil
}

func memberEmails(n *yaml.Node) []string {
	if n.Kind != yaml.SequenceNode {
		return nil
	}
	var emails []string
	for _, item := range n.Content {
		if item.Kind == yaml.ScalarNode && item.Tag == "!!str" {
			emails = append(emails, item.Value)
		}
	}
	return emails
}
