package native

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// document is the on-disk source format. JSON documents decode the same way.
type document struct {
	Selects []rawSelect `yaml:"selects"`
}

type rawSelect struct {
	Name     string      `yaml:"name"`
	Multiple bool        `yaml:"multiple"`
	Options  []yaml.Node `yaml:"options"`
}

type rawEntry struct {
	Label     string       `yaml:"label"`
	Value     *string      `yaml:"value"`
	Selected  bool         `yaml:"selected"`
	Disabled  bool         `yaml:"disabled"`
	Options   *[]yaml.Node `yaml:"options"`
	Separator bool         `yaml:"separator"`
}

// Parse parses a source document into a Form. Entries that are neither an
// option (has "value") nor a group (has "options") are kept as *Unknown or
// *Separator nodes rather than rejected.
func Parse(data []byte) (*Form, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing source: %w", err)
	}
	form := &Form{}
	for i, rs := range doc.Selects {
		if rs.Name == "" {
			return nil, fmt.Errorf("parsing source: select %d has no name", i)
		}
		if form.Lookup(rs.Name) != nil {
			return nil, fmt.Errorf("parsing source: duplicate select name %q", rs.Name)
		}
		sel := &Select{
			Name:     rs.Name,
			Multiple: rs.Multiple,
			Children: parseEntries(rs.Options),
		}
		sel.normalize()
		form.Selects = append(form.Selects, sel)
	}
	return form, nil
}

// Load reads and parses a source document from disk.
func Load(path string) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	return Parse(data)
}

func parseEntries(nodes []yaml.Node) []Node {
	out := make([]Node, 0, len(nodes))
	for i := range nodes {
		out = append(out, parseEntry(&nodes[i]))
	}
	return out
}

func parseEntry(n *yaml.Node) Node {
	if n.Kind != yaml.MappingNode {
		return &Unknown{Kind: kindName(n)}
	}
	var e rawEntry
	if err := n.Decode(&e); err != nil {
		return &Unknown{Kind: "malformed mapping"}
	}
	switch {
	case e.Options != nil:
		return &OptGroup{Label: e.Label, Children: parseEntries(*e.Options)}
	case e.Value != nil:
		label := e.Label
		if label == "" {
			label = *e.Value
		}
		return &Option{Label: label, Value: *e.Value, Selected: e.Selected, Disabled: e.Disabled}
	case e.Separator:
		return &Separator{}
	default:
		return &Unknown{Kind: "mapping without value or options"}
	}
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return "scalar " + n.Value
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	default:
		return "node"
	}
}

// Marshal encodes a Form back into the source format, including the current
// selected flags. Unknown entries are dropped.
func Marshal(f *Form) ([]byte, error) {
	type outEntry struct {
		Label     string      `yaml:"label,omitempty"`
		Value     *string     `yaml:"value,omitempty"`
		Selected  bool        `yaml:"selected,omitempty"`
		Disabled  bool        `yaml:"disabled,omitempty"`
		Options   *[]outEntry `yaml:"options,omitempty"`
		Separator bool        `yaml:"separator,omitempty"`
	}
	type outSelect struct {
		Name     string     `yaml:"name"`
		Multiple bool       `yaml:"multiple,omitempty"`
		Options  []outEntry `yaml:"options"`
	}
	var conv func(nodes []Node) []outEntry
	conv = func(nodes []Node) []outEntry {
		out := []outEntry{}
		for _, n := range nodes {
			switch n := n.(type) {
			case *Option:
				v := n.Value
				out = append(out, outEntry{Label: n.Label, Value: &v, Selected: n.Selected, Disabled: n.Disabled})
			case *OptGroup:
				children := conv(n.Children)
				out = append(out, outEntry{Label: n.Label, Options: &children})
			case *Separator:
				out = append(out, outEntry{Separator: true})
			}
		}
		return out
	}
	doc := struct {
		Selects []outSelect `yaml:"selects"`
	}{}
	for _, s := range f.Selects {
		doc.Selects = append(doc.Selects, outSelect{Name: s.Name, Multiple: s.Multiple, Options: conv(s.Children)})
	}
	return yaml.Marshal(doc)
}
