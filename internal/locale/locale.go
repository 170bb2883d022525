// Package locale holds the message bundles a selection widget renders its
// fixed strings from.
package locale

import (
	"sort"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
)

// DefaultLocale is used when a requested locale has no bundle and no close
// language match.
const DefaultLocale = "en"

// Bundle is the set of messages one locale provides. Every field is required.
type Bundle struct {
	None         string `yaml:"none"`
	From         string `yaml:"from"`
	Search       string `yaml:"search"`
	SelectAll    string `yaml:"select_all"`
	UnselectAll  string `yaml:"unselect_all"`
	ShowSelected string `yaml:"show_selected"`
}

// UnmarshalYAML decodes a bundle. The multi-word keys are also accepted in
// camelCase (selectAll, unselectAll, showSelected); the snake_case key wins
// when both are present.
func (b *Bundle) UnmarshalYAML(n *yaml.Node) error {
	type plain Bundle
	var p plain
	if err := n.Decode(&p); err != nil {
		return err
	}
	var camel struct {
		SelectAll    string `yaml:"selectAll"`
		UnselectAll  string `yaml:"unselectAll"`
		ShowSelected string `yaml:"showSelected"`
	}
	if err := n.Decode(&camel); err != nil {
		return err
	}
	if p.SelectAll == "" {
		p.SelectAll = camel.SelectAll
	}
	if p.UnselectAll == "" {
		p.UnselectAll = camel.UnselectAll
	}
	if p.ShowSelected == "" {
		p.ShowSelected = camel.ShowSelected
	}
	*b = Bundle(p)
	return nil
}

// Resource maps locale identifiers to bundles.
type Resource map[string]Bundle

// Defaults returns the built-in bundles.
func Defaults() Resource {
	return Resource{
		"en": {
			None:         "None selected",
			From:         "from",
			Search:       "Search",
			SelectAll:    "Select all",
			UnselectAll:  "Unselect all",
			ShowSelected: "Show selected",
		},
		"de": {
			None:         "Keine ausgewählt",
			From:         "von",
			Search:       "Suche",
			SelectAll:    "Alle auswählen",
			UnselectAll:  "Alle abwählen",
			ShowSelected: "Nur ausgewählte",
		},
	}
}

// Missing returns the yaml keys of b that are empty.
func (b Bundle) Missing() []string {
	var out []string
	for _, f := range []struct {
		key string
		val string
	}{
		{"none", b.None},
		{"from", b.From},
		{"search", b.Search},
		{"select_all", b.SelectAll},
		{"unselect_all", b.UnselectAll},
		{"show_selected", b.ShowSelected},
	} {
		if f.val == "" {
			out = append(out, f.key)
		}
	}
	return out
}

// Fill returns b with every empty field taken from fallback.
func (b Bundle) Fill(fallback Bundle) Bundle {
	pick := func(v, fb string) string {
		if v == "" {
			return fb
		}
		return v
	}
	return Bundle{
		None:         pick(b.None, fallback.None),
		From:         pick(b.From, fallback.From),
		Search:       pick(b.Search, fallback.Search),
		SelectAll:    pick(b.SelectAll, fallback.SelectAll),
		UnselectAll:  pick(b.UnselectAll, fallback.UnselectAll),
		ShowSelected: pick(b.ShowSelected, fallback.ShowSelected),
	}
}

// Merge returns a copy of r with the bundles of other added or replacing
// existing entries.
func (r Resource) Merge(other Resource) Resource {
	out := make(Resource, len(r)+len(other))
	for k, v := range r {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Resolution reports how Resolve picked a bundle.
type Resolution struct {
	Requested string
	Used      string   // locale identifier of the bundle that was used
	Filled    []string // keys copied from the default bundle
}

// Fallback reports whether a bundle other than the requested one was used.
func (r Resolution) Fallback() bool { return r.Requested != r.Used }

// Resolve picks the bundle for the requested locale: the exact key if present,
// otherwise the closest language match among the resource's keys, otherwise
// DefaultLocale. Empty fields are filled from the built-in bundle of the same
// language, or English.
func Resolve(r Resource, requested string) (Bundle, Resolution) {
	res := Resolution{Requested: requested}
	b, ok := r[requested]
	if ok {
		res.Used = requested
	} else {
		res.Used = match(r, requested)
		b = r[res.Used]
	}

	defaults := Defaults()
	base, ok := defaults[res.Used]
	if !ok {
		base = defaults[DefaultLocale]
	}
	res.Filled = b.Missing()
	return b.Fill(base), res
}

func match(r Resource, requested string) string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var tags []language.Tag
	var names []string
	for _, k := range keys {
		tag, err := language.Parse(k)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		names = append(names, k)
	}
	want, err := language.Parse(requested)
	if err == nil && len(tags) > 0 {
		_, idx, conf := language.NewMatcher(tags).Match(want)
		if conf >= language.High {
			return names[idx]
		}
	}
	return DefaultLocale
}
