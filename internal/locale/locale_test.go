package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestDefaults_Complete(t *testing.T) {
	for name, b := range Defaults() {
		assert.Empty(t, b.Missing(), "bundle %s", name)
	}
}

func TestResolve(t *testing.T) {
	custom := Defaults().Merge(Resource{
		"fr": {None: "Aucun", From: "de", Search: "Rechercher", SelectAll: "Tout", UnselectAll: "Rien", ShowSelected: "Choisis"},
	})

	tests := []struct {
		name      string
		requested string
		wantUsed  string
		wantNone  string
	}{
		{"exact", "de", "de", "Keine ausgewählt"},
		{"custom", "fr", "fr", "Aucun"},
		{"regional variant", "de-AT", "de", "Keine ausgewählt"},
		{"unknown language", "ja", "en", "None selected"},
		{"empty", "", "en", "None selected"},
		{"garbage", "not a tag!", "en", "None selected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, res := Resolve(custom, tt.requested)
			assert.Equal(t, tt.wantUsed, res.Used)
			assert.Equal(t, tt.wantNone, b.None)
			assert.Equal(t, tt.requested != tt.wantUsed, res.Fallback())
		})
	}
}

func TestResolve_FillsMissingFields(t *testing.T) {
	r := Resource{"de": {None: "Nichts"}}

	b, res := Resolve(r, "de")
	assert.Equal(t, "Nichts", b.None)
	assert.Equal(t, "von", b.From, "filled from the built-in bundle of the same language")
	assert.Equal(t, []string{"from", "search", "select_all", "unselect_all", "show_selected"}, res.Filled)
}

func TestResolve_EmptyResource(t *testing.T) {
	b, res := Resolve(nil, "de")
	assert.Equal(t, "en", res.Used)
	assert.Equal(t, "None selected", b.None)
	assert.Len(t, res.Filled, 6)
}

func TestMerge_DoesNotMutate(t *testing.T) {
	base := Resource{"en": {None: "a"}}
	merged := base.Merge(Resource{"en": {None: "b"}})
	assert.Equal(t, "a", base["en"].None)
	assert.Equal(t, "b", merged["en"].None)
}

func TestBundle_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Bundle
	}{
		{
			name:  "snake case",
			input: "select_all: Tout\nunselect_all: Rien\nshow_selected: Choisis\n",
			want:  Bundle{SelectAll: "Tout", UnselectAll: "Rien", ShowSelected: "Choisis"},
		},
		{
			name:  "camel case",
			input: "none: Aucun\nselectAll: Tout\nunselectAll: Rien\nshowSelected: Choisis\n",
			want:  Bundle{None: "Aucun", SelectAll: "Tout", UnselectAll: "Rien", ShowSelected: "Choisis"},
		},
		{
			name:  "snake case wins",
			input: "select_all: Tout\nselectAll: Autre\n",
			want:  Bundle{SelectAll: "Tout"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Bundle
			require.NoError(t, yaml.Unmarshal([]byte(tt.input), &b))
			assert.Equal(t, tt.want, b)
		})
	}
}

func TestResource_CamelCaseKeysAreNotFilled(t *testing.T) {
	var r Resource
	require.NoError(t, yaml.Unmarshal([]byte(`fr:
  none: Aucun
  from: de
  search: Rechercher
  selectAll: Tout
  unselectAll: Rien
  showSelected: Choisis
`), &r))
	b, res := Resolve(Defaults().Merge(r), "fr")
	assert.Empty(t, res.Filled)
	assert.Equal(t, "Tout", b.SelectAll)
}
