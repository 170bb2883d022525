package native_test

import (
	"testing"

	"github.com/ruminaider/selectme/internal/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceYAML = `selects:
  - name: cities
    multiple: true
    options:
      - label: Berlin
        value: ber
        selected: true
      - label: Europe
        options:
          - label: Paris
            value: par
          - label: Inner
            options:
              - label: Rome
                value: rom
      - separator: true
      - just a string
      - colour: blue
  - name: country
    options:
      - value: de
      - label: France
        value: fr
        selected: true
`

func TestParse(t *testing.T) {
	form, err := native.Parse([]byte(sourceYAML))
	require.NoError(t, err)
	require.Len(t, form.Selects, 2)

	cities := form.Lookup("cities")
	require.NotNil(t, cities)
	assert.True(t, cities.Multiple)
	require.Len(t, cities.Children, 5)

	berlin, ok := cities.Children[0].(*native.Option)
	require.True(t, ok)
	assert.Equal(t, "Berlin", berlin.Label)
	assert.Equal(t, "ber", berlin.Value)
	assert.True(t, berlin.Selected)

	europe, ok := cities.Children[1].(*native.OptGroup)
	require.True(t, ok)
	assert.Equal(t, "Europe", europe.Label)
	require.Len(t, europe.Children, 2)
	_, ok = europe.Children[1].(*native.OptGroup)
	assert.True(t, ok, "groups nest")

	assert.IsType(t, &native.Separator{}, cities.Children[2])
	assert.IsType(t, &native.Unknown{}, cities.Children[3])
	assert.IsType(t, &native.Unknown{}, cities.Children[4])

	country := form.Lookup("country")
	require.NotNil(t, country)
	assert.False(t, country.Multiple)
	de := country.Children[0].(*native.Option)
	assert.Equal(t, "de", de.Label, "label falls back to value")
}

func TestParse_JSON(t *testing.T) {
	form, err := native.Parse([]byte(`{"selects":[{"name":"a","options":[{"label":"One","value":"1"}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, "1", form.Selects[0].Options()[0].Value)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid yaml", `{{{`},
		{"missing name", "selects:\n  - options: []\n"},
		{"duplicate name", "selects:\n  - name: a\n  - name: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := native.Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestSelect_Options(t *testing.T) {
	form, err := native.Parse([]byte(sourceYAML))
	require.NoError(t, err)

	var values []string
	for _, o := range form.Lookup("cities").Options() {
		values = append(values, o.Value)
	}
	assert.Equal(t, []string{"ber", "par", "rom"}, values)
}

func TestSelect_SetSelected_Multiple(t *testing.T) {
	a := &native.Option{Value: "a", Selected: true}
	b := &native.Option{Value: "b"}
	s := &native.Select{Multiple: true, Children: []native.Node{a, b}}

	s.SetSelected(b, true)
	assert.Equal(t, []string{"a", "b"}, s.SelectedValues())

	s.SetSelected(a, false)
	assert.Equal(t, []string{"b"}, s.SelectedValues())
}

func TestSelect_SetSelected_Single(t *testing.T) {
	a := &native.Option{Value: "a", Selected: true}
	b := &native.Option{Value: "b"}
	s := &native.Select{Children: []native.Node{&native.OptGroup{Children: []native.Node{a}}, b}}

	s.SetSelected(b, true)
	assert.Equal(t, []string{"b"}, s.SelectedValues())

	s.SetSelected(b, false)
	assert.Empty(t, s.SelectedValues())

	s.SetSelected(nil, true)
	assert.Empty(t, s.SelectedValues())
}

func TestForm_Values(t *testing.T) {
	form := &native.Form{Selects: []*native.Select{
		{Name: "cities", Multiple: true, Children: []native.Node{
			&native.Option{Value: "ber", Selected: true},
			&native.Option{Value: "par", Selected: true, Disabled: true},
			&native.Option{Value: "rom", Selected: true},
		}},
		{Name: "", Children: []native.Node{&native.Option{Value: "x", Selected: true}}},
		{Name: "country", Children: []native.Node{&native.Option{Value: "de"}}},
	}}

	v := form.Values()
	assert.Equal(t, []string{"ber", "rom"}, v["cities"])
	assert.NotContains(t, v, "country")
	assert.Equal(t, "cities=ber&cities=rom", v.Encode())
}

func TestMarshal_RoundTripsSelection(t *testing.T) {
	form, err := native.Parse([]byte(sourceYAML))
	require.NoError(t, err)
	cities := form.Lookup("cities")
	cities.SetSelected(cities.Options()[2], true)

	data, err := native.Marshal(form)
	require.NoError(t, err)

	again, err := native.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"ber", "rom"}, again.Lookup("cities").SelectedValues())
	assert.Equal(t, []string{"fr"}, again.Lookup("country").SelectedValues())
}

func TestParse_SingleSelectKeepsLastSelected(t *testing.T) {
	form, err := native.Parse([]byte(`selects:
  - name: c
    options:
      - {label: A, value: a, selected: true}
      - label: G
        options:
          - {label: B, value: b, selected: true}
  - name: m
    multiple: true
    options:
      - {label: A, value: a, selected: true}
      - {label: B, value: b, selected: true}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, form.Lookup("c").SelectedValues())
	assert.Equal(t, []string{"a", "b"}, form.Lookup("m").SelectedValues())
	assert.Equal(t, "c=b&m=a&m=b", form.Values().Encode())
}
