package projectcfg_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantryci/gantry/pkg/projectcfg"
	"github.com/gantryci/gantry/pkg/xmltree"
)

func decodeSection(t *testing.T, input string) *xmltree.Node {
	t.Helper()

	node, err := xmltree.Decode(strings.NewReader(input))
	require.NoError(t, err)

	return node
}

func TestParsePlugins(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  []projectcfg.PluginLink
	}{
		"no children": {
			input: `<plugins></plugins>`,
			want:  []projectcfg.PluginLink{},
		},
		"self-closing section": {
			input: `<plugins/>`,
			want:  []projectcfg.PluginLink{},
		},
		"links in document order": {
			input: `<plugins>
  <plugin linkText="Coverage" linkUrl="https://ci.example.com/coverage"/>
  <plugin linkText="Style" linkUrl="https://ci.example.com/style"/>
  <plugin linkText="Docs" linkUrl="https://ci.example.com/docs"/>
</plugins>`,
			want: []projectcfg.PluginLink{
				{Text: "Coverage", URL: "https://ci.example.com/coverage"},
				{Text: "Style", URL: "https://ci.example.com/style"},
				{Text: "Docs", URL: "https://ci.example.com/docs"},
			},
		},
		"element names are not constrained": {
			input: `<plugins>
  <coveragePlugin linkText="Coverage" linkUrl="https://ci.example.com/coverage"/>
  <anything linkText="Other" linkUrl="https://ci.example.com/other"/>
</plugins>`,
			want: []projectcfg.PluginLink{
				{Text: "Coverage", URL: "https://ci.example.com/coverage"},
				{Text: "Other", URL: "https://ci.example.com/other"},
			},
		},
		"empty attribute values are present": {
			input: `<plugins>
  <plugin linkText="" linkUrl=""/>
</plugins>`,
			want: []projectcfg.PluginLink{
				{Text: "", URL: ""},
			},
		},
		"duplicate links allowed": {
			input: `<plugins>
  <plugin linkText="Same" linkUrl="https://ci.example.com/same"/>
  <plugin linkText="Same" linkUrl="https://ci.example.com/same"/>
</plugins>`,
			want: []projectcfg.PluginLink{
				{Text: "Same", URL: "https://ci.example.com/same"},
				{Text: "Same", URL: "https://ci.example.com/same"},
			},
		},
	}

	for name, tc := range tcs {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			section := decodeSection(t, tc.input)

			got, err := projectcfg.ParsePlugins(section)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParsePluginsMissingAttribute(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		wantMissing string
	}{
		"missing linkText": {
			input:       `<plugins><plugin linkUrl="https://ci.example.com"/></plugins>`,
			wantMissing: "linkText",
		},
		"missing linkUrl": {
			input:       `<plugins><plugin linkText="Coverage"/></plugins>`,
			wantMissing: "linkUrl",
		},
		"both attributes missing": {
			input:       `<plugins><plugin/></plugins>`,
			wantMissing: "linkText",
		},
		"attribute names are case-sensitive": {
			input:       `<plugins><plugin linktext="Coverage" linkUrl="https://ci.example.com"/></plugins>`,
			wantMissing: "linkText",
		},
		"later link fails after valid links": {
			input: `<plugins>
  <plugin linkText="Coverage" linkUrl="https://ci.example.com/coverage"/>
  <plugin linkText="Broken"/>
</plugins>`,
			wantMissing: "linkUrl",
		},
	}

	for name, tc := range tcs {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			section := decodeSection(t, tc.input)

			_, err := projectcfg.ParsePlugins(section)
			require.Error(t, err)
			assert.ErrorIs(t, err, projectcfg.ErrMissingAttribute)
			assert.ErrorContains(t, err, tc.wantMissing)
		})
	}
}

func TestParsePluginsNilSection(t *testing.T) {
	t.Parallel()

	got, err := projectcfg.ParsePlugins(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}
