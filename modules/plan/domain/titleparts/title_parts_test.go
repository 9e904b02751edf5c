package titleparts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleYAML = `
sequence_of_groups:
  - [adjective, noun]
  - [noun]
groups_of_terms:
  adjective: ["", "Happy", "Agile"]
  noun: ["Retro", "Session"]
`

func TestParse(t *testing.T) {
	parts, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.Equal(t, [][]string{{"adjective", "noun"}, {"noun"}}, parts.SequenceOfGroups)
	require.Len(t, parts.GroupsOfTerms["adjective"], 3)
}

func TestParse_NumericGroupIDs(t *testing.T) {
	parts, err := Parse([]byte("sequence_of_groups: [[0, 1]]\ngroups_of_terms:\n  0: [a]\n  1: [b, c]\n"))
	require.NoError(t, err)
	terms, err := parts.Group("1")
	require.NoError(t, err)
	require.Equal(t, []string{"b", "c"}, terms)
}

func TestValidate_UnknownGroup(t *testing.T) {
	parts := &TitleParts{
		SequenceOfGroups: [][]string{{"a", "missing"}},
		GroupsOfTerms:    map[string][]string{"a": {"x"}},
	}
	require.ErrorIs(t, parts.Validate(), ErrUnknownGroup)
}

func TestValidate_EmptyLists(t *testing.T) {
	cases := map[string]*TitleParts{
		"no sequences": {
			GroupsOfTerms: map[string][]string{"a": {"x"}},
		},
		"empty sequence": {
			SequenceOfGroups: [][]string{{}},
			GroupsOfTerms:    map[string][]string{"a": {"x"}},
		},
		"empty group": {
			SequenceOfGroups: [][]string{{"a"}},
			GroupsOfTerms:    map[string][]string{"a": {}},
		},
	}
	for name, parts := range cases {
		t.Run(name, func(t *testing.T) {
			require.Error(t, parts.Validate())
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan_titles.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	parts, err := Load(path)
	require.NoError(t, err)
	require.Len(t, parts.SequenceOfGroups, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
