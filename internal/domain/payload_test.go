package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_UnmarshalWrappedDocument(t *testing.T) {
	raw := `{
		"titles": [
			{"title": {"machine_name": "contes-nit", "human_name": "Contes de la nit", "languages": [{"language": "CA"}, {"language": "EN"}]}}
		],
		"collections": ["Club", "Escola"],
		"levels": ["A1", "B2"],
		"durations": ["30 min"],
		"languages": ["CA", "EN"],
		"ages_list": ["6-8"]
	}`

	var p Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	require.Len(t, p.Titles, 1)
	assert.Equal(t, "contes-nit", p.Titles[0].MachineName)
	assert.Equal(t, []string{"CA", "EN"}, p.Titles[0].LanguageCodes())
	assert.Equal(t, []string{"Club", "Escola"}, p.Collections)
	assert.Equal(t, []string{"6-8"}, p.Ages)
}

func TestPayload_UnmarshalBareArray(t *testing.T) {
	raw := `[
		{"machine_name": "a", "levels": "A1, B2", "langs": "ca,en"},
		{"machine_name": "b", "levels": ["C1"]}
	]`

	var p Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	require.Len(t, p.Titles, 2)
	assert.Equal(t, []string{"A1", "B2"}, []string(p.Titles[0].Levels))
	assert.Equal(t, []string{"ca", "en"}, p.Titles[0].LanguageCodes())
	assert.Equal(t, []string{"C1"}, []string(p.Titles[1].Levels))
	assert.Empty(t, p.Collections)
}

func TestPayload_MarshalRendersWrappedShape(t *testing.T) {
	p := Payload{
		Titles:      []RawTitle{{MachineName: "a", HumanName: "A"}},
		Collections: []string{"Club"},
	}

	out, err := json.Marshal(p)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Contains(t, doc, "titles")
	assert.Contains(t, doc, "collections")

	var titles []map[string]RawTitle
	require.NoError(t, json.Unmarshal(doc["titles"], &titles))
	require.Len(t, titles, 1)
	assert.Equal(t, "a", titles[0]["title"].MachineName)
}

func TestLanguageList_Shapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"object array", `[{"language": "CA"}, {"language": "EN"}]`, []string{"CA", "EN"}},
		{"string array", `["CA", "EN"]`, []string{"CA", "EN"}},
		{"comma joined", `"CA, EN"`, []string{"CA", "EN"}},
		{"single code", `"CA"`, []string{"CA"}},
		{"null", `null`, nil},
		{"empty array", `[]`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l LanguageList
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &l))
			assert.Equal(t, tt.want, []string(l))
		})
	}
}

func TestStringOrList_Shapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"array", `["A1", "B2"]`, []string{"A1", "B2"}},
		{"comma joined", `"A1, B2"`, []string{"A1", "B2"}},
		{"single", `"A1"`, []string{"A1"}},
		{"empty string", `""`, nil},
		{"null", `null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s StringOrList
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &s))
			assert.Equal(t, tt.want, []string(s))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"A1", "B2"}, SplitList(" A1 , B2 ,"))
	assert.Nil(t, SplitList("   "))
}

func TestCatalogIndex_ByMachineName(t *testing.T) {
	idx := CatalogIndex{Titles: []Title{
		{ID: "1", MachineName: "contes-nit"},
		{ID: "2", MachineName: "el-petit-princep"},
	}}

	got, ok := idx.ByMachineName("el-petit-princep")
	require.True(t, ok)
	assert.Equal(t, "2", got.ID)

	_, ok = idx.ByMachineName("missing")
	assert.False(t, ok)
}
