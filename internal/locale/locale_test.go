package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Risk Assessment", d.Lookup("riskPanel", "title", English))
	assert.Equal(t, "خطرے کا جائزہ", d.Lookup("riskPanel", "title", Urdu))
	assert.Equal(t, "جھیل کا پھیلاؤ", d.Lookup("factors", "lakeGrowth", Urdu))
	assert.Contains(t, d.Components(), "nav")
}

func TestDictionary_Lookup_Fallback(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name      string
		component string
		key       string
		loc       string
		want      string
	}{
		{"missing urdu falls back to english", "header", "settings", Urdu, "Settings"},
		{"unknown locale falls back to english", "nav", "home", "fr", "Home"},
		{"unknown key returns key", "nav", "about", Urdu, "about"},
		{"unknown component returns key", "footer", "copyright", English, "copyright"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Lookup(tt.component, tt.key, tt.loc))
		})
	}
}

func TestDictionary_Table(t *testing.T) {
	d, err := Parse([]byte(`
nav:
  home: {en: Home, ur: ہوم}
  reports: {en: Reports}
`))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"nav.home":    "ہوم",
		"nav.reports": "Reports",
	}, d.Table(Urdu))
	assert.Equal(t, map[string]string{
		"nav.home":    "Home",
		"nav.reports": "Reports",
	}, d.Table(English))
}

func TestParse_RequiresFallbackText(t *testing.T) {
	_, err := Parse([]byte("nav:\n  home: {ur: ہوم}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `nav.home: missing "en" text`)

	_, err = Parse([]byte("nav: [not, a, map]\n"))
	assert.ErrorContains(t, err, "decode locale file")
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, English, Normalize("en"))
	assert.Equal(t, Urdu, Normalize("ur"))
	assert.Equal(t, English, Normalize(""))
	assert.Equal(t, English, Normalize("UR"))
	assert.False(t, Supported("fr"))
}
