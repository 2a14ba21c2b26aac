package matcher

import (
	"os"
	"path/filepath"
	"testing"

	"asset-selector-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables(t *testing.T) {
	tables := DefaultTables()
	assert.Equal(t, "powell", tables.Aliases["jerome"])
	assert.Equal(t, "just_wait", tables.Categories["wait"])
	assert.NotEmpty(t, tables.Buckets)
	for _, s := range entity.AllSentiments() {
		assert.NotEmpty(t, tables.Sentiments[s], "sentiment %s", s)
	}
}

func TestParseTables_LowercasesKeys(t *testing.T) {
	tables, err := ParseTables([]byte(`
aliases:
  Powell: POWELL
categories:
  Moon: To_The_Moon
buckets:
  - name: up
    triggers: [UP]
    categories: [Bulls_On_Parade]
sentiments:
  bullish: [Rally]
`))
	require.NoError(t, err)

	assert.Equal(t, "powell", tables.Aliases["powell"])
	assert.Equal(t, "to_the_moon", tables.Categories["moon"])

	m := New(tables)
	assert.True(t, m.MappedCategories("up")["bulls_on_parade"])
	assert.Equal(t, entity.SentimentBullish, m.ClassifyTitle("RALLY"))
}

func TestParseTables_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid yaml", "aliases: [unclosed"},
		{"unknown sentiment", "sentiments:\n  euphoric: [moon]\n"},
		{"bucket without categories", "buckets:\n  - name: empty\n    triggers: [up]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTables([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadTables(t *testing.T) {
	tables, err := LoadTables("")
	require.NoError(t, err)
	assert.NotEmpty(t, tables.Aliases)

	p := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(p, []byte("aliases:\n  btc: bitcoin\n"), 0o644))
	tables, err = LoadTables(p)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"btc": "bitcoin"}, tables.Aliases)

	_, err = LoadTables(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
