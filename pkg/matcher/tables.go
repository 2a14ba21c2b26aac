package matcher

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"asset-selector-be/internal/entity"

	"gopkg.in/yaml.v3"
)

//go:embed default_tables.yaml
var defaultTablesYAML []byte

type Bucket struct {
	Name       string   `yaml:"name"`
	Triggers   []string `yaml:"triggers"`
	Categories []string `yaml:"categories"`
}

// Tables is the static keyword configuration shared by every match.
type Tables struct {
	Aliases    map[string]string             `yaml:"aliases"`
	Categories map[string]string             `yaml:"categories"`
	Buckets    []Bucket                      `yaml:"buckets"`
	Sentiments map[entity.Sentiment][]string `yaml:"sentiments"`

	sentimentIndex map[string][]entity.Sentiment
	bucketIndex    map[string][]string
}

// DefaultTables returns the embedded tables.
func DefaultTables() *Tables {
	t, err := ParseTables(defaultTablesYAML)
	if err != nil {
		panic(fmt.Sprintf("matcher: embedded tables are invalid: %v", err))
	}
	return t
}

// LoadTables reads a YAML file. An empty path yields the embedded defaults.
func LoadTables(path string) (*Tables, error) {
	if path == "" {
		return DefaultTables(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading matcher tables: %w", err)
	}
	return ParseTables(data)
}

func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing matcher tables: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	t.prepare()
	return &t, nil
}

func (t *Tables) validate() error {
	for s := range t.Sentiments {
		if _, ok := entity.ParseSentiment(string(s)); !ok {
			return fmt.Errorf("matcher tables: unknown sentiment %q", s)
		}
	}
	for i, b := range t.Buckets {
		if len(b.Triggers) == 0 || len(b.Categories) == 0 {
			return fmt.Errorf("matcher tables: bucket %d (%s) needs triggers and categories", i, b.Name)
		}
	}
	return nil
}

// prepare lowercases every key and builds reverse indexes.
func (t *Tables) prepare() {
	aliases := make(map[string]string, len(t.Aliases))
	for k, v := range t.Aliases {
		aliases[strings.ToLower(k)] = strings.ToLower(v)
	}
	t.Aliases = aliases

	categories := make(map[string]string, len(t.Categories))
	for k, v := range t.Categories {
		categories[strings.ToLower(k)] = strings.ToLower(v)
	}
	t.Categories = categories

	t.bucketIndex = make(map[string][]string)
	for _, b := range t.Buckets {
		for _, trig := range b.Triggers {
			trig = strings.ToLower(trig)
			for _, c := range b.Categories {
				t.bucketIndex[trig] = append(t.bucketIndex[trig], strings.ToLower(c))
			}
		}
	}

	t.sentimentIndex = make(map[string][]entity.Sentiment)
	for _, s := range entity.AllSentiments() {
		for _, w := range t.Sentiments[s] {
			w = strings.ToLower(w)
			t.sentimentIndex[w] = append(t.sentimentIndex[w], s)
		}
	}
}
