// Package interview implements the turn-by-turn field extraction state
// machine for both wizards: a free deterministic keyword tier backed by a
// curated vocabulary, and an LLM fallback tier that degrades to an empty
// update on any failure.
package interview

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed vocab.yaml
var defaultVocabYAML []byte

// Vocabulary holds the fixed token lists used by the tier-1 extractor.
type Vocabulary struct {
	TitleFragments []string `yaml:"title_fragments"`
	Skills         []string `yaml:"skills"`
	Industries     []string `yaml:"industries"`
	Locations      []string `yaml:"locations"`
}

// DefaultVocabulary parses the embedded vocabulary. Panics only on a broken
// build (the embedded file is part of the binary).
func DefaultVocabulary() Vocabulary {
	v, err := parseVocab(defaultVocabYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded vocab.yaml invalid: %v", err))
	}
	return v
}

// LoadVocabulary reads a vocabulary override from path, falling back to the
// embedded defaults when path is empty.
func LoadVocabulary(path string) (Vocabulary, error) {
	if path == "" {
		return DefaultVocabulary(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("op=vocab.load: %w", err)
	}
	return parseVocab(b)
}

func parseVocab(b []byte) (Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(b, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("op=vocab.parse: %w", err)
	}
	return v, nil
}
