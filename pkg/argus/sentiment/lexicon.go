package sentiment

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LexiconScorer scores polarity from a word→weight table: the mean
// weight of matched words, clamped to [-1, 1]. Words with no lexicon
// entry contribute nothing; a text matching no entries scores 0.
type LexiconScorer struct {
	weights map[string]float64
}

// lexiconFile is the YAML on-disk form:
//
//	words:
//	  excellent: 0.9
//	  traitor: -0.8
type lexiconFile struct {
	Words map[string]float64 `yaml:"words"`
}

// NewLexiconScorer creates a scorer over the given word weights.
func NewLexiconScorer(weights map[string]float64) *LexiconScorer {
	w := make(map[string]float64, len(weights))
	for word, weight := range weights {
		w[strings.ToLower(word)] = weight
	}
	return &LexiconScorer{weights: w}
}

// LoadLexicon loads a scorer from a YAML lexicon file.
func LoadLexicon(path string) (*LexiconScorer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}

	var lf lexiconFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}

	return NewLexiconScorer(lf.Words), nil
}

// Polarity implements Scorer.
func (s *LexiconScorer) Polarity(text string) float64 {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '\'')
	})

	var sum float64
	var matched int
	for _, w := range words {
		if weight, ok := s.weights[w]; ok {
			sum += weight
			matched++
		}
	}
	if matched == 0 {
		return 0
	}

	polarity := sum / float64(matched)
	if polarity > 1 {
		return 1
	}
	if polarity < -1 {
		return -1
	}
	return polarity
}

// DefaultLexicon returns a small built-in polarity lexicon used when no
// lexicon file is configured.
func DefaultLexicon() *LexiconScorer {
	return NewLexiconScorer(map[string]float64{
		"good": 0.6, "great": 0.8, "excellent": 0.9, "love": 0.7,
		"peace": 0.5, "support": 0.4, "progress": 0.4, "welcome": 0.4,
		"proud": 0.6, "beautiful": 0.7, "success": 0.6, "hope": 0.4,

		"bad": -0.6, "terrible": -0.9, "hate": -0.8, "attack": -0.5,
		"failing": -0.6, "fascist": -0.9, "terror": -0.9, "shame": -0.7,
		"boycott": -0.6, "genocide": -1.0, "atrocity": -0.9, "corrupt": -0.7,
		"crisis": -0.5, "collapse": -0.6, "propaganda": -0.6, "oppression": -0.8,
	})
}
