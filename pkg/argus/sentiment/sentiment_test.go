package sentiment

import "testing"

// stubScorer returns a fixed polarity regardless of text.
type stubScorer struct{ v float64 }

func (s stubScorer) Polarity(string) float64 { return s.v }

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		polarity float64
		want     Label
	}{
		{-1.0, Hostile},
		{-0.051, Hostile},
		{-0.05, Neutral}, // boundary is Neutral, not Hostile
		{0.0, Neutral},
		{0.05, Neutral}, // boundary is Neutral, not Positive
		{0.051, Positive},
		{1.0, Positive},
	}

	for _, c := range cases {
		if got := Classify(c.polarity); got != c.want {
			t.Errorf("Classify(%v) = %v, want %v", c.polarity, got, c.want)
		}
	}
}

func TestAnalyzeUsesScorer(t *testing.T) {
	polarity, label := Analyze(stubScorer{v: -0.3}, "whatever")
	if polarity != -0.3 {
		t.Errorf("polarity = %v, want -0.3", polarity)
	}
	if label != Hostile {
		t.Errorf("label = %v, want Hostile", label)
	}
}

func TestLexiconScorerSign(t *testing.T) {
	s := DefaultLexicon()

	if p := s.Polarity("what a terrible shame, boycott this"); p >= 0 {
		t.Errorf("hostile text scored %v, want negative", p)
	}
	if p := s.Polarity("great progress, proud and hopeful"); p <= 0 {
		t.Errorf("positive text scored %v, want positive", p)
	}
}

func TestLexiconScorerNoMatches(t *testing.T) {
	s := NewLexiconScorer(map[string]float64{"rare": 0.5})
	if p := s.Polarity("completely unrelated words"); p != 0 {
		t.Errorf("unmatched text scored %v, want 0", p)
	}
}

func TestLexiconScorerClamped(t *testing.T) {
	s := NewLexiconScorer(map[string]float64{"awful": -1.5})
	if p := s.Polarity("awful awful"); p != -1 {
		t.Errorf("polarity = %v, want clamped -1", p)
	}
}

func TestLexiconScorerCaseInsensitive(t *testing.T) {
	s := NewLexiconScorer(map[string]float64{"Hate": -0.8})
	if p := s.Polarity("HATE this"); p != -0.8 {
		t.Errorf("polarity = %v, want -0.8", p)
	}
}
