// Package sentiment maps post text to a polarity score and a three-way
// label. The polarity primitive is an interface so tests can substitute
// a deterministic stub; the default implementation is a weighted
// lexicon scorer.
package sentiment

// Threshold is the symmetric dead zone around zero. Polarity strictly
// below -Threshold is Hostile, strictly above +Threshold is Positive,
// and everything in between (boundaries included) is Neutral.
const Threshold = 0.05

// Label is the three-way sentiment classification of a post.
type Label string

const (
	Hostile  Label = "Hostile"
	Neutral  Label = "Neutral"
	Positive Label = "Positive"
)

// Scorer produces a signed polarity in roughly [-1, 1] for a text.
type Scorer interface {
	Polarity(text string) float64
}

// Classify assigns the label for a polarity value.
func Classify(polarity float64) Label {
	switch {
	case polarity < -Threshold:
		return Hostile
	case polarity > Threshold:
		return Positive
	default:
		return Neutral
	}
}

// Analyze scores text with the given scorer and classifies the result.
func Analyze(s Scorer, text string) (float64, Label) {
	polarity := s.Polarity(text)
	return polarity, Classify(polarity)
}
