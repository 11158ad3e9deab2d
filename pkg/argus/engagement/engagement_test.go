package engagement

import "testing"

func TestScoreWeights(t *testing.T) {
	// 10 likes + 2 reposts + 1 reply + 0 quotes = 10 + 4 + 1.5 + 0
	got := Score(Counts{Likes: 10, Reposts: 2, Replies: 1, Quotes: 0})
	if got != 15.5 {
		t.Errorf("Score = %v, want 15.5", got)
	}
}

func TestScoreZero(t *testing.T) {
	if got := Score(Counts{}); got != 0 {
		t.Errorf("Score of zero counts = %v, want 0", got)
	}
}

func TestScoreQuotesDominate(t *testing.T) {
	quotes := Score(Counts{Quotes: 1})
	likes := Score(Counts{Likes: 1})
	if quotes != 3*likes {
		t.Errorf("One quote (%v) should weigh 3x one like (%v)", quotes, likes)
	}
}
