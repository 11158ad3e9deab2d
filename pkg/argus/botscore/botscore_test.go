package botscore

import (
	"testing"
	"time"
)

var now = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func TestScoreBrandNewNoFollowers(t *testing.T) {
	created := now.Format(time.RFC3339)
	got := Score(created, 0, now)
	if got != 100 {
		t.Errorf("Score = %v, want 100 for a brand-new zero-follower account", got)
	}
}

func TestScoreOldPopularAccount(t *testing.T) {
	created := now.AddDate(-5, 0, 0).Format(time.RFC3339)
	got := Score(created, 10000, now)
	if got != 0 {
		t.Errorf("Score = %v, want 0 for an old popular account", got)
	}
}

func TestScoreMalformedTimestamp(t *testing.T) {
	// Unparseable date degrades to a neutral 0.5 age component
	got := Score("not a date", 100, now)
	if got != 25 {
		t.Errorf("Score = %v, want 25 (0.5 age, 0 follower)", got)
	}
}

func TestScoreBounds(t *testing.T) {
	cases := []struct {
		created   string
		followers int64
	}{
		{now.Format(time.RFC3339), 0},
		{now.AddDate(-10, 0, 0).Format(time.RFC3339), 0},
		{"2019-03-04", 1000000},
		{"garbage", 50},
	}

	for _, c := range cases {
		got := Score(c.created, c.followers, now)
		if got < 0 || got > 100 {
			t.Errorf("Score(%q, %d) = %v, out of [0,100]", c.created, c.followers, got)
		}
	}
}

func TestScoreFollowerCeiling(t *testing.T) {
	old := now.AddDate(-3, 0, 0).Format(time.RFC3339)
	if Score(old, 100, now) != Score(old, 5000, now) {
		t.Error("followers beyond the ceiling should not change the score")
	}
}
