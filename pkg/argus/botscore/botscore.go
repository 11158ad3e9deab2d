// Package botscore derives a 0–100 automation-suspicion heuristic from
// author account age and follower count. It is a static heuristic, not
// a trained classifier.
package botscore

import (
	"time"

	"github.com/araddon/dateparse"
)

const (
	// AgeCeilingDays caps the age component: accounts older than one
	// year contribute zero suspicion.
	AgeCeilingDays = 365

	// FollowerCeiling caps the follower component: accounts with this
	// many followers or more contribute zero suspicion.
	FollowerCeiling = 100

	// neutralAgeScore substitutes for an unparseable creation timestamp.
	neutralAgeScore = 0.5
)

// Score computes the suspicion score for an account created at the
// given timestamp with the given follower count. Timestamps are parsed
// leniently; an unparseable value degrades to a neutral age component
// rather than failing.
func Score(createdAt string, followers int64, now time.Time) float64 {
	ageScore := neutralAgeScore
	if ts, err := dateparse.ParseAny(createdAt); err == nil {
		ageDays := now.Sub(ts).Hours() / 24
		ageScore = max(0, 1-ageDays/AgeCeilingDays)
	}

	followerScore := max(0, 1-float64(followers)/FollowerCeiling)

	return (ageScore + followerScore) / 2 * 100
}
