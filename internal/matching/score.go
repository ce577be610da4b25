// Package matching contains the pure scoring functions used to rank
// candidate partners. All functions are deterministic and side-effect free.
package matching

import (
	"slices"
	"strings"
	"time"

	"github.com/skillswap/skillswap-server/internal/model"
)

// Eligibility is the minimum skill similarity required, in both directions,
// for a candidate to be considered at all.
const Eligibility = 50

// SkillSimilarity scores how close two skill strings are. Exact match
// (case-insensitive, trimmed) scores 100, substring containment either way
// scores 80, otherwise each whitespace token shared with the other string
// adds 10 on top of a base of 50. No shared tokens scores 0.
//
// The word-overlap branch is intentionally not clamped at 100: six or more
// shared tokens push the score past the exact-match value. Callers treat the
// result as ordinal, not as a percentage.
func SkillSimilarity(a, b string) float64 {
	s1 := strings.ToLower(strings.TrimSpace(a))
	s2 := strings.ToLower(strings.TrimSpace(b))

	if s1 == s2 {
		return 100
	}

	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		return 80
	}

	words1 := strings.Fields(s1)
	words2 := strings.Fields(s2)

	var common int
	for _, word := range words1 {
		if slices.Contains(words2, word) {
			common++
		}
	}

	if common > 0 {
		return 50 + float64(common)*10
	}

	return 0
}

// LevelSimilarity scores the distance between two skill levels on the
// Beginner/Intermediate/Advanced ladder.
func LevelSimilarity(a, b model.Level) float64 {
	diff := levelOrdinal(a) - levelOrdinal(b)
	if diff < 0 {
		diff = -diff
	}

	switch {
	case diff == 0:
		return 100
	case diff == 1:
		return 70
	default:
		return 40
	}
}

func levelOrdinal(l model.Level) int {
	switch l {
	case model.LevelBeginner:
		return 0
	case model.LevelIntermediate:
		return 1
	case model.LevelAdvanced:
		return 2
	}
	return -1
}

// TimezoneProximity scores how close two IANA timezones are by their current
// UTC offsets. A timezone that fails to resolve defaults to UTC rather than
// failing the whole computation.
func TimezoneProximity(tzA, tzB string) float64 {
	diff := utcOffsetHours(tzA) - utcOffsetHours(tzB)
	if diff < 0 {
		diff = -diff
	}

	switch {
	case diff == 0:
		return 100
	case diff <= 3:
		return 80
	case diff <= 6:
		return 60
	case diff <= 9:
		return 40
	default:
		return 20
	}
}

func utcOffsetHours(name string) float64 {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return 0
	}
	_, offset := time.Now().In(loc).Zone()
	return float64(offset) / 3600
}

// Breakdown carries the component scores of one user/candidate pairing.
type Breakdown struct {
	OfferMatch float64
	WantMatch  float64
	OfferLevel float64
	WantLevel  float64
	Timezone   float64
	Combined   float64
}

// Score computes the full breakdown for a candidate and reports whether the
// candidate passes the eligibility gate: both skill directions must show at
// least word-overlap quality alignment. Level and timezone components are
// only computed for eligible candidates.
func Score(user, candidate model.User) (Breakdown, bool) {
	b := Breakdown{
		OfferMatch: SkillSimilarity(user.OfferSkill, candidate.WantSkill),
		WantMatch:  SkillSimilarity(user.WantSkill, candidate.OfferSkill),
	}

	if b.OfferMatch < Eligibility || b.WantMatch < Eligibility {
		return b, false
	}

	b.OfferLevel = LevelSimilarity(user.OfferLevel, candidate.WantLevel)
	b.WantLevel = LevelSimilarity(user.WantLevel, candidate.OfferLevel)
	b.Timezone = TimezoneProximity(user.Timezone, candidate.Timezone)

	b.Combined = (b.OfferMatch+b.WantMatch)*0.4 +
		(b.OfferLevel+b.WantLevel)*0.3 +
		b.Timezone*0.3

	return b, true
}

// CombinedScore is the ranking score for a candidate. The theoretical maximum
// exceeds 100; the value is ordinal, not a normalized percentage. Returns 0
// for candidates that fail the eligibility gate.
func CombinedScore(user, candidate model.User) float64 {
	b, ok := Score(user, candidate)
	if !ok {
		return 0
	}
	return b.Combined
}
