package service

import (
	"math"
	"sort"
	"time"

	"github.com/Harmony-cloud-01/mandarin-app/internal/domain"
)

// Level is the coarse proficiency label derived from words learned.
type Level string

// Proficiency levels with their fixed wordsLearned thresholds.
const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"

	intermediateThreshold = 100
	advancedThreshold     = 300
)

// Progress is the learner-facing metrics snapshot derived from the
// activity ledger and the review item set.
type Progress struct {
	WordsLearned int   `json:"wordsLearned"`
	Accuracy     int   `json:"accuracy"`
	Streak       int   `json:"streak"`
	Level        Level `json:"level"`
}

// ComputeProgress derives the four metrics from the ledger and item set.
// It is a pure function of its inputs; day boundaries use now's location.
//
//   - wordsLearned: max(review item count, distinct texts played), so a
//     learner who only listens, or only reviews, is not undercounted.
//   - accuracy: share of good/easy grades among all grade events, rounded
//     to the nearest integer percent; 0 with no grade events.
//   - streak: consecutive calendar days with any activity, ending today.
//   - level: fixed thresholds on wordsLearned.
func ComputeProgress(
	evs []domain.ActivityEvent,
	items []domain.ReviewItem,
	now time.Time,
) Progress {
	playedTexts := make(map[string]struct{})
	var correct, graded int
	dayStamps := make([]int64, 0, len(evs))

	for _, ev := range evs {
		switch ev.Type {
		case domain.EventAudioPlay:
			playedTexts[ev.Text] = struct{}{}
		case domain.EventSRSGrade:
			graded++
			if domain.IsCorrectGrade(ev.Grade) {
				correct++
			}
		}
		if ev.T != 0 {
			dayStamps = append(dayStamps, ev.T)
		}
	}

	wordsLearned := len(items)
	if played := len(playedTexts); played > wordsLearned {
		wordsLearned = played
	}

	accuracy := 0
	if graded > 0 {
		accuracy = int(math.Round(float64(correct) / float64(graded) * 100))
	}

	return Progress{
		WordsLearned: wordsLearned,
		Accuracy:     accuracy,
		Streak:       calcStreak(dayStamps, now),
		Level:        levelForWords(wordsLearned),
	}
}

// calcStreak counts the consecutive calendar days with at least one event,
// walking backward from today. The walk halts at the first day with no
// activity, so a single missed day resets the streak to what was counted
// before the gap.
func calcStreak(stamps []int64, now time.Time) int {
	if len(stamps) == 0 {
		return 0
	}

	loc := now.Location()
	uniqueDays := make(map[int64]struct{}, len(stamps))
	for _, ts := range stamps {
		uniqueDays[startOfDay(time.UnixMilli(ts).In(loc))] = struct{}{}
	}

	days := make([]int64, 0, len(uniqueDays))
	for d := range uniqueDays {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	day := time.UnixMilli(startOfDay(now)).In(loc)
	streak := 0
	i := len(days) - 1
	for i >= 0 {
		switch {
		case days[i] == day.UnixMilli():
			streak++
			day = day.AddDate(0, 0, -1)
			i--
		case days[i] < day.UnixMilli():
			// Missed a day; continuity is broken.
			return streak
		default:
			// Future-dated entries are skipped.
			i--
		}
	}

	return streak
}

// startOfDay returns local midnight of t's day in milliseconds.
func startOfDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).UnixMilli()
}

func levelForWords(n int) Level {
	switch {
	case n >= advancedThreshold:
		return LevelAdvanced
	case n >= intermediateThreshold:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}
