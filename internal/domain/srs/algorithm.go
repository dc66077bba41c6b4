package srs

import (
	"time"

	"github.com/Harmony-cloud-01/mandarin-app/internal/domain"
)

const millisPerDay = 24 * 60 * 60 * 1000

// nextBox determines the new box level after applying a grade.
//
// Transitions:
//   - "again" demotes one box (floor-clamped at 1)
//   - "hard" keeps the current box, so the item repeats at the same level
//   - "good" promotes one box (ceiling-clamped at 5)
//   - "easy" promotes two boxes (ceiling-clamped at 5)
//
// "hard" intentionally does not demote; only an outright failed recall
// ("again") moves an item backwards.
func nextBox(box int, grade domain.Grade) int {
	switch grade {
	case domain.GradeAgain:
		return ClampBox(box - 1)
	case domain.GradeHard:
		return ClampBox(box)
	case domain.GradeGood:
		return ClampBox(box + 1)
	case domain.GradeEasy:
		return ClampBox(box + 2)
	default:
		return ClampBox(box)
	}
}

// nextDue computes the millisecond timestamp at which an item in the given
// box becomes due again, counting from now. The box is clamped before the
// interval lookup so out-of-range values never index past the table.
func nextDue(box int, now time.Time, params *Params) int64 {
	days := params.IntervalDays[ClampBox(box)]
	return now.UnixMilli() + int64(days)*millisPerDay
}
