package srs

// Box bounds for the Leitner-style scheduler. Every item's mastery level
// stays inside this range no matter what sequence of grades is applied.
const (
	MinBox = 1
	MaxBox = 5
)

// Params defines the configurable parameters for the SRS scheduler.
type Params struct {
	// IntervalDays maps each box level (index 1..5) to the number of
	// days until the next review. Index 0 is unused.
	IntervalDays [MaxBox + 1]int
}

// NewDefaultParams creates a new Params instance with the default interval
// table: reviews stretch from one day at box 1 to thirty days at box 5.
func NewDefaultParams() *Params {
	return &Params{
		IntervalDays: [MaxBox + 1]int{0, 1, 3, 7, 16, 30},
	}
}

// ClampBox constrains a box level to the valid range.
func ClampBox(box int) int {
	if box < MinBox {
		return MinBox
	}
	if box > MaxBox {
		return MaxBox
	}
	return box
}
