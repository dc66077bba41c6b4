package domain

import "errors"

// ReviewItem-specific validation errors
var (
	// ErrItemKeyEmpty is returned when a review item key is empty.
	ErrItemKeyEmpty = errors.New("review item key cannot be empty")

	// ErrInvalidBox is returned when a box level is outside 1..5.
	ErrInvalidBox = errors.New("box must be between 1 and 5")
)

// ItemType classifies what kind of learnable unit a review item holds.
type ItemType string

// Known review item types.
const (
	ItemTypeWord      ItemType = "word"
	ItemTypePhrase    ItemType = "phrase"
	ItemTypeCharacter ItemType = "character"
)

// IsValidItemType reports whether the given item type is known.
func IsValidItemType(t ItemType) bool {
	switch t {
	case ItemTypeWord, ItemTypePhrase, ItemTypeCharacter:
		return true
	default:
		return false
	}
}

// Grade represents the learner's self-assessment of a review.
type Grade string

// Possible review grades, from worst to best recall.
const (
	GradeAgain Grade = "again"
	GradeHard  Grade = "hard"
	GradeGood  Grade = "good"
	GradeEasy  Grade = "easy"
)

// IsValidGrade reports whether the given grade is valid.
func IsValidGrade(g Grade) bool {
	switch g {
	case GradeAgain, GradeHard, GradeGood, GradeEasy:
		return true
	default:
		return false
	}
}

// IsCorrectGrade reports whether the grade counts as a successful recall
// for accuracy purposes.
func IsCorrectGrade(g Grade) bool {
	return g == GradeGood || g == GradeEasy
}

// ReviewRecord is one grading event in an item's history.
type ReviewRecord struct {
	T     int64 `json:"t"`
	Grade Grade `json:"grade"`
}

// ReviewItem is one unit in the spaced-repetition review set. The natural
// identifier is Key, a composite of type and text, so re-adding the same
// (type, text) pair is a no-op.
//
// Box is the mastery level (1..5) driving the review interval; Due is the
// millisecond timestamp at which the item becomes eligible for review.
type ReviewItem struct {
	Key     string         `json:"key"`
	Text    string         `json:"text"`
	Type    ItemType       `json:"type"`
	Box     int            `json:"box"`
	Due     int64          `json:"due"`
	AddedAt int64          `json:"addedAt"`
	History []ReviewRecord `json:"history"`
}

// ItemKey builds the composite key identifying a review item,
// e.g. "word:玉米".
func ItemKey(itemType ItemType, text string) string {
	return string(itemType) + ":" + text
}

// Validate checks if the ReviewItem has valid data.
func (it *ReviewItem) Validate() error {
	if it.Key == "" {
		return ErrItemKeyEmpty
	}

	if it.Text == "" {
		return ErrEmptyText
	}

	if !IsValidItemType(it.Type) {
		return ErrInvalidItemType
	}

	if it.Box < 1 || it.Box > 5 {
		return ErrInvalidBox
	}

	return nil
}

// Clone returns a deep copy of the item. History is copied so callers can
// mutate the clone without aliasing the original's slice.
func (it *ReviewItem) Clone() *ReviewItem {
	cp := *it
	cp.History = make([]ReviewRecord, len(it.History))
	copy(cp.History, it.History)
	return &cp
}
