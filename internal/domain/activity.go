package domain

// EventType discriminates the activity event union.
type EventType string

// Activity event types recorded in the ledger.
const (
	// EventAudioPlay records that the learner played back a piece of text.
	EventAudioPlay EventType = "audio.play"

	// EventSRSGrade records a review grade applied to an item.
	EventSRSGrade EventType = "srs.grade"

	// EventSRSAdd records a new item entering the review set.
	EventSRSAdd EventType = "srs.add"
)

// ActivityEvent is one entry in the append-only activity ledger. It is a
// tagged union serialized as a flat JSON object: which fields are populated
// depends on Type. Events are immutable once appended.
type ActivityEvent struct {
	Type EventType `json:"type"`

	// Text and Dialect are set for audio.play events.
	Text    string `json:"text,omitempty"`
	Dialect string `json:"dialect,omitempty"`

	// Key is set for srs.grade and srs.add events.
	Key string `json:"key,omitempty"`

	// Grade is set for srs.grade events.
	Grade Grade `json:"grade,omitempty"`

	// T is the event timestamp in milliseconds since the Unix epoch.
	T int64 `json:"t"`
}

// NewAudioPlayEvent creates an audio.play event for the given text.
// Dialect may be empty when the default voice was used.
func NewAudioPlayEvent(text, dialect string, t int64) ActivityEvent {
	return ActivityEvent{Type: EventAudioPlay, Text: text, Dialect: dialect, T: t}
}

// NewGradeEvent creates an srs.grade event for the given item key.
func NewGradeEvent(key string, grade Grade, t int64) ActivityEvent {
	return ActivityEvent{Type: EventSRSGrade, Key: key, Grade: grade, T: t}
}

// NewAddEvent creates an srs.add event for the given item key.
func NewAddEvent(key string, t int64) ActivityEvent {
	return ActivityEvent{Type: EventSRSAdd, Key: key, T: t}
}

// Validate checks if the ActivityEvent has valid data for its type.
func (e ActivityEvent) Validate() error {
	switch e.Type {
	case EventAudioPlay:
		if e.Text == "" {
			return ErrEmptyText
		}
	case EventSRSGrade:
		if e.Key == "" {
			return ErrEmptyText
		}
		if !IsValidGrade(e.Grade) {
			return ErrInvalidGrade
		}
	case EventSRSAdd:
		if e.Key == "" {
			return ErrEmptyText
		}
	default:
		return ErrInvalidEventType
	}

	return nil
}
