package domain

import "time"

// ReminderConfig holds a learner's daily practice reminder settings.
// Days uses weekday numbers with Sunday = 0, matching time.Weekday.
type ReminderConfig struct {
	Hour    int   `json:"hour"`
	Minute  int   `json:"minute"`
	Days    []int `json:"days"`
	Enabled bool  `json:"enabled"`
}

// DefaultReminderConfig returns the reminder settings a profile starts
// with: 19:00 on weekdays, disabled until the learner opts in.
func DefaultReminderConfig() ReminderConfig {
	return ReminderConfig{
		Hour:    19,
		Minute:  0,
		Days:    []int{1, 2, 3, 4, 5},
		Enabled: false,
	}
}

// NextOccurrence computes the next time the reminder should fire after now.
// With no days selected, it falls back to the next occurrence of the
// configured time (today if still ahead, otherwise tomorrow). Otherwise it
// scans forward up to two weeks for the first selected weekday whose
// configured time is still in the future.
func (c ReminderConfig) NextOccurrence(now time.Time) time.Time {
	target := time.Date(now.Year(), now.Month(), now.Day(), c.Hour, c.Minute, 0, 0, now.Location())

	if len(c.Days) == 0 {
		if !target.After(now) {
			target = target.AddDate(0, 0, 1)
		}
		return target
	}

	for i := 0; i < 14; i++ {
		d := now.AddDate(0, 0, i)
		if !c.daySelected(int(d.Weekday())) {
			continue
		}
		at := time.Date(d.Year(), d.Month(), d.Day(), c.Hour, c.Minute, 0, 0, now.Location())
		if at.After(now) {
			return at
		}
	}

	return target
}

func (c ReminderConfig) daySelected(weekday int) bool {
	for _, d := range c.Days {
		if d == weekday {
			return true
		}
	}
	return false
}

// DialectPrefs holds a learner's audio playback preferences. They travel
// with the profile so each family member keeps their own voice settings.
type DialectPrefs struct {
	// SelectedDialects lists the dialect ids the learner practices.
	SelectedDialects []string `json:"selectedDialects"`

	// PlaybackRate is the speech playback speed multiplier.
	PlaybackRate float64 `json:"playbackRate"`

	// PreferredVoice is the platform voice name, empty for automatic.
	PreferredVoice string `json:"preferredVoice,omitempty"`
}

// DefaultPlaybackRate is the playback speed applied until the learner
// adjusts it. Slower than realtime to aid comprehension.
const DefaultPlaybackRate = 0.8

// DefaultDialectPrefs returns the playback preferences a profile starts with.
func DefaultDialectPrefs() DialectPrefs {
	return DialectPrefs{
		SelectedDialects: []string{},
		PlaybackRate:     DefaultPlaybackRate,
	}
}
