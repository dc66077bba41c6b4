package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultReminderConfig(t *testing.T) {
	t.Parallel() // Enable parallel execution

	cfg := DefaultReminderConfig()
	assert.Equal(t, 19, cfg.Hour)
	assert.Equal(t, 0, cfg.Minute)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, cfg.Days)
	assert.False(t, cfg.Enabled, "reminders start opt-out")
}

func TestReminderNextOccurrence(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// 2026-03-09 is a Monday.
	monday := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name string
		cfg  ReminderConfig
		now  time.Time
		want time.Time
	}{
		{
			name: "today when time still ahead",
			cfg:  ReminderConfig{Hour: 19, Minute: 0, Days: []int{1, 2, 3, 4, 5}},
			now:  monday,
			want: time.Date(2026, 3, 9, 19, 0, 0, 0, time.UTC),
		},
		{
			name: "tomorrow when time already passed",
			cfg:  ReminderConfig{Hour: 8, Minute: 30, Days: []int{1, 2, 3, 4, 5}},
			now:  monday,
			want: time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC),
		},
		{
			name: "skips unselected days",
			cfg:  ReminderConfig{Hour: 19, Minute: 0, Days: []int{6}},
			now:  monday,
			want: time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
		},
		{
			name: "exact configured moment rolls forward",
			cfg:  ReminderConfig{Hour: 12, Minute: 0, Days: []int{1}},
			now:  monday,
			want: time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "no days falls back to daily",
			cfg:  ReminderConfig{Hour: 7, Minute: 15},
			now:  monday,
			want: time.Date(2026, 3, 10, 7, 15, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.cfg.NextOccurrence(tc.now))
		})
	}
}

func TestDefaultDialectPrefs(t *testing.T) {
	t.Parallel() // Enable parallel execution

	prefs := DefaultDialectPrefs()
	assert.Empty(t, prefs.SelectedDialects)
	assert.Equal(t, DefaultPlaybackRate, prefs.PlaybackRate)
	assert.Empty(t, prefs.PreferredVoice)
}
