package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityEventValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name    string
		event   ActivityEvent
		wantErr error
	}{
		{
			name:    "valid audio play",
			event:   NewAudioPlayEvent("你好", "mandarin", 1000),
			wantErr: nil,
		},
		{
			name:    "audio play without dialect is valid",
			event:   NewAudioPlayEvent("你好", "", 1000),
			wantErr: nil,
		},
		{
			name:    "audio play needs text",
			event:   NewAudioPlayEvent("", "mandarin", 1000),
			wantErr: ErrEmptyText,
		},
		{
			name:    "valid grade event",
			event:   NewGradeEvent("word:你好", GradeGood, 1000),
			wantErr: nil,
		},
		{
			name:    "grade event needs key",
			event:   NewGradeEvent("", GradeGood, 1000),
			wantErr: ErrEmptyText,
		},
		{
			name:    "grade event needs known grade",
			event:   NewGradeEvent("word:你好", Grade("perfect"), 1000),
			wantErr: ErrInvalidGrade,
		},
		{
			name:    "valid add event",
			event:   NewAddEvent("word:你好", 1000),
			wantErr: nil,
		},
		{
			name:    "add event needs key",
			event:   NewAddEvent("", 1000),
			wantErr: ErrEmptyText,
		},
		{
			name:    "unknown type rejected",
			event:   ActivityEvent{Type: "ui.click", T: 1000},
			wantErr: ErrInvalidEventType,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.event.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestActivityEventJSONShape(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// Unused union fields must stay out of the serialized form so the
	// ledger stays compact and readable.
	data, err := json.Marshal(NewAddEvent("word:你好", 1000))
	require.NoError(t, err)

	assert.JSONEq(t, `{"type":"srs.add","key":"word:你好","t":1000}`, string(data))
}
