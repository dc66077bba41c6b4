// Package srs implements the spaced-repetition scheduling algorithm: a
// five-box Leitner system where grading moves items between boxes and each
// box maps to a fixed review interval.
package srs

import (
	"errors"
	"time"

	"github.com/Harmony-cloud-01/mandarin-app/internal/domain"
)

// Common errors
var (
	ErrNilItem        = errors.New("review item cannot be nil")
	ErrInvalidGrade   = errors.New("invalid review grade")
	ErrInvalidInitBox = errors.New("initial box must be a valid box level")
)

// Service defines the interface for SRS scheduling operations.
type Service interface {
	// NewItem creates a fresh review item for the given text and type,
	// starting at the given box (clamped to the valid range) with its
	// due date computed from that box.
	NewItem(text string, itemType domain.ItemType, initialBox int, now time.Time) (*domain.ReviewItem, error)

	// Review computes the item's state after applying a grade: the new
	// box, the recomputed due date, and the grade appended to history.
	// The input item is not modified; a new instance is returned.
	Review(item *domain.ReviewItem, grade domain.Grade, now time.Time) (*domain.ReviewItem, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a new SRS service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// NewItem implements the Service interface for creating review items.
func (s *defaultService) NewItem(
	text string,
	itemType domain.ItemType,
	initialBox int,
	now time.Time,
) (*domain.ReviewItem, error) {
	box := ClampBox(initialBox)

	item := &domain.ReviewItem{
		Key:     domain.ItemKey(itemType, text),
		Text:    text,
		Type:    itemType,
		Box:     box,
		Due:     nextDue(box, now, s.params),
		AddedAt: now.UnixMilli(),
		History: []domain.ReviewRecord{},
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Review implements the Service interface for grading items.
func (s *defaultService) Review(
	item *domain.ReviewItem,
	grade domain.Grade,
	now time.Time,
) (*domain.ReviewItem, error) {
	if item == nil {
		return nil, ErrNilItem
	}

	if !domain.IsValidGrade(grade) {
		return nil, ErrInvalidGrade
	}

	updated := item.Clone()
	updated.Box = nextBox(item.Box, grade)
	updated.Due = nextDue(updated.Box, now, s.params)
	updated.History = append(updated.History, domain.ReviewRecord{
		T:     now.UnixMilli(),
		Grade: grade,
	})

	return updated, nil
}
