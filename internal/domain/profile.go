package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile-specific validation errors
var (
	// ErrProfileIDEmpty is returned when a profile ID is empty.
	ErrProfileIDEmpty = errors.New("profile ID cannot be empty")

	// ErrProfileNameEmpty is returned when a profile name is empty.
	ErrProfileNameEmpty = errors.New("profile name cannot be empty")
)

// AvatarKey identifies one of the fixed avatar variants a learner can pick.
type AvatarKey string

// Known avatar variants.
const (
	AvatarMale   AvatarKey = "male"
	AvatarFemale AvatarKey = "female"
	AvatarChild  AvatarKey = "child"
)

// IsValidAvatar reports whether the given avatar is a known variant.
func IsValidAvatar(a AvatarKey) bool {
	switch a {
	case AvatarMale, AvatarFemale, AvatarChild:
		return true
	default:
		return false
	}
}

// Profile represents a learner identity. All learning data (review items,
// activity log, preferences) is partitioned per profile through scoped
// storage keys, so switching profiles swaps the whole visible state.
//
// Timestamps are milliseconds since the Unix epoch to match the persisted
// JSON layout shared with the web client.
type Profile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Avatar       AvatarKey `json:"avatar"`
	CreatedAt    int64     `json:"createdAt"`
	LastActiveAt int64     `json:"lastActiveAt"`

	// PINHash is the lowercase hex digest of "pin:profileID", or empty
	// when the profile is unlocked.
	PINHash string `json:"pinHash,omitempty"`
}

// NewProfile creates a new Profile with a generated ID and the given avatar.
// An empty name falls back to a default derived from the avatar. The PIN
// hash, if any, is set separately by the profile service after hashing.
func NewProfile(avatar AvatarKey, name string, now time.Time) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultNameForAvatar(avatar)
	}

	p := &Profile{
		ID:           uuid.New().String(),
		Name:         name,
		Avatar:       avatar,
		CreatedAt:    now.UnixMilli(),
		LastActiveAt: now.UnixMilli(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// DefaultNameForAvatar returns the display name used when a learner does
// not type one during profile creation.
func DefaultNameForAvatar(a AvatarKey) string {
	switch a {
	case AvatarMale:
		return "Ming"
	case AvatarFemale:
		return "Mei"
	case AvatarChild:
		return "Xiao Long"
	default:
		return "Learner"
	}
}

// Validate checks if the Profile has valid data.
// Returns an error if any field fails validation.
func (p *Profile) Validate() error {
	if p.ID == "" {
		return ErrProfileIDEmpty
	}

	if strings.TrimSpace(p.Name) == "" {
		return ErrProfileNameEmpty
	}

	if !IsValidAvatar(p.Avatar) {
		return ErrInvalidAvatar
	}

	return nil
}

// Locked reports whether switching to this profile requires a PIN.
func (p *Profile) Locked() bool {
	return p.PINHash != ""
}

// Clone returns a copy of the profile.
func (p *Profile) Clone() *Profile {
	cp := *p
	return &cp
}
