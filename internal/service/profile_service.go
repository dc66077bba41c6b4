package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Harmony-cloud-01/mandarin-app/internal/domain"
	"github.com/Harmony-cloud-01/mandarin-app/internal/events"
	"github.com/Harmony-cloud-01/mandarin-app/internal/service/auth"
	"github.com/Harmony-cloud-01/mandarin-app/internal/store"
)

// legacyMigrationKeys lists the unscoped storage keys written before
// profiles existed. They are copied into a new profile's scope exactly
// once; already-populated scoped keys are never overwritten, so repeated
// migration runs are safe.
var legacyMigrationKeys = []string{
	store.KeyReviewItems,
	store.KeyActivityLog,
	store.KeyReminderConfig,
	store.KeySelectedDialects,
	store.KeyPlaybackRate,
	store.KeyPreferredVoice,
	store.KeyUILanguage,
}

// ProfileService maintains the profile registry and the current-profile
// pointer, both stored unscoped since they describe the set of profiles
// itself. Switching to a PIN-locked profile requires the matching PIN;
// a mismatch surfaces ErrIncorrectPIN and leaves the current profile
// untouched, with no retry limit.
type ProfileService struct {
	kv     store.KV
	bus    events.Publisher
	digest auth.Digest
	logger *slog.Logger
	now    func() time.Time

	// mu serializes registry read-modify-write cycles within this process.
	mu sync.Mutex
}

// Ensure ProfileService provides the scope every other service keys off.
var _ ProfileScope = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService.
func NewProfileService(
	kv store.KV,
	bus events.Publisher,
	digest auth.Digest,
	logger *slog.Logger,
) *ProfileService {
	if kv == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("kv cannot be nil for ProfileService")
	}

	if digest == nil {
		digest = auth.NewDigest()
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ProfileService{
		kv:     kv,
		bus:    bus,
		digest: digest,
		logger: logger.With(slog.String("component", "profile_service")),
		now:    time.Now,
	}
}

// LoadProfiles returns all known profiles in insertion order. Missing or
// corrupt registry data reads as an empty registry.
func (s *ProfileService) LoadProfiles(ctx context.Context) []domain.Profile {
	raw, err := s.kv.Get(ctx, store.KeyProfileList)
	if err != nil {
		return []domain.Profile{}
	}

	var profiles []domain.Profile
	if err := json.Unmarshal([]byte(raw), &profiles); err != nil {
		s.logger.Warn("corrupt profile registry, treating as empty", "error", err)
		return []domain.Profile{}
	}

	return profiles
}

// CurrentProfileID implements ProfileScope. It returns "" when no profile
// has been selected yet or the pointer cannot be read.
func (s *ProfileService) CurrentProfileID(ctx context.Context) string {
	id, err := s.kv.Get(ctx, store.KeyCurrentProfile)
	if err != nil {
		return ""
	}
	return id
}

// SetCurrentProfileID sets the current-profile pointer without validating
// that the id exists in the registry; SwitchProfile is the validated path.
func (s *ProfileService) SetCurrentProfileID(ctx context.Context, id string) {
	if err := s.kv.Set(ctx, store.KeyCurrentProfile, id); err != nil {
		s.logger.Warn("failed to persist current profile pointer", "error", err)
	}
}

// CurrentProfile returns the profile the current pointer references, or
// nil when no profile is selected or the pointer is dangling.
func (s *ProfileService) CurrentProfile(ctx context.Context) *domain.Profile {
	id := s.CurrentProfileID(ctx)
	if id == "" {
		return nil
	}
	return s.findProfile(ctx, id)
}

// CreateProfile creates a profile, makes it current, migrates any legacy
// unscoped data into its scope, and broadcasts the profile-changed signal.
//
// A PIN is honored only when it is exactly 4 digits; anything else creates
// the profile unlocked, matching the creation dialog's behavior.
func (s *ProfileService) CreateProfile(
	ctx context.Context,
	avatar domain.AvatarKey,
	name, pin string,
) (*domain.Profile, error) {
	profile, err := domain.NewProfile(avatar, name, s.now())
	if err != nil {
		return nil, err
	}

	pin = strings.TrimSpace(pin)
	if isFourDigitPIN(pin) {
		profile.PINHash = s.digest.Hash(pin, profile.ID)
	}

	s.mu.Lock()
	profiles := append(s.LoadProfiles(ctx), *profile)
	s.saveProfiles(ctx, profiles)
	s.mu.Unlock()

	s.SetCurrentProfileID(ctx, profile.ID)
	s.migrateLegacyData(ctx, profile.ID)
	s.publishProfileChanged(ctx, profile.ID)

	s.logger.Info("profile created",
		"profile_id", profile.ID,
		"avatar", string(profile.Avatar),
		"locked", profile.Locked())

	return profile, nil
}

// SwitchProfile makes the given profile current. Switching to the current
// profile is a no-op. Locked targets require the matching PIN: an absent
// PIN yields ErrPINRequired and a wrong one ErrIncorrectPIN, in both cases
// leaving the current profile unchanged.
func (s *ProfileService) SwitchProfile(ctx context.Context, id, pin string) (*domain.Profile, error) {
	if id == s.CurrentProfileID(ctx) {
		if p := s.findProfile(ctx, id); p != nil {
			return p, nil
		}
		return nil, ErrProfileNotFound
	}

	target := s.findProfile(ctx, id)
	if target == nil {
		return nil, ErrProfileNotFound
	}

	if target.Locked() {
		pin = strings.TrimSpace(pin)
		if pin == "" {
			return nil, ErrPINRequired
		}
		if s.digest.Hash(pin, target.ID) != target.PINHash {
			s.logger.Debug("PIN mismatch on profile switch", "profile_id", id)
			return nil, ErrIncorrectPIN
		}
	}

	now := s.now().UnixMilli()

	s.mu.Lock()
	profiles := s.LoadProfiles(ctx)
	for i := range profiles {
		if profiles[i].ID == id {
			profiles[i].LastActiveAt = now
			target = &profiles[i]
		}
	}
	s.saveProfiles(ctx, profiles)
	s.mu.Unlock()

	s.SetCurrentProfileID(ctx, id)
	s.publishProfileChanged(ctx, id)

	s.logger.Info("profile switched", "profile_id", id)

	return target.Clone(), nil
}

func (s *ProfileService) findProfile(ctx context.Context, id string) *domain.Profile {
	for _, p := range s.LoadProfiles(ctx) {
		if p.ID == id {
			return p.Clone()
		}
	}
	return nil
}

func (s *ProfileService) saveProfiles(ctx context.Context, profiles []domain.Profile) {
	data, err := json.Marshal(profiles)
	if err != nil {
		s.logger.Error("failed to marshal profile registry", "error", err)
		return
	}

	if err := s.kv.Set(ctx, store.KeyProfileList, string(data)); err != nil {
		s.logger.Warn("failed to persist profile registry", "error", err)
	}
}

// migrateLegacyData copies pre-profile unscoped values into the profile's
// scope. Only keys that exist unscoped and are absent in the scope are
// copied, so the migration is idempotent.
func (s *ProfileService) migrateLegacyData(ctx context.Context, profileID string) {
	for _, base := range legacyMigrationKeys {
		legacy, err := s.kv.Get(ctx, base)
		if err != nil {
			continue
		}

		scoped := store.ScopedKey(base, profileID)
		if _, err := s.kv.Get(ctx, scoped); err == nil {
			continue
		}

		if err := s.kv.Set(ctx, scoped, legacy); err != nil {
			s.logger.Warn("failed to migrate legacy key", "error", err, "key", base)
		}
	}
}

func (s *ProfileService) publishProfileChanged(ctx context.Context, profileID string) {
	if s.bus == nil {
		return
	}

	sig, err := events.NewSignal(events.SignalProfileChanged, map[string]string{"profileId": profileID})
	if err != nil {
		s.logger.Error("failed to build profile-changed signal", "error", err)
		return
	}

	if err := s.bus.Publish(ctx, sig); err != nil {
		s.logger.Warn("profile-changed handler failed", "error", err)
	}
}

// isFourDigitPIN reports whether pin is exactly four ASCII digits.
func isFourDigitPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
