package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harmony-cloud-01/mandarin-app/internal/domain"
	"github.com/Harmony-cloud-01/mandarin-app/internal/events"
	"github.com/Harmony-cloud-01/mandarin-app/internal/store"
)

func newTestProfileService(kv store.KV, bus events.Publisher) *ProfileService {
	svc := NewProfileService(kv, bus, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateProfileBecomesCurrent(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	kv := store.NewInMemoryKV()
	svc := newTestProfileService(kv, nil)

	p, err := svc.CreateProfile(ctx, domain.AvatarFemale, "Mei", "")
	require.NoError(t, err, "Failed to create profile")

	assert.Equal(t, p.ID, svc.CurrentProfileID(ctx))
	assert.False(t, p.Locked())

	current := svc.CurrentProfile(ctx)
	require.NotNil(t, current)
	assert.Equal(t, p.ID, current.ID)

	profiles := svc.LoadProfiles(ctx)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Mei", profiles[0].Name)
}

func TestCreateProfilePINRules(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name       string
		pin        string
		wantLocked bool
	}{
		{name: "four digits locks", pin: "1234", wantLocked: true},
		{name: "empty pin stays unlocked", pin: "", wantLocked: false},
		{name: "three digits ignored", pin: "123", wantLocked: false},
		{name: "five digits ignored", pin: "12345", wantLocked: false},
		{name: "letters ignored", pin: "abcd", wantLocked: false},
		{name: "whitespace around pin trimmed", pin: " 1234 ", wantLocked: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			svc := newTestProfileService(store.NewInMemoryKV(), nil)

			p, err := svc.CreateProfile(ctx, domain.AvatarChild, "", tc.pin)
			require.NoError(t, err)
			assert.Equal(t, tc.wantLocked, p.Locked())
		})
	}
}

func TestSwitchProfile(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	svc := newTestProfileService(store.NewInMemoryKV(), nil)

	first, err := svc.CreateProfile(ctx, domain.AvatarMale, "Ming", "")
	require.NoError(t, err)
	second, err := svc.CreateProfile(ctx, domain.AvatarFemale, "Mei", "")
	require.NoError(t, err)

	// Creation makes the newest profile current.
	assert.Equal(t, second.ID, svc.CurrentProfileID(ctx))

	switched, err := svc.SwitchProfile(ctx, first.ID, "")
	require.NoError(t, err, "Failed to switch to unlocked profile")
	assert.Equal(t, first.ID, switched.ID)
	assert.Equal(t, first.ID, svc.CurrentProfileID(ctx))
}

func TestSwitchProfileUnknownID(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	svc := newTestProfileService(store.NewInMemoryKV(), nil)

	_, err := svc.CreateProfile(ctx, domain.AvatarMale, "Ming", "")
	require.NoError(t, err)

	_, err = svc.SwitchProfile(ctx, "no-such-profile", "")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestSwitchProfilePINEnforcement(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	svc := newTestProfileService(store.NewInMemoryKV(), nil)

	locked, err := svc.CreateProfile(ctx, domain.AvatarFemale, "Mei", "1234")
	require.NoError(t, err)
	open, err := svc.CreateProfile(ctx, domain.AvatarMale, "Ming", "")
	require.NoError(t, err)

	// No PIN offered.
	_, err = svc.SwitchProfile(ctx, locked.ID, "")
	assert.ErrorIs(t, err, ErrPINRequired)
	assert.Equal(t, open.ID, svc.CurrentProfileID(ctx), "failed switch must not change the current profile")

	// Wrong PIN.
	_, err = svc.SwitchProfile(ctx, locked.ID, "0000")
	assert.ErrorIs(t, err, ErrIncorrectPIN)
	assert.Equal(t, open.ID, svc.CurrentProfileID(ctx))

	// Correct PIN.
	switched, err := svc.SwitchProfile(ctx, locked.ID, "1234")
	require.NoError(t, err, "Correct PIN must unlock the switch")
	assert.Equal(t, locked.ID, switched.ID)
	assert.Equal(t, locked.ID, svc.CurrentProfileID(ctx))
}

func TestSwitchToCurrentProfileIsNoOp(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	bus := events.NewInMemoryBus(nil)
	svc := newTestProfileService(store.NewInMemoryKV(), bus)

	p, err := svc.CreateProfile(ctx, domain.AvatarMale, "Ming", "")
	require.NoError(t, err)

	var signals int
	bus.Subscribe(events.HandlerFunc(func(ctx context.Context, sig *events.Signal) error {
		signals++
		return nil
	}), events.SignalProfileChanged)

	// Even a locked profile switches to itself without a PIN prompt.
	got, err := svc.SwitchProfile(ctx, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Zero(t, signals, "a no-op switch must not broadcast profile.changed")
}

func TestSwitchProfileUpdatesLastActive(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	svc := newTestProfileService(store.NewInMemoryKV(), nil)

	first, err := svc.CreateProfile(ctx, domain.AvatarMale, "Ming", "")
	require.NoError(t, err)
	_, err = svc.CreateProfile(ctx, domain.AvatarFemale, "Mei", "")
	require.NoError(t, err)

	later := time.Date(2026, 3, 12, 20, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return later }

	switched, err := svc.SwitchProfile(ctx, first.ID, "")
	require.NoError(t, err)
	assert.Equal(t, later.UnixMilli(), switched.LastActiveAt)

	// The update is persisted in the registry, not just the return value.
	stored := svc.LoadProfiles(ctx)
	assert.Equal(t, later.UnixMilli(), stored[0].LastActiveAt)
}

func TestCreateProfileMigratesLegacyData(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	kv := store.NewInMemoryKV()
	svc := newTestProfileService(kv, nil)

	// Pre-profile data lives under unscoped keys.
	require.NoError(t, kv.Set(ctx, store.KeyReviewItems, `{"word:一":{}}`))
	require.NoError(t, kv.Set(ctx, store.KeyUILanguage, "zh"))

	p, err := svc.CreateProfile(ctx, domain.AvatarMale, "Ming", "")
	require.NoError(t, err)

	migrated, err := kv.Get(ctx, store.ScopedKey(store.KeyReviewItems, p.ID))
	require.NoError(t, err, "legacy review items must be copied into the profile scope")
	assert.Equal(t, `{"word:一":{}}`, migrated)

	lang, err := kv.Get(ctx, store.ScopedKey(store.KeyUILanguage, p.ID))
	require.NoError(t, err)
	assert.Equal(t, "zh", lang)

	// The unscoped originals stay readable for older clients.
	legacy, err := kv.Get(ctx, store.KeyReviewItems)
	require.NoError(t, err)
	assert.Equal(t, `{"word:一":{}}`, legacy)
}

func TestMigrationDoesNotOverwriteScopedData(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	kv := store.NewInMemoryKV()
	svc := newTestProfileService(kv, nil)

	p, err := svc.CreateProfile(ctx, domain.AvatarMale, "Ming", "")
	require.NoError(t, err)

	scoped := store.ScopedKey(store.KeyUILanguage, p.ID)
	require.NoError(t, kv.Set(ctx, scoped, "en"))
	require.NoError(t, kv.Set(ctx, store.KeyUILanguage, "zh"))

	// A second migration pass must leave existing scoped values alone.
	svc.migrateLegacyData(ctx, p.ID)

	v, err := kv.Get(ctx, scoped)
	require.NoError(t, err)
	assert.Equal(t, "en", v)
}

func TestCreateProfileBroadcastsChange(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	bus := events.NewInMemoryBus(nil)
	svc := newTestProfileService(store.NewInMemoryKV(), bus)

	var gotProfileID string
	bus.Subscribe(events.HandlerFunc(func(ctx context.Context, sig *events.Signal) error {
		var payload struct {
			ProfileID string `json:"profileId"`
		}
		if err := sig.UnmarshalPayload(&payload); err != nil {
			return err
		}
		gotProfileID = payload.ProfileID
		return nil
	}), events.SignalProfileChanged)

	p, err := svc.CreateProfile(ctx, domain.AvatarChild, "", "")
	require.NoError(t, err)
	assert.Equal(t, p.ID, gotProfileID)
}

func TestCurrentProfileWithoutSelection(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	svc := newTestProfileService(store.NewInMemoryKV(), nil)

	assert.Empty(t, svc.CurrentProfileID(ctx))
	assert.Nil(t, svc.CurrentProfile(ctx))
	assert.Empty(t, svc.LoadProfiles(ctx))
}
