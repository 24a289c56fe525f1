package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/shiftline/workforce/internal/onboard/domain"
	"github.com/shiftline/workforce/internal/onboard/store"
	"github.com/shiftline/workforce/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedInvite(t *testing.T, st *Store, expiresAt time.Time) domain.Invite {
	t.Helper()
	ctx := context.Background()

	inv := domain.Invite{
		ID:        idx.New().String(),
		Token:     uuid.NewString(),
		Email:     "worker@example.com",
		AccountID: idx.New().String(),
		ExpiresAt: expiresAt,
		FullName:  "Worker One",
		Role:      domain.RoleUser,
	}
	require.NoError(t, st.Invites().CreateInvite(ctx, inv))
	return inv
}

func TestInvitesRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	inv := seedInvite(t, st, time.Now().Add(24*time.Hour))

	got, err := st.Invites().GetInviteByToken(ctx, inv.Token)
	require.NoError(t, err)
	require.Equal(t, inv.Email, got.Email)
	require.Equal(t, domain.RoleUser, got.Role)
	require.False(t, got.Used)
	require.Nil(t, got.UsedAt)

	_, err = st.Invites().GetInviteByToken(ctx, uuid.NewString())
	require.ErrorIs(t, err, store.ErrNotFound)

	require.Error(t, st.Invites().CreateInvite(ctx, inv), "token is unique")
}

func TestConsumeInviteIsConditional(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	inv := seedInvite(t, st, time.Now().Add(24*time.Hour))
	usedAt := time.Now().UTC()

	won, err := st.Invites().ConsumeInvite(ctx, inv.Token, usedAt)
	require.NoError(t, err)
	require.True(t, won)

	// The second flip finds no unused row.
	won, err = st.Invites().ConsumeInvite(ctx, inv.Token, usedAt)
	require.NoError(t, err)
	require.False(t, won)

	got, err := st.Invites().GetInviteByToken(ctx, inv.Token)
	require.NoError(t, err)
	require.True(t, got.Used)
	require.NotNil(t, got.UsedAt)
}

func TestDeleteExpiredInvitesKeepsUsedOnes(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	expired := seedInvite(t, st, time.Now().Add(-time.Hour))

	usedExpired := domain.Invite{
		ID:        idx.New().String(),
		Token:     uuid.NewString(),
		Email:     "done@example.com",
		AccountID: idx.New().String(),
		ExpiresAt: time.Now().Add(-time.Hour),
		FullName:  "Done Worker",
		Role:      domain.RoleUser,
	}
	require.NoError(t, st.Invites().CreateInvite(ctx, usedExpired))
	won, err := st.Invites().ConsumeInvite(ctx, usedExpired.Token, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	require.True(t, won)

	live := domain.Invite{
		ID:        idx.New().String(),
		Token:     uuid.NewString(),
		Email:     "live@example.com",
		AccountID: idx.New().String(),
		ExpiresAt: time.Now().Add(time.Hour),
		FullName:  "Live Worker",
		Role:      domain.RoleUser,
	}
	require.NoError(t, st.Invites().CreateInvite(ctx, live))

	require.NoError(t, st.Invites().DeleteExpiredInvites(ctx))

	_, err = st.Invites().GetInviteByToken(ctx, expired.Token)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Consumed invites survive as an audit trail, live ones untouched.
	_, err = st.Invites().GetInviteByToken(ctx, usedExpired.Token)
	require.NoError(t, err)
	_, err = st.Invites().GetInviteByToken(ctx, live.Token)
	require.NoError(t, err)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	inv := seedInvite(t, st, time.Now().Add(24*time.Hour))

	boom := context.Canceled
	err := st.WithTx(ctx, func(tx store.Tx) error {
		won, err := tx.Invites().ConsumeInvite(ctx, inv.Token, time.Now())
		require.NoError(t, err)
		require.True(t, won)
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := st.Invites().GetInviteByToken(ctx, inv.Token)
	require.NoError(t, err)
	require.False(t, got.Used, "rolled back consume must not stick")
}
