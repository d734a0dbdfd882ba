package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-group-fitness/internal/models"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
	"github.com/stretchr/testify/require"
)

func newEvent(createdBy uuid.UUID, name string) *models.GroupEvent {
	return &models.GroupEvent{
		Name:      name,
		SportType: "ride",
		StartAt:   time.Now().Add(24 * time.Hour).UTC(),
		Access:    models.AccessPublic,
		EventType: "casual",
		Distance:  40,
		CreatedBy: createdBy,
	}
}

func TestIntegration_Events_CreateRequiresProfile(t *testing.T) {
	st := startPostgres(t)

	ctx := context.Background()
	u := newUser(t, st, "noprofile@example.com")

	_, err := st.CreateEvent(ctx, newEvent(u.ID, "Morning ride"))
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_Events_CRUD_And_Ownership(t *testing.T) {
	st := startPostgres(t)

	ctx := context.Background()
	owner := newUser(t, st, "owner@example.com")
	other := newUser(t, st, "other@example.com")
	for _, u := range []*models.User{owner, other} {
		_, _, err := st.EnsureProfile(ctx, u.ID, u.Email)
		require.NoError(t, err)
	}

	first, err := st.CreateEvent(ctx, newEvent(owner.ID, "First"))
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := st.CreateEvent(ctx, newEvent(owner.ID, "Second"))
	require.NoError(t, err)

	list, err := st.ListEvents(ctx, storage.EventFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID, "новые первыми")

	limited, err := st.ListEvents(ctx, storage.EventFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, first.ID, limited[0].ID)

	none, err := st.ListEvents(ctx, storage.EventFilter{SportType: "run"})
	require.NoError(t, err)
	require.Empty(t, none)

	_, err = st.UpdateEvent(ctx, first.ID, other.ID, storage.EventUpdate{Name: ptr("Hijack")})
	require.ErrorIs(t, err, storage.ErrNotFound)

	upd, err := st.UpdateEvent(ctx, first.ID, owner.ID, storage.EventUpdate{Name: ptr("Renamed"), Distance: ptr(int32(60))})
	require.NoError(t, err)
	require.Equal(t, "Renamed", upd.Name)
	require.EqualValues(t, 60, upd.Distance)

	require.ErrorIs(t, st.DeleteEvent(ctx, first.ID, other.ID), storage.ErrNotFound)
	require.NoError(t, st.DeleteEvent(ctx, first.ID, owner.ID))

	_, err = st.EventByID(ctx, first.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}
