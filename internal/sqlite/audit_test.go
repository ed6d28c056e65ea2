package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/brookfield/admissions/internal/domain/audit"
	"github.com/stretchr/testify/require"
)

func TestAuditRepository_LogAndList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewAuditRepository(db)

	appID := "app1"
	slotID := "slot1"
	entries := []audit.Entry{
		{EventType: audit.TypeApplicationSubmitted, ApplicationID: &appID, Actor: "family@example.com", Summary: "application submitted"},
		{EventType: audit.TypeSlotBooked, ApplicationID: &appID, SlotID: &slotID, Actor: "family@example.com", Summary: "slot booked"},
		{EventType: audit.TypeStatusChanged, ApplicationID: &appID, Actor: "admin@example.com", Summary: "status changed to admitted"},
	}
	for i := range entries {
		entries[i].CreatedAt = time.Now()
		require.NoError(t, repo.Log(ctx, &entries[i]))
	}

	got, err := repo.List(ctx, audit.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first.
	require.Equal(t, audit.TypeStatusChanged, got[0].EventType)
	require.Equal(t, audit.TypeApplicationSubmitted, got[2].EventType)
	require.NotNil(t, got[1].SlotID)
	require.Equal(t, "slot1", *got[1].SlotID)
}

func TestAuditRepository_List_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewAuditRepository(db)

	appA := "app-a"
	appB := "app-b"
	slotID := "slot1"
	eventType := audit.TypeSlotBooked

	require.NoError(t, repo.Log(ctx, &audit.Entry{EventType: audit.TypeApplicationSubmitted, ApplicationID: &appA, Actor: "a", Summary: "submitted", CreatedAt: time.Now()}))
	require.NoError(t, repo.Log(ctx, &audit.Entry{EventType: audit.TypeSlotBooked, ApplicationID: &appA, SlotID: &slotID, Actor: "a", Summary: "booked", CreatedAt: time.Now()}))
	require.NoError(t, repo.Log(ctx, &audit.Entry{EventType: audit.TypeApplicationSubmitted, ApplicationID: &appB, Actor: "b", Summary: "submitted", CreatedAt: time.Now()}))

	byApp, err := repo.List(ctx, audit.ListOptions{ApplicationID: &appA})
	require.NoError(t, err)
	require.Len(t, byApp, 2)

	byType, err := repo.List(ctx, audit.ListOptions{EventType: &eventType})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	require.Equal(t, "booked", byType[0].Summary)

	bySlot, err := repo.List(ctx, audit.ListOptions{SlotID: &slotID})
	require.NoError(t, err)
	require.Len(t, bySlot, 1)
}

func TestAuditRepository_List_Pagination(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewAuditRepository(db)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Log(ctx, &audit.Entry{
			EventType: audit.TypeSlotCreated,
			Actor:     "admin@example.com",
			Summary:   "slot created",
			CreatedAt: time.Now(),
		}))
	}

	page, err := repo.List(ctx, audit.ListOptions{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, int64(3), page[0].ID)
	require.Equal(t, int64(2), page[1].ID)
}
