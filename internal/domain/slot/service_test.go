package slot_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brookfield/admissions/internal/auth"
	"github.com/brookfield/admissions/internal/domain/application"
	"github.com/brookfield/admissions/internal/domain/slot"
	"github.com/brookfield/admissions/internal/repository"
	"github.com/brookfield/admissions/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var staff = auth.Principal{AccountID: "staff1", Email: "staff@school.example", Admin: true}

func TestSlotService_Create(t *testing.T) {
	ctx := context.Background()

	slots := &mocks.SlotRepository{}
	slots.On("Create", ctx, mock.Anything).Return(nil)

	svc := slot.NewService(slots, nil, nil, nil, nil)
	created, err := svc.Create(ctx, staff, slot.CreateRequest{
		Date:      "2026-02-10",
		StartTime: "09:00",
		EndTime:   "09:30",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.IsBooked)
	require.Equal(t, "2026-02-10", created.Date)
}

func TestSlotService_Create_RequiresStaff(t *testing.T) {
	svc := slot.NewService(&mocks.SlotRepository{}, nil, nil, nil, nil)
	_, err := svc.Create(context.Background(), auth.Principal{AccountID: "fam1"}, slot.CreateRequest{
		Date:      "2026-02-10",
		StartTime: "09:00",
		EndTime:   "09:30",
	})
	require.ErrorIs(t, err, auth.ErrForbidden)
}

func TestSlotService_Create_InvalidWindow(t *testing.T) {
	svc := slot.NewService(&mocks.SlotRepository{}, nil, nil, nil, nil)

	cases := []slot.CreateRequest{
		{Date: "02/10/2026", StartTime: "09:00", EndTime: "09:30"},
		{Date: "2026-02-10", StartTime: "9am", EndTime: "09:30"},
		{Date: "2026-02-10", StartTime: "09:30", EndTime: "09:00"},
		{Date: "2026-02-10", StartTime: "09:00", EndTime: "09:00"},
	}
	for _, req := range cases {
		_, err := svc.Create(context.Background(), staff, req)
		require.ErrorIs(t, err, slot.ErrInvalidInput)
	}
}

func TestSlotService_Delete_BookedSlotFails(t *testing.T) {
	ctx := context.Background()

	slots := &mocks.SlotRepository{}
	slots.On("Delete", ctx, "s1").Return(repository.ErrConflict)

	svc := slot.NewService(slots, nil, nil, nil, nil)
	err := svc.Delete(ctx, staff, "s1")
	require.ErrorIs(t, err, slot.ErrSlotBooked)
}

func TestSlotService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()

	slots := &mocks.SlotRepository{}
	slots.On("Delete", ctx, "missing").Return(repository.ErrNotFound)

	svc := slot.NewService(slots, nil, nil, nil, nil)
	err := svc.Delete(ctx, staff, "missing")
	require.ErrorIs(t, err, slot.ErrSlotNotFound)
}

func TestSlotService_ListForStaff_ResolvesChildName(t *testing.T) {
	ctx := context.Background()
	appID := "a1"

	slots := &mocks.SlotRepository{}
	apps := &mocks.ApplicationRepository{}

	slots.On("List", ctx, slot.ListOptions{}).Return([]slot.Slot{
		{ID: "s1", Date: "2026-02-10", StartTime: "09:00", EndTime: "09:30"},
		{ID: "s2", Date: "2026-02-10", StartTime: "10:00", EndTime: "10:30", IsBooked: true, ApplicationID: &appID},
	}, nil)
	apps.On("Get", ctx, appID).Return(&application.Application{
		ID:        appID,
		ChildName: "Ada Lovelace",
	}, nil)

	svc := slot.NewService(slots, apps, nil, nil, nil)
	views, err := svc.ListForStaff(ctx, staff, slot.ListOptions{})
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Nil(t, views[0].ChildName)
	require.NotNil(t, views[1].ChildName)
	require.Equal(t, "Ada Lovelace", *views[1].ChildName)
}

func TestSlotService_ListAvailability_HidesBackReference(t *testing.T) {
	ctx := context.Background()
	appID := "a1"

	slots := &mocks.SlotRepository{}
	slots.On("List", ctx, slot.ListOptions{}).Return([]slot.Slot{
		{ID: "s1", Date: "2026-02-10", StartTime: "09:00", EndTime: "09:30", IsBooked: true, ApplicationID: &appID},
	}, nil)

	svc := slot.NewService(slots, nil, nil, nil, nil)
	views, err := svc.ListAvailability(ctx, slot.ListOptions{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.True(t, views[0].IsBooked)
}

func TestSlotService_Release(t *testing.T) {
	ctx := context.Background()
	appID := "a1"

	slots := &mocks.SlotRepository{}
	transitions := &mocks.Transitioner{}

	slots.On("Get", ctx, "s1").Return(&slot.Slot{
		ID:            "s1",
		Date:          "2026-02-10",
		StartTime:     "09:00",
		EndTime:       "09:30",
		IsBooked:      true,
		ApplicationID: &appID,
	}, nil)
	slots.On("Release", ctx, "s1").Return(nil)
	transitions.On("SetStatus", ctx, mock.MatchedBy(func(p auth.Principal) bool {
		return p.IsSystem()
	}), appID, mock.MatchedBy(func(upd application.StatusUpdate) bool {
		return upd.ClearInterview && upd.Status != nil && *upd.Status == application.StatusInterviewPending
	})).Return(&application.Application{ID: appID}, nil)

	svc := slot.NewService(slots, nil, transitions, nil, nil)
	require.NoError(t, svc.Release(ctx, staff, "s1"))
	transitions.AssertExpectations(t)
}

func TestSlotService_Release_NotBooked(t *testing.T) {
	ctx := context.Background()

	slots := &mocks.SlotRepository{}
	slots.On("Get", ctx, "s1").Return(&slot.Slot{ID: "s1"}, nil)

	svc := slot.NewService(slots, nil, nil, nil, nil)
	err := svc.Release(ctx, staff, "s1")
	require.ErrorIs(t, err, slot.ErrSlotNotBooked)
}

func TestSlotService_Release_ReclaimsOnTransitionFailure(t *testing.T) {
	ctx := context.Background()
	appID := "a1"

	slots := &mocks.SlotRepository{}
	transitions := &mocks.Transitioner{}

	slots.On("Get", ctx, "s1").Return(&slot.Slot{
		ID:            "s1",
		IsBooked:      true,
		ApplicationID: &appID,
	}, nil)
	slots.On("Release", ctx, "s1").Return(nil)
	slots.On("Claim", ctx, "s1", appID).Return(nil)
	transitions.On("SetStatus", ctx, mock.Anything, appID, mock.Anything).
		Return(nil, errors.New("db down"))

	svc := slot.NewService(slots, nil, transitions, nil, nil)
	err := svc.Release(ctx, staff, "s1")
	require.Error(t, err)
	slots.AssertCalled(t, "Claim", ctx, "s1", appID)
}
