package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turfbook/models"
)

func TestCreateSlot(t *testing.T) {
	svc, _, _, _ := newTestService()

	slot, err := svc.CreateSlot(context.Background(), adminActor, "2026-03-01", 1080, 1140, 0)
	require.NoError(t, err)
	assert.Equal(t, models.SlotStatusFree, slot.Status)
	assert.NotEmpty(t, slot.ID)
	assert.Equal(t, 60, slot.Duration())
}

func TestCreateSlot_Guards(t *testing.T) {
	svc, _, _, _ := newTestService(freeSlot("s1", "2026-03-01", 1080, 1140))

	_, err := svc.CreateSlot(context.Background(), customerActor, "2026-03-01", 600, 660, 0)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.CreateSlot(context.Background(), adminActor, "2026-03-01", 660, 600, 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = svc.CreateSlot(context.Background(), adminActor, "01/03/2026", 600, 660, 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	// Overlapping the existing 1080-1140 slot.
	_, err = svc.CreateSlot(context.Background(), adminActor, "2026-03-01", 1110, 1170, 0)
	assert.ErrorIs(t, err, ErrSlotOverlap)
}

func TestDeploySlots(t *testing.T) {
	svc, _, _, _ := newTestService(freeSlot("s1", "2026-03-01", 600, 660))

	// 06:00-22:00 in 60-minute slots; the 10:00-11:00 window is taken.
	created, err := svc.DeploySlots(context.Background(), adminActor, "2026-03-01", 360, 1320, 60)
	require.NoError(t, err)
	assert.Len(t, created, 15)
	for _, s := range created {
		assert.Equal(t, models.SlotStatusFree, s.Status)
		assert.Equal(t, 60, s.Duration())
		assert.False(t, s.Start < 660 && s.End > 600, "deployed over the existing slot: %d-%d", s.Start, s.End)
	}
}

func TestDeleteSlot(t *testing.T) {
	svc, _, _, _ := newTestService(freeSlot("s1", "2026-03-01", 1080, 1140))

	require.NoError(t, svc.DeleteSlot(context.Background(), adminActor, "s1"))
	assert.ErrorIs(t, svc.DeleteSlot(context.Background(), adminActor, "s1"), ErrSlotNotFound)
}

func TestDeleteSlot_BlockedWhileClaimed(t *testing.T) {
	svc, slots, _, _ := newTestService(freeSlot("s1", "2026-03-01", 1080, 1140))
	claimTestSlot(t, svc)

	err := svc.DeleteSlot(context.Background(), adminActor, "s1")
	assert.ErrorIs(t, err, ErrSlotNotFree)
	assert.Equal(t, models.SlotStatusHold, slots.status("s1"))
}

func TestAssignStaff(t *testing.T) {
	svc, slots, _, _ := newTestService(freeSlot("s1", "2026-03-01", 1080, 1140))

	require.NoError(t, svc.AssignStaff(context.Background(), adminActor, "s1", "staff-7"))
	slot, err := slots.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "staff-7", slot.StaffID)

	assert.ErrorIs(t, svc.AssignStaff(context.Background(), adminActor, "missing", "staff-7"), ErrSlotNotFound)
	assert.ErrorIs(t, svc.AssignStaff(context.Background(), customerActor, "s1", "staff-7"), ErrPermissionDenied)
}

func TestListSlots(t *testing.T) {
	svc, _, _, _ := newTestService(
		freeSlot("s1", "2026-03-01", 1080, 1140),
		freeSlot("s2", "2026-03-01", 1140, 1200),
		freeSlot("s3", "2026-03-02", 1080, 1140),
	)

	slots, err := svc.ListSlots(context.Background(), "2026-03-01")
	require.NoError(t, err)
	assert.Len(t, slots, 2)

	all, err := svc.ListSlots(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListBookings(t *testing.T) {
	svc, _, _, _ := newTestService(freeSlot("s1", "2026-03-01", 1080, 1140))
	b := claimTestSlot(t, svc)

	_, err := svc.ListBookings(context.Background(), customerActor, models.BookingFilter{})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	bookings, err := svc.ListBookings(context.Background(), adminActor, models.BookingFilter{Date: "2026-03-01"})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, b.ID, bookings[0].ID)

	none, err := svc.ListBookings(context.Background(), adminActor, models.BookingFilter{Status: models.BookingStatusConfirmed})
	require.NoError(t, err)
	assert.Empty(t, none)
}
