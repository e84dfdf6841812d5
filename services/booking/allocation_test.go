package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turfbook/models"
)

func TestClaimSlot(t *testing.T) {
	svc, slots, _, _ := newTestService(freeSlot("s1", "2026-03-01", 1080, 1140))

	b, err := svc.ClaimSlot(context.Background(), customerActor, ClaimInput{
		SlotID:   "s1",
		Customer: testCustomer(),
		Amount:   500,
	})

	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, models.PaymentStatusPending, b.PaymentStatus)
	assert.Equal(t, "s1", b.SlotID)
	assert.Equal(t, "2026-03-01", b.Date)
	assert.Equal(t, 1080, b.Start)
	assert.Equal(t, 1140, b.End)
	assert.Equal(t, models.CreatorCustomer, b.CreatedBy)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, models.SlotStatusHold, slots.status("s1"))
}

func TestClaimSlot_SecondClaimLoses(t *testing.T) {
	svc, _, _, _ := newTestService(freeSlot("s1", "2026-03-01", 1080, 1140))

	_, err := svc.ClaimSlot(context.Background(), customerActor, ClaimInput{
		SlotID: "s1", Customer: testCustomer(), Amount: 500,
	})
	require.NoError(t, err)

	_, err = svc.ClaimSlot(context.Background(), customerActor, ClaimInput{
		SlotID: "s1", Customer: models.CustomerInfo{Name: "Anita", Phone: "9876543210"}, Amount: 500,
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestClaimSlot_ConcurrentClaimsOneWinner(t *testing.T) {
	svc, slots, _, _ := newTestService(freeSlot("s1", "2026-03-01", 1080, 1140))

	const n = 25
	var wg sync.WaitGroup
	results := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ClaimSlot(context.Background(), customerActor, ClaimInput{
				SlotID: "s1", Customer: testCustomer(), Amount: 500,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotUnavailable):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, losses)
	assert.NotEqual(t, models.SlotStatusFree, slots.status("s1"))
}

func TestClaimSlot_RollbackOnBookingFailure(t *testing.T) {
	svc, slots, bookings, _ := newTestService(freeSlot("s1", "2026-03-01", 1080, 1140))
	bookings.createErr = errors.New("insert blew up")

	_, err := svc.ClaimSlot(context.Background(), customerActor, ClaimInput{
		SlotID: "s1", Customer: testCustomer(), Amount: 500,
	})

	assert.ErrorIs(t, err, ErrBookingCreationFailed)
	assert.Equal(t, models.SlotStatusFree, slots.status("s1"))
}

func TestClaimSlot_Validation(t *testing.T) {
	tests := []struct {
		name     string
		customer models.CustomerInfo
		amount   int
		wantErr  error
	}{
		{"empty name", models.CustomerInfo{Name: "  ", Phone: "9123456789"}, 500, ErrValidation},
		{"short phone", models.CustomerInfo{Name: "Ravi", Phone: "12345"}, 500, ErrValidation},
		{"non-numeric phone", models.CustomerInfo{Name: "Ravi", Phone: "91234abcde"}, 500, ErrValidation},
		{"amount below floor", models.CustomerInfo{Name: "Ravi", Phone: "9123456789"}, 100, ErrValidation},
		{"amount mismatch", models.CustomerInfo{Name: "Ravi", Phone: "9123456789"}, 450, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, slots, _, _ := newTestService(freeSlot("s1", "2026-03-01", 1080, 1140))
			_, err := svc.ClaimSlot(context.Background(), customerActor, ClaimInput{
				SlotID: "s1", Customer: tt.customer, Amount: tt.amount,
			})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, models.SlotStatusFree, slots.status("s1"))
		})
	}
}

func TestClaimSlot_TrustedAmountAccepted(t *testing.T) {
	// Staff tooling supplies pre-computed amounts; anything above the floor
	// is accepted without re-quoting.
	svc, _, _, _ := newTestService(freeSlot("s1", "2026-03-01", 1080, 1140))

	b, err := svc.ClaimSlot(context.Background(), agentActor, ClaimInput{
		SlotID: "s1", Customer: testCustomer(), Amount: 450,
	})

	require.NoError(t, err)
	assert.Equal(t, 450, b.Amount)
	assert.Equal(t, models.CreatorAIAgent, b.CreatedBy)
}

func TestClaimSlot_SlotNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.ClaimSlot(context.Background(), customerActor, ClaimInput{
		SlotID: "missing", Customer: testCustomer(), Amount: 500,
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestClaimSlot_CustomBooking(t *testing.T) {
	svc, _, _, _ := newTestService()

	b, err := svc.ClaimSlot(context.Background(), customerActor, ClaimInput{
		Date:     "2026-03-05",
		Start:    600,
		End:      690,
		Customer: testCustomer(),
		Amount:   QuoteWindow(90),
	})

	require.NoError(t, err)
	assert.Empty(t, b.SlotID)
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, "2026-03-05", b.Date)
}

func TestClaimSlot_CustomBookingBadWindow(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.ClaimSlot(context.Background(), customerActor, ClaimInput{
		Date: "2026-03-05", Start: 690, End: 600,
		Customer: testCustomer(), Amount: 500,
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = svc.ClaimSlot(context.Background(), customerActor, ClaimInput{
		Date: "not-a-date", Start: 600, End: 690,
		Customer: testCustomer(), Amount: 500,
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}
