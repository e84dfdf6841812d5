package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"turfbook/models"
)

// fakeSlotRepo is an in-memory SlotRepository honoring the conditional-update
// contract under a mutex, so the concurrency properties of the engine are
// exercised for real.
type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[string]*models.Slot
}

func newFakeSlotRepo(slots ...*models.Slot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: make(map[string]*models.Slot)}
	for _, s := range slots {
		cp := *s
		r.slots[cp.ID] = &cp
	}
	return r
}

func (r *fakeSlotRepo) Create(_ context.Context, slot *models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now().UTC()
	}
	cp := *slot
	r.slots[cp.ID] = &cp
	return nil
}

func (r *fakeSlotRepo) GetByID(_ context.Context, slotID string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSlotRepo) ListByDate(_ context.Context, date string) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Slot
	for _, s := range r.slots {
		if date == "" || s.Date == date {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) FindOverlapping(_ context.Context, date string, start, end int) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		if s.Date == date && s.Start < end && s.End > start {
			cp := *s
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeSlotRepo) UpdateStatus(_ context.Context, slotID string, from, to models.SlotStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok || s.Status != from {
		return mongo.ErrNoDocuments
	}
	s.Status = to
	return nil
}

func (r *fakeSlotRepo) SetStaff(_ context.Context, slotID, staffID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	s.StaffID = staffID
	return nil
}

func (r *fakeSlotRepo) DeleteFree(_ context.Context, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok || s.Status != models.SlotStatusFree {
		return mongo.ErrNoDocuments
	}
	delete(r.slots, slotID)
	return nil
}

func (r *fakeSlotRepo) status(slotID string) models.SlotStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.slots[slotID]; ok {
		return s.Status
	}
	return ""
}

// fakeBookingRepo is an in-memory BookingRepository with the same optimistic
// preconditions as the Mongo implementation. createErr and paymentErr inject
// failures for the rollback and best-effort paths.
type fakeBookingRepo struct {
	mu         sync.Mutex
	bookings   map[string]*models.Booking
	createErr  error
	paymentErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	cp := *b
	r.bookings[cp.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *b
	cp.History = append([]models.StatusChange(nil), b.History...)
	return &cp, nil
}

func (r *fakeBookingRepo) List(_ context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if filter.Date != "" && b.Date != filter.Date {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.PaymentStatus != "" && b.PaymentStatus != filter.PaymentStatus {
			continue
		}
		if filter.Phone != "" && b.CustomerPhone != filter.Phone {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, bookingID string, from, to models.BookingStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok || b.Status != from {
		return mongo.ErrNoDocuments
	}
	b.Status = to
	b.UpdatedAt = at
	b.History = append(b.History, models.StatusChange{Status: to, At: at})
	return nil
}

func (r *fakeBookingRepo) UpdatePayment(_ context.Context, bookingID string, allowedFrom []models.PaymentStatus, to models.PaymentStatus, ref string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.paymentErr != nil {
		return r.paymentErr
	}
	b, ok := r.bookings[bookingID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	allowed := false
	for _, s := range allowedFrom {
		if b.PaymentStatus == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return mongo.ErrNoDocuments
	}
	b.PaymentStatus = to
	if ref != "" {
		b.PaymentRef = ref
	}
	b.UpdatedAt = at
	return nil
}

func (r *fakeBookingRepo) SetCustomerName(_ context.Context, bookingID, name string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	b.CustomerName = name
	b.UpdatedAt = at
	return nil
}

// recordingNotifier captures dispatched events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []models.NotificationEvent
}

func (n *recordingNotifier) Notify(_ context.Context, event models.NotificationEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) all() []models.NotificationEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.NotificationEvent(nil), n.events...)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

// newTestService wires the engine onto fresh fakes.
func newTestService(slots ...*models.Slot) (*DefaultBookingService, *fakeSlotRepo, *fakeBookingRepo, *recordingNotifier) {
	slotRepo := newFakeSlotRepo(slots...)
	bookingRepo := newFakeBookingRepo()
	notifier := &recordingNotifier{}
	svc := &DefaultBookingService{
		SlotRepo:    slotRepo,
		BookingRepo: bookingRepo,
		Notifier:    notifier,
	}
	return svc, slotRepo, bookingRepo, notifier
}

func freeSlot(id, date string, start, end int) *models.Slot {
	return &models.Slot{
		ID:     id,
		Date:   date,
		Start:  start,
		End:    end,
		Status: models.SlotStatusFree,
	}
}

var (
	adminActor    = models.Actor{ID: "staff-1", Role: models.RoleAdmin}
	customerActor = models.Actor{ID: "cust-1", Role: models.RoleCustomer}
	agentActor    = models.Actor{ID: "agent-1", Role: models.RoleAIAgent}
)

func testCustomer() models.CustomerInfo {
	return models.CustomerInfo{Name: "Ravi", Phone: "9123456789"}
}
