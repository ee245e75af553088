package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"courtside/internal/db"
	"courtside/internal/entities"
	apperrors "courtside/internal/errors"
)

type fakeCourtStore struct {
	courts map[int]*db.Court
}

func (f *fakeCourtStore) GetByID(id int) (*db.Court, error) {
	c, ok := f.courts[id]
	if !ok {
		return nil, fmt.Errorf("court %d: %w", id, apperrors.ErrCourtNotFound)
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCourtStore) List() ([]db.Court, error) {
	var out []db.Court
	for _, c := range f.courts {
		out = append(out, *c)
	}
	return out, nil
}

// fakeBookingStore enforces the same partial-uniqueness guarantee as the
// bookings_slot_once index: at most one non-cancelled row per
// (court, date, start).
type fakeBookingStore struct {
	mu       sync.Mutex
	nextID   int
	bookings []*db.Booking
}

func (f *fakeBookingStore) Create(b *db.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.bookings {
		if existing.Status != StatusCancelled &&
			existing.CourtID == b.CourtID &&
			existing.Date.Equal(b.Date) &&
			existing.StartTime == b.StartTime {
			return fmt.Errorf("court %d on %s at %s: %w",
				b.CourtID, b.Date.Format("2006-01-02"), b.StartTime, apperrors.ErrSlotTaken)
		}
	}
	f.nextID++
	b.ID = f.nextID
	copied := *b
	f.bookings = append(f.bookings, &copied)
	return nil
}

func (f *fakeBookingStore) ListForCourtAndDate(courtID int, date time.Time) ([]db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Booking
	for _, b := range f.bookings {
		if b.CourtID == courtID && b.Date.Equal(date) && b.Status != StatusCancelled {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) GetByCode(code, email string) (*db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.Code == code && b.PlayerEmail == email {
			copied := *b
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("booking %s: %w", code, apperrors.ErrBookingNotFound)
}

func (f *fakeBookingStore) GetByCodeOnly(code string) (*db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.Code == code {
			copied := *b
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("booking %s: %w", code, apperrors.ErrBookingNotFound)
}

func (f *fakeBookingStore) GetByStripeSessionID(sessionID string) (*db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.StripeSessionID == sessionID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrBookingNotFound)
}

func (f *fakeBookingStore) Cancel(code string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.Code == code {
			b.Status = StatusCancelled
			return b.Status, nil
		}
	}
	return "", fmt.Errorf("booking %s: %w", code, apperrors.ErrBookingNotFound)
}

func (f *fakeBookingStore) UpdateStatusAndPaymentBySessionID(sessionID, status, paymentStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.StripeSessionID == sessionID {
			b.Status = status
			b.PaymentStatus = paymentStatus
			return nil
		}
	}
	return fmt.Errorf("session %s: %w", sessionID, apperrors.ErrBookingNotFound)
}

type fakePayments struct {
	sessions int
	refunds  []string
}

func (f *fakePayments) CreateCheckoutSession(amountCents int64, currency, code, customerEmail string) (string, string, error) {
	f.sessions++
	sessionID := fmt.Sprintf("cs_test_%d", f.sessions)
	return "https://checkout.example/" + sessionID, sessionID, nil
}

func (f *fakePayments) RefundBySessionID(sessionID string) error {
	f.refunds = append(f.refunds, sessionID)
	return nil
}

func newTestService() (*BookingService, *fakeBookingStore, *fakePayments) {
	courts := &fakeCourtStore{courts: map[int]*db.Court{
		1: {ID: 1, Name: "Court 1", Surface: "outdoor", HourlyRateCents: 2500, CleaningBufferMinutes: 0, Timezone: "UTC", Active: true},
		2: {ID: 2, Name: "Court 2", Surface: "indoor", HourlyRateCents: 3500, CleaningBufferMinutes: 30, Timezone: "UTC", Active: true},
		3: {ID: 3, Name: "Closed Court", HourlyRateCents: 2500, Timezone: "UTC", Active: false},
	}}
	bookings := &fakeBookingStore{}
	payments := &fakePayments{}
	svc := NewBookingService(bookings, courts, payments, nil)
	svc.Now = func() time.Time {
		return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, bookings, payments
}

func cashRequest(courtID int, date, label string) *entities.BookingRequest {
	return &entities.BookingRequest{
		CourtID:       courtID,
		Date:          date,
		Slot:          label,
		PlayerName:    "Dana Mills",
		PlayerEmail:   "dana@example.com",
		PlayerPhone:   "+15550100",
		PaymentMethod: MethodCash,
	}
}

func TestCreateBooking_CashDefaults(t *testing.T) {
	svc, _, _ := newTestService()

	res, err := svc.CreateBooking(cashRequest(1, "2026-03-14", "09:00 AM"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != StatusPending {
		t.Fatalf("expected status %q, got %q", StatusPending, res.Status)
	}
	if res.PaymentStatus != PaymentUnpaid {
		t.Fatalf("expected payment status %q, got %q", PaymentUnpaid, res.PaymentStatus)
	}
	if res.StartTime != "09:00:00" || res.EndTime != "10:00:00" {
		t.Fatalf("expected 09:00:00-10:00:00, got %s-%s", res.StartTime, res.EndTime)
	}
	if res.TotalPriceCents != 2500 {
		t.Fatalf("expected price 2500, got %d", res.TotalPriceCents)
	}
	if len(res.Code) != 8 {
		t.Fatalf("expected an 8-character code, got %q", res.Code)
	}
	if res.CheckoutURL != "" {
		t.Fatalf("cash bookings should not get a checkout URL, got %q", res.CheckoutURL)
	}
}

func TestCreateBooking_NoonSlotUses24HourClock(t *testing.T) {
	svc, _, _ := newTestService()
	res, err := svc.CreateBooking(cashRequest(1, "2026-03-14", "12:00 PM"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StartTime != "12:00:00" || res.EndTime != "13:00:00" {
		t.Fatalf("expected 12:00:00-13:00:00, got %s-%s", res.StartTime, res.EndTime)
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []*entities.BookingRequest{
		cashRequest(1, "not-a-date", "09:00 AM"),
		cashRequest(1, "2026-03-14", "06:00 PM"), // not in the catalog
		cashRequest(3, "2026-03-14", "09:00 AM"), // inactive court
		{CourtID: 1, Date: "2026-03-14", Slot: "09:00 AM", PaymentMethod: "barter", PlayerName: "D", PlayerEmail: "d@example.com"},
		{CourtID: 1, Date: "2026-03-14", Slot: "09:00 AM", PaymentMethod: MethodCash},
	}
	for i, req := range cases {
		if _, err := svc.CreateBooking(req); !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestCreateBooking_UnknownCourt(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.CreateBooking(cashRequest(99, "2026-03-14", "09:00 AM")); !errors.Is(err, apperrors.ErrCourtNotFound) {
		t.Fatalf("expected ErrCourtNotFound, got %v", err)
	}
}

func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	svc, _, _ := newTestService()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(cashRequest(1, "2026-03-14", "10:00 AM"))
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, apperrors.ErrSlotTaken):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one success and one conflict, got %d and %d", successes, conflicts)
	}
}

func TestCreateBooking_SameSlotDifferentCourt(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.CreateBooking(cashRequest(1, "2026-03-14", "10:00 AM")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateBooking(cashRequest(2, "2026-03-14", "10:00 AM")); err != nil {
		t.Fatalf("same slot on another court should succeed, got %v", err)
	}
}

func TestCreateBooking_Online(t *testing.T) {
	svc, bookings, payments := newTestService()

	req := cashRequest(1, "2026-03-14", "11:00 AM")
	req.PaymentMethod = MethodOnline
	res, err := svc.CreateBooking(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payments.sessions != 1 {
		t.Fatalf("expected one checkout session, got %d", payments.sessions)
	}
	if res.CheckoutURL == "" {
		t.Fatalf("expected a checkout URL")
	}
	stored, err := bookings.GetByCodeOnly(res.Code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.StripeSessionID == "" {
		t.Fatalf("expected the session ID to be persisted")
	}
}

func TestCheckAvailability_BlocksBookedSlot(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.CreateBooking(cashRequest(1, "2026-03-14", "09:00 AM")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := svc.CheckAvailability(1, "2026-03-14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Occupied) != 1 || res.Occupied[0] != "09:00 AM" {
		t.Fatalf("expected only 09:00 AM occupied, got %v", res.Occupied)
	}
	if len(res.Free) != 9 {
		t.Fatalf("expected nine free slots, got %v", res.Free)
	}
}

func TestCheckAvailability_CleaningBufferApplied(t *testing.T) {
	svc, _, _ := newTestService()
	// Court 2 has a 30-minute cleaning buffer.
	if _, err := svc.CreateBooking(cashRequest(2, "2026-03-14", "09:00 AM")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := svc.CheckAvailability(2, "2026-03-14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00 AM", "10:00 AM"}
	if len(res.Occupied) != len(want) || res.Occupied[0] != want[0] || res.Occupied[1] != want[1] {
		t.Fatalf("expected %v occupied, got %v", want, res.Occupied)
	}
}

func TestCheckAvailability_IgnoresCancelled(t *testing.T) {
	svc, _, _ := newTestService()
	res, err := svc.CreateBooking(cashRequest(1, "2026-03-14", "09:00 AM"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.CancelBooking(res.Code); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	avail, err := svc.CheckAvailability(1, "2026-03-14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(avail.Occupied) != 0 {
		t.Fatalf("cancelled bookings must not occupy slots, got %v", avail.Occupied)
	}
}

func TestCancelBooking_ReopensSlot(t *testing.T) {
	svc, _, _ := newTestService()
	res, err := svc.CreateBooking(cashRequest(1, "2026-03-14", "09:00 AM"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.CancelBooking(res.Code); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateBooking(cashRequest(1, "2026-03-14", "09:00 AM")); err != nil {
		t.Fatalf("slot should be bookable again after cancellation, got %v", err)
	}
}

func TestCancelBooking_CutoffEnforced(t *testing.T) {
	svc, _, _ := newTestService()
	res, err := svc.CreateBooking(cashRequest(1, "2026-03-14", "09:00 AM"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Less than 12 hours before the 09:00 start.
	svc.Now = func() time.Time {
		return time.Date(2026, time.March, 14, 8, 0, 0, 0, time.UTC)
	}
	if err := svc.CancelBooking(res.Code); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected cutoff violation, got %v", err)
	}
}

func TestCancelBooking_RefundsPaidBooking(t *testing.T) {
	svc, bookings, payments := newTestService()

	req := cashRequest(1, "2026-03-14", "09:00 AM")
	req.PaymentMethod = MethodOnline
	res, err := svc.CreateBooking(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := bookings.GetByCodeOnly(res.Code)
	if err := svc.ConfirmBySessionID(stored.StripeSessionID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.CancelBooking(res.Code); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payments.refunds) != 1 || payments.refunds[0] != stored.StripeSessionID {
		t.Fatalf("expected one refund for %s, got %v", stored.StripeSessionID, payments.refunds)
	}
}

func TestConfirmBySessionID(t *testing.T) {
	svc, bookings, _ := newTestService()

	req := cashRequest(1, "2026-03-14", "02:00 PM")
	req.PaymentMethod = MethodOnline
	res, err := svc.CreateBooking(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := bookings.GetByCodeOnly(res.Code)

	if err := svc.ConfirmBySessionID(stored.StripeSessionID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	confirmed, _ := bookings.GetByCodeOnly(res.Code)
	if confirmed.Status != StatusConfirmed || confirmed.PaymentStatus != PaymentPaid {
		t.Fatalf("expected confirmed/paid, got %s/%s", confirmed.Status, confirmed.PaymentStatus)
	}
}
