package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"courtside/internal/availability"
	"courtside/internal/db"
	"courtside/internal/entities"
	apperrors "courtside/internal/errors"
	"courtside/internal/slot"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"

	PaymentUnpaid   = "unpaid"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"

	MethodCash   = "cash"
	MethodOnline = "online"
)

// cancelCutoff is how long before the slot start a booking can still be
// cancelled by the player.
const cancelCutoff = 12 * time.Hour

type BookingStore interface {
	ListForCourtAndDate(courtID int, date time.Time) ([]db.Booking, error)
	Create(b *db.Booking) error
	GetByCode(code, email string) (*db.Booking, error)
	GetByCodeOnly(code string) (*db.Booking, error)
	GetByStripeSessionID(sessionID string) (*db.Booking, error)
	Cancel(code string) (string, error)
	UpdateStatusAndPaymentBySessionID(sessionID, status, paymentStatus string) error
}

type CourtStore interface {
	GetByID(id int) (*db.Court, error)
	List() ([]db.Court, error)
}

type PaymentProvider interface {
	CreateCheckoutSession(amountCents int64, currency, code, customerEmail string) (url, sessionID string, err error)
	RefundBySessionID(sessionID string) error
}

type Notifier interface {
	NotifyBooking(booking *db.Booking, court *db.Court, status string)
}

type BookingService struct {
	Bookings BookingStore
	Courts   CourtStore
	Payments PaymentProvider
	Sender   Notifier

	// Now is replaceable in tests.
	Now func() time.Time
}

func NewBookingService(bookings BookingStore, courts CourtStore, payments PaymentProvider, sender Notifier) *BookingService {
	return &BookingService{
		Bookings: bookings,
		Courts:   courts,
		Payments: payments,
		Sender:   sender,
		Now:      time.Now,
	}
}

// ListSlots returns the fixed slot catalog.
func (s *BookingService) ListSlots() []string {
	return slot.Catalog()
}

func (s *BookingService) ListCourts() ([]entities.CourtResponse, error) {
	courts, err := s.Courts.List()
	if err != nil {
		return nil, err
	}
	out := make([]entities.CourtResponse, 0, len(courts))
	for _, c := range courts {
		out = append(out, entities.CourtResponse{
			ID:                    c.ID,
			Name:                  c.Name,
			Surface:               c.Surface,
			HourlyRateCents:       c.HourlyRateCents,
			CleaningBufferMinutes: c.CleaningBufferMinutes,
			Timezone:              c.Timezone,
		})
	}
	return out, nil
}

// CheckAvailability fetches the court's non-cancelled bookings for the date
// and runs the resolver over them.
func (s *BookingService) CheckAvailability(courtID int, dateStr string) (*entities.AvailabilityResponse, error) {
	date, err := time.Parse(slot.DateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, dateStr)
	}

	court, err := s.Courts.GetByID(courtID)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(court.Timezone)
	if err != nil {
		return nil, fmt.Errorf("court %d has invalid timezone %q: %w", court.ID, court.Timezone, err)
	}

	stored, err := s.Bookings.ListForCourtAndDate(courtID, date)
	if err != nil {
		log.Printf("Error listing bookings for court %d: %v", courtID, err)
		return nil, fmt.Errorf("internal error checking availability: %w", err)
	}

	input := make([]availability.Booking, 0, len(stored))
	for _, b := range stored {
		input = append(input, availability.Booking{StartTime: b.StartTime, EndTime: b.EndTime})
	}

	result, err := availability.Resolve(date, loc, court.CleaningBufferMinutes, input)
	if err != nil {
		return nil, err
	}

	return &entities.AvailabilityResponse{
		CourtID:  courtID,
		Date:     dateStr,
		Free:     result.Free,
		Occupied: result.Occupied,
	}, nil
}

// CreateBooking writes a booking for the slot the player picked. Availability
// is not re-resolved here; the slot index on (court, date, start) is what
// guarantees at most one winner, surfaced as ErrSlotTaken.
func (s *BookingService) CreateBooking(req *entities.BookingRequest) (*entities.BookingResponse, error) {
	date, err := time.Parse(slot.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}
	if !slot.IsCatalogLabel(req.Slot) {
		return nil, fmt.Errorf("%w: unknown slot %q", apperrors.ErrValidation, req.Slot)
	}
	if req.PaymentMethod != MethodCash && req.PaymentMethod != MethodOnline {
		return nil, fmt.Errorf("%w: unsupported payment method %q", apperrors.ErrValidation, req.PaymentMethod)
	}
	if req.PlayerName == "" || req.PlayerEmail == "" {
		return nil, fmt.Errorf("%w: player name and email are required", apperrors.ErrValidation)
	}

	court, err := s.Courts.GetByID(req.CourtID)
	if err != nil {
		return nil, err
	}
	if !court.Active {
		return nil, fmt.Errorf("%w: court %d is not bookable", apperrors.ErrValidation, court.ID)
	}

	hour, minute, err := slot.ClockTime(req.Slot)
	if err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	booking := &db.Booking{
		Code:            newBookingCode(),
		CourtID:         court.ID,
		Date:            date,
		StartTime:       fmt.Sprintf("%02d:%02d:00", hour, minute),
		EndTime:         fmt.Sprintf("%02d:%02d:00", hour+1, minute),
		PlayerName:      req.PlayerName,
		PlayerEmail:     req.PlayerEmail,
		PlayerPhone:     req.PlayerPhone,
		PaymentMethod:   req.PaymentMethod,
		TotalPriceCents: court.HourlyRateCents,
		Status:          StatusPending,
		PaymentStatus:   PaymentUnpaid,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var checkoutURL string
	if req.PaymentMethod == MethodOnline {
		url, sessionID, err := s.Payments.CreateCheckoutSession(
			int64(booking.TotalPriceCents), "usd", booking.Code, booking.PlayerEmail)
		if err != nil {
			return nil, fmt.Errorf("could not start checkout: %w", err)
		}
		booking.StripeSessionID = sessionID
		checkoutURL = url
	}

	if err := s.Bookings.Create(booking); err != nil {
		log.Printf("Error creating booking for court %d: %v", court.ID, err)
		return nil, err
	}

	if req.PaymentMethod == MethodCash && s.Sender != nil {
		s.Sender.NotifyBooking(booking, court, StatusPending)
	}

	resp := s.toResponse(booking, court)
	resp.CheckoutURL = checkoutURL
	return resp, nil
}

func (s *BookingService) GetBooking(code, email string) (*entities.BookingResponse, error) {
	booking, err := s.Bookings.GetByCode(code, email)
	if err != nil {
		return nil, err
	}
	court, err := s.Courts.GetByID(booking.CourtID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(booking, court), nil
}

// CancelBooking enforces the cancellation cutoff, refunds paid online
// bookings, marks the row cancelled and notifies the player.
func (s *BookingService) CancelBooking(code string) error {
	booking, err := s.Bookings.GetByCodeOnly(code)
	if err != nil {
		return err
	}
	if booking.Status == StatusCancelled {
		return fmt.Errorf("%w: booking %s is already cancelled", apperrors.ErrValidation, code)
	}

	court, err := s.Courts.GetByID(booking.CourtID)
	if err != nil {
		return err
	}
	loc, err := time.LoadLocation(court.Timezone)
	if err != nil {
		return fmt.Errorf("court %d has invalid timezone %q: %w", court.ID, court.Timezone, err)
	}

	start, err := slotStart(booking, loc)
	if err != nil {
		return err
	}
	if start.Sub(s.Now()) < cancelCutoff {
		return fmt.Errorf("%w: bookings can only be cancelled more than %v before the start time", apperrors.ErrValidation, cancelCutoff)
	}

	if booking.PaymentStatus == PaymentPaid && booking.StripeSessionID != "" {
		if err := s.Payments.RefundBySessionID(booking.StripeSessionID); err != nil {
			return fmt.Errorf("could not refund booking %s: %w", code, err)
		}
	}

	if _, err := s.Bookings.Cancel(code); err != nil {
		return err
	}

	if s.Sender != nil {
		s.Sender.NotifyBooking(booking, court, StatusCancelled)
	}
	return nil
}

// ConfirmBySessionID marks an online booking paid after Stripe reports the
// checkout session completed.
func (s *BookingService) ConfirmBySessionID(sessionID string) error {
	if err := s.Bookings.UpdateStatusAndPaymentBySessionID(sessionID, StatusConfirmed, PaymentPaid); err != nil {
		return err
	}
	booking, err := s.Bookings.GetByStripeSessionID(sessionID)
	if err != nil {
		return err
	}
	court, err := s.Courts.GetByID(booking.CourtID)
	if err != nil {
		return err
	}
	if s.Sender != nil {
		s.Sender.NotifyBooking(booking, court, StatusConfirmed)
	}
	return nil
}

// MarkRefundedBySessionID records an out-of-band refund reported by Stripe.
func (s *BookingService) MarkRefundedBySessionID(sessionID string) error {
	return s.Bookings.UpdateStatusAndPaymentBySessionID(sessionID, StatusCancelled, PaymentRefunded)
}

func (s *BookingService) toResponse(b *db.Booking, court *db.Court) *entities.BookingResponse {
	return &entities.BookingResponse{
		Code:            b.Code,
		CourtID:         b.CourtID,
		CourtName:       court.Name,
		Date:            b.Date.Format(slot.DateLayout),
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		PlayerName:      b.PlayerName,
		PlayerEmail:     b.PlayerEmail,
		PlayerPhone:     b.PlayerPhone,
		PaymentMethod:   b.PaymentMethod,
		TotalPriceCents: b.TotalPriceCents,
		Status:          b.Status,
		PaymentStatus:   b.PaymentStatus,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func slotStart(b *db.Booking, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(slot.TimeOfDayLayout, b.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("booking %s has invalid start time %q: %w", b.Code, b.StartTime, err)
	}
	return time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

func newBookingCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
