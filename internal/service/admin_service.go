package service

import (
	"courtside/internal/db"
	"courtside/internal/repository"
)

type AdminService struct {
	bookingRepo *repository.BookingRepository
	courtRepo   *repository.CourtRepository
}

func NewAdminService(bookingRepo *repository.BookingRepository, courtRepo *repository.CourtRepository) *AdminService {
	return &AdminService{
		bookingRepo: bookingRepo,
		courtRepo:   courtRepo,
	}
}

func (s *AdminService) ListBookings(date, courtID, status string) ([]db.Booking, error) {
	return s.bookingRepo.List(date, courtID, status)
}

func (s *AdminService) DeleteBookingByID(id int) error {
	return s.bookingRepo.DeleteByID(id)
}

func (s *AdminService) UpdateCourt(id, hourlyRateCents, cleaningBufferMinutes int, active bool) error {
	return s.courtRepo.Update(id, hourlyRateCents, cleaningBufferMinutes, active)
}
