package service

import (
	"fmt"
	"log"
	"time"

	"courtside/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// CompleteFinishedBookings marks bookings whose slot already ended as "completed".
func (s *JobService) CompleteFinishedBookings() error {
	log.Println("Cron Job: checking for bookings to mark as 'completed'...")

	bookingIDs, err := s.Repo.GetBookingIDsPastEndTime()
	if err != nil {
		return fmt.Errorf("cron job: failed to get bookings past end time: %w", err)
	}

	if len(bookingIDs) == 0 {
		log.Println("Cron Job: no bookings found past their end time.")
		return nil
	}

	log.Printf("Cron Job: found %d bookings to mark as 'completed'. IDs: %v", len(bookingIDs), bookingIDs)

	if err := s.Repo.UpdateBookingStatuses(bookingIDs, StatusCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}

	log.Printf("Cron Job: successfully updated %d bookings to 'completed'.", len(bookingIDs))
	return nil
}

// PurgeAbandonedCheckouts deletes online bookings that never got paid,
// freeing their slots for other players.
func (s *JobService) PurgeAbandonedCheckouts(before time.Time) (int64, error) {
	return s.Repo.DeleteUnpaidPendingOlderThan(before)
}
