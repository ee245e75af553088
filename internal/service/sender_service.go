package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"courtside/internal/db"
	"courtside/internal/entities"
	"courtside/internal/slot"
)

// SenderService composes and sends booking notifications. Sends run in
// goroutines; a failed notification is logged, never fatal.
type SenderService struct{}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) NotifyBooking(booking *db.Booking, court *db.Court, status string) {
	s.sendBookingEmail(booking, court, status)
	s.sendBookingSMS(booking, court, status)
}

func (s *SenderService) sendBookingEmail(booking *db.Booking, court *db.Court, status string) {
	loc, err := time.LoadLocation(court.Timezone)
	if err != nil {
		loc = time.UTC
	}

	start, err := slotStart(booking, loc)
	if err != nil {
		log.Printf("ALERT: could not format times for booking %s: %v", booking.Code, err)
		return
	}
	end := start.Add(slot.SlotMinutes * time.Minute)

	emailData := entities.BookingEmailData{
		PlayerName:         booking.PlayerName,
		BookingCode:        booking.Code,
		CourtName:          court.Name,
		DateFormatted:      booking.Date.Format("02 Jan 2006"),
		StartTimeFormatted: start.Format("3:04 PM"),
		EndTimeFormatted:   end.Format("3:04 PM"),
		Status:             status,
		CurrentYear:        time.Now().In(loc).Year(),
	}

	emailSubject := fmt.Sprintf("Your Courtside booking is %s - Code: %s", status, emailData.BookingCode)
	plainTextBody := fmt.Sprintf(
		"Hi %s,\n\nYour booking at Courtside is %s.\n\n"+
			"Booking details:\n"+
			"Booking code: %s\n"+
			"Court: %s\n"+
			"Date: %s\n"+
			"Time: %s - %s\n\n"+
			"Thank you for playing with Courtside.",
		emailData.PlayerName, status, emailData.BookingCode, emailData.CourtName,
		emailData.DateFormatted, emailData.StartTimeFormatted, emailData.EndTimeFormatted,
	)

	htmlBody := plainTextBody
	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: could not parse email template (%s): %v", tmplPath, err)
	} else {
		var htmlBodyBuffer bytes.Buffer
		if err := tmpl.Execute(&htmlBodyBuffer, emailData); err != nil {
			log.Printf("ALERT: could not execute email template for booking %s: %v", emailData.BookingCode, err)
		} else {
			htmlBody = htmlBodyBuffer.String()
		}
	}

	go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBodyContent); err != nil {
			log.Printf("ALERT (async): email for booking %s failed: %v", emailData.BookingCode, err)
		}
	}(booking.PlayerEmail, booking.PlayerName, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) sendBookingSMS(booking *db.Booking, court *db.Court, status string) {
	if booking.PlayerPhone == "" {
		return
	}

	loc, err := time.LoadLocation(court.Timezone)
	if err != nil {
		loc = time.UTC
	}
	start, err := slotStart(booking, loc)
	if err != nil {
		log.Printf("ALERT: could not format start time for booking %s: %v", booking.Code, err)
		return
	}

	smsMessage := fmt.Sprintf("Courtside: booking %s is %s!\n%s at %s on %s.\nMore details in your email.",
		booking.Code, status, court.Name,
		start.Format("3:04 PM"), booking.Date.Format("02/01"),
	)

	go func(phone, body string) {
		if err := SendSMS(phone, body); err != nil {
			log.Printf("ALERT: booking %s was saved, but the SMS to %s failed: %v", booking.Code, phone, err)
		}
	}(booking.PlayerPhone, smsMessage)
}
