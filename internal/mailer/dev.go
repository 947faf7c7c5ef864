package mailer

import (
	"github.com/toshihome/homestay-bookings/pkg/logger"
)

// DevMailer logs mail instead of sending it. Used whenever EMAIL_DEV_MODE
// is on or MailerSend credentials are missing.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendBookingConfirmation(toEmail, toName, bookingID, checkIn, checkOut string, guests int) error {
	logger.Info("📧 [DEV MAIL] Booking Confirmation",
		"to", toEmail,
		"name", toName,
		"booking_id", bookingID,
		"check_in", checkIn,
		"check_out", checkOut,
		"guests", guests,
	)
	return nil
}
