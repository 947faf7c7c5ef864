package mailer

// Service sends guest-facing mail. Sending is best-effort: failures are
// logged by callers and never surface to the booking response.
type Service interface {
	SendBookingConfirmation(toEmail, toName, bookingID, checkIn, checkOut string, guests int) error
}
