package email

const (
	subjectWelcome               = "Welcome to TravelNest"
	subjectBookingReceivedFmt    = "Booking received: %s"
	subjectBookingStatusFmt      = "Your booking for %s was updated"
	subjectCustomRequestReceived = "We received your custom trip request"
)
