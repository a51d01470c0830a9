package domain

// Time format constants
const (
	TimeFormat     = "15:04"      // HH:MM
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DayFormat      = "02"         // DD
	MonthKeyFormat = "2006-01"    // YYYY-MM
)

// Payment code prefixes
const (
	PaymentCodePrefixBooking = "EVLZ"
	PaymentCodePrefixPlan    = "PLAN"
)

// Cancellation metadata
const (
	CancelledBySystem           = "system"
	ReasonPaymentTimeout        = "payment_timeout"
	ReasonCancelledByAdmin      = "cancelled_by_admin"
	MaxCancellationReasonLength = 500
)

// Account validation constants
const (
	MinPasswordLength = 6
	MaxUsernameLength = 64
	MaxPhoneLength    = 32
)

// ActiveStatuses статусы бронирований, занимающих слот
// Совпадает с условием частичного уникального индекса bookings_active_slot_uidx
var ActiveStatuses = []BookingStatus{
	StatusPendingPayment,
	StatusConfirmed,
}
