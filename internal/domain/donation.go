package domain

import "time"

// PaymentMethod identifies how a donor chose to pay.
type PaymentMethod string

const (
	MethodUPI      PaymentMethod = "UPI"
	MethodQR       PaymentMethod = "QR"
	MethodRazorpay PaymentMethod = "RAZORPAY"
	MethodCash     PaymentMethod = "CASH"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodUPI, MethodQR, MethodRazorpay, MethodCash:
		return true
	}
	return false
}

// PaymentStatus is the donation ledger state. Transitions are one-way:
// PENDING -> SUCCESS or PENDING -> FAILED, terminal afterwards.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "PENDING"
	StatusSuccess PaymentStatus = "SUCCESS"
	StatusFailed  PaymentStatus = "FAILED"
)

// Donation represents a supporter contribution record. AmountInt is in minor
// currency units (paise). OrderID holds the gateway order id assigned at
// creation time and never changes; PaymentID is recorded once the gateway
// confirms a payment attempt.
type Donation struct {
	ID            string
	Name          string
	Mobile        string
	HideName      bool
	AmountInt     int64
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	OrderID       string
	PaymentID     string
	BatchID       *string
	PlaceID       *string
	UnitID        *string
	Country       string
	ReceiptURL    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DisplayName is the donor name as shown on public feeds.
func (d *Donation) DisplayName() string {
	if d.HideName || d.Name == "" {
		return "Anonymous"
	}
	return d.Name
}
