package domain

import "context"

// DonationRepository handles donation persistence.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	GetByID(ctx context.Context, id string) (*Donation, error)

	// MarkPaid applies a verified payment confirmation in one transaction:
	// it locates the PENDING donation carrying orderID, records paymentID,
	// flips the status to SUCCESS and increments the referenced batch total
	// by the donation amount. When the donation already left PENDING the
	// call is a no-op and applied is false. ErrNotFound when no donation
	// carries orderID.
	MarkPaid(ctx context.Context, orderID, paymentID string) (donation *Donation, applied bool, err error)

	SetReceiptURL(ctx context.Context, id, url string) error
	ListRecentSuccessful(ctx context.Context, limit int) ([]Donation, error)
	// List returns donations of any status, newest first. An empty status
	// matches everything.
	List(ctx context.Context, status PaymentStatus, limit int) ([]Donation, error)
}

// BatchRepository handles batch lookups and the public leaderboard.
type BatchRepository interface {
	GetByID(ctx context.Context, id string) (*Batch, error)
	Leaderboard(ctx context.Context) ([]Batch, error)
}

// UserRepository defines access methods for console accounts.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
