package domain

import "time"

// Batch groups donations under a named drive. TotalAmount is a denormalized
// running sum of all SUCCESS donations referencing the batch; it is mutated
// only inside the payment-verification transaction, never recomputed on read.
type Batch struct {
	ID          string
	Name        string
	TotalAmount int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
