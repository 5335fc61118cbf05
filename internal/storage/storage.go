package storage

import "context"

// Storage is the blob-storage collaborator: it accepts bytes under a key and
// returns a public URL. Donation receipts are archived through it.
type Storage interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}
