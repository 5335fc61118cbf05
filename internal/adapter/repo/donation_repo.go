package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fundraiser/internal/domain"
)

const donationColumns = `id, name, mobile, hide_name, amount_int, payment_method, payment_status,
order_id, payment_id, batch_id, place_id, unit_id, country, receipt_url, created_at, updated_at`

// DonationRepositoryPG implements domain.DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepositoryPG {
	return &DonationRepositoryPG{pool: pool}
}

// Create inserts a new donation record in PENDING state.
func (r *DonationRepositoryPG) Create(ctx context.Context, d *domain.Donation) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO donations (id, name, mobile, hide_name, amount_int, payment_method, payment_status,
                       order_id, batch_id, place_id, unit_id, country, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now());
`, d.ID, d.Name, d.Mobile, d.HideName, d.AmountInt, d.PaymentMethod, d.PaymentStatus,
		d.OrderID, d.BatchID, d.PlaceID, d.UnitID, d.Country)
	if err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

// GetByID fetches a donation by its id.
func (r *DonationRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+donationColumns+`
FROM donations
WHERE id = $1;
`, id)
	return scanDonation(row)
}

// MarkPaid applies a verified payment confirmation. The status transition
// and the batch aggregate increment run in one transaction; the row lock and
// the PENDING precondition make duplicate confirmations a no-op, so the
// ledger effect happens exactly once per donation.
func (r *DonationRepositoryPG) MarkPaid(ctx context.Context, orderID, paymentID string) (*domain.Donation, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
SELECT `+donationColumns+`
FROM donations
WHERE order_id = $1
FOR UPDATE;
`, orderID)
	d, err := scanDonation(row)
	if err != nil {
		return nil, false, err
	}

	if d.PaymentStatus != domain.StatusPending {
		// Already confirmed or failed; release the lock and report no-op.
		if err := tx.Commit(ctx); err != nil {
			return nil, false, fmt.Errorf("commit: %w", err)
		}
		return d, false, nil
	}

	if _, err := tx.Exec(ctx, `
UPDATE donations
SET payment_status = $2, payment_id = $3, updated_at = now()
WHERE id = $1;
`, d.ID, domain.StatusSuccess, paymentID); err != nil {
		return nil, false, fmt.Errorf("update donation status: %w", err)
	}

	if d.BatchID != nil {
		if _, err := tx.Exec(ctx, `
UPDATE batches
SET total_amount = total_amount + $2, updated_at = now()
WHERE id = $1;
`, *d.BatchID, d.AmountInt); err != nil {
			return nil, false, fmt.Errorf("increment batch total: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("commit: %w", err)
	}

	d.PaymentStatus = domain.StatusSuccess
	d.PaymentID = paymentID
	return d, true, nil
}

// SetReceiptURL records the archived receipt location, outside the ledger
// transaction.
func (r *DonationRepositoryPG) SetReceiptURL(ctx context.Context, id, url string) error {
	_, err := r.pool.Exec(ctx, `
UPDATE donations
SET receipt_url = $2, updated_at = now()
WHERE id = $1;
`, id, url)
	if err != nil {
		return fmt.Errorf("set receipt url: %w", err)
	}
	return nil
}

// ListRecentSuccessful returns confirmed donations for the public feed,
// newest first.
func (r *DonationRepositoryPG) ListRecentSuccessful(ctx context.Context, limit int) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+donationColumns+`
FROM donations
WHERE payment_status = $1
ORDER BY created_at DESC
LIMIT $2;
`, domain.StatusSuccess, limit)
	if err != nil {
		return nil, fmt.Errorf("list successful donations: %w", err)
	}
	defer rows.Close()
	return collectDonations(rows)
}

// List returns donations of any status, newest first. An empty status
// matches everything.
func (r *DonationRepositoryPG) List(ctx context.Context, status domain.PaymentStatus, limit int) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+donationColumns+`
FROM donations
WHERE ($1 = '' OR payment_status = $1)
ORDER BY created_at DESC
LIMIT $2;
`, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()
	return collectDonations(rows)
}

func collectDonations(rows pgx.Rows) ([]domain.Donation, error) {
	var items []domain.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanDonation(row pgx.Row) (*domain.Donation, error) {
	var d domain.Donation
	err := row.Scan(&d.ID, &d.Name, &d.Mobile, &d.HideName, &d.AmountInt, &d.PaymentMethod,
		&d.PaymentStatus, &d.OrderID, &d.PaymentID, &d.BatchID, &d.PlaceID, &d.UnitID,
		&d.Country, &d.ReceiptURL, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan donation: %w", err)
	}
	return &d, nil
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
