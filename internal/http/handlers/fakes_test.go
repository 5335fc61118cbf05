package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"fundraiser/internal/domain"
)

// In-memory repositories backing the handler tests. MarkPaid mirrors the
// production transaction: PENDING precondition, batch increment, no-op on
// repeats.

type fakeBatches struct {
	mu   sync.Mutex
	byID map[string]*domain.Batch
}

func newFakeBatches(batches ...*domain.Batch) *fakeBatches {
	f := &fakeBatches{byID: make(map[string]*domain.Batch)}
	for _, b := range batches {
		f.byID[b.ID] = b
	}
	return f
}

func (f *fakeBatches) GetByID(_ context.Context, id string) (*domain.Batch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBatches) Leaderboard(_ context.Context) ([]domain.Batch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]domain.Batch, 0, len(f.byID))
	for _, b := range f.byID {
		items = append(items, *b)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].TotalAmount != items[j].TotalAmount {
			return items[i].TotalAmount > items[j].TotalAmount
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

type fakeDonations struct {
	mu      sync.Mutex
	byID    map[string]*domain.Donation
	batches *fakeBatches
}

func newFakeDonations(batches *fakeBatches, donations ...*domain.Donation) *fakeDonations {
	f := &fakeDonations{byID: make(map[string]*domain.Donation), batches: batches}
	for _, d := range donations {
		f.byID[d.ID] = d
	}
	return f
}

func (f *fakeDonations) Create(_ context.Context, d *domain.Donation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *d
	f.byID[d.ID] = &copied
	return nil
}

func (f *fakeDonations) GetByID(_ context.Context, id string) (*domain.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDonations) MarkPaid(_ context.Context, orderID, paymentID string) (*domain.Donation, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var d *domain.Donation
	for _, cand := range f.byID {
		if cand.OrderID == orderID {
			d = cand
			break
		}
	}
	if d == nil {
		return nil, false, domain.ErrNotFound
	}
	if d.PaymentStatus != domain.StatusPending {
		copied := *d
		return &copied, false, nil
	}
	d.PaymentStatus = domain.StatusSuccess
	d.PaymentID = paymentID
	d.UpdatedAt = time.Now()
	if d.BatchID != nil && f.batches != nil {
		f.batches.mu.Lock()
		if b, ok := f.batches.byID[*d.BatchID]; ok {
			b.TotalAmount += d.AmountInt
		}
		f.batches.mu.Unlock()
	}
	copied := *d
	return &copied, true, nil
}

func (f *fakeDonations) SetReceiptURL(_ context.Context, id, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.byID[id]; ok {
		d.ReceiptURL = url
	}
	return nil
}

func (f *fakeDonations) ListRecentSuccessful(_ context.Context, limit int) ([]domain.Donation, error) {
	return f.list(domain.StatusSuccess, limit)
}

func (f *fakeDonations) List(_ context.Context, status domain.PaymentStatus, limit int) ([]domain.Donation, error) {
	return f.list(status, limit)
}

func (f *fakeDonations) list(status domain.PaymentStatus, limit int) ([]domain.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []domain.Donation
	for _, d := range f.byID {
		if status != "" && d.PaymentStatus != status {
			continue
		}
		items = append(items, *d)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

type fakeUsers struct {
	byUsername map[string]*domain.User
}

func newFakeUsers(users ...*domain.User) *fakeUsers {
	f := &fakeUsers{byUsername: make(map[string]*domain.User)}
	for _, u := range users {
		f.byUsername[u.Username] = u
	}
	return f
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memStorage struct {
	mu   sync.Mutex
	puts map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{puts: make(map[string][]byte)}
}

func (m *memStorage) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts[key] = append([]byte(nil), data...)
	return "http://storage.test/" + key, nil
}
