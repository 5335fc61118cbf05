package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"fundraiser/internal/domain"
)

func TestDisplayAmount(t *testing.T) {
	tests := map[int64]string{
		0:        "₹0.00",
		50000:    "₹500.00",
		123456:   "₹1,234.56",
		10000000: "₹100,000.00",
	}
	for minor, want := range tests {
		if got := displayAmount(minor); got != want {
			t.Fatalf("displayAmount(%d) = %q, want %q", minor, got, want)
		}
	}
}

func TestBatchLeaderboardOrdersByTotal(t *testing.T) {
	batches := newFakeBatches(
		&domain.Batch{ID: "b1", Name: "North Zone", TotalAmount: 50000},
		&domain.Batch{ID: "b2", Name: "South Zone", TotalAmount: 123456},
		&domain.Batch{ID: "b3", Name: "East Zone", TotalAmount: 123456},
	)
	app := &App{Logger: zerolog.Nop(), Batches: batches}

	req := httptest.NewRequest("GET", "/batches/leaderboard", nil)
	rr := httptest.NewRecorder()
	app.BatchLeaderboard(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Items []leaderboardEntry `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(resp.Items))
	}
	// Ties break on name.
	wantOrder := []string{"East Zone", "South Zone", "North Zone"}
	for i, want := range wantOrder {
		if resp.Items[i].Name != want {
			t.Fatalf("position %d: got %q, want %q", i, resp.Items[i].Name, want)
		}
	}
	if resp.Items[0].TotalDisplay != "₹1,234.56" {
		t.Fatalf("unexpected display amount: %q", resp.Items[0].TotalDisplay)
	}
}
