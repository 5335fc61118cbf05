package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fundraiser/internal/domain"
	"fundraiser/internal/payments"
)

type verifyRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// PaymentsVerify authenticates a gateway confirmation callback and applies
// the ledger effect. The callback fields are untrusted client input: nothing
// is mutated until the signature checks out, and a mismatch fails closed
// with a 400. A valid signature for an unknown order id is a replay or
// programming error and surfaces as 500, never as a verification failure.
func (a *App) PaymentsVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "order_id, payment_id and signature required")
		return
	}

	if !payments.VerifySignature(a.GatewaySecret, req.OrderID, req.PaymentID, req.Signature) {
		a.Logger.Warn().Str("order_id", req.OrderID).Msg("payment signature mismatch")
		a.json(w, http.StatusBadRequest, map[string]string{
			"status":  "failure",
			"message": "signature verification failed",
		})
		return
	}

	donation, applied, err := a.Donations.MarkPaid(r.Context(), req.OrderID, req.PaymentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.Logger.Error().Str("order_id", req.OrderID).Msg("verified callback for unknown order")
		} else {
			a.Logger.Error().Err(err).Str("order_id", req.OrderID).Msg("apply payment failed")
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to apply payment")
		return
	}

	if applied {
		a.archiveReceipt(r.Context(), donation)
	}

	a.json(w, http.StatusOK, map[string]any{
		"status":   "success",
		"donation": toDonationDTO(donation),
	})
}

type receiptDocument struct {
	DonationID string    `json:"donation_id"`
	OrderID    string    `json:"order_id"`
	PaymentID  string    `json:"payment_id"`
	Amount     int64     `json:"amount"`
	Method     string    `json:"payment_method"`
	BatchID    *string   `json:"batch_id,omitempty"`
	PaidAt     time.Time `json:"paid_at"`
}

// archiveReceipt writes a JSON receipt to blob storage, best effort. The
// ledger is already committed; a storage failure only costs the archived
// copy.
func (a *App) archiveReceipt(ctx context.Context, d *domain.Donation) {
	if a.Receipts == nil {
		return
	}
	doc, err := json.Marshal(receiptDocument{
		DonationID: d.ID,
		OrderID:    d.OrderID,
		PaymentID:  d.PaymentID,
		Amount:     d.AmountInt,
		Method:     string(d.PaymentMethod),
		BatchID:    d.BatchID,
		PaidAt:     time.Now(),
	})
	if err != nil {
		a.Logger.Error().Err(err).Str("donation_id", d.ID).Msg("encode receipt failed")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	url, err := a.Receipts.Put(ctx, "receipts/"+d.ID+".json", "application/json", doc)
	if err != nil {
		a.Logger.Error().Err(err).Str("donation_id", d.ID).Msg("archive receipt failed")
		return
	}
	if err := a.Donations.SetReceiptURL(ctx, d.ID, url); err != nil {
		a.Logger.Error().Err(err).Str("donation_id", d.ID).Msg("record receipt url failed")
		return
	}
	d.ReceiptURL = url
}

// PaymentsStatus is the polling endpoint: a pure read of the donation's
// ledger state.
func (a *App) PaymentsStatus(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("donationId")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "donationId required")
		return
	}
	donation, err := a.Donations.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "donation not found")
			return
		}
		a.Logger.Error().Err(err).Msg("donation lookup failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donation")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": string(donation.PaymentStatus)})
}
