package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"fundraiser/internal/domain"
	"fundraiser/internal/middleware"
	"fundraiser/internal/payments"
)

type donationCreateRequest struct {
	Amount        int64   `json:"amount"`
	Name          string  `json:"name"`
	Mobile        string  `json:"mobile"`
	HideName      bool    `json:"hide_name"`
	PaymentMethod string  `json:"payment_method"`
	BatchID       *string `json:"batch_id"`
	PlaceID       *string `json:"place_id"`
	UnitID        *string `json:"unit_id"`
}

type donationDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	HideName      bool      `json:"hide_name"`
	Amount        int64     `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
	OrderID       string    `json:"order_id"`
	PaymentID     string    `json:"payment_id,omitempty"`
	BatchID       *string   `json:"batch_id,omitempty"`
	Country       string    `json:"country,omitempty"`
	ReceiptURL    string    `json:"receipt_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toDonationDTO(d *domain.Donation) donationDTO {
	return donationDTO{
		ID:            d.ID,
		Name:          d.Name,
		HideName:      d.HideName,
		Amount:        d.AmountInt,
		PaymentMethod: string(d.PaymentMethod),
		PaymentStatus: string(d.PaymentStatus),
		OrderID:       d.OrderID,
		PaymentID:     d.PaymentID,
		BatchID:       d.BatchID,
		Country:       d.Country,
		ReceiptURL:    d.ReceiptURL,
		CreatedAt:     d.CreatedAt,
	}
}

// DonationsCreate records a PENDING donation tied to a freshly minted
// gateway order. The response carries the order id the client hands to the
// gateway checkout.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	}
	method := domain.PaymentMethod(req.PaymentMethod)
	if !domain.ValidPaymentMethod(method) {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown payment method")
		return
	}
	if req.BatchID != nil {
		if _, err := a.Batches.GetByID(r.Context(), *req.BatchID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				a.error(w, http.StatusBadRequest, "bad_request", "unknown batch")
				return
			}
			a.Logger.Error().Err(err).Msg("batch lookup failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to create donation")
			return
		}
	}

	donationID := uuid.NewString()
	order, err := a.mintOrder(r, method, req.Amount, donationID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("order creation failed")
		a.error(w, http.StatusBadGateway, "gateway_failure", "payment gateway unavailable")
		return
	}

	donation := &domain.Donation{
		ID:            donationID,
		Name:          req.Name,
		Mobile:        req.Mobile,
		HideName:      req.HideName,
		AmountInt:     req.Amount,
		PaymentMethod: method,
		PaymentStatus: domain.StatusPending,
		OrderID:       order.ID,
		BatchID:       req.BatchID,
		PlaceID:       req.PlaceID,
		UnitID:        req.UnitID,
		Country:       a.donorCountry(r),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := a.Donations.Create(r.Context(), donation); err != nil {
		a.Logger.Error().Err(err).Msg("create donation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create donation")
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"id":       donation.ID,
		"order_id": donation.OrderID,
		"amount":   donation.AmountInt,
		"status":   string(donation.PaymentStatus),
	})
}

func (a *App) mintOrder(r *http.Request, method domain.PaymentMethod, amount int64, receipt string) (*payments.Order, error) {
	gw := a.Gateway
	if method != domain.MethodRazorpay || gw == nil {
		gw = a.Local
	}
	return gw.CreateOrder(r.Context(), amount, receipt)
}

func (a *App) donorCountry(r *http.Request) string {
	if a.Geo == nil {
		return ""
	}
	code, err := a.Geo.CountryCode(middleware.ClientIP(r))
	if err != nil {
		a.Logger.Debug().Err(err).Msg("donor country lookup failed")
		return ""
	}
	return code
}

type feedItem struct {
	Name      string    `json:"name"`
	Amount    int64     `json:"amount"`
	BatchID   *string   `json:"batch_id,omitempty"`
	Country   string    `json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DonationsRecent is the public transaction feed: confirmed donations only,
// donor names anonymized when hidden, no contact details.
func (a *App) DonationsRecent(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, 20, 100)
	items, err := a.Donations.ListRecentSuccessful(r.Context(), limit)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list recent donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}
	feed := make([]feedItem, 0, len(items))
	for i := range items {
		d := &items[i]
		feed = append(feed, feedItem{
			Name:      d.DisplayName(),
			Amount:    d.AmountInt,
			BatchID:   d.BatchID,
			Country:   d.Country,
			CreatedAt: d.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": feed})
}

func queryLimit(r *http.Request, def, max int) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
