package handlers

import (
	"net/http"

	"fundraiser/internal/domain"
)

type adminDonationDTO struct {
	donationDTO
	Mobile  string  `json:"mobile,omitempty"`
	PlaceID *string `json:"place_id,omitempty"`
	UnitID  *string `json:"unit_id,omitempty"`
}

// AdminDonations is the console transaction feed: every status, contact
// details included. The route is mounted behind RequireRole.
func (a *App) AdminDonations(w http.ResponseWriter, r *http.Request) {
	status := domain.PaymentStatus(r.URL.Query().Get("status"))
	switch status {
	case "", domain.StatusPending, domain.StatusSuccess, domain.StatusFailed:
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "unknown status filter")
		return
	}

	limit := queryLimit(r, 50, 500)
	items, err := a.Donations.List(r.Context(), status, limit)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}

	out := make([]adminDonationDTO, 0, len(items))
	for i := range items {
		d := &items[i]
		out = append(out, adminDonationDTO{
			donationDTO: toDonationDTO(d),
			Mobile:      d.Mobile,
			PlaceID:     d.PlaceID,
			UnitID:      d.UnitID,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": out})
}
