package handlers

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type leaderboardEntry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TotalAmount  int64  `json:"total_amount"`
	TotalDisplay string `json:"total_display"`
}

var amountPrinter = message.NewPrinter(language.English)

// displayAmount renders a minor-unit amount as grouped rupees, e.g. 123456
// paise -> "₹1,234.56".
func displayAmount(minor int64) string {
	return amountPrinter.Sprintf("₹%v", number.Decimal(float64(minor)/100,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// BatchLeaderboard serves the public leaderboard from the denormalized
// batch totals.
func (a *App) BatchLeaderboard(w http.ResponseWriter, r *http.Request) {
	batches, err := a.Batches.Leaderboard(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("load leaderboard failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load leaderboard")
		return
	}
	entries := make([]leaderboardEntry, 0, len(batches))
	for _, b := range batches {
		entries = append(entries, leaderboardEntry{
			ID:           b.ID,
			Name:         b.Name,
			TotalAmount:  b.TotalAmount,
			TotalDisplay: displayAmount(b.TotalAmount),
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": entries})
}
