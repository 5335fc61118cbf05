package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"fundraiser/internal/auth"
	"fundraiser/internal/domain"
	"fundraiser/internal/infra/geoip"
	"fundraiser/internal/payments"
	"fundraiser/internal/storage"
)

// App bundles the handler dependencies: repositories, the token service, the
// payment gateway and the receipt store.
type App struct {
	Logger    zerolog.Logger
	Tokens    *auth.TokenService
	Donations domain.DonationRepository
	Batches   domain.BatchRepository
	Users     domain.UserRepository

	// Gateway mints orders for gateway-backed payment methods; Local covers
	// cash and direct entries. GatewaySecret is the shared key the callback
	// signature is verified against. It is never logged or echoed.
	Gateway       payments.Gateway
	Local         payments.LocalGateway
	GatewaySecret string

	Receipts storage.Storage
	Geo      geoip.CountryResolver
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]string{"error": kind, "message": message})
}
