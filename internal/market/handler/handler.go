package handler

import (
	"encoding/json"
	"net/http"

	"marketsnap/internal/domain"
)

type Validator interface {
	ValidateFields(fields []string) error
	ValidatePair(pair string) error
	ProjectableFields() []string
}

type Service interface {
	Market(pair string) (domain.Market, error)
	Assets() map[string]domain.Asset
	ProjectedMarkets(fields []string) map[string]map[string]any
	MarketSpecs() ([]byte, error)
	MarketState() ([]byte, error)
}

type Handler struct {
	validator Validator
	service   Service
}

func NewMarketHandler(validator Validator, service Service) *Handler {
	return &Handler{validator: validator, service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// Ping is the liveness endpoint.
func Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "pong"})
}
