package api

import (
	"marketsnap/internal/market/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(marketHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Get("/ping", handler.Ping)

	router.Get("/api/v1/markets", marketHandler.GetMarkets)
	router.Get("/api/v1/markets/specs", marketHandler.GetMarketSpecs)
	router.Get("/api/v1/markets/state", marketHandler.GetMarketState)
	router.Get("/api/v1/markets/{pair}", marketHandler.GetMarket)
	router.Get("/api/v1/assets", marketHandler.GetAssets)
	return router
}
