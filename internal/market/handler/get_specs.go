package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// GetMarketSpecs serves the base-metadata view of all markets.
func (h *Handler) GetMarketSpecs(w http.ResponseWriter, _ *http.Request) {
	body, err := h.service.MarketSpecs()
	if err != nil {
		msg := "ups, couldn't render market specs this time"
		logrus.WithError(err).WithField("handler", "GetMarketSpecs").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
