package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// GetMarketState serves the derived-statistics view of all markets.
func (h *Handler) GetMarketState(w http.ResponseWriter, _ *http.Request) {
	body, err := h.service.MarketState()
	if err != nil {
		msg := "ups, couldn't render market state this time"
		logrus.WithError(err).WithField("handler", "GetMarketState").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
