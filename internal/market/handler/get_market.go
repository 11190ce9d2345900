package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"marketsnap/internal/domain"
)

// GetMarket serves one market by its pair key.
func (h *Handler) GetMarket(w http.ResponseWriter, r *http.Request) {
	pair := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "pair")))

	if err := h.validator.ValidatePair(pair); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.service.Market(pair)
	if err != nil {
		if errors.Is(err, domain.ErrMarketNotFound) {
			writeError(w, http.StatusNotFound, "market not found")
			return
		}
		msg := "ups, couldn't get market this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetMarket", "pair": pair}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, m)
}
