package handler

import (
	"net/http"
	"strings"
)

// GetMarkets serves the fields= projection: every market reduced to at
// most three caller-chosen fields.
func (h *Handler) GetMarkets(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("fields")
	fields := strings.Split(raw, ",")
	if raw == "" {
		fields = nil
	}

	if err := h.validator.ValidateFields(fields); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.service.ProjectedMarkets(fields))
}
