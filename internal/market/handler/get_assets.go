package handler

import (
	"net/http"
)

// GetAssets serves the full asset snapshot.
func (h *Handler) GetAssets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Assets())
}
