package rest

import (
	"encoding/json"
	"net/http"

	"github.com/veskob/botezscan/internal/scanjob"
)

// ScanHandler proxies API calls to the scan job service
type ScanHandler struct {
	service *scanjob.Service
}

// NewScanHandler wires the REST layer to the scan job service
func NewScanHandler(service *scanjob.Service) *ScanHandler {
	return &ScanHandler{service: service}
}

// HandleScanRequest handles POST /api/v1/scan
func (h *ScanHandler) HandleScanRequest(w http.ResponseWriter, r *http.Request) {
	var req scanjob.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	job, err := h.service.Enqueue(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to enqueue scan job", err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job": job,
	})
}

// HandleScanStatus handles GET /api/v1/scan/status
func (h *ScanHandler) HandleScanStatus(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetStatus(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch status", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
