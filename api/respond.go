package api

import (
	"encoding/json"
	"net/http"

	"product_catalog/service"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// writeResponse maps a catalog response onto HTTP.
func writeResponse(w http.ResponseWriter, resp service.Response) {
	switch resp.Status {
	case service.StatusOK:
		if resp.Body == nil {
			w.WriteHeader(http.StatusOK)
			return
		}
		respondJSON(w, http.StatusOK, resp.Body)
	case service.StatusBadRequest:
		respondError(w, http.StatusBadRequest, resp.Message)
	default:
		respondError(w, http.StatusInternalServerError, resp.Message)
	}
}
