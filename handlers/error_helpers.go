package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"gastos/shared"
)

func writeApiError(w http.ResponseWriter, apiErr shared.ApiError) {
	bytes, err := json.Marshal(apiErr)

	if err != nil {
		log.Printf("Error marshalling api error: %v\n", err)
		http.Error(w, "Error marshalling api error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	w.Write(bytes)
}
