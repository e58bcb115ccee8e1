package api

import (
	"encoding/json"
	"log"
	"net/http"

	"oabstudy/internal/models"
)

// SendErrorResponse writes {success:false, message} with the given status.
func SendErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{Success: false, Message: message})
}

// SendSuccessResponse writes {success:true, data} with status 200.
func SendSuccessResponse[T any](w http.ResponseWriter, data T) {
	sendJSON(w, http.StatusOK, models.Envelope[T]{Success: true, Data: data})
}

func sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// decodeBody reads a JSON request body into v, answering 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Requisição inválida")
		return false
	}
	return true
}
