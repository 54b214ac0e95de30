package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"vessel-logistics-service/internal/domain"
)

// envelope is the uniform response shape across all endpoints.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeData(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, r, http.StatusOK, envelope{Success: true, Data: data})
}

func writeDataMsg(w http.ResponseWriter, r *http.Request, data any, msg string) {
	writeJSON(w, r, http.StatusOK, envelope{Success: true, Data: data, Message: msg})
}

func writeList(w http.ResponseWriter, r *http.Request, data any, count int) {
	writeJSON(w, r, http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, envelope{Success: false, Error: msg})
}

// writeDomainError maps the typed error taxonomy onto status codes.
// Unknown errors are logged server-side and surfaced generically.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		writeError(w, r, http.StatusNotFound, nf.Error())
		return
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeError(w, r, http.StatusBadRequest, ve.Error())
		return
	}

	var be *domain.BusyError
	if errors.As(err, &be) {
		writeError(w, r, http.StatusConflict, be.Error())
		return
	}

	log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}
