package endpoints

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/vinledger/vinledger/pkg/server"
	"github.com/vinledger/vinledger/pkg/server/store"
)

// errorBody is the structured failure envelope returned to clients.
// The message is the reason string the client must surface verbatim.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, code, message string) {
	respondJSON(w, statusCode, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// respondStoreError maps the store error taxonomy onto HTTP statuses
// and structured codes. Unknown errors become opaque 500s so internal
// detail does not leak.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrUnauthorized):
		respondWithError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, store.ErrNotRegistered):
		respondWithError(w, http.StatusNotFound, "not_registered", err.Error())
	case errors.Is(err, store.ErrAlreadyRegistered):
		respondWithError(w, http.StatusConflict, "already_registered", err.Error())
	case errors.Is(err, store.ErrInvalidAddress):
		respondWithError(w, http.StatusUnprocessableEntity, "invalid_address", err.Error())
	case errors.Is(err, store.ErrEmptyVIN):
		respondWithError(w, http.StatusUnprocessableEntity, "empty_vin", err.Error())
	case errors.Is(err, store.ErrOutOfRange):
		respondWithError(w, http.StatusNotFound, "out_of_range", err.Error())
	case errors.Is(err, store.ErrBadNonce):
		respondWithError(w, http.StatusConflict, "bad_nonce", err.Error())
	case errors.Is(err, store.ErrInvalidRole):
		respondWithError(w, http.StatusUnprocessableEntity, "invalid_role", err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// getClientIP resolves the caller's address for audit events. The
// X-Forwarded-For header is honored only when the direct peer is a
// configured trusted proxy.
func getClientIP(s *server.Server, r *http.Request) string {
	clientIP := r.RemoteAddr
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return clientIP
	}

	host := clientIP
	if h, _, err := net.SplitHostPort(clientIP); err == nil {
		host = h
	}
	if s.Config != nil && !s.Config.IsTrustedProxy(host) {
		return clientIP
	}
	return forwarded
}
