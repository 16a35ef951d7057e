package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"blogspot/app/middleware"
	"blogspot/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const msgPostNotFound = "The post with the specified ID does not exist."

// maxBodyBytes caps request bodies; larger ones fail to decode.
const maxBodyBytes = 1 << 20

// ErrorResponse is sent when the storage backend fails.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is sent for missing resources and informational replies.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse is sent when a create request is missing fields.
type ValidationErrorResponse struct {
	ErrorMessage string `json:"errorMessage"`
}

// failure describes how one endpoint reports its errors.
type failure struct {
	invalid any    // body for a 400
	storage string // message for a 500
}

func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError maps a service error onto the endpoint's status and payload.
func sendError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error, f failure) {
	var storageErr *services.StorageError
	switch {
	case errors.Is(err, services.ErrInvalidPost), errors.Is(err, services.ErrInvalidComment):
		sendJSON(w, http.StatusBadRequest, f.invalid)
	case errors.Is(err, services.ErrPostNotFound):
		sendJSON(w, http.StatusNotFound, MessageResponse{Message: msgPostNotFound})
	case errors.As(err, &storageErr):
		log.Error("storage failure",
			zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
			zap.String("op", storageErr.Op),
			zap.Error(storageErr.Err))
		sendJSON(w, http.StatusInternalServerError, ErrorResponse{Error: f.storage})
	default:
		log.Error("unexpected error", zap.Error(err))
		middleware.WriteUnhandled(w, err)
	}
}

// decodeJSON reads the request body into dst. Any decode failure, including
// a body over maxBodyBytes, is reported as the endpoint's validation error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst) == nil
}

// pathID reads an id route variable. Values that are not an int, or do not
// fit one, become 0, which is never issued, so they end up as a missing post.
func pathID(r *http.Request, name string) int {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0
	}
	return id
}
