package controllers

import (
	"io"
	"net/http"
)

// Home serves the landing page.
func Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "<h1>The Blog Spot</h1>")
}

// APIStatus reports that the API is up.
func APIStatus(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, MessageResponse{Message: "Blog Spot API is active."})
}

// NotFound answers every unmatched path or method.
func NotFound(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusNotFound, MessageResponse{Message: "Oops!! We couldn't find that page."})
}
