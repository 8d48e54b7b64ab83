package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes data with the given status. Membership state changes on
// every request, so responses are never cached. The body is encoded
// before the header is sent; a value that cannot be encoded becomes a
// bare 500 rather than a truncated success.
func JSON(w http.ResponseWriter, status int, data any) {
	var body []byte
	if data != nil {
		var err error
		if body, err = json.Marshal(data); err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		body = append(body, '\n')
	}

	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Created answers 201 with the new resource's path in Location
func Created(w http.ResponseWriter, location string, data any) {
	w.Header().Set("Location", location)
	JSON(w, http.StatusCreated, data)
}

// OK acknowledges a membership change that returns no resource
func OK(w http.ResponseWriter) {
	JSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
