package handler

import (
	"net/http"

	"github.com/miikama/game-lobby-REST-backend/internal/api/response"
)

// Health handles GET /, /index and /health
func Health(w http.ResponseWriter, _ *http.Request) {
	response.OK(w)
}
