package health

import (
	"net/http"

	"github.com/evilazio/barbershop-booking/internal/api/handlers"
)

type Response struct {
	OK bool `json:"ok"`
}

// Handle GET /api/health
func Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{OK: true})
}
