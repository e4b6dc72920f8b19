package delivery

import (
	"net/http"
	"strconv"

	"taskbridge/internal/api"
)

type Handlers struct {
	Repo *Repository
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		api.WriteError(w, http.StatusServiceUnavailable, "delivery log is not configured")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.Repo.ListRecent(r.Context(), limit)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
