package internal

import (
	"encoding/json"
	"net/http"
	"strings"
)

// listParams holds the query parameters list endpoints accept. Collections
// are small enough that lists come back whole; ordering is the only knob,
// and the entity service whitelists the key.
type listParams struct {
	sort string
}

func parseListParams(r *http.Request) listParams {
	return listParams{
		sort: strings.TrimSpace(r.URL.Query().Get("sort")),
	}
}

// sendListResponse writes the list envelope shared by every collection.
func sendListResponse(w http.ResponseWriter, data any, total int) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"data":  data,
		"total": total,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
