package httpapi

import (
	"net/http"

	"leaddash/internal/dataset"
)

type HealthHandler struct {
	Data *dataset.Cache
}

// Health reports ok once the dataset is loaded. It never triggers a load.
func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	rows := 0
	ok := h.Data != nil && h.Data.Loaded()
	if ok {
		ds, err := h.Data.Get(r.Context())
		ok = err == nil
		rows = ds.Len()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   ok,
		"rows": rows,
	})
}
