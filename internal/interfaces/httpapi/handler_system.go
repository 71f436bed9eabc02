package httpapi

import "net/http"

func (h *Handler) ListSources(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSources")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"sources":   h.feed.SourceStatus(),
		"cacheSize": h.feed.CacheSize(),
	})
}

func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearCache")
	defer span.End()

	h.feed.ClearCache(ctx)
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "cleared"})
}
