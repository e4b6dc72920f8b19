package webhook

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"taskbridge/internal/api"
	"taskbridge/internal/delivery"
	"taskbridge/internal/forward"
	"taskbridge/internal/normalize"
	"taskbridge/pkg/config"
)

type Handler struct {
	Cfg      config.Config
	Pipeline *normalize.Pipeline

	// Deliveries is optional; without it webhooks are processed statelessly.
	Deliveries *delivery.Repository

	// Forwarder is optional; the sync endpoint refuses requests without it.
	Forwarder *forward.Forwarder
}

// Normalize handles POST /v1/webhooks/normalize: run the pipeline and echo
// the normalized record back as a one-element array (the shape the relay
// expects).
func (h Handler) Normalize(w http.ResponseWriter, r *http.Request) {
	rec, kind, body, ok := h.process(w, r)
	if !ok {
		return
	}

	h.record(r, kind, body, rec)

	api.WriteJSON(w, http.StatusOK, []normalize.Record{rec})
}

// Sync handles POST /v1/webhooks/sync: normalize, then synchronously upsert
// the record into the task tracker.
func (h Handler) Sync(w http.ResponseWriter, r *http.Request) {
	rec, kind, body, ok := h.process(w, r)
	if !ok {
		return
	}

	if h.Forwarder == nil {
		api.WriteError(w, http.StatusServiceUnavailable, "task forwarding is not configured")
		return
	}
	if rec.Email == nil {
		api.WriteError(w, http.StatusBadRequest, "payload has no email to upsert by")
		return
	}

	duplicate := h.record(r, kind, body, rec)

	res, err := h.Forwarder.Sync(r.Context(), rec)
	if err != nil {
		log.Printf("task upsert failed kind=%s err=%v", kind, err)
		api.WriteError(w, http.StatusBadGateway, "task service upsert failed")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"task_id":    res.TaskID,
		"created":    res.Created,
		"operations": res.Operations,
		"duplicate":  duplicate,
		"record":     rec,
	})
}

func (h Handler) process(w http.ResponseWriter, r *http.Request) (normalize.Record, normalize.Kind, []byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		api.WriteError(w, http.StatusBadRequest, "missing request body")
		return normalize.Record{}, "", nil, false
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return normalize.Record{}, "", nil, false
	}

	rec, kind, err := h.Pipeline.Normalize(raw)
	if err != nil {
		var payloadErr normalize.PayloadError
		var eventErr normalize.UnsupportedEventError
		switch {
		case errors.As(err, &payloadErr), errors.As(err, &eventErr):
			api.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("normalize failed err=%v", err)
			api.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return normalize.Record{}, "", nil, false
	}

	return rec, kind, body, true
}

// record logs the delivery when a repository is configured. It reports
// whether this payload was seen before; storage errors are logged and
// swallowed so the webhook response never depends on the database.
func (h Handler) record(r *http.Request, kind normalize.Kind, body []byte, rec normalize.Record) bool {
	if h.Deliveries == nil {
		return false
	}

	inserted, err := h.Deliveries.Insert(r.Context(), string(kind), sha256Hex(body), rec)
	if err != nil {
		log.Printf("delivery log insert failed kind=%s err=%v", kind, err)
		return false
	}
	return !inserted
}

func sha256Hex(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
