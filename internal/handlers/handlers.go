// Package handlers implements the HTTP surface of the webhook verifier.
// It extracts the signature string from the configured request header, the
// payload from the raw request body, and the shared secret from
// configuration, then delegates to the signature package. The replay
// window is enforced here: verification itself only establishes
// authenticity and exposes the signing timestamp.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"webhook-verifier/internal/common/logging"
	"webhook-verifier/internal/config"
	"webhook-verifier/internal/middleware"
	"webhook-verifier/internal/signature"
)

// maxBodyBytes caps webhook bodies; deliveries are small JSON documents
const maxBodyBytes = 1 << 20

// Handlers holds the dependencies of the HTTP handlers
type Handlers struct {
	cfg    *config.Config
	logger logging.Logger
	now    func() time.Time
}

// New creates the HTTP handlers
func New(cfg *config.Config, logger logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Handlers{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Router builds the service routes
func (h *Handlers) Router() http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Logging)
	router.HandleFunc("/webhook/{source}", h.HandleWebhook).Methods("POST")
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
	return router
}

// webhookResponse is returned for an accepted delivery
type webhookResponse struct {
	Status    string `json:"status"`
	Source    string `json:"source"`
	Timestamp int64  `json:"timestamp"`
}

// errorResponse is returned for a rejected delivery
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// HandleWebhook verifies and accepts a single webhook delivery
func (h *Handlers) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	source := mux.Vars(r)["source"]

	secret, ok := h.cfg.SecretFor(source)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no secret configured for source"})
		return
	}

	sig := r.Header.Get(h.cfg.SignatureHeader)
	if sig == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing signature header"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
		return
	}

	result, err := signature.Verify(body, sig, []byte(secret))
	if err != nil {
		h.logger.Warn("webhook rejected",
			logging.Field{Key: "source", Value: source},
			logging.Field{Key: "kind", Value: string(signature.KindOf(err))},
			logging.Err(err),
		)
		writeJSON(w, statusForKind(signature.KindOf(err)), errorResponse{
			Error: err.Error(),
			Kind:  string(signature.KindOf(err)),
		})
		return
	}

	if h.cfg.Tolerance > 0 {
		age := h.now().Sub(result.Timestamp)
		if age < 0 {
			age = -age
		}
		if age > h.cfg.Tolerance {
			h.logger.Warn("webhook outside replay window",
				logging.Field{Key: "source", Value: source},
				logging.Field{Key: "timestamp", Value: result.Timestamp},
				logging.Field{Key: "age", Value: age.String()},
			)
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "timestamp outside replay window", Kind: "stale_timestamp"})
			return
		}
	}

	h.logger.Info("webhook verified",
		logging.Field{Key: "source", Value: source},
		logging.Field{Key: "timestamp", Value: result.Timestamp},
		logging.Field{Key: "event_type", Value: eventType(result.Event)},
	)

	writeJSON(w, http.StatusOK, webhookResponse{
		Status:    "verified",
		Source:    source,
		Timestamp: result.Timestamp.UnixMilli(),
	})
}

// HandleHealth reports service liveness
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusForKind maps a verification failure to an HTTP status. A digest
// mismatch is an authentication failure; malformed signature strings are
// bad requests; an authentic but unparseable payload is unprocessable.
func statusForKind(kind signature.ErrorKind) int {
	switch kind {
	case signature.KindInvalidSignature:
		return http.StatusUnauthorized
	case signature.KindPayloadParse:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// eventType pulls the conventional "type" field out of an event object for
// logging, without assuming anything else about the payload schema
func eventType(event interface{}) string {
	obj, ok := event.(map[string]interface{})
	if !ok {
		return ""
	}
	typ, _ := obj["type"].(string)
	return typ
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
