package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kirillkom/idea-coach/internal/core/domain"
	"github.com/kirillkom/idea-coach/internal/core/ports"
	"github.com/kirillkom/idea-coach/internal/observability/metrics"
)

type Router struct {
	coach   ports.CoachService
	store   ports.SessionStore
	metrics *metrics.CoachMetrics
}

func NewRouter(coach ports.CoachService, store ports.SessionStore, m *metrics.CoachMetrics) *Router {
	return &Router{
		coach:   coach,
		store:   store,
		metrics: m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/sessions", rt.createSession)
	mux.HandleFunc("/v1/sessions/", rt.sessionSubtree)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	handler := http.Handler(mux)
	handler = accessLogMiddleware(handler, rt.metrics)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) createSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	session := rt.coach.StartSession(uuid.NewString())
	if err := rt.store.Create(r.Context(), session); err != nil {
		rt.writeError(w, r, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.SessionStarted()
	}
	writeJSON(w, http.StatusCreated, session)
}

// sessionSubtree dispatches /v1/sessions/{id} and /v1/sessions/{id}/messages.
func (rt *Router) sessionSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/sessions/")
	id, tail, _ := strings.Cut(rest, "/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "session id is required"})
		return
	}

	switch tail {
	case "":
		rt.getSession(w, r, id)
	case "messages":
		rt.postMessage(w, r, id)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (rt *Router) getSession(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	session, err := rt.store.Get(r.Context(), id)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (rt *Router) postMessage(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "content is required"})
		return
	}

	session, err := rt.store.Get(r.Context(), id)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	result, err := rt.coach.Converse(r.Context(), session, req.Content)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	// A failed turn still appended the retry notice; save so the
	// transcript survives, but report 503 so clients can back off.
	if err := rt.store.Save(r.Context(), session); err != nil {
		rt.writeError(w, r, err)
		return
	}

	rt.observeTurn(result)

	if result.Outcome == domain.TurnFailed {
		writeJSON(w, http.StatusServiceUnavailable, turnResponse(session, result))
		return
	}
	writeJSON(w, http.StatusOK, turnResponse(session, result))
}

func (rt *Router) observeTurn(result *domain.TurnResult) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.ObserveTurn(string(result.Outcome), result.RetrievedPassages)
	if result.Outcome == domain.TurnSummary {
		rt.metrics.SummaryProduced()
	}
}

func turnResponse(session *domain.Session, result *domain.TurnResult) map[string]any {
	resp := map[string]any{
		"outcome":            result.Outcome,
		"messages":           result.Messages,
		"retrieved_passages": result.RetrievedPassages,
		"stage":              session.Stage,
	}
	if session.Summary != "" {
		resp["summary"] = session.Summary
	}
	return resp
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= 500 {
		logError(r, err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
