package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"holdem-table/internal/auth"
)

// HTTPHandler serves hand history over JSON. Every route resolves the
// bearer token through the auth service before touching the ledger.
type HTTPHandler struct {
	auth   auth.Service
	ledger Service
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPHandler(authService auth.Service, ledgerService Service) *HTTPHandler {
	return &HTTPHandler{auth: authService, ledger: ledgerService}
}

func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/hands/recent", h.handleRecent)
	mux.HandleFunc("/api/hands/", h.handleHand)
	mux.HandleFunc("/api/balance", h.handleBalance)
}

func (h *HTTPHandler) handleRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	accountID, ok := h.resolveAccountID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid session token")
		return
	}

	limit := parseLimit(r.URL.Query().Get("limit"))
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	items, err := h.ledger.RecentHands(ctx, accountID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query recent hands failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *HTTPHandler) handleHand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	accountID, ok := h.resolveAccountID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid session token")
		return
	}

	handID := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/api/hands/"))
	if handID == "" {
		writeError(w, http.StatusBadRequest, "missing hand id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	tape, err := h.ledger.GetHand(ctx, accountID, handID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "hand not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "query hand failed")
		return
	}
	writeJSON(w, http.StatusOK, tape)
}

func (h *HTTPHandler) handleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	accountID, ok := h.resolveAccountID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid session token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	balance, err := h.ledger.Balance(ctx, accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query balance failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"balance": balance})
}

func (h *HTTPHandler) resolveAccountID(r *http.Request) (uint64, bool) {
	raw := r.Header.Get("Authorization")
	if !strings.HasPrefix(raw, "Bearer ") {
		return 0, false
	}
	token := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	accountID, _, ok := h.auth.ResolveSession(token)
	return accountID, ok
}

func parseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
