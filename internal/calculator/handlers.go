package calculator

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"decimal-calc/internal/calculation"
	"decimal-calc/internal/handlers"
	"decimal-calc/internal/observability"
)

// Handler exposes a Session over HTTP.
type Handler struct {
	session *Session
}

func NewHandler(s *Session) *Handler {
	return &Handler{session: s}
}

// Calculate handles POST /calculator/{operation}
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	opName := chi.URLParam(r, "operation")

	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.LoggerWithTrace(ctx).Warn("invalid request body",
			zap.String("operation", opName),
			zap.Error(err),
			zap.String("request_id", observability.RequestIDFromContext(ctx)),
		)
		handlers.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out := h.session.Evaluate(ctx, req.A.String(), req.B.String(), opName)
	if out.Err != nil {
		handlers.WriteError(w, statusFor(out.Err), out.String())
		return
	}

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		ID:        out.ID,
		Operation: out.Operation,
		A:         out.A,
		B:         out.B,
		Result:    out.Result,
	})
}

// Operations handles GET /calculator/operations
func (h *Handler) Operations(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, OperationsResponse{Operations: h.session.Registry().Names()})
}

// History handles GET /calculator/history, optionally filtered by ?operation=
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	var calcs []calculation.Calculation
	if op := r.URL.Query().Get("operation"); op != "" {
		calcs = h.session.History().FindByOperation(op)
	} else {
		calcs = h.session.History().All()
	}

	resp := HistoryResponse{Calculations: make([]HistoryEntry, 0, len(calcs))}
	for _, c := range calcs {
		resp.Calculations = append(resp.Calculations, newHistoryEntry(c))
	}
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// Latest handles GET /calculator/history/latest
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	c, ok := h.session.History().Latest()
	if !ok {
		handlers.WriteError(w, http.StatusNotFound, noHistory)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, newHistoryEntry(c))
}

// ClearHistory handles DELETE /calculator/history
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.session.ClearHistory(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	switch errorKind(err) {
	case "unknown_operation":
		return http.StatusNotFound
	case "division_by_zero", "invalid_operand", "overflow":
		return http.StatusBadRequest
	case "worker_timeout":
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
