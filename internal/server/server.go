package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rgehrsitz/ontax/internal/breakeven"
	"github.com/rgehrsitz/ontax/internal/calculation"
	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Handler serves tax breakdowns over HTTP
type Handler struct {
	Engine *calculation.CalculationEngine
	Log    *logrus.Entry
}

// NewHandler creates a handler; a nil log uses the standard logrus logger
func NewHandler(engine *calculation.CalculationEngine, log *logrus.Entry) *Handler {
	if log == nil {
		log = logrus.WithField("module", "server")
	}
	return &Handler{Engine: engine, Log: log}
}

// Router builds the chi router with all routes and middleware
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(h.Log))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", h.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/fields", h.fields)
		r.Get("/breakdown", h.breakdown)
		r.Get("/tax", h.tax)
		r.Get("/solve", h.solve)
	})
	return r
}

// FieldValue is the body of a single-field response
type FieldValue struct {
	Income decimal.Decimal `json:"income"`
	Field  string          `json:"field"`
	Value  decimal.Decimal `json:"value"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	success(w, map[string]any{"status": "ok", "dataYear": h.Engine.DataYear}, GetRequestID(r.Context()))
}

func (h *Handler) fields(w http.ResponseWriter, r *http.Request) {
	success(w, domain.FieldNames(), GetRequestID(r.Context()))
}

func (h *Handler) breakdown(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	income, err := parseIncome(r)
	if err != nil {
		h.writeError(w, err, reqID)
		return
	}
	b, err := h.Engine.Breakdown(income)
	if err != nil {
		h.writeError(w, err, reqID)
		return
	}
	success(w, b, reqID)
}

func (h *Handler) tax(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	income, err := parseIncome(r)
	if err != nil {
		h.writeError(w, err, reqID)
		return
	}
	field, err := domain.ParseField(r.URL.Query().Get("field"))
	if err != nil {
		h.writeError(w, err, reqID)
		return
	}
	value, err := h.Engine.TaxBreakdown(income, field)
	if err != nil {
		h.writeError(w, err, reqID)
		return
	}
	success(w, FieldValue{Income: income, Field: field.String(), Value: value}, reqID)
}

func (h *Handler) solve(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	raw := r.URL.Query().Get("target")
	target, err := domain.ParseAmount("target", raw)
	if err != nil {
		h.writeError(w, err, reqID)
		return
	}
	fieldName := r.URL.Query().Get("field")
	if fieldName == "" {
		fieldName = domain.FieldNetPay.String()
	}
	field, err := domain.ParseField(fieldName)
	if err != nil {
		h.writeError(w, err, reqID)
		return
	}

	res, err := breakeven.NewDefaultSolver(h.Engine).Solve(r.Context(), breakeven.SolveRequest{Field: field, Target: target})
	if err != nil {
		h.writeError(w, err, reqID)
		return
	}
	success(w, res, reqID)
}

func parseIncome(r *http.Request) (decimal.Decimal, error) {
	raw := r.URL.Query().Get("income")
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: income is required", domain.ErrInvalidInput)
	}
	return domain.ParseAmount("income", raw)
}

func (h *Handler) writeError(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		fail(w, http.StatusBadRequest, "invalid_input", err.Error(), reqID)
	case errors.Is(err, domain.ErrInvalidArgument):
		fail(w, http.StatusBadRequest, "invalid_argument", err.Error(), reqID)
	case errors.Is(err, domain.ErrDomain):
		fail(w, http.StatusUnprocessableEntity, "domain_error", err.Error(), reqID)
	default:
		h.Log.WithError(err).WithField("requestId", reqID).Error("breakdown failed")
		fail(w, http.StatusInternalServerError, "internal", "internal error", reqID)
	}
}

// ListenAndServe runs the server until ctx is cancelled
func ListenAndServe(ctx context.Context, addr string, h *Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.Log.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		h.Log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
