// Command server exposes the profile store and the cost model over a local
// JSON API.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/printcalc/internal/config"
	"github.com/Simplici0/printcalc/internal/logging"
	"github.com/Simplici0/printcalc/internal/pricing"
	"github.com/Simplici0/printcalc/internal/profile"
	"github.com/Simplici0/printcalc/internal/seed"
	"github.com/Simplici0/printcalc/internal/store"
)

type server struct {
	store    *store.Store
	logger   *zap.Logger
	currency string
	defaults profile.GlobalSettings
}

type estimateRequest struct {
	Printer  string `json:"printer"`
	Material string `json:"material"`
	Part     string `json:"part"`
	Archive  bool   `json:"archive"`
}

type estimateResponse struct {
	Printer   string            `json:"printer"`
	Material  string            `json:"material"`
	Part      string            `json:"part"`
	Instances int               `json:"instances"`
	Currency  string            `json:"currency"`
	Breakdown pricing.Breakdown `json:"cost_details"`
	Archived  *store.Result     `json:"archived,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "server: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	st, err := store.Open(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open profile store", zap.Error(err))
	}
	defer st.Close()

	settings, stats := seed.Run(st, cfg.DefaultSettings, logger)
	logger.Info("global settings ready",
		zap.Int("inserts", stats.Inserts),
		zap.Float64("labor_cost_per_hour", settings.LaborCostPerHour))

	srv := &server{store: st, logger: logger, currency: cfg.Currency, defaults: cfg.DefaultSettings}

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/printers", s.handlePrinters)
		r.Get("/materials", s.handleMaterials)
		r.Get("/parts", s.handleParts)
		r.Get("/settings", s.handleSettings)
		r.Get("/results", s.handleResults)
		r.Get("/results/{part}", s.handleResult)
		r.Post("/estimates", s.handleEstimate)
	})
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handlePrinters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Printers().All())
}

func (s *server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Materials().All())
}

func (s *server) handleParts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Parts().All())
}

func (s *server) handleSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.settings())
}

func (s *server) handleResults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Results())
}

func (s *server) handleResult(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "part")
	result, ok := s.store.Results()[name]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no archived result for part %q", name))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Printer = strings.TrimSpace(req.Printer)
	req.Material = strings.TrimSpace(req.Material)
	req.Part = strings.TrimSpace(req.Part)
	if req.Printer == "" || req.Material == "" || req.Part == "" {
		writeError(w, http.StatusBadRequest, "printer, material and part are required")
		return
	}

	printer, ok := s.store.Printers().Get(req.Printer)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("printer profile %q not found", req.Printer))
		return
	}
	material, ok := s.store.Materials().Get(req.Material)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("material profile %q not found", req.Material))
		return
	}
	part, ok := s.store.Parts().Get(req.Part)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("part profile %q not found", req.Part))
		return
	}

	breakdown, err := pricing.Calculate(printer, material, part, s.settings())
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidProfile) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to calculate costs")
		return
	}

	resp := estimateResponse{
		Printer:   printer.Name,
		Material:  material.Name,
		Part:      part.Name,
		Instances: part.Instances,
		Currency:  s.currency,
		Breakdown: breakdown.Rounded(),
	}
	if req.Archive {
		if result, ok := s.store.Archive(part.Name, printer.Name, material.Name, s.currency, breakdown); ok {
			resp.Archived = &result
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// settings reads the stored global settings on every request so edits to the
// store are picked up without a restart.
func (s *server) settings() profile.GlobalSettings {
	if settings, ok := s.store.Settings(); ok {
		return settings
	}
	return s.defaults
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
