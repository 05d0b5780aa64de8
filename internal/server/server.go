// Package server serves the allocation web UI and a small JSON API used by it.
package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/iwvelando/asset-allocation/internal/allocation"
	"github.com/iwvelando/asset-allocation/internal/plan"
	"github.com/iwvelando/asset-allocation/pkg/constants"
	"github.com/iwvelando/asset-allocation/pkg/validation"
)

//go:embed static/*
var staticFiles embed.FS

// Options configures the handler.
type Options struct {
	PlanPath       string
	Selector       string
	Report         allocation.ReportConfig
	StaticDir      string
	MaxRequestSize int64
	Version        string
}

type handler struct {
	logger *zap.Logger
	opts   Options
}

// NewHandler constructs the HTTP handler that serves the web UI and allocation API.
// The plan file is read on every request so edits show up without a restart.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxRequestSize <= 0 {
		opts.MaxRequestSize = constants.DefaultMaxRequestSizeBytes
	}
	if opts.PlanPath == "" {
		opts.PlanPath = constants.DefaultPlanFile
	}
	opts.Version = strings.TrimSpace(opts.Version)
	if opts.Version == "" {
		opts.Version = "dev"
	}

	h := &handler{logger: logger, opts: opts}

	mux := http.NewServeMux()
	mux.HandleFunc("/plan.json", h.handlePlanFile)
	mux.HandleFunc("/api/plan", h.handlePlan)
	mux.HandleFunc("/api/allocate", h.handleAllocate)
	mux.HandleFunc("/api/version", h.handleVersion)

	var root http.FileSystem
	if opts.StaticDir != "" {
		root = http.Dir(opts.StaticDir)
	} else {
		sub, err := fs.Sub(staticFiles, "static")
		if err != nil {
			panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
		}
		root = http.FS(sub)
	}
	mux.Handle("/", http.FileServer(root))

	return mux
}

type planResponse struct {
	Plan     plan.Plan      `json:"plan"`
	Sum      float64        `json:"sum"`
	Warnings []plan.Warning `json:"warnings,omitempty"`
}

type allocateRequest struct {
	TotalAssets json.RawMessage `json:"totalAssets"`
}

// total accepts the amount as a JSON number or as a string such as "100,000".
func (req allocateRequest) total() (float64, error) {
	raw := bytes.TrimSpace(req.TotalAssets)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, errors.New("totalAssets is required")
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, fmt.Errorf("invalid totalAssets: %w", err)
		}
	}
	return validation.ParseTotalAssets(text)
}

type allocateResponse struct {
	TotalAssets float64                    `json:"totalAssets"`
	Results     []allocation.Result        `json:"results"`
	Categories  []allocation.CategoryTotal `json:"categories"`
	Report      string                     `json:"report"`
	Warnings    []plan.Warning             `json:"warnings,omitempty"`
}

func (h *handler) loadPlan(w http.ResponseWriter, op string) (plan.Result, bool) {
	result, err := plan.ReadFile(h.opts.PlanPath, h.opts.Selector)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, plan.ErrSchema) {
			status = http.StatusUnprocessableEntity
		}
		h.respondErrorWithOp(w, status, err.Error(), op)
		return plan.Result{}, false
	}
	for _, warning := range result.Warnings {
		h.logger.Warn("plan warning: "+warning.Message,
			zap.String("op", op),
			zap.String("code", warning.Code),
			zap.Float64("sum", warning.Sum),
		)
	}
	return result, true
}

// handlePlanFile serves the validated plan in its canonical JSON shape.
func (h *handler) handlePlanFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	result, ok := h.loadPlan(w, "server.handlePlanFile")
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, result.Plan)
}

func (h *handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	result, ok := h.loadPlan(w, "server.handlePlan")
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, planResponse{
		Plan:     result.Plan,
		Sum:      result.Sum(),
		Warnings: result.Warnings,
	})
}

func (h *handler) handleAllocate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAllocate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxRequestSize)
	var req allocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.opts.MaxRequestSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	totalAssets, err := req.total()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	result, ok := h.loadPlan(w, op)
	if !ok {
		return
	}

	summary, err := allocation.Report(result.Plan, totalAssets, h.opts.Report)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, allocation.ErrInvalidArgument) {
			status = http.StatusBadRequest
		}
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	h.logger.Info("allocation computed",
		zap.String("op", op),
		zap.Float64("totalAssets", totalAssets),
		zap.Int("entries", len(summary.Results)),
		zap.Int("categories", summary.Categories.Len()),
	)

	h.writeJSON(w, http.StatusOK, allocateResponse{
		TotalAssets: summary.TotalAssets,
		Results:     summary.Results,
		Categories:  summary.Categories.Totals(),
		Report:      summary.Text,
		Warnings:    result.Warnings,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.opts.Version,
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
