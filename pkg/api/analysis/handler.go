// Package analysis exposes the deal-analysis HTTP surface: run, fetch, list,
// delete and report rendering. The handler validates requests, invokes the
// pure pipeline and persists results when a repository is configured.
package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"dealscope/pkg/core/finance"
	"dealscope/pkg/core/pipeline"
	"dealscope/pkg/core/proforma"
	"dealscope/pkg/core/report"
	"dealscope/pkg/core/store"
	"dealscope/pkg/models"
)

var validate = validator.New()

// RunRequest is the POST /api/analysis/run payload.
type RunRequest struct {
	Name    string                  `json:"name" validate:"required"`
	Address string                  `json:"address"`
	Inputs  proforma.PropertyInputs `json:"inputs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the analysis endpoints. A nil repo disables persistence;
// run requests still return the computed analysis.
type Handler struct {
	repo *store.DealRepo
	log  *logrus.Logger
}

func NewHandler(repo *store.DealRepo, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{repo: repo, log: log}
}

// HandleRun validates the payload, runs the projection pipeline and saves
// the result when possible.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if err := validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := pipeline.Run(&req.Inputs)
	if err != nil {
		status := http.StatusInternalServerError
		if finance.IsInvalidInput(err) {
			status = http.StatusUnprocessableEntity
		}
		respondJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	deal := &models.Deal{
		ID:        uuid.New(),
		Name:      req.Name,
		Address:   req.Address,
		Analysis:  result,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if h.repo != nil {
		if err := h.repo.Save(r.Context(), deal); err != nil {
			// The analysis itself succeeded; losing persistence is degraded
			// service, not a failed request.
			h.log.WithError(err).WithField("deal", deal.ID).Warn("failed to persist analysis")
		}
	}

	h.log.WithFields(logrus.Fields{
		"deal": deal.ID,
		"name": deal.Name,
		"irr":  result.Returns.IRRPercent,
	}).Info("analysis completed")

	respondJSON(w, http.StatusOK, deal)
}

// HandleGet returns one saved deal with its full analysis.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	deal, ok := h.loadDeal(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, deal)
}

// HandleList returns lightweight listings of all saved deals.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "persistence not configured"})
		return
	}
	listings, err := h.repo.List(r.Context())
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if listings == nil {
		listings = []models.DealListing{}
	}
	respondJSON(w, http.StatusOK, listings)
}

// HandleDelete removes a saved deal.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "persistence not configured"})
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid deal id"})
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrDealNotFound) {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "deal not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleReport renders the saved analysis as an HTML report.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	deal, ok := h.loadDeal(w, r)
	if !ok {
		return
	}
	html, err := report.HTML(deal)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

func (h *Handler) loadDeal(w http.ResponseWriter, r *http.Request) (*models.Deal, bool) {
	if h.repo == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "persistence not configured"})
		return nil, false
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid deal id"})
		return nil, false
	}
	deal, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrDealNotFound) {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "deal not found"})
			return nil, false
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return nil, false
	}
	return deal, true
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
