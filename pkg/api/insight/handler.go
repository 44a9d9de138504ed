// Package insight exposes narrative-verdict generation for saved deals.
package insight

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	coreinsight "dealscope/pkg/core/insight"
	"dealscope/pkg/core/store"
)

// Handler serves POST /api/insight/{id}.
type Handler struct {
	repo      *store.DealRepo
	generator *coreinsight.Generator
	log       *logrus.Logger
}

func NewHandler(repo *store.DealRepo, generator *coreinsight.Generator, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{repo: repo, generator: generator, log: log}
}

// HandleGenerate loads the saved analysis and asks the configured LLM for a
// verdict. The numeric analysis is never modified by this path.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid deal id")
		return
	}

	deal, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrDealNotFound) {
			respondError(w, http.StatusNotFound, "deal not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	verdict, err := h.generator.Generate(r.Context(), deal.Analysis)
	if err != nil {
		h.log.WithError(err).WithField("deal", id).Error("insight generation failed")
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(verdict)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
