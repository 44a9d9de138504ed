// Package config exposes LLM provider selection at runtime.
package config

import (
	"encoding/json"
	"net/http"

	"dealscope/pkg/core/agent"
)

type Response struct {
	ActiveProvider string   `json:"active_provider"`
	Available      []string `json:"available"`
}

type SwitchRequest struct {
	Provider string `json:"provider"`
}

// Handler holds dependencies for config endpoints.
type Handler struct {
	AgentMgr *agent.Manager
}

func NewHandler(agentMgr *agent.Manager) *Handler {
	return &Handler{AgentMgr: agentMgr}
}

// HandleConfig reports the active provider and the registered alternatives.
func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	resp := Response{
		ActiveProvider: h.AgentMgr.ActiveProvider(),
		Available:      h.AgentMgr.Providers(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleSwitch changes the global active provider.
func (h *Handler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	var req SwitchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.AgentMgr.SetGlobalProvider(req.Provider); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{
		ActiveProvider: h.AgentMgr.ActiveProvider(),
		Available:      h.AgentMgr.Providers(),
	})
}
