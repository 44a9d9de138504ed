// Package agent routes prompt execution to a configured LLM provider.
// Configuration comes from a YAML file so the active provider can change
// without code changes.
package agent

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v2"

	"dealscope/pkg/core/llm"
)

type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

type AgentConfig struct {
	Provider    string `yaml:"provider"` // optional per-agent override
	Model       string `yaml:"model"`
	Description string `yaml:"description"`
}

// Manager holds the provider registry and the active configuration.
type Manager struct {
	mu        sync.RWMutex
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":   &llm.GeminiProvider{},
			"deepseek": &llm.DeepSeekProvider{},
		},
	}
}

// LoadConfig reads a Manager config from a YAML file. A missing file is not
// fatal: callers get the zero config and the manager falls back to Gemini.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse agent config %s: %w", path, err)
	}
	return cfg, nil
}

// GetProvider resolves the provider for an agent type, preferring the
// per-agent override, then the global active provider, then Gemini.
func (m *Manager) GetProvider(agentType string) llm.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p
		}
	}
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["gemini"]
}

// ModelFor returns the configured model override for an agent type, if any.
func (m *Manager) ModelFor(agentType string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if agentConfig, ok := m.config.Agents[agentType]; ok {
		return agentConfig.Model
	}
	return ""
}

// ActiveProvider reports the current global provider name.
func (m *Manager) ActiveProvider() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ActiveProvider
}

// Providers lists the registered provider names.
func (m *Manager) Providers() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	return names
}

// SetGlobalProvider switches the global active provider.
func (m *Manager) SetGlobalProvider(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("provider %s not found", name)
	}
	m.config.ActiveProvider = name
	return nil
}

// ExecutePrompt resolves the provider for the agent type and runs the prompt.
func (m *Manager) ExecutePrompt(ctx context.Context, agentType, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	provider := m.GetProvider(agentType)
	return provider.GenerateResponse(ctx, prompt, systemPrompt, options)
}
