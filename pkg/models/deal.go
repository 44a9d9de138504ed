// Package models defines the records shared between the API and store.
package models

import (
	"time"

	"github.com/google/uuid"

	"dealscope/pkg/core/pipeline"
)

// Deal is a saved analysis: identity plus the full computed result.
type Deal struct {
	ID        uuid.UUID                `json:"id"`
	Name      string                   `json:"name"`
	Address   string                   `json:"address,omitempty"`
	Analysis  *pipeline.AnalysisResult `json:"analysis"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// DealListing is the lightweight row returned by list queries.
type DealListing struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
