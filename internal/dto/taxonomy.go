package dto

import (
	"time"

	"qbank/internal/domain"
)

// CreateTaxonomyNodeRequest creates a theme when parentId is empty.
// @Description Request body for creating a taxonomy node
type CreateTaxonomyNodeRequest struct {
	ParentID string `json:"parentId,omitempty"`
	Name     string `json:"name"`
	Prefix   string `json:"prefix,omitempty"`
}

// RenameTaxonomyNodeRequest keeps the current prefix when prefix is empty.
// @Description Request body for renaming a taxonomy node
type RenameTaxonomyNodeRequest struct {
	Name   string `json:"name"`
	Prefix string `json:"prefix,omitempty"`
}

// TaxonomyNodeResponse represents a taxonomy node in the API response
type TaxonomyNodeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	ParentID  string    `json:"parentId,omitempty"`
	PathIDs   []string  `json:"pathIds"`
	PathNames []string  `json:"pathNames"`
	Prefix    string    `json:"prefix"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewTaxonomyNodeResponse(n *domain.TaxonomyNode) TaxonomyNodeResponse {
	return TaxonomyNodeResponse{
		ID:        n.ID,
		Name:      n.Name,
		Type:      string(n.Type),
		ParentID:  n.ParentID,
		PathIDs:   n.PathIDs,
		PathNames: n.PathNames,
		Prefix:    n.Prefix,
		UpdatedAt: n.UpdatedAt,
	}
}
