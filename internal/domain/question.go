package domain

import "time"

// Question carries both the legacy flat references and the generalized
// taxonomy reference. TaxonomyID is empty until the row is migrated.
type Question struct {
	ID           string
	ThemeID      string
	SubthemeID   string
	GroupID      string
	TaxonomyID   string
	TaxonomyPath []string
	Code         string
	Content      string
	CreatedAt    time.Time
}

// LeafID returns the leaf-most flat reference.
func (q *Question) LeafID() string {
	switch {
	case q.GroupID != "":
		return q.GroupID
	case q.SubthemeID != "":
		return q.SubthemeID
	default:
		return q.ThemeID
	}
}

// Namespaces lists the global namespace plus every taxonomy namespace the
// question belongs to.
func (q *Question) Namespaces() []Namespace {
	ns := []Namespace{GlobalNamespace, {Kind: NodeTypeTheme, ID: q.ThemeID}}
	if q.SubthemeID != "" {
		ns = append(ns, Namespace{Kind: NodeTypeSubtheme, ID: q.SubthemeID})
	}
	if q.GroupID != "" {
		ns = append(ns, Namespace{Kind: NodeTypeGroup, ID: q.GroupID})
	}
	return ns
}

// QuestionRef is the minimal row used by scans and counters.
type QuestionRef struct {
	ID        string
	CreatedAt time.Time
}
