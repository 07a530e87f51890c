package domain

import (
	"fmt"
	"time"
)

// NodeType is the depth of a taxonomy node.
type NodeType string

const (
	NodeTypeTheme    NodeType = "theme"
	NodeTypeSubtheme NodeType = "subtheme"
	NodeTypeGroup    NodeType = "group"
)

// ParseNodeType validates a raw node type string.
func ParseNodeType(s string) (NodeType, error) {
	switch NodeType(s) {
	case NodeTypeTheme, NodeTypeSubtheme, NodeTypeGroup:
		return NodeType(s), nil
	}
	return "", NewInvalidArgumentError(fmt.Sprintf("unknown taxonomy node type: %q", s))
}

// ChildType returns the type a child of t must have.
// Groups are leaves and have no child type.
func (t NodeType) ChildType() (NodeType, bool) {
	switch t {
	case NodeTypeTheme:
		return NodeTypeSubtheme, true
	case NodeTypeSubtheme:
		return NodeTypeGroup, true
	}
	return "", false
}

// PrefixLength is the number of letters kept when a default prefix is derived from a name.
func (t NodeType) PrefixLength() int {
	switch t {
	case NodeTypeTheme:
		return 3
	case NodeTypeSubtheme:
		return 2
	default:
		return 1
	}
}

// TaxonomyNode is one entry in the theme/subtheme/group hierarchy.
type TaxonomyNode struct {
	ID       string
	Name     string
	Type     NodeType
	ParentID string // empty for themes
	// PathIDs lists ancestor ids root-first, excluding the node itself.
	PathIDs []string
	// PathNames is parallel to PathIDs with the node's own name appended.
	PathNames []string
	Prefix    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Depth is the index of the node's own name in PathNames.
func (n *TaxonomyNode) Depth() int {
	return len(n.PathIDs)
}

// HasAncestor reports whether id appears in the node's ancestor chain.
func (n *TaxonomyNode) HasAncestor(id string) bool {
	for _, a := range n.PathIDs {
		if a == id {
			return true
		}
	}
	return false
}

// ChildPaths derives the path arrays of a child named childName.
func (n *TaxonomyNode) ChildPaths(childName string) ([]string, []string) {
	ids := make([]string, 0, len(n.PathIDs)+1)
	ids = append(ids, n.PathIDs...)
	ids = append(ids, n.ID)

	names := make([]string, 0, len(n.PathNames)+1)
	names = append(names, n.PathNames...)
	names = append(names, childName)
	return ids, names
}

// Hierarchy is the denormalized theme → subtheme → group view.
type Hierarchy struct {
	Generation uint64           `json:"generation"`
	Themes     []HierarchyTheme `json:"themes"`
	BuiltAt    time.Time        `json:"builtAt"`
}

type HierarchyTheme struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Prefix    string              `json:"prefix"`
	Subthemes []HierarchySubtheme `json:"subthemes"`
}

type HierarchySubtheme struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Prefix string           `json:"prefix"`
	Groups []HierarchyGroup `json:"groups"`
}

type HierarchyGroup struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}

// BuildHierarchy assembles the view from a flat node list. Nodes whose parent
// is missing from the list are dropped. Ordering follows the input order.
func BuildHierarchy(nodes []*TaxonomyNode, generation uint64) *Hierarchy {
	h := &Hierarchy{Generation: generation, Themes: []HierarchyTheme{}, BuiltAt: time.Now()}

	themeIdx := make(map[string]int)
	for _, n := range nodes {
		if n.Type == NodeTypeTheme {
			themeIdx[n.ID] = len(h.Themes)
			h.Themes = append(h.Themes, HierarchyTheme{ID: n.ID, Name: n.Name, Prefix: n.Prefix, Subthemes: []HierarchySubtheme{}})
		}
	}

	type subLoc struct{ theme, sub int }
	subIdx := make(map[string]subLoc)
	for _, n := range nodes {
		if n.Type != NodeTypeSubtheme {
			continue
		}
		ti, ok := themeIdx[n.ParentID]
		if !ok {
			continue
		}
		t := &h.Themes[ti]
		subIdx[n.ID] = subLoc{theme: ti, sub: len(t.Subthemes)}
		t.Subthemes = append(t.Subthemes, HierarchySubtheme{ID: n.ID, Name: n.Name, Prefix: n.Prefix, Groups: []HierarchyGroup{}})
	}

	for _, n := range nodes {
		if n.Type != NodeTypeGroup {
			continue
		}
		loc, ok := subIdx[n.ParentID]
		if !ok {
			continue
		}
		s := &h.Themes[loc.theme].Subthemes[loc.sub]
		s.Groups = append(s.Groups, HierarchyGroup{ID: n.ID, Name: n.Name, Prefix: n.Prefix})
	}
	return h
}
