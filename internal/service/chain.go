package service

import (
	"fmt"

	"qbank/internal/domain"
)

// flatReference is a question's legacy theme/subtheme/group triple.
type flatReference struct {
	ThemeID    string
	SubthemeID string
	GroupID    string
}

func (f flatReference) ids() []string {
	ids := []string{f.ThemeID}
	if f.SubthemeID != "" {
		ids = append(ids, f.SubthemeID)
	}
	if f.GroupID != "" {
		ids = append(ids, f.GroupID)
	}
	return ids
}

// resolveLeaf checks that the triple forms a valid theme → subtheme → group
// chain and returns its leaf-most node. Failures are INVALID_ARGUMENT or
// NOT_FOUND domain errors whose message describes the broken link.
func resolveLeaf(ref flatReference, nodes map[string]*domain.TaxonomyNode) (*domain.TaxonomyNode, error) {
	if ref.ThemeID == "" {
		return nil, domain.NewInvalidArgumentError("missing theme reference")
	}
	if ref.GroupID != "" && ref.SubthemeID == "" {
		return nil, domain.NewInvalidArgumentError("group reference without subtheme")
	}

	theme, err := lookupNode(nodes, ref.ThemeID, domain.NodeTypeTheme)
	if err != nil {
		return nil, err
	}
	leaf := theme

	if ref.SubthemeID != "" {
		sub, err := lookupNode(nodes, ref.SubthemeID, domain.NodeTypeSubtheme)
		if err != nil {
			return nil, err
		}
		if sub.ParentID != theme.ID {
			return nil, domain.NewInvalidArgumentError(
				fmt.Sprintf("broken chain: subtheme %s is not under theme %s", sub.ID, theme.ID))
		}
		leaf = sub
	}

	if ref.GroupID != "" {
		group, err := lookupNode(nodes, ref.GroupID, domain.NodeTypeGroup)
		if err != nil {
			return nil, err
		}
		if group.ParentID != ref.SubthemeID {
			return nil, domain.NewInvalidArgumentError(
				fmt.Sprintf("broken chain: group %s is not under subtheme %s", group.ID, ref.SubthemeID))
		}
		leaf = group
	}
	return leaf, nil
}

func lookupNode(nodes map[string]*domain.TaxonomyNode, id string, want domain.NodeType) (*domain.TaxonomyNode, error) {
	node, ok := nodes[id]
	if !ok {
		return nil, domain.NewTaxonomyNodeNotFoundError(id)
	}
	if node.Type != want {
		return nil, domain.NewInvalidArgumentError(
			fmt.Sprintf("wrong node type: %s is a %s, expected %s", id, node.Type, want))
	}
	return node, nil
}

// leafPath is the generalized reference path: ancestors then the leaf itself.
func leafPath(leaf *domain.TaxonomyNode) []string {
	path := make([]string, 0, len(leaf.PathIDs)+1)
	path = append(path, leaf.PathIDs...)
	return append(path, leaf.ID)
}
