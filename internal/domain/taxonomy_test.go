package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeType_ChildType(t *testing.T) {
	child, ok := NodeTypeTheme.ChildType()
	assert.True(t, ok)
	assert.Equal(t, NodeTypeSubtheme, child)

	child, ok = NodeTypeSubtheme.ChildType()
	assert.True(t, ok)
	assert.Equal(t, NodeTypeGroup, child)

	_, ok = NodeTypeGroup.ChildType()
	assert.False(t, ok)
}

func TestTaxonomyNode_ChildPaths(t *testing.T) {
	s1 := &TaxonomyNode{ID: "S1", Name: "Cardio", PathIDs: []string{"T"}, PathNames: []string{"Medicine", "Cardio"}}

	pathIDs, pathNames := s1.ChildPaths("Arrhythmia")

	assert.Equal(t, []string{"T", "S1"}, pathIDs)
	assert.Equal(t, []string{"Medicine", "Cardio", "Arrhythmia"}, pathNames)
	// parent slices untouched
	assert.Equal(t, []string{"T"}, s1.PathIDs)
}

func TestBuildHierarchy(t *testing.T) {
	theme, s1, s2, g1, g2 := testTree()
	orphan := &TaxonomyNode{ID: "G9", Type: NodeTypeGroup, ParentID: "missing"}

	h := BuildHierarchy([]*TaxonomyNode{g2, theme, s1, orphan, s2, g1}, 7)

	require.Len(t, h.Themes, 1)
	assert.Equal(t, uint64(7), h.Generation)
	require.Len(t, h.Themes[0].Subthemes, 2)
	assert.Equal(t, "S1", h.Themes[0].Subthemes[0].ID)
	assert.Equal(t, []HierarchyGroup{{ID: "G2", Name: "Group 2"}, {ID: "G1", Name: "Group 1"}}, h.Themes[0].Subthemes[0].Groups)
	assert.Empty(t, h.Themes[0].Subthemes[1].Groups)
}

func TestQuestion_Namespaces(t *testing.T) {
	q := &Question{ThemeID: "T", SubthemeID: "S1"}

	assert.Equal(t, "S1", q.LeafID())
	assert.Equal(t, []Namespace{GlobalNamespace, {Kind: NodeTypeTheme, ID: "T"}, {Kind: NodeTypeSubtheme, ID: "S1"}}, q.Namespaces())
}
