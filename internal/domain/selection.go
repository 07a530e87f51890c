package domain

import "fmt"

// SelectionItem is one raw taxonomy selection entry: a node id tagged with
// the kind the caller believes it has.
type SelectionItem struct {
	Kind NodeType `json:"kind"`
	ID   string   `json:"id"`
}

func (s SelectionItem) String() string {
	return fmt.Sprintf("%s:%s", s.Kind, s.ID)
}

// Namespace is the partition key of an aggregate counter. The zero value is
// the global namespace holding every question.
type Namespace struct {
	Kind NodeType
	ID   string
}

// GlobalNamespace holds every question.
var GlobalNamespace = Namespace{}

const globalNamespaceKey = "all"

func NamespaceOf(node *TaxonomyNode) Namespace {
	return Namespace{Kind: node.Type, ID: node.ID}
}

func (n Namespace) IsGlobal() bool {
	return n.ID == ""
}

// Key is the storage key component for the namespace.
func (n Namespace) Key() string {
	if n.IsGlobal() {
		return globalNamespaceKey
	}
	return n.ID
}

func (n Namespace) String() string {
	if n.IsGlobal() {
		return globalNamespaceKey
	}
	return fmt.Sprintf("%s:%s", n.Kind, n.ID)
}

// CountBounds restricts a counter read to creation times in [From, To],
// both inclusive. A zero bound is open.
type CountBounds struct {
	FromMillis int64
	ToMillis   int64
}

// QuestionMode is the personal-history predicate applied after taxonomy filtering.
type QuestionMode string

const (
	QuestionModeAll        QuestionMode = "all"
	QuestionModeUnanswered QuestionMode = "unanswered"
	QuestionModeIncorrect  QuestionMode = "incorrect"
	QuestionModeBookmarked QuestionMode = "bookmarked"
)

func ParseQuestionMode(s string) (QuestionMode, error) {
	switch QuestionMode(s) {
	case "":
		return QuestionModeAll, nil
	case QuestionModeAll, QuestionModeUnanswered, QuestionModeIncorrect, QuestionModeBookmarked:
		return QuestionMode(s), nil
	}
	return "", NewInvalidArgumentError(fmt.Sprintf("unknown question mode: %q", s))
}

// EffectiveFilters computes the most-specific-wins reduction of a selection.
// Every node must already be resolved; the result keeps input order and
// contains no duplicates.
//
//   - a group is always kept
//   - a subtheme is kept only if no selected node lists it as an ancestor
//   - a theme is kept only if no selected node lists it as an ancestor
func EffectiveFilters(selected []*TaxonomyNode) []*TaxonomyNode {
	seen := make(map[string]struct{}, len(selected))
	unique := make([]*TaxonomyNode, 0, len(selected))
	for _, n := range selected {
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		unique = append(unique, n)
	}

	covered := make(map[string]struct{})
	for _, n := range unique {
		for _, a := range n.PathIDs {
			covered[a] = struct{}{}
		}
	}

	effective := make([]*TaxonomyNode, 0, len(unique))
	for _, n := range unique {
		switch n.Type {
		case NodeTypeGroup:
			effective = append(effective, n)
		case NodeTypeSubtheme, NodeTypeTheme:
			if _, ok := covered[n.ID]; !ok {
				effective = append(effective, n)
			}
		}
	}
	return effective
}
