package service

import (
	"context"
	"fmt"
	"strings"

	"qbank/internal/domain"
	"qbank/internal/logger"
	"qbank/internal/util"

	"go.uber.org/zap"
)

// CreateTaxonomyNodeInput creates a theme when ParentID is empty, otherwise a
// child of the parent's child type.
type CreateTaxonomyNodeInput struct {
	ParentID string
	Name     string
	Prefix   string
}

// RenameTaxonomyNodeInput keeps the current prefix when Prefix is empty.
type RenameTaxonomyNodeInput struct {
	ID     string
	Name   string
	Prefix string
}

// TaxonomyService owns taxonomy mutations and the hierarchy view.
type TaxonomyService struct {
	tx        domain.TransactionManager
	nodes     domain.TaxonomyRepository
	quizzes   domain.CustomQuizRepository
	counts    *CountingService
	hierarchy *HierarchyBuilder
}

func NewTaxonomyService(
	tx domain.TransactionManager,
	nodes domain.TaxonomyRepository,
	quizzes domain.CustomQuizRepository,
	counts *CountingService,
	hierarchy *HierarchyBuilder,
) *TaxonomyService {
	return &TaxonomyService{
		tx:        tx,
		nodes:     nodes,
		quizzes:   quizzes,
		counts:    counts,
		hierarchy: hierarchy,
	}
}

func (s *TaxonomyService) GetHierarchy(ctx context.Context) (*domain.Hierarchy, error) {
	return s.hierarchy.Get(ctx)
}

// AwaitHierarchy returns a view that includes every mutation made so far.
func (s *TaxonomyService) AwaitHierarchy(ctx context.Context) (*domain.Hierarchy, error) {
	return s.hierarchy.Await(ctx)
}

// RebuildHierarchy enqueues a rebuild without waiting for it.
func (s *TaxonomyService) RebuildHierarchy() {
	s.hierarchy.Enqueue()
}

func (s *TaxonomyService) Create(ctx context.Context, in CreateTaxonomyNodeInput) (*domain.TaxonomyNode, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewInvalidArgumentError("taxonomy node name must not be empty")
	}

	node := &domain.TaxonomyNode{Name: name, Type: domain.NodeTypeTheme, PathIDs: []string{}, PathNames: []string{name}}
	if in.ParentID != "" {
		parent, err := s.nodes.GetByID(ctx, in.ParentID)
		if err != nil {
			return nil, domain.NewInternalError("Failed to load parent node", err)
		}
		if parent == nil {
			return nil, domain.NewTaxonomyNodeNotFoundError(in.ParentID)
		}
		childType, ok := parent.Type.ChildType()
		if !ok {
			return nil, domain.NewInvalidArgumentError(fmt.Sprintf("a %s cannot have children", parent.Type))
		}
		node.Type = childType
		node.ParentID = parent.ID
		node.PathIDs, node.PathNames = parent.ChildPaths(name)
	}

	existing, err := s.nodes.FindChildByName(ctx, in.ParentID, name)
	if err != nil {
		return nil, domain.NewInternalError("Failed to check sibling names", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError(fmt.Sprintf("a %s named %q already exists here", node.Type, name))
	}

	node.Prefix = normalizePrefix(in.Prefix, name, node.Type)
	if err := s.nodes.Create(ctx, node); err != nil {
		return nil, domain.NewInternalError("Failed to create taxonomy node", err)
	}

	s.counts.Seed(ctx, domain.NamespaceOf(node))
	s.hierarchy.Enqueue()
	logger.Get().Info("Taxonomy node created",
		zap.String("id", node.ID),
		zap.String("type", string(node.Type)),
		zap.String("parentID", node.ParentID))
	return node, nil
}

// Rename updates the node and rewrites its name in every descendant's path.
func (s *TaxonomyService) Rename(ctx context.Context, in RenameTaxonomyNodeInput) (*domain.TaxonomyNode, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewInvalidArgumentError("taxonomy node name must not be empty")
	}

	var renamed *domain.TaxonomyNode
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		node, err := s.nodes.GetByID(ctx, in.ID)
		if err != nil {
			return domain.NewInternalError("Failed to load taxonomy node", err)
		}
		if node == nil {
			return domain.NewTaxonomyNodeNotFoundError(in.ID)
		}

		nameChanged := node.Name != name
		if !strings.EqualFold(node.Name, name) {
			sibling, err := s.nodes.FindChildByName(ctx, node.ParentID, name)
			if err != nil {
				return domain.NewInternalError("Failed to check sibling names", err)
			}
			if sibling != nil && sibling.ID != node.ID {
				return domain.NewConflictError(fmt.Sprintf("a %s named %q already exists here", node.Type, name))
			}
		}

		depth := node.Depth()
		node.Name = name
		for len(node.PathNames) <= depth {
			node.PathNames = append(node.PathNames, "")
		}
		node.PathNames[depth] = name
		if strings.TrimSpace(in.Prefix) != "" {
			node.Prefix = normalizePrefix(in.Prefix, name, node.Type)
		}
		if err := s.nodes.Update(ctx, node); err != nil {
			return err
		}

		if nameChanged {
			descendants, err := s.nodes.ListDescendants(ctx, node.ID)
			if err != nil {
				return domain.NewInternalError("Failed to list descendants", err)
			}
			for _, d := range descendants {
				if len(d.PathNames) <= depth {
					logger.Get().Warn("Descendant path shorter than ancestor depth",
						zap.String("id", d.ID), zap.Int("depth", depth))
					continue
				}
				names := append([]string(nil), d.PathNames...)
				names[depth] = name
				if err := s.nodes.UpdatePathNames(ctx, d.ID, names); err != nil {
					return domain.NewInternalError("Failed to propagate rename", err)
				}
			}
		}
		renamed = node
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hierarchy.Enqueue()
	return renamed, nil
}

// Delete refuses while children, questions or quiz filters still reference the node.
func (s *TaxonomyService) Delete(ctx context.Context, id string) error {
	node, err := s.nodes.GetByID(ctx, id)
	if err != nil {
		return domain.NewInternalError("Failed to load taxonomy node", err)
	}
	if node == nil {
		return domain.NewTaxonomyNodeNotFoundError(id)
	}

	children, err := s.nodes.CountChildren(ctx, id)
	if err != nil {
		return domain.NewInternalError("Failed to count child nodes", err)
	}
	if children > 0 {
		return domain.NewConflictError(fmt.Sprintf("taxonomy node %s has %d child nodes", id, children)).
			WithContext("children", children)
	}

	ns := domain.NamespaceOf(node)
	questions, err := s.counts.CountStored(ctx, ns)
	if err != nil {
		return err
	}
	if questions > 0 {
		return domain.NewConflictError(fmt.Sprintf("taxonomy node %s still has %d questions", id, questions)).
			WithContext("questions", questions)
	}

	filters, err := s.quizzes.CountFiltersReferencing(ctx, id)
	if err != nil {
		return domain.NewInternalError("Failed to check quiz filters", err)
	}
	if filters > 0 {
		return domain.NewConflictError(fmt.Sprintf("taxonomy node %s is used by %d custom quizzes", id, filters)).
			WithContext("quizzes", filters)
	}

	if err := s.nodes.Delete(ctx, id); err != nil {
		if domain.IsCode(err, domain.CodeNotFound) {
			return err
		}
		return domain.NewInternalError("Failed to delete taxonomy node", err)
	}

	s.counts.Drop(ctx, ns)
	s.hierarchy.Enqueue()
	return nil
}

// ReconcileCounter verifies and repairs the aggregate of the node item names,
// or the global aggregate when item is nil. The kind must match the stored node.
func (s *TaxonomyService) ReconcileCounter(ctx context.Context, item *domain.SelectionItem) (*ReconcileResult, error) {
	if item == nil {
		return s.counts.Reconcile(ctx, domain.GlobalNamespace)
	}

	node, err := s.nodes.GetByID(ctx, item.ID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load taxonomy node", err)
	}
	if node == nil {
		return nil, domain.NewTaxonomyNodeNotFoundError(item.ID)
	}
	if node.Type != item.Kind {
		return nil, domain.NewInvalidArgumentError(fmt.Sprintf("node %s is a %s, not a %s", node.ID, node.Type, item.Kind))
	}
	return s.counts.Reconcile(ctx, domain.NamespaceOf(node))
}

func normalizePrefix(explicit, name string, t domain.NodeType) string {
	if p := strings.ToUpper(strings.TrimSpace(explicit)); p != "" {
		return p
	}
	return util.LetterPrefix(name, t.PrefixLength())
}
