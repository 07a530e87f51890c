package service

import (
	"context"
	"fmt"
	"sort"

	"qbank/internal/domain"

	"golang.org/x/sync/errgroup"
)

const maxParallelScans = 4

// FilterResolver turns a raw taxonomy selection plus a question mode into a
// count or an ordered, duplicate-free id list.
type FilterResolver struct {
	nodes     domain.TaxonomyRepository
	questions domain.QuestionRepository
	bookmarks domain.BookmarkRepository
	history   *HistoryIndex
	counts    *CountingService
}

func NewFilterResolver(
	nodes domain.TaxonomyRepository,
	questions domain.QuestionRepository,
	bookmarks domain.BookmarkRepository,
	history *HistoryIndex,
	counts *CountingService,
) *FilterResolver {
	return &FilterResolver{
		nodes:     nodes,
		questions: questions,
		bookmarks: bookmarks,
		history:   history,
		counts:    counts,
	}
}

// EffectiveFilters validates the selection and applies most-specific-wins.
// Unknown ids are NOT_FOUND; a kind that disagrees with the stored node type
// is INVALID_ARGUMENT.
func (r *FilterResolver) EffectiveFilters(ctx context.Context, selection []domain.SelectionItem) ([]*domain.TaxonomyNode, error) {
	if len(selection) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(selection))
	seen := make(map[string]struct{}, len(selection))
	for _, item := range selection {
		if item.ID == "" {
			return nil, domain.NewInvalidArgumentError("selection item without id")
		}
		if _, err := domain.ParseNodeType(string(item.Kind)); err != nil {
			return nil, err
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		ids = append(ids, item.ID)
	}

	found, err := r.nodes.GetByIDs(ctx, ids)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load selected taxonomy nodes", err)
	}

	selected := make([]*domain.TaxonomyNode, 0, len(selection))
	for _, item := range selection {
		node, ok := found[item.ID]
		if !ok {
			return nil, domain.NewTaxonomyNodeNotFoundError(item.ID)
		}
		if node.Type != item.Kind {
			return nil, domain.NewInvalidArgumentError(
				fmt.Sprintf("selection %s refers to a %s", item, node.Type))
		}
		selected = append(selected, node)
	}
	return domain.EffectiveFilters(selected), nil
}

// Count returns how many questions qualify for the selection and mode.
func (r *FilterResolver) Count(ctx context.Context, selection []domain.SelectionItem, mode domain.QuestionMode, userID string) (int64, error) {
	if userID == "" {
		return 0, domain.NewUnauthorizedError("a user is required to count questions")
	}
	filters, err := r.EffectiveFilters(ctx, selection)
	if err != nil {
		return 0, err
	}

	if len(filters) == 0 {
		return r.countGlobal(ctx, mode, userID)
	}
	if len(filters) == 1 && mode == domain.QuestionModeAll {
		return r.counts.Count(ctx, domain.NamespaceOf(filters[0]), nil)
	}

	ids, err := r.union(ctx, filters)
	if err != nil {
		return 0, err
	}
	ids, err = r.applyMode(ctx, ids, mode, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

// Resolve materializes the qualifying ids in filter order, then store order.
func (r *FilterResolver) Resolve(ctx context.Context, selection []domain.SelectionItem, mode domain.QuestionMode, userID string) ([]string, error) {
	if userID == "" {
		return nil, domain.NewUnauthorizedError("a user is required to resolve questions")
	}
	filters, err := r.EffectiveFilters(ctx, selection)
	if err != nil {
		return nil, err
	}

	if len(filters) == 0 {
		switch mode {
		case domain.QuestionModeBookmarked:
			return r.bookmarkedIDs(ctx, userID)
		case domain.QuestionModeIncorrect:
			return r.incorrectIDs(ctx, userID)
		}
	}

	var ids []string
	if len(filters) == 0 {
		refs, err := r.questions.ListRefsInNamespace(ctx, domain.GlobalNamespace)
		if err != nil {
			return nil, domain.NewInternalError("Failed to scan questions", err)
		}
		ids = refIDs(refs)
	} else {
		if ids, err = r.union(ctx, filters); err != nil {
			return nil, err
		}
	}
	return r.applyMode(ctx, ids, mode, userID)
}

func (r *FilterResolver) countGlobal(ctx context.Context, mode domain.QuestionMode, userID string) (int64, error) {
	switch mode {
	case domain.QuestionModeBookmarked:
		ids, err := r.bookmarkedIDs(ctx, userID)
		return int64(len(ids)), err
	case domain.QuestionModeIncorrect:
		ids, err := r.incorrectIDs(ctx, userID)
		return int64(len(ids)), err
	case domain.QuestionModeUnanswered:
		total, err := r.counts.Count(ctx, domain.GlobalNamespace, nil)
		if err != nil {
			return 0, err
		}
		history, err := r.history.Load(ctx, userID, nil)
		if err != nil {
			return 0, err
		}
		answered, err := r.questions.FilterExisting(ctx, history.AnsweredIDs())
		if err != nil {
			return 0, domain.NewInternalError("Failed to check answered questions", err)
		}
		if n := total - int64(len(answered)); n > 0 {
			return n, nil
		}
		return 0, nil
	default:
		return r.counts.Count(ctx, domain.GlobalNamespace, nil)
	}
}

// union scans each filter namespace in parallel and merges the results
// through an id-keyed set.
func (r *FilterResolver) union(ctx context.Context, filters []*domain.TaxonomyNode) ([]string, error) {
	results := make([][]domain.QuestionRef, len(filters))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelScans)
	for i, f := range filters {
		g.Go(func() error {
			refs, err := r.questions.ListRefsInNamespace(gctx, domain.NamespaceOf(f))
			if err != nil {
				return fmt.Errorf("scan %s: %w", f.ID, err)
			}
			results[i] = refs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("Failed to scan selected namespaces", err)
	}

	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, refs := range results {
		for _, ref := range refs {
			if _, dup := seen[ref.ID]; dup {
				continue
			}
			seen[ref.ID] = struct{}{}
			ids = append(ids, ref.ID)
		}
	}
	return ids, nil
}

func (r *FilterResolver) applyMode(ctx context.Context, ids []string, mode domain.QuestionMode, userID string) ([]string, error) {
	switch mode {
	case domain.QuestionModeAll, "":
		return ids, nil
	case domain.QuestionModeBookmarked:
		bookmarked, err := r.bookmarks.ListQuestionIDs(ctx, userID)
		if err != nil {
			return nil, domain.NewInternalError("Failed to load bookmarks", err)
		}
		return keepIf(ids, toSet(bookmarked), true), nil
	case domain.QuestionModeIncorrect, domain.QuestionModeUnanswered:
		history, err := r.history.Load(ctx, userID, toSet(ids))
		if err != nil {
			return nil, err
		}
		if mode == domain.QuestionModeIncorrect {
			return keepIf(ids, toSet(history.IncorrectIDs()), true), nil
		}
		return keepIf(ids, toSet(history.AnsweredIDs()), false), nil
	}
	return nil, domain.NewInvalidArgumentError(fmt.Sprintf("unknown question mode: %q", mode))
}

func (r *FilterResolver) bookmarkedIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.bookmarks.ListQuestionIDs(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load bookmarks", err)
	}
	return ids, nil
}

// incorrectIDs returns the user's incorrect questions that still exist.
func (r *FilterResolver) incorrectIDs(ctx context.Context, userID string) ([]string, error) {
	history, err := r.history.Load(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	incorrect := history.IncorrectIDs()
	sort.Strings(incorrect)
	existing, err := r.questions.FilterExisting(ctx, incorrect)
	if err != nil {
		return nil, domain.NewInternalError("Failed to check incorrect questions", err)
	}
	return existing, nil
}

func refIDs(refs []domain.QuestionRef) []string {
	ids := make([]string, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
	}
	return ids
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// keepIf keeps ids whose membership in set equals member.
func keepIf(ids []string, set map[string]struct{}, member bool) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := set[id]; ok == member {
			out = append(out, id)
		}
	}
	return out
}
