package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"qbank/internal/domain"
)

// memStore is an in-memory question bank shared by the fake repositories.
type memStore struct {
	mu        sync.Mutex
	nodes     map[string]*domain.TaxonomyNode
	questions map[string]*domain.Question
	sessions  []*domain.QuizSession
	bookmarks map[string][]string
	quizzes   map[string]*domain.CustomQuiz
	seq       int
}

func newMemStore() *memStore {
	return &memStore{
		nodes:     make(map[string]*domain.TaxonomyNode),
		questions: make(map[string]*domain.Question),
		bookmarks: make(map[string][]string),
		quizzes:   make(map[string]*domain.CustomQuiz),
	}
}

func (s *memStore) addNode(id, name string, parent *domain.TaxonomyNode) *domain.TaxonomyNode {
	n := &domain.TaxonomyNode{ID: id, Name: name, Type: domain.NodeTypeTheme, PathIDs: []string{}, PathNames: []string{name}}
	if parent != nil {
		n.Type, _ = parent.Type.ChildType()
		n.ParentID = parent.ID
		n.PathIDs, n.PathNames = parent.ChildPaths(name)
	}
	n.Prefix = strings.ToUpper(id)
	s.nodes[id] = n
	return n
}

// addQuestions inserts n questions under the given chain with increasing creation times.
func (s *memStore) addQuestions(n int, themeID, subthemeID, groupID string) []string {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s.seq++
		q := &domain.Question{
			ID:         fmt.Sprintf("q%04d", s.seq),
			ThemeID:    themeID,
			SubthemeID: subthemeID,
			GroupID:    groupID,
			Content:    "content",
			CreatedAt:  time.UnixMilli(int64(1_700_000_000_000 + s.seq)),
		}
		s.questions[q.ID] = q
		ids = append(ids, q.ID)
	}
	return ids
}

func (s *memStore) sortedQuestions() []*domain.Question {
	out := make([]*domain.Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func inNamespace(q *domain.Question, ns domain.Namespace) bool {
	for _, qn := range q.Namespaces() {
		if qn == ns {
			return true
		}
	}
	return false
}

// --- taxonomy ---
type memTaxonomyRepo struct{ s *memStore }

func (r memTaxonomyRepo) GetByID(ctx context.Context, id string) (*domain.TaxonomyNode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.nodes[id], nil
}

func (r memTaxonomyRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.TaxonomyNode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]*domain.TaxonomyNode)
	for _, id := range ids {
		if n, ok := r.s.nodes[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func (r memTaxonomyRepo) ListAll(ctx context.Context) ([]*domain.TaxonomyNode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.TaxonomyNode, 0, len(r.s.nodes))
	for _, n := range r.s.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memTaxonomyRepo) FindChildByName(ctx context.Context, parentID, name string) (*domain.TaxonomyNode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.nodes {
		if n.ParentID == parentID && strings.EqualFold(n.Name, name) {
			return n, nil
		}
	}
	return nil, nil
}

func (r memTaxonomyRepo) CountChildren(ctx context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var c int64
	for _, n := range r.s.nodes {
		if n.ParentID == id {
			c++
		}
	}
	return c, nil
}

func (r memTaxonomyRepo) ListDescendants(ctx context.Context, id string) ([]*domain.TaxonomyNode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.TaxonomyNode
	for _, n := range r.s.nodes {
		if n.HasAncestor(id) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r memTaxonomyRepo) Create(ctx context.Context, node *domain.TaxonomyNode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if node.ID == "" {
		r.s.seq++
		node.ID = fmt.Sprintf("n%04d", r.s.seq)
	}
	r.s.nodes[node.ID] = node
	return nil
}

func (r memTaxonomyRepo) Update(ctx context.Context, node *domain.TaxonomyNode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.nodes[node.ID]; !ok {
		return domain.NewTaxonomyNodeNotFoundError(node.ID)
	}
	r.s.nodes[node.ID] = node
	return nil
}

func (r memTaxonomyRepo) UpdatePathNames(ctx context.Context, id string, pathNames []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nodes[id].PathNames = pathNames
	return nil
}

func (r memTaxonomyRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.nodes[id]; !ok {
		return domain.NewTaxonomyNodeNotFoundError(id)
	}
	delete(r.s.nodes, id)
	return nil
}

// --- questions ---
type memQuestionRepo struct{ s *memStore }

func (r memQuestionRepo) Create(ctx context.Context, q *domain.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.questions[q.ID] = q
	return nil
}

func (r memQuestionRepo) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.questions[id], nil
}

func (r memQuestionRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.questions[id]; !ok {
		return domain.NewQuestionNotFoundError(id)
	}
	delete(r.s.questions, id)
	return nil
}

func (r memQuestionRepo) CountInNamespace(ctx context.Context, ns domain.Namespace, bounds *domain.CountBounds) (int64, error) {
	refs, _ := r.ListRefsInNamespace(ctx, ns)
	var n int64
	for _, ref := range refs {
		ms := ref.CreatedAt.UnixMilli()
		if bounds != nil && ((bounds.FromMillis != 0 && ms < bounds.FromMillis) || (bounds.ToMillis != 0 && ms > bounds.ToMillis)) {
			continue
		}
		n++
	}
	return n, nil
}

func (r memQuestionRepo) ListRefsInNamespace(ctx context.Context, ns domain.Namespace) ([]domain.QuestionRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	refs := []domain.QuestionRef{}
	for _, q := range r.s.sortedQuestions() {
		if inNamespace(q, ns) {
			refs = append(refs, domain.QuestionRef{ID: q.ID, CreatedAt: q.CreatedAt})
		}
	}
	return refs, nil
}

func (r memQuestionRepo) FilterExisting(ctx context.Context, ids []string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []string{}
	for _, id := range ids {
		if _, ok := r.s.questions[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r memQuestionRepo) CountPending(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, q := range r.s.questions {
		if q.TaxonomyID == "" {
			n++
		}
	}
	return n, nil
}

func (r memQuestionRepo) ListPending(ctx context.Context, after domain.Cursor, limit int) ([]domain.PendingQuestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]string, 0)
	for id, q := range r.s.questions {
		if q.TaxonomyID == "" && (after.IsStart() || id > after.After()) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]domain.PendingQuestion, len(ids))
	for i, id := range ids {
		q := r.s.questions[id]
		out[i] = domain.PendingQuestion{ID: q.ID, ThemeID: q.ThemeID, SubthemeID: q.SubthemeID, GroupID: q.GroupID}
	}
	return out, nil
}

func (r memQuestionRepo) SetTaxonomyReference(ctx context.Context, questionID, taxonomyID string, path []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if q, ok := r.s.questions[questionID]; ok && q.TaxonomyID == "" {
		q.TaxonomyID = taxonomyID
		q.TaxonomyPath = path
	}
	return nil
}

// --- sessions, bookmarks, quizzes ---
type memSessionRepo struct{ s *memStore }

func (r memSessionRepo) Create(ctx context.Context, sess *domain.QuizSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessions = append(r.s.sessions, sess)
	return nil
}

// ListCompletedByUser returns newest first; sessions are appended oldest first.
func (r memSessionRepo) ListCompletedByUser(ctx context.Context, userID string, limit int) ([]*domain.QuizSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.QuizSession
	for i := len(r.s.sessions) - 1; i >= 0; i-- {
		sess := r.s.sessions[i]
		if sess.UserID == userID && sess.IsComplete {
			out = append(out, sess)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type memBookmarkRepo struct{ s *memStore }

func (r memBookmarkRepo) ListQuestionIDs(ctx context.Context, userID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []string{}
	for _, id := range r.s.bookmarks[userID] {
		if _, ok := r.s.questions[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

type memCustomQuizRepo struct{ s *memStore }

func (r memCustomQuizRepo) Create(ctx context.Context, quiz *domain.CustomQuiz) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.quizzes[quiz.ID] = quiz
	return nil
}

func (r memCustomQuizRepo) GetByID(ctx context.Context, id string) (*domain.CustomQuiz, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.quizzes[id], nil
}

func (r memCustomQuizRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.quizzes, id)
	return nil
}

func (r memCustomQuizRepo) CountFiltersReferencing(ctx context.Context, nodeID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, q := range r.s.quizzes {
		for _, f := range q.Filters {
			if f.ID == nodeID {
				n++
			}
		}
	}
	return n, nil
}

// memCounter mirrors the sorted-set counter: one id→score set per namespace.
type memCounter struct {
	mu     sync.Mutex
	sets   map[string]map[string]int64
	seeded map[string]bool
	reads  int
}

func newMemCounter() *memCounter {
	return &memCounter{sets: make(map[string]map[string]int64), seeded: make(map[string]bool)}
}

func (c *memCounter) Count(ctx context.Context, ns domain.Namespace, bounds *domain.CountBounds) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	if !c.seeded[ns.Key()] {
		return 0, domain.ErrCounterMiss
	}
	var n int64
	for _, score := range c.sets[ns.Key()] {
		if bounds != nil && ((bounds.FromMillis != 0 && score < bounds.FromMillis) || (bounds.ToMillis != 0 && score > bounds.ToMillis)) {
			continue
		}
		n++
	}
	return n, nil
}

func (c *memCounter) OnInsert(ctx context.Context, q *domain.Question) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ns := range q.Namespaces() {
		if c.sets[ns.Key()] == nil {
			c.sets[ns.Key()] = make(map[string]int64)
		}
		c.sets[ns.Key()][q.ID] = q.CreatedAt.UnixMilli()
	}
	return nil
}

func (c *memCounter) OnDelete(ctx context.Context, q *domain.Question) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ns := range q.Namespaces() {
		delete(c.sets[ns.Key()], q.ID)
	}
	return nil
}

func (c *memCounter) Init(ctx context.Context, ns domain.Namespace) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seeded[ns.Key()] = true
	return nil
}

func (c *memCounter) Reseed(ctx context.Context, ns domain.Namespace, refs []domain.QuestionRef) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	set := make(map[string]int64, len(refs))
	for _, ref := range refs {
		set[ref.ID] = ref.CreatedAt.UnixMilli()
	}
	c.sets[ns.Key()] = set
	c.seeded[ns.Key()] = true
	return nil
}

func (c *memCounter) Drop(ctx context.Context, ns domain.Namespace) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sets, ns.Key())
	delete(c.seeded, ns.Key())
	return nil
}

// memCache is a map-backed domain.Cache.
type memCache struct {
	mu     sync.Mutex
	values map[string]string
	hashes map[string]map[string]string
}

func newMemCache() *memCache {
	return &memCache{values: make(map[string]string), hashes: make(map[string]map[string]string)}
}

func (c *memCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (c *memCache) Set(ctx context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	delete(c.hashes, key)
	return nil
}

func (c *memCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.hashes[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out, nil
}

func (c *memCache) HSetAll(ctx context.Context, key string, values map[string]string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	h := c.hashes[key]
	if h == nil {
		h = make(map[string]string)
		c.hashes[key] = h
	}
	for k, v := range values {
		h[k] = v
	}
	return nil
}

// memRunLock is a single-holder lock.
type memRunLock struct {
	mu    sync.Mutex
	owner string
}

func (l *memRunLock) Acquire(ctx context.Context, owner string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.owner != "" {
		return false, nil
	}
	l.owner = owner
	return true, nil
}

func (l *memRunLock) Refresh(ctx context.Context, owner string, ttl time.Duration) error { return nil }

func (l *memRunLock) Release(ctx context.Context, owner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.owner == owner {
		l.owner = ""
	}
	return nil
}

// bank wires every service over one memStore.
type bank struct {
	store     *memStore
	counter   *memCounter
	cache     *memCache
	counts    *CountingService
	history   *HistoryIndex
	resolver  *FilterResolver
	quizzes   *CustomQuizService
	taxonomy  *TaxonomyService
	questions *QuestionService
}

func newBank(store *memStore) *bank {
	counter := newMemCounter()
	cache := newMemCache()
	counts := inline(NewCountingService(counter, memQuestionRepo{store}, engineCfg()))
	history := NewHistoryIndex(memSessionRepo{store}, 100)
	resolver := NewFilterResolver(memTaxonomyRepo{store}, memQuestionRepo{store}, memBookmarkRepo{store}, history, counts)
	tx := &MockTransactionManager{}
	return &bank{
		store:     store,
		counter:   counter,
		cache:     cache,
		counts:    counts,
		history:   history,
		resolver:  resolver,
		quizzes:   NewCustomQuizService(tx, memCustomQuizRepo{store}, memSessionRepo{store}, resolver, NewQuizSampler(0, nil)),
		taxonomy:  NewTaxonomyService(tx, memTaxonomyRepo{store}, memCustomQuizRepo{store}, counts, NewHierarchyBuilder(memTaxonomyRepo{store}, cache, time.Millisecond)),
		questions: NewQuestionService(memTaxonomyRepo{store}, memQuestionRepo{store}, counts),
	}
}

// scenarioStore is theme T with subthemes S1 (groups G1, G2) and S2:
// 10 questions in G1, 5 in G2, 3 directly in S1 and 7 in S2.
func scenarioStore() *memStore {
	s := newMemStore()
	t := s.addNode("t", "Theme", nil)
	s1 := s.addNode("s1", "Sub one", t)
	s.addNode("g1", "Group one", s1)
	s.addNode("g2", "Group two", s1)
	s.addNode("s2", "Sub two", t)

	s.addQuestions(10, "t", "s1", "g1")
	s.addQuestions(5, "t", "s1", "g2")
	s.addQuestions(3, "t", "s1", "")
	s.addQuestions(7, "t", "s2", "")
	return s
}
