package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"qbank/internal/domain"
	"qbank/internal/repository/models"
	"qbank/internal/util"

	"github.com/jmoiron/sqlx"
)

const taxonomyColumns = "ID, NAME, NODE_TYPE, PARENT_ID, PATH_IDS, PATH_NAMES, PREFIX, CREATED_AT, UPDATED_AT"

// sqlxTaxonomyRepository implements domain.TaxonomyRepository using sqlx.
type sqlxTaxonomyRepository struct {
	db *sqlx.DB
}

func NewSQLXTaxonomyRepository(db *sqlx.DB) domain.TaxonomyRepository {
	return &sqlxTaxonomyRepository{db: db}
}

func toDomainTaxonomyNode(m *models.TaxonomyNode) *domain.TaxonomyNode {
	if m == nil {
		return nil
	}
	return &domain.TaxonomyNode{
		ID:        m.ID,
		Name:      m.Name,
		Type:      domain.NodeType(m.NodeType),
		ParentID:  m.ParentID.String,
		PathIDs:   []string(m.PathIDs),
		PathNames: []string(m.PathNames),
		Prefix:    m.Prefix,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *sqlxTaxonomyRepository) GetByID(ctx context.Context, id string) (*domain.TaxonomyNode, error) {
	var m models.TaxonomyNode
	query := "SELECT " + taxonomyColumns + " FROM taxonomy_nodes WHERE ID = :1"
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get taxonomy node %s: %w", id, err)
	}
	return toDomainTaxonomyNode(&m), nil
}

func (r *sqlxTaxonomyRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.TaxonomyNode, error) {
	result := make(map[string]*domain.TaxonomyNode, len(ids))
	exec := GetExecutor(ctx, r.db)
	for _, chunk := range chunkIDs(ids, oracleInListLimit) {
		var rows []models.TaxonomyNode
		query := fmt.Sprintf("SELECT %s FROM taxonomy_nodes WHERE ID IN (%s)", taxonomyColumns, placeholders(1, len(chunk)))
		if err := exec.SelectContext(ctx, &rows, query, toArgs(chunk)...); err != nil {
			return nil, fmt.Errorf("failed to load taxonomy nodes: %w", err)
		}
		for i := range rows {
			result[rows[i].ID] = toDomainTaxonomyNode(&rows[i])
		}
	}
	return result, nil
}

func (r *sqlxTaxonomyRepository) ListAll(ctx context.Context) ([]*domain.TaxonomyNode, error) {
	var rows []models.TaxonomyNode
	query := "SELECT " + taxonomyColumns + " FROM taxonomy_nodes ORDER BY CREATED_AT, ID"
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list taxonomy nodes: %w", err)
	}
	return toDomainTaxonomyNodes(rows), nil
}

func (r *sqlxTaxonomyRepository) FindChildByName(ctx context.Context, parentID, name string) (*domain.TaxonomyNode, error) {
	var (
		m     models.TaxonomyNode
		query string
		args  []interface{}
	)
	if parentID == "" {
		query = "SELECT " + taxonomyColumns + " FROM taxonomy_nodes WHERE PARENT_ID IS NULL AND UPPER(NAME) = UPPER(:1) FETCH FIRST 1 ROWS ONLY"
		args = []interface{}{name}
	} else {
		query = "SELECT " + taxonomyColumns + " FROM taxonomy_nodes WHERE PARENT_ID = :1 AND UPPER(NAME) = UPPER(:2) FETCH FIRST 1 ROWS ONLY"
		args = []interface{}{parentID, name}
	}

	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up taxonomy node by name: %w", err)
	}
	return toDomainTaxonomyNode(&m), nil
}

func (r *sqlxTaxonomyRepository) CountChildren(ctx context.Context, id string) (int64, error) {
	var count int64
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &count, "SELECT COUNT(*) FROM taxonomy_nodes WHERE PARENT_ID = :1", id); err != nil {
		return 0, fmt.Errorf("failed to count children of %s: %w", id, err)
	}
	return count, nil
}

// ListDescendants walks the tree with a hierarchical query rooted at id's children.
func (r *sqlxTaxonomyRepository) ListDescendants(ctx context.Context, id string) ([]*domain.TaxonomyNode, error) {
	var rows []models.TaxonomyNode
	query := "SELECT " + taxonomyColumns + ` FROM taxonomy_nodes
	START WITH PARENT_ID = :1
	CONNECT BY PRIOR ID = PARENT_ID`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, id); err != nil {
		return nil, fmt.Errorf("failed to list descendants of %s: %w", id, err)
	}
	return toDomainTaxonomyNodes(rows), nil
}

func (r *sqlxTaxonomyRepository) Create(ctx context.Context, node *domain.TaxonomyNode) error {
	if node.ID == "" {
		node.ID = util.NewULID()
	}
	now := time.Now()
	if node.CreatedAt.IsZero() {
		node.CreatedAt = now
	}
	node.UpdatedAt = now

	pathIDs, err := jsonText(models.StringSlice(node.PathIDs))
	if err != nil {
		return err
	}
	pathNames, err := jsonText(models.StringSlice(node.PathNames))
	if err != nil {
		return err
	}

	query := `INSERT INTO taxonomy_nodes (ID, NAME, NODE_TYPE, PARENT_ID, PATH_IDS, PATH_NAMES, PREFIX, CREATED_AT, UPDATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9)`
	_, err = GetExecutor(ctx, r.db).ExecContext(ctx, query,
		node.ID,
		node.Name,
		string(node.Type),
		util.StringToNullString(node.ParentID),
		pathIDs,
		pathNames,
		node.Prefix,
		node.CreatedAt,
		node.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create taxonomy node: %w", err)
	}
	return nil
}

func (r *sqlxTaxonomyRepository) Update(ctx context.Context, node *domain.TaxonomyNode) error {
	node.UpdatedAt = time.Now()
	pathNames, err := jsonText(models.StringSlice(node.PathNames))
	if err != nil {
		return err
	}

	query := "UPDATE taxonomy_nodes SET NAME = :1, PREFIX = :2, PATH_NAMES = :3, UPDATED_AT = :4 WHERE ID = :5"
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, node.Name, node.Prefix, pathNames, node.UpdatedAt, node.ID)
	if err != nil {
		return fmt.Errorf("failed to update taxonomy node %s: %w", node.ID, err)
	}
	return expectAffected(res, domain.NewTaxonomyNodeNotFoundError(node.ID))
}

func (r *sqlxTaxonomyRepository) UpdatePathNames(ctx context.Context, id string, pathNames []string) error {
	names, err := jsonText(models.StringSlice(pathNames))
	if err != nil {
		return err
	}
	query := "UPDATE taxonomy_nodes SET PATH_NAMES = :1, UPDATED_AT = :2 WHERE ID = :3"
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, names, time.Now(), id); err != nil {
		return fmt.Errorf("failed to update path names of %s: %w", id, err)
	}
	return nil
}

func (r *sqlxTaxonomyRepository) Delete(ctx context.Context, id string) error {
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, "DELETE FROM taxonomy_nodes WHERE ID = :1", id)
	if err != nil {
		return fmt.Errorf("failed to delete taxonomy node %s: %w", id, err)
	}
	return expectAffected(res, domain.NewTaxonomyNodeNotFoundError(id))
}

func toDomainTaxonomyNodes(rows []models.TaxonomyNode) []*domain.TaxonomyNode {
	nodes := make([]*domain.TaxonomyNode, len(rows))
	for i := range rows {
		nodes[i] = toDomainTaxonomyNode(&rows[i])
	}
	return nodes
}

// expectAffected returns notFound when res reports zero rows.
func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
