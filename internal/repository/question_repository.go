package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"qbank/internal/domain"
	"qbank/internal/repository/models"
	"qbank/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionColumns = "ID, THEME_ID, SUBTHEME_ID, GROUP_ID, TAXONOMY_ID, TAXONOMY_PATH, CODE, CONTENT, CREATED_AT"

// SQLXQuestionRepository implements domain.QuestionRepository and
// domain.MigrationRepository over the questions table.
type SQLXQuestionRepository struct {
	db *sqlx.DB
}

func NewSQLXQuestionRepository(db *sqlx.DB) *SQLXQuestionRepository {
	return &SQLXQuestionRepository{db: db}
}

var (
	_ domain.QuestionRepository  = (*SQLXQuestionRepository)(nil)
	_ domain.MigrationRepository = (*SQLXQuestionRepository)(nil)
)

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:           m.ID,
		ThemeID:      m.ThemeID,
		SubthemeID:   m.SubthemeID.String,
		GroupID:      m.GroupID.String,
		TaxonomyID:   m.TaxonomyID.String,
		TaxonomyPath: []string(m.TaxonomyPath),
		Code:         m.Code,
		Content:      m.Content,
		CreatedAt:    m.CreatedAt,
	}
}

// namespaceColumn maps a namespace to its indexed reference column.
func namespaceColumn(ns domain.Namespace) (string, error) {
	switch ns.Kind {
	case domain.NodeTypeTheme:
		return "THEME_ID", nil
	case domain.NodeTypeSubtheme:
		return "SUBTHEME_ID", nil
	case domain.NodeTypeGroup:
		return "GROUP_ID", nil
	}
	return "", fmt.Errorf("unsupported namespace kind %q", ns.Kind)
}

// namespaceWhere builds the WHERE clause restricting a scan to ns and bounds.
func namespaceWhere(ns domain.Namespace, bounds *domain.CountBounds) (string, []interface{}, error) {
	var (
		clauses []string
		args    []interface{}
	)
	if !ns.IsGlobal() {
		col, err := namespaceColumn(ns)
		if err != nil {
			return "", nil, err
		}
		args = append(args, ns.ID)
		clauses = append(clauses, fmt.Sprintf("%s = :%d", col, len(args)))
	}
	if bounds != nil {
		if bounds.FromMillis != 0 {
			args = append(args, time.UnixMilli(bounds.FromMillis))
			clauses = append(clauses, fmt.Sprintf("CREATED_AT >= :%d", len(args)))
		}
		// Counter scores are whole milliseconds, so the upper bound covers
		// the entire To millisecond.
		if bounds.ToMillis != 0 {
			args = append(args, time.UnixMilli(bounds.ToMillis+1))
			clauses = append(clauses, fmt.Sprintf("CREATED_AT < :%d", len(args)))
		}
	}
	if len(clauses) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func (r *SQLXQuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	if q.ID == "" {
		q.ID = util.NewULID()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}

	var path interface{}
	if q.TaxonomyID != "" {
		text, err := jsonText(models.StringSlice(q.TaxonomyPath))
		if err != nil {
			return err
		}
		path = text
	}

	query := `INSERT INTO questions (ID, THEME_ID, SUBTHEME_ID, GROUP_ID, TAXONOMY_ID, TAXONOMY_PATH, CODE, CONTENT, CREATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		q.ID,
		q.ThemeID,
		util.StringToNullString(q.SubthemeID),
		util.StringToNullString(q.GroupID),
		util.StringToNullString(q.TaxonomyID),
		path,
		q.Code,
		q.Content,
		q.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (r *SQLXQuestionRepository) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	var m models.Question
	query := "SELECT " + questionColumns + " FROM questions WHERE ID = :1"
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question %s: %w", id, err)
	}
	return toDomainQuestion(&m), nil
}

func (r *SQLXQuestionRepository) Delete(ctx context.Context, id string) error {
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, "DELETE FROM questions WHERE ID = :1", id)
	if err != nil {
		return fmt.Errorf("failed to delete question %s: %w", id, err)
	}
	return expectAffected(res, domain.NewQuestionNotFoundError(id))
}

func (r *SQLXQuestionRepository) CountInNamespace(ctx context.Context, ns domain.Namespace, bounds *domain.CountBounds) (int64, error) {
	where, args, err := namespaceWhere(ns, bounds)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &count, "SELECT COUNT(*) FROM questions"+where, args...); err != nil {
		return 0, fmt.Errorf("failed to count questions in %s: %w", ns, err)
	}
	return count, nil
}

func (r *SQLXQuestionRepository) ListRefsInNamespace(ctx context.Context, ns domain.Namespace) ([]domain.QuestionRef, error) {
	where, args, err := namespaceWhere(ns, nil)
	if err != nil {
		return nil, err
	}
	var rows []models.QuestionRef
	query := "SELECT ID, CREATED_AT FROM questions" + where + " ORDER BY CREATED_AT, ID"
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to scan questions in %s: %w", ns, err)
	}
	refs := make([]domain.QuestionRef, len(rows))
	for i, row := range rows {
		refs[i] = domain.QuestionRef{ID: row.ID, CreatedAt: row.CreatedAt}
	}
	return refs, nil
}

func (r *SQLXQuestionRepository) FilterExisting(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	existing := make(map[string]struct{}, len(ids))
	exec := GetExecutor(ctx, r.db)
	for _, chunk := range chunkIDs(ids, oracleInListLimit) {
		var found []string
		query := fmt.Sprintf("SELECT ID FROM questions WHERE ID IN (%s)", placeholders(1, len(chunk)))
		if err := exec.SelectContext(ctx, &found, query, toArgs(chunk)...); err != nil {
			return nil, fmt.Errorf("failed to check question ids: %w", err)
		}
		for _, id := range found {
			existing[id] = struct{}{}
		}
	}

	out := make([]string, 0, len(existing))
	for _, id := range ids {
		if _, ok := existing[id]; ok {
			out = append(out, id)
			delete(existing, id)
		}
	}
	return out, nil
}

func (r *SQLXQuestionRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &count, "SELECT COUNT(*) FROM questions WHERE TAXONOMY_ID IS NULL"); err != nil {
		return 0, fmt.Errorf("failed to count pending questions: %w", err)
	}
	return count, nil
}

func (r *SQLXQuestionRepository) ListPending(ctx context.Context, after domain.Cursor, limit int) ([]domain.PendingQuestion, error) {
	var (
		rows  []models.PendingQuestion
		query string
		args  []interface{}
	)
	// Oracle treats '' as NULL, so the start cursor cannot be bound as an id.
	if after.IsStart() {
		query = `SELECT ID, THEME_ID, SUBTHEME_ID, GROUP_ID FROM questions
		WHERE TAXONOMY_ID IS NULL
		ORDER BY ID
		FETCH FIRST :1 ROWS ONLY`
		args = []interface{}{limit}
	} else {
		query = `SELECT ID, THEME_ID, SUBTHEME_ID, GROUP_ID FROM questions
		WHERE TAXONOMY_ID IS NULL AND ID > :1
		ORDER BY ID
		FETCH FIRST :2 ROWS ONLY`
		args = []interface{}{after.After(), limit}
	}

	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list pending questions after %s: %w", after, err)
	}

	pending := make([]domain.PendingQuestion, len(rows))
	for i, row := range rows {
		pending[i] = domain.PendingQuestion{
			ID:         row.ID,
			ThemeID:    row.ThemeID,
			SubthemeID: row.SubthemeID.String,
			GroupID:    row.GroupID.String,
		}
	}
	return pending, nil
}

// SetTaxonomyReference only touches rows that are still pending.
func (r *SQLXQuestionRepository) SetTaxonomyReference(ctx context.Context, questionID, taxonomyID string, path []string) error {
	text, err := jsonText(models.StringSlice(path))
	if err != nil {
		return err
	}
	query := "UPDATE questions SET TAXONOMY_ID = :1, TAXONOMY_PATH = :2 WHERE ID = :3 AND TAXONOMY_ID IS NULL"
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, taxonomyID, text, questionID); err != nil {
		return fmt.Errorf("failed to set taxonomy reference on %s: %w", questionID, err)
	}
	return nil
}
