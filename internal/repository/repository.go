package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// oracleInListLimit is the maximum number of expressions Oracle accepts in an IN list.
const oracleInListLimit = 1000

// placeholders renders ":start, :start+1, ..." for n positional binds.
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf(":%d", start+i)
	}
	return strings.Join(parts, ", ")
}

func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for len(ids) > size {
		chunks = append(chunks, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}

func toArgs(ids []string) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// jsonText converts a JSON column value to the string bound for Oracle CLOBs.
func jsonText(v driver.Valuer) (string, error) {
	val, err := v.Value()
	if err != nil {
		return "", fmt.Errorf("failed to encode json column: %w", err)
	}
	s, _ := val.(string)
	return s, nil
}
