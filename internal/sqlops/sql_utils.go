package sqlops

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	clog "docker-worker-mgr/utils/log" //custom log
)

// execer and queryer are satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Insert, Update, Delete 쿼리 실행 함수 (결과 집합이 없는 쿼리용)
func ExecQuery(ctx context.Context, db execer, query string, args ...any) (sql.Result, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		clog.Error("Query execution failed", "query", query, "args", args, "err", err)
		return nil, fmt.Errorf("query execution failed: %w", err)
	}

	return result, nil
}

// 구조체의 db 태그 또는 필드명을 기반으로 컬럼에 매핑
/**
 * struct example:
 * type Port struct {
 * 	ID          int64 `db:"id"`
 * 	PrivatePort int   `db:"private_port"`
 * 	Type        string`db:"type"`}
 */
func SelectQueryRowsToStructs[T any](ctx context.Context, db queryer, query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		clog.Error("Query failed", "query", query, "args", args, "err", err)
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		clog.Error("Failed to get columns", "query", query, "args", args, "err", err)
		return nil, err
	}

	var results []T
	for rows.Next() {
		var obj T
		objVal := reflect.ValueOf(&obj).Elem()
		objType := objVal.Type()

		fieldMap := make(map[string]reflect.Value)

		for i := 0; i < objType.NumField(); i++ {
			field := objType.Field(i)
			colName := field.Tag.Get("db")
			if colName == "" {
				colName = field.Name
			}
			fieldMap[strings.ToLower(colName)] = objVal.Field(i)
		}

		fields := make([]any, len(columns))
		for i, col := range columns {
			if f, ok := fieldMap[strings.ToLower(col)]; ok && f.CanSet() {
				fields[i] = f.Addr().Interface()
			} else {
				var dummy any
				fields[i] = &dummy
			}
		}

		if err := rows.Scan(fields...); err != nil {
			return nil, err
		}
		results = append(results, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
