package sqlops

import (
	"context"
	"fmt"
	"strings"
)

// pruneChildren deletes the owner's rows whose id is not in keep.
func pruneChildren(ctx context.Context, tx execer, table, ownerCol string, ownerID int64, keep []int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, ownerCol)
	args := []any{ownerID}
	if len(keep) > 0 {
		query += fmt.Sprintf(" AND id NOT IN (%s)", placeholders(len(keep)))
		for _, id := range keep {
			args = append(args, id)
		}
	}
	if _, err := ExecQuery(ctx, tx, query, args...); err != nil {
		return fmt.Errorf("prune %s of %d: %w", table, ownerID, err)
	}
	return nil
}

// saveChild updates the row with the given id, or inserts a new one when id
// is zero, and returns the row id.
func saveChild(ctx context.Context, tx execer, table, ownerCol string, ownerID, id int64, cols []string, vals []any) (int64, error) {
	if id > 0 {
		sets := make([]string, 0, len(cols))
		for _, c := range cols {
			sets = append(sets, c+" = ?")
		}
		query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ? AND %s = ?", table, strings.Join(sets, ", "), ownerCol)
		args := append(append([]any{}, vals...), id, ownerID)
		if _, err := ExecQuery(ctx, tx, query, args...); err != nil {
			return 0, fmt.Errorf("update %s %d: %w", table, id, err)
		}
		return id, nil
	}

	allCols := append([]string{ownerCol}, cols...)
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(allCols, ", "), placeholders(len(allCols)))
	args := append([]any{ownerID}, vals...)
	res, err := ExecQuery(ctx, tx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", table, err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert %s: last insert id: %w", table, err)
	}
	return newID, nil
}

func keptIDs(ids ...int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			out = append(out, id)
		}
	}
	return out
}
