package repository

import (
	"fmt"
	"strings"
)

// buildUpdateSet builds the SET clause for a partial update from the columns
// the caller supplied. Only columns on the allow-list are used, in allow-list
// order, so identity columns can never be overwritten. Placeholders start at
// $1; the caller appends its WHERE arguments after the returned args.
func buildUpdateSet(allowed []string, fields map[string]any) (string, []any, error) {
	var (
		clauses []string
		args    []any
	)
	for _, col := range allowed {
		v, ok := fields[col]
		if !ok {
			continue
		}
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if len(clauses) == 0 {
		return "", nil, ErrNoFieldsToUpdate
	}
	return strings.Join(clauses, ", "), args, nil
}
