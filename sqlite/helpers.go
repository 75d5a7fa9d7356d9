package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// now returns the current time at the precision stored in the database.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime parses a stored timestamp column.
func parseTime(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", column, value, err)
	}
	return t, nil
}

// appendEquals adds an equality condition on column when value is set.
func appendEquals(query *strings.Builder, args *[]any, column string, value *string) {
	if value == nil {
		return
	}
	query.WriteString(" AND " + column + " = ?")
	*args = append(*args, *value)
}

// appendPagination adds LIMIT and OFFSET clauses. SQLite requires a LIMIT
// before OFFSET, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
