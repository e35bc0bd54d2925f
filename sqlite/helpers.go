package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/litcrawl"
)

// listSeparator joins list fields into a single column.
const listSeparator = ", "

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
// SQLite requires a LIMIT before OFFSET, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// joinList joins values for storage, using fallback when there are none.
func joinList(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, listSeparator)
}

// splitList reverses joinList. Empty and fallback values yield nil.
func splitList(value, fallback string) []string {
	if value == "" || value == fallback {
		return nil
	}
	return strings.Split(value, listSeparator)
}

func categoryStrings(categories []litcrawl.ContentCategory) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}

func parseCategories(value string) []litcrawl.ContentCategory {
	parts := splitList(value, "")
	if parts == nil {
		return nil
	}
	out := make([]litcrawl.ContentCategory, len(parts))
	for i, p := range parts {
		out[i] = litcrawl.ContentCategory(p)
	}
	return out
}
