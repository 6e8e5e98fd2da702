package storage

import (
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// Dialect selects the SQL flavour of the SQL store.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// whereSQL renders clauses as a `?`-placeholder predicate and its bound
// arguments. User values never reach the SQL text.
func (d Dialect) whereSQL(clauses []clause) (string, []any) {
	conditions := make([]string, 0, len(clauses))
	args := make([]any, 0, len(clauses))
	for _, c := range clauses {
		switch c.op {
		case opEq:
			conditions = append(conditions, c.column+" = ?")
			args = append(args, c.values[0])
		case opLTE:
			conditions = append(conditions, c.column+" <= ?")
			args = append(args, c.num)
		case opGTE:
			conditions = append(conditions, c.column+" >= ?")
			args = append(args, c.num)
		case opContains:
			conditions = append(conditions, d.containsSQL(c.column))
			args = append(args, "%"+escapeLike(c.values[0])+"%")
		case opIn:
			if d == DialectPostgres {
				conditions = append(conditions, c.column+" = ANY(?)")
				args = append(args, pq.Array(c.values))
				continue
			}
			placeholders := make([]string, len(c.values))
			for i, v := range c.values {
				placeholders[i] = "?"
				args = append(args, v)
			}
			conditions = append(conditions, c.column+" IN ("+strings.Join(placeholders, ", ")+")")
		case opAnyContains:
			ors := make([]string, len(c.values))
			for i, v := range c.values {
				ors[i] = d.containsSQL(c.column)
				args = append(args, "%"+escapeLike(v)+"%")
			}
			conditions = append(conditions, "("+strings.Join(ors, " OR ")+")")
		}
	}
	return strings.Join(conditions, " AND "), args
}

func (d Dialect) containsSQL(column string) string {
	if d == DialectPostgres {
		return column + ` ILIKE ? ESCAPE '\'`
	}
	// SQLite LIKE folds ASCII only; folding both sides keeps it symmetric.
	return "LOWER(" + column + `) LIKE LOWER(?) ESCAPE '\'`
}

// rebind rewrites `?` placeholders into the dialect's native form.
func (d Dialect) rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func selectProductsSQL(d Dialect, clauses []clause) (string, []any) {
	q := "SELECT " + productSelectColumns + " FROM products"
	where, args := d.whereSQL(clauses)
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY id"
	return d.rebind(q), args
}
