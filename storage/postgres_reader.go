package storage

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"

	"howth-congestion/models"
	"howth-congestion/utils"
)

var tableNameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PostgresSurveyReader reads survey responses from a table whose columns
// are the short field names in SurveyColumns, stored as text.
type PostgresSurveyReader struct {
	db    *sql.DB
	table string
}

// NewPostgresSurveyReader opens a connection to PostgreSQL, waits for it to
// accept connections, and checks the response table's columns.
func NewPostgresSurveyReader(dsn, table string, retry *utils.RetryConfig) (*PostgresSurveyReader, error) {
	if !tableNameRegexp.MatchString(table) {
		return nil, fmt.Errorf("postgres: table name %q: %w", table, models.ErrInvalidValue)
	}

	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1}
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do("postgres-ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pr := &PostgresSurveyReader{db: db, table: table}
	if err := pr.checkSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return pr, nil
}

// columnsQuery lists the columns of a table in the session's schema.
const columnsQuery = `
	SELECT column_name
	FROM information_schema.columns
	WHERE table_name = $1 AND table_schema = current_schema()
`

func (pr *PostgresSurveyReader) checkSchema() error {
	rows, err := pr.db.Query(columnsQuery, pr.table)
	if err != nil {
		return fmt.Errorf("postgres: list columns: %w", err)
	}
	defer rows.Close()

	var have []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("postgres: scan column: %w", err)
		}
		have = append(have, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("postgres: list columns: %w", err)
	}

	var want []string
	for _, c := range SurveyColumns {
		if c.Required {
			want = append(want, c.Key)
		}
	}
	if missing := missingHeaders(have, want); len(missing) > 0 {
		return &models.SchemaMismatchError{Source: "postgres table " + pr.table, Missing: missing}
	}
	return nil
}

// selectQuery builds the SELECT over every required short column.
func (pr *PostgresSurveyReader) selectQuery() (string, []string) {
	var keys, cols []string
	for _, c := range SurveyColumns {
		if !c.Required {
			continue
		}
		keys = append(keys, c.Key)
		cols = append(cols, pq.QuoteIdentifier(c.Key)+"::text")
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY ctid",
		strings.Join(cols, ", "), pq.QuoteIdentifier(pr.table))
	return query, keys
}

// ReadRaw returns one RawResponse per table row.
func (pr *PostgresSurveyReader) ReadRaw() ([]*models.RawResponse, error) {
	query, keys := pr.selectQuery()
	rows, err := pr.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch responses: %w", err)
	}
	defer rows.Close()

	var out []*models.RawResponse
	for rows.Next() {
		cells := make([]sql.NullString, len(keys))
		dest := make([]interface{}, len(keys))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}

		fields := make(map[string]string, len(keys))
		for i, k := range keys {
			fields[k] = strings.TrimSpace(cells[i].String)
		}
		out = append(out, &models.RawResponse{Row: len(out) + 1, Fields: fields})
	}
	return out, rows.Err()
}

func (pr *PostgresSurveyReader) Close() error {
	return pr.db.Close()
}
