package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	_ "github.com/go-sql-driver/mysql"

	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/ports"
)

// DatabaseStore loads datasets with a user-supplied query and saves
// scored datasets into a table. One instance per driver; the DSN
// travels with each request.
type DatabaseStore struct {
	driver string
}

var _ ports.DatasetLoader = (*DatabaseStore)(nil)
var _ ports.DatasetSaver = (*DatabaseStore)(nil)

// NewDatabaseStore wires a SQL driver name ("postgres" or "mysql").
func NewDatabaseStore(driver string) *DatabaseStore {
	return &DatabaseStore{driver: driver}
}

// Load runs the request query and materializes the result set; column
// order follows the query's projection.
func (s *DatabaseStore) Load(ctx context.Context, req ports.LoadRequest) (domain.Dataset, error) {
	if req.Query == "" {
		return domain.Dataset{}, &domain.UnsupportedCombinationError{Reason: "query is required for database sources"}
	}

	db, err := sql.Open(s.driver, req.Source)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("open %s connection: %w", s.driver, err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return domain.Dataset{}, &domain.SourceNotFoundError{Source: s.driver + " database", Err: err}
	}

	rows, err := db.QueryContext(ctx, req.Query)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("run query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read columns: %w", err)
	}

	var records []domain.Record
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return domain.Dataset{}, fmt.Errorf("scan row: %w", err)
		}
		record := make(domain.Record, len(columns))
		for i, col := range columns {
			record[col] = normalizeSQLValue(values[i])
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return domain.Dataset{}, fmt.Errorf("iterate rows: %w", err)
	}

	dataset := domain.NewDataset(columns, records)
	if !dataset.HasColumn(req.TextField) {
		return domain.Dataset{}, &domain.SchemaError{Field: req.TextField, Available: columns}
	}

	return dataset, nil
}

// Save writes the dataset into the target table, honoring the
// if-exists policy: fail aborts, replace drops and recreates, append
// creates the table only when missing.
func (s *DatabaseStore) Save(ctx context.Context, dataset domain.Dataset, opts ports.SaveOptions) error {
	if opts.Table == "" {
		return &domain.UnsupportedCombinationError{Reason: "table is required for database output"}
	}

	db, err := sql.Open(s.driver, opts.Destination)
	if err != nil {
		return fmt.Errorf("open %s connection: %w", s.driver, err)
	}
	defer db.Close()

	exists, err := s.tableExists(ctx, db, opts.Table)
	if err != nil {
		return err
	}

	switch opts.IfExists {
	case ports.IfExistsFail:
		if exists {
			return fmt.Errorf("table %s already exists", opts.Table)
		}
	case ports.IfExistsReplace:
		if exists {
			if _, err := db.ExecContext(ctx, "DROP TABLE "+s.quote(opts.Table)); err != nil {
				return fmt.Errorf("drop table %s: %w", opts.Table, err)
			}
			exists = false
		}
	case ports.IfExistsAppend, "":
		// table is created below if missing
	default:
		return &domain.UnsupportedCombinationError{Reason: fmt.Sprintf("unknown if-exists policy %q", opts.IfExists)}
	}

	if !exists {
		if _, err := db.ExecContext(ctx, s.createTableSQL(dataset, opts.Table)); err != nil {
			return fmt.Errorf("create table %s: %w", opts.Table, err)
		}
	}

	return s.insertRows(ctx, db, dataset, opts.Table)
}

func (s *DatabaseStore) insertRows(ctx context.Context, db *sql.DB, dataset domain.Dataset, table string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	columns := dataset.Columns()
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = s.quote(col)
	}

	builder := sq.StatementBuilder.PlaceholderFormat(s.placeholders())
	for i := 0; i < dataset.Len(); i++ {
		row := dataset.Row(i)
		values := make([]any, len(columns))
		for j, col := range columns {
			values[j] = flattenSQLValue(row[col])
		}

		query, args, err := builder.Insert(s.quote(table)).Columns(quoted...).Values(values...).ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (s *DatabaseStore) tableExists(ctx context.Context, db *sql.DB, table string) (bool, error) {
	schemaExpr := "table_schema = current_schema()"
	if s.driver == FormatMySQL {
		schemaExpr = "table_schema = DATABASE()"
	}

	query, args, err := sq.StatementBuilder.
		PlaceholderFormat(s.placeholders()).
		Select("COUNT(*)").
		From("information_schema.tables").
		Where(sq.Expr(schemaExpr)).
		Where(sq.Eq{"table_name": table}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build existence query: %w", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}

	return count > 0, nil
}

func (s *DatabaseStore) createTableSQL(dataset domain.Dataset, table string) string {
	columns := dataset.Columns()
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = s.quote(col) + " " + s.columnType(dataset, col)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", s.quote(table), strings.Join(defs, ", "))
}

// columnType picks a SQL type from the first non-nil value in the column.
func (s *DatabaseStore) columnType(dataset domain.Dataset, column string) string {
	for i := 0; i < dataset.Len(); i++ {
		switch dataset.Value(i, column).(type) {
		case nil:
			continue
		case float64, float32:
			if s.driver == FormatMySQL {
				return "DOUBLE"
			}
			return "DOUBLE PRECISION"
		case int, int32, int64:
			return "BIGINT"
		case bool:
			return "BOOLEAN"
		default:
			return "TEXT"
		}
	}
	return "TEXT"
}

func (s *DatabaseStore) quote(identifier string) string {
	if s.driver == FormatMySQL {
		return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
	}
	return pq.QuoteIdentifier(identifier)
}

func (s *DatabaseStore) placeholders() sq.PlaceholderFormat {
	if s.driver == FormatMySQL {
		return sq.Question
	}
	return sq.Dollar
}

// normalizeSQLValue converts driver-specific scan results into the
// dataset's scalar vocabulary.
func normalizeSQLValue(value any) any {
	switch v := value.(type) {
	case []byte:
		return string(v)
	default:
		return v
	}
}

// flattenSQLValue maps dataset values onto types every driver accepts.
func flattenSQLValue(value any) any {
	switch v := value.(type) {
	case domain.Label:
		return string(v)
	default:
		return v
	}
}
