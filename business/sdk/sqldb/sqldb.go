// Package sqldb provides support for access the database.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // Calls init function.
	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Set of error variables for CRUD operations.
var (
	ErrDBNotFound        = sql.ErrNoRows
	ErrUndefinedTable    = errors.New("undefined table")
	ErrForeignKeyMissing = errors.New("referenced row does not exist")
)

// ErrDBDuplicatedEntry is returned when a write violates a unique constraint.
// Column carries the violated constraint name so callers can translate it
// into a domain error.
type ErrDBDuplicatedEntry struct {
	Column string
}

// Error implements the error interface.
func (e ErrDBDuplicatedEntry) Error() string {
	return fmt.Sprintf("duplicated entry: %s", e.Column)
}

// Config is the required properties to use the database.
type Config struct {
	User         string
	Password     string
	Host         string
	Name         string
	Schema       string
	MaxIdleConns int
	MaxOpenConns int
	DisableTLS   bool
}

// Open knows how to open a database connection based on the configuration.
func Open(cfg Config) (*sqlx.DB, error) {
	sslMode := "require"
	if cfg.DisableTLS {
		sslMode = "disable"
	}

	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")
	if cfg.Schema != "" {
		q.Set("search_path", cfg.Schema)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host,
		Path:     cfg.Name,
		RawQuery: q.Encode(),
	}

	db, err := sqlx.Open("pgx", u.String())
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	return db, nil
}

// StatusCheck returns nil if it can successfully talk to the database. It
// returns a non-nil error otherwise.
func StatusCheck(ctx context.Context, db *sqlx.DB) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}

	// Wait for the database to be ready. Pings fail while the engine is
	// still starting, so back off and try again.
	ping := func() (struct{}, error) {
		return struct{}{}, db.PingContext(ctx)
	}

	if _, err := backoff.Retry(ctx, ping, backoff.WithBackOff(backoff.NewExponentialBackOff())); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	// Run a simple query to determine connectivity. Running this query forces
	// a round trip through the database.
	const q = `SELECT true`
	var tmp bool
	return db.QueryRowContext(ctx, q).Scan(&tmp)
}

// NamedExecContext is a helper function to execute a CUD operation with
// logging and tracing.
func NamedExecContext(ctx context.Context, log *logger.Logger, db sqlx.ExtContext, query string, data any) error {
	_, err := NamedExecContextAffected(ctx, log, db, query, data)
	return err
}

// NamedExecContextAffected is a helper function to execute a CUD operation
// with logging and tracing, returning the number of rows affected.
func NamedExecContextAffected(ctx context.Context, log *logger.Logger, db sqlx.ExtContext, query string, data any) (int64, error) {
	q := queryString(query, data)

	if _, ok := data.(struct{}); ok {
		log.Info(ctx, "database.NamedExecContext", "query", q)
	} else {
		log.Debug(ctx, "database.NamedExecContext", "query", q)
	}

	ctx, span := otel.AddSpan(ctx, "business.sdk.sqldb.exec")
	span.SetAttributes(attribute.String("query", q))
	defer span.End()

	result, err := sqlx.NamedExecContext(ctx, db, query, data)
	if err != nil {
		return 0, translate(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return affected, nil
}

// NamedQueryStruct is a helper function for executing queries that return a
// single value to be unmarshalled into a struct type where field replacement
// is necessary.
func NamedQueryStruct(ctx context.Context, log *logger.Logger, db sqlx.ExtContext, query string, data any, dest any) error {
	q := queryString(query, data)

	log.Debug(ctx, "database.NamedQueryStruct", "query", q)

	ctx, span := otel.AddSpan(ctx, "business.sdk.sqldb.querystruct")
	span.SetAttributes(attribute.String("query", q))
	defer span.End()

	rows, err := sqlx.NamedQueryContext(ctx, db, query, data)
	if err != nil {
		return translate(err)
	}
	defer rows.Close()

	if !rows.Next() {
		return ErrDBNotFound
	}

	if err := rows.StructScan(dest); err != nil {
		return err
	}

	return nil
}

// NamedQuerySlice is a helper function for executing queries that return a
// collection of data to be unmarshalled into a slice where field replacement
// is necessary.
func NamedQuerySlice(ctx context.Context, log *logger.Logger, db sqlx.ExtContext, query string, data any, dest any) error {
	q := queryString(query, data)

	log.Debug(ctx, "database.NamedQuerySlice", "query", q)

	ctx, span := otel.AddSpan(ctx, "business.sdk.sqldb.queryslice")
	span.SetAttributes(attribute.String("query", q))
	defer span.End()

	val := reflect.ValueOf(dest)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Slice {
		return errors.New("must provide a pointer to a slice")
	}

	rows, err := sqlx.NamedQueryContext(ctx, db, query, data)
	if err != nil {
		return translate(err)
	}
	defer rows.Close()

	slice := val.Elem()
	for rows.Next() {
		v := reflect.New(slice.Type().Elem())
		if err := rows.StructScan(v.Interface()); err != nil {
			return err
		}
		slice.Set(reflect.Append(slice, v.Elem()))
	}

	return rows.Err()
}

// translate converts driver level errors into the sentinel errors this
// package exposes.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			return ErrDBDuplicatedEntry{Column: pgErr.ConstraintName}
		case pgErr.Code == pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrForeignKeyMissing, pgErr.ConstraintName)
		case pgErr.Code == pgerrcode.UndefinedTable:
			return ErrUndefinedTable
		}
	}

	return err
}

// queryString provides a pretty print version of the query and parameters.
func queryString(query string, args any) string {
	query, params, err := sqlx.Named(query, args)
	if err != nil {
		return err.Error()
	}

	for _, param := range params {
		var value string
		switch v := param.(type) {
		case string:
			value = fmt.Sprintf("'%s'", v)
		case []byte:
			value = "'<bytes>'"
		default:
			value = fmt.Sprintf("%v", v)
		}
		query = strings.Replace(query, "?", value, 1)
	}

	query = strings.ReplaceAll(query, "\t", "")
	query = strings.ReplaceAll(query, "\n", " ")

	return strings.Trim(query, " ")
}
