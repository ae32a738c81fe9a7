// Package postgres implements storage.Storage on PostgreSQL using pgx.
//
// The application is single-user and issues one statement at a time, so
// this backend holds one *pgx.Conn for the life of the process instead of
// a pgxpool. In the "dev" environment every statement is traced into slog
// through pgx's tracelog.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/tracelog"

	"github.com/aanand-mishra/crud-console/internal/config"
	"github.com/aanand-mishra/crud-console/internal/storage"
	"github.com/aanand-mishra/crud-console/internal/types"
)

// ConnectTimeout bounds the initial connect and ping.
const ConnectTimeout = 10 * time.Second

const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	department TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS product (
	id    BIGSERIAL PRIMARY KEY,
	name  TEXT NOT NULL,
	price DOUBLE PRECISION NOT NULL
);
CREATE TABLE IF NOT EXISTS student (
	id     BIGSERIAL PRIMARY KEY,
	name   TEXT NOT NULL,
	course TEXT NOT NULL
);
`

// Postgres is the PostgreSQL implementation of storage.Storage.
type Postgres struct {
	Conn *pgx.Conn
}

var _ storage.Storage = (*Postgres)(nil)

// New connects to the database described by cfg.Database, pings it and
// creates the tables if they are missing.
func New(ctx context.Context, cfg *config.Config) (*Postgres, error) {
	connConfig, err := pgx.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	if cfg.Env == "dev" {
		connConfig.Tracer = &tracelog.TraceLog{
			Logger:   tracelog.LoggerFunc(logQuery),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close(context.Background())
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	if _, err := conn.Exec(ctx, schema); err != nil {
		conn.Close(context.Background())
		return nil, fmt.Errorf("postgres.New: create tables: %w", err)
	}

	slog.Debug("postgres storage opened",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name))

	return &Postgres{Conn: conn}, nil
}

// logQuery adapts pgx trace output to the default slog logger.
func logQuery(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	attrs := make([]slog.Attr, 0, len(data))
	for k, v := range data {
		attrs = append(attrs, slog.Any(k, v))
	}

	var l slog.Level
	switch level {
	case tracelog.LogLevelError:
		l = slog.LevelError
	case tracelog.LogLevelWarn:
		l = slog.LevelWarn
	case tracelog.LogLevelInfo:
		l = slog.LevelInfo
	default:
		l = slog.LevelDebug
	}

	slog.LogAttrs(ctx, l, "pgx: "+msg, attrs...)
}

// Close terminates the connection.
func (p *Postgres) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.Conn.Close(ctx)
}

// GetEmployees returns every employee row.
func (p *Postgres) GetEmployees(ctx context.Context) ([]types.Employee, error) {
	rows, err := p.Conn.Query(ctx, "SELECT id, name, department FROM employees")
	if err != nil {
		return nil, fmt.Errorf("GetEmployees: query: %w", err)
	}

	employees, err := pgx.CollectRows(rows, pgx.RowToStructByPos[types.Employee])
	if err != nil {
		return nil, fmt.Errorf("GetEmployees: collect rows: %w", err)
	}

	return employees, nil
}

// CreateProduct inserts a product and reads the generated id back with
// RETURNING, since pgx has no LastInsertId.
func (p *Postgres) CreateProduct(ctx context.Context, name string, price float64) (int64, error) {
	var id int64
	err := p.Conn.QueryRow(ctx,
		"INSERT INTO product (name, price) VALUES ($1, $2) RETURNING id",
		name, price,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("CreateProduct: insert: %w", err)
	}

	return id, nil
}

// GetProducts returns every product row. price is DOUBLE PRECISION, the
// same float64 the console parsed, so it lists back exactly as entered.
func (p *Postgres) GetProducts(ctx context.Context) ([]types.Product, error) {
	rows, err := p.Conn.Query(ctx, "SELECT id, name, price FROM product")
	if err != nil {
		return nil, fmt.Errorf("GetProducts: query: %w", err)
	}

	products, err := pgx.CollectRows(rows, pgx.RowToStructByPos[types.Product])
	if err != nil {
		return nil, fmt.Errorf("GetProducts: collect rows: %w", err)
	}

	return products, nil
}

// UpdateProductByID replaces name and price of one product and returns
// the number of rows the command tag reports.
func (p *Postgres) UpdateProductByID(ctx context.Context, id int64, name string, price float64) (int64, error) {
	tag, err := p.Conn.Exec(ctx,
		"UPDATE product SET name = $1, price = $2 WHERE id = $3",
		name, price, id,
	)
	if err != nil {
		return 0, fmt.Errorf("UpdateProductByID: exec: %w", err)
	}

	return tag.RowsAffected(), nil
}

// DeleteProductByID removes one product row by primary key.
func (p *Postgres) DeleteProductByID(ctx context.Context, id int64) (int64, error) {
	tag, err := p.Conn.Exec(ctx, "DELETE FROM product WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("DeleteProductByID: exec: %w", err)
	}

	return tag.RowsAffected(), nil
}

// CreateStudent inserts a student; student.ID is not sent.
func (p *Postgres) CreateStudent(ctx context.Context, student types.Student) (int64, error) {
	var id int64
	err := p.Conn.QueryRow(ctx,
		"INSERT INTO student (name, course) VALUES ($1, $2) RETURNING id",
		student.Name, student.Course,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: insert: %w", err)
	}

	return id, nil
}

// GetStudents returns every student row.
func (p *Postgres) GetStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := p.Conn.Query(ctx, "SELECT id, name, course FROM student")
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}

	students, err := pgx.CollectRows(rows, pgx.RowToStructByPos[types.Student])
	if err != nil {
		return nil, fmt.Errorf("GetStudents: collect rows: %w", err)
	}

	return students, nil
}
