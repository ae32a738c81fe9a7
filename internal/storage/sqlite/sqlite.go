// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk. There is no network
// and no separate server process, so it is the default backend for local
// use and for tests.
//
// The blank import below registers the "sqlite3" driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/crud-console/internal/config"
	"github.com/aanand-mishra/crud-console/internal/storage"
	"github.com/aanand-mishra/crud-console/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	department TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS product (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	name  TEXT NOT NULL,
	price REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS student (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	name   TEXT NOT NULL,
	course TEXT NOT NULL
);
`

// SQLite is the concrete implementation of storage.Storage.
//
// database/sql hands out a pool by default. The pool is capped at one open
// connection so the process talks to the file over a single session.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database at cfg.Database.StoragePath, creates the
// three tables if they do not already exist, and returns a ready-to-use
// *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	if dir := filepath.Dir(cfg.Database.StoragePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	// sql.Open does NOT open a real connection yet; it only checks the
	// driver name and the data source name. Ping forces the first real
	// connection so a bad path fails here, at startup, instead of on the
	// user's first menu choice.
	db, err := sql.Open("sqlite3", cfg.Database.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: ping: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent, safe on every startup.
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	slog.Debug("sqlite storage opened", slog.String("path", cfg.Database.StoragePath))

	return &SQLite{Db: db}, nil
}

// Close releases the connection.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// GetEmployees returns every employee row.
func (s *SQLite) GetEmployees(ctx context.Context) ([]types.Employee, error) {
	rows, err := s.Db.QueryContext(ctx, "SELECT id, name, department FROM employees")
	if err != nil {
		return nil, fmt.Errorf("GetEmployees: query: %w", err)
	}
	defer rows.Close()

	employees := make([]types.Employee, 0)
	for rows.Next() {
		var e types.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Department); err != nil {
			return nil, fmt.Errorf("GetEmployees: scan row: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetEmployees: rows iteration: %w", err)
	}

	return employees, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateProduct inserts a new row into the product table.
//
// HOW PREPARED STATEMENTS KEEP USER INPUT OUT OF THE SQL:
// ────────────────────────────────────────────────────────
// The product name comes straight from the console. If it were glued into
// the query text:
//
//	query := "INSERT INTO product (name, price) VALUES ('" + name + "', 1)"
//
// a token like  x');DROP-TABLE-product;--  would become SQL. Prepare sends
// the statement with ? placeholders; ExecContext sends the values
// separately, and the engine only ever treats them as data.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateProduct(ctx context.Context, name string, price float64) (int64, error) {
	stmt, err := s.Db.PrepareContext(ctx, "INSERT INTO product (name, price) VALUES (?, ?)")
	if err != nil {
		return 0, fmt.Errorf("CreateProduct: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, name, price)
	if err != nil {
		return 0, fmt.Errorf("CreateProduct: exec: %w", err)
	}

	// LastInsertId is the AUTOINCREMENT key SQLite just assigned.
	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateProduct: last insert id: %w", err)
	}

	return lastID, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetProducts returns every product row, in whatever order SQLite yields
// them (there is no ORDER BY).
//
// HOW Query + rows.Next() WORK:
// ──────────────────────────────
// QueryContext returns *sql.Rows, a cursor over the result set. rows.Next
// advances it and returns false when the rows run out (or on error).
// Scan copies the current row's columns, IN SELECT ORDER, into the
// pointers it is given. rows.Close must always run, or the single
// connection stays busy and the next statement blocks forever.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetProducts(ctx context.Context) ([]types.Product, error) {
	rows, err := s.Db.QueryContext(ctx, "SELECT id, name, price FROM product")
	if err != nil {
		return nil, fmt.Errorf("GetProducts: query: %w", err)
	}
	defer rows.Close()

	products := make([]types.Product, 0)
	for rows.Next() {
		var p types.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, fmt.Errorf("GetProducts: scan row: %w", err)
		}
		products = append(products, p)
	}

	// rows.Err reports a failure that stopped iteration early. It is not
	// the same as a Scan error and is easy to forget.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetProducts: rows iteration: %w", err)
	}

	return products, nil
}

// UpdateProductByID replaces name and price of one product.
// Argument order matches the ? order in the SQL: name, price, id.
func (s *SQLite) UpdateProductByID(ctx context.Context, id int64, name string, price float64) (int64, error) {
	stmt, err := s.Db.PrepareContext(ctx, "UPDATE product SET name = ?, price = ? WHERE id = ?")
	if err != nil {
		return 0, fmt.Errorf("UpdateProductByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, name, price, id)
	if err != nil {
		return 0, fmt.Errorf("UpdateProductByID: exec: %w", err)
	}

	// An id that matches nothing is not an error for SQL: the UPDATE
	// succeeds and touches zero rows. The count goes back to the caller,
	// which decides whether zero is worth mentioning.
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("UpdateProductByID: rows affected: %w", err)
	}

	return affected, nil
}

// DeleteProductByID removes one product row by primary key.
func (s *SQLite) DeleteProductByID(ctx context.Context, id int64) (int64, error) {
	stmt, err := s.Db.PrepareContext(ctx, "DELETE FROM product WHERE id = ?")
	if err != nil {
		return 0, fmt.Errorf("DeleteProductByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("DeleteProductByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteProductByID: rows affected: %w", err)
	}

	return affected, nil
}

// CreateStudent inserts a new student row. The placeholder student.ID is not
// sent; SQLite generates the key.
func (s *SQLite) CreateStudent(ctx context.Context, student types.Student) (int64, error) {
	stmt, err := s.Db.PrepareContext(ctx, "INSERT INTO student (name, course) VALUES (?, ?)")
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, student.Name, student.Course)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	return lastID, nil
}

// GetStudents returns every student row.
func (s *SQLite) GetStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := s.Db.QueryContext(ctx, "SELECT id, name, course FROM student")
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		var student types.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.Course); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}
