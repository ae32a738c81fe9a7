// Package storage defines the contracts a database backend must satisfy to
// serve the console.
//
// The console, the student controller and the tests only see these
// interfaces. Two backends implement them: storage/sqlite and
// storage/postgres. Which one is used is decided once in main from the
// configuration.
//
// Every method maps to exactly one SQL statement. There are no
// transactions, no caching and no retries.
package storage

import (
	"context"

	"github.com/aanand-mishra/crud-console/internal/types"
)

// EmployeeStorage is read-only: employees are reference data.
type EmployeeStorage interface {
	// GetEmployees returns every employee in storage order.
	// Returns an empty slice (not nil) when the table is empty.
	GetEmployees(ctx context.Context) ([]types.Employee, error)
}

// ProductStorage is the full CRUD surface for products.
type ProductStorage interface {
	// CreateProduct inserts a product and returns the id the database
	// generated for it.
	CreateProduct(ctx context.Context, name string, price float64) (int64, error)

	// GetProducts returns every product in storage order.
	GetProducts(ctx context.Context) ([]types.Product, error)

	// UpdateProductByID replaces name and price of the product with the
	// given id and returns the number of rows affected. A missing id is
	// not an error: it simply affects zero rows.
	UpdateProductByID(ctx context.Context, id int64, name string, price float64) (int64, error)

	// DeleteProductByID removes the product with the given id and returns
	// the number of rows affected. Zero for an unknown id, with no error.
	DeleteProductByID(ctx context.Context, id int64) (int64, error)
}

// StudentStorage exposes create and list only.
type StudentStorage interface {
	// CreateStudent inserts s and returns the generated id.
	// s.ID is ignored.
	CreateStudent(ctx context.Context, s types.Student) (int64, error)

	// GetStudents returns every student in storage order.
	GetStudents(ctx context.Context) ([]types.Student, error)
}

// Storage is everything a backend provides, plus releasing its single
// connection.
type Storage interface {
	EmployeeStorage
	ProductStorage
	StudentStorage

	Close() error
}
