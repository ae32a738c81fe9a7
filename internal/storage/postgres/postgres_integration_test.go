//go:build integration
// +build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aanand-mishra/crud-console/internal/config"
	"github.com/aanand-mishra/crud-console/internal/types"
)

// setupTestDB starts a PostgreSQL container and returns a connected backend.
func setupTestDB(t *testing.T) *Postgres {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:alpine",
		tcpostgres.WithDatabase("demo_db"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("test:pass@word"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := &config.Config{
		Env: "dev",
		Database: config.Database{
			Driver:   "postgres",
			Host:     host,
			Port:     port.Int(),
			Name:     "demo_db",
			User:     "testuser",
			Password: "test:pass@word",
			SSLMode:  "disable",
		},
	}

	p, err := New(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })

	return p
}

func TestPostgres_ProductLifecycle(t *testing.T) {
	ctx := context.Background()
	p := setupTestDB(t)

	empty, err := p.GetProducts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	widget, err := p.CreateProduct(ctx, "Widget", 9.99)
	require.NoError(t, err)
	gadget, err := p.CreateProduct(ctx, "Gadget", 20)
	require.NoError(t, err)
	assert.NotEqual(t, widget, gadget)

	affected, err := p.UpdateProductByID(ctx, gadget, "Gizmo", 12.5)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	affected, err = p.UpdateProductByID(ctx, gadget+1000, "Ghost", 1)
	require.NoError(t, err)
	assert.Zero(t, affected)

	products, err := p.GetProducts(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []types.Product{
		{ID: widget, Name: "Widget", Price: 9.99},
		{ID: gadget, Name: "Gizmo", Price: 12.5},
	}, products)

	affected, err = p.DeleteProductByID(ctx, widget)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	affected, err = p.DeleteProductByID(ctx, widget)
	require.NoError(t, err)
	assert.Zero(t, affected)

	products, err = p.GetProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Product{{ID: gadget, Name: "Gizmo", Price: 12.5}}, products)
}

func TestPostgres_Students(t *testing.T) {
	ctx := context.Background()
	p := setupTestDB(t)

	id, err := p.CreateStudent(ctx, types.Student{ID: 42, Name: "Rakesh", Course: "Physics"})
	require.NoError(t, err)

	students, err := p.GetStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, types.Student{ID: id, Name: "Rakesh", Course: "Physics"}, students[0])
}

func TestPostgres_EmployeesAreRepeatable(t *testing.T) {
	ctx := context.Background()
	p := setupTestDB(t)

	_, err := p.Conn.Exec(ctx,
		"INSERT INTO employees (name, department) VALUES ('Alice', 'Engineering'), ('Bob', 'Sales')")
	require.NoError(t, err)

	first, err := p.GetEmployees(ctx)
	require.NoError(t, err)
	second, err := p.GetEmployees(ctx)
	require.NoError(t, err)

	assert.Len(t, first, 2)
	assert.Equal(t, first, second)
}

func TestPostgres_PriceRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := setupTestDB(t)

	for _, price := range []float64{9.999, 12345678901.5, 0.001} {
		id, err := p.CreateProduct(ctx, "Widget", price)
		require.NoError(t, err, "price %v", price)

		products, err := p.GetProducts(ctx)
		require.NoError(t, err)
		assert.Contains(t, products, types.Product{ID: id, Name: "Widget", Price: price})
	}

	first, err := p.CreateProduct(ctx, "Gadget", 1)
	require.NoError(t, err)
	_, err = p.UpdateProductByID(ctx, first, "Gadget", 98765432109.125)
	require.NoError(t, err)

	products, err := p.GetProducts(ctx)
	require.NoError(t, err)
	assert.Contains(t, products, types.Product{ID: first, Name: "Gadget", Price: 98765432109.125})
}
