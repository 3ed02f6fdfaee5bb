package product

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRowColumns() []string {
	return []string{
		"id", "name", "sku", "hsn_code",
		"selling_price", "cost_price", "tax_rate",
		"current_stock", "reorder_level",
		"created_at", "updated_at",
	}
}

func TestGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(productRowColumns()).
			AddRow("p-1", "Widget", "WID-01", nil, 100.0, 60.0, 18.0, 50, 10, time.Now(), time.Now())

		mock.ExpectQuery("FROM products WHERE id").
			WithArgs("p-1").
			WillReturnRows(rows)

		p, err := repo.GetByID(context.Background(), "p-1")
		require.NoError(t, err)
		assert.Equal(t, "Widget", p.Name)
		assert.Equal(t, "WID-01", *p.SKU)
		assert.Nil(t, p.HSNCode)
		assert.Equal(t, 50, p.CurrentStock)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("FROM products WHERE id").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(productRowColumns()))

		_, err := repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("without search", func(t *testing.T) {
		rows := sqlmock.NewRows(productRowColumns()).
			AddRow("p-1", "Gadget", nil, nil, 50.0, 30.0, 5.0, 12, 5, time.Now(), time.Now()).
			AddRow("p-2", "Widget", "WID-01", nil, 100.0, 60.0, 18.0, 50, 10, time.Now(), time.Now())

		mock.ExpectQuery(`ORDER BY name ASC LIMIT \$1 OFFSET \$2`).
			WithArgs(int32(20), int32(0)).
			WillReturnRows(rows)

		products, err := repo.List(context.Background(), ListOptions{Limit: 20, Page: 1})
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Gadget", products[0].Name)
	})

	t.Run("with search", func(t *testing.T) {
		mock.ExpectQuery(`name ILIKE \$1 OR sku ILIKE \$1.*LIMIT \$2 OFFSET \$3`).
			WithArgs("%wid%", int32(10), int32(10)).
			WillReturnRows(sqlmock.NewRows(productRowColumns()))

		products, err := repo.List(context.Background(), ListOptions{Search: "wid", Limit: 10, Page: 2})
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	sku := "WID-01"
	p := &Product{
		ID:           "p-1",
		Name:         "Widget",
		SKU:          &sku,
		SellingPrice: 99.999,
		CostPrice:    60,
		TaxRate:      18,
		CurrentStock: 50,
		ReorderLevel: 10,
	}

	now := time.Now()
	mock.ExpectQuery("INSERT INTO products").
		WithArgs("p-1", "Widget", "WID-01", nil, 100.0, 60.0, 18.0, 50, 10).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	created, err := repo.Create(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("increments and returns new level", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE products SET current_stock = current_stock \+ \$1`).
			WithArgs(25, "p-1").
			WillReturnRows(sqlmock.NewRows([]string{"current_stock"}).AddRow(75))

		newStock, err := repo.Restock(context.Background(), "p-1", 25)
		require.NoError(t, err)
		assert.Equal(t, 75, newStock)
	})

	t.Run("unknown product", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE products SET current_stock = current_stock \+ \$1`).
			WithArgs(25, "missing").
			WillReturnRows(sqlmock.NewRows([]string{"current_stock"}))

		_, err := repo.Restock(context.Background(), "missing", 25)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
