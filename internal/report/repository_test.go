package report

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySales(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"day", "orders", "revenue", "tax_amount"}).
		AddRow(from, 3, 1250.50, 190.25).
		AddRow(from.AddDate(0, 0, 1), 1, 324.0, 54.0)

	mock.ExpectQuery("FROM sales_orders").
		WithArgs(from, to).
		WillReturnRows(rows)

	got, err := repo.DailySales(context.Background(), from, to)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Orders)
	assert.InDelta(t, 1250.50, got[0].Revenue, 0.001)
	assert.InDelta(t, 54.0, got[1].TaxAmount, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLowStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "name", "sku", "selling_price", "current_stock", "reorder_level",
	}).
		AddRow("p-2", "Gadget", nil, 50.0, 1, 5).
		AddRow("p-1", "Widget", "WID-01", 100.0, 4, 10)

	mock.ExpectQuery(`current_stock <= reorder_level`).
		WillReturnRows(rows)

	got, err := repo.LowStock(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Gadget", got[0].Name)
	assert.Equal(t, 1, got[0].CurrentStock)
	assert.Equal(t, "WID-01", *got[1].SKU)
	assert.NoError(t, mock.ExpectationsWereMet())
}
