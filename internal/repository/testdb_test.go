package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/database"
	"storefront_back_end/internal/models"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	postgres := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Port(5433).
		Database("storefront_test").
		StartTimeout(60 * time.Second))
	if err := postgres.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "starting embedded postgres:", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", "host=localhost port=5433 user=postgres password=postgres dbname=storefront_test sslmode=disable")
	if err == nil {
		err = db.Ping()
	}
	if err == nil {
		err = database.Migrate(context.Background(), db)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "preparing test database:", err)
		_ = postgres.Stop()
		os.Exit(1)
	}
	testDB = db

	code := m.Run()

	_ = db.Close()
	_ = postgres.Stop()
	os.Exit(code)
}

func resetTables(t *testing.T) {
	t.Helper()
	_, err := testDB.Exec("TRUNCATE order_items, cart_items, carts, reviews, customers, products, collections RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

func seedCollection(t *testing.T, title string) models.Collection {
	t.Helper()
	col := models.Collection{Title: title}
	require.NoError(t, NewCatalog(testDB).CreateCollection(context.Background(), &col))
	return col
}

func seedProduct(t *testing.T, collectionID int64, slug, unitPrice string) models.Product {
	t.Helper()
	p := models.Product{
		Title:        "Produit " + slug,
		Slug:         slug,
		UnitPrice:    decimal.RequireFromString(unitPrice),
		Inventory:    10,
		CollectionID: collectionID,
	}
	require.NoError(t, NewCatalog(testDB).CreateProduct(context.Background(), &p))
	return p
}

func countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, testDB.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
