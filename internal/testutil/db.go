// Package testutil holds database fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/angelmondragon/bakery-catalog/pkg/config"
	"github.com/angelmondragon/bakery-catalog/pkg/db"
	"github.com/angelmondragon/bakery-catalog/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// EnvTestDBDSN points integration tests at a disposable postgres database.
const EnvTestDBDSN = "BAKERY_TEST_DB_DSN"

// NewSQLiteClient opens a private in-memory SQLite database with foreign keys
// enforced and the catalog schema applied.
func NewSQLiteClient(t testing.TB) *db.Client {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)

	// one connection keeps every statement on the same in-memory database
	client, err := db.Open(context.Background(), sqlite.Open(dsn), config.DBConfig{MaxOpenConns: 1, MaxIdleConns: 1}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return client
}

// PostgresDSN returns the integration database DSN or skips the test.
func PostgresDSN(t testing.TB) string {
	t.Helper()
	dsn := os.Getenv(EnvTestDBDSN)
	if dsn == "" {
		t.Skipf("%s is not set", EnvTestDBDSN)
	}
	return dsn
}

// QueryCounter counts SELECT statements issued through a GORM connection.
type QueryCounter struct {
	n atomic.Int64
}

// CountQueries registers a query callback on conn and returns its counter.
func CountQueries(t testing.TB, conn *gorm.DB) *QueryCounter {
	t.Helper()
	counter := &QueryCounter{}
	err := conn.Callback().Query().After("gorm:query").Register("testutil:count_queries", func(*gorm.DB) {
		counter.n.Add(1)
	})
	if err != nil {
		t.Fatalf("register query counter: %v", err)
	}
	return counter
}

func (c *QueryCounter) Reset()       { c.n.Store(0) }
func (c *QueryCounter) Count() int64 { return c.n.Load() }

// MustCreateCategory inserts a category row.
func MustCreateCategory(t testing.TB, conn *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	if err := conn.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

// MustCreateProduct inserts an active product in categoryID.
func MustCreateProduct(t testing.TB, conn *gorm.DB, name string, categoryID *uint, active bool) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, CategoryID: categoryID, IsActive: active}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

// MustCreateVariant inserts an available variant for productID.
func MustCreateVariant(t testing.TB, conn *gorm.DB, productID uint, size, price, sku string) *models.ProductVariant {
	t.Helper()
	variant := &models.ProductVariant{
		ProductID:   productID,
		Size:        size,
		Price:       decimal.RequireFromString(price),
		SKU:         sku,
		IsAvailable: true,
	}
	if err := conn.Create(variant).Error; err != nil {
		t.Fatalf("create variant: %v", err)
	}
	return variant
}

// UintPtr returns a pointer to v.
func UintPtr(v uint) *uint { return &v }
