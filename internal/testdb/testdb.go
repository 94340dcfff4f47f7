// Package testdb opens a migrated in-memory SQLite database for package tests.
package testdb

import (
	"fmt"
	"sync/atomic"
	"testing"

	"tortilleria-ventas/internal/model"
	"tortilleria-ventas/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var seq atomic.Int64

// Fixture holds the reference rows every test database starts with.
type Fixture struct {
	Branch      model.Branch
	OtherBranch model.Branch
	Employee    model.Employee
	Tortilla    model.Product
	Totopos     model.Product
}

// Open returns a fresh database with foreign keys enforced. A single connection keeps the
// in-memory database alive for the whole test.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ventas_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", seq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig("silent"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Seed inserts one employee, two branches and two products.
func Seed(t *testing.T, db *gorm.DB) Fixture {
	t.Helper()

	phone := "555-0100"
	f := Fixture{
		Branch:      model.Branch{Name: "Sucursal Centro", Address: "Av. Juárez 10", Phone: &phone},
		OtherBranch: model.Branch{Name: "Sucursal Norte", Address: "Calle 5 de Mayo 200"},
	}
	mustCreate(t, db, &f.Branch)
	mustCreate(t, db, &f.OtherBranch)

	f.Employee = model.Employee{FirstName: "Rosa", LastName: "Hernández", Role: "Cajera", BranchID: &f.Branch.ID}
	mustCreate(t, db, &f.Employee)

	f.Tortilla = model.Product{Name: "Tortilla de maíz 1kg", Price: decimal.RequireFromString("75.00"), BranchID: &f.Branch.ID}
	f.Totopos = model.Product{Name: "Totopos 500g", Price: decimal.RequireFromString("32.50"), BranchID: &f.OtherBranch.ID}
	mustCreate(t, db, &f.Tortilla)
	mustCreate(t, db, &f.Totopos)

	return f
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("seed %T: %v", value, err)
	}
}
