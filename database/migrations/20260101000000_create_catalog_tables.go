package migrations

import (
	"gorm.io/gorm"

	"github.com/johssalinas/backend-accenture/app/models"
	"github.com/johssalinas/backend-accenture/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_franchises_table", &CreateFranchisesTable{})
	migration.Register("20260101000001_create_branches_table", &CreateBranchesTable{})
	migration.Register("20260101000002_create_products_table", &CreateProductsTable{})
}

// -------- 0001: franchises --------

type CreateFranchisesTable struct{}

func (m *CreateFranchisesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Franchise{})
}

func (m *CreateFranchisesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("franchises")
}

// -------- 0002: branches --------

type CreateBranchesTable struct{}

func (m *CreateBranchesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Branch{})
}

func (m *CreateBranchesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("branches")
}

// -------- 0003: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}
