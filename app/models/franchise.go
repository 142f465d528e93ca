package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/johssalinas/backend-accenture/app/domain"
)

// Franchise is the franchises table row.
type Franchise struct {
	ID        string    `gorm:"primaryKey;size:36"              json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex"   json:"name"`
	Version   int64     `gorm:"not null;default:1"              json:"version"`
	CreatedAt time.Time `gorm:"index"                           json:"created_at"`
	UpdatedAt time.Time `                                       json:"updated_at"`
	Branches  []Branch  `gorm:"foreignKey:FranchiseID;constraint:OnDelete:CASCADE" json:"branches,omitempty"`
}

// Branch is the branches table row. Names are unique per franchise.
type Branch struct {
	ID          string    `gorm:"primaryKey;size:36"                                              json:"id"`
	FranchiseID string    `gorm:"size:36;not null;index;uniqueIndex:idx_branches_franchise_name,priority:1" json:"franchise_id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex:idx_branches_franchise_name,priority:2"      json:"name"`
	Version     int64     `gorm:"not null;default:1"                                              json:"version"`
	CreatedAt   time.Time `gorm:"index"                                                           json:"created_at"`
	UpdatedAt   time.Time `                                                                       json:"updated_at"`
	Products    []Product `gorm:"foreignKey:BranchID;constraint:OnDelete:CASCADE"                 json:"products,omitempty"`
}

// Product is the products table row. Names are unique per branch.
type Product struct {
	ID        string    `gorm:"primaryKey;size:36"                                           json:"id"`
	BranchID  string    `gorm:"size:36;not null;index;uniqueIndex:idx_products_branch_name,priority:1" json:"branch_id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_products_branch_name,priority:2"      json:"name"`
	Stock     int       `gorm:"not null;default:0;index"                                     json:"stock"`
	Version   int64     `gorm:"not null;default:1"                                           json:"version"`
	CreatedAt time.Time `gorm:"index"                                                        json:"created_at"`
	UpdatedAt time.Time `                                                                    json:"updated_at"`
}

// FranchiseFromDomain maps the franchise row only; branches are written by
// their own repository.
func FranchiseFromDomain(f *domain.Franchise) Franchise {
	return Franchise{ID: f.ID().String(), Name: f.Name(), Version: f.Version()}
}

func BranchFromDomain(b *domain.Branch) Branch {
	return Branch{
		ID:          b.ID().String(),
		FranchiseID: b.FranchiseID().String(),
		Name:        b.Name(),
		Version:     b.Version(),
	}
}

func ProductFromDomain(p *domain.Product) Product {
	return Product{
		ID:       p.ID().String(),
		BranchID: p.BranchID().String(),
		Name:     p.Name(),
		Stock:    p.Stock(),
		Version:  p.Version(),
	}
}

// ToDomain rebuilds the aggregate with whatever branches were preloaded.
func (m Franchise) ToDomain() *domain.Franchise {
	branches := make([]*domain.Branch, 0, len(m.Branches))
	for _, b := range m.Branches {
		branches = append(branches, b.ToDomain())
	}
	return domain.RestoreFranchise(parseID(m.ID), m.Name, m.Version, branches...)
}

func (m Branch) ToDomain() *domain.Branch {
	products := make([]*domain.Product, 0, len(m.Products))
	for _, p := range m.Products {
		products = append(products, p.ToDomain())
	}
	return domain.RestoreBranch(parseID(m.ID), m.Name, parseID(m.FranchiseID), m.Version, products...)
}

func (m Product) ToDomain() *domain.Product {
	return domain.RestoreProduct(parseID(m.ID), m.Name, m.Stock, parseID(m.BranchID), m.Version)
}

// parseID maps a malformed stored id to uuid.Nil rather than failing the read.
func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}
