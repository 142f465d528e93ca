package seeders

import (
	"context"
	"errors"

	"github.com/johssalinas/backend-accenture/app/domain"
	"github.com/johssalinas/backend-accenture/app/services"
)

func init() {
	Register("demo_catalog", SeedDemoCatalog)
}

type demoBranch struct {
	name     string
	products []demoProduct
}

type demoProduct struct {
	name  string
	stock int
}

const demoFranchise = "Café Andino"

var demoBranches = []demoBranch{
	{"Bogotá Centro", []demoProduct{{"Espresso", 40}, {"Latte", 25}, {"Arepa", 60}}},
	{"Medellín Poblado", []demoProduct{{"Espresso", 15}, {"Tinto", 90}}},
	{"Cali Granada", nil},
}

// SeedDemoCatalog creates one franchise with a few branches and products.
// It does nothing when the franchise already exists.
func SeedDemoCatalog(ctx context.Context, s Services) error {
	f, err := s.Franchises.Create(ctx, services.CreateFranchiseInput{Name: demoFranchise})
	if errors.Is(err, domain.ErrDuplicateName) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, db := range demoBranches {
		b, err := s.Branches.Add(ctx, services.AddBranchInput{FranchiseID: f.ID(), Name: db.name})
		if err != nil {
			return err
		}
		for _, dp := range db.products {
			stock := dp.stock
			if _, err := s.Products.Add(ctx, services.AddProductInput{
				BranchID: b.ID(),
				Name:     dp.name,
				Stock:    &stock,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}
