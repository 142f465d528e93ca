// Package resources shapes domain values for the HTTP and GraphQL APIs.
package resources

import (
	"github.com/johssalinas/backend-accenture/app/domain"
	"github.com/johssalinas/backend-accenture/pkg/resource"
)

type FranchiseResource struct{}

func (FranchiseResource) ToArray(v any) resource.Map {
	f := v.(*domain.Franchise)
	return resource.Map{
		"id":       f.ID().String(),
		"name":     f.Name(),
		"branches": resource.CollectionOf(BranchResource{}, f.Branches()).Array(),
	}
}

type BranchResource struct{}

func (BranchResource) ToArray(v any) resource.Map {
	b := v.(*domain.Branch)
	return resource.Map{
		"id":          b.ID().String(),
		"name":        b.Name(),
		"franchiseId": b.FranchiseID().String(),
		"products":    resource.CollectionOf(ProductResource{}, b.Products()).Array(),
	}
}

type ProductResource struct{}

func (ProductResource) ToArray(v any) resource.Map {
	p := v.(*domain.Product)
	return resource.Map{
		"id":       p.ID().String(),
		"name":     p.Name(),
		"stock":    p.Stock(),
		"branchId": p.BranchID().String(),
	}
}

// ProductStockResource accepts a value or a pointer.
type ProductStockResource struct{}

func (ProductStockResource) ToArray(v any) resource.Map {
	var ps domain.ProductStock
	switch t := v.(type) {
	case domain.ProductStock:
		ps = t
	case *domain.ProductStock:
		ps = *t
	}
	return resource.Map{
		"productId":   ps.ProductID.String(),
		"productName": ps.ProductName,
		"stock":       ps.Stock,
		"branchId":    ps.BranchID.String(),
		"branchName":  ps.BranchName,
	}
}
