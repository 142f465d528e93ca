// Package graphql exposes the read side of the API: franchises with their
// branches and products, and the top-stock query.
package graphql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/johssalinas/backend-accenture/app/domain"
	"github.com/johssalinas/backend-accenture/app/resources"
	"github.com/johssalinas/backend-accenture/pkg/resource"
)

// FranchiseReader is the slice of the franchise service the schema reads
// through.
type FranchiseReader interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Franchise, error)
	List(ctx context.Context) ([]*domain.Franchise, error)
	TopStockProducts(ctx context.Context, id uuid.UUID) ([]domain.ProductStock, error)
}

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"stock":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"branchId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
	},
})

var branchType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Branch",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"franchiseId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"products":    &graphql.Field{Type: graphql.NewList(productType)},
	},
})

var franchiseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Franchise",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"branches": &graphql.Field{Type: graphql.NewList(branchType)},
	},
})

var productStockType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProductStock",
	Fields: graphql.Fields{
		"productId":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"productName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"stock":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"branchId":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"branchName":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

// NewQuery builds the root Query object.
func NewQuery(franchises FranchiseReader) *graphql.Object {
	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"franchise": &graphql.Field{
				Type: franchiseType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, err := uuidArg(p, "id")
					if err != nil {
						return nil, err
					}
					f, err := franchises.Get(p.Context, id)
					if err != nil {
						return nil, err
					}
					return resources.FranchiseResource{}.ToArray(f), nil
				},
			},
			"franchises": &graphql.Field{
				Type: graphql.NewList(franchiseType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					list, err := franchises.List(p.Context)
					if err != nil {
						return nil, err
					}
					return resource.CollectionOf(resources.FranchiseResource{}, list).Array(), nil
				},
			},
			"topStockProducts": &graphql.Field{
				Type: graphql.NewList(productStockType),
				Args: graphql.FieldConfigArgument{
					"franchiseId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, err := uuidArg(p, "franchiseId")
					if err != nil {
						return nil, err
					}
					top, err := franchises.TopStockProducts(p.Context, id)
					if err != nil {
						return nil, err
					}
					return resource.CollectionOf(resources.ProductStockResource{}, top).Array(), nil
				},
			},
		},
	})
}

func uuidArg(p graphql.ResolveParams, name string) (uuid.UUID, error) {
	raw, _ := p.Args[name].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: must be a UUID", name)
	}
	return id, nil
}
