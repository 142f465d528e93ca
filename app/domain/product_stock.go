package domain

import "github.com/google/uuid"

// ProductStock is the read-only projection of a branch's top product.
// It is derived on demand and never stored.
type ProductStock struct {
	ProductID   uuid.UUID
	ProductName string
	Stock       int
	BranchID    uuid.UUID
	BranchName  string
}
