package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johssalinas/backend-accenture/pkg/validate"
)

type productInput struct {
	BranchID string `json:"branchId" validate:"required,uuid"`
	Name     string `json:"name"     validate:"notblank,max=100"`
	Stock    *int   `json:"stock"    validate:"required,gte=0"`
}

func intPtr(v int) *int { return &v }

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{
		BranchID: "7f1b9e4c-3c1a-4c8e-9b8e-2f1d1c0a9b11",
		Name:     "Espresso",
		Stock:    intPtr(0),
	})
	assert.False(t, validate.HasErrors(errs), "unexpected errors: %v", errs)
}

func TestFieldNamesFollowJSONTags(t *testing.T) {
	errs := validate.Struct(productInput{})

	assert.Contains(t, errs, "branchId")
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "stock")
	assert.Equal(t, "The stock field is required.", errs["stock"])
}

func TestNotBlankRejectsWhitespace(t *testing.T) {
	errs := validate.Struct(productInput{
		BranchID: "7f1b9e4c-3c1a-4c8e-9b8e-2f1d1c0a9b11",
		Name:     "   ",
		Stock:    intPtr(1),
	})
	assert.Equal(t, "The name field must not be blank.", errs["name"])
}

func TestMaxLengthAndNegativeStock(t *testing.T) {
	errs := validate.Struct(productInput{
		BranchID: "not-a-uuid",
		Name:     strings.Repeat("x", 101),
		Stock:    intPtr(-1),
	})
	assert.Equal(t, "The branchId must be a valid UUID.", errs["branchId"])
	assert.Equal(t, "The name may not be greater than 100 characters.", errs["name"])
	assert.Equal(t, "The stock must be greater than or equal to 0.", errs["stock"])
}

func TestNonStructInput(t *testing.T) {
	errs := validate.Struct(42)
	assert.True(t, validate.HasErrors(errs))
}
