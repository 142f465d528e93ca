package resource_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johssalinas/backend-accenture/pkg/resource"
)

type item struct {
	id     int
	secret string
}

type itemResource struct{}

func (itemResource) ToArray(v any) resource.Map {
	it := v.(item)
	return resource.Map{"id": it.id}
}

func TestResourceHidesUnmappedFields(t *testing.T) {
	raw, err := json.Marshal(resource.New(itemResource{}, item{id: 7, secret: "x"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7}`, string(raw))
}

func TestEmptyCollectionIsArray(t *testing.T) {
	raw, err := json.Marshal(resource.CollectionOf(itemResource{}, []item(nil)))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestCollectionPreservesOrder(t *testing.T) {
	raw, err := json.Marshal(resource.CollectionOf(itemResource{}, []item{{id: 2}, {id: 1}}))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":2},{"id":1}]`, string(raw))
}
