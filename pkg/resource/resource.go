// Package resource provides API resource transformers: a Transformer decides
// exactly which fields of a value reach the wire.
//
//	type ProductResource struct{}
//	func (ProductResource) ToArray(v any) resource.Map {
//	    p := v.(*domain.Product)
//	    return resource.Map{"id": p.ID(), "name": p.Name()}
//	}
//
//	c.Success(resource.New(ProductResource{}, product))
//	c.Success(resource.CollectionOf(ProductResource{}, products))
package resource

import "encoding/json"

// Map is the output of ToArray.
type Map = map[string]any

// Transformer converts one value into its wire shape.
type Transformer interface {
	ToArray(v any) Map
}

// Resource wraps a single value with its transformer.
type Resource struct {
	transformer Transformer
	data        any
}

func New(t Transformer, data any) *Resource {
	return &Resource{transformer: t, data: data}
}

// Array returns the transformed value.
func (r *Resource) Array() Map {
	return r.transformer.ToArray(r.data)
}

func (r *Resource) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Array())
}

// Collection wraps a slice with a transformer. It always marshals as a JSON
// array, never null.
type Collection struct {
	transformer Transformer
	items       []any
}

// CollectionOf builds a Collection from any slice.
func CollectionOf[T any](t Transformer, items []T) *Collection {
	c := &Collection{transformer: t, items: make([]any, len(items))}
	for i, it := range items {
		c.items[i] = it
	}
	return c
}

// Array returns the transformed items.
func (c *Collection) Array() []Map {
	out := make([]Map, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, c.transformer.ToArray(it))
	}
	return out
}

func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Array())
}
